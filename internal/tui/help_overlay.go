package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const helpMarkdown = `
# Keys

| Key | Action |
| --- | ------ |
| j / k | move selection |
| space / enter | toggle completion |
| a | add task |
| A | add subtask to the selected task |
| e | edit the selected task or subtask |
| d | delete (asks for confirmation) |
| C | clear all tasks (asks for confirmation) |
| s | cycle sort mode (original / priority / due date) |
| m | move the selected task (j/k to move, enter/esc to drop) |
| ? | toggle this help |
| q | quit |

Sorting by priority or due date is display-only: the stored order is kept,
and moving tasks is available again once sorting is back to *original*.
`

var (
	mdRendererMu sync.Mutex
	// Cache renderers by wrap width. Creating a renderer with WithAutoStyle
	// can trigger terminal capability queries that may block on some
	// terminals, so use a fixed style and cache per width.
	mdRenderers = map[int]*glamour.TermRenderer{}
)

func markdownStyle() string {
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	mdRendererMu.Lock()
	r := mdRenderers[width]
	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(markdownStyle()),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			mdRendererMu.Unlock()
			return md
		}
		mdRenderers[width] = rr
		r = rr
	}
	mdRendererMu.Unlock()

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func renderHelpOverlay(width int) string {
	bodyW := modalBodyWidth(width)
	content := renderMarkdown(helpMarkdown, bodyW)
	content += "\n" + styleMuted().Width(bodyW).Render("?: close")
	return renderModalBox(width, "Help", content)
}
