package tui

import (
	"strings"

	"todo-cli/internal/format"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

func (m appModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	switch m.overlay {
	case overlayEdit:
		return placeCentered(m.width, m.height, m.edit.view(m.width))
	case overlayConfirmDelete:
		return placeCentered(m.width, m.height,
			renderConfirmModal(m.width, "Delete", deleteConfirmBody(m.tasks, m.confirmTarget), "Delete", "Cancel", m.confirmFocus))
	case overlayConfirmClear:
		return placeCentered(m.width, m.height,
			renderConfirmModal(m.width, "Clear All", "Delete all tasks? This cannot be undone.", "Delete all", "Cancel", m.confirmFocus))
	case overlayNotice:
		return placeCentered(m.width, m.height, renderNoticeModal(m.width, m.noticeTitle, m.noticeBody))
	case overlayHelp:
		return placeCentered(m.width, m.height, renderHelpOverlay(m.width))
	}

	header := lipgloss.NewStyle().Bold(true).Padding(0, 1).Render("My Tasks")

	footerLines := []string{
		styleMuted().Padding(0, 1).Render(format.Stats(m.tasks) + " | Sort: " + sortModeLabel(m.sortMode)),
		lipgloss.NewStyle().Padding(0, 1).Render(m.help.View(m.keys)),
	}
	if m.moving {
		footerLines = append([]string{
			lipgloss.NewStyle().Foreground(colorAccent).Padding(0, 1).Render("Moving task: j/k to shift, enter to drop"),
		}, footerLines...)
	}
	footer := strings.Join(footerLines, "\n")

	listHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer) - 1
	if listHeight < 1 {
		listHeight = 1
	}

	var body string
	if len(m.refs) == 0 {
		body = styleMuted().Padding(1, 2).Render("No tasks yet. Press a to add one.")
	} else {
		start := 0
		if m.cursor >= listHeight {
			start = m.cursor - listHeight + 1
		}
		end := start + listHeight
		if end > len(m.refs) {
			end = len(m.refs)
		}

		lines := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			lines = append(lines, m.renderRow(i))
		}
		body = strings.Join(lines, "\n")
	}

	return strings.Join([]string{header, body, footer}, "\n")
}

func (m appModel) renderRow(i int) string {
	ref := m.refs[i]
	t := m.tasks[ref.Task]

	var (
		indent    string
		title     string
		completed bool
		priority  string
		due       string
	)
	if ref.IsSubtask() {
		sub := t.Subtasks[ref.Subtask]
		indent = "    └─ "
		title = sub.Title
		completed = sub.Completed
		priority = string(sub.Priority)
		due = sub.DueDate
	} else {
		title = t.Title
		completed = t.Completed
		priority = string(t.Priority)
		due = t.DueDate
	}

	check := "[ ]"
	if completed {
		check = "[x]"
	}

	marker := "  "
	if c, ok := priorityColor(priority); ok {
		marker = lipgloss.NewStyle().Foreground(c).Render("●") + " "
	}

	titleStyle := lipgloss.NewStyle()
	if completed {
		titleStyle = styleMuted().Strikethrough(true)
	}

	line := " " + indent + marker + check + " " + titleStyle.Render(title)
	if due != "" {
		line += styleMuted().Render("  (due " + due + ")")
	}

	if i == m.cursor {
		sel := lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg)
		if m.moving {
			sel = sel.Bold(true)
		}
		line = sel.Render(padToWidth(line, m.width))
	}
	return line
}

// padToWidth pads or truncates a rendered line to the window width so the
// selection background spans the full row.
func padToWidth(s string, width int) string {
	if width <= 0 {
		return s
	}
	w := xansi.StringWidth(s)
	if w > width {
		return xansi.Cut(s, 0, width)
	}
	return s + strings.Repeat(" ", width-w)
}
