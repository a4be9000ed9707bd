package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const modalMaxBodyWidth = 60

func modalBodyWidth(width int) int {
	w := width - 10
	if w > modalMaxBodyWidth {
		w = modalMaxBodyWidth
	}
	if w < 20 {
		w = 20
	}
	return w
}

// renderModalBox draws a titled box on the modal surface color. Content lines
// are padded to the body width so the background reads as a solid panel.
func renderModalBox(width int, title string, content string) string {
	bodyW := modalBodyWidth(width)

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorSurfaceFg).
		Background(colorModalHeaderBg).
		Width(bodyW + 2).
		Padding(0, 1).
		Render(title)

	body := lipgloss.NewStyle().
		Foreground(colorSurfaceFg).
		Background(colorSurfaceBg).
		Width(bodyW + 2).
		Padding(1, 1).
		Render(content)

	return strings.Join([]string{header, body}, "\n")
}

// placeCentered centers a modal within the full window.
func placeCentered(width, height int, s string) string {
	if width <= 0 || height <= 0 {
		return s
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s)
}
