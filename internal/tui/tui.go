// Package tui implements the interactive full-screen task list.
package tui

import (
	"todo-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive session and blocks until the user quits.
func Run(st store.Store) error {
	applyColorProfilePreference()
	applyThemePreference()

	p := tea.NewProgram(newAppModel(st), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
