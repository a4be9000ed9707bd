package tui

import (
	"strings"
	"time"

	"todo-cli/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// The edit dialog collects {title, priority, due date} and ends in exactly one
// of two outcomes: confirmed or cancelled. It touches no model state; the
// caller runs the mutation only after a confirmed outcome.

type editMode int

const (
	editModeAddTask editMode = iota
	editModeAddSubtask
	editModeEditTask
	editModeEditSubtask
)

func (m editMode) title() string {
	switch m {
	case editModeAddSubtask:
		return "Add Subtask"
	case editModeEditTask:
		return "Edit Task"
	case editModeEditSubtask:
		return "Edit Subtask"
	default:
		return "Add Task"
	}
}

type editOutcome int

const (
	editPending editOutcome = iota
	editConfirmed
	editCancelled
)

const (
	editFocusTitle = iota
	editFocusPriority
	editFocusDue
	editFocusCount
)

var priorityOptions = []model.Priority{
	model.PriorityNone,
	model.PriorityLow,
	model.PriorityMedium,
	model.PriorityHigh,
}

type editModel struct {
	mode   editMode
	target model.RowRef

	titleInput  textinput.Model
	dueInput    textinput.Model
	priorityIdx int
	focus       int
	errMsg      string
}

func newEditModel(mode editMode, target model.RowRef, title string, priority model.Priority, due string) editModel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 200
	ti.SetValue(title)
	ti.CursorEnd()
	ti.Focus()

	di := textinput.New()
	di.Prompt = ""
	di.CharLimit = 10
	di.Placeholder = "YYYY-MM-DD"
	di.SetValue(due)

	idx := 0
	for i, p := range priorityOptions {
		if p == priority {
			idx = i
			break
		}
	}

	return editModel{
		mode:        mode,
		target:      target,
		titleInput:  ti,
		dueInput:    di,
		priorityIdx: idx,
		focus:       editFocusTitle,
	}
}

func (m editModel) values() (string, model.Priority, string) {
	return strings.TrimSpace(m.titleInput.Value()),
		priorityOptions[m.priorityIdx],
		strings.TrimSpace(m.dueInput.Value())
}

func (m editModel) update(msg tea.KeyMsg) (editModel, editOutcome, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g":
		return m, editCancelled, nil

	case "enter":
		title, _, due := m.values()
		// Validation failures keep the dialog open with an inline error;
		// nothing has touched the task list yet.
		if title == "" {
			m.errMsg = "Title is required."
			return m, editPending, nil
		}
		if !model.ValidDueDate(due) {
			m.errMsg = "Invalid date. Use format: YYYY-MM-DD."
			m.focus = m.setFocus(editFocusDue)
			return m, editPending, nil
		}
		return m, editConfirmed, nil

	case "tab", "down":
		m.focus = m.setFocus((m.focus + 1) % editFocusCount)
		return m, editPending, nil

	case "shift+tab", "up":
		m.focus = m.setFocus((m.focus + editFocusCount - 1) % editFocusCount)
		return m, editPending, nil
	}

	switch m.focus {
	case editFocusPriority:
		switch msg.String() {
		case "left", "h":
			m.priorityIdx = (m.priorityIdx + len(priorityOptions) - 1) % len(priorityOptions)
		case "right", "l", " ":
			m.priorityIdx = (m.priorityIdx + 1) % len(priorityOptions)
		}
		return m, editPending, nil

	case editFocusDue:
		switch msg.String() {
		case "ctrl+t":
			m.dueInput.SetValue(time.Now().Format("2006-01-02"))
			m.dueInput.CursorEnd()
			return m, editPending, nil
		case "ctrl+n":
			m.dueInput.SetValue(time.Now().AddDate(0, 0, 1).Format("2006-01-02"))
			m.dueInput.CursorEnd()
			return m, editPending, nil
		case "ctrl+x":
			m.dueInput.SetValue("")
			return m, editPending, nil
		}
		var cmd tea.Cmd
		m.dueInput, cmd = m.dueInput.Update(msg)
		return m, editPending, cmd

	default:
		var cmd tea.Cmd
		m.titleInput, cmd = m.titleInput.Update(msg)
		return m, editPending, cmd
	}
}

// setFocus moves input focus and returns the new focus index.
func (m *editModel) setFocus(focus int) int {
	m.titleInput.Blur()
	m.dueInput.Blur()
	switch focus {
	case editFocusTitle:
		m.titleInput.Focus()
	case editFocusDue:
		m.dueInput.Focus()
	}
	return focus
}

func (m editModel) view(width int) string {
	bodyW := modalBodyWidth(width)

	label := func(s string, focused bool) string {
		st := lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg)
		if focused {
			st = st.Foreground(colorAccent)
		}
		return st.Render(s)
	}

	var b strings.Builder
	b.WriteString(label("Title", m.focus == editFocusTitle))
	b.WriteString("\n")
	b.WriteString(renderInputLine(bodyW, m.titleInput.View()))
	b.WriteString("\n\n")

	b.WriteString(label("Priority", m.focus == editFocusPriority))
	b.WriteString("\n")
	b.WriteString(m.renderPriorityRow())
	b.WriteString("\n\n")

	b.WriteString(label("Due date", m.focus == editFocusDue))
	b.WriteString("\n")
	b.WriteString(renderInputLine(bodyW, m.dueInput.View()))
	b.WriteString("\n")
	b.WriteString(styleMuted().Width(bodyW).Render("YYYY-MM-DD   ctrl+t: today   ctrl+n: tomorrow   ctrl+x: clear"))

	if m.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(colorError).Width(bodyW).Render(m.errMsg))
	}

	b.WriteString("\n\n")
	b.WriteString(styleMuted().Width(bodyW).Render("tab: next field   enter: save   esc: cancel"))

	return renderModalBox(width, m.mode.title(), b.String())
}

func (m editModel) renderPriorityRow() string {
	base := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	active := base.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	parts := make([]string, 0, len(priorityOptions)*2)
	for i, p := range priorityOptions {
		lbl := string(p)
		if lbl == "" {
			lbl = "none"
		}
		st := base
		if i == m.priorityIdx {
			st = active
		}
		parts = append(parts, st.Render(lbl))
		if i < len(priorityOptions)-1 {
			parts = append(parts, lipgloss.NewStyle().Background(colorControlBg).Render(" "))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
