package tui

import (
	"fmt"

	"todo-cli/internal/model"
	"todo-cli/internal/mutate"
	"todo-cli/internal/projection"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch m.overlay {
		case overlayEdit:
			return m.updateEdit(msg)
		case overlayConfirmDelete, overlayConfirmClear:
			return m.updateConfirm(msg)
		case overlayNotice:
			switch msg.String() {
			case "enter", "esc", " ":
				m.overlay = overlayNone
			}
			return m, nil
		case overlayHelp:
			switch msg.String() {
			case "?", "esc", "q", "enter":
				m.overlay = overlayNone
			}
			return m, nil
		}
		if m.moving {
			return m.updateMove(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m appModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.saveUIState()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.refs)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		ref, ok := m.selectedRef()
		if !ok {
			m.showNotice("No Selection", "Please select a task to complete.")
			return m, nil
		}
		typ := "task.toggle"
		if ref.IsSubtask() {
			typ = "subtask.toggle"
		}
		res := mutate.Toggle(m.tasks, ref)
		m.persist(typ, res)
		m.rebuildRows()
		return m, nil

	case key.Matches(msg, m.keys.Add):
		m.overlay = overlayEdit
		m.edit = newEditModel(editModeAddTask, model.RowRef{Task: -1, Subtask: -1}, "", model.PriorityNone, "")
		return m, nil

	case key.Matches(msg, m.keys.AddSub):
		ref, ok := m.selectedRef()
		if !ok {
			m.showNotice("No Selection", "Please select a parent task to add a subtask.")
			return m, nil
		}
		// A selected subtask targets its parent.
		m.overlay = overlayEdit
		m.edit = newEditModel(editModeAddSubtask, model.RowRef{Task: ref.Task, Subtask: -1}, "", model.PriorityNone, "")
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		ref, ok := m.selectedRef()
		if !ok {
			m.showNotice("No Selection", "Please select a task to edit.")
			return m, nil
		}
		mode := editModeEditTask
		title, pri, due := m.fieldsAt(ref)
		if ref.IsSubtask() {
			mode = editModeEditSubtask
		}
		m.overlay = overlayEdit
		m.edit = newEditModel(mode, ref, title, pri, due)
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		ref, ok := m.selectedRef()
		if !ok {
			m.showNotice("No Selection", "Please select a task to delete.")
			return m, nil
		}
		m.overlay = overlayConfirmDelete
		m.confirmTarget = ref
		m.confirmFocus = confirmFocusCancel
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		if len(m.tasks) == 0 {
			m.showNotice("No Tasks", "There are no tasks to clear.")
			return m, nil
		}
		m.overlay = overlayConfirmClear
		m.confirmFocus = confirmFocusCancel
		return m, nil

	case key.Matches(msg, m.keys.Sort):
		switch m.sortMode {
		case model.SortNone:
			m.sortMode = model.SortPriority
		case model.SortPriority:
			m.sortMode = model.SortDueDate
		default:
			m.sortMode = model.SortNone
		}
		m.moving = false
		m.rebuildRows()
		m.saveUIState()
		return m, nil

	case key.Matches(msg, m.keys.Move):
		if m.sortMode != model.SortNone {
			m.showNotice("Sorting Active", "Reordering is only available in original order. Press s to switch back.")
			return m, nil
		}
		ref, ok := m.selectedRef()
		if !ok {
			m.showNotice("No Selection", "Please select a task to move.")
			return m, nil
		}
		if ref.IsSubtask() {
			m.showNotice("Subtask Selected", "Only top-level tasks can be moved; subtasks travel with their parent.")
			return m, nil
		}
		m.moving = true
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.overlay = overlayHelp
		return m, nil
	}
	return m, nil
}

// updateMove handles "move mode": the grabbed task shifts one top-level
// position per keypress, each step persisted like any other mutation.
func (m appModel) updateMove(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ref, ok := m.selectedRef()
	if !ok || ref.IsSubtask() {
		m.moving = false
		return m, nil
	}

	switch msg.String() {
	case "j", "down":
		if ref.Task < len(m.tasks)-1 {
			res := mutate.Reorder(m.tasks, m.sortMode, ref.Task, ref.Task+1)
			m.persist("task.reorder", res)
			m.rebuildRows()
			m.cursor = projection.RowForTask(m.refs, ref.Task+1)
		}
	case "k", "up":
		if ref.Task > 0 {
			res := mutate.Reorder(m.tasks, m.sortMode, ref.Task, ref.Task-1)
			m.persist("task.reorder", res)
			m.rebuildRows()
			m.cursor = projection.RowForTask(m.refs, ref.Task-1)
		}
	case "enter", "esc", "m", "q":
		m.moving = false
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	return m, nil
}

func (m appModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "left", "right", "h", "l":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
		return m, nil

	case "esc", "n", "ctrl+g":
		m.overlay = overlayNone
		return m, nil

	case "y":
		return m.runConfirmed()

	case "enter":
		if m.confirmFocus == confirmFocusConfirm {
			return m.runConfirmed()
		}
		m.overlay = overlayNone
		return m, nil
	}
	return m, nil
}

func (m appModel) runConfirmed() (tea.Model, tea.Cmd) {
	switch m.overlay {
	case overlayConfirmClear:
		m.overlay = overlayNone
		res := mutate.ClearAll(&m.tasks)
		m.persist("list.clear", res)
		m.rebuildRows()
		return m, nil

	case overlayConfirmDelete:
		m.overlay = overlayNone
		ref := m.confirmTarget
		typ := "task.delete"
		if ref.IsSubtask() {
			typ = "subtask.delete"
		}
		res := mutate.Delete(&m.tasks, ref)
		m.persist(typ, res)
		m.rebuildRows()
		return m, nil
	}
	m.overlay = overlayNone
	return m, nil
}

func (m appModel) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	edit, outcome, cmd := m.edit.update(msg)
	m.edit = edit

	switch outcome {
	case editCancelled:
		m.overlay = overlayNone
		return m, cmd

	case editConfirmed:
		m.overlay = overlayNone
		title, pri, due := m.edit.values()

		switch m.edit.mode {
		case editModeAddTask:
			res, err := mutate.Add(&m.tasks, title, pri, due)
			if err != nil {
				m.showNotice("Nothing to Add", "The task title is empty.")
				return m, cmd
			}
			m.persist("task.add", res)
			m.rebuildRows()
			// Select the new task.
			m.cursor = projection.RowForTask(m.refs, len(m.tasks)-1)

		case editModeAddSubtask:
			res, err := mutate.AddSubtask(m.tasks, m.edit.target, title, pri, due)
			if err == nil && res.Changed {
				m.persist("subtask.add", res)
			}
			m.rebuildRows()

		case editModeEditTask, editModeEditSubtask:
			typ := "task.edit"
			if m.edit.mode == editModeEditSubtask {
				typ = "subtask.edit"
			}
			res, err := mutate.Edit(m.tasks, m.edit.target, title, pri, due)
			if err == nil && res.Changed {
				m.persist(typ, res)
			}
			m.rebuildRows()
			// Follow the edited row: a priority/due change can move it
			// under an active sort.
			if row := projection.RowForTask(m.refs, m.edit.target.Task); row >= 0 {
				if m.edit.target.IsSubtask() {
					row += 1 + m.edit.target.Subtask
				}
				m.cursor = row
			}
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, cmd
	}
	return m, cmd
}

func (m appModel) fieldsAt(ref model.RowRef) (string, model.Priority, string) {
	t := m.tasks[ref.Task]
	if ref.IsSubtask() {
		sub := t.Subtasks[ref.Subtask]
		return sub.Title, sub.Priority, sub.DueDate
	}
	return t.Title, t.Priority, t.DueDate
}

// sortModeLabel names the active sort mode for the footer.
func sortModeLabel(mode model.SortMode) string {
	switch mode {
	case model.SortPriority:
		return "priority"
	case model.SortDueDate:
		return "due date"
	default:
		return "original"
	}
}

func deleteConfirmBody(tasks []model.Task, ref model.RowRef) string {
	t := tasks[ref.Task]
	if ref.IsSubtask() {
		return fmt.Sprintf("Delete subtask %q?", t.Subtasks[ref.Subtask].Title)
	}
	if n := len(t.Subtasks); n > 0 {
		return fmt.Sprintf("Delete %q and its %d subtask(s)?", t.Title, n)
	}
	return fmt.Sprintf("Delete %q?", t.Title)
}
