package tui

import (
	"path/filepath"
	"testing"

	"todo-cli/internal/model"
	"todo-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func seededModel(t *testing.T, tasks []model.Task) appModel {
	t.Helper()
	st := store.Store{Path: filepath.Join(t.TempDir(), store.TasksFileName)}
	if tasks != nil {
		if err := st.Save(tasks); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	m := newAppModel(st)
	m.width = 80
	m.height = 24
	return m
}

func press(t *testing.T, m appModel, msg tea.KeyMsg) appModel {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(appModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return out
}

func pressRune(t *testing.T, m appModel, r rune) appModel {
	return press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func TestToggleKeyPersists(t *testing.T) {
	m := seededModel(t, []model.Task{{ID: 1, Title: "walk the dog"}})
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if !m.tasks[0].Completed {
		t.Fatal("task not toggled in memory")
	}
	if got := m.store.Load(); !got[0].Completed {
		t.Fatal("toggle not saved to disk")
	}
}

func TestAddFlow(t *testing.T) {
	m := seededModel(t, []model.Task{{ID: 1, Title: "walk the dog"}})
	m = pressRune(t, m, 'a')
	if m.overlay != overlayEdit {
		t.Fatalf("overlay: %v", m.overlay)
	}
	for _, r := range "buy groceries" {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.overlay != overlayNone {
		t.Fatalf("dialog still open: %v", m.overlay)
	}
	if len(m.tasks) != 2 || m.tasks[1].Title != "buy groceries" || m.tasks[1].ID != 2 {
		t.Fatalf("task not added: %+v", m.tasks)
	}
	if ref, ok := m.selectedRef(); !ok || ref.Task != 1 || ref.IsSubtask() {
		t.Fatalf("selection not on new task: %+v", ref)
	}
	if got := m.store.Load(); len(got) != 2 {
		t.Fatalf("add not saved: %d tasks on disk", len(got))
	}
}

func TestEditDialogCancelLeavesListUntouched(t *testing.T) {
	m := seededModel(t, []model.Task{{ID: 1, Title: "walk the dog"}})
	m = pressRune(t, m, 'e')
	if m.overlay != overlayEdit {
		t.Fatalf("overlay: %v", m.overlay)
	}
	for _, r := range " twice" {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.overlay != overlayNone {
		t.Fatalf("dialog still open: %v", m.overlay)
	}
	if m.tasks[0].Title != "walk the dog" {
		t.Fatalf("cancel still edited the task: %q", m.tasks[0].Title)
	}
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	m := seededModel(t, []model.Task{{ID: 1, Title: "walk the dog"}})
	m = pressRune(t, m, 'd')
	if m.overlay != overlayConfirmDelete {
		t.Fatalf("overlay: %v", m.overlay)
	}
	if m.confirmFocus != confirmFocusCancel {
		t.Fatal("confirm dialog should default to cancel")
	}

	// esc declines.
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if len(m.tasks) != 1 {
		t.Fatal("declined delete removed the task")
	}

	// y confirms.
	m = pressRune(t, m, 'd')
	m = pressRune(t, m, 'y')
	if len(m.tasks) != 0 {
		t.Fatalf("confirmed delete left %d tasks", len(m.tasks))
	}
	if got := m.store.Load(); len(got) != 0 {
		t.Fatal("delete not saved")
	}
}

func TestClearAllOnEmptyListNotices(t *testing.T) {
	m := seededModel(t, nil)
	m = pressRune(t, m, 'C')
	if m.overlay != overlayNotice {
		t.Fatalf("want notice, got overlay %v", m.overlay)
	}
}

func TestSortKeyCycles(t *testing.T) {
	m := seededModel(t, []model.Task{
		{ID: 1, Title: "a", Priority: model.PriorityLow},
		{ID: 2, Title: "b", Priority: model.PriorityHigh},
	})
	m = pressRune(t, m, 's')
	if m.sortMode != model.SortPriority {
		t.Fatalf("after one press: %q", m.sortMode)
	}
	if m.refs[0].Task != 1 {
		t.Fatalf("projection not rebuilt: %+v", m.refs)
	}
	m = pressRune(t, m, 's')
	if m.sortMode != model.SortDueDate {
		t.Fatalf("after two presses: %q", m.sortMode)
	}
	m = pressRune(t, m, 's')
	if m.sortMode != model.SortNone {
		t.Fatalf("after three presses: %q", m.sortMode)
	}
}

func TestMoveModeShiftsTask(t *testing.T) {
	m := seededModel(t, []model.Task{
		{ID: 1, Title: "a"},
		{ID: 2, Title: "b"},
		{ID: 3, Title: "c"},
	})
	m = pressRune(t, m, 'm')
	if !m.moving {
		t.Fatal("move mode not entered")
	}
	m = pressRune(t, m, 'j')
	if m.tasks[0].ID != 2 || m.tasks[1].ID != 1 {
		t.Fatalf("task not shifted down: %+v", m.tasks)
	}
	if ref, _ := m.selectedRef(); ref.Task != 1 {
		t.Fatalf("selection lost the moved task: %+v", ref)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.moving {
		t.Fatal("enter did not leave move mode")
	}
	if got := m.store.Load(); got[0].ID != 2 {
		t.Fatal("move not saved")
	}
}

func TestMoveBlockedWhenSorted(t *testing.T) {
	m := seededModel(t, []model.Task{{ID: 1, Title: "a"}, {ID: 2, Title: "b"}})
	m.sortMode = model.SortPriority
	m.rebuildRows()
	m = pressRune(t, m, 'm')
	if m.moving {
		t.Fatal("move mode entered while sorted")
	}
	if m.overlay != overlayNotice {
		t.Fatalf("want notice, got overlay %v", m.overlay)
	}
}

func TestMoveBlockedOnSubtaskRow(t *testing.T) {
	m := seededModel(t, []model.Task{
		{ID: 1, Title: "a", Subtasks: []model.Subtask{{Title: "s"}}},
		{ID: 2, Title: "b"},
	})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown}) // onto the subtask row
	m = pressRune(t, m, 'm')
	if m.moving {
		t.Fatal("move mode entered on a subtask row")
	}
	if m.overlay != overlayNotice {
		t.Fatalf("want notice, got overlay %v", m.overlay)
	}
}

func TestAddSubtaskFromSubtaskRow(t *testing.T) {
	m := seededModel(t, []model.Task{
		{ID: 1, Title: "buy groceries", Subtasks: []model.Subtask{{Title: "milk"}}},
	})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown}) // onto "milk"
	m = pressRune(t, m, 'A')
	if m.overlay != overlayEdit {
		t.Fatalf("overlay: %v", m.overlay)
	}
	for _, r := range "bread" {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if len(m.tasks[0].Subtasks) != 2 || m.tasks[0].Subtasks[1].Title != "bread" {
		t.Fatalf("subtask not added to parent: %+v", m.tasks[0].Subtasks)
	}
}

func TestEditFollowsRowUnderActiveSort(t *testing.T) {
	m := seededModel(t, []model.Task{
		{ID: 1, Title: "a", Priority: model.PriorityMedium},
		{ID: 2, Title: "b", Priority: model.PriorityLow},
	})
	m.sortMode = model.SortPriority
	m.rebuildRows()
	// Cursor starts on "a" (medium, row 0). Raising "b" to high should keep
	// the edited task selected after it moves to the top.
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown}) // onto "b"
	m = pressRune(t, m, 'e')
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab}) // to priority
	// low -> medium -> high
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	ref, ok := m.selectedRef()
	if !ok || m.tasks[ref.Task].ID != 2 {
		t.Fatalf("selection lost the edited task: %+v", ref)
	}
	if m.cursor != 0 {
		t.Fatalf("edited task should be at the top, cursor=%d", m.cursor)
	}
}

func TestUIStateRestoredOnRelaunch(t *testing.T) {
	st := store.Store{Path: filepath.Join(t.TempDir(), store.TasksFileName)}
	if err := st.Save([]model.Task{{ID: 1, Title: "a"}, {ID: 2, Title: "b"}}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := st.SaveUIState(&store.UIState{Version: 1, SortMode: model.SortDueDate, Cursor: 1}); err != nil {
		t.Fatalf("save ui state: %v", err)
	}
	m := newAppModel(st)
	if m.sortMode != model.SortDueDate || m.cursor != 1 {
		t.Fatalf("state not restored: mode=%q cursor=%d", m.sortMode, m.cursor)
	}
}
