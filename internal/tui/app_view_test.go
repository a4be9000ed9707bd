package tui

import (
	"strings"
	"testing"

	"todo-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func forceAscii(t *testing.T) {
	t.Helper()
	old := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Cleanup(func() { lipgloss.SetColorProfile(old) })
}

func TestViewListsTasksAndStats(t *testing.T) {
	forceAscii(t)
	m := seededModel(t, []model.Task{
		{ID: 1, Title: "buy groceries", Completed: true, DueDate: "2026-09-01",
			Subtasks: []model.Subtask{{Title: "milk"}}},
		{ID: 2, Title: "walk the dog"},
	})
	out := m.View()
	for _, want := range []string{
		"My Tasks",
		"[x] buy groceries",
		"(due 2026-09-01)",
		"└─",
		"[ ] milk",
		"[ ] walk the dog",
		"Total: 2 | Completed: 1 | Remaining: 1",
		"Sort: original",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q:\n%s", want, out)
		}
	}
}

func TestViewEmptyList(t *testing.T) {
	forceAscii(t)
	m := seededModel(t, nil)
	out := m.View()
	if !strings.Contains(out, "No tasks yet") {
		t.Fatalf("empty view missing placeholder:\n%s", out)
	}
	if !strings.Contains(out, "Total: 0") {
		t.Fatalf("empty view missing stats:\n%s", out)
	}
}

func TestViewShowsSortModeLabel(t *testing.T) {
	forceAscii(t)
	m := seededModel(t, []model.Task{{ID: 1, Title: "a"}})
	m.sortMode = model.SortDueDate
	m.rebuildRows()
	if out := m.View(); !strings.Contains(out, "Sort: due date") {
		t.Fatalf("sort label missing:\n%s", out)
	}
}

func TestViewOverlayReplacesList(t *testing.T) {
	forceAscii(t)
	m := seededModel(t, []model.Task{{ID: 1, Title: "a"}})
	m.showNotice("Save Failed", "Could not write tasks file.")
	out := m.View()
	if !strings.Contains(out, "Save Failed") || !strings.Contains(out, "Could not write tasks file.") {
		t.Fatalf("notice not rendered:\n%s", out)
	}
}
