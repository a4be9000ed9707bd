package projection

import (
	"testing"

	"todo-cli/internal/model"
)

func TestSortedIndicesNoneIsIdentity(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, Title: "c", Priority: model.PriorityLow},
		{ID: 2, Title: "a", Priority: model.PriorityHigh},
		{ID: 3, Title: "b"},
	}
	got := SortedIndices(tasks, model.SortNone)
	for i, v := range got {
		if v != i {
			t.Fatalf("want identity order, got %v", got)
		}
	}
}

func TestSortedIndicesPriority(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, Priority: model.PriorityNone},
		{ID: 2, Priority: model.PriorityLow},
		{ID: 3, Priority: model.PriorityHigh},
		{ID: 4, Priority: model.PriorityMedium},
		{ID: 5, Priority: model.PriorityHigh},
	}
	got := SortedIndices(tasks, model.SortPriority)
	want := []int{2, 4, 3, 1, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("want %v, got %v", want, got)
		}
	}
}

func TestSortedIndicesPriorityStable(t *testing.T) {
	// Three highs keep their stored relative order.
	tasks := []model.Task{
		{ID: 1, Priority: model.PriorityHigh},
		{ID: 2, Priority: model.PriorityLow},
		{ID: 3, Priority: model.PriorityHigh},
		{ID: 4, Priority: model.PriorityHigh},
	}
	got := SortedIndices(tasks, model.SortPriority)
	want := []int{0, 2, 3, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("stability broken: want %v, got %v", want, got)
		}
	}
}

func TestSortedIndicesDueDate(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, DueDate: ""},
		{ID: 2, DueDate: "2026-09-15"},
		{ID: 3, DueDate: "2026-01-02"},
		{ID: 4, DueDate: ""},
	}
	got := SortedIndices(tasks, model.SortDueDate)
	// Dated tasks first by date, undated last in stored order.
	want := []int{2, 1, 0, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("want %v, got %v", want, got)
		}
	}
}

func TestSortedIndicesUnknownPriorityRanksLast(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, Priority: "urgent!!"},
		{ID: 2, Priority: model.PriorityLow},
	}
	got := SortedIndices(tasks, model.SortPriority)
	if got[0] != 1 || got[1] != 0 {
		t.Fatalf("unknown priority should sort with unset, got %v", got)
	}
}

func TestProjectSubtasksFollowParent(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, Priority: model.PriorityLow,
			Subtasks: []model.Subtask{{Title: "s0"}, {Title: "s1"}}},
		{ID: 2, Priority: model.PriorityHigh,
			Subtasks: []model.Subtask{{Title: "s2"}}},
	}
	refs := Project(tasks, model.SortPriority)
	want := []model.RowRef{
		{Task: 1, Subtask: -1},
		{Task: 1, Subtask: 0},
		{Task: 0, Subtask: -1},
		{Task: 0, Subtask: 0},
		{Task: 0, Subtask: 1},
	}
	if len(refs) != len(want) {
		t.Fatalf("want %d rows, got %d", len(want), len(refs))
	}
	for i := range want {
		if refs[i] != want[i] {
			t.Fatalf("row %d: want %+v, got %+v", i, want[i], refs[i])
		}
	}
}

func TestProjectEmpty(t *testing.T) {
	refs := Project(nil, model.SortNone)
	if len(refs) != 0 {
		t.Fatalf("want no rows, got %d", len(refs))
	}
}

func TestRowForTask(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, Subtasks: []model.Subtask{{Title: "s"}}},
		{ID: 2},
	}
	refs := Project(tasks, model.SortNone)
	if got := RowForTask(refs, 1); got != 2 {
		t.Fatalf("want row 2 for task index 1, got %d", got)
	}
	if got := RowForTask(refs, 9); got != -1 {
		t.Fatalf("want -1 for unknown task, got %d", got)
	}
}
