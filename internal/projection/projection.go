// Package projection flattens the (task, subtasks) tree into the ordered row
// sequence the UI displays, under a given sort mode.
package projection

import (
	"sort"

	"todo-cli/internal/model"
)

// dueDateSentinel sorts after every real YYYY-MM-DD date, so undated tasks
// land at the end of the due_date ordering.
const dueDateSentinel = "9999-99-99"

// SortedIndices returns the top-level task indices in display order for mode.
// Sorting is stable: ties keep the tasks' stored relative order. SortNone is
// the identity order and the only order in which manual reordering is
// meaningful.
func SortedIndices(tasks []model.Task, mode model.SortMode) []int {
	idx := make([]int, len(tasks))
	for i := range idx {
		idx[i] = i
	}

	switch mode {
	case model.SortPriority:
		sort.SliceStable(idx, func(a, b int) bool {
			return tasks[idx[a]].Priority.SortRank() < tasks[idx[b]].Priority.SortRank()
		})
	case model.SortDueDate:
		sort.SliceStable(idx, func(a, b int) bool {
			return dueKey(tasks[idx[a]].DueDate) < dueKey(tasks[idx[b]].DueDate)
		})
	}
	return idx
}

func dueKey(due string) string {
	if due == "" {
		return dueDateSentinel
	}
	return due
}

// Project emits one row per task in sorted order, each immediately followed
// by one row per subtask in stored order. Sorting applies to top-level tasks
// only; a task's subtasks always travel with it regardless of mode.
//
// The returned refs are the row map: row i of the display resolves to
// refs[i], which is how every mutation operation addresses its target.
func Project(tasks []model.Task, mode model.SortMode) []model.RowRef {
	refs := make([]model.RowRef, 0, len(tasks))
	for _, ti := range SortedIndices(tasks, mode) {
		refs = append(refs, model.RowRef{Task: ti, Subtask: -1})
		for si := range tasks[ti].Subtasks {
			refs = append(refs, model.RowRef{Task: ti, Subtask: si})
		}
	}
	return refs
}

// RowForTask returns the row index displaying task ti, or -1. Used to restore
// the selection after a mutation rebuilds the projection.
func RowForTask(refs []model.RowRef, ti int) int {
	for i, r := range refs {
		if r.Task == ti && !r.IsSubtask() {
			return i
		}
	}
	return -1
}
