// Package mutate holds the operations that change the task list. They are
// pure over the in-memory model: no I/O, no UI. Callers persist via the store
// after any Changed result and rebuild the projection.
//
// Targets arrive as projection row refs. A ref outside the current bounds
// (stale selection) is a no-op, not an error.
package mutate

import (
	"strings"

	"todo-cli/internal/model"
	"todo-cli/internal/store"
)

type Result struct {
	Changed bool

	// TaskID/Title identify the affected top-level task for the activity
	// log. TaskID is 0 for list-wide operations.
	TaskID int
	Title  string
}

// resolve checks ref against the current list shape.
func resolve(tasks []model.Task, ref model.RowRef) bool {
	if ref.Task < 0 || ref.Task >= len(tasks) {
		return false
	}
	if ref.IsSubtask() && ref.Subtask >= len(tasks[ref.Task].Subtasks) {
		return false
	}
	return true
}

// Add appends a new task with a freshly allocated id. The title must be
// non-empty after trimming.
func Add(tasks *[]model.Task, title string, priority model.Priority, dueDate string) (Result, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Result{}, ErrEmptyTitle
	}
	t := model.Task{
		ID:       store.NextID(*tasks),
		Title:    title,
		Priority: priority,
		DueDate:  dueDate,
	}
	*tasks = append(*tasks, t)
	return Result{Changed: true, TaskID: t.ID, Title: t.Title}, nil
}

// AddSubtask appends a subtask to the task ref points at. When ref resolves
// to a subtask, the new subtask goes to the same parent (ref.Task already
// names it). Subtasks carry no id.
func AddSubtask(tasks []model.Task, ref model.RowRef, title string, priority model.Priority, dueDate string) (Result, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Result{}, ErrEmptyTitle
	}
	if !resolve(tasks, ref) {
		return Result{}, nil
	}
	parent := &tasks[ref.Task]
	parent.Subtasks = append(parent.Subtasks, model.Subtask{
		Title:    title,
		Priority: priority,
		DueDate:  dueDate,
	})
	return Result{Changed: true, TaskID: parent.ID, Title: title}, nil
}

// Edit overwrites title/priority/due date on the resolved task or subtask.
// Completion state and ids are unaffected.
func Edit(tasks []model.Task, ref model.RowRef, title string, priority model.Priority, dueDate string) (Result, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Result{}, ErrEmptyTitle
	}
	if !resolve(tasks, ref) {
		return Result{}, nil
	}
	parent := &tasks[ref.Task]
	if ref.IsSubtask() {
		sub := &parent.Subtasks[ref.Subtask]
		sub.Title = title
		sub.Priority = priority
		sub.DueDate = dueDate
	} else {
		parent.Title = title
		parent.Priority = priority
		parent.DueDate = dueDate
	}
	return Result{Changed: true, TaskID: parent.ID, Title: title}, nil
}

// Toggle flips completion on the resolved task or subtask. Toggling a parent
// does not cascade to its subtasks, and vice versa.
func Toggle(tasks []model.Task, ref model.RowRef) Result {
	if !resolve(tasks, ref) {
		return Result{}
	}
	parent := &tasks[ref.Task]
	if ref.IsSubtask() {
		sub := &parent.Subtasks[ref.Subtask]
		sub.Completed = !sub.Completed
		return Result{Changed: true, TaskID: parent.ID, Title: sub.Title}
	}
	parent.Completed = !parent.Completed
	return Result{Changed: true, TaskID: parent.ID, Title: parent.Title}
}

// Delete removes the resolved entity. Deleting a task takes its subtasks with
// it; deleting a subtask shifts later subtasks' indices down by one.
func Delete(tasks *[]model.Task, ref model.RowRef) Result {
	if !resolve(*tasks, ref) {
		return Result{}
	}
	if ref.IsSubtask() {
		parent := &(*tasks)[ref.Task]
		title := parent.Subtasks[ref.Subtask].Title
		parent.Subtasks = append(parent.Subtasks[:ref.Subtask], parent.Subtasks[ref.Subtask+1:]...)
		return Result{Changed: true, TaskID: parent.ID, Title: title}
	}
	t := (*tasks)[ref.Task]
	*tasks = append((*tasks)[:ref.Task], (*tasks)[ref.Task+1:]...)
	return Result{Changed: true, TaskID: t.ID, Title: t.Title}
}

// ClearAll replaces the whole list with empty. Callers must have collected an
// explicit confirmation first.
func ClearAll(tasks *[]model.Task) Result {
	if len(*tasks) == 0 {
		return Result{}
	}
	*tasks = []model.Task{}
	return Result{Changed: true}
}

// Reorder moves the task at src (top-level index) so it ends up at dst, where
// dst is expressed in pre-removal terms: moving down, the effective insertion
// index is one less than dst. Subtasks travel with the moved task. Reordering
// is only meaningful in insertion order, so any other sort mode is a no-op.
func Reorder(tasks []model.Task, mode model.SortMode, src, dst int) Result {
	if mode != model.SortNone {
		return Result{}
	}
	if src == dst || src < 0 || dst < 0 || src >= len(tasks) || dst >= len(tasks) {
		return Result{}
	}
	moved := tasks[src]
	if dst > src {
		copy(tasks[src:], tasks[src+1:dst+1])
		tasks[dst] = moved
	} else {
		copy(tasks[dst+1:], tasks[dst:src])
		tasks[dst] = moved
	}
	return Result{Changed: true, TaskID: moved.ID, Title: moved.Title}
}
