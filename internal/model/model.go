package model

import (
	"regexp"
	"strings"
	"time"
)

type Priority string

const (
	PriorityNone   Priority = ""
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Known reports whether p is one of the three named levels.
// Anything else (including "") renders as unprioritized, but whatever string
// was loaded from disk is preserved verbatim on the next save.
func (p Priority) Known() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// SortRank orders priorities for the priority sort mode: high first, unset
// (and unknown) last.
func (p Priority) SortRank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

type Task struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	Priority  Priority  `json:"priority"`
	DueDate   string    `json:"due_date"`
	Subtasks  []Subtask `json:"subtasks,omitempty"`
}

// Subtask has no id of its own; it is addressed by its position within the
// parent task's Subtasks slice.
type Subtask struct {
	Title     string   `json:"title"`
	Completed bool     `json:"completed"`
	Priority  Priority `json:"priority"`
	DueDate   string   `json:"due_date"`
}

type SortMode string

const (
	SortNone     SortMode = "none"
	SortPriority SortMode = "priority"
	SortDueDate  SortMode = "due_date"
)

func ParseSortMode(s string) (SortMode, bool) {
	switch SortMode(strings.TrimSpace(s)) {
	case SortNone:
		return SortNone, true
	case SortPriority:
		return SortPriority, true
	case SortDueDate:
		return SortDueDate, true
	}
	return SortNone, false
}

// RowRef resolves one displayed row back to the entity it represents.
// Subtask == -1 means the row is the task itself.
type RowRef struct {
	Task    int
	Subtask int
}

func (r RowRef) IsSubtask() bool { return r.Subtask >= 0 }

var reDueDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidDueDate accepts "" (no due date) or a real calendar date in
// YYYY-MM-DD form. This is entry-time validation only; the store persists
// whatever is already in the file.
func ValidDueDate(s string) bool {
	if s == "" {
		return true
	}
	if !reDueDate.MatchString(s) {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
