package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"todo-cli/internal/model"
)

// WriteJSON writes strict JSON output for CLI commands.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

// WriteRows renders the projected task list as plain text, one row per line,
// subtasks indented under their parent:
//
//	   1 [x] buy groceries  (high, due 2026-09-01)
//	      - [ ] milk
func WriteRows(w io.Writer, tasks []model.Task, refs []model.RowRef) error {
	for _, ref := range refs {
		t := tasks[ref.Task]
		if ref.IsSubtask() {
			sub := t.Subtasks[ref.Subtask]
			if _, err := fmt.Fprintf(w, "      - %s %s%s\n", checkbox(sub.Completed), sub.Title, meta(sub.Priority, sub.DueDate)); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%4d %s %s%s\n", t.ID, checkbox(t.Completed), t.Title, meta(t.Priority, t.DueDate)); err != nil {
			return err
		}
	}
	return nil
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func meta(p model.Priority, due string) string {
	var parts []string
	if p.Known() {
		parts = append(parts, string(p))
	}
	if due != "" {
		parts = append(parts, "due "+due)
	}
	if len(parts) == 0 {
		return ""
	}
	return "  (" + strings.Join(parts, ", ") + ")"
}

// Stats summarizes top-level tasks for the footer line.
func Stats(tasks []model.Task) string {
	total := len(tasks)
	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	return fmt.Sprintf("Total: %d | Completed: %d | Remaining: %d", total, completed, total-completed)
}
