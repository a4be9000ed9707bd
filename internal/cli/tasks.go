package cli

import (
	"fmt"
	"strconv"
	"strings"

	"todo-cli/internal/format"
	"todo-cli/internal/model"
	"todo-cli/internal/mutate"
	"todo-cli/internal/projection"

	"github.com/spf13/cobra"
)

func newListCmd(app *App) *cobra.Command {
	var sortFlag string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.store()
			if err != nil {
				return err
			}
			tasks := st.Load()

			mode, ok := model.ParseSortMode(sortFlag)
			if !ok {
				return fmt.Errorf("invalid sort mode %q (expected none|priority|due_date)", sortFlag)
			}

			if app.JSON {
				return format.WriteJSON(cmd.OutOrStdout(), tasks, app.Pretty)
			}
			refs := projection.Project(tasks, mode)
			if err := format.WriteRows(cmd.OutOrStdout(), tasks, refs); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), format.Stats(tasks))
			return err
		},
	}
	cmd.Flags().StringVar(&sortFlag, "sort", "none", "Sort mode: none|priority|due_date")
	return cmd
}

func parsePriorityFlag(s string) (model.Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return model.PriorityNone, nil
	case "low":
		return model.PriorityLow, nil
	case "medium":
		return model.PriorityMedium, nil
	case "high":
		return model.PriorityHigh, nil
	}
	return "", fmt.Errorf("invalid priority %q (expected none|low|medium|high)", s)
}

func parseDueFlag(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !model.ValidDueDate(s) {
		return "", fmt.Errorf("invalid due date %q (expected YYYY-MM-DD)", s)
	}
	return s, nil
}

func newAddCmd(app *App) *cobra.Command {
	var priFlag, dueFlag string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pri, err := parsePriorityFlag(priFlag)
			if err != nil {
				return err
			}
			due, err := parseDueFlag(dueFlag)
			if err != nil {
				return err
			}

			st, err := app.store()
			if err != nil {
				return err
			}
			tasks := st.Load()

			res, err := mutate.Add(&tasks, strings.Join(args, " "), pri, due)
			if err != nil {
				return err
			}
			if err := persist(st, tasks, "task.add", res); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %d: %s\n", res.TaskID, res.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&priFlag, "priority", "", "Priority: none|low|medium|high")
	cmd.Flags().StringVar(&dueFlag, "due", "", "Due date (YYYY-MM-DD)")
	return cmd
}

func newSubCmd(app *App) *cobra.Command {
	var priFlag, dueFlag string
	cmd := &cobra.Command{
		Use:   "sub <task-id> <title>",
		Short: "Add a subtask to a task",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pri, err := parsePriorityFlag(priFlag)
			if err != nil {
				return err
			}
			due, err := parseDueFlag(dueFlag)
			if err != nil {
				return err
			}

			st, err := app.store()
			if err != nil {
				return err
			}
			tasks := st.Load()

			ti, err := taskIndexByID(tasks, args[0])
			if err != nil {
				return err
			}
			res, err := mutate.AddSubtask(tasks, model.RowRef{Task: ti, Subtask: -1}, strings.Join(args[1:], " "), pri, due)
			if err != nil {
				return err
			}
			if err := persist(st, tasks, "subtask.add", res); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added subtask to %d: %s\n", res.TaskID, res.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&priFlag, "priority", "", "Priority: none|low|medium|high")
	cmd.Flags().StringVar(&dueFlag, "due", "", "Due date (YYYY-MM-DD)")
	return cmd
}

func newDoneCmd(app *App) *cobra.Command {
	var subFlag int
	cmd := &cobra.Command{
		Use:   "done <task-id>",
		Short: "Toggle completion of a task (or one of its subtasks)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.store()
			if err != nil {
				return err
			}
			tasks := st.Load()

			ref, err := refFromArgs(tasks, args[0], subFlag)
			if err != nil {
				return err
			}
			typ := "task.toggle"
			if ref.IsSubtask() {
				typ = "subtask.toggle"
			}
			res := mutate.Toggle(tasks, ref)
			if !res.Changed {
				return fmt.Errorf("no such subtask: %d", subFlag)
			}
			if err := persist(st, tasks, typ, res); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "toggled: %s\n", res.Title)
			return nil
		},
	}
	cmd.Flags().IntVar(&subFlag, "sub", 0, "Subtask position (1-based) instead of the task itself")
	return cmd
}

func newEditCmd(app *App) *cobra.Command {
	var subFlag int
	var titleFlag, priFlag, dueFlag string
	cmd := &cobra.Command{
		Use:   "edit <task-id>",
		Short: "Edit title, priority or due date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.store()
			if err != nil {
				return err
			}
			tasks := st.Load()

			ref, err := refFromArgs(tasks, args[0], subFlag)
			if err != nil {
				return err
			}

			// Unset flags keep the current values.
			title, pri, due := currentFields(tasks, ref)
			if cmd.Flags().Changed("title") {
				title = titleFlag
			}
			if cmd.Flags().Changed("priority") {
				pri, err = parsePriorityFlag(priFlag)
				if err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("due") {
				due, err = parseDueFlag(dueFlag)
				if err != nil {
					return err
				}
			}

			typ := "task.edit"
			if ref.IsSubtask() {
				typ = "subtask.edit"
			}
			res, err := mutate.Edit(tasks, ref, title, pri, due)
			if err != nil {
				return err
			}
			if !res.Changed {
				return fmt.Errorf("no such subtask: %d", subFlag)
			}
			if err := persist(st, tasks, typ, res); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "edited: %s\n", res.Title)
			return nil
		},
	}
	cmd.Flags().IntVar(&subFlag, "sub", 0, "Subtask position (1-based) instead of the task itself")
	cmd.Flags().StringVar(&titleFlag, "title", "", "New title")
	cmd.Flags().StringVar(&priFlag, "priority", "", "Priority: none|low|medium|high")
	cmd.Flags().StringVar(&dueFlag, "due", "", "Due date (YYYY-MM-DD), empty to clear")
	return cmd
}

func newRmCmd(app *App) *cobra.Command {
	var subFlag int
	cmd := &cobra.Command{
		Use:   "rm <task-id>",
		Short: "Delete a task (with its subtasks) or a single subtask",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.store()
			if err != nil {
				return err
			}
			tasks := st.Load()

			ref, err := refFromArgs(tasks, args[0], subFlag)
			if err != nil {
				return err
			}
			typ := "task.delete"
			if ref.IsSubtask() {
				typ = "subtask.delete"
			}
			res := mutate.Delete(&tasks, ref)
			if !res.Changed {
				return fmt.Errorf("no such subtask: %d", subFlag)
			}
			if err := persist(st, tasks, typ, res); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted: %s\n", res.Title)
			return nil
		},
	}
	cmd.Flags().IntVar(&subFlag, "sub", 0, "Subtask position (1-based) instead of the whole task")
	return cmd
}

func newMoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <task-id> <position>",
		Short: "Move a task to a new position (1-based, insertion order)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.store()
			if err != nil {
				return err
			}
			tasks := st.Load()

			src, err := taskIndexByID(tasks, args[0])
			if err != nil {
				return err
			}
			pos, err := strconv.Atoi(args[1])
			if err != nil || pos < 1 || pos > len(tasks) {
				return fmt.Errorf("invalid position %q (expected 1..%d)", args[1], len(tasks))
			}

			res := mutate.Reorder(tasks, model.SortNone, src, pos-1)
			if !res.Changed {
				// Already there.
				return nil
			}
			if err := persist(st, tasks, "task.reorder", res); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "moved %s to position %d\n", res.Title, pos)
			return nil
		},
	}
	return cmd
}

func newClearCmd(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete all tasks without --yes")
			}
			st, err := app.store()
			if err != nil {
				return err
			}
			tasks := st.Load()

			res := mutate.ClearAll(&tasks)
			if !res.Changed {
				fmt.Fprintln(cmd.OutOrStdout(), "nothing to clear")
				return nil
			}
			if err := persist(st, tasks, "list.clear", res); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "cleared")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deleting all tasks")
	return cmd
}

func taskIndexByID(tasks []model.Task, arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	for i := range tasks {
		if tasks[i].ID == id {
			return i, nil
		}
	}
	return 0, fmt.Errorf("no such task: %d", id)
}

// refFromArgs resolves a task-id argument plus an optional 1-based --sub flag
// into a row ref.
func refFromArgs(tasks []model.Task, idArg string, sub int) (model.RowRef, error) {
	ti, err := taskIndexByID(tasks, idArg)
	if err != nil {
		return model.RowRef{}, err
	}
	if sub <= 0 {
		return model.RowRef{Task: ti, Subtask: -1}, nil
	}
	return model.RowRef{Task: ti, Subtask: sub - 1}, nil
}

func currentFields(tasks []model.Task, ref model.RowRef) (string, model.Priority, string) {
	t := tasks[ref.Task]
	if ref.IsSubtask() && ref.Subtask < len(t.Subtasks) {
		sub := t.Subtasks[ref.Subtask]
		return sub.Title, sub.Priority, sub.DueDate
	}
	return t.Title, t.Priority, t.DueDate
}
