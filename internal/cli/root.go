package cli

import (
	"context"
	"os"

	"todo-cli/internal/model"
	"todo-cli/internal/mutate"
	"todo-cli/internal/store"
	"todo-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	File   string
	JSON   bool
	Pretty bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "todo",
		Short:        "A to-do list with subtasks, priorities and due dates",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.File, "file", envOr("TODO_FILE", ""), "Path to the tasks file (default: ~/.todo/tasks.json)")
	cmd.PersistentFlags().BoolVar(&app.JSON, "json", false, "JSON output for scriptable commands")
	cmd.PersistentFlags().BoolVar(&app.Pretty, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newSubCmd(app))
	cmd.AddCommand(newDoneCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newRmCmd(app))
	cmd.AddCommand(newMoveCmd(app))
	cmd.AddCommand(newClearCmd(app))
	cmd.AddCommand(newHistoryCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (app *App) store() (store.Store, error) {
	path := app.File
	if path == "" {
		p, err := store.DefaultPath()
		if err != nil {
			return store.Store{}, err
		}
		path = p
	}
	return store.Store{Path: path}, nil
}

func runTUI(app *App) error {
	st, err := app.store()
	if err != nil {
		return err
	}
	return tui.Run(st)
}

// persist saves the mutated list and appends an activity event. The activity
// log is best effort: its failure never rolls back or blocks the save.
func persist(st store.Store, tasks []model.Task, typ string, res mutate.Result) error {
	if err := st.Save(tasks); err != nil {
		return err
	}
	_ = st.AppendActivity(context.Background(), typ, res.TaskID, res.Title)
	return nil
}
