package cli

import (
	"fmt"

	"todo-cli/internal/format"

	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the activity log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.store()
			if err != nil {
				return err
			}
			evs, err := st.ReadActivity(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if app.JSON {
				return format.WriteJSON(cmd.OutOrStdout(), evs, app.Pretty)
			}
			for _, ev := range evs {
				line := fmt.Sprintf("%s  %-16s", ev.TS.Format("2006-01-02 15:04:05"), ev.Type)
				if ev.TaskID > 0 {
					line += fmt.Sprintf("  #%d", ev.TaskID)
				}
				if ev.Title != "" {
					line += "  " + ev.Title
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Only the newest N events (0 = all)")
	return cmd
}
