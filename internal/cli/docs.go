package cli

import (
	"fmt"

	"todo-cli/internal/docs"
	"todo-cli/internal/format"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

func newDocsCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show built-in documentation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				topics := docs.Topics()
				if app.JSON {
					return format.WriteJSON(cmd.OutOrStdout(), map[string]any{"topics": topics}, app.Pretty)
				}
				for _, t := range topics {
					fmt.Fprintln(cmd.OutOrStdout(), t)
				}
				return nil
			}

			topic := args[0]
			body, ok := docs.Get(topic)
			if !ok {
				return fmt.Errorf("unknown topic %q (run `todo docs` to list topics)", topic)
			}

			if app.JSON {
				return format.WriteJSON(cmd.OutOrStdout(), map[string]any{"topic": topic, "markdown": body}, app.Pretty)
			}
			if raw {
				fmt.Fprint(cmd.OutOrStdout(), body)
				return nil
			}

			r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80))
			if err != nil {
				fmt.Fprint(cmd.OutOrStdout(), body)
				return nil
			}
			out, err := r.Render(body)
			if err != nil {
				fmt.Fprint(cmd.OutOrStdout(), body)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown without terminal rendering")

	return cmd
}
