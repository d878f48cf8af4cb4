package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/ui"
)

func newAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <habit> <question...>",
		Short: "Ask the quest oracle for help with a habit",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("habit and question are required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			h, err := resolveHabit(a.Engine, args[0])
			if err != nil {
				return err
			}
			f, err := a.Ask(ctx, h.ID, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			answer := f.Response
			if r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80)); err == nil {
				if rendered, err := r.Render(f.Response); err == nil {
					answer = rendered
				}
			}
			fmt.Fprintln(out, ui.Heading(ui.IconOracle, h.Title))
			fmt.Fprint(out, answer)
			for _, link := range f.Resources {
				fmt.Fprintf(out, "- %s\n", ui.Muted.Render(link))
			}
			return nil
		},
	}

	return cmd
}
