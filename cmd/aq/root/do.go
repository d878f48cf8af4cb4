package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/ui"
)

func newDoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <habit>",
		Short: "Complete a habit for this period",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("habit is required")
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
			res := a.Engine.CompleteHabit(ctx, h.ID)
			out := cmd.OutOrStdout()
			switch {
			case res.Completed:
				printCompletion(out, h.Title, res)
			case h.Completed:
				fmt.Fprintf(out, "%s %s is already done this period.\n", ui.Warn.Render(ui.IconWarn), h.Title)
			default:
				fmt.Fprintf(out, "%s %s has %d open steps; finish them with %s\n", ui.Warn.Render(ui.IconWarn), h.Title,
					h.RemainingSubtasks(), ui.Key.Render("aq subtask "+args[0]+" <step>"))
			}
			return nil
		},
	}

	return cmd
}
