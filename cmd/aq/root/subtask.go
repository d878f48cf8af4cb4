package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/ui"
)

func newSubtaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subtask <habit> [step]",
		Short: "Complete a step of a habit (defaults to the current step)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 || len(args) > 2 {
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
			if len(h.Subtasks) == 0 {
				return fmt.Errorf("%s has no steps", h.Title)
			}
			idx := h.CurrentSubtaskIndex
			if idx >= len(h.Subtasks) {
				idx = 0
			}
			st := h.Subtasks[idx]
			if len(args) == 2 {
				if st, err = resolveSubtask(h, args[1]); err != nil {
					return err
				}
			}

			res := a.Engine.CompleteSubtask(ctx, h.ID, st.ID)
			out := cmd.OutOrStdout()
			if !res.Completed {
				fmt.Fprintf(out, "%s %s is already done.\n", ui.Warn.Render(ui.IconWarn), st.Title)
				return nil
			}
			printSubtask(out, st, res)
			if res.Remaining == 0 {
				fmt.Fprintf(out, "All steps done. Claim the quest with %s\n", ui.Key.Render("aq do "+args[0]))
			}
			return nil
		},
	}

	return cmd
}
