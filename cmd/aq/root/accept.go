package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/ui"
)

func newAcceptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accept <template_id>",
		Short: "Accept a catalog quest and add it as a habit",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("template_id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id := args[0]
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			h, err := a.Engine.AcceptTemplate(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s → %s %s\n", ui.Good.Render(ui.IconScroll+" Accepted"), ui.Muted.Render(id), h.Title,
				ui.Muted.Render(fmt.Sprintf("(%s, %d XP)", h.Difficulty, h.XPReward)))

			if len(h.Subtasks) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %d steps; start with %s\n",
					ui.Muted.Render("💡"), len(h.Subtasks), ui.Key.Render("aq session run "+h.ID))
			}
			return nil
		},
	}

	return cmd
}
