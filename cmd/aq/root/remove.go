package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/ui"
)

func newRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <habit>",
		Short: "Remove a habit",
		Long: `Remove a habit from the quest log.

This will:
- Drop the habit, its steps and its streak
- Cancel a running session on it
- Keep XP, stats and achievements already earned

Catalog quests removed this way show up again in ` + "`aq suggest`" + `.`,
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
			if !a.Engine.RemoveHabit(ctx, h.ID) {
				return fmt.Errorf("habit %q not found", args[0])
			}
			line := fmt.Sprintf("%s %s %s", ui.Warn.Render(ui.IconTrash+" Removed"), h.Title, ui.Muted.Render(fmt.Sprintf("(streak %d)", h.Streak)))
			fmt.Fprintln(cmd.OutOrStdout(), line)
			return nil
		},
	}

	return cmd
}
