package root

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/tui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the TUI dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.RunBoard(ctx, a.Engine, cmd.OutOrStdout())
		},
	}

	return cmd
}
