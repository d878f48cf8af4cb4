package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/ui"
)

func newRolesCmd() *cobra.Command {
	var roles []string
	var fitness []string

	cmd := &cobra.Command{
		Use:   "roles",
		Short: "Show or change your roles and fitness types",
		Long: `Show your roles and fitness types, or replace them with --role and --fitness.

Roles and fitness types decide which catalog quests "aq suggest" offers.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if cmd.Flags().Changed("role") || cmd.Flags().Changed("fitness") {
				current := a.Engine.UserRoles()
				if cmd.Flags().Changed("role") {
					current.Roles = roles
				}
				if cmd.Flags().Changed("fitness") {
					current.FitnessTypes = fitness
				}
				a.Engine.SetUserRoles(ctx, current)
			}

			out := cmd.OutOrStdout()
			r := a.Engine.UserRoles()
			fmt.Fprintln(out, ui.LabelValue("Roles", joinOrNone(r.Roles)))
			fmt.Fprintln(out, ui.LabelValue("Fitness", joinOrNone(r.FitnessTypes)))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&roles, "role", nil, "Roles (student|developer|entrepreneur|creator|athlete|mindful)")
	cmd.Flags().StringSliceVar(&fitness, "fitness", nil, "Fitness types (gym|running|yoga|calisthenics|cycling)")

	return cmd
}

func joinOrNone(s []string) string {
	if len(s) == 0 {
		return ui.Muted.Render("none")
	}
	return strings.Join(s, ", ")
}
