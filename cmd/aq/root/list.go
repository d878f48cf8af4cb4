package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/ui"
)

func newListCmd() *cobra.Command {
	var showSteps bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List habits",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			habits := a.Engine.Habits()
			if len(habits) == 0 {
				fmt.Fprintf(out, "No quests yet. Try %s or %s\n", ui.Key.Render("aq onboard"), ui.Key.Render("aq suggest"))
				return nil
			}
			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "Quest Log"))
			for i, h := range habits {
				streak := ""
				if h.Streak > 0 {
					streak = fmt.Sprintf(" %s%d", ui.IconFire, h.Streak)
				}
				fmt.Fprintf(out, "%2d. %s %s %s %s%s %s\n", i+1, ui.CategoryIcon(h.Category), h.Title,
					ui.FrequencyText(h.Frequency), ui.HabitStatus(h), streak, ui.Muted.Render(fmt.Sprintf("%d XP", h.XPReward)))
				if !showSteps {
					continue
				}
				for j, st := range h.Subtasks {
					mark := "[ ]"
					if st.IsCompleted {
						mark = "[x]"
					}
					cur := " "
					if j == h.CurrentSubtaskIndex && !st.IsCompleted {
						cur = ">"
					}
					fmt.Fprintf(out, "     %s %s %d. %s %s\n", cur, mark, j+1, st.Title, ui.Muted.Render(fmt.Sprintf("(%d %s)", st.EstimatedPomodoros, ui.IconTomato)))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showSteps, "steps", "s", false, "Show habit steps")

	return cmd
}
