package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/catalog"
	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/ui"
)

func newSuggestCmd() *cobra.Command {
	var generate int
	var add bool
	var showLocked bool

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest catalog quests for your roles, or generate new ones",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			streak := a.Engine.MaxHabitStreak()
			suggested := a.Engine.SuggestedQuests()
			fmt.Fprintln(out, ui.Heading(ui.IconQuest, "Suggested quests"))
			if len(suggested) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(none: set roles with `aq onboard`)"))
			}
			for _, t := range suggested {
				s := catalog.ScaleQuestDifficulty(t, streak)
				fmt.Fprintf(out, "- %s %s %s %s\n", ui.CategoryIcon(s.Category), ui.Key.Render(s.ID), s.Title,
					ui.Muted.Render(fmt.Sprintf("(%s, %d XP)", s.Difficulty, s.XPReward)))
			}

			if showLocked {
				level := a.Engine.Character().Level
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.H2.Render(ui.IconLock+" Locked"))
				for _, t := range catalog.Templates() {
					if t.Unlock == nil || (level >= t.Unlock.Level && streak >= t.Unlock.Streak) {
						continue
					}
					fmt.Fprintf(out, "- %s %s %s\n", ui.Muted.Render(t.ID), t.Title, ui.Muted.Render("("+t.Unlock.Describe()+")"))
				}
			}

			if generate <= 0 {
				fmt.Fprintf(out, "\nAccept one with %s\n", ui.Key.Render("aq accept <template_id>"))
				return nil
			}

			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.H2.Render(ui.IconOracle+" Generated"))
			quests := a.GenerateQuests(ctx, a.Profile(), generate)
			for _, q := range quests {
				fmt.Fprintf(out, "- %s %s\n", q.Title, ui.Muted.Render(fmt.Sprintf("(%s, %d XP)", q.Category, q.XPReward)))
				if !add {
					continue
				}
				h, err := a.Engine.AddHabit(ctx, q.Draft())
				if err != nil {
					fmt.Fprintf(out, "  %s %v\n", ui.Warn.Render(ui.IconWarn), err)
					continue
				}
				fmt.Fprintf(out, "  %s %s\n", ui.Good.Render(ui.IconPlus+" added"), ui.Muted.Render(h.ID))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&generate, "generate", "g", 0, "Also generate this many new quests")
	cmd.Flags().BoolVar(&add, "add", false, "Add generated quests to the quest log")
	cmd.Flags().BoolVar(&showLocked, "locked", false, "Show catalog quests still locked")

	return cmd
}
