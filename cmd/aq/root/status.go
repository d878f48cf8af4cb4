package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/catalog"
	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/engine"
	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show character, today's activity and achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			c := a.Engine.Character()
			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, c.Name+" the "+c.Class))
			fmt.Fprintln(out, ui.LabelValue("Level", c.Level))
			fmt.Fprintln(out, ui.LabelValue("XP", fmt.Sprintf("%d/%d %s", c.XP, c.XPToNext, ui.XPBar(c.XP, c.XPToNext, 20))))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("📊 Stats"))
			for _, s := range engine.AllStats {
				fmt.Fprintf(out, "- %s %s: %d\n", ui.StatIcon(s), s, c.Stats.Get(s))
			}
			fmt.Fprintln(out, "")

			today := a.Engine.Today()
			fmt.Fprintln(out, ui.H2.Render("📅 Today"))
			fmt.Fprintf(out, "- %s %d quests, %s %d pomodoros, %s %d XP\n",
				ui.IconDone, today.QuestsCompleted, ui.IconTomato, today.PomodorosCompleted, ui.IconBolt, today.XPEarned)
			fmt.Fprintf(out, "- %s streak %d days\n", ui.IconFire, a.Engine.StreakCount())
			weekStart := engine.PeriodStart(time.Now(), catalog.FrequencyWeekly)
			if n, err := a.Sessions.PomodorosSince(ctx, weekStart); err == nil {
				fmt.Fprintf(out, "- %s %d pomodoros this week\n", ui.IconTomato, n)
			}
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render(ui.IconTrophy+" Achievements"))
			for _, ach := range a.Engine.Achievements() {
				if ach.Unlocked {
					fmt.Fprintf(out, "- %s %s\n", ach.Icon, ui.Gold.Render(ach.Title))
					continue
				}
				fmt.Fprintf(out, "- %s %s %s\n", ui.IconLock, ui.Muted.Render(ach.Title), ui.Muted.Render("("+ach.Description+")"))
			}
			fmt.Fprintln(out, "")

			st := a.Sync.Status()
			if st.UID == "" || a.Store == nil {
				fmt.Fprintln(out, ui.LabelValue("Sync", ui.Muted.Render("local only")))
			} else {
				fmt.Fprintln(out, ui.LabelValue("Sync", fmt.Sprintf("%s %s as %s", ui.IconCloud, a.Config.Remote.Backend, st.UID)))
			}
			return nil
		},
	}

	return cmd
}
