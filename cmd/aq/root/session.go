package root

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/app"
	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/engine"
	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/ui"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Run focus sessions on a quest",
	}
	cmd.AddCommand(newSessionRunCmd(), newSessionHistoryCmd())
	return cmd
}

func newSessionRunCmd() *cobra.Command {
	var pomodoros int
	var minutes int
	var noTimer bool
	var steps []string

	cmd := &cobra.Command{
		Use:   "run <habit>",
		Short: "Focus on a habit for N pomodoros, then claim it (or its steps)",
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
			if h.Completed {
				return fmt.Errorf("%s is already done this period", h.Title)
			}
			if pomodoros < 1 {
				pomodoros = 1
				for _, st := range h.Subtasks {
					if !st.IsCompleted {
						pomodoros = st.EstimatedPomodoros
						break
					}
				}
			}

			out := cmd.OutOrStdout()
			s, ok := a.Engine.StartQuestSession(ctx, h.ID, pomodoros)
			if !ok {
				return fmt.Errorf("habit %q not found", args[0])
			}
			fmt.Fprintf(out, "%s %s %s\n", ui.H2.Render(ui.IconTomato+" Session"), h.Title, ui.Muted.Render(fmt.Sprintf("(%d pomodoros)", s.PomodoroCount)))

			if !noTimer {
				sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
				err := waitFocus(sigCtx, out, time.Duration(s.PomodoroCount*minutes)*time.Minute)
				stop()
				if err != nil {
					a.Engine.CancelQuestSession()
					fmt.Fprintln(out, ui.Warn.Render(ui.IconWarn+" Session cancelled, no XP awarded"))
					return nil
				}
			}

			return finishSession(ctx, out, a, h, steps)
		},
	}

	cmd.Flags().IntVarP(&pomodoros, "pomodoros", "p", 0, "Pomodoros to commit (default: the current step's estimate)")
	cmd.Flags().IntVar(&minutes, "minutes", 25, "Minutes per pomodoro")
	cmd.Flags().BoolVar(&noTimer, "no-timer", false, "Record the session without waiting")
	cmd.Flags().StringArrayVarP(&steps, "step", "s", nil, "Steps finished in this session (default: the current step)")

	return cmd
}

// finishSession claims the session: the whole habit when it has no open
// steps, otherwise the given steps. A session whose habit still has open
// steps afterwards is dropped.
func finishSession(ctx context.Context, out io.Writer, a *app.App, h engine.Habit, steps []string) error {
	if h.SubtasksDone() {
		res := a.FinishSession(ctx)
		printCompletion(out, h.Title, res.Complete)
		return nil
	}

	var targets []engine.Subtask
	for _, ref := range steps {
		st, err := resolveSubtask(h, ref)
		if err != nil {
			a.Engine.CancelQuestSession()
			return err
		}
		targets = append(targets, st)
	}
	if len(targets) == 0 && h.CurrentSubtaskIndex < len(h.Subtasks) {
		targets = append(targets, h.Subtasks[h.CurrentSubtaskIndex])
	}

	for _, st := range targets {
		res := a.FinishSessionSubtask(ctx, st.ID)
		if res.Subtask.Completed {
			printSubtask(out, st, res.Subtask)
		}
		if res.Ended {
			printCompletion(out, h.Title, res.Complete)
			return nil
		}
	}
	a.Engine.CancelQuestSession()
	if cur, ok := a.Engine.Habit(h.ID); ok {
		fmt.Fprintf(out, "%s %d steps left on %s\n", ui.Muted.Render("💡"), cur.RemainingSubtasks(), h.Title)
	}
	return nil
}

func waitFocus(ctx context.Context, out io.Writer, total time.Duration) error {
	deadline := time.Now().Add(total)
	done := time.NewTimer(total)
	defer done.Stop()
	tick := time.NewTicker(time.Minute)
	defer tick.Stop()

	fmt.Fprintf(out, "%s focus until %s (Ctrl-C to cancel)\n", ui.Muted.Render("⏳"), deadline.Format("15:04"))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-done.C:
			fmt.Fprintln(out, ui.Good.Render(ui.IconBolt+" Time!"))
			return nil
		case <-tick.C:
			fmt.Fprintf(out, "%s %s left\n", ui.IconTomato, time.Until(deadline).Round(time.Minute))
		}
	}
}

func newSessionHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent finished sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			recs, err := a.SessionHistory(ctx, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(recs) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No sessions yet."))
				return nil
			}
			fmt.Fprintln(out, ui.Heading(ui.IconTomato, "Sessions"))
			for _, r := range recs {
				title := r.QuestID
				if h, ok := a.Engine.Habit(r.QuestID); ok {
					title = h.Title
				}
				dur := r.CompletedAt.Sub(r.StartedAt).Round(time.Minute)
				fmt.Fprintf(out, "- %s %s %s\n", ui.Muted.Render(r.CompletedAt.Local().Format("2006-01-02 15:04")), title,
					ui.Muted.Render(fmt.Sprintf("(%d %s, %s, +%d XP)", r.Pomodoros, ui.IconTomato, dur, r.XPAwarded)))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Sessions to show")

	return cmd
}
