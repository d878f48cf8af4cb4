package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/catalog"
	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/engine"
	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/ui"
)

func newAddCmd() *cobra.Command {
	var category string
	var frequency string
	var difficulty string
	var xp int
	var description string
	var steps []string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a custom habit",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
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

			d := engine.HabitDraft{
				Title:       args[0],
				Description: description,
				Category:    catalog.ParseCategory(category),
				XPReward:    xp,
				Frequency:   catalog.ParseFrequency(frequency),
				Difficulty:  catalog.ParseDifficulty(difficulty),
			}
			for _, s := range steps {
				d.Subtasks = append(d.Subtasks, parseStep(s))
			}
			h, err := a.Engine.AddHabit(ctx, d)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n", ui.Good.Render(ui.IconPlus+" Added"), ui.CategoryIcon(h.Category), h.Title,
				ui.Muted.Render(fmt.Sprintf("(%s, %d XP, id %s)", h.Frequency, h.XPReward, h.ID)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", string(catalog.DefaultCategory), "Category (tech|academics|business|content|fitness|personal)")
	cmd.Flags().StringVarP(&frequency, "frequency", "f", string(catalog.FrequencyDaily), "Frequency (daily|weekly|milestone)")
	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", string(catalog.DifficultyBasic), "Difficulty (basic|intermediate|elite)")
	cmd.Flags().IntVar(&xp, "xp", 0, "XP reward (0 uses the default)")
	cmd.Flags().StringVar(&description, "desc", "", "Description")
	cmd.Flags().StringArrayVarP(&steps, "step", "s", nil, `Subtask, repeatable ("title" or "title:pomodoros")`)

	return cmd
}

func parseStep(s string) engine.SubtaskDraft {
	title, est := s, 1
	if i := strings.LastIndex(s, ":"); i > 0 {
		if n, err := strconv.Atoi(strings.TrimSpace(s[i+1:])); err == nil {
			title, est = s[:i], n
		}
	}
	return engine.SubtaskDraft{Title: strings.TrimSpace(title), EstimatedPomodoros: est}
}
