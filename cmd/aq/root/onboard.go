package root

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/questgen"
	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/ui"
)

func newOnboardCmd() *cobra.Command {
	var name string
	var roles []string
	var fitness []string
	var count int

	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Set up your character and starting quests",
		Long: `Set up your character, roles and starting quests.

Without --role the setup is a short chat with the quest oracle (at most five
questions). With --role the answers are taken from flags.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			var profile questgen.Profile
			if len(roles) > 0 {
				profile = questgen.Profile{Name: name, Roles: roles, FitnessTypes: fitness}
			} else {
				profile = chat(ctx, cmd.InOrStdin(), out, a.Generator, questgen.Profile{Name: name})
			}

			res := a.Onboard(ctx, profile, count)
			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Welcome, "+a.Engine.Character().Name))
			for _, h := range res.Added {
				fmt.Fprintf(out, "- %s %s %s\n", ui.CategoryIcon(h.Category), h.Title, ui.Muted.Render(fmt.Sprintf("(%d XP)", h.XPReward)))
			}
			if res.Skipped > 0 {
				fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("%d quests already in your log", res.Skipped)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Character name")
	cmd.Flags().StringSliceVar(&roles, "role", nil, "Roles (student|developer|entrepreneur|creator|athlete|mindful)")
	cmd.Flags().StringSliceVar(&fitness, "fitness", nil, "Fitness types (gym|running|yoga|calisthenics|cycling)")
	cmd.Flags().IntVarP(&count, "generate", "g", 3, "Generated quests to add")

	return cmd
}

// chat runs onboarding turns until the generator completes the profile or
// input ends.
func chat(ctx context.Context, in io.Reader, out io.Writer, g questgen.Generator, collected questgen.Profile) questgen.Profile {
	scanner := bufio.NewScanner(in)
	var history []questgen.Message
	for turn := 0; ; turn++ {
		t := g.GenerateOnboardingTurn(ctx, history, turn, collected)
		collected = t.Collected
		fmt.Fprintf(out, "%s %s\n", ui.H2.Render(ui.IconOracle), t.Message)
		if t.IsComplete && t.FinalProfile != nil {
			return *t.FinalProfile
		}
		history = append(history, questgen.Message{Role: questgen.RoleAssistant, Content: t.Message})

		fmt.Fprint(out, ui.Key.Render("> "))
		if !scanner.Scan() {
			return collected.Finalize()
		}
		answer := strings.TrimSpace(scanner.Text())
		history = append(history, questgen.Message{Role: questgen.RoleUser, Content: answer})
		collected = applyAnswer(collected, turn, answer)
	}
}

// applyAnswer fills the profile field the scripted question for turn asks
// about. Model-driven turns also report what they collected, which wins.
func applyAnswer(p questgen.Profile, turn int, answer string) questgen.Profile {
	if answer == "" {
		return p
	}
	list := splitList(answer)
	switch turn {
	case 0:
		if p.Name == "" {
			p.Name = answer
		}
	case 1:
		if len(p.Roles) == 0 {
			p.Roles = list
		}
	case 2:
		if len(p.FitnessTypes) == 0 {
			p.FitnessTypes = list
		}
	case 3:
		if p.SkillLevel == "" {
			p.SkillLevel = answer
		}
	case 4:
		if p.TimeCommitment == "" {
			p.TimeCommitment = answer
		}
	}
	return p
}

func splitList(s string) []string {
	var out []string
	for _, f := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == ';' }) {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" && f != "and" {
			out = append(out, f)
		}
	}
	return out
}
