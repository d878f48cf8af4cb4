package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/engine"
	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/questgen"
)

// Profile reconstructs the generator profile from the stored character and
// roles.
func (a *App) Profile() questgen.Profile {
	c := a.Engine.Character()
	r := a.Engine.UserRoles()
	return questgen.Profile{
		Name:         c.Name,
		Roles:        r.Roles,
		FitnessTypes: r.FitnessTypes,
	}
}

// GenerateQuests asks the generator for count quests tailored to the
// profile, telling it which quests already exist.
func (a *App) GenerateQuests(ctx context.Context, p questgen.Profile, count int) []questgen.Quest {
	habits := a.Engine.Habits()
	existing := make([]string, 0, len(habits))
	for _, h := range habits {
		existing = append(existing, h.Title)
	}
	return a.Generator.GenerateQuests(ctx, questgen.QuestRequest{Profile: p, Count: count, Existing: existing})
}

// Onboard applies a finished onboarding profile: roles, name, the catalog
// quests for those roles and count generated quests, as a single change.
// Sync is suspended for the duration so the bulk write is pushed once.
func (a *App) Onboard(ctx context.Context, p questgen.Profile, count int) engine.OnboardingResult {
	resume := a.Sync.Suspend()
	defer resume()

	p = p.Finalize()
	quests := a.GenerateQuests(ctx, p, count)
	return a.Engine.CompleteOnboarding(ctx, engine.OnboardingInput{
		Name:   p.Name,
		Roles:  p.UserRoles(),
		Drafts: questgen.Drafts(quests),
	})
}

// Ask sends a follow-up question about a habit to the generator and keeps
// the answer on the habit.
func (a *App) Ask(ctx context.Context, habitID, query string) (questgen.FollowUp, error) {
	h, ok := a.Engine.Habit(habitID)
	if !ok {
		return questgen.FollowUp{}, fmt.Errorf("habit %q not found", habitID)
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return questgen.FollowUp{}, errors.New("question is required")
	}

	questContext := h.Title
	if h.Description != "" {
		questContext += ": " + h.Description
	}
	f := a.Generator.GenerateFollowUp(ctx, query, questContext)
	a.Engine.RecordFollowUp(ctx, h.ID, engine.FollowUp{Query: query, Response: f.Response, Resources: f.Resources})
	return f, nil
}
