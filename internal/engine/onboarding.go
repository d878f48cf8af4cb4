package engine

import (
	"context"
	"strings"

	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/catalog"
)

// SetUserRoles replaces the user's roles and fitness types. Identifiers are
// normalized and deduplicated.
func (e *Engine) SetUserRoles(ctx context.Context, roles UserRoles) {
	e.mutate(ctx, func() Field {
		next := normalizeRoles(roles)
		if equalStrings(next.Roles, e.roles.Roles) && equalStrings(next.FitnessTypes, e.roles.FitnessTypes) {
			return 0
		}
		e.roles = next
		return FieldUserRoles
	})
}

type OnboardingInput struct {
	Name   string
	Roles  UserRoles
	Drafts []HabitDraft
}

type OnboardingResult struct {
	Added   []Habit
	Skipped int
}

// CompleteOnboarding applies the outcome of onboarding as one mutation: the
// character name, the roles, every catalog quest the roles qualify for and
// the generated drafts. Catalog quests already instantiated and drafts whose
// title matches an existing habit are skipped.
func (e *Engine) CompleteOnboarding(ctx context.Context, in OnboardingInput) OnboardingResult {
	var res OnboardingResult
	e.mutate(ctx, func() Field {
		var changed Field
		if name := strings.TrimSpace(in.Name); name != "" && name != e.character.Name {
			e.character.Name = name
			changed |= FieldCharacter
		}
		roles := normalizeRoles(in.Roles)
		if !equalStrings(roles.Roles, e.roles.Roles) || !equalStrings(roles.FitnessTypes, e.roles.FitnessTypes) {
			e.roles = roles
			changed |= FieldUserRoles
		}

		titles := map[string]bool{}
		for _, h := range e.habits {
			titles[strings.ToLower(h.Title)] = true
		}

		streak := e.maxHabitStreakLocked()
		for _, t := range catalog.QuestsForRoles(roles.Roles, roles.FitnessTypes, e.character.Level, streak) {
			if e.habitIndexLocked(t.ID) >= 0 {
				res.Skipped++
				continue
			}
			h := e.habitFromTemplateLocked(t)
			e.habits = append(e.habits, h)
			titles[strings.ToLower(h.Title)] = true
			res.Added = append(res.Added, cloneHabit(h))
		}
		for _, d := range in.Drafts {
			title := strings.TrimSpace(d.Title)
			if title == "" || titles[strings.ToLower(title)] {
				res.Skipped++
				continue
			}
			h := e.habitFromDraftLocked(d)
			e.habits = append(e.habits, h)
			titles[strings.ToLower(title)] = true
			res.Added = append(res.Added, cloneHabit(h))
		}
		if len(res.Added) > 0 {
			changed |= FieldHabits
		}
		return changed
	})
	return res
}

func normalizeRoles(in UserRoles) UserRoles {
	return UserRoles{Roles: normalizeIDs(in.Roles), FitnessTypes: normalizeIDs(in.FitnessTypes)}
}

func normalizeIDs(values []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, v := range values {
		v = catalog.NormalizeRole(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
