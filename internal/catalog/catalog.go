// Package catalog holds the static quest templates and the pure functions that
// filter and scale them. Nothing here has state or side effects.
package catalog

import "fmt"

var templates = builtinTemplates()

// Templates returns a copy of every built-in template in catalog order.
func Templates() []Template {
	out := make([]Template, 0, len(templates))
	for _, t := range templates {
		out = append(out, t.clone())
	}
	return out
}

// Lookup returns the template with the given ID.
func Lookup(id string) (Template, bool) {
	for _, t := range templates {
		if t.ID == id {
			return t.clone(), true
		}
	}
	return Template{}, false
}

// QuestsForRoles returns every template whose roles intersect roles, whose
// fitness types (when present) intersect fitnessTypes, and whose unlock
// requirement (when present) is met by level and maxStreak.
func QuestsForRoles(roles, fitnessTypes []string, level, maxStreak int) []Template {
	roleSet := toSet(roles)
	fitSet := toSet(fitnessTypes)

	var out []Template
	for _, t := range templates {
		if !intersects(t.Roles, roleSet) {
			continue
		}
		if len(t.FitnessTypes) > 0 && !intersects(t.FitnessTypes, fitSet) {
			continue
		}
		if t.Unlock != nil && (level < t.Unlock.Level || maxStreak < t.Unlock.Streak) {
			continue
		}
		out = append(out, t.clone())
	}
	return out
}

const (
	streakAdvanced = 3
	streakElite    = 7
	streakXPStep   = 10
)

// ScaleQuestDifficulty escalates a template for a habit that has been kept
// up for streak completions. Below streak 3 the template is returned as is.
func ScaleQuestDifficulty(t Template, streak int) Template {
	out := t.clone()
	if streak < streakAdvanced {
		return out
	}
	out.XPReward += (streak / streakAdvanced) * streakXPStep
	switch {
	case streak >= streakElite:
		out.Title = "Elite " + t.Title
		out.Difficulty = DifficultyElite
	default:
		out.Title = "Advanced " + t.Title
		out.Difficulty = DifficultyIntermediate
	}
	return out
}

// Describe renders an unlock requirement for display.
func (u *UnlockRequirement) Describe() string {
	if u == nil {
		return "always available"
	}
	if u.Streak <= 0 {
		return fmt.Sprintf("unlocks at level %d", u.Level)
	}
	return fmt.Sprintf("unlocks at level %d with a %d streak", u.Level, u.Streak)
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[NormalizeRole(v)] = true
	}
	return set
}

func intersects(values []string, set map[string]bool) bool {
	for _, v := range values {
		if set[NormalizeRole(v)] {
			return true
		}
	}
	return false
}
