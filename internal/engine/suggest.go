package engine

import "github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/catalog"

// SuggestedQuests returns catalog templates eligible for the user's roles,
// level and best streak that have not been instantiated yet.
func (e *Engine) SuggestedQuests() []catalog.Template {
	e.mu.Lock()
	roles := append([]string(nil), e.roles.Roles...)
	fitness := append([]string(nil), e.roles.FitnessTypes...)
	level := e.character.Level
	streak := e.maxHabitStreakLocked()
	have := make(map[string]bool, len(e.habits))
	for _, h := range e.habits {
		have[h.ID] = true
	}
	e.mu.Unlock()

	var out []catalog.Template
	for _, t := range catalog.QuestsForRoles(roles, fitness, level, streak) {
		if !have[t.ID] {
			out = append(out, t)
		}
	}
	return out
}

// MaxHabitStreak is the best current streak across all habits.
func (e *Engine) MaxHabitStreak() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.maxHabitStreakLocked()
}

func (e *Engine) maxHabitStreakLocked() int {
	best := 0
	for _, h := range e.habits {
		if h.Streak > best {
			best = h.Streak
		}
	}
	return best
}
