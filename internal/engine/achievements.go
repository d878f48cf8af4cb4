package engine

// Fixed achievement IDs.
const (
	AchievementFirstQuest = "1"
	AchievementWeekStreak = "2"
	AchievementLevelTen   = "3"
)

const (
	weekStreakThreshold = 7
	levelTenThreshold   = 10
)

// DefaultAchievements returns the achievement catalog, all locked.
func DefaultAchievements() []Achievement {
	return []Achievement{
		{ID: AchievementFirstQuest, Title: "First Quest", Description: "Complete your first quest", Icon: "⚔️"},
		{ID: AchievementWeekStreak, Title: "Unstoppable", Description: "Reach a 7-day streak on any quest", Icon: "🔥"},
		{ID: AchievementLevelTen, Title: "Seasoned Adventurer", Description: "Reach level 10", Icon: "👑"},
	}
}

// checkAchievementsLocked unlocks every achievement whose condition now
// holds and returns the newly unlocked ones. Unlocks never revert.
func (e *Engine) checkAchievementsLocked() []Achievement {
	var unlocked []Achievement
	for i := range e.achievements {
		a := &e.achievements[i]
		if a.Unlocked || !e.achievementEarnedLocked(a.ID) {
			continue
		}
		a.Unlocked = true
		unlocked = append(unlocked, *a)
	}
	return unlocked
}

func (e *Engine) achievementEarnedLocked(id string) bool {
	switch id {
	case AchievementFirstQuest:
		for _, h := range e.habits {
			if h.LastCompleted != nil || h.Streak > 0 {
				return true
			}
		}
		for _, a := range e.activities {
			if a.QuestsCompleted > 0 {
				return true
			}
		}
		return false
	case AchievementWeekStreak:
		for _, h := range e.habits {
			if h.Streak >= weekStreakThreshold {
				return true
			}
		}
		return false
	case AchievementLevelTen:
		return e.character.Level >= levelTenThreshold
	default:
		return false
	}
}

// mergeAchievements keeps the catalog order of base, adds unknown entries
// from incoming, and ORs the unlocked flag.
func mergeAchievements(base, incoming []Achievement) []Achievement {
	byID := make(map[string]Achievement, len(incoming))
	for _, a := range incoming {
		byID[a.ID] = a
	}

	out := make([]Achievement, 0, len(base)+len(incoming))
	seen := map[string]bool{}
	for _, a := range base {
		if in, ok := byID[a.ID]; ok && in.Unlocked {
			a.Unlocked = true
		}
		out = append(out, a)
		seen[a.ID] = true
	}
	for _, a := range incoming {
		if !seen[a.ID] {
			out = append(out, a)
			seen[a.ID] = true
		}
	}
	return out
}
