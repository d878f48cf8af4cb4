package engine

import "context"

type CompleteResult struct {
	Completed bool
	HabitID   string
	XPAwarded int
	Streak    int
	Level     LevelResult
	Unlocked  []Achievement
}

// CompleteHabit marks a habit completed for its current period. It is a
// no-op when the habit is missing, already completed, or has open subtasks.
func (e *Engine) CompleteHabit(ctx context.Context, id string) CompleteResult {
	res := CompleteResult{HabitID: id}
	e.mutate(ctx, func() Field {
		var changed Field
		res, changed = e.completeHabitLocked(id)
		return changed
	})
	return res
}

func (e *Engine) completeHabitLocked(id string) (CompleteResult, Field) {
	res := CompleteResult{HabitID: id}
	i := e.habitIndexLocked(id)
	if i < 0 {
		return res, 0
	}
	h := &e.habits[i]
	if h.Completed || !h.SubtasksDone() {
		return res, 0
	}

	now := e.timestamp()
	h.Completed = true
	h.Streak++
	h.LastCompleted = &now

	res.Completed = true
	res.XPAwarded = h.XPReward
	res.Streak = h.Streak
	res.Level = applyXP(&e.character, h.XPReward, CategoryStat(h.Category))

	reward := h.XPReward
	e.recordActivityLocked(e.now(), func(a *DailyActivity) {
		a.QuestsCompleted++
		a.XPEarned += reward
		a.HasLogin = true
	})

	changed := FieldHabits | FieldCharacter | FieldDailyActivities
	if res.Unlocked = e.checkAchievementsLocked(); len(res.Unlocked) > 0 {
		changed |= FieldAchievements
	}
	return res, changed
}

type SubtaskResult struct {
	Completed bool
	Remaining int
	NextIndex int
	Level     LevelResult
	Unlocked  []Achievement
}

// CompleteSubtask marks one subtask done, grants SubtaskXP, and moves the
// habit's current index to the next open subtask. The parent habit is not
// completed automatically.
func (e *Engine) CompleteSubtask(ctx context.Context, habitID, subtaskID string) SubtaskResult {
	var res SubtaskResult
	e.mutate(ctx, func() Field {
		var changed Field
		res, changed = e.completeSubtaskLocked(habitID, subtaskID)
		return changed
	})
	return res
}

func (e *Engine) completeSubtaskLocked(habitID, subtaskID string) (SubtaskResult, Field) {
	var res SubtaskResult
	i := e.habitIndexLocked(habitID)
	if i < 0 {
		return res, 0
	}
	h := &e.habits[i]
	idx := -1
	for j := range h.Subtasks {
		if h.Subtasks[j].ID == subtaskID {
			idx = j
			break
		}
	}
	if idx < 0 {
		return res, 0
	}
	if h.Subtasks[idx].IsCompleted {
		res.Remaining = h.RemainingSubtasks()
		res.NextIndex = h.CurrentSubtaskIndex
		return res, 0
	}

	h.Subtasks[idx].IsCompleted = true
	h.CurrentSubtaskIndex = nextOpenSubtask(h.Subtasks, idx)

	res.Completed = true
	res.Remaining = h.RemainingSubtasks()
	res.NextIndex = h.CurrentSubtaskIndex
	res.Level = applyXP(&e.character, SubtaskXP, CategoryStat(h.Category))

	changed := FieldHabits | FieldCharacter
	if res.Unlocked = e.checkAchievementsLocked(); len(res.Unlocked) > 0 {
		changed |= FieldAchievements
	}
	return res, changed
}

// nextOpenSubtask returns the first incomplete subtask after from, wrapping
// to the start, or the last index when all are done.
func nextOpenSubtask(subtasks []Subtask, from int) int {
	n := len(subtasks)
	for k := 1; k <= n; k++ {
		j := (from + k) % n
		if !subtasks[j].IsCompleted {
			return j
		}
	}
	return n - 1
}

// GainXP adds XP to the character outside of any habit.
func (e *Engine) GainXP(ctx context.Context, amount int, stat Stat) LevelResult {
	var res LevelResult
	e.mutate(ctx, func() Field {
		if amount <= 0 {
			res = LevelResult{LevelBefore: e.character.Level, LevelAfter: e.character.Level, Stat: stat}
			return 0
		}
		res = applyXP(&e.character, amount, stat)
		changed := FieldCharacter
		if len(e.checkAchievementsLocked()) > 0 {
			changed |= FieldAchievements
		}
		return changed
	})
	return res
}
