package engine

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// StartQuestSession begins a focus session on a habit, replacing any active
// session. It reports false when the habit does not exist.
func (e *Engine) StartQuestSession(ctx context.Context, questID string, pomodoros int) (QuestSession, bool) {
	questID = strings.TrimSpace(questID)
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.habitIndexLocked(questID) < 0 {
		return QuestSession{}, false
	}
	if pomodoros < 1 {
		pomodoros = 1
	}
	s := QuestSession{QuestID: questID, PomodoroCount: pomodoros, StartedAt: e.timestamp()}
	e.session = &s
	e.log.Debug("quest session started", zap.String("quest", questID), zap.Int("pomodoros", pomodoros))
	return s, true
}

// ActiveSession returns the running session, if any.
func (e *Engine) ActiveSession() (QuestSession, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return QuestSession{}, false
	}
	return *e.session, true
}

// CancelQuestSession drops the active session without any reward.
func (e *Engine) CancelQuestSession() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	active := e.session != nil
	e.session = nil
	return active
}

type SessionResult struct {
	Session  QuestSession
	Ended    bool
	Complete CompleteResult
	Subtask  SubtaskResult
}

// CompleteQuestSession ends the active session, credits its pomodoros to
// today's activity and completes the habit.
func (e *Engine) CompleteQuestSession(ctx context.Context) SessionResult {
	var res SessionResult
	e.mutate(ctx, func() Field {
		if e.session == nil {
			return 0
		}
		s := *e.session
		e.session = nil
		res.Session = s
		res.Ended = true

		e.recordActivityLocked(e.now(), func(a *DailyActivity) {
			a.PomodorosCompleted += s.PomodoroCount
			a.HasLogin = true
		})
		var changed Field
		res.Complete, changed = e.completeHabitLocked(s.QuestID)
		return changed | FieldDailyActivities
	})
	return res
}

// CompleteSessionSubtask completes a subtask of the session's habit. The
// session ends once no subtasks remain open, completing the habit.
func (e *Engine) CompleteSessionSubtask(ctx context.Context, subtaskID string) SessionResult {
	var res SessionResult
	e.mutate(ctx, func() Field {
		if e.session == nil {
			return 0
		}
		s := *e.session
		res.Session = s

		var changed Field
		res.Subtask, changed = e.completeSubtaskLocked(s.QuestID, subtaskID)
		if !res.Subtask.Completed || res.Subtask.Remaining > 0 {
			return changed
		}

		e.session = nil
		res.Ended = true
		e.recordActivityLocked(e.now(), func(a *DailyActivity) {
			a.PomodorosCompleted += s.PomodoroCount
			a.HasLogin = true
		})
		var more Field
		res.Complete, more = e.completeHabitLocked(s.QuestID)
		return changed | more | FieldDailyActivities
	})
	return res
}
