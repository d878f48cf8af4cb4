package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/engine"
	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/remote"
	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/storage"
	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/timeouts"
)

// FinishSession completes the active quest session and logs it.
func (a *App) FinishSession(ctx context.Context) engine.SessionResult {
	res := a.Engine.CompleteQuestSession(ctx)
	if res.Ended {
		a.logSession(ctx, res)
	}
	return res
}

// FinishSessionSubtask completes one subtask of the active session; the
// session is logged once it ends.
func (a *App) FinishSessionSubtask(ctx context.Context, subtaskID string) engine.SessionResult {
	res := a.Engine.CompleteSessionSubtask(ctx, subtaskID)
	if res.Ended {
		a.logSession(ctx, res)
	}
	return res
}

// SessionHistory returns the most recent locally logged sessions.
func (a *App) SessionHistory(ctx context.Context, limit int) ([]storage.SessionRecord, error) {
	return a.Sessions.Recent(ctx, limit)
}

// logSession writes the finished session to the local history and, when the
// remote store keeps one, to the remote session log. Both are best effort.
func (a *App) logSession(ctx context.Context, res engine.SessionResult) {
	uid := ""
	if u := a.Identity.Current(); u != nil {
		uid = u.UID
	}
	completed := a.now().UTC()
	rec := storage.SessionRecord{
		UserID:      uid,
		QuestID:     res.Session.QuestID,
		Pomodoros:   res.Session.PomodoroCount,
		XPAwarded:   res.Complete.XPAwarded,
		StartedAt:   res.Session.StartedAt,
		CompletedAt: completed,
	}
	if _, err := a.Sessions.Insert(ctx, rec); err != nil {
		a.Log.Warn("session history write failed", zap.String("quest", rec.QuestID), zap.Error(err))
	}

	sl, ok := a.Store.(remote.SessionLog)
	if !ok || uid == "" {
		return
	}
	logCtx, cancel := context.WithTimeout(ctx, timeouts.RemoteOp)
	defer cancel()
	err := sl.LogSession(logCtx, uid, remote.SessionRecord{
		QuestID:     rec.QuestID,
		Pomodoros:   rec.Pomodoros,
		XPAwarded:   rec.XPAwarded,
		StartedAt:   rec.StartedAt,
		CompletedAt: rec.CompletedAt,
	})
	if err != nil {
		a.Log.Warn("remote session log failed", zap.String("quest", rec.QuestID), zap.Error(err))
	}
}
