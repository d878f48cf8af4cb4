package engine

import (
	"context"
	"strings"
)

// maxFollowUps bounds the follow-up history kept per habit.
const maxFollowUps = 10

// RecordFollowUp appends a question and its answer to a habit, dropping the
// oldest entries beyond maxFollowUps. It reports false for an unknown habit
// or an empty query.
func (e *Engine) RecordFollowUp(ctx context.Context, habitID string, f FollowUp) bool {
	f.Query = strings.TrimSpace(f.Query)
	if f.Query == "" {
		return false
	}
	f.Resources = append([]string(nil), f.Resources...)

	var ok bool
	e.mutate(ctx, func() Field {
		i := e.habitIndexLocked(habitID)
		if i < 0 {
			return 0
		}
		h := &e.habits[i]
		h.FollowUps = append(h.FollowUps, f)
		if n := len(h.FollowUps); n > maxFollowUps {
			h.FollowUps = append([]FollowUp(nil), h.FollowUps[n-maxFollowUps:]...)
		}
		ok = true
		return FieldHabits
	})
	return ok
}
