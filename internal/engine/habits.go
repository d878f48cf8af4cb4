package engine

import (
	"context"
	"time"

	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/catalog"
)

// PeriodStart returns the start of the completion period containing t:
// local midnight for daily habits, Monday midnight for weekly habits.
// Milestones have a single period, reported as the zero time.
func PeriodStart(t time.Time, f catalog.Frequency) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	switch f {
	case catalog.FrequencyDaily:
		return day
	case catalog.FrequencyWeekly:
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	default:
		return time.Time{}
	}
}

func previousPeriodStart(t time.Time, f catalog.Frequency) time.Time {
	cur := PeriodStart(t, f)
	switch f {
	case catalog.FrequencyDaily:
		return cur.AddDate(0, 0, -1)
	case catalog.FrequencyWeekly:
		return cur.AddDate(0, 0, -7)
	default:
		return time.Time{}
	}
}

// Rollover clears the completed-today flag and the subtask progress of
// habits whose period has ended and breaks the streak of habits that skipped a whole period. It returns
// the number of habits changed.
func (e *Engine) Rollover(ctx context.Context) int {
	n := 0
	e.mutate(ctx, func() Field {
		n = e.rolloverLocked(e.now())
		if n == 0 {
			return 0
		}
		return FieldHabits
	})
	return n
}

func (e *Engine) rolloverLocked(now time.Time) int {
	changed := 0
	for i := range e.habits {
		h := &e.habits[i]
		if h.Frequency == catalog.FrequencyMilestone || h.LastCompleted == nil {
			continue
		}
		last := h.LastCompleted.In(now.Location())
		touched := false
		if h.Completed && last.Before(PeriodStart(now, h.Frequency)) {
			h.Completed = false
			for j := range h.Subtasks {
				h.Subtasks[j].IsCompleted = false
			}
			h.CurrentSubtaskIndex = 0
			touched = true
		}
		if h.Streak > 0 && last.Before(previousPeriodStart(now, h.Frequency)) {
			h.Streak = 0
			touched = true
		}
		if touched {
			changed++
		}
	}
	return changed
}
