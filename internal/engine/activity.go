package engine

import (
	"context"
	"sort"
	"time"
)

const dateLayout = "2006-01-02"

// DateKey formats t as the calendar date used to key DailyActivity.
func DateKey(t time.Time) string {
	return t.Format(dateLayout)
}

// recordActivityLocked merges into today's entry, appending one if needed.
func (e *Engine) recordActivityLocked(now time.Time, apply func(a *DailyActivity)) {
	key := DateKey(now)
	for i := range e.activities {
		if e.activities[i].Date == key {
			apply(&e.activities[i])
			return
		}
	}
	a := DailyActivity{Date: key}
	apply(&a)
	e.activities = append(e.activities, a)
}

// DailyActivity returns the entry for date (YYYY-MM-DD).
func (e *Engine) DailyActivity(date string) (DailyActivity, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, a := range e.activities {
		if a.Date == date {
			return a, true
		}
	}
	return DailyActivity{}, false
}

// Today returns today's activity, zero-valued when absent.
func (e *Engine) Today() DailyActivity {
	a, ok := e.DailyActivity(DateKey(e.now()))
	if !ok {
		return DailyActivity{Date: DateKey(e.now())}
	}
	return a
}

// RecordLogin marks today as logged in (once per day) and runs the day
// rollover. It reports whether this was the first login of the day.
func (e *Engine) RecordLogin(ctx context.Context) bool {
	first := false
	e.mutate(ctx, func() Field {
		now := e.now()
		var changed Field
		if n := e.rolloverLocked(now); n > 0 {
			changed |= FieldHabits
		}
		key := DateKey(now)
		for _, a := range e.activities {
			if a.Date == key && a.HasLogin {
				return changed
			}
		}
		e.recordActivityLocked(now, func(a *DailyActivity) { a.HasLogin = true })
		first = true
		return changed | FieldDailyActivities
	})
	return first
}

// StreakCount counts consecutive days, ending today, with a login entry.
// It is 0 when today has no login.
func (e *Engine) StreakCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	today, _ := time.Parse(dateLayout, DateKey(e.now()))
	var days []time.Time
	for _, a := range e.activities {
		if !a.HasLogin {
			continue
		}
		d, err := time.Parse(dateLayout, a.Date)
		if err != nil || d.After(today) {
			continue
		}
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	if len(days) == 0 || !days[0].Equal(today) {
		return 0
	}
	count := 1
	for i := 1; i < len(days); i++ {
		if days[i].Equal(days[i-1]) {
			continue
		}
		if days[i-1].Sub(days[i]) != 24*time.Hour {
			break
		}
		count++
	}
	return count
}
