package storage

import "time"

// SessionRecord is a finished quest session.
type SessionRecord struct {
	ID          int64
	UserID      string
	QuestID     string
	Pomodoros   int
	XPAwarded   int
	StartedAt   time.Time
	CompletedAt time.Time
}
