package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type SessionRepo struct {
	db *sql.DB
}

func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

func (r *SessionRepo) Insert(ctx context.Context, rec SessionRecord) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO quest_sessions (user_id, quest_id, pomodoros, xp_awarded, started_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.UserID, rec.QuestID, rec.Pomodoros, rec.XPAwarded, rec.StartedAt.UTC(), rec.CompletedAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("session insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("session last insert id: %w", err)
	}
	return id, nil
}

// Recent returns up to limit sessions, newest first.
func (r *SessionRepo) Recent(ctx context.Context, limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, COALESCE(user_id, ''), quest_id, pomodoros, xp_awarded, started_at, completed_at
		FROM quest_sessions
		ORDER BY completed_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("session recent: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var s SessionRecord
		if err := rows.Scan(&s.ID, &s.UserID, &s.QuestID, &s.Pomodoros, &s.XPAwarded, &s.StartedAt, &s.CompletedAt); err != nil {
			return nil, fmt.Errorf("session scan: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("session rows: %w", err)
	}
	return out, nil
}

// PomodorosSince sums pomodoros of sessions completed at or after since.
func (r *SessionRepo) PomodorosSince(ctx context.Context, since time.Time) (int, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(pomodoros), 0)
		FROM quest_sessions
		WHERE completed_at >= ?
	`, since.UTC())
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("session pomodoros: %w", err)
	}
	return n, nil
}
