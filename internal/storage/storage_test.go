package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *Cache {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewCache(db)
}

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "nested", "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	if err := Migrate(ctx, db); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestCacheSetGetRemove(t *testing.T) {
	ctx := context.Background()
	c := openTestDB(t)

	if _, ok, err := c.Get(ctx, "habits"); err != nil || ok {
		t.Fatalf("Get missing = ok %v err %v, want false nil", ok, err)
	}
	if err := c.Set(ctx, "habits", `[]`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Set(ctx, "habits", `[{"id":"a"}]`); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	v, ok, err := c.Get(ctx, "habits")
	if err != nil || !ok {
		t.Fatalf("Get = ok %v err %v", ok, err)
	}
	if v != `[{"id":"a"}]` {
		t.Fatalf("Get = %q, want overwritten value", v)
	}

	if err := c.Set(ctx, "character", `{}`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	keys, err := c.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 2 || keys[0] != "character" || keys[1] != "habits" {
		t.Fatalf("Keys = %v", keys)
	}

	if err := c.Remove(ctx, "habits"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "habits"); ok {
		t.Fatalf("expected habits removed")
	}
	if err := c.Remove(ctx, "habits"); err != nil {
		t.Fatalf("Remove missing: %v", err)
	}
}

func TestSessionRepo(t *testing.T) {
	ctx := context.Background()
	c := openTestDB(t)
	repo := NewSessionRepo(c.db)

	base := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := repo.Insert(ctx, SessionRecord{
			UserID:      "u1",
			QuestID:     "fit-run",
			Pomodoros:   i + 1,
			XPAwarded:   40,
			StartedAt:   base.Add(time.Duration(i) * time.Hour),
			CompletedAt: base.Add(time.Duration(i)*time.Hour + 25*time.Minute),
		})
		if err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	recent, err := repo.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Recent len = %d, want 2", len(recent))
	}
	if recent[0].Pomodoros != 3 || recent[1].Pomodoros != 2 {
		t.Fatalf("Recent order = %+v", recent)
	}
	if recent[0].UserID != "u1" || recent[0].QuestID != "fit-run" {
		t.Fatalf("Recent[0] = %+v", recent[0])
	}

	n, err := repo.PomodorosSince(ctx, base.Add(time.Hour))
	if err != nil {
		t.Fatalf("PomodorosSince: %v", err)
	}
	if n != 5 {
		t.Fatalf("PomodorosSince = %d, want 5", n)
	}

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	recent, err = repo.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent after clear: %v", err)
	}
	if len(recent) != 0 {
		t.Fatalf("expected history cleared, got %d", len(recent))
	}
}
