package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/catalog"
	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/engine"
)

func press(t *testing.T, m boardModel, key string) boardModel {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(msg)
	m = next.(boardModel)
	if cmd != nil {
		next, _ = m.Update(cmd())
		m = next.(boardModel)
	}
	return m
}

func TestBoardCompletesSubtasksThenHabit(t *testing.T) {
	ctx := context.Background()
	e := engine.New(nil)
	h, err := e.AddHabit(ctx, engine.HabitDraft{
		Title:    "Publish a post",
		Subtasks: []engine.SubtaskDraft{{Title: "Draft"}},
	})
	if err != nil {
		t.Fatalf("AddHabit: %v", err)
	}

	m := newBoardModel(ctx, e)
	m = press(t, m, "c")
	if !strings.Contains(m.lastLog, "nothing to complete") {
		t.Fatalf("habit with open steps completed: %q", m.lastLog)
	}

	m = press(t, m, "enter")
	if got := len(m.questLines()); got != 2 {
		t.Fatalf("lines after expand = %d, want 2", got)
	}
	m = press(t, m, "down")
	m = press(t, m, "c")
	if !strings.Contains(m.lastLog, "Finished step Draft") {
		t.Fatalf("lastLog = %q", m.lastLog)
	}

	m = press(t, m, "k")
	m = press(t, m, "c")
	got, _ := e.Habit(h.ID)
	if !got.Completed {
		t.Fatalf("habit not completed after its steps; log %q", m.lastLog)
	}
	if !strings.Contains(m.View(), "Publish a post") {
		t.Fatalf("view missing habit title")
	}
}

func TestBoardRollsOverAtMidnight(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 12, 23, 0, 0, 0, time.UTC)
	e := engine.New(nil, engine.WithClock(func() time.Time { return now }))
	h, err := e.AddHabit(ctx, engine.HabitDraft{Title: "Read", Frequency: catalog.FrequencyDaily})
	if err != nil {
		t.Fatalf("AddHabit: %v", err)
	}
	e.CompleteHabit(ctx, h.ID)

	m := newBoardModel(ctx, e)
	if !m.habits[0].Completed {
		t.Fatalf("board missed the completion")
	}

	now = now.Add(2 * time.Hour)
	next, cmd := m.Update(dayTickMsg{})
	m = next.(boardModel)
	if m.habits[0].Completed {
		t.Fatalf("habit still completed after midnight")
	}
	if !strings.Contains(m.lastLog, "New day") {
		t.Fatalf("lastLog = %q", m.lastLog)
	}
	if cmd == nil {
		t.Fatalf("next midnight tick not scheduled")
	}
}

func TestUntilMidnight(t *testing.T) {
	now := time.Date(2024, 3, 12, 22, 30, 0, 0, time.UTC)
	if got := untilMidnight(now); got != 90*time.Minute {
		t.Fatalf("untilMidnight = %v, want 1h30m", got)
	}
}
