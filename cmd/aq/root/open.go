package root

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/app"
	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/config"
	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/engine"
)

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if offline {
		cfg.Remote.Backend = config.BackendNone
	}
	return cfg, nil
}

func openApp(ctx context.Context) (*app.App, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	a, err := app.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := a.Close(); err != nil {
			a.Log.Sugar().Warnf("shutdown: %v", err)
		}
	}
	return a, cleanup, nil
}

// resolveHabit finds a habit by exact ID, by its 1-based position in
// `aq list`, or by a unique ID prefix.
func resolveHabit(e *engine.Engine, ref string) (engine.Habit, error) {
	ref = strings.TrimSpace(ref)
	if h, ok := e.Habit(ref); ok {
		return h, nil
	}
	habits := e.Habits()
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(habits) {
			return engine.Habit{}, fmt.Errorf("no habit #%d (have %d)", n, len(habits))
		}
		return habits[n-1], nil
	}
	var match *engine.Habit
	for i := range habits {
		if ref != "" && strings.HasPrefix(habits[i].ID, ref) {
			if match != nil {
				return engine.Habit{}, fmt.Errorf("habit id %q is ambiguous", ref)
			}
			match = &habits[i]
		}
	}
	if match == nil {
		return engine.Habit{}, fmt.Errorf("habit %q not found", ref)
	}
	return *match, nil
}

// resolveSubtask finds a subtask of h by ID or 1-based position.
func resolveSubtask(h engine.Habit, ref string) (engine.Subtask, error) {
	ref = strings.TrimSpace(ref)
	for _, st := range h.Subtasks {
		if st.ID == ref {
			return st, nil
		}
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(h.Subtasks) {
		return h.Subtasks[n-1], nil
	}
	return engine.Subtask{}, fmt.Errorf("%s has no step %q", h.Title, ref)
}
