package engine

import (
	"context"
	"errors"
	"strings"

	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/catalog"
)

func normalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrTitleRequired
	}
	return title, nil
}

// AddHabit creates a custom habit from a draft. Missing enums fall back to
// Personal, daily and basic.
func (e *Engine) AddHabit(ctx context.Context, d HabitDraft) (Habit, error) {
	title, err := normalizeTitle(d.Title)
	if err != nil {
		return Habit{}, err
	}

	var out Habit
	e.mutate(ctx, func() Field {
		h := e.habitFromDraftLocked(d)
		h.Title = title
		e.habits = append(e.habits, h)
		out = cloneHabit(h)
		return FieldHabits
	})
	return out, nil
}

func (e *Engine) habitFromDraftLocked(d HabitDraft) Habit {
	category := d.Category
	if !category.IsValid() {
		category = catalog.DefaultCategory
	}
	freq := d.Frequency
	if !freq.IsValid() {
		freq = catalog.FrequencyDaily
	}
	diff := d.Difficulty
	if !diff.IsValid() {
		diff = catalog.DifficultyBasic
	}
	xp := d.XPReward
	if xp < 0 {
		xp = 0
	}
	tier := d.Tier
	if tier < 0 {
		tier = 0
	}

	h := Habit{
		ID:          e.newID(),
		Title:       strings.TrimSpace(d.Title),
		Category:    category,
		XPReward:    xp,
		Frequency:   freq,
		Difficulty:  diff,
		Description: strings.TrimSpace(d.Description),
		Tier:        tier,
		IsCustom:    true,
		CreatedAt:   e.timestamp(),
	}
	for _, sd := range d.Subtasks {
		st := strings.TrimSpace(sd.Title)
		if st == "" {
			continue
		}
		pomodoros := sd.EstimatedPomodoros
		if pomodoros < 1 {
			pomodoros = 1
		}
		h.Subtasks = append(h.Subtasks, Subtask{
			ID:                 e.newID(),
			Title:              st,
			Description:        strings.TrimSpace(sd.Description),
			EstimatedPomodoros: pomodoros,
			Resources:          append([]string(nil), sd.Resources...),
		})
	}
	return h
}

// AcceptTemplate instantiates a catalog template as a habit. The habit keeps
// the template ID, so a template can be accepted once. The template is scaled
// by the best current habit streak and must be unlocked.
func (e *Engine) AcceptTemplate(ctx context.Context, templateID string) (Habit, error) {
	t, ok := catalog.Lookup(strings.TrimSpace(templateID))
	if !ok {
		return Habit{}, ErrUnknownTemplate
	}

	var (
		out    Habit
		outErr error
	)
	e.mutate(ctx, func() Field {
		if e.habitIndexLocked(t.ID) >= 0 {
			outErr = ErrAlreadyAccepted
			return 0
		}
		streak := e.maxHabitStreakLocked()
		if u := t.Unlock; u != nil && (e.character.Level < u.Level || streak < u.Streak) {
			outErr = LockedError{TemplateID: t.ID, RequiredLevel: u.Level, RequiredStreak: u.Streak}
			return 0
		}
		h := e.habitFromTemplateLocked(catalog.ScaleQuestDifficulty(t, streak))
		e.habits = append(e.habits, h)
		out = cloneHabit(h)
		return FieldHabits
	})
	return out, outErr
}

func (e *Engine) habitFromTemplateLocked(t catalog.Template) Habit {
	h := Habit{
		ID:          t.ID,
		Title:       t.Title,
		Category:    t.Category,
		XPReward:    t.XPReward,
		Frequency:   t.Frequency,
		Difficulty:  t.Difficulty,
		Description: t.Description,
		Tier:        t.Tier,
		IsCustom:    false,
		CreatedAt:   e.timestamp(),
	}
	for _, st := range t.Subtasks {
		pomodoros := st.EstimatedPomodoros
		if pomodoros < 1 {
			pomodoros = 1
		}
		h.Subtasks = append(h.Subtasks, Subtask{
			ID:                 st.ID,
			Title:              st.Title,
			Description:        st.Description,
			EstimatedPomodoros: pomodoros,
		})
	}
	return h
}

// RemoveHabit deletes a habit. It reports false when no habit has that ID.
func (e *Engine) RemoveHabit(ctx context.Context, id string) bool {
	removed := false
	e.mutate(ctx, func() Field {
		i := e.habitIndexLocked(id)
		if i < 0 {
			return 0
		}
		e.habits = append(e.habits[:i], e.habits[i+1:]...)
		if e.session != nil && e.session.QuestID == id {
			e.session = nil
		}
		removed = true
		return FieldHabits
	})
	return removed
}

// IsLocked reports whether err is a LockedError.
func IsLocked(err error) bool {
	var le LockedError
	return errors.As(err, &le)
}
