// Package engine owns the character, habits, achievements, daily activity and
// quest session state. All mutations go through an Engine; readers get value
// copies and observers are told about every committed change.
package engine

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Cache is the local durable key-value snapshot the engine writes through to.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

type Origin int

const (
	OriginLocal Origin = iota
	OriginRemote
)

func (o Origin) String() string {
	if o == OriginRemote {
		return "remote"
	}
	return "local"
}

// Change is delivered to observers after every committed mutation.
type Change struct {
	Fields    Field
	Origin    Origin
	Aggregate Aggregate
}

type Option func(*Engine)

func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithClock overrides time.Now. The clock's location defines calendar days.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

func WithIDFunc(newID func() string) Option {
	return func(e *Engine) {
		if newID != nil {
			e.newID = newID
		}
	}
}

type Engine struct {
	cache Cache
	log   *zap.Logger
	now   func() time.Time
	newID func() string

	mu           sync.Mutex
	character    Character
	habits       []Habit
	achievements []Achievement
	roles        UserRoles
	activities   []DailyActivity
	revision     int64
	session      *QuestSession

	observers map[int]func(Change)
	nextObsID int
}

func New(cache Cache, opts ...Option) *Engine {
	e := &Engine{
		cache:        cache,
		log:          zap.NewNop(),
		now:          time.Now,
		newID:        uuid.NewString,
		character:    DefaultCharacter(),
		achievements: DefaultAchievements(),
		observers:    map[int]func(Change){},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load hydrates state from the cache. Missing keys keep their defaults; a
// snapshot that fails validation is discarded as a whole.
func (e *Engine) Load(ctx context.Context) error {
	if e.cache == nil {
		return nil
	}

	agg := Aggregate{
		Character:    DefaultCharacter(),
		Achievements: DefaultAchievements(),
	}
	targets := map[string]any{
		"character":        &agg.Character,
		"habits":           &agg.Habits,
		"achievements":     &agg.Achievements,
		"user_roles":       &agg.UserRoles,
		"daily_activities": &agg.DailyActivities,
	}
	for _, key := range AllFields.Keys() {
		raw, ok, err := e.cache.Get(ctx, key)
		if err != nil {
			return err
		}
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		if key == "revision" {
			rev, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				e.log.Warn("ignoring cached revision", zap.String("value", raw), zap.Error(err))
				continue
			}
			agg.Revision = rev
			continue
		}
		if err := json.Unmarshal([]byte(raw), targets[key]); err != nil {
			e.log.Warn("ignoring cached field", zap.String("key", key), zap.Error(err))
		}
	}

	if err := agg.Validate(); err != nil {
		e.log.Warn("discarding cached state", zap.Error(err))
		return nil
	}

	e.mu.Lock()
	e.replaceLocked(agg)
	e.mu.Unlock()
	return nil
}

// Reset restores defaults and clears the cache.
func (e *Engine) Reset(ctx context.Context) {
	e.mu.Lock()
	e.character = DefaultCharacter()
	e.habits = nil
	e.achievements = DefaultAchievements()
	e.roles = UserRoles{}
	e.activities = nil
	e.session = nil
	e.revision = 0
	if e.cache != nil {
		for _, key := range AllFields.Keys() {
			if err := e.cache.Remove(ctx, key); err != nil {
				e.log.Warn("cache remove failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
	e.mu.Unlock()
}

// Snapshot returns a deep copy of the current aggregate.
func (e *Engine) Snapshot() Aggregate {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) Revision() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.revision
}

func (e *Engine) Character() Character {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.character
}

func (e *Engine) Habits() []Habit {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneHabits(e.habits)
}

// Habit returns a copy of the habit with the given ID.
func (e *Engine) Habit(id string) (Habit, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.habitIndexLocked(id)
	if i < 0 {
		return Habit{}, false
	}
	return cloneHabit(e.habits[i]), true
}

func (e *Engine) Achievements() []Achievement {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Achievement(nil), e.achievements...)
}

func (e *Engine) UserRoles() UserRoles {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked().UserRoles
}

// Subscribe registers fn for every committed change. fn runs outside the
// engine lock and may call back into the engine.
func (e *Engine) Subscribe(fn func(Change)) (unsubscribe func()) {
	e.mu.Lock()
	id := e.nextObsID
	e.nextObsID++
	e.observers[id] = fn
	e.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			delete(e.observers, id)
			e.mu.Unlock()
		})
	}
}

// mutate runs fn under the lock. fn returns the fields it changed; when any
// changed, the revision is stamped, the cache is written and observers are
// notified.
func (e *Engine) mutate(ctx context.Context, fn func() Field) {
	e.mu.Lock()
	changed := fn()
	if changed == 0 {
		e.mu.Unlock()
		return
	}
	e.stampRevisionLocked()
	changed |= FieldRevision
	e.commitLocked(ctx, changed, OriginLocal)
}

// commitLocked persists changed fields and notifies observers. It releases
// the lock before calling observers.
func (e *Engine) commitLocked(ctx context.Context, changed Field, origin Origin) {
	e.persistLocked(ctx, changed)
	ch := Change{Fields: changed, Origin: origin, Aggregate: e.snapshotLocked()}
	observers := make([]func(Change), 0, len(e.observers))
	for _, fn := range e.observers {
		observers = append(observers, fn)
	}
	e.mu.Unlock()

	for _, fn := range observers {
		fn(ch)
	}
}

// stampRevisionLocked advances the revision to max(prev+1, now in ms) so
// revisions both order local writes and roughly order writes across devices.
func (e *Engine) stampRevisionLocked() {
	next := e.now().UnixMilli()
	if next <= e.revision {
		next = e.revision + 1
	}
	e.revision = next
}

func (e *Engine) persistLocked(ctx context.Context, changed Field) {
	if e.cache == nil {
		return
	}
	for _, key := range changed.Keys() {
		var value string
		switch key {
		case "revision":
			value = strconv.FormatInt(e.revision, 10)
		default:
			data, err := json.Marshal(e.fieldValueLocked(key))
			if err != nil {
				e.log.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
				continue
			}
			value = string(data)
		}
		if err := e.cache.Set(ctx, key, value); err != nil {
			e.log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
}

func (e *Engine) fieldValueLocked(key string) any {
	switch key {
	case "character":
		return e.character
	case "habits":
		return nonNilHabits(e.habits)
	case "achievements":
		return e.achievements
	case "user_roles":
		return e.roles
	case "daily_activities":
		return nonNilActivities(e.activities)
	default:
		return nil
	}
}

func (e *Engine) snapshotLocked() Aggregate {
	return Aggregate{
		Character:       e.character,
		Habits:          e.habits,
		Achievements:    e.achievements,
		UserRoles:       e.roles,
		DailyActivities: e.activities,
		Revision:        e.revision,
	}.Clone()
}

func (e *Engine) replaceLocked(agg Aggregate) {
	agg = agg.Clone()
	e.character = agg.Character
	e.habits = agg.Habits
	e.achievements = mergeAchievements(e.achievements, agg.Achievements)
	e.roles = agg.UserRoles
	e.activities = agg.DailyActivities
	e.revision = agg.Revision
	if e.session != nil && e.habitIndexLocked(e.session.QuestID) < 0 {
		e.session = nil
	}
}

func (e *Engine) habitIndexLocked(id string) int {
	for i := range e.habits {
		if e.habits[i].ID == id {
			return i
		}
	}
	return -1
}

// timestamp is the clock reading stored on entities: UTC, millisecond precision.
func (e *Engine) timestamp() time.Time {
	return e.now().UTC().Truncate(time.Millisecond)
}

func nonNilHabits(h []Habit) []Habit {
	if h == nil {
		return []Habit{}
	}
	return h
}

func nonNilActivities(a []DailyActivity) []DailyActivity {
	if a == nil {
		return []DailyActivity{}
	}
	return a
}
