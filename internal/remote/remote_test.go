package remote

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/catalog"
	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/config"
	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/engine"
)

func sampleAggregate(rev int64) engine.Aggregate {
	return engine.Aggregate{
		Character:    engine.DefaultCharacter(),
		Achievements: engine.DefaultAchievements(),
		Habits: []engine.Habit{{
			ID:         "fit-run",
			Title:      "Morning Run",
			Category:   catalog.CategoryFitness,
			XPReward:   40,
			Streak:     2,
			Frequency:  catalog.FrequencyDaily,
			Difficulty: catalog.DifficultyBasic,
			CreatedAt:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		}},
		UserRoles:       engine.UserRoles{Roles: []string{"athlete"}},
		DailyActivities: []engine.DailyActivity{{Date: "2024-03-01", HasLogin: true}},
		Revision:        rev,
	}
}

// exerciseStore runs the contract every backend must satisfy.
func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	got, err := store.Load(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = store.Load(ctx, "")
	assert.ErrorIs(t, err, ErrNoUser)

	agg := sampleAggregate(10)
	require.NoError(t, store.Save(ctx, "u1", agg, engine.AllFields))

	got, err = store.Load(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(10), got.Revision)
	require.Len(t, got.Habits, 1)
	assert.Equal(t, "Morning Run", got.Habits[0].Title)
	assert.Equal(t, []string{"athlete"}, got.UserRoles.Roles)

	// Partial save leaves other fields in place.
	next := sampleAggregate(11)
	next.Character.Name = "Rin"
	next.Habits = nil
	require.NoError(t, store.Save(ctx, "u1", next, engine.FieldCharacter|engine.FieldRevision))

	got, err = store.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Rin", got.Character.Name)
	assert.Equal(t, int64(11), got.Revision)
	assert.Len(t, got.Habits, 1, "habits untouched by a character-only save")
}

func exerciseSubscribe(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	var mu sync.Mutex
	var seen []int64
	unsubscribe, err := store.Subscribe(ctx, "u2", func(a engine.Aggregate) {
		mu.Lock()
		seen = append(seen, a.Revision)
		mu.Unlock()
	})
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, "u2", sampleAggregate(5), engine.AllFields))
	require.NoError(t, store.Save(ctx, "other", sampleAggregate(6), engine.AllFields))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 1 && seen[0] == 5
	}, 2*time.Second, 10*time.Millisecond)

	unsubscribe()
	require.NoError(t, store.Save(ctx, "u2", sampleAggregate(7), engine.AllFields))
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int64{5}, seen)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemory(zaptest.NewLogger(t)))
}

func TestMemorySubscribe(t *testing.T) {
	exerciseSubscribe(t, NewMemory(zaptest.NewLogger(t)))
}

func TestMemoryRejectsInvalidDocument(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(zaptest.NewLogger(t))
	m.Put("u1", "character", `{"name":"x","level":0,"xp":0,"xpToNext":100}`)

	_, err := m.Load(ctx, "u1")
	var verr *engine.ValidationError
	assert.ErrorAs(t, err, &verr)

	m.Put("u1", "character", `not json`)
	_, err = m.Load(ctx, "u1")
	assert.ErrorAs(t, err, &verr)
}

func TestMemorySaveLandsWhenFanOutCannotDecode(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(zaptest.NewLogger(t))
	calls := 0
	_, err := m.Subscribe(ctx, "u1", func(engine.Aggregate) { calls++ })
	require.NoError(t, err)
	m.Put("u1", "habits", `not json`)

	next := sampleAggregate(3)
	next.Character.Name = "Rin"
	require.NoError(t, m.Save(ctx, "u1", next, engine.FieldCharacter|engine.FieldRevision))
	assert.Equal(t, 1, m.Saves())
	assert.Zero(t, calls)

	m.Put("u1", "habits", `[]`)
	got, err := m.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Rin", got.Character.Name)
}

func TestMemorySessionLog(t *testing.T) {
	m := NewMemory(zaptest.NewLogger(t))
	rec := SessionRecord{QuestID: "fit-run", Pomodoros: 2, XPAwarded: 40}
	require.NoError(t, m.LogSession(context.Background(), "u1", rec))
	assert.Equal(t, []SessionRecord{rec}, m.Sessions("u1"))
}

func newMiniRedis(t *testing.T) *Redis {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedis(client, zaptest.NewLogger(t))
	t.Cleanup(func() { _ = store.Close(context.Background()) })
	return store
}

func TestRedisStore(t *testing.T) {
	exerciseStore(t, newMiniRedis(t))
}

func TestRedisSubscribe(t *testing.T) {
	exerciseSubscribe(t, newMiniRedis(t))
}

func TestRedisSessionLog(t *testing.T) {
	store := newMiniRedis(t)
	ctx := context.Background()
	require.NoError(t, store.LogSession(ctx, "u1", SessionRecord{QuestID: "a", Pomodoros: 1}))
	require.NoError(t, store.LogSession(ctx, "u1", SessionRecord{QuestID: "b", Pomodoros: 2}))

	n, err := store.client.LLen(ctx, redisSessionsKey("u1")).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestOpenSelectsBackend(t *testing.T) {
	ctx := context.Background()

	store, err := Open(ctx, config.RemoteConfig{Backend: config.BackendNone}, nil)
	require.NoError(t, err)
	assert.Nil(t, store)

	store, err = Open(ctx, config.RemoteConfig{Backend: config.BackendMemory}, nil)
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, store)

	mr := miniredis.RunT(t)
	store, err = Open(ctx, config.RemoteConfig{Backend: config.BackendRedis, RedisAddr: mr.Addr()}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.IsType(t, &Redis{}, store)
	require.NoError(t, store.Close(ctx))

	_, err = Open(ctx, config.RemoteConfig{Backend: "dynamo"}, nil)
	assert.Error(t, err)
}

// Mongo needs a replica set for change streams, so it only runs against a
// real deployment.
func TestMongoStore(t *testing.T) {
	uri := os.Getenv("AQ_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("AQ_TEST_MONGO_URI not set")
	}
	ctx := context.Background()
	db := "aq_test_" + time.Now().Format("20060102150405")
	store, err := OpenMongo(ctx, uri, db, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.client.Database(db).Drop(context.Background())
		_ = store.Close(context.Background())
	})

	exerciseStore(t, store)
	exerciseSubscribe(t, store)
	require.NoError(t, store.LogSession(ctx, "u1", SessionRecord{QuestID: "fit-run", Pomodoros: 1}))
}
