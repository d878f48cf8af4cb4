package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/config"
	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/engine"
	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/identity"
	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/questgen"
	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/remote"
	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/syncer"
)

func testConfig(t *testing.T, uid string) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.DBPath = filepath.Join(t.TempDir(), "aq.db")
	cfg.Remote.Backend = config.BackendNone
	cfg.Identity = config.IdentityConfig{UID: uid}
	cfg.LLM.APIKey = ""
	return cfg
}

func openTestApp(t *testing.T, cfg config.Config, opts ...Option) *App {
	t.Helper()
	opts = append([]Option{
		WithLogger(zaptest.NewLogger(t)),
		WithGenerator(questgen.Fallback{}),
		WithDebounce(time.Hour),
	}, opts...)
	a, err := Open(context.Background(), cfg, opts...)
	require.NoError(t, err)
	return a
}

func TestOpenPersistsAcrossRuns(t *testing.T) {
	cfg := testConfig(t, "")
	ctx := context.Background()

	a := openTestApp(t, cfg)
	assert.True(t, a.Engine.Today().HasLogin, "opening records the login")
	h, err := a.Engine.AddHabit(ctx, engine.HabitDraft{Title: "Journal"})
	require.NoError(t, err)
	require.NoError(t, a.Close())

	b := openTestApp(t, cfg)
	defer b.Close()
	got, ok := b.Engine.Habit(h.ID)
	require.True(t, ok)
	assert.Equal(t, "Journal", got.Title)
	assert.ErrorIs(t, b.Sync.Push(ctx), syncer.ErrLocalOnly)
}

func TestFinishSessionLogsHistory(t *testing.T) {
	mem := remote.NewMemory(nil)
	a := openTestApp(t, testConfig(t, "u1"), WithStore(mem))
	defer a.Close()
	ctx := context.Background()

	h, err := a.Engine.AddHabit(ctx, engine.HabitDraft{Title: "Deep work", XPReward: 40})
	require.NoError(t, err)
	_, ok := a.Engine.StartQuestSession(ctx, h.ID, 2)
	require.True(t, ok)

	res := a.FinishSession(ctx)
	require.True(t, res.Ended)
	assert.Equal(t, 40, res.Complete.XPAwarded)

	history, err := a.SessionHistory(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, h.ID, history[0].QuestID)
	assert.Equal(t, "u1", history[0].UserID)
	assert.Equal(t, 2, history[0].Pomodoros)
	assert.Equal(t, 40, history[0].XPAwarded)

	logged := mem.Sessions("u1")
	require.Len(t, logged, 1)
	assert.Equal(t, 2, logged[0].Pomodoros)

	assert.False(t, a.FinishSession(ctx).Ended, "no active session")
}

func TestOnboardPushesOnce(t *testing.T) {
	mem := remote.NewMemory(nil)
	a := openTestApp(t, testConfig(t, "u1"), WithStore(mem))
	defer a.Close()
	ctx := context.Background()
	require.Equal(t, 0, mem.Saves())

	res := a.Onboard(ctx, questgen.Profile{Name: "Rin", Roles: []string{"developer"}}, 3)
	require.NotEmpty(t, res.Added)
	assert.Equal(t, "Rin", a.Engine.Character().Name)

	titles := map[string]bool{}
	for _, h := range a.Engine.Habits() {
		titles[h.Title] = true
	}
	for _, q := range questgen.FallbackQuests() {
		assert.True(t, titles[q.Title], "generated quest %q added", q.Title)
	}

	a.Sync.Flush(ctx)
	assert.Equal(t, 1, mem.Saves())

	stored, err := mem.Load(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, a.Engine.Revision(), stored.Revision)
	assert.Len(t, stored.Habits, len(a.Engine.Habits()))
}

func TestAskRecordsFollowUp(t *testing.T) {
	a := openTestApp(t, testConfig(t, ""))
	defer a.Close()
	ctx := context.Background()

	_, err := a.Ask(ctx, "missing", "how?")
	require.Error(t, err)

	h, err := a.Engine.AddHabit(ctx, engine.HabitDraft{Title: "Practice scales"})
	require.NoError(t, err)
	f, err := a.Ask(ctx, h.ID, "How long per day?")
	require.NoError(t, err)
	assert.Contains(t, f.Response, "Practice scales")

	got, _ := a.Engine.Habit(h.ID)
	require.Len(t, got.FollowUps, 1)
	assert.Equal(t, "How long per day?", got.FollowUps[0].Query)
}

func TestResolveUser(t *testing.T) {
	u, err := ResolveUser(config.IdentityConfig{})
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = ResolveUser(config.IdentityConfig{UID: "u1", DisplayName: "Rin"})
	require.NoError(t, err)
	assert.Equal(t, &identity.User{UID: "u1", DisplayName: "Rin"}, u)

	token, err := identity.IssueToken(identity.User{UID: "u2", Email: "r@example.com"}, "s3cret")
	require.NoError(t, err)
	u, err = ResolveUser(config.IdentityConfig{UID: "ignored", Token: token, TokenSecret: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, "u2", u.UID)
	assert.Equal(t, "r@example.com", u.Email)

	_, err = ResolveUser(config.IdentityConfig{Token: token, TokenSecret: "wrong"})
	assert.ErrorIs(t, err, identity.ErrInvalidToken)
}

func TestResetLocalWipesProgressAndHistory(t *testing.T) {
	cfg := testConfig(t, "")
	ctx := context.Background()

	a := openTestApp(t, cfg)
	h, err := a.Engine.AddHabit(ctx, engine.HabitDraft{Title: "Stretch"})
	require.NoError(t, err)
	_, ok := a.Engine.StartQuestSession(ctx, h.ID, 1)
	require.True(t, ok)
	require.True(t, a.FinishSession(ctx).Ended)

	require.NoError(t, a.ResetLocal(ctx))
	assert.Empty(t, a.Engine.Habits())
	assert.Equal(t, 1, a.Engine.Character().Level)
	history, err := a.SessionHistory(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, history)
	require.NoError(t, a.Close())

	b := openTestApp(t, cfg)
	defer b.Close()
	assert.Empty(t, b.Engine.Habits())
}
