package questgen

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap/zaptest"

	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/catalog"
	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/config"
)

// scriptedModel replies with the queued responses in order; an empty string
// reply returns err instead.
type scriptedModel struct {
	mu        sync.Mutex
	responses []string
	err       error
	delay     time.Duration
	calls     int
	lastHuman string
}

func (m *scriptedModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	m.mu.Lock()
	m.calls++
	for _, msg := range messages {
		if msg.Role == llms.ChatMessageTypeHuman {
			if tp, ok := msg.Parts[0].(llms.TextContent); ok {
				m.lastHuman = tp.Text
			}
		}
	}
	var reply string
	if len(m.responses) > 0 {
		reply = m.responses[0]
		m.responses = m.responses[1:]
	}
	delay := m.delay
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if reply == "" {
		if m.err != nil {
			return nil, m.err
		}
		return &llms.ContentResponse{}, nil
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: reply}}}, nil
}

func (m *scriptedModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func newTestAdapter(t *testing.T, m *scriptedModel, opts ...Option) *Adapter {
	t.Helper()
	opts = append([]Option{WithLogger(zaptest.NewLogger(t)), WithRetryInterval(time.Millisecond)}, opts...)
	return NewAdapter(m, opts...)
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"markers", `Sure! [[JSON_START]] {"a":1} [[JSON_END]] bye`, `{"a":1}`},
		{"fence", "Here:\n```json\n{\"a\":2}\n```\n", `{"a":2}`},
		{"balanced", `noise {"a":{"b":"}"}} trailing }`, `{"a":{"b":"}"}}`},
		{"array", `result: [1,[2,3]] done`, `[1,[2,3]]`},
		{"skips unbalanced", `{ broken ] then {"ok":true}`, `{"ok":true}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractJSON(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := ExtractJSON("no json here")
	assert.ErrorIs(t, err, ErrNoJSON)
}

func TestGenerateQuestsParsesResponse(t *testing.T) {
	m := &scriptedModel{responses: []string{`[[JSON_START]]{"quests":[
		{"title":"Refactor a module","category":"tech","xpReward":60,"frequency":"weekly","difficulty":"hard",
		 "subtasks":[{"title":"Write tests","estimatedPomodoros":2}]},
		{"title":"Daily kata","category":"Tech","xpReward":20},
		{"title":"Extra","xpReward":5}
	]}[[JSON_END]]`}}
	a := newTestAdapter(t, m)

	qs := a.GenerateQuests(context.Background(), QuestRequest{
		Profile:  Profile{Roles: []string{"developer"}, SkillLevel: "Advanced"},
		Count:    2,
		Existing: []string{"Ship a Daily Commit"},
	})
	require.Len(t, qs, 2)
	assert.Equal(t, "Refactor a module", qs[0].Title)
	assert.Contains(t, m.lastHuman, "Ship a Daily Commit")
	assert.Contains(t, m.lastHuman, "developer")

	d := qs[0].Draft()
	assert.Equal(t, catalog.CategoryTech, d.Category)
	assert.Equal(t, catalog.FrequencyWeekly, d.Frequency)
	assert.Equal(t, catalog.DifficultyElite, d.Difficulty)
	require.Len(t, d.Subtasks, 1)
	assert.Equal(t, 2, d.Subtasks[0].EstimatedPomodoros)
}

func TestGenerateQuestsRetriesInvalidThenSucceeds(t *testing.T) {
	m := &scriptedModel{responses: []string{
		`I cannot help with that.`,
		`{"quests":[{"title":"","xpReward":10}]}`,
		`{"quests":[{"title":"Stretch","xpReward":10}]}`,
	}}
	a := newTestAdapter(t, m)

	qs := a.GenerateQuests(context.Background(), QuestRequest{})
	require.Len(t, qs, 1)
	assert.Equal(t, "Stretch", qs[0].Title)
	assert.Equal(t, 3, m.calls)
}

func TestGenerateQuestsDropsFieldsOfRejectedAttempt(t *testing.T) {
	m := &scriptedModel{responses: []string{
		`{"quests":[{"title":"Bad","description":"from the rejected reply","xpReward":5000}]}`,
		`{"quests":[{"title":"Good","xpReward":20}]}`,
	}}
	a := newTestAdapter(t, m)

	qs := a.GenerateQuests(context.Background(), QuestRequest{})
	require.Len(t, qs, 1)
	assert.Equal(t, Quest{Title: "Good", XPReward: 20}, qs[0])
	assert.Equal(t, 2, m.calls)
}

func TestGenerateQuestsFallsBackOnError(t *testing.T) {
	m := &scriptedModel{err: errors.New("503")}
	a := newTestAdapter(t, m)

	qs := a.GenerateQuests(context.Background(), QuestRequest{})
	assert.Equal(t, FallbackQuests(), qs)
	assert.Equal(t, defaultAttempts, m.calls)
	assert.GreaterOrEqual(t, len(qs), 2)
	assert.LessOrEqual(t, len(qs), 3)
}

func TestGenerateQuestsFallsBackOnTimeout(t *testing.T) {
	m := &scriptedModel{delay: time.Second, responses: []string{`{"quests":[{"title":"late"}]}`}}
	a := newTestAdapter(t, m, WithTimeout(10*time.Millisecond), WithAttempts(1))

	start := time.Now()
	qs := a.GenerateQuests(context.Background(), QuestRequest{})
	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.Equal(t, FallbackQuests(), qs)
}

func TestOnboardingForcedCompletionAtTurnLimit(t *testing.T) {
	m := &scriptedModel{}
	a := newTestAdapter(t, m)

	turn := a.GenerateOnboardingTurn(context.Background(), nil, MaxOnboardingTurns, Profile{Name: "Rin", Roles: []string{"athlete"}})
	assert.True(t, turn.IsComplete)
	require.NotNil(t, turn.FinalProfile)
	assert.Equal(t, "Rin", turn.FinalProfile.Name)
	assert.Equal(t, DefaultSkillLevel, turn.FinalProfile.SkillLevel)
	assert.Equal(t, DefaultTimeCommitment, turn.FinalProfile.TimeCommitment)
	assert.Equal(t, []string{DefaultInterest}, turn.FinalProfile.Interests)
	assert.Zero(t, m.calls, "the model is not consulted past the limit")
}

func TestOnboardingMergesCollectedData(t *testing.T) {
	m := &scriptedModel{responses: []string{
		`{"message":"Nice to meet you, Rin! What do you do?","collectedData":{"skillLevel":"Beginner"},"isComplete":false}`,
		`{"message":"All set!","collectedData":{"roles":["developer"]},"isComplete":true}`,
	}}
	a := newTestAdapter(t, m)
	ctx := context.Background()

	history := []Message{{Role: RoleUser, Content: "I'm Rin"}}
	t1 := a.GenerateOnboardingTurn(ctx, history, 1, Profile{Name: "Rin"})
	assert.False(t, t1.IsComplete)
	assert.Equal(t, "Rin", t1.Collected.Name, "known fields are kept")
	assert.Equal(t, "Beginner", t1.Collected.SkillLevel)
	assert.Contains(t, m.lastHuman, "I'm Rin")

	t2 := a.GenerateOnboardingTurn(ctx, history, 2, t1.Collected)
	assert.True(t, t2.IsComplete)
	require.NotNil(t, t2.FinalProfile)
	assert.Equal(t, []string{"developer"}, t2.FinalProfile.Roles)
	assert.Equal(t, "Beginner", t2.FinalProfile.SkillLevel)
	assert.Equal(t, "All set!", t2.Message)
}

func TestOnboardingFallsBackToScript(t *testing.T) {
	m := &scriptedModel{err: errors.New("down")}
	a := newTestAdapter(t, m, WithAttempts(1))

	turn := a.GenerateOnboardingTurn(context.Background(), nil, 0, Profile{})
	assert.False(t, turn.IsComplete)
	assert.Equal(t, onboardingQuestions[0], turn.Message)
}

func TestFollowUp(t *testing.T) {
	m := &scriptedModel{responses: []string{`{"response":"Try **spaced repetition**.","resources":["https://example.com"]}`}}
	a := newTestAdapter(t, m)

	f := a.GenerateFollowUp(context.Background(), "How do I remember more?", "Flashcards")
	assert.Equal(t, "Try **spaced repetition**.", f.Response)
	assert.Equal(t, []string{"https://example.com"}, f.Resources)

	down := newTestAdapter(t, &scriptedModel{err: errors.New("down")}, WithAttempts(1))
	f = down.GenerateFollowUp(context.Background(), "?", "Flashcards")
	assert.Contains(t, f.Response, "Flashcards")
	assert.Equal(t, FallbackResources, f.Resources)
}

func TestNewWithoutKeyUsesFallback(t *testing.T) {
	g, err := New(config.LLMConfig{}, nil)
	require.NoError(t, err)
	assert.IsType(t, Fallback{}, g)
}

func TestProfileUserRoles(t *testing.T) {
	p := Profile{Roles: []string{"developer"}, Interests: []string{"mindful"}, FitnessTypes: []string{"yoga"}}
	r := p.UserRoles()
	assert.Equal(t, []string{"developer", "mindful"}, r.Roles)
	assert.Equal(t, []string{"yoga"}, r.FitnessTypes)
}
