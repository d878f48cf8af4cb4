// Package questgen turns a generative text model into quests, onboarding
// turns and follow-up answers. Every call is bounded by a timeout, retried a
// few times, validated, and falls back to fixed content on failure.
package questgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"

	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/config"
	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/engine"
	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/timeouts"
)

const (
	defaultAttempts = 3
	retryInterval   = 500 * time.Millisecond
	retryFactor     = 1.5
)

var errEmptyResponse = errors.New("empty model response")

type Option func(*Adapter)

func WithLogger(log *zap.Logger) Option {
	return func(a *Adapter) {
		if log != nil {
			a.log = log
		}
	}
}

// WithTimeout bounds each model call.
func WithTimeout(d time.Duration) Option {
	return func(a *Adapter) {
		if d > 0 {
			a.timeout = d
		}
	}
}

func WithAttempts(n int) Option {
	return func(a *Adapter) {
		if n > 0 {
			a.attempts = n
		}
	}
}

// WithRetryInterval sets the first retry delay.
func WithRetryInterval(d time.Duration) Option {
	return func(a *Adapter) {
		if d > 0 {
			a.interval = d
		}
	}
}

// Adapter is a Generator backed by an llms.Model.
type Adapter struct {
	model    llms.Model
	log      *zap.Logger
	timeout  time.Duration
	attempts int
	interval time.Duration
	fallback Fallback
}

func NewAdapter(model llms.Model, opts ...Option) *Adapter {
	a := &Adapter{
		model:    model,
		log:      zap.NewNop(),
		timeout:  timeouts.Generate,
		attempts: defaultAttempts,
		interval: retryInterval,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// New returns an Adapter over an OpenAI-compatible endpoint, or Fallback
// when no API key is configured.
func New(cfg config.LLMConfig, log *zap.Logger) (Generator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return Fallback{}, nil
	}
	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
		openai.WithResponseFormat(&openai.ResponseFormat{Type: "json_object"}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create llm client: %w", err)
	}
	return NewAdapter(model, WithLogger(log), WithTimeout(cfg.Timeout)), nil
}

var _ Generator = (*Adapter)(nil)

type questBatch struct {
	Quests []Quest `json:"quests" validate:"required,min=1,dive"`
}

func (a *Adapter) GenerateQuests(ctx context.Context, req QuestRequest) []Quest {
	count := req.Count
	if count <= 0 {
		count = 3
	}
	out, err := complete[questBatch](ctx, a, "quests", questSystemPrompt, questUserPrompt(req.Profile, count, req.Existing))
	if err != nil {
		a.log.Warn("quest generation fell back", zap.Error(err))
		return a.fallback.GenerateQuests(ctx, req)
	}
	if len(out.Quests) > count {
		out.Quests = out.Quests[:count]
	}
	return out.Quests
}

func (a *Adapter) GenerateOnboardingTurn(ctx context.Context, history []Message, turn int, collected Profile) OnboardingTurn {
	if turn >= MaxOnboardingTurns {
		return completeOnboarding(collected)
	}

	out, err := complete[OnboardingTurn](ctx, a, "onboarding", onboardingSystemPrompt, onboardingUserPrompt(history, turn, collected))
	if err != nil || strings.TrimSpace(out.Message) == "" {
		if err == nil {
			err = errEmptyResponse
		}
		a.log.Warn("onboarding turn fell back", zap.Int("turn", turn), zap.Error(err))
		return a.fallback.GenerateOnboardingTurn(ctx, history, turn, collected)
	}

	merged := out.Collected.merge(collected)
	if out.IsComplete {
		done := completeOnboarding(merged)
		done.Message = out.Message
		return done
	}
	return OnboardingTurn{Message: out.Message, Collected: merged}
}

func (a *Adapter) GenerateFollowUp(ctx context.Context, query, questContext string) FollowUp {
	out, err := complete[FollowUp](ctx, a, "follow-up", followUpSystemPrompt, followUpUserPrompt(query, questContext))
	if err != nil {
		a.log.Warn("follow-up fell back", zap.Error(err))
		return a.fallback.GenerateFollowUp(ctx, query, questContext)
	}
	return out
}

// complete sends one system+human exchange and decodes the JSON payload of
// the reply into a T, retrying on transport, parse and validation errors.
// Each attempt decodes into a fresh T; only a validated one is returned.
func complete[T any](ctx context.Context, a *Adapter, op, system, human string) (T, error) {
	messages := []llms.MessageContent{
		{Role: llms.ChatMessageTypeSystem, Parts: []llms.ContentPart{llms.TextPart(system)}},
		{Role: llms.ChatMessageTypeHuman, Parts: []llms.ContentPart{llms.TextPart(human)}},
	}
	policy := &backoff.ExponentialBackOff{
		InitialInterval:     a.interval,
		RandomizationFactor: 0,
		Multiplier:          retryFactor,
		MaxInterval:         10 * a.interval,
	}

	return backoff.Retry(ctx, func() (T, error) {
		var out T
		attemptCtx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()

		resp, err := a.model.GenerateContent(attemptCtx, messages, llms.WithTemperature(0.7))
		if err != nil {
			return out, err
		}
		if resp == nil || len(resp.Choices) == 0 {
			return out, errEmptyResponse
		}
		payload, err := ExtractJSON(resp.Choices[0].Content)
		if err != nil {
			return out, err
		}
		if err := json.Unmarshal([]byte(payload), &out); err != nil {
			return out, &engine.ValidationError{Subject: op + " response", Err: err}
		}
		if err := engine.ValidateStruct(op+" response", &out); err != nil {
			return out, err
		}
		return out, nil
	},
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(uint(a.attempts)),
		backoff.WithNotify(func(err error, wait time.Duration) {
			a.log.Debug("model call retry", zap.String("op", op), zap.Duration("retry_in", wait), zap.Error(err))
		}),
	)
}
