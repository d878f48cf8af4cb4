package questgen

import (
	"context"
	"strings"

	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/catalog"
	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/engine"
)

// MaxOnboardingTurns is the turn at which onboarding completes regardless
// of what the model says.
const MaxOnboardingTurns = 5

// Profile defaults applied when onboarding ends without an answer.
const (
	DefaultSkillLevel     = "Intermediate"
	DefaultTimeCommitment = "30 minutes"
	DefaultInterest       = "personal"
)

// Generator produces quest content. Implementations never fail: on any
// error they return a deterministic fallback.
type Generator interface {
	GenerateQuests(ctx context.Context, req QuestRequest) []Quest
	GenerateOnboardingTurn(ctx context.Context, history []Message, turn int, collected Profile) OnboardingTurn
	GenerateFollowUp(ctx context.Context, query, questContext string) FollowUp
}

type QuestRequest struct {
	Profile  Profile
	Count    int
	Existing []string
}

type Quest struct {
	Title       string         `json:"title" validate:"required"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	XPReward    int            `json:"xpReward" validate:"gte=0,lte=1000"`
	Frequency   string         `json:"frequency"`
	Difficulty  string         `json:"difficulty"`
	Subtasks    []QuestSubtask `json:"subtasks" validate:"dive"`
}

type QuestSubtask struct {
	Title              string   `json:"title" validate:"required"`
	Description        string   `json:"description"`
	EstimatedPomodoros int      `json:"estimatedPomodoros" validate:"gte=0,lte=16"`
	Resources          []string `json:"resources"`
}

// Draft maps a generated quest onto the engine's habit draft, parsing the
// free-form enum fields leniently.
func (q Quest) Draft() engine.HabitDraft {
	d := engine.HabitDraft{
		Title:       strings.TrimSpace(q.Title),
		Description: strings.TrimSpace(q.Description),
		Category:    catalog.ParseCategory(q.Category),
		XPReward:    q.XPReward,
		Frequency:   catalog.ParseFrequency(q.Frequency),
		Difficulty:  catalog.ParseDifficulty(q.Difficulty),
	}
	for _, st := range q.Subtasks {
		d.Subtasks = append(d.Subtasks, engine.SubtaskDraft{
			Title:              st.Title,
			Description:        st.Description,
			EstimatedPomodoros: st.EstimatedPomodoros,
			Resources:          st.Resources,
		})
	}
	return d
}

// Drafts maps every quest with Draft.
func Drafts(qs []Quest) []engine.HabitDraft {
	out := make([]engine.HabitDraft, 0, len(qs))
	for _, q := range qs {
		out = append(out, q.Draft())
	}
	return out
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Profile is what onboarding learns about the user.
type Profile struct {
	Name           string   `json:"name"`
	Roles          []string `json:"roles"`
	FitnessTypes   []string `json:"fitnessTypes"`
	Interests      []string `json:"interests"`
	SkillLevel     string   `json:"skillLevel"`
	TimeCommitment string   `json:"timeCommitment"`
	Goals          string   `json:"goals"`
}

// merge fills the empty fields of p from other.
func (p Profile) merge(other Profile) Profile {
	if p.Name == "" {
		p.Name = strings.TrimSpace(other.Name)
	}
	if len(p.Roles) == 0 {
		p.Roles = append([]string(nil), other.Roles...)
	}
	if len(p.FitnessTypes) == 0 {
		p.FitnessTypes = append([]string(nil), other.FitnessTypes...)
	}
	if len(p.Interests) == 0 {
		p.Interests = append([]string(nil), other.Interests...)
	}
	if p.SkillLevel == "" {
		p.SkillLevel = strings.TrimSpace(other.SkillLevel)
	}
	if p.TimeCommitment == "" {
		p.TimeCommitment = strings.TrimSpace(other.TimeCommitment)
	}
	if p.Goals == "" {
		p.Goals = strings.TrimSpace(other.Goals)
	}
	return p
}

// Finalize applies defaults to every field onboarding left empty.
func (p Profile) Finalize() Profile {
	if p.SkillLevel == "" {
		p.SkillLevel = DefaultSkillLevel
	}
	if p.TimeCommitment == "" {
		p.TimeCommitment = DefaultTimeCommitment
	}
	if len(p.Interests) == 0 {
		p.Interests = []string{DefaultInterest}
	}
	return p
}

// UserRoles turns the profile into engine roles. Interests count as roles so
// matching catalog roles are picked up.
func (p Profile) UserRoles() engine.UserRoles {
	roles := append(append([]string(nil), p.Roles...), p.Interests...)
	return engine.UserRoles{Roles: roles, FitnessTypes: append([]string(nil), p.FitnessTypes...)}
}

type OnboardingTurn struct {
	Message      string   `json:"message"`
	Collected    Profile  `json:"collectedData"`
	IsComplete   bool     `json:"isComplete"`
	FinalProfile *Profile `json:"finalProfile,omitempty"`
}

type FollowUp struct {
	Response  string   `json:"response" validate:"required"`
	Resources []string `json:"resources"`
}
