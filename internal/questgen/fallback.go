package questgen

import (
	"context"
	"fmt"
	"strings"
)

// Fallback is the deterministic Generator used when no model is configured
// and whenever a model call fails.
type Fallback struct{}

var _ Generator = Fallback{}

// FallbackQuests is the fixed quest list returned when generation fails.
func FallbackQuests() []Quest {
	return []Quest{
		{
			Title:       "Morning Focus Block",
			Description: "Spend one focused pomodoro on your most important goal before anything else.",
			Category:    "Personal",
			XPReward:    30,
			Frequency:   "daily",
			Difficulty:  "basic",
		},
		{
			Title:       "Learn Something New",
			Description: "Read or watch one lesson related to your interests and write a two-line summary.",
			Category:    "Academics",
			XPReward:    40,
			Frequency:   "daily",
			Difficulty:  "basic",
			Subtasks: []QuestSubtask{
				{Title: "Pick a lesson", EstimatedPomodoros: 1},
				{Title: "Write the summary", EstimatedPomodoros: 1},
			},
		},
		{
			Title:       "Move Your Body",
			Description: "Twenty minutes of any physical activity.",
			Category:    "Fitness",
			XPReward:    35,
			Frequency:   "daily",
			Difficulty:  "basic",
		},
	}
}

// FallbackResources are linked from generic follow-up answers.
var FallbackResources = []string{
	"https://pomofocus.io",
	"https://jamesclear.com/atomic-habits-summary",
	"https://www.khanacademy.org",
}

func (Fallback) GenerateQuests(ctx context.Context, req QuestRequest) []Quest {
	qs := FallbackQuests()
	if req.Count > 0 && req.Count < len(qs) {
		qs = qs[:req.Count]
	}
	return qs
}

var onboardingQuestions = []string{
	"Welcome, adventurer! What should we call you, and what do you want to get better at?",
	"Which paths fit you best: student, developer, entrepreneur, creator, athlete or mindful?",
	"Any physical training you enjoy, like gym, running, yoga, calisthenics or cycling?",
	"How would you rate your current level: beginner, intermediate or advanced?",
	"How much time can you commit each day?",
}

func (Fallback) GenerateOnboardingTurn(ctx context.Context, history []Message, turn int, collected Profile) OnboardingTurn {
	if turn >= MaxOnboardingTurns {
		return completeOnboarding(collected)
	}
	if turn < 0 {
		turn = 0
	}
	return OnboardingTurn{Message: onboardingQuestions[turn], Collected: collected}
}

func (Fallback) GenerateFollowUp(ctx context.Context, query, questContext string) FollowUp {
	subject := strings.TrimSpace(questContext)
	if subject == "" {
		subject = "this quest"
	}
	return FollowUp{
		Response: fmt.Sprintf("I couldn't reach the quest oracle just now. For **%s**, break the work into "+
			"one-pomodoro steps, start with the smallest one, and note what blocked you so you can ask again.", subject),
		Resources: append([]string(nil), FallbackResources...),
	}
}

func completeOnboarding(collected Profile) OnboardingTurn {
	final := collected.Finalize()
	return OnboardingTurn{
		Message:      "Your adventure is ready. Let's begin!",
		Collected:    collected,
		IsComplete:   true,
		FinalProfile: &final,
	}
}
