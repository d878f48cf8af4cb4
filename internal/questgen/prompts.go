package questgen

import (
	"fmt"
	"strings"
)

const jsonRule = "Wrap the JSON in [[JSON_START]] and [[JSON_END]]. Do not use markdown outside the markers."

var questSystemPrompt = `You are the quest master of an RPG habit tracker. You design small,
concrete, repeatable quests that fit the player's roles, skill level and daily time.
Return {"quests":[{"title","description","category","xpReward","frequency","difficulty",
"subtasks":[{"title","description","estimatedPomodoros","resources"}]}]}.
category is one of Tech, Academics, Business, Content, Fitness, Personal.
frequency is daily, weekly or milestone. difficulty is basic, intermediate or elite.
xpReward is between 10 and 300. ` + jsonRule

var onboardingSystemPrompt = `You onboard a new player of an RPG habit tracker in at most five short turns.
Ask one question per turn to learn their name, roles (student, developer, entrepreneur,
creator, athlete, mindful), fitness types, interests, skill level and daily time commitment.
Return {"message","collectedData":{"name","roles","fitnessTypes","interests","skillLevel",
"timeCommitment","goals"},"isComplete"}. Set isComplete once you know enough. ` + jsonRule

var followUpSystemPrompt = `You are a mentor helping a player finish a quest. Answer the question
in a few short markdown paragraphs and suggest up to three links.
Return {"response","resources":[url]}. ` + jsonRule

func questUserPrompt(p Profile, count int, existing []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create %d quests.\n", count)
	writeProfile(&b, p)
	if len(existing) > 0 {
		fmt.Fprintf(&b, "Avoid repeating these quests: %s\n", strings.Join(existing, "; "))
	}
	return b.String()
}

func onboardingUserPrompt(history []Message, turn int, collected Profile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "This is turn %d of %d.\n", turn+1, MaxOnboardingTurns)
	b.WriteString("Known so far:\n")
	writeProfile(&b, collected)
	if len(history) > 0 {
		b.WriteString("Conversation:\n")
		for _, m := range history {
			fmt.Fprintf(&b, "%s: %s\n", m.Role, m.Content)
		}
	}
	return b.String()
}

func followUpUserPrompt(query, questContext string) string {
	return fmt.Sprintf("Quest: %s\nQuestion: %s\n", questContext, query)
}

func writeProfile(b *strings.Builder, p Profile) {
	field := func(name, value string) {
		if value != "" {
			fmt.Fprintf(b, "- %s: %s\n", name, value)
		}
	}
	field("name", p.Name)
	field("roles", strings.Join(p.Roles, ", "))
	field("fitness", strings.Join(p.FitnessTypes, ", "))
	field("interests", strings.Join(p.Interests, ", "))
	field("skill level", p.SkillLevel)
	field("daily time", p.TimeCommitment)
	field("goals", p.Goals)
}
