package catalog

import "strings"

// ParseCategory parses user or model input to a Category.
// If input is empty or unrecognized, returns DefaultCategory.
func ParseCategory(input string) Category {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "tech", "technology", "coding", "programming":
		return CategoryTech
	case "academics", "academic", "study", "school":
		return CategoryAcademics
	case "business", "career", "finance":
		return CategoryBusiness
	case "content", "creative", "writing":
		return CategoryContent
	case "fitness", "health", "sport", "exercise":
		return CategoryFitness
	case "personal", "mindfulness", "wellbeing":
		return CategoryPersonal
	default:
		return DefaultCategory
	}
}

func ParseFrequency(input string) Frequency {
	f := Frequency(strings.TrimSpace(strings.ToLower(input)))
	if f.IsValid() {
		return f
	}
	switch f {
	case "weekday", "everyday":
		return FrequencyDaily
	case "once", "one-off", "oneoff":
		return FrequencyMilestone
	}
	return FrequencyDaily
}

func ParseDifficulty(input string) Difficulty {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "basic", "easy", "beginner":
		return DifficultyBasic
	case "intermediate", "medium", "advanced":
		return DifficultyIntermediate
	case "elite", "hard", "expert":
		return DifficultyElite
	default:
		return DifficultyBasic
	}
}

// NormalizeRole lowercases and trims a role or fitness identifier.
func NormalizeRole(input string) string {
	return strings.TrimSpace(strings.ToLower(input))
}
