package remote

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/engine"
)

// baseAggregate seeds decoding so partially written documents still carry
// a valid character and achievement catalog.
func baseAggregate() engine.Aggregate {
	return engine.Aggregate{
		Character:    engine.DefaultCharacter(),
		Achievements: engine.DefaultAchievements(),
	}
}

// encodeFields renders the named fields of agg as one JSON string per field
// key. The revision is stored as a decimal string.
func encodeFields(agg engine.Aggregate, fields engine.Field) (map[string]string, error) {
	out := make(map[string]string, len(fields.Keys()))
	for _, key := range fields.Keys() {
		if key == "revision" {
			out[key] = strconv.FormatInt(agg.Revision, 10)
			continue
		}
		data, err := json.Marshal(fieldValue(agg, key))
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", key, err)
		}
		out[key] = string(data)
	}
	return out, nil
}

func fieldValue(agg engine.Aggregate, key string) any {
	switch key {
	case "character":
		return agg.Character
	case "habits":
		if agg.Habits == nil {
			return []engine.Habit{}
		}
		return agg.Habits
	case "achievements":
		return agg.Achievements
	case "user_roles":
		return agg.UserRoles
	case "daily_activities":
		if agg.DailyActivities == nil {
			return []engine.DailyActivity{}
		}
		return agg.DailyActivities
	default:
		return nil
	}
}

// decodeFields parses a field map written by encodeFields and validates the
// result. An empty map decodes to nil.
func decodeFields(values map[string]string) (*engine.Aggregate, error) {
	if len(values) == 0 {
		return nil, nil
	}
	agg := baseAggregate()
	for key, raw := range values {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		var err error
		switch key {
		case "character":
			err = json.Unmarshal([]byte(raw), &agg.Character)
		case "habits":
			err = json.Unmarshal([]byte(raw), &agg.Habits)
		case "achievements":
			err = json.Unmarshal([]byte(raw), &agg.Achievements)
		case "user_roles":
			err = json.Unmarshal([]byte(raw), &agg.UserRoles)
		case "daily_activities":
			err = json.Unmarshal([]byte(raw), &agg.DailyActivities)
		case "revision":
			agg.Revision, err = strconv.ParseInt(raw, 10, 64)
		default:
			continue
		}
		if err != nil {
			return nil, &engine.ValidationError{Subject: "remote " + key, Err: err}
		}
	}
	if err := agg.Validate(); err != nil {
		return nil, err
	}
	return &agg, nil
}

func jsonString(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode: %w", err)
	}
	return string(data), nil
}
