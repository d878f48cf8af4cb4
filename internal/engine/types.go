package engine

import (
	"time"

	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/catalog"
)

type Stat string

const (
	StatIntelligence Stat = "intelligence"
	StatStrength     Stat = "strength"
	StatDexterity    Stat = "dexterity"
	StatCharisma     Stat = "charisma"
	StatWisdom       Stat = "wisdom"
)

// AllStats lists the stats in display order.
var AllStats = []Stat{StatIntelligence, StatStrength, StatDexterity, StatCharisma, StatWisdom}

func (s Stat) IsValid() bool {
	switch s {
	case StatIntelligence, StatStrength, StatDexterity, StatCharisma, StatWisdom:
		return true
	default:
		return false
	}
}

// DefaultStat receives XP for categories without a mapping.
const DefaultStat Stat = StatWisdom

type Stats struct {
	Intelligence int `json:"intelligence" bson:"intelligence" validate:"gte=0"`
	Strength     int `json:"strength" bson:"strength" validate:"gte=0"`
	Dexterity    int `json:"dexterity" bson:"dexterity" validate:"gte=0"`
	Charisma     int `json:"charisma" bson:"charisma" validate:"gte=0"`
	Wisdom       int `json:"wisdom" bson:"wisdom" validate:"gte=0"`
}

func (s Stats) Get(stat Stat) int {
	switch stat {
	case StatIntelligence:
		return s.Intelligence
	case StatStrength:
		return s.Strength
	case StatDexterity:
		return s.Dexterity
	case StatCharisma:
		return s.Charisma
	case StatWisdom:
		return s.Wisdom
	default:
		return 0
	}
}

func (s *Stats) add(stat Stat, n int) {
	switch stat {
	case StatIntelligence:
		s.Intelligence += n
	case StatStrength:
		s.Strength += n
	case StatDexterity:
		s.Dexterity += n
	case StatCharisma:
		s.Charisma += n
	case StatWisdom:
		s.Wisdom += n
	}
}

type Character struct {
	Name     string `json:"name" bson:"name"`
	Level    int    `json:"level" bson:"level" validate:"gte=1"`
	XP       int    `json:"xp" bson:"xp" validate:"gte=0,ltfield=XPToNext"`
	XPToNext int    `json:"xpToNext" bson:"xp_to_next" validate:"gte=1"`
	Class    string `json:"class" bson:"class"`
	Stats    Stats  `json:"stats" bson:"stats"`
}

type Subtask struct {
	ID                 string   `json:"id" bson:"id" validate:"required"`
	Title              string   `json:"title" bson:"title" validate:"required"`
	Description        string   `json:"description" bson:"description"`
	EstimatedPomodoros int      `json:"estimatedPomodoros" bson:"estimated_pomodoros" validate:"gte=1"`
	IsCompleted        bool     `json:"isCompleted" bson:"is_completed"`
	Resources          []string `json:"resources,omitempty" bson:"resources,omitempty"`
}

// FollowUp is a question asked about a quest and the answer that came back.
type FollowUp struct {
	Query     string   `json:"query" bson:"query"`
	Response  string   `json:"response" bson:"response"`
	Resources []string `json:"resources,omitempty" bson:"resources,omitempty"`
}

// Habit is a quest instance. Completed is the completed-today flag; it is
// cleared by Rollover, not by time passing.
type Habit struct {
	ID                  string             `json:"id" bson:"id" validate:"required"`
	Title               string             `json:"title" bson:"title" validate:"required"`
	Category            catalog.Category   `json:"category" bson:"category" validate:"oneof=Tech Academics Business Content Fitness Personal"`
	XPReward            int                `json:"xpReward" bson:"xp_reward" validate:"gte=0"`
	Streak              int                `json:"streak" bson:"streak" validate:"gte=0"`
	Completed           bool               `json:"completed" bson:"completed"`
	Frequency           catalog.Frequency  `json:"frequency" bson:"frequency" validate:"oneof=daily weekly milestone"`
	Difficulty          catalog.Difficulty `json:"difficulty" bson:"difficulty" validate:"oneof=basic intermediate elite"`
	Description         string             `json:"description" bson:"description"`
	Tier                int                `json:"tier" bson:"tier" validate:"gte=0"`
	IsCustom            bool               `json:"isCustom" bson:"is_custom"`
	Subtasks            []Subtask          `json:"subtasks,omitempty" bson:"subtasks,omitempty" validate:"dive"`
	CurrentSubtaskIndex int                `json:"currentSubtaskIndex" bson:"current_subtask_index" validate:"gte=0"`
	FollowUps           []FollowUp         `json:"followUps,omitempty" bson:"follow_ups,omitempty"`
	LastCompleted       *time.Time         `json:"lastCompleted,omitempty" bson:"last_completed,omitempty"`
	CreatedAt           time.Time          `json:"createdAt" bson:"created_at"`
}

// SubtasksDone reports whether every subtask is completed. A habit without
// subtasks is trivially done.
func (h Habit) SubtasksDone() bool {
	for _, st := range h.Subtasks {
		if !st.IsCompleted {
			return false
		}
	}
	return true
}

func (h Habit) RemainingSubtasks() int {
	n := 0
	for _, st := range h.Subtasks {
		if !st.IsCompleted {
			n++
		}
	}
	return n
}

type Achievement struct {
	ID          string `json:"id" bson:"id" validate:"required"`
	Title       string `json:"title" bson:"title"`
	Description string `json:"description" bson:"description"`
	Unlocked    bool   `json:"unlocked" bson:"unlocked"`
	Icon        string `json:"icon" bson:"icon"`
}

type DailyActivity struct {
	Date               string `json:"date" bson:"date" validate:"required,datetime=2006-01-02"`
	QuestsCompleted    int    `json:"questsCompleted" bson:"quests_completed" validate:"gte=0"`
	PomodorosCompleted int    `json:"pomodorosCompleted" bson:"pomodoros_completed" validate:"gte=0"`
	XPEarned           int    `json:"xpEarned" bson:"xp_earned" validate:"gte=0"`
	HasLogin           bool   `json:"hasLogin" bson:"has_login"`
}

type UserRoles struct {
	Roles        []string `json:"roles" bson:"roles"`
	FitnessTypes []string `json:"fitnessTypes" bson:"fitness_types"`
}

// QuestSession is an in-progress focus commitment. It is never cached.
type QuestSession struct {
	QuestID       string    `json:"questId"`
	PomodoroCount int       `json:"pomodoroCount"`
	StartedAt     time.Time `json:"startedAt"`
}

// Aggregate is the full serializable bundle replicated to the remote store.
// Bson names match Field keys so stores can merge by field.
type Aggregate struct {
	Character       Character       `json:"character" bson:"character"`
	Habits          []Habit         `json:"habits" bson:"habits" validate:"dive"`
	Achievements    []Achievement   `json:"achievements" bson:"achievements" validate:"dive"`
	UserRoles       UserRoles       `json:"userRoles" bson:"user_roles"`
	DailyActivities []DailyActivity `json:"dailyActivities" bson:"daily_activities" validate:"dive"`
	Revision        int64           `json:"revision" bson:"revision" validate:"gte=0"`
}

// Clone returns a deep copy.
func (a Aggregate) Clone() Aggregate {
	out := a
	out.Habits = cloneHabits(a.Habits)
	out.Achievements = append([]Achievement(nil), a.Achievements...)
	out.UserRoles = UserRoles{
		Roles:        append([]string(nil), a.UserRoles.Roles...),
		FitnessTypes: append([]string(nil), a.UserRoles.FitnessTypes...),
	}
	out.DailyActivities = append([]DailyActivity(nil), a.DailyActivities...)
	return out
}

func cloneHabits(in []Habit) []Habit {
	if in == nil {
		return nil
	}
	out := make([]Habit, len(in))
	for i, h := range in {
		out[i] = cloneHabit(h)
	}
	return out
}

func cloneHabit(h Habit) Habit {
	out := h
	if h.Subtasks != nil {
		out.Subtasks = make([]Subtask, len(h.Subtasks))
		for i, st := range h.Subtasks {
			st.Resources = append([]string(nil), st.Resources...)
			out.Subtasks[i] = st
		}
	}
	if h.FollowUps != nil {
		out.FollowUps = make([]FollowUp, len(h.FollowUps))
		for i, f := range h.FollowUps {
			f.Resources = append([]string(nil), f.Resources...)
			out.FollowUps[i] = f
		}
	}
	if h.LastCompleted != nil {
		t := *h.LastCompleted
		out.LastCompleted = &t
	}
	return out
}

// HabitDraft describes a habit before it gets an ID.
type HabitDraft struct {
	Title       string
	Description string
	Category    catalog.Category
	XPReward    int
	Frequency   catalog.Frequency
	Difficulty  catalog.Difficulty
	Tier        int
	Subtasks    []SubtaskDraft
}

type SubtaskDraft struct {
	Title              string
	Description        string
	EstimatedPomodoros int
	Resources          []string
}
