package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/catalog"
	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/engine"
)

// Aura Quest theme shared by the CLI and the board.

const (
	IconQuest   = "🗺️"
	IconSparkle = "✨"
	IconPlus    = "➕"
	IconDone    = "✅"
	IconTrophy  = "🏆"
	IconBolt    = "⚡"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconLoop    = "🔁"
	IconScroll  = "📜"
	IconFire    = "🔥"
	IconTomato  = "🍅"
	IconLock    = "🔒"
	IconCloud   = "☁️"
	IconTrash   = "🗑️"
	IconOracle  = "🔮"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// StatIcon returns the emoji shown next to a stat.
func StatIcon(s engine.Stat) string {
	switch s {
	case engine.StatStrength:
		return "💪"
	case engine.StatIntelligence:
		return "🧠"
	case engine.StatDexterity:
		return "🤸"
	case engine.StatCharisma:
		return "🗣️"
	case engine.StatWisdom:
		return "🧘"
	default:
		return "•"
	}
}

func CategoryIcon(c catalog.Category) string {
	switch c {
	case catalog.CategoryTech:
		return "💻"
	case catalog.CategoryAcademics:
		return "📚"
	case catalog.CategoryBusiness:
		return "💼"
	case catalog.CategoryContent:
		return "🎬"
	case catalog.CategoryFitness:
		return "🏃"
	default:
		return IconQuest
	}
}

func FrequencyText(f catalog.Frequency) string {
	switch f {
	case catalog.FrequencyWeekly:
		return H2.Render("weekly")
	case catalog.FrequencyMilestone:
		return Gold.Render("milestone")
	default:
		return Muted.Render("daily")
	}
}

// HabitStatus renders the completed-this-period flag.
func HabitStatus(h engine.Habit) string {
	switch {
	case h.Completed:
		return Good.Render("done")
	case len(h.Subtasks) > 0:
		return Warn.Render(fmt.Sprintf("%d/%d steps", len(h.Subtasks)-h.RemainingSubtasks(), len(h.Subtasks)))
	default:
		return Warn.Render("pending")
	}
}

// XPBar renders progress toward the next level as [####------].
func XPBar(value, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	filled := value * width / total
	return "[" + Gold.Render(strings.Repeat("#", filled)) + Muted.Render(strings.Repeat("-", width-filled)) + "]"
}
