package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/engine"
	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/ui"
)

type boardModel struct {
	ctx context.Context
	eng Engine

	width  int
	height int

	character engine.Character
	habits    []engine.Habit
	today     engine.DailyActivity
	streak    int
	session   *engine.QuestSession

	expanded map[string]bool
	selected int

	lastLog string
}

type changedMsg struct {
	origin engine.Origin
}

type completedMsg struct {
	title string
	res   engine.CompleteResult
}

// dayTickMsg arrives at local midnight while the board is open.
type dayTickMsg struct{}

type subtaskMsg struct {
	title string
	res   engine.SubtaskResult
}

func newBoardModel(ctx context.Context, e Engine) boardModel {
	m := boardModel{
		ctx:      ctx,
		eng:      e,
		expanded: map[string]bool{},
		lastLog:  "Loaded.",
	}
	m.refresh()
	return m
}

func (m boardModel) Init() tea.Cmd {
	return dayTick()
}

func untilMidnight(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	return next.Sub(now)
}

func dayTick() tea.Cmd {
	return tea.Tick(untilMidnight(time.Now()), func(time.Time) tea.Msg { return dayTickMsg{} })
}

func (m *boardModel) refresh() {
	m.character = m.eng.Character()
	m.habits = m.eng.Habits()
	m.today = m.eng.Today()
	m.streak = m.eng.StreakCount()
	m.session = nil
	if s, ok := m.eng.ActiveSession(); ok {
		m.session = &s
	}
}

func (m boardModel) completeCmd(h engine.Habit) tea.Cmd {
	return func() tea.Msg {
		return completedMsg{title: h.Title, res: m.eng.CompleteHabit(m.ctx, h.ID)}
	}
}

func (m boardModel) subtaskCmd(h engine.Habit, st engine.Subtask) tea.Cmd {
	return func() tea.Msg {
		return subtaskMsg{title: st.Title, res: m.eng.CompleteSubtask(m.ctx, h.ID, st.ID)}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case changedMsg:
		m.refresh()
		if msg.origin == engine.OriginRemote {
			m.lastLog = fmt.Sprintf("Synced from another device at %s.", time.Now().Format("15:04:05"))
		}
		return m, nil
	case dayTickMsg:
		n := m.eng.Rollover(m.ctx)
		m.refresh()
		if n > 0 {
			m.lastLog = fmt.Sprintf("New day: %d quests reset.", n)
		}
		return m, dayTick()
	case completedMsg:
		m.refresh()
		if !msg.res.Completed {
			m.lastLog = fmt.Sprintf("%s: nothing to complete (already done or steps left).", msg.title)
			return m, nil
		}
		m.lastLog = fmt.Sprintf("Completed %s: +%d XP, streak %d", msg.title, msg.res.XPAwarded, msg.res.Streak)
		if msg.res.Level.LevelUp() {
			m.lastLog += fmt.Sprintf(" %s level %d", ui.BadgeLevelUp, msg.res.Level.LevelAfter)
		}
		return m, nil
	case subtaskMsg:
		m.refresh()
		if !msg.res.Completed {
			m.lastLog = msg.title + " is already done."
			return m, nil
		}
		m.lastLog = fmt.Sprintf("Finished step %s: +%d XP, %d left", msg.title, engine.SubtaskXP, msg.res.Remaining)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.refresh()
			m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
			return m, nil
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.questLines())-1 {
				m.selected++
			}
			return m, nil
		case "enter":
			line, ok := m.selectedLine()
			if ok && line.subtask < 0 && len(m.habits[line.habit].Subtasks) > 0 {
				id := m.habits[line.habit].ID
				m.expanded[id] = !m.expanded[id]
			}
			return m, nil
		case "c", " ":
			line, ok := m.selectedLine()
			if !ok {
				return m, nil
			}
			h := m.habits[line.habit]
			if line.subtask >= 0 {
				return m, m.subtaskCmd(h, h.Subtasks[line.subtask])
			}
			if h.Completed {
				m.lastLog = "Already done."
				return m, nil
			}
			m.lastLog = fmt.Sprintf("Completing %s…", h.Title)
			return m, m.completeCmd(h)
		}
	}
	return m, nil
}

// questLine is one row of the quest log: a habit, or one of its subtasks
// when subtask >= 0.
type questLine struct {
	habit   int
	subtask int
}

func (m boardModel) questLines() []questLine {
	var out []questLine
	for i, h := range m.habits {
		out = append(out, questLine{habit: i, subtask: -1})
		if !m.expanded[h.ID] {
			continue
		}
		for j := range h.Subtasks {
			out = append(out, questLine{habit: i, subtask: j})
		}
	}
	return out
}

func (m boardModel) selectedLine() (questLine, bool) {
	lines := m.questLines()
	if m.selected < 0 || m.selected >= len(lines) {
		return questLine{}, false
	}
	return lines[m.selected], true
}

func (m boardModel) View() string {
	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	leftW := 30
	if m.width > 0 {
		if maxLeft := m.width / 2; maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 20 {
			leftW = 20
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	rows := max(len(linesLeft), len(linesRight))

	var body strings.Builder
	for i := 0; i < rows; i++ {
		l, r := "", ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	c := m.character
	return fmt.Sprintf("%s | %s the %s | Level %d | XP %d/%d %s",
		ui.Title.Render("Aura Quest"), c.Name, c.Class, c.Level, c.XP, c.XPToNext, ui.XPBar(c.XP, c.XPToNext, 24))
}

func (m boardModel) renderSidebar() string {
	lines := []string{ui.PanelTitle.Render("Stats")}
	for _, s := range engine.AllStats {
		lines = append(lines, fmt.Sprintf("%s %-12s %d", ui.StatIcon(s), s, m.character.Stats.Get(s)))
	}
	lines = append(lines, "")
	lines = append(lines, ui.PanelTitle.Render("Today"))
	lines = append(lines, fmt.Sprintf("%s quests   %d", ui.IconDone, m.today.QuestsCompleted))
	lines = append(lines, fmt.Sprintf("%s pomodoros %d", ui.IconTomato, m.today.PomodorosCompleted))
	lines = append(lines, fmt.Sprintf("%s xp       %d", ui.IconBolt, m.today.XPEarned))
	lines = append(lines, fmt.Sprintf("%s streak   %d days", ui.IconFire, m.streak))
	if m.session != nil {
		lines = append(lines, "")
		lines = append(lines, ui.PanelTitle.Render("Session"))
		lines = append(lines, fmt.Sprintf("%s %d pomodoros on %s", ui.IconTomato, m.session.PomodoroCount, m.sessionTitle()))
	}
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- enter: show/hide steps")
	lines = append(lines, "- c/space: complete")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) sessionTitle() string {
	for _, h := range m.habits {
		if h.ID == m.session.QuestID {
			return h.Title
		}
	}
	return m.session.QuestID
}

func (m boardModel) renderMain() string {
	out := []string{ui.PanelTitle.Render("Quest Log")}
	lines := m.questLines()
	if len(lines) == 0 {
		out = append(out, "(no quests yet: try `aq suggest` or `aq add`)")
		return strings.Join(out, "\n")
	}
	for i, ql := range lines {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		h := m.habits[ql.habit]
		if ql.subtask >= 0 {
			st := h.Subtasks[ql.subtask]
			mark := "[ ]"
			if st.IsCompleted {
				mark = "[x]"
			}
			out = append(out, fmt.Sprintf("%s    %s %s %s", cursor, mark, st.Title, ui.Muted.Render(fmt.Sprintf("(%d %s)", st.EstimatedPomodoros, ui.IconTomato))))
			continue
		}
		fold := "  "
		if len(h.Subtasks) > 0 {
			fold = "▸ "
			if m.expanded[h.ID] {
				fold = "▾ "
			}
		}
		row := fmt.Sprintf("%s%s%s %s %s %s", cursor, fold, ui.CategoryIcon(h.Category), h.Title, ui.FrequencyText(h.Frequency), ui.HabitStatus(h))
		if h.Streak > 0 {
			row += fmt.Sprintf(" %s%d", ui.IconFire, h.Streak)
		}
		out = append(out, row)
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
