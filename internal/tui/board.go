package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/engine"
)

// Engine is what the board reads and mutates. *engine.Engine satisfies it.
type Engine interface {
	Character() engine.Character
	Habits() []engine.Habit
	Today() engine.DailyActivity
	StreakCount() int
	ActiveSession() (engine.QuestSession, bool)
	CompleteHabit(ctx context.Context, id string) engine.CompleteResult
	CompleteSubtask(ctx context.Context, habitID, subtaskID string) engine.SubtaskResult
	Rollover(ctx context.Context) int
	Subscribe(fn func(engine.Change)) (unsubscribe func())
}

// RunBoard shows the dashboard until the user quits. Changes committed from
// elsewhere, such as a remote sync, refresh the board.
func RunBoard(ctx context.Context, e Engine, out io.Writer) error {
	m := newBoardModel(ctx, e)
	p := tea.NewProgram(m, tea.WithOutput(out))
	unsubscribe := e.Subscribe(func(ch engine.Change) {
		p.Send(changedMsg{origin: ch.Origin})
	})
	defer unsubscribe()
	_, err := p.Run()
	return err
}
