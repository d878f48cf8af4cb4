package root

import (
	"fmt"
	"io"

	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/engine"
	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/ui"
)

func printLevel(w io.Writer, r engine.LevelResult) {
	if !r.LevelUp() {
		return
	}
	fmt.Fprintf(w, "%s %s\n", ui.BadgeLevelUp, ui.LabelValue("Level", fmt.Sprintf("%d → %d", r.LevelBefore, r.LevelAfter)))
	if r.Stat.IsValid() {
		fmt.Fprintf(w, "%s %s +%d\n", ui.StatIcon(r.Stat), r.Stat, r.LevelsGained)
	}
}

func printUnlocked(w io.Writer, unlocked []engine.Achievement) {
	for _, a := range unlocked {
		fmt.Fprintf(w, "%s %s %s\n", ui.Gold.Render(ui.IconTrophy+" Achievement"), a.Icon, ui.Muted.Render(a.Title+": "+a.Description))
	}
}

func printCompletion(w io.Writer, title string, res engine.CompleteResult) {
	fmt.Fprintf(w, "%s %s %s\n", ui.Good.Render(ui.IconDone+" Completed"), title,
		ui.Muted.Render(fmt.Sprintf("(+%d XP, %s%d)", res.XPAwarded, ui.IconFire, res.Streak)))
	printLevel(w, res.Level)
	printUnlocked(w, res.Unlocked)
}

func printSubtask(w io.Writer, st engine.Subtask, res engine.SubtaskResult) {
	fmt.Fprintf(w, "%s %s %s\n", ui.Good.Render(ui.IconDone+" Step done"), st.Title,
		ui.Muted.Render(fmt.Sprintf("(+%d XP, %d left)", engine.SubtaskXP, res.Remaining)))
	printLevel(w, res.Level)
	printUnlocked(w, res.Unlocked)
}
