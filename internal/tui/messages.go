package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/fivemin/internal/models"
	"github.com/julianstephens/fivemin/internal/workout"
)

// TickMsg is one second of a countdown or session. Epoch ties it to the run
// that scheduled it so ticks from a cancelled run are dropped.
type TickMsg struct {
	Phase workout.Phase
	Epoch uint64
}

type workoutSavedMsg struct {
	Log models.WorkoutLog
	Err error
}

type prefetchDoneMsg struct {
	Cached int
	Err    error
}

func tick(phase workout.Phase, epoch uint64) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return TickMsg{Phase: phase, Epoch: epoch}
	})
}
