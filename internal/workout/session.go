// Package workout implements the timers that drive a workout: the get-ready countdown
// and the per-exercise session. Both are synchronous and advance only on Tick.
package workout

import (
	"errors"
	"fmt"

	"github.com/julianstephens/fivemin/internal/logger"
	"github.com/julianstephens/fivemin/internal/models"
)

// ErrEmptyPlan is returned when a session is started with nothing to do.
var ErrEmptyPlan = errors.New("nothing to do: plan has no exercises")

// State is the phase of a workout session.
type State int

const (
	Idle State = iota
	Running
	Complete
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Complete:
		return "complete"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Snapshot is what the presentation layer renders after every transition.
type Snapshot struct {
	State     State
	Index     int
	Remaining int
	Count     int
	Current   *models.Exercise
	Next      *models.Exercise
	Epoch     uint64
}

// Completed reports whether the session reached the end of its plan.
func (s Snapshot) Completed() bool {
	return s.State == Complete
}

// Session runs one plan through its exercises, one second per Tick.
// A Session is not safe for concurrent use; all transitions happen on the caller's goroutine.
type Session struct {
	plan      []models.Exercise
	state     State
	index     int
	remaining int
	epoch     uint64
}

// NewSession returns an idle session.
func NewSession() *Session {
	return &Session{}
}

// Start begins the plan at its first exercise. An empty plan leaves the session idle.
// Start may be called from any state; it always restarts at index 0.
func (s *Session) Start(plan []models.Exercise) error {
	if len(plan) == 0 {
		s.reset()
		logger.Debug("Workout not started", "reason", "empty plan")
		return ErrEmptyPlan
	}
	s.plan = append([]models.Exercise(nil), plan...)
	s.state = Running
	s.index = 0
	s.remaining = s.plan[0].DurationSec()
	s.epoch++
	logger.Debug("Workout started", "exercises", len(s.plan), "first", s.plan[0].Name())
	return nil
}

// Tick advances the running exercise by one second. When the countdown reaches zero
// the session moves to the next exercise, or completes after the last one.
// Ticks outside the Running state are ignored. It reports whether state changed.
func (s *Session) Tick() bool {
	if s.state != Running {
		return false
	}
	if s.remaining > 0 {
		s.remaining--
		if s.remaining > 0 {
			return true
		}
	}
	s.advance()
	return true
}

func (s *Session) advance() {
	if s.index >= len(s.plan)-1 {
		s.state = Complete
		s.remaining = 0
		logger.Debug("Workout complete", "exercises", len(s.plan))
		return
	}
	s.index++
	s.remaining = s.plan[s.index].DurationSec()
	logger.Debug("Moving to next exercise", "index", s.index, "name", s.plan[s.index].Name())
}

// Cancel abandons the session and returns it to Idle. All progress is discarded.
func (s *Session) Cancel() {
	if s.state == Running {
		logger.Debug("Workout cancelled", "index", s.index, "remaining", s.remaining)
	}
	s.reset()
}

func (s *Session) reset() {
	s.plan = nil
	s.state = Idle
	s.index = 0
	s.remaining = 0
	s.epoch++
}

// State returns the current phase.
func (s *Session) State() State { return s.state }

// Epoch identifies the current run. It changes on every Start and Cancel, so tick
// sources can discard ticks scheduled for an earlier run.
func (s *Session) Epoch() uint64 { return s.epoch }

// Plan returns the exercises of the current run.
func (s *Session) Plan() []models.Exercise {
	return append([]models.Exercise(nil), s.plan...)
}

// Snapshot returns the current state for rendering.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		State: s.state,
		Count: len(s.plan),
		Epoch: s.epoch,
	}
	if s.state != Running {
		if s.state == Complete {
			snap.Index = len(s.plan) - 1
		}
		return snap
	}
	snap.Index = s.index
	snap.Remaining = s.remaining
	cur := s.plan[s.index]
	snap.Current = &cur
	if s.index+1 < len(s.plan) {
		next := s.plan[s.index+1]
		snap.Next = &next
	}
	return snap
}

// ElapsedSec returns the seconds of the plan already worked through.
func (s *Session) ElapsedSec() int {
	total := 0
	switch s.state {
	case Complete:
		for _, e := range s.plan {
			total += e.DurationSec()
		}
	case Running:
		for _, e := range s.plan[:s.index] {
			total += e.DurationSec()
		}
		total += s.plan[s.index].DurationSec() - s.remaining
	}
	return total
}
