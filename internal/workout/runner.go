package workout

import (
	"context"
	"time"

	"github.com/julianstephens/fivemin/internal/clock"
	"github.com/julianstephens/fivemin/internal/models"
)

// Phase tells a Runner observer which timer produced an update.
type Phase int

const (
	PhaseCountdown Phase = iota
	PhaseSession
)

// Update is emitted by Runner after each transition.
type Update struct {
	Phase     Phase
	Countdown int
	Session   Snapshot
}

// Runner drives a countdown followed by a session from a tick source. Only one
// of the two timers is ever active.
type Runner struct {
	Ticker   clock.Ticker
	Interval time.Duration
}

// Run counts down countdownSec seconds, then runs plan to completion, calling observe
// after every tick. It returns ErrEmptyPlan before any ticking when plan is empty and
// ctx.Err() if cancelled; a cancelled run leaves the session Idle.
func (r Runner) Run(ctx context.Context, plan []models.Exercise, countdownSec int, observe func(Update)) (Snapshot, error) {
	if len(plan) == 0 {
		return Snapshot{State: Idle}, ErrEmptyPlan
	}
	if observe == nil {
		observe = func(Update) {}
	}
	interval := r.Interval
	if interval <= 0 {
		interval = time.Second
	}
	ticker := r.Ticker
	if ticker == nil {
		ticker = clock.RealTicker{}
	}

	session := NewSession()
	var countdown Countdown
	if countdownSec > 0 {
		countdown.Start(countdownSec)
		observe(Update{Phase: PhaseCountdown, Countdown: countdown.Remaining()})
	} else if err := session.Start(plan); err != nil {
		return session.Snapshot(), err
	}
	if session.State() == Running {
		observe(Update{Phase: PhaseSession, Session: session.Snapshot()})
	}

	err := ticker.Every(ctx, interval, func(time.Time) bool {
		if countdown.Active() {
			done := countdown.Tick()
			observe(Update{Phase: PhaseCountdown, Countdown: countdown.Remaining()})
			if done {
				// plan was checked non-empty above
				_ = session.Start(plan)
				observe(Update{Phase: PhaseSession, Session: session.Snapshot()})
			}
			return true
		}
		session.Tick()
		snap := session.Snapshot()
		observe(Update{Phase: PhaseSession, Session: snap})
		return !snap.Completed()
	})
	if err != nil {
		session.Cancel()
		countdown.Cancel()
		return session.Snapshot(), err
	}
	return session.Snapshot(), nil
}
