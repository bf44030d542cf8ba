// Package clock provides the time sources the planner and timers depend on.
package clock

import (
	"context"
	"sync"
	"time"
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Manual is a settable clock for tests.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

// NewManual returns a clock fixed at t.
func NewManual(t time.Time) *Manual {
	return &Manual{now: t}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Set moves the clock to t.
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

// Advance moves the clock forward by d.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

// Ticker emits a tick every interval until ctx is cancelled or fn returns false.
type Ticker interface {
	Every(ctx context.Context, interval time.Duration, fn func(time.Time) bool) error
}

// RealTicker drives ticks from time.Ticker.
type RealTicker struct{}

// Every blocks until ctx is done or fn asks to stop. It returns ctx.Err() on cancellation
// and nil when fn stopped the loop.
func (RealTicker) Every(ctx context.Context, interval time.Duration, fn func(time.Time) bool) error {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-t.C:
			if !fn(now) {
				return nil
			}
		}
	}
}

// StepTicker fires ticks back to back without waiting. Used to run timers in tests.
type StepTicker struct {
	Start time.Time
	// Max bounds the number of ticks; zero means no bound.
	Max int
}

func (s StepTicker) Every(ctx context.Context, interval time.Duration, fn func(time.Time) bool) error {
	now := s.Start
	for i := 0; s.Max == 0 || i < s.Max; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		now = now.Add(interval)
		if !fn(now) {
			return nil
		}
	}
	return nil
}
