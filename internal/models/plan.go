package models

import "time"

// DailyPlan is the ordered list of exercises assigned to a calendar day.
type DailyPlan struct {
	Date      string // YYYY-MM-DD the plan was created for
	Day       int    // weekday index (1..7) the plan was computed from
	Exercises []Exercise
	CreatedAt time.Time
}

// Empty reports whether the plan has nothing to do.
func (p DailyPlan) Empty() bool {
	return len(p.Exercises) == 0
}

// Len returns the number of exercises in the plan.
func (p DailyPlan) Len() int {
	return len(p.Exercises)
}

// TotalSeconds returns the summed duration of every exercise.
func (p DailyPlan) TotalSeconds() int {
	total := 0
	for _, e := range p.Exercises {
		total += e.DurationSec()
	}
	return total
}
