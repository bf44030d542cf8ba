package models

import "time"

// WorkoutLog records a completed workout session.
type WorkoutLog struct {
	ID            string     `json:"id"`
	Date          string     `json:"date"`
	Difficulty    Difficulty `json:"difficulty"`
	ExerciseCount int        `json:"exercise_count"`
	TotalSec      int        `json:"total_sec"`
	CompletedAt   time.Time  `json:"completed_at"`
}
