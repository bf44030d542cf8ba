package sqlite

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/fivemin/internal/models"
)

func (s *Store) AddWorkout(w models.WorkoutLog) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	if w.CompletedAt.IsZero() {
		w.CompletedAt = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO workouts (id, date, difficulty, exercise_count, total_sec, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		w.ID, w.Date, string(w.Difficulty), w.ExerciseCount, w.TotalSec,
		w.CompletedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to record workout: %w", err)
	}
	return nil
}

func (s *Store) ListWorkouts(limit int) ([]models.WorkoutLog, error) {
	query := `SELECT id, date, difficulty, exercise_count, total_sec, completed_at
		FROM workouts ORDER BY completed_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.WorkoutLog{}
	for rows.Next() {
		var (
			w           models.WorkoutLog
			difficulty  string
			completedAt string
		)
		if err := rows.Scan(&w.ID, &w.Date, &difficulty, &w.ExerciseCount, &w.TotalSec, &completedAt); err != nil {
			return nil, err
		}
		w.Difficulty = models.Difficulty(difficulty)
		w.CompletedAt, err = time.Parse(timeLayout, completedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing completed_at for %s: %w", w.ID, err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
