package models

import (
	"fmt"
	"strings"
)

// Category groups exercises by the muscle group or activity they target
type Category string

// Difficulty selects which demonstration is shown for an exercise
type Difficulty string

const (
	CategoryChest     Category = "Chest"
	CategoryTriceps   Category = "Triceps"
	CategoryBack      Category = "Back"
	CategoryBiceps    Category = "Biceps"
	CategoryLegs      Category = "Legs"
	CategoryShoulders Category = "Shoulders"
	CategoryAbs       Category = "Abs"
	CategoryHIIT      Category = "HIIT"
	CategoryYoga      Category = "Yoga"
	CategoryRestWalk  Category = "Rest-Walk"

	DifficultyEasy Difficulty = "Easy"
	DifficultyHard Difficulty = "Hard"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryChest,
	CategoryTriceps,
	CategoryBack,
	CategoryBiceps,
	CategoryLegs,
	CategoryShoulders,
	CategoryAbs,
	CategoryHIIT,
	CategoryYoga,
	CategoryRestWalk,
}

// HasDifficultyLevels reports whether media for the category is split into Easy and Hard folders.
func (c Category) HasDifficultyLevels() bool {
	return c != CategoryRestWalk
}

// ParseDifficulty parses a difficulty name case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy, nil
	case "hard":
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("invalid difficulty: %q (expected easy or hard)", s)
	}
}

// Toggle returns the other difficulty.
func (d Difficulty) Toggle() Difficulty {
	if d == DifficultyHard {
		return DifficultyEasy
	}
	return DifficultyHard
}

// Exercise is a single timed movement with one demonstration per difficulty.
// Values are immutable once constructed; all fields are read through accessors.
type Exercise struct {
	id          string
	name        string
	durationSec int
	category    Category
	easyMedia   string
	hardMedia   string
}

// NewExercise constructs an Exercise.
func NewExercise(id, name string, durationSec int, category Category, easyMedia, hardMedia string) Exercise {
	if durationSec < 0 {
		durationSec = 0
	}
	return Exercise{
		id:          id,
		name:        name,
		durationSec: durationSec,
		category:    category,
		easyMedia:   easyMedia,
		hardMedia:   hardMedia,
	}
}

func (e Exercise) ID() string         { return e.id }
func (e Exercise) Name() string       { return e.name }
func (e Exercise) DurationSec() int   { return e.durationSec }
func (e Exercise) Category() Category { return e.category }
func (e Exercise) EasyMedia() string  { return e.easyMedia }
func (e Exercise) HardMedia() string  { return e.hardMedia }

// Media returns the media reference for the given difficulty.
func (e Exercise) Media(d Difficulty) string {
	if d == DifficultyHard {
		return e.hardMedia
	}
	return e.easyMedia
}

// ExerciseView is the serialized form of an Exercise as shown at one difficulty.
type ExerciseView struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	DurationSec int      `json:"duration_sec"`
	Category    Category `json:"category"`
	Media       string   `json:"media"`
}

// View returns a serializable copy of the exercise with the media for d.
func (e Exercise) View(d Difficulty) ExerciseView {
	return ExerciseView{
		ID:          e.id,
		Name:        e.name,
		DurationSec: e.durationSec,
		Category:    e.category,
		Media:       e.Media(d),
	}
}
