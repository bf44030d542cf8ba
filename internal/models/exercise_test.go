package models

import "testing"

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		input   string
		want    Difficulty
		wantErr bool
	}{
		{"easy", DifficultyEasy, false},
		{"Easy", DifficultyEasy, false},
		{" HARD ", DifficultyHard, false},
		{"medium", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDifficulty(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDifficulty(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDifficulty(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExerciseMedia(t *testing.T) {
	ex := NewExercise("id-1", "Push-ups", 30, CategoryChest, "easy.gif", "hard.gif")

	if got := ex.Media(DifficultyEasy); got != "easy.gif" {
		t.Errorf("Media(Easy) = %q, want easy.gif", got)
	}
	if got := ex.Media(DifficultyHard); got != "hard.gif" {
		t.Errorf("Media(Hard) = %q, want hard.gif", got)
	}
	if ex.DurationSec() != 30 {
		t.Errorf("DurationSec() = %d, want 30", ex.DurationSec())
	}
}

func TestNewExerciseClampsNegativeDuration(t *testing.T) {
	ex := NewExercise("id", "Plank", -5, CategoryAbs, "", "")
	if ex.DurationSec() != 0 {
		t.Errorf("expected negative duration to clamp to 0, got %d", ex.DurationSec())
	}
}

func TestDifficultyToggle(t *testing.T) {
	if DifficultyEasy.Toggle() != DifficultyHard {
		t.Error("Easy.Toggle() should be Hard")
	}
	if DifficultyHard.Toggle() != DifficultyEasy {
		t.Error("Hard.Toggle() should be Easy")
	}
}

func TestDailyPlanTotals(t *testing.T) {
	plan := DailyPlan{Exercises: []Exercise{
		NewExercise("a", "A", 30, CategoryAbs, "", ""),
		NewExercise("b", "B", 45, CategoryAbs, "", ""),
	}}
	if plan.Empty() {
		t.Fatal("plan should not be empty")
	}
	if plan.TotalSeconds() != 75 {
		t.Errorf("TotalSeconds() = %d, want 75", plan.TotalSeconds())
	}
	if !(DailyPlan{}).Empty() {
		t.Error("zero plan should be empty")
	}
}
