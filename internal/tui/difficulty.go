package tui

import (
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/fivemin/internal/models"
)

// NewDifficultyForm asks which demonstration level to show.
func NewDifficultyForm(choice *models.Difficulty) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[models.Difficulty]().
				Title("Difficulty").
				Description("Changes the demonstrations shown, not the timings.").
				Options(
					huh.NewOption("Easy", models.DifficultyEasy),
					huh.NewOption("Hard", models.DifficultyHard),
				).
				Value(choice),
		),
	)
}
