package plans

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/julianstephens/fivemin/internal/cli"
	"github.com/julianstephens/fivemin/internal/media"
	"github.com/julianstephens/fivemin/internal/models"
	"github.com/julianstephens/fivemin/internal/utils"
)

type PlanCmd struct {
	Day        int    `help:"Weekday index 1-7 to preview (1 = Sunday). Defaults to today's plan."`
	JSON       bool   `name:"json" help:"Print the plan as JSON."`
	Difficulty string `help:"Show media references for this difficulty (Easy or Hard)."`
}

// PlanView is the JSON form of a daily plan.
type PlanView struct {
	Date       string                `json:"date"`
	Day        int                   `json:"day"`
	Difficulty models.Difficulty     `json:"difficulty"`
	TotalSec   int                   `json:"total_sec"`
	Exercises  []models.ExerciseView `json:"exercises"`
}

func (c *PlanCmd) Run(ctx *cli.Context) error {
	if err := ctx.Configure(); err != nil {
		return err
	}

	difficulty := ctx.Preference.Get()
	if c.Difficulty != "" {
		d, err := models.ParseDifficulty(c.Difficulty)
		if err != nil {
			return err
		}
		difficulty = d
	}

	var plan models.DailyPlan
	if c.Day != 0 {
		if c.Day < 1 || c.Day > 7 {
			return fmt.Errorf("invalid day %d: must be between 1 and 7", c.Day)
		}
		plan = models.DailyPlan{
			Date:      ctx.Scheduler.Today(),
			Day:       c.Day,
			Exercises: ctx.Scheduler.Select(c.Day),
		}
	} else {
		plan = ctx.Scheduler.CurrentPlan()
	}

	if c.JSON {
		view := PlanView{
			Date:       plan.Date,
			Day:        plan.Day,
			Difficulty: difficulty,
			TotalSec:   plan.TotalSeconds(),
			Exercises:  make([]models.ExerciseView, 0, plan.Len()),
		}
		for _, e := range plan.Exercises {
			view.Exercises = append(view.Exercises, e.View(difficulty))
		}
		enc := json.NewEncoder(ctx.Writer())
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}

	ctx.Printf("Plan for %s (day %d, %s)\n", plan.Date, plan.Day, difficulty)
	if plan.Empty() {
		ctx.Println("  Rest day: nothing scheduled.")
		return nil
	}
	ctx.Println(strings.Repeat("-", 48))
	for i, e := range plan.Exercises {
		ctx.Printf("%2d. %-28s %-10s %s\n", i+1, e.Name(), e.Category(), utils.FormatSeconds(e.DurationSec()))
		ctx.Printf("    %s\n", media.Resolve(e, difficulty))
	}
	ctx.Println(strings.Repeat("-", 48))
	ctx.Printf("%d exercises, %s total\n", plan.Len(), utils.FormatSeconds(plan.TotalSeconds()))
	return nil
}
