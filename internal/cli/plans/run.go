package plans

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"time"

	"github.com/julianstephens/fivemin/internal/cli"
	"github.com/julianstephens/fivemin/internal/logger"
	"github.com/julianstephens/fivemin/internal/media"
	"github.com/julianstephens/fivemin/internal/models"
	"github.com/julianstephens/fivemin/internal/utils"
	"github.com/julianstephens/fivemin/internal/workout"
)

// RunCmd runs today's workout on stdout without the TUI.
type RunCmd struct {
	Difficulty string `help:"Difficulty to record and show media for (Easy or Hard)."`
	Countdown  *int   `help:"Get-ready seconds before the first exercise. Defaults to the stored setting."`
	NoSave     bool   `help:"Do not record the workout in history."`
}

func (c *RunCmd) Run(ctx *cli.Context) error {
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
	countdown := ctx.Settings.CountdownSec
	if c.Countdown != nil {
		countdown = *c.Countdown
	}

	plan := ctx.Scheduler.CurrentPlan()
	if plan.Empty() {
		return workout.ErrEmptyPlan
	}

	runCtx, stop := signal.NotifyContext(ctx.Context(), os.Interrupt)
	defer stop()

	ctx.Printf("Today's workout: %d exercises, %s\n", plan.Len(), utils.FormatSeconds(plan.TotalSeconds()))

	runner := workout.Runner{Ticker: ctx.Ticker, Interval: time.Second}
	lastIndex := -1
	snap, err := runner.Run(runCtx, plan.Exercises, countdown, func(u workout.Update) {
		switch u.Phase {
		case workout.PhaseCountdown:
			if u.Countdown > 0 {
				ctx.Printf("Get ready... %d\n", u.Countdown)
			}
		case workout.PhaseSession:
			s := u.Session
			if s.Current == nil {
				return
			}
			if s.Index != lastIndex {
				lastIndex = s.Index
				ctx.Printf("[%d/%d] %s (%s) %s\n", s.Index+1, s.Count, s.Current.Name(),
					s.Current.Category(), media.Resolve(*s.Current, difficulty))
			}
			if workout.Urgent(s.Remaining) && s.Remaining > 0 {
				ctx.Printf("   %s\n", utils.FormatSeconds(s.Remaining))
			}
		}
	})
	if errors.Is(err, context.Canceled) {
		ctx.Println("Workout cancelled.")
		return nil
	}
	if err != nil {
		return err
	}
	if !snap.Completed() {
		return nil
	}

	ctx.Println("Workout Complete!")
	if c.NoSave {
		return nil
	}
	entry := models.WorkoutLog{
		Date:          plan.Date,
		Difficulty:    difficulty,
		ExerciseCount: plan.Len(),
		TotalSec:      plan.TotalSeconds(),
		CompletedAt:   ctx.Clock.Now(),
	}
	if err := ctx.Store.AddWorkout(entry); err != nil {
		logger.Error("Failed to record workout", "error", err)
		return err
	}
	return nil
}
