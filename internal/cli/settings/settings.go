package settings

import (
	"fmt"
	"net/url"

	"github.com/julianstephens/fivemin/internal/cli"
	"github.com/julianstephens/fivemin/internal/models"
	"github.com/julianstephens/fivemin/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Difficulty   *string `help:"Default demonstration difficulty (Easy or Hard)."`
	Countdown    *int    `help:"Get-ready countdown in seconds."`
	PlanDay      *int    `help:"Pin the plan to a weekday index 1-7, or 0 to follow the calendar."`
	Shuffle      *bool   `help:"Sample the day's exercises in random order."`
	Limit        *int    `help:"Maximum number of exercises kept after shuffling."`
	Timezone     *string `help:"IANA timezone used to decide today (or Local)."`
	MediaBaseURL *string `name:"media-base-url" help:"Object storage prefix media references are resolved against."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	models.ApplyDefaultSettings(&settings)

	if c.List {
		printSettings(ctx, settings)
		return nil
	}

	updated := false
	if c.Difficulty != nil {
		d, err := models.ParseDifficulty(*c.Difficulty)
		if err != nil {
			return err
		}
		settings.Difficulty = d
		updated = true
	}
	if c.Countdown != nil {
		if *c.Countdown <= 0 {
			return fmt.Errorf("countdown must be positive, got %d", *c.Countdown)
		}
		settings.CountdownSec = *c.Countdown
		updated = true
	}
	if c.PlanDay != nil {
		if err := models.ValidatePlanDay(*c.PlanDay); err != nil {
			return err
		}
		settings.PlanDay = *c.PlanDay
		updated = true
	}
	if c.Shuffle != nil {
		settings.Shuffle = *c.Shuffle
		updated = true
	}
	if c.Limit != nil {
		if *c.Limit <= 0 {
			return fmt.Errorf("limit must be positive, got %d", *c.Limit)
		}
		settings.PlanLimit = *c.Limit
		updated = true
	}
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("invalid timezone %q", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.MediaBaseURL != nil {
		u, err := url.Parse(*c.MediaBaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid media base URL %q", *c.MediaBaseURL)
		}
		settings.MediaBaseURL = *c.MediaBaseURL
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		ctx.Println("Settings updated successfully.")
	} else {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}

func printSettings(ctx *cli.Context, s models.Settings) {
	planDay := fmt.Sprintf("%d", s.PlanDay)
	if s.PlanDay == 0 {
		planDay = "0 (follow calendar)"
	}
	ctx.Println("Current Settings:")
	ctx.Printf("  Difficulty:      %s\n", s.Difficulty)
	ctx.Printf("  Countdown:       %d sec\n", s.CountdownSec)
	ctx.Printf("  Plan Day:        %s\n", planDay)
	ctx.Printf("  Shuffle:         %v\n", s.Shuffle)
	ctx.Printf("  Plan Limit:      %d\n", s.PlanLimit)
	ctx.Printf("  Timezone:        %s\n", s.Timezone)
	ctx.Printf("  Media Base URL:  %s\n", s.MediaBaseURL)
}
