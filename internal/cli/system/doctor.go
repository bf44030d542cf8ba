package system

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/julianstephens/fivemin/internal/cli"
	"github.com/julianstephens/fivemin/internal/migration"
	"github.com/julianstephens/fivemin/internal/models"
	"github.com/julianstephens/fivemin/internal/utils"
	"github.com/julianstephens/fivemin/migrations"
)

type DoctorCmd struct {
	Offline bool          `help:"Skip the media host reachability check."`
	Timeout time.Duration `help:"Timeout for the media host check." default:"5s"`
}

type check struct {
	name string
	run  func() error
	// warn marks failures that do not fail the command.
	warn bool
	// needsDB skips the check when the database is unreachable.
	needsDB bool
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	dbErr := ctx.Store.Load()
	checks := []check{
		{name: "Database reachable", run: func() error { return dbErr }},
		{name: "Schema version", needsDB: true, run: func() error { return checkSchemaVersion(ctx) }},
		{name: "Settings", needsDB: true, run: func() error { return checkSettings(ctx) }},
		{name: "Today's plan", needsDB: true, warn: true, run: func() error { return checkPlan(ctx) }},
		{name: "Clock/timezone", run: checkClockTimezone},
	}
	if !cmd.Offline {
		checks = append(checks, check{
			name: "Media host", warn: true, needsDB: true,
			run: func() error { return checkMediaHost(ctx, cmd.Timeout) },
		})
	}

	hasError := false
	for _, c := range checks {
		if c.needsDB && dbErr != nil {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run()
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warn:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		return errors.New("diagnostics found problems")
	}
	ctx.Println("All checks passed.")
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	db, err := cli.DB(ctx.Store)
	if err != nil {
		return err
	}
	runner := migration.NewRunner(db, migrations.SQLite())
	current, err := runner.CurrentVersion(ctx.Context())
	if err != nil {
		return err
	}
	latest, err := runner.LatestVersion()
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("%w: have %d, support %d", migration.ErrSchemaTooNew, current, latest)
	}
	if current < latest {
		return fmt.Errorf("schema at version %d, %d available; run 'fivemin migrate'", current, latest)
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	var problems []string
	if !utils.ValidateTimezone(settings.Timezone) {
		problems = append(problems, fmt.Sprintf("invalid timezone %q", settings.Timezone))
	}
	if err := models.ValidatePlanDay(settings.PlanDay); err != nil {
		problems = append(problems, err.Error())
	}
	if settings.CountdownSec <= 0 {
		problems = append(problems, fmt.Sprintf("countdown must be positive, got %d", settings.CountdownSec))
	}
	if settings.PlanLimit <= 0 {
		problems = append(problems, fmt.Sprintf("plan limit must be positive, got %d", settings.PlanLimit))
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func checkPlan(ctx *cli.Context) error {
	if err := ctx.Configure(); err != nil {
		return err
	}
	plan := ctx.Scheduler.CurrentPlan()
	if plan.Empty() {
		return fmt.Errorf("no exercises scheduled for day %d", plan.Day)
	}
	return nil
}

func checkClockTimezone() error {
	now := time.Now()
	if now.Year() < 2020 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	if _, err := time.LoadLocation("UTC"); err != nil {
		return fmt.Errorf("timezone database unavailable: %w", err)
	}
	return nil
}

func checkMediaHost(ctx *cli.Context, timeout time.Duration) error {
	if ctx.Fetcher == nil {
		if err := ctx.Configure(); err != nil {
			return err
		}
	}
	client := &http.Client{Timeout: timeout}
	req, err := http.NewRequestWithContext(ctx.Context(), http.MethodHead, ctx.Fetcher.URL(""), nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("media host unreachable: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode >= 500 {
		return fmt.Errorf("media host returned %s", resp.Status)
	}
	return nil
}
