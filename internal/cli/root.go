package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/fivemin/internal/catalog"
	"github.com/julianstephens/fivemin/internal/clock"
	"github.com/julianstephens/fivemin/internal/constants"
	"github.com/julianstephens/fivemin/internal/logger"
	"github.com/julianstephens/fivemin/internal/media"
	"github.com/julianstephens/fivemin/internal/models"
	"github.com/julianstephens/fivemin/internal/scheduler"
	"github.com/julianstephens/fivemin/internal/storage"
)

type Context struct {
	Ctx        context.Context
	Store      storage.Provider
	Scheduler  *scheduler.Scheduler
	Fetcher    *media.Fetcher
	Preference *media.Preference
	Clock      clock.Clock
	Ticker     clock.Ticker
	Settings   models.Settings
	Out        io.Writer
}

// NewContext returns a Context over store that writes to stdout and reads
// the system clock. Call Configure once the store is loaded.
func NewContext(ctx context.Context, store storage.Provider) *Context {
	return &Context{
		Ctx:    ctx,
		Store:  store,
		Clock:  clock.System{},
		Ticker: clock.RealTicker{},
		Out:    os.Stdout,
	}
}

// Configure reads stored settings and builds the planner and media fetcher
// from them. Calling it again applies changed settings.
func (c *Context) Configure() error {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	models.ApplyDefaultSettings(&settings)
	c.Settings = settings

	opts, err := scheduler.OptionsFromSettings(settings)
	if err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	if c.Clock == nil {
		c.Clock = clock.System{}
	}
	if c.Scheduler == nil {
		c.Scheduler = scheduler.New(catalog.New(constants.DefaultExerciseSec), c.Clock, opts)
	} else {
		c.Scheduler.Configure(opts)
	}

	if c.Preference == nil {
		c.Preference = media.NewPreference(settings.Difficulty)
	} else {
		c.Preference.Set(settings.Difficulty)
	}

	c.Fetcher = media.NewFetcher(media.Options{
		BaseURL:    settings.MediaBaseURL,
		Disk:       c.Store,
		TTL:        constants.MediaCacheTTL,
		RetryDelay: constants.MediaFetchRetryDelay,
		Clock:      c.Clock,
	})

	logger.Debug("Context configured",
		"plan_day", settings.PlanDay,
		"shuffle", settings.Shuffle,
		"difficulty", settings.Difficulty,
		"timezone", settings.Timezone,
	)
	return nil
}

// Context returns the command's cancellation context.
func (c *Context) Context() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Writer(), format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Writer(), args...)
}

// Writer returns the command output stream.
func (c *Context) Writer() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// DB returns the sql handle behind a sqlite-backed store.
func DB(store storage.Provider) (*sql.DB, error) {
	s, ok := store.(interface{ GetDB() *sql.DB })
	if !ok {
		return nil, fmt.Errorf("store %T does not expose a database handle", store)
	}
	db := s.GetDB()
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return db, nil
}
