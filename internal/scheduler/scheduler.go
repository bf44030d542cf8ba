package scheduler

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/julianstephens/fivemin/internal/catalog"
	"github.com/julianstephens/fivemin/internal/clock"
	"github.com/julianstephens/fivemin/internal/constants"
	"github.com/julianstephens/fivemin/internal/logger"
	"github.com/julianstephens/fivemin/internal/models"
	"github.com/julianstephens/fivemin/internal/utils"
)

// dayCategories maps a weekday index to the categories trained that day.
var dayCategories = map[int][]models.Category{
	1: {models.CategoryChest, models.CategoryTriceps, models.CategoryAbs},
	2: {models.CategoryBack, models.CategoryBiceps, models.CategoryAbs},
	3: {models.CategoryLegs, models.CategoryAbs},
	4: {models.CategoryShoulders, models.CategoryAbs},
	5: {models.CategoryHIIT, models.CategoryAbs},
	6: {models.CategoryYoga},
	7: {models.CategoryRestWalk},
}

// RandSource returns a fresh randomness source. It is called once per sampling.
type RandSource func() *rand.Rand

// Options configure how the daily plan is selected.
type Options struct {
	// Day pins selection to a weekday index (1..7). Zero follows the clock weekday.
	Day int
	// Shuffle samples the day's exercises in random order.
	Shuffle bool
	// Limit caps the number of exercises kept after shuffling.
	Limit int
	// Location decides where "today" is.
	Location *time.Location
}

// OptionsFromSettings derives scheduler options from stored settings.
func OptionsFromSettings(s models.Settings) (Options, error) {
	loc, err := utils.LoadLocation(s.Timezone)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Day:      s.PlanDay,
		Shuffle:  s.Shuffle,
		Limit:    s.PlanLimit,
		Location: loc,
	}, nil
}

// Scheduler selects and caches the daily plan. It is safe for concurrent use.
type Scheduler struct {
	catalog *catalog.Catalog
	clock   clock.Clock
	newRand RandSource

	mu     sync.Mutex
	opts   Options
	cached *models.DailyPlan
}

// New creates a Scheduler over the given catalog. A nil clock reads the system clock.
func New(cat *catalog.Catalog, clk clock.Clock, opts Options) *Scheduler {
	if clk == nil {
		clk = clock.System{}
	}
	if opts.Limit <= 0 {
		opts.Limit = constants.DefaultPlanLimit
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Scheduler{
		catalog: cat,
		clock:   clk,
		newRand: defaultRand,
		opts:    opts,
	}
}

// WithRand replaces the randomness source used for shuffling.
func (s *Scheduler) WithRand(src RandSource) *Scheduler {
	s.mu.Lock()
	defer s.mu.Unlock()
	if src != nil {
		s.newRand = src
	}
	return s
}

func defaultRand() *rand.Rand {
	// The package-level generator is seeded randomly at startup, so each call
	// yields a non-reproducible source.
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// CategoriesFor returns the categories trained on the given weekday index.
// Unrecognized days yield nil.
func CategoriesFor(day int) []models.Category {
	cats, ok := dayCategories[day]
	if !ok {
		return nil
	}
	return append([]models.Category(nil), cats...)
}

// PlanFor concatenates the pools of the day's categories in category-list order.
// An unrecognized day yields an empty slice.
func (s *Scheduler) PlanFor(day int) []models.Exercise {
	exercises := []models.Exercise{}
	for _, category := range CategoriesFor(day) {
		exercises = append(exercises, s.catalog.Pool(category)...)
	}
	logger.Debug("Selected exercises for day", "day", day, "categories", CategoriesFor(day), "count", len(exercises))
	return exercises
}

// Sample shuffles exercises with src and keeps at most limit entries.
// The input slice is not modified.
func Sample(exercises []models.Exercise, src *rand.Rand, limit int) []models.Exercise {
	out := append([]models.Exercise(nil), exercises...)
	src.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Select returns the exercises for a day, sampled when shuffling is enabled.
func (s *Scheduler) Select(day int) []models.Exercise {
	s.mu.Lock()
	opts := s.opts
	newRand := s.newRand
	s.mu.Unlock()

	exercises := s.PlanFor(day)
	if opts.Shuffle {
		exercises = Sample(exercises, newRand(), opts.Limit)
	}
	return exercises
}

// ResolveDay returns the weekday index plans are computed for right now.
func (s *Scheduler) ResolveDay() int {
	s.mu.Lock()
	opts := s.opts
	s.mu.Unlock()

	if opts.Day != 0 {
		return opts.Day
	}
	return utils.CalendarWeekday(s.clock.Now(), opts.Location)
}

// Today returns today's date string in the configured location.
func (s *Scheduler) Today() string {
	s.mu.Lock()
	loc := s.opts.Location
	s.mu.Unlock()
	return utils.DateIn(s.clock.Now(), loc)
}

// CurrentPlan returns the cached plan when it was created today and is non-empty,
// otherwise it computes a fresh plan and caches it.
func (s *Scheduler) CurrentPlan() models.DailyPlan {
	today := s.Today()

	s.mu.Lock()
	if s.cached != nil && s.cached.Date == today && !s.cached.Empty() {
		plan := copyPlan(*s.cached)
		s.mu.Unlock()
		logger.Debug("Using cached daily plan", "date", today, "count", plan.Len())
		return plan
	}
	s.mu.Unlock()

	day := s.ResolveDay()
	plan := models.DailyPlan{
		Date:      today,
		Day:       day,
		Exercises: s.Select(day),
		CreatedAt: s.clock.Now(),
	}

	s.mu.Lock()
	// Another caller may have refreshed the cache for today in the meantime.
	if s.cached != nil && s.cached.Date == today && !s.cached.Empty() {
		existing := copyPlan(*s.cached)
		s.mu.Unlock()
		return existing
	}
	stored := copyPlan(plan)
	s.cached = &stored
	s.mu.Unlock()

	logger.Info("Computed daily plan", "date", today, "day", day, "count", plan.Len())
	return plan
}

// Configure replaces the selection options and drops the cached plan.
func (s *Scheduler) Configure(opts Options) {
	if opts.Limit <= 0 {
		opts.Limit = constants.DefaultPlanLimit
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	s.mu.Lock()
	s.opts = opts
	s.cached = nil
	s.mu.Unlock()
}

// Invalidate drops the cached plan.
func (s *Scheduler) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}

func copyPlan(p models.DailyPlan) models.DailyPlan {
	p.Exercises = append([]models.Exercise(nil), p.Exercises...)
	return p
}
