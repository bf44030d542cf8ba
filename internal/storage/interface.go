package storage

import (
	"time"

	"github.com/julianstephens/fivemin/internal/models"
	"github.com/julianstephens/fivemin/internal/storage/sqlite"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = sqlite.ErrNotFound

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Workout history
	AddWorkout(models.WorkoutLog) error
	// ListWorkouts returns the most recent workouts first. A limit of 0 returns all.
	ListWorkouts(limit int) ([]models.WorkoutLog, error)

	// Media cache
	GetMedia(ref string) (models.CachedMedia, error)
	PutMedia(models.CachedMedia) error
	// PruneMedia deletes entries fetched before the cutoff and reports how many were removed.
	PruneMedia(before time.Time) (int, error)

	// Utils
	GetConfigPath() string
}

// NewSQLiteStore returns a Provider backed by a sqlite file at path.
func NewSQLiteStore(path string) Provider {
	return sqlite.NewStore(path)
}
