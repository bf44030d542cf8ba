package constants

import "time"

// SessionState represents the current screen of the TUI application
type SessionState int

const (
	AppName           = "fivemin"
	DefaultConfigPath = "~/.config/fivemin/fivemin.db"
	Version           = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Workout constants
	DefaultExerciseSec  = 30
	DefaultCountdownSec = 30
	DefaultPlanLimit    = 10
	UrgentThresholdSec  = 5

	// Media constants
	DefaultMediaBaseURL  = "https://firebasestorage.googleapis.com/v0/b/exercise-5minutes-fecad.firebasestorage.app/o"
	MediaRootFolder      = "Exercises"
	MediaFetchMaxRetries = 3
	MediaFetchRetryDelay = 250 * time.Millisecond
	MediaFetchTimeout    = 15 * time.Second
	MediaCacheTTL        = 7 * 24 * time.Hour
	MediaDefaultFrameGap = 100 * time.Millisecond
	MediaPrefetchWorkers = 4

	// Session States
	StateHome SessionState = iota
	StateCountdown
	StateWorkout
	StateComplete
	StateDifficulty
)
