package models

// Settings represents application-wide settings
type Settings struct {
	Difficulty   Difficulty `json:"difficulty"`     // which demonstration is shown, Easy or Hard
	CountdownSec int        `json:"countdown_sec"`  // get-ready countdown before the first exercise
	PlanDay      int        `json:"plan_day"`       // 1..7 pins the plan to a weekday, 0 follows the calendar
	Shuffle      bool       `json:"shuffle"`        // whether the day's exercises are sampled in random order
	PlanLimit    int        `json:"plan_limit"`     // maximum number of exercises kept after shuffling
	Timezone     string     `json:"timezone"`       // IANA timezone name (e.g. "Europe/London", or "Local" for system timezone)
	MediaBaseURL string     `json:"media_base_url"` // object storage prefix media references are resolved against
}
