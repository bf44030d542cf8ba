package constants

const (
	SettingDifficulty   = "difficulty"
	SettingCountdownSec = "countdown_sec"
	SettingPlanDay      = "plan_day"
	SettingShuffle      = "shuffle"
	SettingPlanLimit    = "plan_limit"
	SettingTimezone     = "timezone"
	SettingMediaBaseURL = "media_base_url"

	// Default Settings Values
	DefaultDifficulty = "Easy"
	// DefaultPlanDay pins plan selection to day 1. A value of 0 follows the clock weekday.
	DefaultPlanDay  = 1
	DefaultShuffle  = true
	DefaultTimezone = "Local" // Use system local timezone by default
)
