package models

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/fivemin/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingDifficulty:
			d, err := ParseDifficulty(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing difficulty: %w", err)
			}
			settings.Difficulty = d
		case constants.SettingCountdownSec:
			if _, err := fmt.Sscanf(value, "%d", &settings.CountdownSec); err != nil {
				return Settings{}, fmt.Errorf("parsing countdown_sec: %w", err)
			}
		case constants.SettingPlanDay:
			if _, err := fmt.Sscanf(value, "%d", &settings.PlanDay); err != nil {
				return Settings{}, fmt.Errorf("parsing plan_day: %w", err)
			}
		case constants.SettingShuffle:
			settings.Shuffle = value == "true"
		case constants.SettingPlanLimit:
			if _, err := fmt.Sscanf(value, "%d", &settings.PlanLimit); err != nil {
				return Settings{}, fmt.Errorf("parsing plan_limit: %w", err)
			}
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingMediaBaseURL:
			settings.MediaBaseURL = value
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingDifficulty:   string(settings.Difficulty),
		constants.SettingCountdownSec: strconv.Itoa(settings.CountdownSec),
		constants.SettingPlanDay:      strconv.Itoa(settings.PlanDay),
		constants.SettingShuffle:      strconv.FormatBool(settings.Shuffle),
		constants.SettingPlanLimit:    strconv.Itoa(settings.PlanLimit),
		constants.SettingTimezone:     settings.Timezone,
		constants.SettingMediaBaseURL: settings.MediaBaseURL,
	}
}

// DefaultSettings returns the settings written by init.
func DefaultSettings() Settings {
	return Settings{
		Difficulty:   DifficultyEasy,
		CountdownSec: constants.DefaultCountdownSec,
		PlanDay:      constants.DefaultPlanDay,
		Shuffle:      constants.DefaultShuffle,
		PlanLimit:    constants.DefaultPlanLimit,
		Timezone:     constants.DefaultTimezone,
		MediaBaseURL: constants.DefaultMediaBaseURL,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
// Shuffle and PlanDay are left untouched since their zero values are meaningful.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Difficulty == "" {
		settings.Difficulty = DifficultyEasy
	}
	if settings.CountdownSec <= 0 {
		settings.CountdownSec = constants.DefaultCountdownSec
	}
	if settings.PlanLimit <= 0 {
		settings.PlanLimit = constants.DefaultPlanLimit
	}
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.MediaBaseURL == "" {
		settings.MediaBaseURL = constants.DefaultMediaBaseURL
	}
}

// ValidatePlanDay checks that a plan day is 0 (follow the calendar) or a weekday index.
func ValidatePlanDay(day int) error {
	if day < 0 || day > 7 {
		return fmt.Errorf("invalid plan day %d: must be 0 (calendar) or 1-7", day)
	}
	return nil
}
