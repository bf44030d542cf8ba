package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/fivemin/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return loc, nil
}

// DateIn returns the calendar date (YYYY-MM-DD) of t in loc.
func DateIn(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(constants.DateFormat)
}

// CalendarWeekday returns the weekday index of t in loc, counting Sunday as 1 and Saturday as 7.
func CalendarWeekday(t time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.Local
	}
	return int(t.In(loc).Weekday()) + 1
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}

// FormatSeconds renders a duration in seconds as M:SS.
func FormatSeconds(sec int) string {
	if sec < 0 {
		sec = 0
	}
	return fmt.Sprintf("%d:%02d", sec/60, sec%60)
}
