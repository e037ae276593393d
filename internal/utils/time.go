package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/hedaya/internal/constants"
)

// DateKey formats t as a YYYY-MM-DD Gregorian day key in t's own location.
func DateKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDateKey parses a YYYY-MM-DD key to noon of that day in loc. Noon keeps
// day arithmetic clear of DST transitions.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, loc), nil
}

// ValidateDateKey checks if the string is a well-formed day key.
func ValidateDateKey(key string) bool {
	_, err := time.Parse(constants.DateFormat, key)
	return err == nil
}

// AddDays shifts a day key by n calendar days.
func AddDays(key string, n int, loc *time.Location) (string, error) {
	t, err := ParseDateKey(key, loc)
	if err != nil {
		return "", err
	}
	return DateKey(t.AddDate(0, 0, n)), nil
}

// WeekStart returns the Monday that opens t's ISO week, at noon in t's location.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return time.Date(t.Year(), t.Month(), t.Day()-offset, 12, 0, 0, 0, t.Location())
}

// WeekStartKey returns the day key of the Monday opening t's ISO week.
func WeekStartKey(t time.Time) string {
	return DateKey(WeekStart(t))
}

// WeekStartKeyForDateKey buckets a stored day key into its ISO week.
// An unparsable key is its own bucket.
func WeekStartKeyForDateKey(key string, loc *time.Location) string {
	t, err := ParseDateKey(key, loc)
	if err != nil {
		return key
	}
	return WeekStartKey(t)
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, timeStr)
}

// CombineDateAndTime combines a day (taken from date) and a time string
// (HH:MM) into a single time.Time in the specified timezone.
func CombineDateAndTime(date time.Time, timeStr string, loc *time.Location) (time.Time, error) {
	timeOfDay, err := ParseTime(timeStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time format: %w", err)
	}
	d := date.In(loc)
	return time.Date(
		d.Year(), d.Month(), d.Day(),
		timeOfDay.Hour(), timeOfDay.Minute(), 0, 0,
		loc,
	), nil
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := ParseTime(timeStr)
	return err == nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
