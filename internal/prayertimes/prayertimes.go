// Package prayertimes supplies the day's prayer instants. Astronomical
// calculation is left to external providers; the built-in provider reads
// the schedule the user configured in settings.
package prayertimes

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/hedaya/internal/models"
	"github.com/julianstephens/hedaya/internal/utils"
)

var ErrUnknownMethod = errors.New("unknown calculation method")

// Provider computes prayer times for a location and day.
type Provider interface {
	Times(coords models.Coordinates, method models.CalculationMethod, date time.Time) (models.PrayerTimes, error)
}

// ScheduleProvider returns the same HH:MM schedule every day.
type ScheduleProvider struct {
	loc      *time.Location
	schedule map[string]string
}

// NewScheduleProvider builds a provider from the *_time settings. A nil
// loc means time.Local.
func NewScheduleProvider(settings models.Settings, loc *time.Location) *ScheduleProvider {
	if loc == nil {
		loc = time.Local
	}
	return &ScheduleProvider{
		loc: loc,
		schedule: map[string]string{
			"fajr":    settings.FajrTime,
			"sunrise": settings.SunriseTime,
			"dhuhr":   settings.DhuhrTime,
			"asr":     settings.AsrTime,
			"maghrib": settings.MaghribTime,
			"isha":    settings.IshaTime,
		},
	}
}

// Times ignores coords; the method is only validated.
func (p *ScheduleProvider) Times(_ models.Coordinates, method models.CalculationMethod, date time.Time) (models.PrayerTimes, error) {
	if method != "" && !method.Valid() {
		return models.PrayerTimes{}, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}

	at := func(name string) (time.Time, error) {
		t, err := utils.CombineDateAndTime(date, p.schedule[name], p.loc)
		if err != nil {
			return time.Time{}, fmt.Errorf("%s time: %w", name, err)
		}
		return t, nil
	}

	var times models.PrayerTimes
	var err error
	if times.Fajr, err = at("fajr"); err != nil {
		return models.PrayerTimes{}, err
	}
	if times.Sunrise, err = at("sunrise"); err != nil {
		return models.PrayerTimes{}, err
	}
	if times.Dhuhr, err = at("dhuhr"); err != nil {
		return models.PrayerTimes{}, err
	}
	if times.Asr, err = at("asr"); err != nil {
		return models.PrayerTimes{}, err
	}
	if times.Maghrib, err = at("maghrib"); err != nil {
		return models.PrayerTimes{}, err
	}
	if times.Isha, err = at("isha"); err != nil {
		return models.PrayerTimes{}, err
	}
	return times, nil
}

// IsDue reports whether the prayer's time has arrived and the log does not
// yet record it.
func IsDue(times models.PrayerTimes, prayer models.PrayerName, log models.DayLog, now time.Time) bool {
	at := times.For(prayer)
	if at.IsZero() {
		return false
	}
	return !now.Before(at) && !log.PrayersCompleted.Has(prayer)
}

// Due lists the prayers that are due, in daily order.
func Due(times models.PrayerTimes, log models.DayLog, now time.Time) []models.PrayerName {
	var out []models.PrayerName
	for _, p := range models.AllPrayers {
		if IsDue(times, p, log, now) {
			out = append(out, p)
		}
	}
	return out
}

// Next returns the first prayer strictly after now. ok is false once isha
// has passed.
func Next(times models.PrayerTimes, now time.Time) (prayer models.PrayerName, at time.Time, ok bool) {
	for _, p := range models.AllPrayers {
		if t := times.For(p); t.After(now) {
			return p, t, true
		}
	}
	return "", time.Time{}, false
}
