// Package tracker holds the streak engine: deciding which days count,
// walking the streak back from today, mapping it to a level and enforcing
// the weekly mercy allowance.
package tracker

import "github.com/julianstephens/hedaya/internal/models"

// IsOnPath reports whether a day counts toward the streak.
//
// A grace day always counts. With a profile whose essentials list is
// non-empty, completing any one essential is enough. Otherwise any recorded
// worship activity counts.
func IsOnPath(log models.DayLog, profile *models.Profile) bool {
	if log.UsedGraceDay {
		return true
	}
	if profile != nil {
		if essentials := profile.DailyEssentials(); len(essentials) > 0 {
			for _, e := range essentials {
				if e.SatisfiedBy(log) {
					return true
				}
			}
			return false
		}
	}
	return log.HasActivity()
}
