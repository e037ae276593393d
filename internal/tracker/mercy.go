package tracker

import (
	"time"

	"github.com/julianstephens/hedaya/internal/constants"
	"github.com/julianstephens/hedaya/internal/models"
	"github.com/julianstephens/hedaya/internal/utils"
)

// MercyAllowance is the weekly grace-day allowance. Without a profile the
// balanced allowance applies.
func MercyAllowance(profile *models.Profile) int {
	if profile == nil {
		return constants.MercyDaysDefault
	}
	return profile.MercyDaysPerWeek()
}

// CountMercyDays counts grace days whose week starts on weekStartKey.
func CountMercyDays(logs map[string]models.DayLog, weekStartKey string, loc *time.Location) int {
	used := 0
	for key, log := range logs {
		if !log.UsedGraceDay {
			continue
		}
		if utils.WeekStartKeyForDateKey(key, loc) == weekStartKey {
			used++
		}
	}
	return used
}

// GraceResult describes the outcome of marking a grace day.
type GraceResult struct {
	DateKey        string
	UsedThisWeek   int // grace days in the target week after the mark
	AllowedPerWeek int
	// OverBudget is set when the mark took the week past its allowance.
	OverBudget bool
	// AlreadyMarked is set when the day was a grace day before the call.
	AlreadyMarked bool
}
