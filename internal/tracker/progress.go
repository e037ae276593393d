package tracker

import (
	"time"

	"github.com/julianstephens/hedaya/internal/constants"
	"github.com/julianstephens/hedaya/internal/models"
	"github.com/julianstephens/hedaya/internal/utils"
)

// WalkStreak counts consecutive on-path days ending at today, looking back
// at most MaxStreakWalkDays days. Days without a log are evaluated as
// empty logs.
func WalkStreak(logs map[string]models.DayLog, profile *models.Profile, today time.Time) int {
	day := time.Date(today.Year(), today.Month(), today.Day(), 12, 0, 0, 0, today.Location())

	streak := 0
	for i := 0; i < constants.MaxStreakWalkDays; i++ {
		key := utils.DateKey(day)
		log, ok := logs[key]
		if !ok {
			log = models.NewDayLog(key)
		}
		if !IsOnPath(log, profile) {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// ComputeProgress rebuilds the progress view from the full log mapping.
// It is pure: the same inputs always give the same state.
func ComputeProgress(logs map[string]models.DayLog, profile *models.Profile, today time.Time) models.ProgressState {
	weekStart := utils.WeekStartKey(today)
	streak := WalkStreak(logs, profile, today)

	return models.ProgressState{
		CurrentLevel:            LevelForStreak(streak),
		LevelProgress:           LevelProgress(streak),
		StreakDays:              streak,
		MercyDaysUsedThisWeek:   CountMercyDays(logs, weekStart, today.Location()),
		MercyDaysAllowedPerWeek: MercyAllowance(profile),
		WeekStartKey:            weekStart,
		TodayKey:                utils.DateKey(today),
	}
}
