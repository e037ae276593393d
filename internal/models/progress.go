package models

import "github.com/julianstephens/hedaya/internal/constants"

// Level is a named streak milestone.
type Level string

const (
	LevelSeeds     Level = "seeds"
	LevelRoots     Level = "roots"
	LevelGrowth    Level = "growth"
	LevelSteadfast Level = "steadfast"
	LevelBlossom   Level = "blossom"
)

// AllLevels lists the levels in ascending order.
var AllLevels = []Level{LevelSeeds, LevelRoots, LevelGrowth, LevelSteadfast, LevelBlossom}

var levelTitlesAr = map[Level]string{
	LevelSeeds:     "بذور",
	LevelRoots:     "جذور",
	LevelGrowth:    "نمو",
	LevelSteadfast: "ثبات",
	LevelBlossom:   "إزهار",
}

func (l Level) TitleAr() string {
	return levelTitlesAr[l]
}

// Rank is the zero-based position of the level, or -1 when unknown.
func (l Level) Rank() int {
	for i, lv := range AllLevels {
		if lv == l {
			return i
		}
	}
	return -1
}

// LowerBound is the first streak length that reaches the level.
func (l Level) LowerBound() int {
	switch l {
	case LevelRoots:
		return constants.RootsMilestone
	case LevelGrowth:
		return constants.GrowthMilestone
	case LevelSteadfast:
		return constants.SteadfastMilestone
	case LevelBlossom:
		return constants.BlossomMilestone
	default:
		return 0
	}
}

// Next returns the following level; blossom is its own successor.
func (l Level) Next() Level {
	r := l.Rank()
	if r < 0 {
		return LevelRoots
	}
	return OptionAt(AllLevels, r+1)
}

// ProgressState is the derived streak view. It is always recomputed from the
// day logs and profile and is never a source of truth.
type ProgressState struct {
	CurrentLevel            Level   `json:"current_level"`
	LevelProgress           float64 `json:"level_progress"`
	StreakDays              int     `json:"streak_days"`
	MercyDaysUsedThisWeek   int     `json:"mercy_days_used_this_week"`
	MercyDaysAllowedPerWeek int     `json:"mercy_days_allowed_per_week"`
	WeekStartKey            string  `json:"week_start_key,omitempty"`
	TodayKey                string  `json:"today_key,omitempty"`
}

// DefaultProgressState is the state of a fresh installation.
func DefaultProgressState() ProgressState {
	return ProgressState{
		CurrentLevel:            LevelSeeds,
		MercyDaysAllowedPerWeek: constants.MercyDaysDefault,
	}
}

// MercyDaysRemaining never goes below zero even when the allowance was exceeded.
func (s ProgressState) MercyDaysRemaining() int {
	if s.MercyDaysUsedThisWeek >= s.MercyDaysAllowedPerWeek {
		return 0
	}
	return s.MercyDaysAllowedPerWeek - s.MercyDaysUsedThisWeek
}
