package tracker

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/julianstephens/hedaya/internal/models"
	"github.com/julianstephens/hedaya/internal/utils"
)

// Monday, so the ISO week starts on the same day.
var monday = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func fajrLog(key string) models.DayLog {
	l := models.NewDayLog(key)
	l.MarkPrayer(models.PrayerFajr)
	return l
}

func graceLog(key string) models.DayLog {
	l := models.NewDayLog(key)
	l.UsedGraceDay = true
	return l
}

// consecutive builds n days of fajr logs ending at end.
func consecutive(end time.Time, n int) map[string]models.DayLog {
	logs := map[string]models.DayLog{}
	for i := 0; i < n; i++ {
		key := utils.DateKey(end.AddDate(0, 0, -i))
		logs[key] = fajrLog(key)
	}
	return logs
}

func TestComputeProgressEmpty(t *testing.T) {
	got := ComputeProgress(map[string]models.DayLog{}, nil, monday)
	if got.StreakDays != 0 || got.CurrentLevel != models.LevelSeeds || got.LevelProgress != 0 {
		t.Errorf("ComputeProgress(empty) = %+v", got)
	}
	if got.MercyDaysAllowedPerWeek != 2 {
		t.Errorf("MercyDaysAllowedPerWeek = %d, want 2 without profile", got.MercyDaysAllowedPerWeek)
	}
	if got.TodayKey != "2025-03-10" || got.WeekStartKey != "2025-03-10" {
		t.Errorf("keys = %q / %q", got.TodayKey, got.WeekStartKey)
	}
}

func TestComputeProgressSingleDay(t *testing.T) {
	logs := map[string]models.DayLog{"2025-03-10": fajrLog("2025-03-10")}

	got := ComputeProgress(logs, nil, monday)
	if got.StreakDays != 1 {
		t.Errorf("StreakDays = %d, want 1", got.StreakDays)
	}
	if got.CurrentLevel != models.LevelSeeds {
		t.Errorf("CurrentLevel = %s, want seeds", got.CurrentLevel)
	}
	if math.Abs(got.LevelProgress-1.0/7) > 1e-9 {
		t.Errorf("LevelProgress = %v, want 1/7", got.LevelProgress)
	}
}

func TestComputeProgressFourWeeks(t *testing.T) {
	got := ComputeProgress(consecutive(monday, 28), nil, monday)
	if got.StreakDays != 28 || got.CurrentLevel != models.LevelBlossom || got.LevelProgress != 1.0 {
		t.Errorf("ComputeProgress(28 days) = %+v", got)
	}
}

func TestWalkStopsAtGap(t *testing.T) {
	dayN := monday.AddDate(0, 0, -5)
	logs := consecutive(monday, 5)
	// Activity before the gap must not be reached
	for i := 1; i <= 10; i++ {
		key := utils.DateKey(dayN.AddDate(0, 0, -i))
		logs[key] = fajrLog(key)
	}
	// Day N exists but has no activity
	logs[utils.DateKey(dayN)] = models.NewDayLog(utils.DateKey(dayN))

	if got := WalkStreak(logs, nil, monday); got != 5 {
		t.Errorf("WalkStreak() = %d, want 5", got)
	}
}

func TestWalkTodayWithoutLog(t *testing.T) {
	logs := consecutive(monday.AddDate(0, 0, -1), 10)
	if got := WalkStreak(logs, nil, monday); got != 0 {
		t.Errorf("WalkStreak() = %d, want 0 when today has nothing yet", got)
	}
}

func TestWalkIsCappedAtOneYear(t *testing.T) {
	logs := consecutive(monday, 500)
	got := ComputeProgress(logs, nil, monday)
	if got.StreakDays != 365 {
		t.Errorf("StreakDays = %d, want 365", got.StreakDays)
	}
	if got.CurrentLevel != models.LevelBlossom || got.LevelProgress != 1.0 {
		t.Errorf("state = %+v", got)
	}
}

func TestWalkAcrossDSTChange(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata not available")
	}
	// DST starts 2025-03-09 in New York
	today := time.Date(2025, 3, 12, 0, 15, 0, 0, ny)
	logs := consecutive(today, 8)

	if got := WalkStreak(logs, nil, today); got != 8 {
		t.Errorf("WalkStreak() = %d, want 8", got)
	}
}

func TestComputeProgressUsesProfile(t *testing.T) {
	logs := map[string]models.DayLog{}
	l := models.NewDayLog("2025-03-10")
	l.MarkBranch(models.BranchMorningZikr)
	logs[l.DateKey] = l

	dhikr := profileWith(models.PaceAmbitious, models.AreaDhikr)
	got := ComputeProgress(logs, dhikr, monday)
	if got.StreakDays != 1 {
		t.Errorf("StreakDays = %d, want 1", got.StreakDays)
	}
	if got.MercyDaysAllowedPerWeek != 1 {
		t.Errorf("MercyDaysAllowedPerWeek = %d, want 1 for ambitious", got.MercyDaysAllowedPerWeek)
	}

	salah := profileWith(models.PaceBalanced, models.AreaSalah)
	if got := ComputeProgress(logs, salah, monday); got.StreakDays != 0 {
		t.Errorf("StreakDays = %d, want 0 when the log misses every essential", got.StreakDays)
	}
}

func TestComputeProgressIdempotent(t *testing.T) {
	logs := consecutive(monday, 9)
	logs["2025-03-01"] = graceLog("2025-03-01")
	profile := profileWith(models.PaceGentle, models.AreaSalah)

	first := ComputeProgress(logs, profile, monday)
	second := ComputeProgress(logs, profile, monday)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("ComputeProgress not idempotent: %+v vs %+v", first, second)
	}
}

func TestMercyCountResetsEachWeek(t *testing.T) {
	logs := map[string]models.DayLog{
		"2025-03-08": graceLog("2025-03-08"), // Saturday, previous week
		"2025-03-09": graceLog("2025-03-09"), // Sunday, previous week
	}
	got := ComputeProgress(logs, nil, monday)
	if got.MercyDaysUsedThisWeek != 0 {
		t.Errorf("MercyDaysUsedThisWeek = %d, want 0 on a new week", got.MercyDaysUsedThisWeek)
	}

	logs["2025-03-10"] = graceLog("2025-03-10")
	got = ComputeProgress(logs, nil, monday.AddDate(0, 0, 6)) // Sunday of the same week
	if got.MercyDaysUsedThisWeek != 1 {
		t.Errorf("MercyDaysUsedThisWeek = %d, want 1", got.MercyDaysUsedThisWeek)
	}
}

func TestCountMercyDaysIgnoresBadKeys(t *testing.T) {
	logs := map[string]models.DayLog{
		"2025-03-11": graceLog("2025-03-11"),
		"not-a-date": graceLog("not-a-date"),
		"2025-03-12": fajrLog("2025-03-12"),
	}
	if got := CountMercyDays(logs, "2025-03-10", time.UTC); got != 1 {
		t.Errorf("CountMercyDays() = %d, want 1", got)
	}
}

func TestMercyAllowance(t *testing.T) {
	tests := []struct {
		name    string
		profile *models.Profile
		want    int
	}{
		{"no profile", nil, 2},
		{"unset pace", &models.Profile{}, 2},
		{"gentle", profileWith(models.PaceGentle), 2},
		{"balanced", profileWith(models.PaceBalanced), 2},
		{"ambitious", profileWith(models.PaceAmbitious), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MercyAllowance(tt.profile); got != tt.want {
				t.Errorf("MercyAllowance() = %d, want %d", got, tt.want)
			}
		})
	}
}
