package tracker

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/julianstephens/hedaya/internal/clock"
	"github.com/julianstephens/hedaya/internal/constants"
	"github.com/julianstephens/hedaya/internal/models"
	"github.com/julianstephens/hedaya/internal/storage"
)

type recordingNotifier struct {
	messages []string
	err      error
}

func (n *recordingNotifier) Notify(text string) error {
	n.messages = append(n.messages, text)
	return n.err
}

func setupTestTracker(t *testing.T, now time.Time, opts ...Option) (*Tracker, *clock.Fixed, storage.Provider) {
	t.Helper()
	kv := storage.NewMemoryStore()
	if err := kv.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	clk := clock.NewFixed(now)
	return New(StoresFor(kv), clk, opts...), clk, kv
}

func seedLogs(t *testing.T, kv storage.Provider, logs map[string]models.DayLog) {
	t.Helper()
	if err := storage.NewDayLogStore(kv).Save(logs); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
}

func TestMarkFajrOnEmptyStore(t *testing.T) {
	tr, _, kv := setupTestTracker(t, monday)

	if err := tr.MarkPrayerDone(models.PrayerFajr); err != nil {
		t.Fatalf("MarkPrayerDone() error = %v", err)
	}

	got := tr.Progress()
	if got.StreakDays != 1 || got.CurrentLevel != models.LevelSeeds {
		t.Errorf("Progress() = %+v", got)
	}
	if math.Abs(got.LevelProgress-1.0/7) > 1e-9 {
		t.Errorf("LevelProgress = %v, want 1/7", got.LevelProgress)
	}
	if !tr.TodayLog().PrayersCompleted.Has(models.PrayerFajr) {
		t.Error("today's log missing fajr")
	}

	// Persisted: a fresh tracker over the same store sees the same state
	again := New(StoresFor(kv), clock.NewFixed(monday))
	if !reflect.DeepEqual(again.Progress(), got) {
		t.Errorf("reloaded Progress() = %+v, want %+v", again.Progress(), got)
	}
}

func TestMarkOperations(t *testing.T) {
	tr, _, _ := setupTestTracker(t, monday)

	if err := tr.MarkSunnahDone(models.PrayerFajr); err != nil {
		t.Fatalf("MarkSunnahDone() error = %v", err)
	}
	if err := tr.MarkSunriseSunnahDone(); err != nil {
		t.Fatalf("MarkSunriseSunnahDone() error = %v", err)
	}
	if err := tr.MarkQuranDone(); err != nil {
		t.Fatalf("MarkQuranDone() error = %v", err)
	}
	if err := tr.MarkBranchDone(models.BranchSleepingZikr); err != nil {
		t.Fatalf("MarkBranchDone() error = %v", err)
	}

	log := tr.TodayLog()
	if !log.SunnahCompleted.Has(models.PrayerFajr) || !log.SunriseSunnahDone || !log.QuranDone || !log.BranchesCompleted.Has(models.BranchSleepingZikr) {
		t.Errorf("TodayLog() = %+v", log)
	}
	// Marking twice is harmless
	if err := tr.MarkQuranDone(); err != nil {
		t.Fatalf("MarkQuranDone() error = %v", err)
	}
	if tr.Progress().StreakDays != 1 {
		t.Errorf("StreakDays = %d, want 1", tr.Progress().StreakDays)
	}
}

func TestMarkRejectsInvalidInput(t *testing.T) {
	tr, _, _ := setupTestTracker(t, monday)

	if err := tr.MarkSunnahDone(models.PrayerAsr); !errors.Is(err, ErrNoSunnah) {
		t.Errorf("MarkSunnahDone(asr) error = %v, want ErrNoSunnah", err)
	}
	if err := tr.MarkPrayerDone("tahajjud"); !errors.Is(err, ErrUnknownPrayer) {
		t.Errorf("MarkPrayerDone(tahajjud) error = %v, want ErrUnknownPrayer", err)
	}
	if err := tr.MarkBranchDone("gardening"); !errors.Is(err, ErrUnknownBranch) {
		t.Errorf("MarkBranchDone(gardening) error = %v, want ErrUnknownBranch", err)
	}
	if tr.TodayLog().HasActivity() {
		t.Error("rejected marks must not be recorded")
	}
}

func TestDayRollover(t *testing.T) {
	tr, clk, _ := setupTestTracker(t, monday)

	if err := tr.MarkPrayerDone(models.PrayerFajr); err != nil {
		t.Fatalf("MarkPrayerDone() error = %v", err)
	}

	if tr.Resume() {
		t.Error("Resume() reported a rollover on the same day")
	}

	clk.AddDays(1)
	if !tr.Resume() {
		t.Fatal("Resume() did not detect the new day")
	}
	if tr.TodayKey() != "2025-03-11" {
		t.Errorf("TodayKey() = %q", tr.TodayKey())
	}
	if tr.TodayLog().HasActivity() {
		t.Error("new day should start with an empty log")
	}
	if tr.Progress().StreakDays != 0 {
		t.Errorf("StreakDays = %d, want 0 until today has activity", tr.Progress().StreakDays)
	}

	if err := tr.MarkPrayerDone(models.PrayerDhuhr); err != nil {
		t.Fatalf("MarkPrayerDone() error = %v", err)
	}
	if tr.Progress().StreakDays != 2 {
		t.Errorf("StreakDays = %d, want 2", tr.Progress().StreakDays)
	}
}

func TestMutationRollsForwardWithoutResume(t *testing.T) {
	tr, clk, _ := setupTestTracker(t, monday)

	clk.AddDays(1)
	if err := tr.MarkQuranDone(); err != nil {
		t.Fatalf("MarkQuranDone() error = %v", err)
	}

	yesterday, err := tr.Log("2025-03-10")
	if err != nil {
		t.Fatalf("Log() error = %v", err)
	}
	if yesterday.QuranDone {
		t.Error("mark was written to the stale day")
	}
	if !tr.TodayLog().QuranDone || tr.TodayLog().DateKey != "2025-03-11" {
		t.Errorf("TodayLog() = %+v", tr.TodayLog())
	}
}

func TestMarkGraceDaySoftBudget(t *testing.T) {
	tr, _, _ := setupTestTracker(t, monday.AddDate(0, 0, 3)) // Thursday

	for i, key := range []string{"2025-03-10", "2025-03-11"} {
		res, err := tr.MarkGraceDay(key)
		if err != nil {
			t.Fatalf("MarkGraceDay(%s) error = %v", key, err)
		}
		if res.OverBudget || res.UsedThisWeek != i+1 || res.AllowedPerWeek != 2 {
			t.Errorf("MarkGraceDay(%s) = %+v", key, res)
		}
	}

	res, err := tr.MarkGraceDay("2025-03-12")
	if err != nil {
		t.Fatalf("MarkGraceDay() error = %v", err)
	}
	if !res.OverBudget {
		t.Error("third grace day should be reported over budget")
	}
	if tr.Progress().MercyDaysUsedThisWeek != 3 {
		t.Errorf("MercyDaysUsedThisWeek = %d, want 3 (soft cap records the mark)", tr.Progress().MercyDaysUsedThisWeek)
	}
	if tr.Progress().MercyDaysRemaining() != 0 {
		t.Errorf("MercyDaysRemaining() = %d, want 0", tr.Progress().MercyDaysRemaining())
	}
}

func TestMarkGraceDayStrictBudget(t *testing.T) {
	tr, _, _ := setupTestTracker(t, monday.AddDate(0, 0, 3), WithStrictMercy(true))
	if _, err := tr.UpdateProfile(func(p *models.Profile) { p.Pace = models.PaceAmbitious }); err != nil {
		t.Fatalf("SaveProfile() error = %v", err)
	}

	if _, err := tr.MarkGraceDay("2025-03-10"); err != nil {
		t.Fatalf("MarkGraceDay() error = %v", err)
	}
	_, err := tr.MarkGraceDay("2025-03-11")
	if !errors.Is(err, ErrMercyBudgetExceeded) {
		t.Fatalf("MarkGraceDay() error = %v, want ErrMercyBudgetExceeded", err)
	}
	log, _ := tr.Log("2025-03-11")
	if log.UsedGraceDay {
		t.Error("rejected grace day was persisted")
	}

	// The previous week has its own allowance
	if _, err := tr.MarkGraceDay("2025-03-09"); err != nil {
		t.Errorf("MarkGraceDay(previous week) error = %v", err)
	}
}

func TestMarkGraceDayEdgeCases(t *testing.T) {
	tr, _, _ := setupTestTracker(t, monday)

	if _, err := tr.MarkGraceDay("10-03-2025"); !errors.Is(err, ErrInvalidDateKey) {
		t.Errorf("MarkGraceDay(bad key) error = %v, want ErrInvalidDateKey", err)
	}
	if _, err := tr.MarkGraceDay("2025-03-11"); !errors.Is(err, ErrFutureDate) {
		t.Errorf("MarkGraceDay(tomorrow) error = %v, want ErrFutureDate", err)
	}

	res, err := tr.MarkGraceDay("")
	if err != nil {
		t.Fatalf("MarkGraceDay(today) error = %v", err)
	}
	if res.DateKey != "2025-03-10" || !tr.TodayLog().UsedGraceDay {
		t.Errorf("MarkGraceDay(\"\") = %+v", res)
	}
	if tr.Progress().StreakDays != 1 {
		t.Errorf("StreakDays = %d, want 1 after grace", tr.Progress().StreakDays)
	}

	res, err = tr.MarkGraceDay("2025-03-10")
	if err != nil {
		t.Fatalf("MarkGraceDay() error = %v", err)
	}
	if !res.AlreadyMarked || res.UsedThisWeek != 1 {
		t.Errorf("second mark = %+v, want AlreadyMarked with 1 used", res)
	}
}

func TestLevelUpNotification(t *testing.T) {
	n := &recordingNotifier{}
	kv := storage.NewMemoryStore()
	if err := kv.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	seedLogs(t, kv, consecutive(monday.AddDate(0, 0, -1), 6))

	tr := New(StoresFor(kv), clock.NewFixed(monday), WithNotifier(n))
	if len(n.messages) != 0 {
		t.Fatalf("cold start sent %d notifications", len(n.messages))
	}

	if err := tr.MarkPrayerDone(models.PrayerFajr); err != nil {
		t.Fatalf("MarkPrayerDone() error = %v", err)
	}
	if tr.Progress().CurrentLevel != models.LevelRoots {
		t.Fatalf("CurrentLevel = %s, want roots", tr.Progress().CurrentLevel)
	}
	if len(n.messages) != 1 {
		t.Errorf("expected 1 notification, got %d", len(n.messages))
	}

	// Staying at the same level is silent
	if err := tr.MarkQuranDone(); err != nil {
		t.Fatalf("MarkQuranDone() error = %v", err)
	}
	if len(n.messages) != 1 {
		t.Errorf("expected no new notification, got %d total", len(n.messages))
	}
}

func TestNotifierFailureIsIgnored(t *testing.T) {
	n := &recordingNotifier{err: errors.New("companion not running")}
	kv := storage.NewMemoryStore()
	if err := kv.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	seedLogs(t, kv, consecutive(monday.AddDate(0, 0, -1), 6))

	tr := New(StoresFor(kv), clock.NewFixed(monday), WithNotifier(n))
	if err := tr.MarkPrayerDone(models.PrayerFajr); err != nil {
		t.Fatalf("MarkPrayerDone() error = %v, notifier errors must not surface", err)
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		action models.ActionType
		check  func(models.DayLog) bool
	}{
		{models.ActionIsha, func(l models.DayLog) bool { return l.PrayersCompleted.Has(models.PrayerIsha) }},
		{models.ActionQuran, func(l models.DayLog) bool { return l.QuranDone }},
		{models.ActionDhikrSabah, func(l models.DayLog) bool { return l.BranchesCompleted.Has(models.BranchMorningZikr) }},
		{models.ActionDhikrMasa, func(l models.DayLog) bool { return l.BranchesCompleted.Has(models.BranchEveningZikr) }},
		{models.ActionDua, func(l models.DayLog) bool { return l.BranchesCompleted.Has(models.BranchExtraDuaa) }},
		{models.ActionSadaqah, func(l models.DayLog) bool { return l.BranchesCompleted.Has(models.BranchSadaqa) }},
		{models.ActionQiyamAlLayl, func(l models.DayLog) bool { return l.BranchesCompleted.Has(models.BranchExtraSalah) }},
		{models.ActionSunnahMaghrib, func(l models.DayLog) bool { return l.SunnahCompleted.Has(models.PrayerMaghrib) }},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			tr, _, _ := setupTestTracker(t, monday)
			if err := tr.Apply(tt.action); err != nil {
				t.Fatalf("Apply(%s) error = %v", tt.action, err)
			}
			if !tt.check(tr.TodayLog()) {
				t.Errorf("Apply(%s) did not record the action: %+v", tt.action, tr.TodayLog())
			}
		})
	}
}

func TestApplyUnsupported(t *testing.T) {
	tr, _, _ := setupTestTracker(t, monday)
	for _, a := range []models.ActionType{models.ActionZakat, models.ActionGoodDeed, models.ActionSalah, models.ActionDhikr, "dance"} {
		if err := tr.Apply(a); !errors.Is(err, ErrUnsupportedAction) {
			t.Errorf("Apply(%s) error = %v, want ErrUnsupportedAction", a, err)
		}
	}
}

func TestApplyEveryBonus(t *testing.T) {
	for _, b := range (models.Profile{}).OptionalBonuses() {
		if b.Action == "" {
			continue
		}
		t.Run(string(b.Action), func(t *testing.T) {
			tr, _, _ := setupTestTracker(t, monday)
			if err := tr.Apply(b.Action); err != nil {
				t.Errorf("Apply(%s) error = %v", b.Action, err)
			}
		})
	}
}

func TestTap(t *testing.T) {
	tr, _, _ := setupTestTracker(t, monday)

	if _, err := tr.Tap("trunk"); err != nil {
		t.Fatalf("Tap(trunk) error = %v", err)
	}
	if _, err := tr.Tap("root-maghrib"); err != nil {
		t.Fatalf("Tap(root-maghrib) error = %v", err)
	}
	if _, err := tr.Tap("branch-sleeping-zikr"); err != nil {
		t.Fatalf("Tap(branch-sleeping-zikr) error = %v", err)
	}
	if _, err := tr.Tap("leaf-7"); !errors.Is(err, ErrUnknownElement) {
		t.Errorf("Tap(leaf-7) error = %v, want ErrUnknownElement", err)
	}

	log := tr.TodayLog()
	if !log.QuranDone || !log.PrayersCompleted.Has(models.PrayerMaghrib) || !log.BranchesCompleted.Has(models.BranchSleepingZikr) {
		t.Errorf("TodayLog() = %+v", log)
	}
}

func TestProfileLifecycle(t *testing.T) {
	tr, _, _ := setupTestTracker(t, monday)

	if _, ok := tr.Profile(); ok {
		t.Error("Profile() reported a profile on an empty store")
	}
	if len(tr.Essentials()) != 0 {
		t.Error("Essentials() should be empty without a profile")
	}
	if len(tr.Bonuses()) == 0 {
		t.Error("Bonuses() should fall back to the default profile")
	}

	p, err := tr.CompleteOnboarding(models.Profile{WorshipAreas: []models.WorshipArea{models.AreaDhikr}})
	if err != nil {
		t.Fatalf("CompleteOnboarding() error = %v", err)
	}
	if p.CompletedAt == nil || !p.CompletedAt.Equal(monday) {
		t.Errorf("CompletedAt = %v, want %v", p.CompletedAt, monday)
	}
	stored, ok := tr.Profile()
	if !ok || !stored.HasCompletedOnboarding() {
		t.Errorf("Profile() = %+v, %v", stored, ok)
	}

	// Evening zikr satisfies the dhikr profile
	if err := tr.MarkBranchDone(models.BranchEveningZikr); err != nil {
		t.Fatalf("MarkBranchDone() error = %v", err)
	}
	status := tr.EssentialStatus()
	if len(status) != 2 {
		t.Fatalf("EssentialStatus() has %d items, want 2", len(status))
	}
	if status[0].Done || !status[1].Done {
		t.Errorf("EssentialStatus() = %+v, want only the evening item done", status)
	}
	if tr.Progress().StreakDays != 1 {
		t.Errorf("StreakDays = %d, want 1", tr.Progress().StreakDays)
	}

	// Switching the profile to salah recomputes immediately
	if _, err := tr.UpdateProfile(func(p *models.Profile) {
		p.WorshipAreas = []models.WorshipArea{models.AreaSalah}
		p.Pace = models.PaceAmbitious
	}); err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if tr.Progress().StreakDays != 0 {
		t.Errorf("StreakDays = %d, want 0 after the profile change", tr.Progress().StreakDays)
	}
	if tr.Progress().MercyDaysAllowedPerWeek != 1 {
		t.Errorf("MercyDaysAllowedPerWeek = %d, want 1", tr.Progress().MercyDaysAllowedPerWeek)
	}
}

func TestClearAll(t *testing.T) {
	tr, _, kv := setupTestTracker(t, monday)

	if err := tr.MarkPrayerDone(models.PrayerFajr); err != nil {
		t.Fatalf("MarkPrayerDone() error = %v", err)
	}
	if err := tr.SaveProfile(models.Profile{Pace: models.PaceGentle}); err != nil {
		t.Fatalf("SaveProfile() error = %v", err)
	}

	if err := tr.ClearAll(); err != nil {
		t.Fatalf("ClearAll() error = %v", err)
	}
	if _, ok := tr.Profile(); ok {
		t.Error("profile survived ClearAll")
	}
	if tr.TodayLog().HasActivity() {
		t.Error("today's log survived ClearAll")
	}
	if tr.Progress().StreakDays != 0 || tr.Progress().CurrentLevel != models.LevelSeeds {
		t.Errorf("Progress() = %+v after ClearAll", tr.Progress())
	}
	if _, err := kv.Get(constants.KeyProfile); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("profile key still present: %v", err)
	}
}

func TestRefreshIdempotentAndCached(t *testing.T) {
	tr, _, kv := setupTestTracker(t, monday)
	if err := tr.MarkPrayerDone(models.PrayerAsr); err != nil {
		t.Fatalf("MarkPrayerDone() error = %v", err)
	}

	first := tr.Refresh()
	second := tr.Refresh()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Refresh() not idempotent: %+v vs %+v", first, second)
	}

	cached, ok := storage.NewProgressCache(kv).Load()
	if !ok || !reflect.DeepEqual(cached, second) {
		t.Errorf("cache = %+v (%v), want %+v", cached, ok, second)
	}
}

func TestCorruptLogsStartFresh(t *testing.T) {
	kv := storage.NewMemoryStore()
	if err := kv.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := kv.Set(constants.KeyDailyLogs, []byte("{broken")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	tr := New(StoresFor(kv), clock.NewFixed(monday))
	if tr.Progress().StreakDays != 0 {
		t.Errorf("StreakDays = %d, want 0", tr.Progress().StreakDays)
	}
	if err := tr.MarkPrayerDone(models.PrayerFajr); err != nil {
		t.Fatalf("MarkPrayerDone() error = %v", err)
	}
	if tr.Progress().StreakDays != 1 {
		t.Errorf("StreakDays = %d, want 1", tr.Progress().StreakDays)
	}
}

func TestHistory(t *testing.T) {
	tr, _, kv := setupTestTracker(t, monday)
	seedLogs(t, kv, map[string]models.DayLog{
		"2025-03-10": fajrLog("2025-03-10"),
		"2025-03-08": graceLog("2025-03-08"),
	})

	got := tr.History(3)
	if len(got) != 3 {
		t.Fatalf("History(3) returned %d entries", len(got))
	}
	wantKeys := []string{"2025-03-10", "2025-03-09", "2025-03-08"}
	wantOnPath := []bool{true, false, true}
	for i := range got {
		if got[i].Log.DateKey != wantKeys[i] || got[i].OnPath != wantOnPath[i] {
			t.Errorf("History[%d] = %s/%v, want %s/%v", i, got[i].Log.DateKey, got[i].OnPath, wantKeys[i], wantOnPath[i])
		}
	}
	if tr.History(0) != nil {
		t.Error("History(0) should be nil")
	}
}

func TestLogRejectsBadKey(t *testing.T) {
	tr, _, _ := setupTestTracker(t, monday)
	if _, err := tr.Log("March 10"); !errors.Is(err, ErrInvalidDateKey) {
		t.Errorf("Log() error = %v, want ErrInvalidDateKey", err)
	}
}

type lockedReads struct {
	storage.Provider
	key  string
	fail int
}

var errLocked = errors.New("database is locked")

func (l *lockedReads) Get(key string) ([]byte, error) {
	if key == l.key && l.fail > 0 {
		l.fail--
		return nil, errLocked
	}
	return l.Provider.Get(key)
}

func TestFailedReadDoesNotWipeHistory(t *testing.T) {
	kv := storage.NewMemoryStore()
	if err := kv.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	logs := map[string]models.DayLog{}
	for i := 1; i <= 10; i++ {
		key := monday.AddDate(0, 0, -i).Format("2006-01-02")
		l := models.NewDayLog(key)
		l.MarkPrayer(models.PrayerFajr)
		logs[key] = l
	}
	seedLogs(t, kv, logs)

	locked := &lockedReads{Provider: kv, key: constants.KeyDailyLogs}
	tr := New(StoresFor(locked), clock.NewFixed(monday))

	locked.fail = 1
	if err := tr.MarkPrayerDone(models.PrayerFajr); !errors.Is(err, errLocked) {
		t.Fatalf("MarkPrayerDone() error = %v, want %v", err, errLocked)
	}
	locked.fail = 1
	if _, err := tr.MarkGraceDay(""); !errors.Is(err, errLocked) {
		t.Fatalf("MarkGraceDay() error = %v, want %v", err, errLocked)
	}

	if n := len(storage.NewDayLogStore(kv).Load()); n != 10 {
		t.Fatalf("stored logs = %d, want 10", n)
	}

	if err := tr.MarkPrayerDone(models.PrayerFajr); err != nil {
		t.Fatalf("MarkPrayerDone() error = %v", err)
	}
	if got := tr.Progress().StreakDays; got != 11 {
		t.Errorf("StreakDays = %d, want 11", got)
	}
}

func TestUpdateProfileFailedReadKeepsProfile(t *testing.T) {
	kv := storage.NewMemoryStore()
	if err := kv.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	stored := models.Profile{Pace: models.PaceGentle, WorshipAreas: []models.WorshipArea{models.AreaQuran}}
	if err := storage.NewProfileStore(kv).Save(stored); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	locked := &lockedReads{Provider: kv, key: constants.KeyProfile}
	tr := New(StoresFor(locked), clock.NewFixed(monday))

	locked.fail = 1
	if _, err := tr.UpdateProfile(func(p *models.Profile) { p.Pace = models.PaceAmbitious }); !errors.Is(err, errLocked) {
		t.Fatalf("UpdateProfile() error = %v, want %v", err, errLocked)
	}
	if got := storage.NewProfileStore(kv).Load(); got.Pace != models.PaceGentle || len(got.WorshipAreas) != 1 {
		t.Errorf("stored profile = %+v, want it unchanged", got)
	}

	p, err := tr.UpdateProfile(func(p *models.Profile) { p.Pace = models.PaceAmbitious })
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if p.Pace != models.PaceAmbitious || len(p.WorshipAreas) != 1 {
		t.Errorf("UpdateProfile() = %+v, want ambitious with areas kept", p)
	}
}
