package tracker

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/hedaya/internal/clock"
	"github.com/julianstephens/hedaya/internal/logger"
	"github.com/julianstephens/hedaya/internal/models"
	"github.com/julianstephens/hedaya/internal/storage"
	"github.com/julianstephens/hedaya/internal/utils"
)

var (
	// ErrMercyBudgetExceeded is returned by MarkGraceDay in strict mode when
	// the week's allowance is already used up.
	ErrMercyBudgetExceeded = errors.New("weekly mercy allowance already used")
	ErrInvalidDateKey      = errors.New("invalid date key")
	ErrUnknownPrayer       = errors.New("unknown prayer")
	ErrUnknownBranch       = errors.New("unknown branch")
	// ErrNoSunnah is returned for prayers without a companion sunnah (asr).
	ErrNoSunnah = errors.New("prayer has no companion sunnah")
	// ErrUnsupportedAction is returned by Apply for actions the day log
	// has nowhere to record.
	ErrUnsupportedAction = errors.New("action cannot be recorded in a day log")
	ErrUnknownElement    = errors.New("unknown tree element")
	ErrFutureDate        = errors.New("date is in the future")
)

// Notifier receives milestone messages. Delivery is best effort.
type Notifier interface {
	Notify(text string) error
}

// Stores bundles the persisted documents the tracker reads and writes.
type Stores struct {
	Logs     *storage.DayLogStore
	Profile  *storage.ProfileStore
	Progress *storage.ProgressCache
}

// StoresFor builds the document stores over a single Provider.
func StoresFor(kv storage.Provider) Stores {
	return Stores{
		Logs:     storage.NewDayLogStore(kv),
		Profile:  storage.NewProfileStore(kv),
		Progress: storage.NewProgressCache(kv),
	}
}

type Option func(*Tracker)

// WithNotifier sends a message whenever the level goes up.
func WithNotifier(n Notifier) Option {
	return func(t *Tracker) { t.notifier = n }
}

// WithStrictMercy rejects grace days beyond the weekly allowance instead
// of recording them with a warning.
func WithStrictMercy(strict bool) Option {
	return func(t *Tracker) { t.strictMercy = strict }
}

// Tracker is the single writer of day logs and the profile, and owns the
// published ProgressState. Every mutation persists and then recomputes
// progress synchronously.
//
// A Tracker is not safe for concurrent use.
type Tracker struct {
	stores      Stores
	clock       clock.Clock
	notifier    Notifier
	strictMercy bool

	todayKey string
	today    models.DayLog
	profile  *models.Profile
	progress models.ProgressState
}

// New constructs a tracker and computes the initial progress.
func New(stores Stores, clk clock.Clock, opts ...Option) *Tracker {
	t := &Tracker{
		stores:   stores,
		clock:    clk,
		progress: models.DefaultProgressState(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.todayKey = clock.TodayKey(clk)
	t.recompute(false)
	return t
}

// Refresh reloads logs and profile and recomputes progress. The result is
// also written to the progress cache.
func (t *Tracker) Refresh() models.ProgressState {
	return t.recompute(false)
}

// recompute is Refresh; announce additionally notifies on a level-up.
func (t *Tracker) recompute(announce bool) models.ProgressState {
	now := t.clock.Now().In(t.clock.Location())
	logs := t.stores.Logs.Load()
	t.profile = t.loadProfile()

	t.todayKey = utils.DateKey(now)
	if log, ok := logs[t.todayKey]; ok {
		t.today = log
	} else {
		t.today = models.NewDayLog(t.todayKey)
	}

	previous := t.progress
	t.progress = ComputeProgress(logs, t.profile, now)

	if err := t.stores.Progress.Save(t.progress); err != nil {
		logger.Warn("Failed to cache progress", "error", err)
	}
	if t.progress.CurrentLevel != previous.CurrentLevel {
		logger.Info("Level changed", "from", previous.CurrentLevel, "to", t.progress.CurrentLevel, "streak", t.progress.StreakDays)
		if announce && t.progress.CurrentLevel.Rank() > previous.CurrentLevel.Rank() {
			t.announce(t.progress)
		}
	}
	return t.progress
}

func (t *Tracker) loadProfile() *models.Profile {
	if !t.stores.Profile.Exists() {
		return nil
	}
	p := t.stores.Profile.Load()
	return &p
}

func (t *Tracker) announce(state models.ProgressState) {
	if t.notifier == nil {
		return
	}
	text := fmt.Sprintf("%s: %d days on the path", state.CurrentLevel.TitleAr(), state.StreakDays)
	if err := t.notifier.Notify(text); err != nil {
		logger.Warn("Failed to send level notification", "error", err)
	}
}

// Resume re-evaluates "today" after the process may have been idle, e.g.
// across midnight. It reports whether the day rolled over.
func (t *Tracker) Resume() bool {
	key := clock.TodayKey(t.clock)
	if key == t.todayKey {
		return false
	}
	logger.Info("Day rolled over", "from", t.todayKey, "to", key)
	t.Refresh()
	return true
}

func (t *Tracker) Progress() models.ProgressState {
	return t.progress
}

func (t *Tracker) TodayKey() string {
	return t.todayKey
}

// TodayLog returns a copy of today's log.
func (t *Tracker) TodayLog() models.DayLog {
	return t.today.Clone()
}

// Log returns the log stored for dateKey, or an empty one.
func (t *Tracker) Log(dateKey string) (models.DayLog, error) {
	if !utils.ValidateDateKey(dateKey) {
		return models.DayLog{}, fmt.Errorf("%w: %q", ErrInvalidDateKey, dateKey)
	}
	return t.stores.Logs.Get(dateKey), nil
}

// DayEntry is one row of the history view.
type DayEntry struct {
	Log    models.DayLog
	OnPath bool
}

// History returns the last n days, newest first, with their on-path status.
func (t *Tracker) History(days int) []DayEntry {
	if days <= 0 {
		return nil
	}
	logs := t.stores.Logs.Load()
	now := t.clock.Now().In(t.clock.Location())
	day := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, now.Location())

	out := make([]DayEntry, 0, days)
	for i := 0; i < days; i++ {
		key := utils.DateKey(day)
		log, ok := logs[key]
		if !ok {
			log = models.NewDayLog(key)
		}
		out = append(out, DayEntry{Log: log, OnPath: IsOnPath(log, t.profile)})
		day = day.AddDate(0, 0, -1)
	}
	return out
}

// Profile returns the stored profile and whether one exists.
func (t *Tracker) Profile() (models.Profile, bool) {
	if t.profile == nil {
		return models.Profile{}, false
	}
	return *t.profile, true
}

// Essentials returns the profile's daily essentials, or nothing when no
// profile is stored.
func (t *Tracker) Essentials() []models.EssentialItem {
	if t.profile == nil {
		return nil
	}
	return t.profile.DailyEssentials()
}

// EssentialStatus pairs an essential with whether today's log satisfies it.
type EssentialStatus struct {
	Item models.EssentialItem
	Done bool
}

func (t *Tracker) EssentialStatus() []EssentialStatus {
	items := t.Essentials()
	out := make([]EssentialStatus, 0, len(items))
	for _, item := range items {
		out = append(out, EssentialStatus{Item: item, Done: item.SatisfiedBy(t.today)})
	}
	return out
}

// Bonuses returns the optional extras for the stored profile, or for the
// default profile when none is stored.
func (t *Tracker) Bonuses() []models.BonusItem {
	if t.profile == nil {
		return models.Profile{}.OptionalBonuses()
	}
	return t.profile.OptionalBonuses()
}

// SaveProfile replaces the profile.
func (t *Tracker) SaveProfile(p models.Profile) error {
	if err := t.stores.Profile.Save(p); err != nil {
		return err
	}
	t.Refresh()
	return nil
}

// UpdateProfile applies mutate to the stored profile (default when none
// is stored) and saves it.
func (t *Tracker) UpdateProfile(mutate func(*models.Profile)) (models.Profile, error) {
	p, _, err := t.stores.Profile.Read()
	if err != nil {
		return models.Profile{}, err
	}
	mutate(&p)
	if err := t.SaveProfile(p); err != nil {
		return models.Profile{}, err
	}
	return p, nil
}

// CompleteOnboarding saves p stamped with the current time.
func (t *Tracker) CompleteOnboarding(p models.Profile) (models.Profile, error) {
	now := t.clock.Now()
	p.CompletedAt = &now
	if err := t.SaveProfile(p); err != nil {
		return models.Profile{}, err
	}
	return p, nil
}

// ClearAll removes every day log, the profile and the progress cache.
func (t *Tracker) ClearAll() error {
	if err := t.stores.Logs.Clear(); err != nil {
		return err
	}
	if err := t.stores.Profile.Clear(); err != nil {
		return err
	}
	if err := t.stores.Progress.Clear(); err != nil {
		return err
	}
	t.progress = models.DefaultProgressState()
	t.Refresh()
	return nil
}

// mutateToday rolls today forward if needed, applies mutate to today's log,
// persists it and recomputes progress.
func (t *Tracker) mutateToday(mutate func(*models.DayLog)) error {
	t.Resume()
	log, err := t.stores.Logs.Upsert(t.todayKey, mutate)
	if err != nil {
		return err
	}
	t.today = log
	t.recompute(true)
	return nil
}

func (t *Tracker) MarkPrayerDone(p models.PrayerName) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownPrayer, p)
	}
	return t.mutateToday(func(l *models.DayLog) { l.MarkPrayer(p) })
}

func (t *Tracker) MarkSunnahDone(p models.PrayerName) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownPrayer, p)
	}
	if !p.HasSunnah() {
		return fmt.Errorf("%w: %s", ErrNoSunnah, p)
	}
	return t.mutateToday(func(l *models.DayLog) { l.MarkSunnah(p) })
}

func (t *Tracker) MarkSunriseSunnahDone() error {
	return t.mutateToday(func(l *models.DayLog) { l.SunriseSunnahDone = true })
}

func (t *Tracker) MarkQuranDone() error {
	return t.mutateToday(func(l *models.DayLog) { l.QuranDone = true })
}

func (t *Tracker) MarkBranchDone(b models.BranchType) error {
	if !b.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownBranch, b)
	}
	return t.mutateToday(func(l *models.DayLog) { l.MarkBranch(b) })
}

// MarkGraceDay excuses dateKey (today when empty). A mark past the weekly
// allowance is recorded with a warning, or rejected in strict mode.
func (t *Tracker) MarkGraceDay(dateKey string) (GraceResult, error) {
	t.Resume()
	if dateKey == "" {
		dateKey = t.todayKey
	}
	if !utils.ValidateDateKey(dateKey) {
		return GraceResult{}, fmt.Errorf("%w: %q", ErrInvalidDateKey, dateKey)
	}
	if dateKey > t.todayKey {
		return GraceResult{}, fmt.Errorf("%w: %s", ErrFutureDate, dateKey)
	}

	loc := t.clock.Location()
	logs, err := t.stores.Logs.ReadAll()
	if err != nil {
		return GraceResult{}, err
	}
	week := utils.WeekStartKeyForDateKey(dateKey, loc)
	allowed := MercyAllowance(t.profile)
	used := CountMercyDays(logs, week, loc)

	result := GraceResult{DateKey: dateKey, AllowedPerWeek: allowed, UsedThisWeek: used}
	if logs[dateKey].UsedGraceDay {
		result.AlreadyMarked = true
		return result, nil
	}

	if used >= allowed {
		if t.strictMercy {
			return result, fmt.Errorf("%w: %d of %d used in week of %s", ErrMercyBudgetExceeded, used, allowed, week)
		}
		result.OverBudget = true
		logger.Warn("Grace day marked beyond weekly allowance", "date", dateKey, "used", used, "allowed", allowed)
	}

	log, err := t.stores.Logs.Upsert(dateKey, func(l *models.DayLog) { l.UsedGraceDay = true })
	if err != nil {
		return GraceResult{}, err
	}
	if dateKey == t.todayKey {
		t.today = log
	}
	result.UsedThisWeek = used + 1
	t.recompute(true)
	return result, nil
}

// Apply records an action by type. Actions with no day-log field, and the
// umbrella "salah" and "dhikr" actions, return ErrUnsupportedAction.
func (t *Tracker) Apply(action models.ActionType) error {
	switch action {
	case models.ActionFajr, models.ActionDhuhr, models.ActionAsr, models.ActionMaghrib, models.ActionIsha:
		return t.MarkPrayerDone(models.PrayerName(action))
	case models.ActionQuran:
		return t.MarkQuranDone()
	case models.ActionDhikrSabah:
		return t.MarkBranchDone(models.BranchMorningZikr)
	case models.ActionDhikrMasa:
		return t.MarkBranchDone(models.BranchEveningZikr)
	case models.ActionDua, models.ActionExtraDua:
		return t.MarkBranchDone(models.BranchExtraDuaa)
	case models.ActionSadaqah:
		return t.MarkBranchDone(models.BranchSadaqa)
	case models.ActionExtraDhikr:
		return t.MarkBranchDone(models.BranchExtraZikr)
	case models.ActionQiyamAlLayl:
		return t.MarkBranchDone(models.BranchExtraSalah)
	case models.ActionSunnahFajr:
		return t.MarkSunnahDone(models.PrayerFajr)
	case models.ActionSunnahDhuhr:
		return t.MarkSunnahDone(models.PrayerDhuhr)
	case models.ActionSunnahMaghrib:
		return t.MarkSunnahDone(models.PrayerMaghrib)
	case models.ActionSunnahIsha:
		return t.MarkSunnahDone(models.PrayerIsha)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedAction, action)
	}
}

// Tap performs the action of a tree element.
func (t *Tracker) Tap(elementID string) (Element, error) {
	el, ok := ResolveElement(elementID)
	if !ok {
		return Element{}, fmt.Errorf("%w: %q", ErrUnknownElement, elementID)
	}
	var err error
	switch el.Kind {
	case ElementQuran:
		err = t.MarkQuranDone()
	case ElementPrayer:
		err = t.MarkPrayerDone(el.Prayer)
	case ElementBranch:
		err = t.MarkBranchDone(el.Branch)
	}
	return el, err
}
