// Package jobs runs the background work of a long-lived hedaya session:
// rolling the tracker over at midnight and reminding about due prayers.
package jobs

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/julianstephens/hedaya/internal/logger"
	"github.com/julianstephens/hedaya/internal/models"
	"github.com/julianstephens/hedaya/internal/prayertimes"
	"github.com/julianstephens/hedaya/internal/tracker"
)

const (
	RolloverSpec = "0 0 * * *"
	ReminderSpec = "0 * * * *"
)

// Scheduler owns the tracker for the lifetime of a session. All access,
// from cron jobs or the caller, goes through its mutex.
type Scheduler struct {
	mu       sync.Mutex
	cron     *cron.Cron
	tracker  *tracker.Tracker
	times    prayertimes.Provider
	settings models.Settings
	loc      *time.Location
	remind   func(text string)
}

// NewScheduler builds a scheduler in loc. remind receives reminder text;
// a nil remind only logs.
func NewScheduler(tr *tracker.Tracker, times prayertimes.Provider, settings models.Settings, loc *time.Location, remind func(string)) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	if remind == nil {
		remind = func(string) {}
	}
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		tracker:  tr,
		times:    times,
		settings: settings,
		loc:      loc,
		remind:   remind,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(RolloverSpec, func() { s.Rollover() }); err != nil {
		return fmt.Errorf("failed to schedule rollover: %w", err)
	}
	if _, err := s.cron.AddFunc(ReminderSpec, func() { s.CheckDue(time.Now()) }); err != nil {
		return fmt.Errorf("failed to schedule reminders: %w", err)
	}
	s.cron.Start()
	logger.Info("Scheduler started", "location", s.loc.String())
	return nil
}

// Stop halts the cron and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logger.Info("Scheduler stopped")
}

// Do runs fn with exclusive access to the tracker.
func (s *Scheduler) Do(fn func(*tracker.Tracker)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.tracker)
}

// Rollover moves the tracker to the new day if midnight has passed.
func (s *Scheduler) Rollover() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	rolled := s.tracker.Resume()
	if rolled {
		p := s.tracker.Progress()
		logger.Info("Rollover", "today", s.tracker.TodayKey(), "streak", p.StreakDays, "level", p.CurrentLevel)
	}
	return rolled
}

// CheckDue reminds about prayers whose time has come but are not marked.
// It returns the prayers it reminded about.
func (s *Scheduler) CheckDue(now time.Time) []models.PrayerName {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tracker.Resume()
	times, err := s.times.Times(s.settings.Coordinates(), s.settings.CalculationMethod, now.In(s.loc))
	if err != nil {
		logger.Error("Failed to compute prayer times", "error", err)
		return nil
	}

	due := prayertimes.Due(times, s.tracker.TodayLog(), now)
	if len(due) == 0 {
		logger.Debug("No prayers due")
		return nil
	}

	names := make([]string, 0, len(due))
	for _, p := range due {
		names = append(names, p.TitleAr())
	}
	s.remind("Not yet marked: " + strings.Join(names, ", "))
	return due
}
