// Package clock supplies "now" to the tracker so day rollover can be
// driven deterministically in tests.
package clock

import (
	"sync"
	"time"

	"github.com/julianstephens/hedaya/internal/utils"
)

// Clock reports the current instant in the user's timezone.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

// TodayKey returns the day key for c's current instant.
func TodayKey(c Clock) string {
	return utils.DateKey(c.Now().In(c.Location()))
}

// System is the wall clock in a fixed location.
type System struct {
	loc *time.Location
}

// NewSystem returns a wall clock for loc. A nil loc means time.Local.
func NewSystem(loc *time.Location) *System {
	if loc == nil {
		loc = time.Local
	}
	return &System{loc: loc}
}

func (s *System) Now() time.Time {
	return time.Now().In(s.loc)
}

func (s *System) Location() *time.Location {
	return s.loc
}

// Fixed is a settable clock for tests.
//
// Thread-safety: all methods are safe for concurrent use.
type Fixed struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixed creates a clock frozen at now, in now's location.
func NewFixed(now time.Time) *Fixed {
	return &Fixed{now: now}
}

func (f *Fixed) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fixed) Location() *time.Location {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now.Location()
}

// Set moves the clock to t.
func (f *Fixed) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = t
}

// AddDays advances (or rewinds) the clock by n calendar days.
func (f *Fixed) AddDays(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.AddDate(0, 0, n)
}
