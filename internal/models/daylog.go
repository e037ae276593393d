package models

import (
	"encoding/json"
	"sort"
)

// DayLog is the completion record for one calendar day.
//
// Completed markers are only ever added within a day; nothing in the
// package removes one. A new day starts from a fresh log.
type DayLog struct {
	DateKey           string    `json:"date_key"` // YYYY-MM-DD, Gregorian, local timezone
	PrayersCompleted  PrayerSet `json:"prayers_completed"`
	SunnahCompleted   PrayerSet `json:"sunnah_completed"`
	SunriseSunnahDone bool      `json:"sunrise_sunnah_done"`
	QuranDone         bool      `json:"quran_done"`
	BranchesCompleted BranchSet `json:"branches_completed"`
	UsedGraceDay      bool      `json:"used_grace_day"`
}

// NewDayLog returns an empty log for the given date key.
func NewDayLog(dateKey string) DayLog {
	return DayLog{
		DateKey:           dateKey,
		PrayersCompleted:  PrayerSet{},
		SunnahCompleted:   PrayerSet{},
		BranchesCompleted: BranchSet{},
	}
}

func (l *DayLog) MarkPrayer(p PrayerName) {
	if l.PrayersCompleted == nil {
		l.PrayersCompleted = PrayerSet{}
	}
	l.PrayersCompleted.Add(p)
}

func (l *DayLog) MarkSunnah(p PrayerName) {
	if l.SunnahCompleted == nil {
		l.SunnahCompleted = PrayerSet{}
	}
	l.SunnahCompleted.Add(p)
}

func (l *DayLog) MarkBranch(b BranchType) {
	if l.BranchesCompleted == nil {
		l.BranchesCompleted = BranchSet{}
	}
	l.BranchesCompleted.Add(b)
}

// HasActivity reports whether any real worship action was recorded.
// A grace day alone does not count.
func (l DayLog) HasActivity() bool {
	return len(l.PrayersCompleted) > 0 ||
		len(l.SunnahCompleted) > 0 ||
		l.SunriseSunnahDone ||
		l.QuranDone ||
		len(l.BranchesCompleted) > 0
}

// Clone returns a deep copy so callers can mutate without aliasing stored sets.
func (l DayLog) Clone() DayLog {
	out := l
	out.PrayersCompleted = l.PrayersCompleted.clone()
	out.SunnahCompleted = l.SunnahCompleted.clone()
	out.BranchesCompleted = l.BranchesCompleted.clone()
	return out
}

// PrayerSet is a set of prayers. It encodes as a JSON array in daily order
// and silently drops unknown identifiers when decoding.
type PrayerSet map[PrayerName]struct{}

func (s PrayerSet) Has(p PrayerName) bool {
	_, ok := s[p]
	return ok
}

func (s PrayerSet) Add(p PrayerName) {
	if p.Valid() {
		s[p] = struct{}{}
	}
}

// Sorted returns the members in daily prayer order.
func (s PrayerSet) Sorted() []PrayerName {
	out := make([]PrayerName, 0, len(s))
	for _, p := range AllPrayers {
		if s.Has(p) {
			out = append(out, p)
		}
	}
	return out
}

func (s PrayerSet) clone() PrayerSet {
	out := make(PrayerSet, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

func (s PrayerSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *PrayerSet) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	set := make(PrayerSet, len(raw))
	for _, name := range raw {
		set.Add(PrayerName(name))
	}
	*s = set
	return nil
}

// BranchSet is a set of worship branches, encoded like PrayerSet.
type BranchSet map[BranchType]struct{}

func (s BranchSet) Has(b BranchType) bool {
	_, ok := s[b]
	return ok
}

func (s BranchSet) Add(b BranchType) {
	if b.Valid() {
		s[b] = struct{}{}
	}
}

func (s BranchSet) Sorted() []BranchType {
	out := make([]BranchType, 0, len(s))
	for _, b := range AllBranches {
		if s.Has(b) {
			out = append(out, b)
		}
	}
	return out
}

func (s BranchSet) clone() BranchSet {
	out := make(BranchSet, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

func (s BranchSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *BranchSet) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	set := make(BranchSet, len(raw))
	for _, name := range raw {
		set.Add(BranchType(name))
	}
	*s = set
	return nil
}

// SortedDateKeys returns the keys of a log mapping in ascending date order.
func SortedDateKeys(logs map[string]DayLog) []string {
	keys := make([]string, 0, len(logs))
	for k := range logs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
