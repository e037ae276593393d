package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/hedaya/internal/constants"
)

type ConsistencyLevel string

const (
	ConsistencyVeryRegular ConsistencyLevel = "very_regular"
	ConsistencySometimes   ConsistencyLevel = "sometimes"
	ConsistencyStartStop   ConsistencyLevel = "start_stop"
	ConsistencyFreshStart  ConsistencyLevel = "fresh_start"
)

var AllConsistencyLevels = []ConsistencyLevel{ConsistencyVeryRegular, ConsistencySometimes, ConsistencyStartStop, ConsistencyFreshStart}

type TimeAvailability string

const (
	TimeVeryLittle TimeAvailability = "very_little"
	TimeMedium     TimeAvailability = "medium"
	TimeMore       TimeAvailability = "more"
	TimeVaries     TimeAvailability = "varies"
)

var AllTimeAvailabilities = []TimeAvailability{TimeVeryLittle, TimeMedium, TimeMore, TimeVaries}

type PrimaryIntention string

const (
	IntentionDiscipline PrimaryIntention = "discipline"
	IntentionCloseness  PrimaryIntention = "closeness"
	IntentionLearning   PrimaryIntention = "learning"
	IntentionHabit      PrimaryIntention = "habit"
)

var AllPrimaryIntentions = []PrimaryIntention{IntentionDiscipline, IntentionCloseness, IntentionLearning, IntentionHabit}

type WorshipArea string

const (
	AreaSalah     WorshipArea = "salah"
	AreaQuran     WorshipArea = "quran"
	AreaDhikr     WorshipArea = "dhikr"
	AreaDua       WorshipArea = "dua"
	AreaSadaqah   WorshipArea = "sadaqah"
	AreaZakat     WorshipArea = "zakat"
	AreaGoodDeeds WorshipArea = "goodDeeds"
)

var AllWorshipAreas = []WorshipArea{AreaSalah, AreaQuran, AreaDhikr, AreaDua, AreaSadaqah, AreaZakat, AreaGoodDeeds}

// Pace drives the weekly mercy allowance and the size of the essentials list.
type Pace string

const (
	PaceGentle    Pace = "gentle"
	PaceBalanced  Pace = "balanced"
	PaceAmbitious Pace = "ambitious"
)

var AllPaces = []Pace{PaceGentle, PaceBalanced, PaceAmbitious}

type TrackingFeeling string

const (
	FeelingMotivating     TrackingFeeling = "motivating"
	FeelingSometimesHeavy TrackingFeeling = "sometimes_heavy"
	FeelingPreferMinimal  TrackingFeeling = "prefer_minimal"
)

var AllTrackingFeelings = []TrackingFeeling{FeelingMotivating, FeelingSometimesHeavy, FeelingPreferMinimal}

type LifeContext string

const (
	LifeBusyParent LifeContext = "busy_parent"
	LifeStudent    LifeContext = "student"
	LifeTraveler   LifeContext = "traveler"
	LifeNone       LifeContext = "none"
)

var AllLifeContexts = []LifeContext{LifeBusyParent, LifeStudent, LifeTraveler, LifeNone}

// Profile is the single per-installation worship profile. Empty enum values
// mean "not answered".
type Profile struct {
	ConsistencyLevel ConsistencyLevel `json:"consistency_level,omitempty"`
	TimeAvailability TimeAvailability `json:"time_availability,omitempty"`
	PrimaryIntention PrimaryIntention `json:"primary_intention,omitempty"`
	WorshipAreas     []WorshipArea    `json:"worship_areas"`
	Pace             Pace             `json:"pace,omitempty"`
	TrackingFeeling  TrackingFeeling  `json:"tracking_feeling,omitempty"`
	LifeContext      LifeContext      `json:"life_context,omitempty"`
	CompletedAt      *time.Time       `json:"completed_at,omitempty"`
}

func (p Profile) HasCompletedOnboarding() bool {
	return p.CompletedAt != nil
}

// ResolvedPace returns the pace, treating an unanswered pace as balanced.
func (p Profile) ResolvedPace() Pace {
	if p.Pace == "" {
		return PaceBalanced
	}
	return p.Pace
}

// ResolvedAreas returns the selected areas, treating no selection as all areas.
func (p Profile) ResolvedAreas() []WorshipArea {
	if len(p.WorshipAreas) == 0 {
		return AllWorshipAreas
	}
	return p.WorshipAreas
}

func containsArea(areas []WorshipArea, area WorshipArea) bool {
	for _, a := range areas {
		if a == area {
			return true
		}
	}
	return false
}

// MercyDaysPerWeek is the weekly grace-day allowance for the profile's pace.
func (p Profile) MercyDaysPerWeek() int {
	if p.Pace == PaceAmbitious {
		return constants.MercyDaysAmbitious
	}
	return constants.MercyDaysDefault
}

// DailyEssentials derives the ordered essentials list. This is the only
// implementation; streak evaluation and every display surface call it.
func (p Profile) DailyEssentials() []EssentialItem {
	areas := p.ResolvedAreas()
	pace := p.ResolvedPace()

	var items []EssentialItem
	if containsArea(areas, AreaSalah) {
		items = append(items,
			EssentialItem{TitleAr: "صلاة الفجر", Action: ActionFajr},
			EssentialItem{TitleAr: "صلاة الظهر", Action: ActionDhuhr},
			EssentialItem{TitleAr: "صلاة العصر", Action: ActionAsr},
			EssentialItem{TitleAr: "صلاة المغرب", Action: ActionMaghrib},
			EssentialItem{TitleAr: "صلاة العشاء", Action: ActionIsha},
		)
	}
	if containsArea(areas, AreaQuran) {
		items = append(items, EssentialItem{TitleAr: "ورد قرآن قصير", Action: ActionQuran})
	}
	if containsArea(areas, AreaDhikr) {
		items = append(items,
			EssentialItem{TitleAr: "أذكار الصباح", Action: ActionDhikrSabah},
			EssentialItem{TitleAr: "أذكار المساء", Action: ActionDhikrMasa},
		)
	}
	if containsArea(areas, AreaDua) && (pace == PaceBalanced || pace == PaceAmbitious) {
		items = append(items, EssentialItem{TitleAr: "دعاء بعد الصلاة", Action: ActionDua})
	}
	if pace == PaceGentle && len(items) > constants.GentleEssentialsLimit {
		items = items[:constants.GentleEssentialsLimit]
	}
	return items
}

// OptionalBonuses lists extra actions offered alongside the essentials.
// They never affect the streak. Every bonus with an Action can be recorded;
// the rest are descriptive. Asr has no companion sunnah.
func (p Profile) OptionalBonuses() []BonusItem {
	areas := p.ResolvedAreas()

	var items []BonusItem
	if containsArea(areas, AreaSalah) {
		items = append(items,
			BonusItem{TitleAr: "سنة الفجر", Action: ActionSunnahFajr},
			BonusItem{TitleAr: "سنة الظهر", Action: ActionSunnahDhuhr},
			BonusItem{TitleAr: "سنة المغرب", Action: ActionSunnahMaghrib},
			BonusItem{TitleAr: "سنة العشاء", Action: ActionSunnahIsha},
		)
	}
	if containsArea(areas, AreaSadaqah) {
		items = append(items, BonusItem{TitleAr: "صدقة", Action: ActionSadaqah})
	}
	if containsArea(areas, AreaDua) {
		items = append(items, BonusItem{TitleAr: "دعاء من القلب", Action: ActionDua})
	}
	if containsArea(areas, AreaGoodDeeds) {
		items = append(items, BonusItem{TitleAr: "نية حسنة أو عمل صالح"})
	}
	items = append(items,
		BonusItem{TitleAr: "قيام الليل", Action: ActionQiyamAlLayl},
		BonusItem{TitleAr: "ذكر إضافي", Action: ActionExtraDhikr},
		BonusItem{TitleAr: "دعاء إضافي", Action: ActionExtraDua},
	)
	return items
}

var weeklyFocusThemesAr = []string{
	"دعاء بعد الصلاة",
	"ذكر قصير بعد كل صلاة",
	"آية واحدة مع تدبر",
	"نية واحدة صادقة",
}

// WeeklyFocus rotates through a small set of themes by ISO week number.
func WeeklyFocus(isoWeek int) string {
	if isoWeek < 0 {
		isoWeek = -isoWeek
	}
	return weeklyFocusThemesAr[isoWeek%len(weeklyFocusThemesAr)]
}

// OptionAt returns options[index], clamping out-of-range indexes to the
// nearest valid option. It returns the zero value for an empty list.
func OptionAt[T any](options []T, index int) T {
	var zero T
	if len(options) == 0 {
		return zero
	}
	if index < 0 {
		index = 0
	}
	if index >= len(options) {
		index = len(options) - 1
	}
	return options[index]
}

// ParseOption resolves s against options either by value (case-insensitive)
// or by a zero-based selection index, which is clamped.
func ParseOption[T ~string](s string, options []T) (T, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if idx, err := strconv.Atoi(s); err == nil {
		return OptionAt(options, idx), nil
	}
	for _, opt := range options {
		if strings.EqualFold(string(opt), s) {
			return opt, nil
		}
	}
	return "", fmt.Errorf("invalid value %q (expected one of %v)", s, options)
}
