package models

// ActionType names a loggable worship action. Essentials and bonuses refer
// to actions by type.
type ActionType string

const (
	ActionSalah         ActionType = "salah"
	ActionFajr          ActionType = "fajr"
	ActionDhuhr         ActionType = "dhuhr"
	ActionAsr           ActionType = "asr"
	ActionMaghrib       ActionType = "maghrib"
	ActionIsha          ActionType = "isha"
	ActionQuran         ActionType = "quran"
	ActionDhikr         ActionType = "dhikr"
	ActionDhikrSabah    ActionType = "dhikrSabah"
	ActionDhikrMasa     ActionType = "dhikrMasa"
	ActionDua           ActionType = "dua"
	ActionSadaqah       ActionType = "sadaqah"
	ActionZakat         ActionType = "zakat"
	ActionGoodDeed      ActionType = "goodDeed"
	ActionQiyamAlLayl   ActionType = "qiyamAlLayl"
	ActionExtraDhikr    ActionType = "extraDhikr"
	ActionExtraDua      ActionType = "extraDua"
	ActionSunnahFajr    ActionType = "sunnahFajr"
	ActionSunnahDhuhr   ActionType = "sunnahDhuhr"
	ActionSunnahMaghrib ActionType = "sunnahMaghrib"
	ActionSunnahIsha    ActionType = "sunnahIsha"
)

// EssentialItem is a streak-relevant action derived from the profile.
type EssentialItem struct {
	TitleAr string     `json:"title_ar"`
	Action  ActionType `json:"action"`
}

// SatisfiedBy reports whether the log records this essential. Actions with
// no day-log counterpart are never satisfied.
func (e EssentialItem) SatisfiedBy(log DayLog) bool {
	switch e.Action {
	case ActionFajr:
		return log.PrayersCompleted.Has(PrayerFajr)
	case ActionDhuhr:
		return log.PrayersCompleted.Has(PrayerDhuhr)
	case ActionAsr:
		return log.PrayersCompleted.Has(PrayerAsr)
	case ActionMaghrib:
		return log.PrayersCompleted.Has(PrayerMaghrib)
	case ActionIsha:
		return log.PrayersCompleted.Has(PrayerIsha)
	case ActionQuran:
		return log.QuranDone
	case ActionDhikrSabah:
		return log.BranchesCompleted.Has(BranchMorningZikr)
	case ActionDhikrMasa:
		return log.BranchesCompleted.Has(BranchEveningZikr)
	case ActionDua:
		return log.BranchesCompleted.Has(BranchExtraDuaa)
	default:
		return false
	}
}

// BonusItem is an optional extra action. Action may be empty for purely
// descriptive entries.
type BonusItem struct {
	TitleAr string     `json:"title_ar"`
	Action  ActionType `json:"action,omitempty"`
}
