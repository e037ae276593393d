package models

// PrayerName identifies one of the five obligatory daily prayers.
type PrayerName string

const (
	PrayerFajr    PrayerName = "fajr"
	PrayerDhuhr   PrayerName = "dhuhr"
	PrayerAsr     PrayerName = "asr"
	PrayerMaghrib PrayerName = "maghrib"
	PrayerIsha    PrayerName = "isha"
)

// AllPrayers lists the prayers in their daily order.
var AllPrayers = []PrayerName{PrayerFajr, PrayerDhuhr, PrayerAsr, PrayerMaghrib, PrayerIsha}

var prayerTitlesAr = map[PrayerName]string{
	PrayerFajr:    "الفجر",
	PrayerDhuhr:   "الظهر",
	PrayerAsr:     "العصر",
	PrayerMaghrib: "المغرب",
	PrayerIsha:    "العشاء",
}

// Valid reports whether p is one of the five known prayers.
func (p PrayerName) Valid() bool {
	_, ok := prayerTitlesAr[p]
	return ok
}

// HasSunnah reports whether the prayer has a regular companion sunnah.
// Asr has none.
func (p PrayerName) HasSunnah() bool {
	return p.Valid() && p != PrayerAsr
}

func (p PrayerName) TitleAr() string {
	return prayerTitlesAr[p]
}

// BranchType identifies an optional worship branch tracked per day.
type BranchType string

const (
	BranchSunnahPrayer BranchType = "sunnahPrayer"
	BranchSadaqa       BranchType = "sadaqa"
	BranchMorningZikr  BranchType = "morningZikr"
	BranchSleepingZikr BranchType = "sleepingZikr"
	BranchEveningZikr  BranchType = "eveningZikr"
	BranchExtraDuaa    BranchType = "extraDuaa"
	BranchExtraZikr    BranchType = "extraZikr"
	BranchExtraSalah   BranchType = "extraSalah"
)

// AllBranches lists the branches in display order.
var AllBranches = []BranchType{
	BranchSunnahPrayer,
	BranchSadaqa,
	BranchMorningZikr,
	BranchSleepingZikr,
	BranchEveningZikr,
	BranchExtraDuaa,
	BranchExtraZikr,
	BranchExtraSalah,
}

var branchTitlesAr = map[BranchType]string{
	BranchSunnahPrayer: "صلاة سنة",
	BranchSadaqa:       "صدقة",
	BranchMorningZikr:  "أذكار الصباح",
	BranchSleepingZikr: "أذكار النوم",
	BranchEveningZikr:  "أذكار المساء",
	BranchExtraDuaa:    "دعاء إضافي",
	BranchExtraZikr:    "ذكر إضافي",
	BranchExtraSalah:   "صلاة إضافية",
}

func (b BranchType) Valid() bool {
	_, ok := branchTitlesAr[b]
	return ok
}

func (b BranchType) TitleAr() string {
	return branchTitlesAr[b]
}
