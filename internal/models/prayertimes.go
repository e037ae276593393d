package models

import "time"

// CalculationMethod selects the convention an external prayer-time
// calculator should use.
type CalculationMethod string

const (
	MethodMuslimWorldLeague CalculationMethod = "muslimWorldLeague"
	MethodEgyptian          CalculationMethod = "egyptian"
	MethodNorthAmerica      CalculationMethod = "northAmerica"
	MethodMakkah            CalculationMethod = "makkah"
	MethodKarachi           CalculationMethod = "karachi"
	MethodTurkey            CalculationMethod = "turkey"
)

var AllCalculationMethods = []CalculationMethod{
	MethodMuslimWorldLeague,
	MethodEgyptian,
	MethodNorthAmerica,
	MethodMakkah,
	MethodKarachi,
	MethodTurkey,
}

var calculationMethodTitlesAr = map[CalculationMethod]string{
	MethodMuslimWorldLeague: "رابطة العالم الإسلامي",
	MethodEgyptian:          "الهيئة المصرية",
	MethodNorthAmerica:      "أمريكا الشمالية",
	MethodMakkah:            "أم القرى",
	MethodKarachi:           "كراتشي",
	MethodTurkey:            "تركيا",
}

func (m CalculationMethod) Valid() bool {
	_, ok := calculationMethodTitlesAr[m]
	return ok
}

func (m CalculationMethod) TitleAr() string {
	return calculationMethodTitlesAr[m]
}

// Coordinates is a geographic location in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PrayerTimes holds one day's prayer instants plus sunrise.
type PrayerTimes struct {
	Fajr    time.Time `json:"fajr"`
	Sunrise time.Time `json:"sunrise"`
	Dhuhr   time.Time `json:"dhuhr"`
	Asr     time.Time `json:"asr"`
	Maghrib time.Time `json:"maghrib"`
	Isha    time.Time `json:"isha"`
}

// For returns the instant of the given prayer, or the zero time for an
// unknown prayer.
func (t PrayerTimes) For(p PrayerName) time.Time {
	switch p {
	case PrayerFajr:
		return t.Fajr
	case PrayerDhuhr:
		return t.Dhuhr
	case PrayerAsr:
		return t.Asr
	case PrayerMaghrib:
		return t.Maghrib
	case PrayerIsha:
		return t.Isha
	default:
		return time.Time{}
	}
}
