package models

// Settings represents application-wide settings
type Settings struct {
	Timezone             string            `json:"timezone"`              // IANA timezone name or "Local"
	CalculationMethod    CalculationMethod `json:"calculation_method"`    // prayer-time calculation method
	Latitude             float64           `json:"latitude"`              // location latitude in degrees
	Longitude            float64           `json:"longitude"`             // location longitude in degrees
	NotificationsEnabled bool              `json:"notifications_enabled"` // whether milestone notifications are sent
	StrictMercy          bool              `json:"strict_mercy"`          // reject grace days beyond the weekly allowance
	InstallationID       string            `json:"installation_id"`       // random id generated at init
	FajrTime             string            `json:"fajr_time"`             // HH:MM
	SunriseTime          string            `json:"sunrise_time"`          // HH:MM
	DhuhrTime            string            `json:"dhuhr_time"`            // HH:MM
	AsrTime              string            `json:"asr_time"`              // HH:MM
	MaghribTime          string            `json:"maghrib_time"`          // HH:MM
	IshaTime             string            `json:"isha_time"`             // HH:MM
}

// Coordinates returns the configured location.
func (s Settings) Coordinates() Coordinates {
	return Coordinates{Latitude: s.Latitude, Longitude: s.Longitude}
}
