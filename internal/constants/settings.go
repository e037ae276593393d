package constants

const (
	// General Settings
	SettingTimezone             = "timezone"
	SettingCalculationMethod    = "calculation_method"
	SettingLatitude             = "latitude"
	SettingLongitude            = "longitude"
	SettingNotificationsEnabled = "notifications_enabled"
	SettingStrictMercy          = "strict_mercy"
	SettingInstallationID       = "installation_id"

	// Prayer schedule (HH:MM, local to the configured timezone)
	SettingFajrTime    = "fajr_time"
	SettingSunriseTime = "sunrise_time"
	SettingDhuhrTime   = "dhuhr_time"
	SettingAsrTime     = "asr_time"
	SettingMaghribTime = "maghrib_time"
	SettingIshaTime    = "isha_time"

	// Default Settings Values
	DefaultTimezone             = "Local"
	DefaultCalculationMethod    = "muslimWorldLeague"
	DefaultNotificationsEnabled = false
	DefaultStrictMercy          = false
	DefaultFajrTime             = "05:00"
	DefaultSunriseTime          = "06:30"
	DefaultDhuhrTime            = "12:30"
	DefaultAsrTime              = "15:45"
	DefaultMaghribTime          = "18:15"
	DefaultIshaTime             = "19:45"
)
