package models

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/hedaya/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
// Unknown keys are ignored.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingCalculationMethod:
			settings.CalculationMethod = CalculationMethod(value)
		case constants.SettingLatitude:
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing latitude: %w", err)
			}
			settings.Latitude = f
		case constants.SettingLongitude:
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing longitude: %w", err)
			}
			settings.Longitude = f
		case constants.SettingNotificationsEnabled:
			settings.NotificationsEnabled = value == "true"
		case constants.SettingStrictMercy:
			settings.StrictMercy = value == "true"
		case constants.SettingInstallationID:
			settings.InstallationID = value
		case constants.SettingFajrTime:
			settings.FajrTime = value
		case constants.SettingSunriseTime:
			settings.SunriseTime = value
		case constants.SettingDhuhrTime:
			settings.DhuhrTime = value
		case constants.SettingAsrTime:
			settings.AsrTime = value
		case constants.SettingMaghribTime:
			settings.MaghribTime = value
		case constants.SettingIshaTime:
			settings.IshaTime = value
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:             settings.Timezone,
		constants.SettingCalculationMethod:    string(settings.CalculationMethod),
		constants.SettingLatitude:             strconv.FormatFloat(settings.Latitude, 'f', -1, 64),
		constants.SettingLongitude:            strconv.FormatFloat(settings.Longitude, 'f', -1, 64),
		constants.SettingNotificationsEnabled: fmt.Sprintf("%v", settings.NotificationsEnabled),
		constants.SettingStrictMercy:          fmt.Sprintf("%v", settings.StrictMercy),
		constants.SettingInstallationID:       settings.InstallationID,
		constants.SettingFajrTime:             settings.FajrTime,
		constants.SettingSunriseTime:          settings.SunriseTime,
		constants.SettingDhuhrTime:            settings.DhuhrTime,
		constants.SettingAsrTime:              settings.AsrTime,
		constants.SettingMaghribTime:          settings.MaghribTime,
		constants.SettingIshaTime:             settings.IshaTime,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if !settings.CalculationMethod.Valid() {
		settings.CalculationMethod = CalculationMethod(constants.DefaultCalculationMethod)
	}
	if settings.FajrTime == "" {
		settings.FajrTime = constants.DefaultFajrTime
	}
	if settings.SunriseTime == "" {
		settings.SunriseTime = constants.DefaultSunriseTime
	}
	if settings.DhuhrTime == "" {
		settings.DhuhrTime = constants.DefaultDhuhrTime
	}
	if settings.AsrTime == "" {
		settings.AsrTime = constants.DefaultAsrTime
	}
	if settings.MaghribTime == "" {
		settings.MaghribTime = constants.DefaultMaghribTime
	}
	if settings.IshaTime == "" {
		settings.IshaTime = constants.DefaultIshaTime
	}
}
