package storage

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/hedaya/internal/constants"
	"github.com/julianstephens/hedaya/internal/models"
	"github.com/julianstephens/hedaya/internal/utils"
)

// SettingsStore keeps each setting under its own "setting.<name>" key so
// a single value can be changed without rewriting the rest.
type SettingsStore struct {
	kv Provider
}

func NewSettingsStore(kv Provider) *SettingsStore {
	return &SettingsStore{kv: kv}
}

// GetSettings returns stored settings with defaults applied for missing keys.
func (s *SettingsStore) GetSettings() (models.Settings, error) {
	keys, err := s.kv.Keys(constants.SettingKeyPrefix)
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to list settings: %w", err)
	}

	raw := make(map[string]string, len(keys))
	for _, key := range keys {
		data, err := s.kv.Get(key)
		if err != nil {
			return models.Settings{}, fmt.Errorf("failed to read %s: %w", key, err)
		}
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return models.Settings{}, fmt.Errorf("failed to decode %s: %w", key, err)
		}
		raw[strings.TrimPrefix(key, constants.SettingKeyPrefix)] = value
	}

	settings, err := models.MapToSettings(raw)
	if err != nil {
		return models.Settings{}, err
	}
	models.ApplyDefaultSettings(&settings)
	return settings, nil
}

// SaveSettings writes every field.
func (s *SettingsStore) SaveSettings(settings models.Settings) error {
	for name, value := range models.SettingsToMap(settings) {
		if err := s.put(name, value); err != nil {
			return err
		}
	}
	return nil
}

// Set validates and stores a single named setting.
func (s *SettingsStore) Set(name, value string) error {
	if err := ValidateSetting(name, value); err != nil {
		return err
	}
	if name == constants.SettingNotificationsEnabled || name == constants.SettingStrictMercy {
		b, _ := strconv.ParseBool(value)
		value = strconv.FormatBool(b)
	}
	return s.put(name, value)
}

func (s *SettingsStore) put(name, value string) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := s.kv.Set(constants.SettingKeyPrefix+name, data); err != nil {
		return fmt.Errorf("failed to save setting %s: %w", name, err)
	}
	return nil
}

// ValidateSetting checks a user-supplied value for a known setting.
func ValidateSetting(name, value string) error {
	switch name {
	case constants.SettingTimezone:
		if !utils.ValidateTimezone(value) {
			return fmt.Errorf("invalid timezone %q", value)
		}
	case constants.SettingCalculationMethod:
		if !models.CalculationMethod(value).Valid() {
			return fmt.Errorf("invalid calculation method %q (expected one of %v)", value, models.AllCalculationMethods)
		}
	case constants.SettingLatitude:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < -90 || f > 90 {
			return fmt.Errorf("latitude must be a number between -90 and 90")
		}
	case constants.SettingLongitude:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < -180 || f > 180 {
			return fmt.Errorf("longitude must be a number between -180 and 180")
		}
	case constants.SettingNotificationsEnabled, constants.SettingStrictMercy:
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("%s must be true or false", name)
		}
	case constants.SettingFajrTime, constants.SettingSunriseTime, constants.SettingDhuhrTime,
		constants.SettingAsrTime, constants.SettingMaghribTime, constants.SettingIshaTime:
		if !utils.ValidateTimeFormat(value) {
			return fmt.Errorf("%s must be in HH:MM format", name)
		}
	case constants.SettingInstallationID:
		return fmt.Errorf("%s is read-only", name)
	default:
		return fmt.Errorf("unknown setting %q", name)
	}
	return nil
}
