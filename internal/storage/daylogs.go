package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/hedaya/internal/constants"
	"github.com/julianstephens/hedaya/internal/logger"
	"github.com/julianstephens/hedaya/internal/models"
	"github.com/julianstephens/hedaya/internal/utils"
)

// DayLogStore persists the whole date-key -> DayLog mapping as one blob.
// A missing or undecodable blob reads as an empty mapping.
type DayLogStore struct {
	kv Provider
}

func NewDayLogStore(kv Provider) *DayLogStore {
	return &DayLogStore{kv: kv}
}

// Load returns every stored log. Entries whose stored key is not a valid
// date key are dropped; an entry's DateKey always matches its map key.
// A failed read is logged and treated as empty; write paths use ReadAll.
func (s *DayLogStore) Load() map[string]models.DayLog {
	logs, err := s.ReadAll()
	if err != nil {
		logger.Warn("Failed to read day logs, starting empty", "error", err)
		return map[string]models.DayLog{}
	}
	return logs
}

// ReadAll is Load without the read-failure fallback. A missing or corrupt
// blob still yields an empty mapping, but any other error from the provider
// is returned so callers never write over history they could not read.
func (s *DayLogStore) ReadAll() (map[string]models.DayLog, error) {
	logs := map[string]models.DayLog{}

	data, err := s.kv.Get(constants.KeyDailyLogs)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return logs, nil
		}
		return nil, fmt.Errorf("failed to read day logs: %w", err)
	}

	var raw map[string]models.DayLog
	if err := json.Unmarshal(data, &raw); err != nil {
		logger.Warn("Day logs blob is corrupt, starting empty", "error", err)
		return logs, nil
	}

	for key, log := range raw {
		if !utils.ValidateDateKey(key) {
			logger.Warn("Dropping day log with invalid date key", "key", key)
			continue
		}
		log.DateKey = key
		logs[key] = normalize(log)
	}
	return logs, nil
}

// Save replaces the stored mapping.
func (s *DayLogStore) Save(logs map[string]models.DayLog) error {
	if logs == nil {
		logs = map[string]models.DayLog{}
	}
	data, err := json.Marshal(logs)
	if err != nil {
		return fmt.Errorf("failed to encode day logs: %w", err)
	}
	if err := s.kv.Set(constants.KeyDailyLogs, data); err != nil {
		return fmt.Errorf("failed to save day logs: %w", err)
	}
	return nil
}

// Get returns the stored log for dateKey or a fresh empty one.
func (s *DayLogStore) Get(dateKey string) models.DayLog {
	if log, ok := s.Load()[dateKey]; ok {
		return log
	}
	return models.NewDayLog(dateKey)
}

// Upsert applies mutate to the log for dateKey (fresh if absent), persists
// the full mapping and returns the updated log.
func (s *DayLogStore) Upsert(dateKey string, mutate func(*models.DayLog)) (models.DayLog, error) {
	if !utils.ValidateDateKey(dateKey) {
		return models.DayLog{}, fmt.Errorf("invalid date key %q", dateKey)
	}

	logs, err := s.ReadAll()
	if err != nil {
		return models.DayLog{}, err
	}
	log, ok := logs[dateKey]
	if !ok {
		log = models.NewDayLog(dateKey)
	}
	log = log.Clone()
	mutate(&log)
	log.DateKey = dateKey
	log = normalize(log)
	logs[dateKey] = log

	if err := s.Save(logs); err != nil {
		return models.DayLog{}, err
	}
	return log, nil
}

// Clear removes every stored log.
func (s *DayLogStore) Clear() error {
	if err := s.kv.Delete(constants.KeyDailyLogs); err != nil {
		return fmt.Errorf("failed to clear day logs: %w", err)
	}
	return nil
}

// normalize fills sets that older blobs omitted.
func normalize(log models.DayLog) models.DayLog {
	if log.PrayersCompleted == nil {
		log.PrayersCompleted = models.PrayerSet{}
	}
	if log.SunnahCompleted == nil {
		log.SunnahCompleted = models.PrayerSet{}
	}
	if log.BranchesCompleted == nil {
		log.BranchesCompleted = models.BranchSet{}
	}
	return log
}
