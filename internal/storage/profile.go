package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/hedaya/internal/constants"
	"github.com/julianstephens/hedaya/internal/logger"
	"github.com/julianstephens/hedaya/internal/models"
)

type ProfileStore struct {
	kv Provider
}

func NewProfileStore(kv Provider) *ProfileStore {
	return &ProfileStore{kv: kv}
}

// Load returns the stored profile, or the zero profile when none is stored
// or the blob cannot be read.
func (s *ProfileStore) Load() models.Profile {
	p, _, err := s.Read()
	if err != nil {
		logger.Warn("Failed to read profile, using default", "error", err)
		return models.Profile{}
	}
	return p
}

// Read reports whether a decodable profile is stored. Unlike Load it returns
// provider errors other than ErrNotFound.
func (s *ProfileStore) Read() (models.Profile, bool, error) {
	data, err := s.kv.Get(constants.KeyProfile)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.Profile{}, false, nil
		}
		return models.Profile{}, false, fmt.Errorf("failed to read profile: %w", err)
	}

	var p models.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		logger.Warn("Profile blob is corrupt, using default", "error", err)
		return models.Profile{}, false, nil
	}
	return p, true, nil
}

// Exists reports whether a decodable profile is stored.
func (s *ProfileStore) Exists() bool {
	data, err := s.kv.Get(constants.KeyProfile)
	if err != nil {
		return false
	}
	var p models.Profile
	return json.Unmarshal(data, &p) == nil
}

func (s *ProfileStore) Save(p models.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := s.kv.Set(constants.KeyProfile, data); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

func (s *ProfileStore) Clear() error {
	if err := s.kv.Delete(constants.KeyProfile); err != nil {
		return fmt.Errorf("failed to clear profile: %w", err)
	}
	return nil
}
