package storage

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/hedaya/internal/constants"
	"github.com/julianstephens/hedaya/internal/models"
)

// ProgressCache holds the last published ProgressState. It is a convenience
// for readers outside the tracker and is never used as input to a
// recomputation.
type ProgressCache struct {
	kv Provider
}

func NewProgressCache(kv Provider) *ProgressCache {
	return &ProgressCache{kv: kv}
}

func (c *ProgressCache) Save(state models.ProgressState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode progress: %w", err)
	}
	if err := c.kv.Set(constants.KeyProgress, data); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

// Load returns the cached state and whether one was available.
func (c *ProgressCache) Load() (models.ProgressState, bool) {
	data, err := c.kv.Get(constants.KeyProgress)
	if err != nil {
		return models.ProgressState{}, false
	}
	var state models.ProgressState
	if err := json.Unmarshal(data, &state); err != nil {
		return models.ProgressState{}, false
	}
	return state, true
}

func (c *ProgressCache) Clear() error {
	if err := c.kv.Delete(constants.KeyProgress); err != nil {
		return fmt.Errorf("failed to clear progress: %w", err)
	}
	return nil
}
