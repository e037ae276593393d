package storage

import "errors"

var (
	// ErrNotFound is returned by Get for a key that was never written.
	ErrNotFound = errors.New("key not found")
	// ErrNotLoaded is returned when a store is used before Init or Load.
	ErrNotLoaded = errors.New("storage not loaded")
	// ErrNotInitialized is returned by Load when no store exists yet.
	ErrNotInitialized = errors.New("storage not initialized, run 'hedaya init' first")
)

// Provider is a string-keyed blob store. Every persisted document
// (day logs, profile, progress cache, individual settings) is one value,
// replaced whole on write.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	// Keys lists stored keys with the given prefix in ascending order.
	Keys(prefix string) ([]string, error)

	// GetConfigPath returns a display-safe description of where data lives.
	GetConfigPath() string
}

// Versioned is implemented by SQL-backed stores that track a schema version.
type Versioned interface {
	// SchemaVersions returns the applied and the latest known schema version.
	SchemaVersions() (current, latest int, err error)
}
