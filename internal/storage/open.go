package storage

import (
	"strings"

	"github.com/julianstephens/hedaya/internal/constants"
)

// New picks a backend from the location string: postgres:// or
// postgresql:// URLs select Postgres, a .json suffix the JSON file store,
// ":memory:" the in-memory store, and anything else SQLite.
func New(location string) Provider {
	switch {
	case strings.HasPrefix(location, "postgres://") || strings.HasPrefix(location, "postgresql://"):
		return NewPostgresStore(location)
	case location == constants.MemoryStorePath:
		return NewMemoryStore()
	case strings.HasSuffix(strings.ToLower(location), ".json"):
		return NewJSONStore(location)
	default:
		return NewSQLiteStore(location)
	}
}
