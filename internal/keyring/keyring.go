// Package keyring keeps the Postgres connection string in the OS keyring so
// it never has to live in shell history or the environment.
package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/hedaya/internal/constants"
)

var (
	// ErrNotFound is returned when nothing is stored for hedaya.
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable wraps failures of the OS keyring itself.
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

func GetConnectionString() (string, error) {
	connStr, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return connStr, nil
}

func SetConnectionString(connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, connStr); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

func DeleteConnectionString() error {
	if err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// IsAvailable probes the keyring with a read. A not-found answer still
// means the keyring works.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "availability-probe")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}

// Source names where a connection string came from.
type Source string

const (
	SourceNone    Source = ""
	SourceFlag    Source = "flag"
	SourceEnv     Source = "environment"
	SourceKeyring Source = "keyring"
)

// ResolveConnectionString picks the Postgres connection string in order of
// precedence: explicit flag, environment, keyring. A missing or unavailable
// keyring is not an error; it yields SourceNone.
func ResolveConnectionString(flagValue, envValue string) (string, Source) {
	if flagValue != "" {
		return flagValue, SourceFlag
	}
	if envValue != "" {
		return envValue, SourceEnv
	}
	connStr, err := GetConnectionString()
	if err != nil {
		return "", SourceNone
	}
	return connStr, SourceKeyring
}
