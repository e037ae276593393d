package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const jsonStoreVersion = 1

type jsonDocument struct {
	Version int                        `json:"version"`
	Entries map[string]json.RawMessage `json:"entries"`
}

// JSONStore keeps every key in a single human-readable file. Values must
// themselves be valid JSON, which holds for everything hedaya persists.
//
// Not safe for concurrent use, and two processes sharing one file will
// overwrite each other's writes.
type JSONStore struct {
	path string
	doc  *jsonDocument
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.doc = &jsonDocument{Version: jsonStoreVersion, Entries: map[string]json.RawMessage{}}
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &jsonDocument{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Version > jsonStoreVersion {
		return fmt.Errorf("storage file version (%d) is newer than supported version (%d) - please upgrade hedaya", doc.Version, jsonStoreVersion)
	}
	if doc.Entries == nil {
		doc.Entries = map[string]json.RawMessage{}
	}
	s.doc = doc
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// save writes to a sibling temp file and renames it over the original so a
// crash mid-write never leaves a truncated store.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to replace storage: %w", err)
	}
	return nil
}

func (s *JSONStore) Get(key string) ([]byte, error) {
	if s.doc == nil {
		return nil, ErrNotLoaded
	}
	v, ok := s.doc.Entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *JSONStore) Set(key string, value []byte) error {
	if s.doc == nil {
		return ErrNotLoaded
	}
	if !json.Valid(value) {
		return fmt.Errorf("value for %s is not valid JSON", key)
	}
	prev, had := s.doc.Entries[key]
	s.doc.Entries[key] = append(json.RawMessage(nil), value...)
	if err := s.save(); err != nil {
		s.restore(key, prev, had)
		return err
	}
	return nil
}

func (s *JSONStore) Delete(key string) error {
	if s.doc == nil {
		return ErrNotLoaded
	}
	prev, ok := s.doc.Entries[key]
	if !ok {
		return nil
	}
	delete(s.doc.Entries, key)
	if err := s.save(); err != nil {
		s.restore(key, prev, true)
		return err
	}
	return nil
}

// restore undoes an in-memory change whose save failed.
func (s *JSONStore) restore(key string, prev json.RawMessage, had bool) {
	if had {
		s.doc.Entries[key] = prev
		return
	}
	delete(s.doc.Entries, key)
}

func (s *JSONStore) Keys(prefix string) ([]string, error) {
	if s.doc == nil {
		return nil, ErrNotLoaded
	}
	var keys []string
	for k := range s.doc.Entries {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
