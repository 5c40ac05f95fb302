// Package store persists the task list in a durable key-value store.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// TasksKey is the fixed key the task sequence is stored under.
const TasksKey = "tasks"

// Store is a durable key-value store. Values are raw JSON.
type Store interface {
	// Get returns the value stored under key. ok is false when the key
	// is absent.
	Get(key string) (value []byte, ok bool, err error)

	// Set overwrites the value stored under key. The write is
	// synchronous: once Set returns, the value is durable.
	Set(key string, value []byte) error
}

// FileStore keeps all keys in a single JSON object file.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the file at path. The file is
// created on first write; a missing file reads as an empty store.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Get reads the value under key from the backing file.
func (s *FileStore) Get(key string) ([]byte, bool, error) {
	entries, err := s.read()
	if err != nil {
		return nil, false, err
	}
	value, ok := entries[key]
	if !ok {
		return nil, false, nil
	}
	return value, true, nil
}

// Set writes the value under key, preserving other keys.
func (s *FileStore) Set(key string, value []byte) error {
	entries, err := s.read()
	if err != nil {
		// An unreadable store is overwritten rather than appended to;
		// stale bytes must not block new writes.
		entries = nil
	}
	if entries == nil {
		entries = make(map[string]json.RawMessage)
	}
	entries[key] = json.RawMessage(value)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store file: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create store dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}
	return nil
}

func (s *FileStore) read() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse store file: %w", err)
	}
	return entries, nil
}
