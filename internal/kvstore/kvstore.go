// Package kvstore provides a process-wide persisted key-value store with
// load-on-init and write-on-mutation semantics. The backend is swappable:
// a JSON file for the default case, or an embedded SQLite database.
package kvstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"polyscope/internal/domain"
)

// Store is a persisted key-value store. Get returns domain.ErrNotFound
// for missing keys; Set persists before returning.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Close() error
}

// FileStore keeps all entries in a single JSON file, rewritten in full
// on every Set.
type FileStore struct {
	path    string
	entries map[string]json.RawMessage
}

// NewFileStore loads (or initializes) a file-backed store at path. An
// absent or unparsable file yields an empty store, never an error.
func NewFileStore(path string) *FileStore {
	fs := &FileStore{
		path:    path,
		entries: make(map[string]json.RawMessage),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fs
	}
	if err := json.Unmarshal(data, &fs.entries); err != nil {
		// Corrupt store: start over empty rather than fail.
		fs.entries = make(map[string]json.RawMessage)
	}
	return fs
}

// Get returns the stored value for key.
func (fs *FileStore) Get(key string) ([]byte, error) {
	value, ok := fs.entries[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return value, nil
}

// Set stores value under key and writes the whole store to disk.
func (fs *FileStore) Set(key string, value []byte) error {
	fs.entries[key] = json.RawMessage(value)

	if err := os.MkdirAll(filepath.Dir(fs.path), 0755); err != nil {
		return fmt.Errorf("kvstore: create directory: %w", err)
	}
	data, err := json.MarshalIndent(fs.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("kvstore: marshal entries: %w", err)
	}
	if err := os.WriteFile(fs.path, data, 0644); err != nil {
		return fmt.Errorf("kvstore: write file: %w", err)
	}
	return nil
}

// Close is a no-op for the file backend.
func (fs *FileStore) Close() error { return nil }
