package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File is the root JSON structure stored on disk.
type File struct {
	Entries []Entry `json:"entries"`
}

// JSONFileStore implements Store using a JSON file for persistence.
type JSONFileStore struct {
	path     string
	capacity int
	mu       sync.RWMutex
}

var _ Store = (*JSONFileStore)(nil)

// NewJSONFileStore creates a store at path keeping at most capacity entries.
func NewJSONFileStore(path string, capacity int) *JSONFileStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &JSONFileStore{path: path, capacity: capacity}
}

// DefaultPath returns the default history file location.
func DefaultPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine history directory: %w", err)
		}
		return filepath.Join(home, ".cache", "hexword", "history.json"), nil
	}
	return filepath.Join(dir, "hexword", "history.json"), nil
}

// Path returns the file backing the store.
func (s *JSONFileStore) Path() string {
	return s.path
}

// List returns all entries, newest first.
func (s *JSONFileStore) List(ctx context.Context) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return nil, err
	}

	return file.Entries, nil
}

// Add records an entry. A corrupt history file is replaced rather than
// blocking the write.
func (s *JSONFileStore) Add(ctx context.Context, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		file = File{}
	}

	file.Entries = Add(file.Entries, entry, s.capacity)

	return s.save(file)
}

// Clear removes all entries.
func (s *JSONFileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(File{Entries: []Entry{}})
}

// load reads the history file from disk.
// Returns an empty File if the file doesn't exist or is empty.
func (s *JSONFileStore) load() (File, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("failed to read history: %w", err)
	}

	if len(data) == 0 {
		return File{}, nil
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return File{}, fmt.Errorf("failed to parse history %s: %w", s.path, err)
	}

	return file, nil
}

// save writes the history file to disk atomically.
func (s *JSONFileStore) save(file File) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}

	return os.Rename(tmp, s.path)
}
