// Package cardcache stores rendered share cards on disk.
package cardcache

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmylchreest/hexword/internal/colour"
)

// Cache is a directory of PNG cards keyed by word and colour mode.
// Writes are atomic, so concurrent readers never see a partial file.
type Cache struct {
	dir string
}

// DefaultDir returns the default cache directory path.
func DefaultDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		return filepath.Join(home, ".cache", "hexword", "cards"), nil
	}
	return filepath.Join(cacheDir, "hexword", "cards"), nil
}

// New opens (creating if needed) a cache in dir. An empty dir selects DefaultDir.
func New(dir string) (*Cache, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

// Key returns a deterministic filename for a word card.
func Key(word string, mode colour.Mode) string {
	hash := sha256.Sum256([]byte(string(mode) + "\x00" + word))
	return fmt.Sprintf("%x.png", hash[:16])
}

// Get returns the cached card for key. A miss is (nil, false, nil).
func (c *Cache) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(filepath.Join(c.dir, key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached card: %w", err)
	}
	return data, true, nil
}

// Put stores data under key, replacing any existing entry.
func (c *Cache) Put(key string, data []byte) error {
	tmp, err := os.CreateTemp(c.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write cached card: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write cached card: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(c.dir, key)); err != nil {
		return fmt.Errorf("failed to store cached card: %w", err)
	}
	return nil
}

// Clear removes every cached card.
func (c *Cache) Clear() error {
	matches, err := filepath.Glob(filepath.Join(c.dir, "*.png"))
	if err != nil {
		return err
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", m, err)
		}
	}
	return nil
}
