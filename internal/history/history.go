// Package history records recently generated word colours.
package history

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefaultCapacity is the number of entries kept when no capacity is configured.
const DefaultCapacity = 12

// Entry is one generated word colour.
type Entry struct {
	ID        string    `json:"id"`
	Word      string    `json:"word"`
	Hex       string    `json:"color"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEntry creates an entry with a fresh ID.
func NewEntry(word, hex string, at time.Time) Entry {
	return Entry{
		ID:        uuid.NewString(),
		Word:      word,
		Hex:       hex,
		Timestamp: at,
	}
}

// Store persists history entries, newest first.
type Store interface {
	// List returns all entries, newest first.
	List(ctx context.Context) ([]Entry, error)
	// Add records an entry, replacing any entry with the same word.
	Add(ctx context.Context, entry Entry) error
	// Clear removes all entries.
	Clear(ctx context.Context) error
}

// Add returns entries with entry moved to the front. Any existing entry for
// the same word is dropped, and the result is truncated to capacity
// (oldest evicted). A capacity <= 0 selects DefaultCapacity. entries is not
// modified.
func Add(entries []Entry, entry Entry, capacity int) []Entry {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	out := make([]Entry, 0, min(len(entries)+1, capacity))
	out = append(out, entry)
	for _, e := range entries {
		if len(out) == capacity {
			break
		}
		if e.Word == entry.Word {
			continue
		}
		out = append(out, e)
	}

	return out
}
