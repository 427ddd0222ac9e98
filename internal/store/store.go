// Package store provides the blob storage interface and SQLite implementation.
package store

import (
	"context"
	"errors"
	"time"
)

// Logical keys of the two persisted blobs.
const (
	KeyGameData = "game-data"
	KeySettings = "settings"
)

// ErrNotFound is returned when a key or version has no entry.
var ErrNotFound = errors.New("entry not found")

// Entry is one stored version of a blob.
type Entry struct {
	ID         string    `json:"id"`
	Key        string    `json:"key"`
	Value      string    `json:"-"`
	Size       int       `json:"size"`
	Version    int       `json:"version"`
	Supersedes string    `json:"supersedes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// GetParams holds parameters for retrieving a blob.
type GetParams struct {
	Key     string
	History bool
	Version int // 0 means latest
}

// Note is one searchable note of the journal.
type Note struct {
	Kind string `json:"kind"` // "quest" or "location"
	Ref  int    `json:"ref"`
	Name string `json:"name"`
	Text string `json:"text"`
}

// Store defines the blob storage interface.
type Store interface {
	// Put writes value as the newest version of key.
	Put(ctx context.Context, key, value string) (*Entry, error)

	// Get retrieves a blob by key.
	// Returns a slice (single element normally, all versions with History=true).
	Get(ctx context.Context, p GetParams) ([]Entry, error)

	// Prune deletes all but the newest keep versions of key.
	Prune(ctx context.Context, key string, keep int) (int, error)

	// SyncNotes replaces the note index.
	SyncNotes(ctx context.Context, notes []Note) error

	// Close closes the store.
	Close() error
}
