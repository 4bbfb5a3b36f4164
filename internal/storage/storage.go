// Package storage defines the Backend interface for persisting journal
// entries and provides JSON-file and SQLite implementations.
package storage

import (
	"errors"
	"fmt"

	"github.com/nvandessel/jrn/internal/models"
)

// ErrNotFound is returned when an entry ID does not exist in the backend.
var ErrNotFound = errors.New("entry not found")

// Backend is the storage contract the journal service depends on.
type Backend interface {
	// Save inserts or replaces an entry keyed by its ID.
	Save(entry *models.Entry) error

	// Load returns the entry with the given full ID, or ErrNotFound.
	Load(id string) (*models.Entry, error)

	// LoadAll returns every entry, newest first by creation time.
	LoadAll() ([]*models.Entry, error)

	// Delete removes an entry, returning ErrNotFound if it does not exist.
	Delete(id string) error

	// Search returns entries whose title or content contains the query,
	// case-insensitively, newest first.
	Search(query string) ([]*models.Entry, error)

	// Close releases backend resources. Safe to call multiple times.
	Close() error
}

// Open constructs the backend named by kind ("json" or "sqlite") rooted in
// dataDir. An empty kind defaults to the JSON backend.
func Open(kind, dataDir string) (Backend, error) {
	switch kind {
	case "", "json":
		return NewJSONStore(dataDir)
	case "sqlite":
		return NewSQLiteStore(dataDir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want json or sqlite)", kind)
	}
}
