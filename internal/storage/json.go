package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nvandessel/jrn/internal/models"
)

const entriesFile = "entries.json"

// JSONStore keeps all entries in a single pretty-printed JSON file keyed by
// entry ID. It re-reads the file on every operation, so external edits are
// picked up; a missing or corrupt file reads as an empty store.
type JSONStore struct {
	path string
}

// NewJSONStore creates the data directory if needed and returns a store
// backed by <dataDir>/entries.json.
func NewJSONStore(dataDir string) (*JSONStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &JSONStore{path: filepath.Join(dataDir, entriesFile)}, nil
}

func (s *JSONStore) readAll() (map[string]*models.Entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]*models.Entry{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	entries := map[string]*models.Entry{}
	if err := json.Unmarshal(data, &entries); err != nil {
		// Corrupt file reads as empty rather than bricking the journal.
		return map[string]*models.Entry{}, nil
	}
	return entries, nil
}

func (s *JSONStore) writeAll(entries map[string]*models.Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

// Save inserts or replaces an entry.
func (s *JSONStore) Save(entry *models.Entry) error {
	entries, err := s.readAll()
	if err != nil {
		return err
	}
	entries[entry.ID] = entry
	return s.writeAll(entries)
}

// Load returns the entry with the given ID, or ErrNotFound.
func (s *JSONStore) Load(id string) (*models.Entry, error) {
	entries, err := s.readAll()
	if err != nil {
		return nil, err
	}
	entry, ok := entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	return entry, nil
}

// LoadAll returns all entries, newest first.
func (s *JSONStore) LoadAll() ([]*models.Entry, error) {
	byID, err := s.readAll()
	if err != nil {
		return nil, err
	}

	entries := make([]*models.Entry, 0, len(byID))
	for _, e := range byID {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

// Delete removes an entry, returning ErrNotFound if absent.
func (s *JSONStore) Delete(id string) error {
	entries, err := s.readAll()
	if err != nil {
		return err
	}
	if _, ok := entries[id]; !ok {
		return ErrNotFound
	}
	delete(entries, id)
	return s.writeAll(entries)
}

// Search returns entries whose title or content contains query, newest first.
func (s *JSONStore) Search(query string) ([]*models.Entry, error) {
	all, err := s.LoadAll()
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	var matches []*models.Entry
	for _, e := range all {
		if strings.Contains(strings.ToLower(e.Title), q) ||
			strings.Contains(strings.ToLower(e.Content), q) {
			matches = append(matches, e)
		}
	}
	return matches, nil
}

// Close is a no-op for the file-backed store.
func (s *JSONStore) Close() error { return nil }
