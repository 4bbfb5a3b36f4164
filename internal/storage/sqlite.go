package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nvandessel/jrn/internal/models"
)

const entriesDB = "entries.db"

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL DEFAULT '',
	content    TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	tags       TEXT NOT NULL DEFAULT '[]'
);
CREATE INDEX IF NOT EXISTS idx_entries_created_at ON entries(created_at DESC);
`

// SQLiteStore persists entries in <dataDir>/entries.db via the pure-Go
// sqlite driver. Tags are stored as a JSON array column; timestamps as
// RFC 3339 text so ordering works lexicographically.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the entries database.
func NewSQLiteStore(dataDir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, entriesDB))
	if err != nil {
		return nil, fmt.Errorf("opening entries database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Save inserts or replaces an entry.
func (s *SQLiteStore) Save(entry *models.Entry) error {
	tags, err := json.Marshal(entry.Tags)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO entries (id, title, content, created_at, updated_at, tags)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at,
			tags = excluded.tags`,
		entry.ID, entry.Title, entry.Content,
		entry.CreatedAt.Format(time.RFC3339Nano),
		entry.UpdatedAt.Format(time.RFC3339Nano),
		string(tags))
	if err != nil {
		return fmt.Errorf("saving entry %s: %w", entry.ID, err)
	}
	return nil
}

func scanEntry(scan func(dest ...any) error) (*models.Entry, error) {
	var e models.Entry
	var created, updated, tags string
	if err := scan(&e.ID, &e.Title, &e.Content, &created, &updated, &tags); err != nil {
		return nil, err
	}

	var err error
	if e.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return nil, fmt.Errorf("parsing created_at for %s: %w", e.ID, err)
	}
	if e.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		return nil, fmt.Errorf("parsing updated_at for %s: %w", e.ID, err)
	}
	if err := json.Unmarshal([]byte(tags), &e.Tags); err != nil {
		return nil, fmt.Errorf("parsing tags for %s: %w", e.ID, err)
	}
	return &e, nil
}

// Load returns the entry with the given ID, or ErrNotFound.
func (s *SQLiteStore) Load(id string) (*models.Entry, error) {
	row := s.db.QueryRow(
		`SELECT id, title, content, created_at, updated_at, tags FROM entries WHERE id = ?`, id)
	entry, err := scanEntry(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return entry, err
}

func (s *SQLiteStore) queryEntries(query string, args ...any) ([]*models.Entry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.Entry
	for rows.Next() {
		entry, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// LoadAll returns all entries, newest first.
func (s *SQLiteStore) LoadAll() ([]*models.Entry, error) {
	return s.queryEntries(
		`SELECT id, title, content, created_at, updated_at, tags
		 FROM entries ORDER BY created_at DESC`)
}

// Delete removes an entry, returning ErrNotFound if absent.
func (s *SQLiteStore) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Search returns entries whose title or content contains query, newest first.
func (s *SQLiteStore) Search(query string) ([]*models.Entry, error) {
	like := "%" + query + "%"
	return s.queryEntries(
		`SELECT id, title, content, created_at, updated_at, tags
		 FROM entries
		 WHERE title LIKE ? COLLATE NOCASE OR content LIKE ? COLLATE NOCASE
		 ORDER BY created_at DESC`, like, like)
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }
