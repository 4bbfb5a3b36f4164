// Package journal implements the business logic layer for journal entries:
// CRUD operations, short-ID resolution, and markdown import with duplicate
// detection. It sits between the CLI/MCP surfaces and the storage backend.
package journal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/nvandessel/jrn/internal/importer"
	"github.com/nvandessel/jrn/internal/models"
	"github.com/nvandessel/jrn/internal/storage"
)

// ErrNotFound aliases the storage sentinel so callers only import this package.
var ErrNotFound = storage.ErrNotFound

// ErrNoFieldsToUpdate is returned when an update specifies nothing to change.
var ErrNoFieldsToUpdate = errors.New("at least one field must be updated")

// fullIDLength is the threshold above which an ID is taken verbatim instead
// of being resolved as a prefix (UUIDs are 36 chars with hyphens, 32 without).
const fullIDLength = 32

// AmbiguousIDError reports a short-ID prefix that matches more than one entry.
type AmbiguousIDError struct {
	Prefix  string
	Matches []*models.Entry
}

func (e *AmbiguousIDError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ambiguous ID %q matches %d entries:", e.Prefix, len(e.Matches))
	for i, m := range e.Matches {
		if i >= 5 {
			fmt.Fprintf(&b, " ...")
			break
		}
		title := m.Title
		if title == "" {
			title = "(no title)"
		}
		fmt.Fprintf(&b, " %s %q", m.ShortID(), title)
	}
	return b.String()
}

// Service provides journal operations over a storage backend.
type Service struct {
	store storage.Backend
	log   *zap.Logger
}

// NewService wraps a storage backend. A nil logger is replaced with a no-op.
func NewService(store storage.Backend, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, log: log}
}

// CreateEntry creates and persists a new entry. Empty content is allowed.
func (s *Service) CreateEntry(content, title string, tags []string) (*models.Entry, error) {
	entry := models.NewEntry(title, content, tags)
	if err := s.store.Save(entry); err != nil {
		return nil, fmt.Errorf("saving entry: %w", err)
	}
	return entry, nil
}

// GetEntry returns the entry with the given full ID.
func (s *Service) GetEntry(id string) (*models.Entry, error) {
	return s.store.Load(id)
}

// ListEntries returns entries newest first. A limit <= 0 means unbounded.
func (s *Service) ListEntries(limit int) ([]*models.Entry, error) {
	entries, err := s.store.LoadAll()
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// EntryUpdate describes a partial update. Nil fields are left untouched; a
// non-nil Tags pointer replaces the tag list (pointing at an empty slice
// clears all tags).
type EntryUpdate struct {
	Content *string
	Title   *string
	Tags    *[]string
}

// UpdateEntry applies an update to an existing entry.
func (s *Service) UpdateEntry(id string, upd EntryUpdate) (*models.Entry, error) {
	if upd.Content == nil && upd.Title == nil && upd.Tags == nil {
		return nil, ErrNoFieldsToUpdate
	}

	entry, err := s.GetEntry(id)
	if err != nil {
		return nil, err
	}

	switch {
	case upd.Content != nil && upd.Title != nil:
		entry.UpdateContent(*upd.Content, *upd.Title)
	case upd.Content != nil:
		entry.UpdateContent(*upd.Content, "")
	case upd.Title != nil:
		entry.UpdateContent(entry.Content, *upd.Title)
	}

	if upd.Tags != nil {
		entry.Tags = append([]string(nil), (*upd.Tags)...)
		entry.UpdateContent(entry.Content, "")
	}

	if err := s.store.Save(entry); err != nil {
		return nil, fmt.Errorf("saving entry: %w", err)
	}
	return entry, nil
}

// DeleteEntry removes an entry by full ID.
func (s *Service) DeleteEntry(id string) error {
	return s.store.Delete(id)
}

// SearchEntries returns entries matching the query in title or content.
func (s *Service) SearchEntries(query string) ([]*models.Entry, error) {
	return s.store.Search(query)
}

// ResolveID expands a short-ID prefix to a full entry ID. Full-length IDs
// pass through untouched. Zero matches return ErrNotFound wrapped with the
// prefix; multiple matches return an *AmbiguousIDError listing candidates.
func (s *Service) ResolveID(prefix string) (string, error) {
	if len(prefix) >= fullIDLength {
		return prefix, nil
	}

	entries, err := s.store.LoadAll()
	if err != nil {
		return "", err
	}

	var matches []*models.Entry
	for _, e := range entries {
		if strings.HasPrefix(e.ID, prefix) {
			matches = append(matches, e)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no entry with ID starting with %q: %w", prefix, ErrNotFound)
	case 1:
		return matches[0].ID, nil
	default:
		return "", &AmbiguousIDError{Prefix: prefix, Matches: matches}
	}
}

// ImportResult reports the outcome of a directory import.
type ImportResult struct {
	Imported []*models.Entry
	Skipped  int
}

// ImportFromDirectory imports every *.md file under dir, skipping entries
// whose calendar date and trimmed content match an existing entry. Files
// that fail to parse are skipped with a warning; the import continues.
func (s *Service) ImportFromDirectory(dir string, warnf func(format string, args ...any)) (*ImportResult, error) {
	if warnf == nil {
		warnf = func(string, ...any) {}
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("directory %q not found: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%q is not a directory", dir)
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	existing, err := s.store.LoadAll()
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for _, path := range paths {
		entry, err := importer.ParseFile(path)
		if err != nil {
			warnf("Warning: failed to import %s: %v", filepath.Base(path), err)
			s.log.Warn("import failed", zap.String("file", path), zap.Error(err))
			continue
		}

		if isDuplicate(entry, append(existing, result.Imported...)) {
			result.Skipped++
			continue
		}

		if err := s.store.Save(entry); err != nil {
			warnf("Warning: failed to save %s: %v", filepath.Base(path), err)
			s.log.Warn("import save failed", zap.String("file", path), zap.Error(err))
			continue
		}
		result.Imported = append(result.Imported, entry)
	}
	return result, nil
}

// isDuplicate checks for an existing entry on the same calendar date with
// identical trimmed content.
func isDuplicate(entry *models.Entry, existing []*models.Entry) bool {
	y, m, d := entry.CreatedAt.Date()
	content := strings.TrimSpace(entry.Content)
	for _, e := range existing {
		ey, em, ed := e.CreatedAt.Date()
		if ey == y && em == m && ed == d && strings.TrimSpace(e.Content) == content {
			return true
		}
	}
	return false
}
