// Package models defines the journal entry data model shared across the
// storage backends, the journal service, and the CLI.
package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/nvandessel/jrn/internal/textutil"
)

// Entry represents a single journal entry with metadata and content.
type Entry struct {
	// Unique identifier (UUIDv4)
	ID string `json:"id" yaml:"id"`

	// Optional title
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Free-text body of the entry
	Content string `json:"content" yaml:"content"`

	// Creation and last-modification timestamps
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`

	// User-supplied tags
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// NewEntry creates an entry with a fresh ID and both timestamps set to now.
func NewEntry(title, content string, tags []string) *Entry {
	now := time.Now()
	return &Entry{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
		Tags:      append([]string(nil), tags...),
	}
}

// UpdateContent replaces the entry content, optionally the title, and touches
// the modification timestamp.
func (e *Entry) UpdateContent(content, title string) {
	e.Content = content
	if title != "" {
		e.Title = title
	}
	e.UpdatedAt = time.Now()
}

// AddTag appends a tag if it is not already present.
func (e *Entry) AddTag(tag string) {
	for _, t := range e.Tags {
		if t == tag {
			return
		}
	}
	e.Tags = append(e.Tags, tag)
}

// RemoveTag deletes a tag if present.
func (e *Entry) RemoveTag(tag string) {
	for i, t := range e.Tags {
		if t == tag {
			e.Tags = append(e.Tags[:i], e.Tags[i+1:]...)
			return
		}
	}
}

// WordCount returns the whitespace-delimited word count of the content.
func (e *Entry) WordCount() int {
	return textutil.WordCount(e.Content)
}

// ShortID returns the first 8 characters of the entry ID for display.
func (e *Entry) ShortID() string {
	if len(e.ID) < 8 {
		return e.ID
	}
	return e.ID[:8]
}

// Preview returns the first max characters of the content with a trailing
// ellipsis when the content continues.
func (e *Entry) Preview(max int) string {
	return textutil.Excerpt(e.Content, max)
}
