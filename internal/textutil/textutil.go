// Package textutil provides small text helpers shared by the CLI, the
// importer, and the experiment subsystem: whitespace-delimited word counting,
// content previews, and truncation.
package textutil

import (
	"strings"
)

// WordCount returns the number of whitespace-delimited tokens in s.
// No locale-aware tokenization is attempted.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// Truncate cuts s to at most max runes, appending "..." when something
// was removed. max must be at least 4 for the ellipsis to fit.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max < 4 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

// Excerpt returns the first max runes of s with a trailing "..." when the
// content continues. Unlike Preview it keeps line breaks intact, so it is
// suitable for stored previews that should resemble the original text.
func Excerpt(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}

// Preview collapses all whitespace in content to single spaces and truncates
// to at most max runes, preferring a word boundary when one falls in the
// last fifth of the window.
func Preview(content string, max int) string {
	if strings.TrimSpace(content) == "" {
		return "(empty)"
	}

	preview := strings.Join(strings.Fields(content), " ")
	r := []rune(preview)
	if len(r) <= max {
		return preview
	}

	truncated := string(r[:max])
	if i := strings.LastIndex(truncated, " "); i > max*4/5 {
		return truncated[:i] + "..."
	}
	return truncated + "..."
}
