// Package importer turns markdown files into journal entries. It understands
// YAML front matter (title, date, tags) and falls back to filename date
// patterns and finally the file modification time.
package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nvandessel/jrn/internal/models"
)

const frontMatterDelim = "---"

// filenameDatePatterns match dates embedded in filenames like
// 2024-01-15-morning.md, 2024_01_15.md, or 20240115.md.
var filenameDatePatterns = []struct {
	re     *regexp.Regexp
	layout string
}{
	{regexp.MustCompile(`\d{4}-\d{2}-\d{2}`), "2006-01-02"},
	{regexp.MustCompile(`\d{4}_\d{2}_\d{2}`), "2006_01_02"},
	{regexp.MustCompile(`\d{8}`), "20060102"},
}

// dateLayouts are accepted front-matter date formats, most specific first.
var dateLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02/01/2006",
}

type frontMatter struct {
	Title string `yaml:"title"`
	Date  string `yaml:"date"`
	Tags  any    `yaml:"tags"`
}

// ParseFile reads a single markdown file and builds an entry from it.
// The entry is not persisted; callers decide whether to save it.
func ParseFile(path string) (*models.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	fm, body := splitFrontMatter(string(data))

	title := fm.Title
	if title == "" {
		title = stem(path)
	}

	createdAt := dateFromFilename(path)
	if createdAt.IsZero() {
		createdAt = parseDate(fm.Date)
	}
	if createdAt.IsZero() {
		createdAt = fileModTime(path)
	}

	entry := models.NewEntry(title, strings.TrimSpace(body), parseTags(fm.Tags))
	entry.CreatedAt = createdAt
	entry.UpdatedAt = createdAt
	return entry, nil
}

// splitFrontMatter separates a leading YAML front-matter block from the body.
// Content without front matter is returned unchanged with empty metadata.
func splitFrontMatter(content string) (frontMatter, string) {
	var fm frontMatter

	if !strings.HasPrefix(content, frontMatterDelim) {
		return fm, content
	}
	parts := strings.SplitN(content, frontMatterDelim, 3)
	if len(parts) < 3 {
		return fm, content
	}

	if err := yaml.Unmarshal([]byte(parts[1]), &fm); err != nil {
		// Malformed front matter is kept as body text rather than dropped.
		return frontMatter{}, content
	}
	return fm, parts[2]
}

// parseTags accepts either a YAML list or a comma-separated string.
func parseTags(v any) []string {
	var tags []string
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				tags = append(tags, strings.TrimSpace(s))
			}
		}
	case string:
		for _, s := range strings.Split(t, ",") {
			if s = strings.TrimSpace(s); s != "" {
				tags = append(tags, s)
			}
		}
	}
	return tags
}

func dateFromFilename(path string) time.Time {
	name := stem(path)
	for _, p := range filenameDatePatterns {
		if m := p.re.FindString(name); m != "" {
			if t, err := time.Parse(p.layout, m); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}

func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func fileModTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Now()
	}
	return info.ModTime()
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
