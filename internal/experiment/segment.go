// Package experiment implements the reflection-prompt experimentation
// subsystem: paragraph-aware entry segmentation, competing prompt variant
// generation, interactive feedback collection, and persisted result records
// with summary statistics.
package experiment

import (
	"strings"

	"github.com/nvandessel/jrn/internal/textutil"
)

const (
	// DefaultTargetWords is the word count a segment aims for.
	DefaultTargetWords = 200

	// DefaultMinWords is the minimum word count for an entry or trailing
	// segment to be worth processing at all.
	DefaultMinWords = 30

	// groupOverflowFactor caps a paragraph group at target*1.5 words.
	groupOverflowFactor = 1.5
)

// SegmentByParagraphGroups splits content into segments of whole paragraphs
// packed greedily toward targetWords:
//
//   - a paragraph of targetWords or more becomes its own segment
//   - smaller paragraphs are grouped forward until adding the next one would
//     push the group past targetWords*1.5
//   - paragraph boundaries are never broken
//
// Content under minWords total yields no segments, and a trailing group under
// minWords is dropped rather than merged backward. Paragraph separators in
// segment text are normalized to a single blank line.
func SegmentByParagraphGroups(content string, targetWords, minWords int) []string {
	paragraphs := splitParagraphs(content)
	if len(paragraphs) == 0 {
		return nil
	}
	if textutil.WordCount(content) < minWords {
		return nil
	}

	var segments []string
	var group []string
	groupWords := 0

	flush := func() {
		if len(group) > 0 {
			segments = append(segments, strings.Join(group, "\n\n"))
			group = nil
			groupWords = 0
		}
	}

	for _, para := range paragraphs {
		words := textutil.WordCount(para)
		switch {
		case words >= targetWords:
			flush()
			segments = append(segments, para)
		case float64(groupWords+words) > float64(targetWords)*groupOverflowFactor:
			flush()
			group = []string{para}
			groupWords = words
		default:
			group = append(group, para)
			groupWords += words
		}
	}

	// A short trailing group is discarded, not merged into the previous segment.
	if len(group) > 0 && groupWords >= minWords {
		flush()
	}

	return segments
}

// splitParagraphs breaks content on blank-line boundaries, trimming each
// paragraph and dropping empty ones. Windows line endings are normalized
// first so CRLF-authored files see the same boundaries.
func splitParagraphs(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	var paragraphs []string
	for _, p := range strings.Split(content, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}
