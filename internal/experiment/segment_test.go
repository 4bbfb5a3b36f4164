package experiment

import (
	"reflect"
	"strings"
	"testing"
)

// words builds a paragraph of n distinct words.
func words(prefix string, n int) string {
	out := make([]string, n)
	for i := range out {
		out[i] = prefix
	}
	return strings.Join(out, " ")
}

func TestSegmentByParagraphGroups(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "two small paragraphs grouped into one segment",
			content: words("alpha", 40) + "\n\n" + words("beta", 40),
			want:    []string{words("alpha", 40) + "\n\n" + words("beta", 40)},
		},
		{
			name:    "oversized paragraph stands alone",
			content: words("long", 250),
			want:    []string{words("long", 250)},
		},
		{
			name:    "content below minimum yields nothing",
			content: words("tiny", 10),
			want:    nil,
		},
		{
			name:    "empty content yields nothing",
			content: "   \n\n  ",
			want:    nil,
		},
		{
			name: "group capped at one and a half times target",
			content: words("one", 150) + "\n\n" +
				words("two", 150) + "\n\n" +
				words("three", 150),
			want: []string{
				words("one", 150) + "\n\n" + words("two", 150),
				words("three", 150),
			},
		},
		{
			name:    "oversized paragraph flushes the pending group",
			content: words("small", 40) + "\n\n" + words("big", 220) + "\n\n" + words("tail", 40),
			want: []string{
				words("small", 40),
				words("big", 220),
				words("tail", 40),
			},
		},
		{
			name: "windows line endings form paragraph boundaries",
			content: words("one", 150) + "\r\n\r\n" +
				words("two", 150) + "\r\n\r\n" +
				words("three", 150),
			want: []string{
				words("one", 150) + "\n\n" + words("two", 150),
				words("three", 150),
			},
		},
		{
			name:    "short trailing group is dropped",
			content: words("body", 220) + "\n\n" + words("stub", 10),
			want:    []string{words("body", 220)},
		},
		{
			name:    "extra blank lines are normalized",
			content: words("first", 20) + "\n\n\n\n" + words("second", 20),
			want:    []string{words("first", 20) + "\n\n" + words("second", 20)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SegmentByParagraphGroups(tt.content, DefaultTargetWords, DefaultMinWords)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %d segments %q, want %d segments %q",
					len(got), got, len(tt.want), tt.want)
			}
		})
	}
}

func TestSegmentByParagraphGroupsPreservesOrder(t *testing.T) {
	content := words("aa", 60) + "\n\n" + words("bb", 60) + "\n\n" +
		words("cc", 60) + "\n\n" + words("dd", 60) + "\n\n" + words("ee", 60)

	segments := SegmentByParagraphGroups(content, DefaultTargetWords, DefaultMinWords)
	if len(segments) == 0 {
		t.Fatal("expected segments")
	}

	joined := strings.Join(segments, "\n\n")
	wantOrder := []string{"aa", "bb", "cc", "dd", "ee"}
	last := -1
	for _, marker := range wantOrder {
		idx := strings.Index(joined, marker)
		if idx <= last {
			t.Fatalf("paragraph %q out of order in %q", marker, joined)
		}
		last = idx
	}
}

func TestSegmentByParagraphGroupsCustomTarget(t *testing.T) {
	// With a 50-word target the 1.5x cap is 75 words, so three 40-word
	// paragraphs split after the first pair.
	content := words("p1", 40) + "\n\n" + words("p2", 40) + "\n\n" + words("p3", 40)

	got := SegmentByParagraphGroups(content, 50, DefaultMinWords)
	want := []string{
		words("p1", 40),
		words("p2", 40),
		words("p3", 40),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}
