package experiment

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nvandessel/jrn/internal/textutil"
)

// SkipChoice is the selector recorded when the user skips a segment.
const SkipChoice = "s"

// shortSegmentWords is the threshold below which a segment needs an explicit
// confirmation before evaluation.
const shortSegmentWords = 50

// Feedback records the user's judgment on a segment's variant set. When the
// segment was skipped, no chosen variant or explanation is recorded.
type Feedback struct {
	// Choice is a 1-based variant ordinal as text, or SkipChoice.
	Choice string `json:"choice"`

	// ChosenVariant is a snapshot of the selected variant, not a reference.
	ChosenVariant *Variant `json:"chosen_variant,omitempty"`

	// Explanation is the optional free-text rationale. Absent, not empty,
	// when the user gave none.
	Explanation string `json:"feedback_text,omitempty"`

	Timestamp        time.Time `json:"timestamp"`
	SegmentWordCount int       `json:"segment_word_count"`
}

// Skipped reports whether the user skipped the segment.
func (f Feedback) Skipped() bool { return f.Choice == SkipChoice }

// Collector drives the interactive evaluation of variants per segment and
// the gating questions around segments and entries.
type Collector struct {
	prompter Prompter
	out      io.Writer
}

// NewCollector builds a Collector writing its presentation to out.
func NewCollector(prompter Prompter, out io.Writer) *Collector {
	return &Collector{prompter: prompter, out: out}
}

// CollectSegmentFeedback presents the variants as numbered options plus a
// skip option, blocks for a valid selection, and (for non-skip choices)
// offers an optional free-text explanation. The feedback is stamped with the
// current time and the segment's word count on both branches.
func (c *Collector) CollectSegmentFeedback(variants []Variant, segmentText string) (Feedback, error) {
	options := make([]string, 0, len(variants)+1)
	var labels []string
	for i := range variants {
		options = append(options, strconv.Itoa(i+1))
		labels = append(labels, fmt.Sprintf("[%d]", i+1))
	}
	options = append(options, SkipChoice)

	fmt.Fprintf(c.out, "\nWhich prompt would make you want to reflect most? %s [%s] skip\n",
		strings.Join(labels, " "), SkipChoice)

	choice, err := c.prompter.ChooseOne("Choice: ", options)
	if err != nil {
		return Feedback{}, err
	}

	feedback := Feedback{
		Choice:           choice,
		Timestamp:        time.Now(),
		SegmentWordCount: textutil.WordCount(segmentText),
	}
	if choice == SkipChoice {
		return feedback, nil
	}

	n, _ := strconv.Atoi(choice)
	chosen := variants[n-1]
	feedback.ChosenVariant = &chosen

	fmt.Fprintf(c.out, "\nYour feedback on this prompt:\n   %q\n", chosen.Prompt)
	fmt.Fprintln(c.out, "(Share what worked well, what could be improved, or any other thoughts)")
	explanation, err := c.prompter.FreeText("> ")
	if err != nil {
		return Feedback{}, err
	}
	feedback.Explanation = strings.TrimSpace(explanation)

	return feedback, nil
}

// SelectSegments asks which segment indices (0-based in the result) to
// evaluate. A single segment is selected implicitly. "s" skips the entry,
// "a" or empty input selects everything, and a comma-separated list picks
// 1-based indices. Unparsable input selects everything with a warning.
func (c *Collector) SelectSegments(segments []string) ([]int, error) {
	if len(segments) == 1 {
		return []int{0}, nil
	}

	fmt.Fprintf(c.out, "\nEntry segmented into %d parts:\n", len(segments))
	for i, segment := range segments {
		fmt.Fprintf(c.out, "\n[%d] (%d words)\n    %s\n",
			i+1, textutil.WordCount(segment), segment)
	}
	fmt.Fprintf(c.out, "\nProcess: [a] All segments  [1,2,3...] Choose segments  [s] Skip entry\n")

	choice, err := c.prompter.FreeText("Choice [a]: ")
	if err != nil {
		return nil, err
	}
	choice = strings.ToLower(strings.TrimSpace(choice))

	all := func() []int {
		indices := make([]int, len(segments))
		for i := range segments {
			indices[i] = i
		}
		return indices
	}

	switch choice {
	case SkipChoice:
		return nil, nil
	case "", "a":
		return all(), nil
	}

	var indices []int
	for _, tok := range strings.Split(choice, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(tok))
		if err != nil {
			fmt.Fprintln(c.out, "Warning: invalid selection, processing all segments")
			return all(), nil
		}
		if n >= 1 && n <= len(segments) {
			indices = append(indices, n-1)
		}
	}
	return indices, nil
}

// ConfirmShortSegment asks before evaluating a segment under 50 words,
// defaulting to no. Longer segments pass without a question.
func (c *Collector) ConfirmShortSegment(segmentText string) (bool, error) {
	words := textutil.WordCount(segmentText)
	if words >= shortSegmentWords {
		return true, nil
	}

	fmt.Fprintf(c.out, "\nSegment (%d words): %s\n", words, segmentText)
	return c.prompter.Confirm("This segment seems short. Process anyway? [y/N]: ", false)
}

// ContinueToNextEntry asks whether to proceed after finishing an entry.
// Declining halts the experiment early; results so far are kept.
func (c *Collector) ContinueToNextEntry() (bool, error) {
	fmt.Fprintf(c.out, "\n%s\n", strings.Repeat("=", 50))
	return c.prompter.Confirm("Continue to next entry? [Y/n]: ", true)
}
