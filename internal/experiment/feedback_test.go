package experiment

import (
	"fmt"
	"io"
	"reflect"
	"strings"
	"testing"
)

// scriptPrompter feeds canned answers to the collector. Each method pops
// from its own queue and fails the test when the queue runs dry.
type scriptPrompter struct {
	t        *testing.T
	choices  []string
	texts    []string
	confirms []bool
}

func (p *scriptPrompter) ChooseOne(label string, options []string) (string, error) {
	if len(p.choices) == 0 {
		p.t.Fatalf("unexpected ChooseOne(%q)", label)
	}
	choice := p.choices[0]
	p.choices = p.choices[1:]
	return choice, nil
}

func (p *scriptPrompter) FreeText(label string) (string, error) {
	if len(p.texts) == 0 {
		p.t.Fatalf("unexpected FreeText(%q)", label)
	}
	text := p.texts[0]
	p.texts = p.texts[1:]
	return text, nil
}

func (p *scriptPrompter) Confirm(label string, def bool) (bool, error) {
	if len(p.confirms) == 0 {
		p.t.Fatalf("unexpected Confirm(%q)", label)
	}
	answer := p.confirms[0]
	p.confirms = p.confirms[1:]
	return answer, nil
}

func testVariants() []Variant {
	return []Variant{
		{Name: "warm_v1", Kind: VariantKindExperimental, TemplateKey: "warm", Prompt: "How did that feel?"},
		{Name: "cold_v1", Kind: VariantKindExperimental, TemplateKey: "cold", Prompt: "What caused it?"},
	}
}

func TestCollectSegmentFeedbackChoice(t *testing.T) {
	prompter := &scriptPrompter{t: t, choices: []string{"2"}, texts: []string{"  more concrete  "}}
	c := NewCollector(prompter, io.Discard)

	fb, err := c.CollectSegmentFeedback(testVariants(), "a short segment of text")
	if err != nil {
		t.Fatalf("CollectSegmentFeedback: %v", err)
	}

	if fb.Choice != "2" {
		t.Errorf("Choice = %q, want %q", fb.Choice, "2")
	}
	if fb.Skipped() {
		t.Error("Skipped() = true for a real choice")
	}
	if fb.ChosenVariant == nil || fb.ChosenVariant.Name != "cold_v1" {
		t.Errorf("ChosenVariant = %+v, want cold_v1", fb.ChosenVariant)
	}
	if fb.Explanation != "more concrete" {
		t.Errorf("Explanation = %q, want trimmed input", fb.Explanation)
	}
	if fb.SegmentWordCount != 5 {
		t.Errorf("SegmentWordCount = %d, want 5", fb.SegmentWordCount)
	}
	if fb.Timestamp.IsZero() {
		t.Error("Timestamp not stamped")
	}
}

func TestCollectSegmentFeedbackSkip(t *testing.T) {
	prompter := &scriptPrompter{t: t, choices: []string{SkipChoice}}
	c := NewCollector(prompter, io.Discard)

	fb, err := c.CollectSegmentFeedback(testVariants(), "one two three")
	if err != nil {
		t.Fatalf("CollectSegmentFeedback: %v", err)
	}

	if !fb.Skipped() {
		t.Error("Skipped() = false, want true")
	}
	if fb.ChosenVariant != nil {
		t.Errorf("ChosenVariant = %+v, want nil on skip", fb.ChosenVariant)
	}
	if fb.Explanation != "" {
		t.Errorf("Explanation = %q, want empty on skip", fb.Explanation)
	}
	if fb.SegmentWordCount != 3 {
		t.Errorf("SegmentWordCount = %d, want 3", fb.SegmentWordCount)
	}
	if len(prompter.texts) != 0 {
		t.Error("skip should not ask for an explanation")
	}
}

func TestCollectSegmentFeedbackSnapshotsVariant(t *testing.T) {
	variants := testVariants()
	prompter := &scriptPrompter{t: t, choices: []string{"1"}, texts: []string{""}}
	c := NewCollector(prompter, io.Discard)

	fb, err := c.CollectSegmentFeedback(variants, "text")
	if err != nil {
		t.Fatalf("CollectSegmentFeedback: %v", err)
	}

	variants[0].Prompt = "mutated after the fact"
	if fb.ChosenVariant.Prompt != "How did that feel?" {
		t.Errorf("ChosenVariant.Prompt = %q; feedback must snapshot, not reference",
			fb.ChosenVariant.Prompt)
	}
}

func TestSelectSegments(t *testing.T) {
	segments := []string{"seg one", "seg two", "seg three"}

	tests := []struct {
		name     string
		input    string
		want     []int
		wantWarn bool
	}{
		{name: "skip entry", input: "s", want: nil},
		{name: "all explicit", input: "a", want: []int{0, 1, 2}},
		{name: "all by default", input: "", want: []int{0, 1, 2}},
		{name: "comma list", input: "1,3", want: []int{0, 2}},
		{name: "spaces tolerated", input: " 2 , 3 ", want: []int{1, 2}},
		{name: "out of range dropped", input: "1,9", want: []int{0}},
		{name: "unparsable falls back to all", input: "2,x", want: []int{0, 1, 2}, wantWarn: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out strings.Builder
			prompter := &scriptPrompter{t: t, texts: []string{tt.input}}
			c := NewCollector(prompter, &out)

			got, err := c.SelectSegments(segments)
			if err != nil {
				t.Fatalf("SelectSegments: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if warned := strings.Contains(out.String(), "invalid selection"); warned != tt.wantWarn {
				t.Errorf("warning printed = %v, want %v", warned, tt.wantWarn)
			}
		})
	}
}

func TestSelectSegmentsSingleSegmentImplicit(t *testing.T) {
	prompter := &scriptPrompter{t: t} // no input expected
	c := NewCollector(prompter, io.Discard)

	got, err := c.SelectSegments([]string{"only segment"})
	if err != nil {
		t.Fatalf("SelectSegments: %v", err)
	}
	if !reflect.DeepEqual(got, []int{0}) {
		t.Errorf("got %v, want [0]", got)
	}
}

func TestConfirmShortSegment(t *testing.T) {
	long := strings.Repeat("word ", 60)

	t.Run("long segment passes without asking", func(t *testing.T) {
		c := NewCollector(&scriptPrompter{t: t}, io.Discard)
		ok, err := c.ConfirmShortSegment(long)
		if err != nil || !ok {
			t.Errorf("got (%v, %v), want (true, nil)", ok, err)
		}
	})

	t.Run("short segment honors the answer", func(t *testing.T) {
		for _, answer := range []bool{true, false} {
			c := NewCollector(&scriptPrompter{t: t, confirms: []bool{answer}}, io.Discard)
			ok, err := c.ConfirmShortSegment("just a few words")
			if err != nil {
				t.Fatalf("ConfirmShortSegment: %v", err)
			}
			if ok != answer {
				t.Errorf("got %v, want %v", ok, answer)
			}
		}
	})
}

func TestConsolePrompterChooseOne(t *testing.T) {
	in := strings.NewReader("maybe\n7\nS\n")
	var out strings.Builder
	p := NewConsolePrompter(in, &out)

	choice, err := p.ChooseOne("Choice: ", []string{"1", "2", "s"})
	if err != nil {
		t.Fatalf("ChooseOne: %v", err)
	}
	if choice != "s" {
		t.Errorf("choice = %q, want %q (case-insensitive)", choice, "s")
	}
	if n := strings.Count(out.String(), "Please choose from"); n != 2 {
		t.Errorf("re-prompted %d times, want 2", n)
	}
}

func TestConsolePrompterChooseOneEOF(t *testing.T) {
	p := NewConsolePrompter(strings.NewReader(""), io.Discard)
	if _, err := p.ChooseOne("Choice: ", []string{"1"}); err != io.EOF {
		t.Errorf("err = %v, want io.EOF", err)
	}
}

func TestConsolePrompterConfirm(t *testing.T) {
	tests := []struct {
		input string
		def   bool
		want  bool
	}{
		{"", true, true},
		{"n", true, false},
		{"N", true, false},
		{"y", true, true},
		{"whatever", true, true},
		{"", false, false},
		{"y", false, true},
		{"Y", false, true},
		{"n", false, false},
		{"whatever", false, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("input=%q def=%v", tt.input, tt.def), func(t *testing.T) {
			p := NewConsolePrompter(strings.NewReader(tt.input+"\n"), io.Discard)
			got, err := p.Confirm("? ", tt.def)
			if err != nil {
				t.Fatalf("Confirm: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
