package experiment

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nvandessel/jrn/internal/models"
	"github.com/nvandessel/jrn/internal/textutil"
)

// SegmentationStrategy names the only segmentation currently implemented.
const SegmentationStrategy = "paragraph_groups"

// MinEntryWords is the admission filter: shorter entries are excluded from
// an experiment with a warning.
const MinEntryWords = 30

// entryPreviewChars is how much entry content a record preserves verbatim.
const entryPreviewChars = 200

// EntrySource is the narrow journal-lookup surface the orchestrator needs.
// *journal.Service satisfies it.
type EntrySource interface {
	GetEntry(id string) (*models.Entry, error)
	ListEntries(limit int) ([]*models.Entry, error)
	ResolveID(prefix string) (string, error)
}

// Options selects the entries to experiment on. Exactly one of Entries, All,
// or Recent must be set.
type Options struct {
	// Entries is a comma-separated list of entry IDs or unique ID prefixes.
	Entries string

	// All targets every known entry.
	All bool

	// Recent targets the N most recently created entries.
	Recent int

	// TargetWords per segment; zero means DefaultTargetWords.
	TargetWords int
}

// Experimenter coordinates a full experiment run: resolve IDs, load entries,
// generate every variant up front, evaluate interactively, then aggregate
// and report. Partial results accumulate in a plain slice; halting early just
// stops appending and proceeds to aggregation.
type Experimenter struct {
	source    EntrySource
	generator *Generator
	collector *Collector
	store     *ResultsStore
	out       io.Writer
	log       *zap.Logger
}

// NewExperimenter wires the orchestrator. A nil logger becomes a no-op.
func NewExperimenter(source EntrySource, generator *Generator, collector *Collector, store *ResultsStore, out io.Writer, log *zap.Logger) *Experimenter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Experimenter{
		source:    source,
		generator: generator,
		collector: collector,
		store:     store,
		out:       out,
		log:       log,
	}
}

// entryData is the generation-phase artifact for one entry: all segments
// with their pre-generated variants, ready for interactive evaluation.
type entryData struct {
	entry    *models.Entry
	segments []segmentData
}

type segmentData struct {
	number    int
	text      string
	wordCount int
	variants  []Variant
}

// Run executes the end-to-end experiment flow.
func (e *Experimenter) Run(ctx context.Context, opts Options) error {
	fmt.Fprintln(e.out, "AI Reflection Prompt Experimentation")
	fmt.Fprintln(e.out, strings.Repeat("=", 50))

	ids, err := e.resolveIDs(opts)
	if err != nil {
		return err
	}

	entries := e.loadEntries(ids)
	if len(entries) == 0 {
		return fmt.Errorf("no valid entries found")
	}

	cfg := e.buildConfig(entries, opts)
	e.printConfig(cfg, len(entries))

	fmt.Fprintf(e.out, "\nGenerating prompts for all %d entries...\n", len(entries))
	fmt.Fprintln(e.out, "(This may take a while - good time for coffee!)")
	generated := e.generateAll(ctx, entries, cfg)
	if len(generated) == 0 {
		return fmt.Errorf("no entries produced segments to evaluate")
	}

	fmt.Fprintln(e.out, "\nAll prompts generated! Starting evaluation phase...")

	var results []EntryResult
	for i, ed := range generated {
		fmt.Fprintf(e.out, "\nEntry %d/%d (ID: %s)\n", i+1, len(generated), ed.entry.ShortID())
		fmt.Fprintln(e.out, strings.Repeat("=", 30))

		result, err := e.evaluateEntry(ed)
		if err != nil {
			return err
		}
		if result != nil {
			results = append(results, *result)
		}

		if i < len(generated)-1 {
			cont, err := e.collector.ContinueToNextEntry()
			if err != nil {
				return err
			}
			if !cont {
				break
			}
		}
	}

	if len(results) == 0 {
		fmt.Fprintln(e.out, "\nNo results to save (all entries were skipped)")
		return nil
	}

	// The summary is computed before the write so it can be reported even
	// if persisting the record fails.
	summary := Summarize(results)
	path, saveErr := e.store.Save(cfg, results)
	e.report(summary, len(results), path, saveErr)

	if saveErr != nil {
		return fmt.Errorf("saving experiment results: %w", saveErr)
	}
	return nil
}

// resolveIDs turns the options into a list of full entry IDs. Resolution
// failures (unknown or ambiguous prefix, no mode chosen) abort the run.
func (e *Experimenter) resolveIDs(opts Options) ([]string, error) {
	modes := 0
	if opts.Entries != "" {
		modes++
	}
	if opts.All {
		modes++
	}
	if opts.Recent > 0 {
		modes++
	}
	if modes != 1 {
		return nil, fmt.Errorf("exactly one of --entries, --all, or --recent is required")
	}

	switch {
	case opts.Entries != "":
		var ids []string
		for _, raw := range strings.Split(opts.Entries, ",") {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			id, err := e.source.ResolveID(raw)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
		if len(ids) == 0 {
			return nil, fmt.Errorf("no entries specified")
		}
		return ids, nil

	case opts.All:
		return e.listIDs(0)

	default:
		return e.listIDs(opts.Recent)
	}
}

func (e *Experimenter) listIDs(limit int) ([]string, error) {
	entries, err := e.source.ListEntries(limit)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no entries specified")
	}
	ids := make([]string, len(entries))
	for i, entry := range entries {
		ids[i] = entry.ID
	}
	return ids, nil
}

// loadEntries fetches entries and applies the admission filter. Load
// failures and too-short entries are warned about and skipped; the run
// proceeds with whatever remains.
func (e *Experimenter) loadEntries(ids []string) []*models.Entry {
	var entries []*models.Entry
	for _, id := range ids {
		entry, err := e.source.GetEntry(id)
		if err != nil {
			e.warnf("Warning: could not load entry %s: %v", shortID(id), err)
			continue
		}
		if entry.WordCount() < MinEntryWords {
			e.warnf("Warning: entry %s too short, skipping", entry.ShortID())
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

func (e *Experimenter) buildConfig(entries []*models.Entry, opts Options) Config {
	targetWords := opts.TargetWords
	if targetWords <= 0 {
		targetWords = DefaultTargetWords
	}

	ids := make([]string, len(entries))
	for i, entry := range entries {
		ids[i] = entry.ID
	}

	now := time.Now()
	return Config{
		ID:                    NewExperimentID(now),
		Timestamp:             now,
		EntryIDs:              ids,
		SegmentationStrategy:  SegmentationStrategy,
		TargetWordsPerSegment: targetWords,
		Variants:              DefaultVariantConfigs(),
		SystemPrompt:          e.generator.System(),
		Templates:             e.generator.Templates(),
	}
}

func (e *Experimenter) printConfig(cfg Config, entryCount int) {
	names := make([]string, len(cfg.Variants))
	for i, v := range cfg.Variants {
		names[i] = v.Name
	}

	fmt.Fprintf(e.out, "\nExperiment Configuration:\n")
	fmt.Fprintf(e.out, "   ID: %s\n", cfg.ID)
	fmt.Fprintf(e.out, "   Entries: %d entries\n", entryCount)
	fmt.Fprintf(e.out, "   Variants: %s\n", strings.Join(names, ", "))
	fmt.Fprintf(e.out, "   Segmentation: ~%d words per segment\n", cfg.TargetWordsPerSegment)
}

// generateAll front-loads every LLM call so the evaluation phase never waits
// on the network. Entries that segment to nothing are dropped with a warning.
func (e *Experimenter) generateAll(ctx context.Context, entries []*models.Entry, cfg Config) []entryData {
	var generated []entryData
	for i, entry := range entries {
		fmt.Fprintf(e.out, "   Processing entry %d/%d (ID: %s)...\n", i+1, len(entries), entry.ShortID())

		segments := SegmentByParagraphGroups(entry.Content, cfg.TargetWordsPerSegment, DefaultMinWords)
		if len(segments) == 0 {
			e.warnf("Warning: no meaningful segments found for entry %s, skipping", entry.ShortID())
			continue
		}

		ed := entryData{entry: entry}
		for j, text := range segments {
			fmt.Fprintf(e.out, "      Generating variants for segment %d/%d...\n", j+1, len(segments))
			ed.segments = append(ed.segments, segmentData{
				number:    j + 1,
				text:      text,
				wordCount: textutil.WordCount(text),
				variants:  e.generator.Generate(ctx, text, cfg.Variants),
			})
		}
		generated = append(generated, ed)
	}
	return generated
}

// evaluateEntry walks the user through one entry's pre-generated segments.
// Returns nil (no result) when the entry was skipped outright or every
// segment ended up skipped.
func (e *Experimenter) evaluateEntry(ed entryData) (*EntryResult, error) {
	fmt.Fprintf(e.out, "\nEntry content (%d words):\n%s\n", ed.entry.WordCount(), ed.entry.Content)
	fmt.Fprintf(e.out, "\nAuto-segmented into %d parts\n", len(ed.segments))

	texts := make([]string, len(ed.segments))
	for i, sd := range ed.segments {
		texts[i] = sd.text
	}
	indices, err := e.collector.SelectSegments(texts)
	if err != nil {
		return nil, err
	}
	if len(indices) == 0 {
		fmt.Fprintln(e.out, "Skipping entry")
		return nil, nil
	}

	var segmentResults []SegmentResult
	for _, idx := range indices {
		sd := ed.segments[idx]

		ok, err := e.collector.ConfirmShortSegment(sd.text)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		fmt.Fprintf(e.out, "\n--- Segment %d (%d words) ---\n%s\n", sd.number, sd.wordCount, sd.text)

		if len(sd.variants) == 0 {
			fmt.Fprintln(e.out, "Error: no variants available for this segment")
			continue
		}

		fmt.Fprintf(e.out, "\nGenerated %d prompt variants:\n", len(sd.variants))
		for i, v := range sd.variants {
			fmt.Fprintf(e.out, "\n%d. %s\n   %q\n", i+1, v.Name, v.Prompt)
		}

		feedback, err := e.collector.CollectSegmentFeedback(sd.variants, sd.text)
		if err != nil {
			return nil, err
		}
		if feedback.Skipped() {
			fmt.Fprintln(e.out, "Skipping segment")
			continue
		}
		fmt.Fprintln(e.out, "Feedback saved")

		segmentResults = append(segmentResults, SegmentResult{
			SegmentNumber:    sd.number,
			SegmentText:      sd.text,
			SegmentWordCount: sd.wordCount,
			Variants:         sd.variants,
			Feedback:         feedback,
			Timestamp:        time.Now(),
		})
	}

	if len(segmentResults) == 0 {
		return nil, nil
	}

	return &EntryResult{
		EntryID:           ed.entry.ID,
		EntryPreview:      ed.entry.Preview(entryPreviewChars),
		TotalSegments:     len(ed.segments),
		EvaluatedSegments: len(segmentResults),
		SegmentResults:    segmentResults,
	}, nil
}

// report prints the human-readable run summary. It runs whether or not the
// record write succeeded, because the in-memory results are still valid.
func (e *Experimenter) report(summary Summary, entriesProcessed int, path string, saveErr error) {
	fmt.Fprintf(e.out, "\nExperiment Complete!\n%s\n", strings.Repeat("=", 50))
	if saveErr != nil {
		e.warnf("Warning: could not save results: %v", saveErr)
	} else {
		fmt.Fprintf(e.out, "Results saved to: %s\n", path)
	}

	fmt.Fprintf(e.out, "\nSummary:\n")
	fmt.Fprintf(e.out, "   Entries processed: %d\n", entriesProcessed)
	fmt.Fprintf(e.out, "   Segments processed: %d\n", summary.TotalSegments)
	fmt.Fprintf(e.out, "   Feedback collected: %d\n", summary.TotalFeedback)

	if len(summary.VariantPreferences) > 0 {
		fmt.Fprintf(e.out, "\nVariant Preferences:\n")
		for name, pref := range summary.VariantPreferences {
			fmt.Fprintf(e.out, "   %s: %d times (%.1f%%)\n", name, pref.Count, pref.Percentage)
		}
	}

	if len(summary.SampleExplanations) > 0 {
		fmt.Fprintf(e.out, "\nSample feedback:\n")
		for i, explanation := range summary.SampleExplanations {
			if i >= 3 {
				break
			}
			fmt.Fprintf(e.out, "   - %q\n", explanation)
		}
	}
}

func (e *Experimenter) warnf(format string, args ...any) {
	fmt.Fprintf(e.out, format+"\n", args...)
	e.log.Warn(fmt.Sprintf(format, args...))
}

func shortID(id string) string {
	if len(id) < 8 {
		return id
	}
	return id[:8]
}
