package experiment

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"
)

// maxSampleExplanations caps the explanations carried into a summary.
const maxSampleExplanations = 5

// Config captures everything needed to reproduce or audit an experiment run.
type Config struct {
	ID                    string            `json:"id"`
	Timestamp             time.Time         `json:"timestamp"`
	EntryIDs              []string          `json:"entry_ids"`
	SegmentationStrategy  string            `json:"segmentation_strategy"`
	TargetWordsPerSegment int               `json:"target_words_per_segment"`
	Variants              []VariantConfig   `json:"variants_to_test"`
	SystemPrompt          string            `json:"system_prompt"`
	Templates             map[string]string `json:"experimental_templates"`
}

// NewExperimentID derives the record identifier from the creation time,
// second precision. Two runs starting within the same second collide; that
// is accepted for a single-user tool.
func NewExperimentID(t time.Time) string {
	return "exp_" + t.Format("20060102_150405")
}

// SegmentResult is one evaluated segment: its variants and the feedback.
type SegmentResult struct {
	SegmentNumber    int       `json:"segment_number"`
	SegmentText      string    `json:"segment_text"`
	SegmentWordCount int       `json:"segment_word_count"`
	Variants         []Variant `json:"variants"`
	Feedback         Feedback  `json:"feedback"`
	Timestamp        time.Time `json:"timestamp"`
}

// EntryResult is the ordered list of segment evaluations completed for one
// entry. The user may abandon an entry early, so EvaluatedSegments can be
// less than TotalSegments.
type EntryResult struct {
	EntryID           string          `json:"entry_id"`
	EntryPreview      string          `json:"entry_preview"`
	TotalSegments     int             `json:"total_segments"`
	EvaluatedSegments int             `json:"evaluated_segments"`
	SegmentResults    []SegmentResult `json:"segment_results"`
}

// Preference counts how often one variant was chosen.
type Preference struct {
	Count int `json:"count"`
	// Percentage of non-skip choices, rounded to one decimal place.
	Percentage float64 `json:"percentage"`
}

// Summary is derived from results and always recomputable from them.
type Summary struct {
	TotalSegments      int                   `json:"total_segments"`
	TotalFeedback      int                   `json:"total_feedback_collected"`
	VariantPreferences map[string]Preference `json:"variant_preferences"`
	SampleExplanations []string              `json:"sample_explanations"`
	// MostPreferred breaks ties by map iteration order; under tied counts
	// the winner is not deterministic.
	MostPreferred string `json:"most_preferred_variant,omitempty"`
}

// Metadata heads a persisted experiment record.
type Metadata struct {
	ExperimentID           string    `json:"experiment_id"`
	Timestamp              time.Time `json:"timestamp"`
	TotalEntriesProcessed  int       `json:"total_entries_processed"`
	TotalSegmentsProcessed int       `json:"total_segments_processed"`
	Config                 Config    `json:"config"`
}

// Record is the complete persisted artifact of one experiment run. Written
// once, never mutated; each run produces a new record.
type Record struct {
	Metadata Metadata      `json:"experiment_metadata"`
	Results  []EntryResult `json:"results"`
	Summary  Summary       `json:"summary"`
}

// Summarize computes preference statistics from results. Skipped segments
// contribute to nothing; percentages are shares of non-skip choices.
func Summarize(results []EntryResult) Summary {
	summary := Summary{
		VariantPreferences: map[string]Preference{},
	}

	counts := map[string]int{}
	var explanations []string
	for _, entry := range results {
		summary.TotalSegments += len(entry.SegmentResults)
		for _, segment := range entry.SegmentResults {
			fb := segment.Feedback
			if fb.Skipped() || fb.ChosenVariant == nil {
				continue
			}
			counts[fb.ChosenVariant.Name]++
			summary.TotalFeedback++
			if fb.Explanation != "" {
				explanations = append(explanations, fb.Explanation)
			}
		}
	}

	if summary.TotalFeedback > 0 {
		for name, count := range counts {
			summary.VariantPreferences[name] = Preference{
				Count:      count,
				Percentage: roundPercent(count, summary.TotalFeedback),
			}
		}
	}

	best := 0
	for name, count := range counts {
		if count > best {
			best = count
			summary.MostPreferred = name
		}
	}

	if len(explanations) > maxSampleExplanations {
		explanations = explanations[:maxSampleExplanations]
	}
	summary.SampleExplanations = explanations

	return summary
}

func roundPercent(count, total int) float64 {
	return math.Round(float64(count)/float64(total)*1000) / 10
}

// ResultsStore writes one JSON record per experiment run.
type ResultsStore struct {
	baseDir string
}

// NewResultsStore roots the store at baseDir (created on first save).
func NewResultsStore(baseDir string) *ResultsStore {
	return &ResultsStore{baseDir: baseDir}
}

// Save persists a complete record named by its experiment ID and returns the
// file path. The summary is computed here so the persisted record is always
// internally consistent.
func (s *ResultsStore) Save(cfg Config, results []EntryResult) (string, error) {
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return "", fmt.Errorf("creating experiments directory: %w", err)
	}

	totalSegments := 0
	for _, r := range results {
		totalSegments += len(r.SegmentResults)
	}

	record := Record{
		Metadata: Metadata{
			ExperimentID:           cfg.ID,
			Timestamp:              time.Now(),
			TotalEntriesProcessed:  len(results),
			TotalSegmentsProcessed: totalSegments,
			Config:                 cfg,
		},
		Results: results,
		Summary: Summarize(results),
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.baseDir, cfg.ID+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing experiment record: %w", err)
	}
	return path, nil
}

// Load reads a previously saved record by experiment ID.
func (s *ResultsStore) Load(id string) (*Record, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id+".json"))
	if err != nil {
		return nil, err
	}
	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decoding experiment record %s: %w", id, err)
	}
	return &record, nil
}
