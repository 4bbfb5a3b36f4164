// Package reflection generates AI reflection prompts for journal entries.
// Each strategy is a template with a {content} placeholder; all strategies
// share one system prompt so experiments can compare templates in isolation.
package reflection

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/nvandessel/jrn/internal/llm"
	"github.com/nvandessel/jrn/internal/textutil"
)

// SystemPrompt frames the model as a journaling coach. It is captured into
// experiment records for provenance, so changing it invalidates comparisons
// against older experiment files.
const SystemPrompt = `You are an expert journaling coach who helps people develop deeper self-awareness through thoughtful reflection. You generate questions that are:
- Empathetic and non-judgmental
- Specific to the person's situation
- Designed to uncover insights and patterns
- Encouraging of emotional exploration

Generate exactly one thoughtful follow-up question based on the journal entry provided.`

// ContentPlaceholder is the substitution token in strategy templates.
const ContentPlaceholder = "{content}"

// DefaultStrategy is used when the caller does not pick one.
const DefaultStrategy = "empathetic_v1"

// strategies maps production strategy names to their templates.
var strategies = map[string]string{
	"empathetic_v1": "Here is a journal entry: '{content}'\n\nGenerate a single, compassionate follow-up question that would help this person explore their emotions and feelings more deeply. Make it specific to their situation.",

	"analytical_v1": "Here is a journal entry: '{content}'\n\nGenerate a single, thoughtful question that helps this person identify patterns, root causes, or logical connections in their experience.",

	"socratic_v1": "Here is a journal entry: '{content}'\n\nGenerate a single, thought-provoking question that helps this person examine their assumptions or see their situation from a new perspective.",
}

// Strategies returns the available strategy names, sorted.
func Strategies() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render substitutes content into a template's {content} placeholder.
func Render(template, content string) string {
	return strings.ReplaceAll(template, ContentPlaceholder, content)
}

// Result is one generated reflection prompt with provenance metadata.
type Result struct {
	Prompt       string    `json:"reflection_prompt"`
	Strategy     string    `json:"strategy_used"`
	Timestamp    time.Time `json:"timestamp"`
	EntryPreview string    `json:"entry_preview"`
}

// Service generates reflection prompts through an LLM client.
type Service struct {
	client llm.Client
}

// NewService wraps an LLM client.
func NewService(client llm.Client) *Service {
	return &Service{client: client}
}

// Generate renders the named strategy against content and asks the model for
// a single reflection question. The returned prompt is whitespace-trimmed.
func (s *Service) Generate(ctx context.Context, content, strategy string) (*Result, error) {
	if strategy == "" {
		strategy = DefaultStrategy
	}
	template, ok := strategies[strategy]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q (available: %s)",
			strategy, strings.Join(Strategies(), ", "))
	}

	prompt, err := s.client.Generate(ctx, Render(template, content), SystemPrompt)
	if err != nil {
		return nil, fmt.Errorf("generating reflection prompt: %w", err)
	}

	return &Result{
		Prompt:       strings.TrimSpace(prompt),
		Strategy:     strategy,
		Timestamp:    time.Now(),
		EntryPreview: textutil.Excerpt(content, 100),
	}, nil
}
