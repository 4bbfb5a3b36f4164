package experiment

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/nvandessel/jrn/internal/llm"
	"github.com/nvandessel/jrn/internal/reflection"
)

// VariantConfig names one prompt strategy to test.
type VariantConfig struct {
	Name        string `json:"name"`
	Kind        string `json:"type"`
	TemplateKey string `json:"template_key"`
}

// Variant is one candidate reflection prompt generated for a segment.
// Immutable once created; always owned by a segment result, never persisted
// on its own.
type Variant struct {
	Name             string `json:"name"`
	Kind             string `json:"type"`
	TemplateKey      string `json:"template_key"`
	GenerationPrompt string `json:"generation_prompt"`
	Prompt           string `json:"prompt"`
}

// Generator produces prompt variants for segments. The template map is
// injected at construction and never mutated, so tests can substitute their
// own template sets deterministically.
type Generator struct {
	client    llm.Client
	system    string
	templates map[string]string
	out       io.Writer
	log       *zap.Logger
}

// NewGenerator builds a Generator. A nil logger is replaced with a no-op.
func NewGenerator(client llm.Client, systemPrompt string, templates map[string]string, out io.Writer, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{
		client:    client,
		system:    systemPrompt,
		templates: templates,
		out:       out,
		log:       log,
	}
}

// System returns the system prompt shared by all variants, for provenance.
func (g *Generator) System() string { return g.system }

// Templates returns a copy of the template map, for provenance.
func (g *Generator) Templates() map[string]string {
	copied := make(map[string]string, len(g.templates))
	for k, v := range g.templates {
		copied[k] = v
	}
	return copied
}

// Generate produces one variant per config, in config order. A failing
// config is warned about and omitted; it never aborts the remaining configs.
// The returned slice may therefore be shorter than configs, including empty.
func (g *Generator) Generate(ctx context.Context, segmentText string, configs []VariantConfig) []Variant {
	variants := make([]Variant, 0, len(configs))
	for _, cfg := range configs {
		variant, err := g.generateOne(ctx, segmentText, cfg)
		if err != nil {
			fmt.Fprintf(g.out, "   Warning: failed to generate variant %s: %v\n", cfg.Name, err)
			g.log.Warn("variant generation failed",
				zap.String("variant", cfg.Name), zap.Error(err))
			continue
		}
		variants = append(variants, variant)
	}
	return variants
}

func (g *Generator) generateOne(ctx context.Context, segmentText string, cfg VariantConfig) (Variant, error) {
	template, ok := g.templates[cfg.TemplateKey]
	if !ok {
		return Variant{}, fmt.Errorf("no template %q", cfg.TemplateKey)
	}

	generationPrompt := reflection.Render(template, segmentText)
	prompt, err := g.client.Generate(ctx, generationPrompt, g.system)
	if err != nil {
		return Variant{}, err
	}

	return Variant{
		Name:             cfg.Name,
		Kind:             cfg.Kind,
		TemplateKey:      cfg.TemplateKey,
		GenerationPrompt: generationPrompt,
		Prompt:           strings.TrimSpace(prompt),
	}, nil
}
