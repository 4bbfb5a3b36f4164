package experiment

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

// stubClient returns a canned reply per template-specific prompt, or fails
// when the generation prompt contains failOn.
type stubClient struct {
	reply  string
	failOn string
}

func (c *stubClient) Generate(ctx context.Context, prompt, system string) (string, error) {
	if c.failOn != "" && strings.Contains(prompt, c.failOn) {
		return "", fmt.Errorf("model unavailable")
	}
	return c.reply, nil
}

func (c *stubClient) Name() string { return "stub" }

func TestGeneratorGenerate(t *testing.T) {
	templates := map[string]string{
		"warm":  "Warm take on: {content}",
		"cold":  "Cold take on: {content}",
		"sharp": "Sharp take on: {content}",
	}
	configs := []VariantConfig{
		{Name: "warm_v1", Kind: VariantKindExperimental, TemplateKey: "warm"},
		{Name: "cold_v1", Kind: VariantKindExperimental, TemplateKey: "cold"},
		{Name: "sharp_v1", Kind: VariantKindExperimental, TemplateKey: "sharp"},
	}

	var out strings.Builder
	g := NewGenerator(&stubClient{reply: "  What do you feel?  "}, "system", templates, &out, nil)

	variants := g.Generate(context.Background(), "today was hard", configs)
	if len(variants) != 3 {
		t.Fatalf("got %d variants, want 3", len(variants))
	}

	for i, cfg := range configs {
		v := variants[i]
		if v.Name != cfg.Name {
			t.Errorf("variant %d name = %q, want %q", i, v.Name, cfg.Name)
		}
		if v.Kind != VariantKindExperimental {
			t.Errorf("variant %d kind = %q, want %q", i, v.Kind, VariantKindExperimental)
		}
		if v.TemplateKey != cfg.TemplateKey {
			t.Errorf("variant %d template key = %q, want %q", i, v.TemplateKey, cfg.TemplateKey)
		}
		if v.Prompt != "What do you feel?" {
			t.Errorf("variant %d prompt = %q, want trimmed reply", i, v.Prompt)
		}
		if !strings.Contains(v.GenerationPrompt, "today was hard") {
			t.Errorf("variant %d generation prompt missing segment text: %q", i, v.GenerationPrompt)
		}
	}
}

func TestGeneratorGenerateOmitsFailures(t *testing.T) {
	templates := map[string]string{
		"warm":  "Warm take on: {content}",
		"cold":  "Cold take on: {content}",
		"sharp": "Sharp take on: {content}",
	}
	configs := []VariantConfig{
		{Name: "warm_v1", Kind: VariantKindExperimental, TemplateKey: "warm"},
		{Name: "cold_v1", Kind: VariantKindExperimental, TemplateKey: "cold"},
		{Name: "sharp_v1", Kind: VariantKindExperimental, TemplateKey: "sharp"},
	}

	var out strings.Builder
	g := NewGenerator(&stubClient{reply: "ok", failOn: "Cold take"}, "system", templates, &out, nil)

	variants := g.Generate(context.Background(), "segment", configs)
	if len(variants) != 2 {
		t.Fatalf("got %d variants, want 2", len(variants))
	}
	if variants[0].Name != "warm_v1" || variants[1].Name != "sharp_v1" {
		t.Errorf("surviving variants = %q, %q; failure should be omitted without reordering",
			variants[0].Name, variants[1].Name)
	}
	if !strings.Contains(out.String(), "failed to generate variant cold_v1") {
		t.Errorf("expected warning for cold_v1, got output %q", out.String())
	}
}

func TestGeneratorGenerateMissingTemplate(t *testing.T) {
	configs := []VariantConfig{
		{Name: "ghost_v1", Kind: VariantKindExperimental, TemplateKey: "nonexistent"},
	}

	var out strings.Builder
	g := NewGenerator(&stubClient{reply: "ok"}, "system", map[string]string{}, &out, nil)

	variants := g.Generate(context.Background(), "segment", configs)
	if len(variants) != 0 {
		t.Fatalf("got %d variants, want 0", len(variants))
	}
	if !strings.Contains(out.String(), "ghost_v1") {
		t.Errorf("expected warning naming the variant, got %q", out.String())
	}
}

func TestGeneratorTemplatesReturnsCopy(t *testing.T) {
	templates := map[string]string{"a": "A {content}"}
	g := NewGenerator(&stubClient{reply: "ok"}, "sys", templates, &strings.Builder{}, nil)

	got := g.Templates()
	got["a"] = "mutated"

	if g.Templates()["a"] != "A {content}" {
		t.Error("mutating the returned map changed the generator's templates")
	}
}
