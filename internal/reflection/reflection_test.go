package reflection

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"testing"
)

type stubClient struct {
	reply      string
	err        error
	lastPrompt string
	lastSystem string
}

func (c *stubClient) Generate(ctx context.Context, prompt, system string) (string, error) {
	c.lastPrompt = prompt
	c.lastSystem = system
	return c.reply, c.err
}

func (c *stubClient) Name() string { return "stub" }

func TestStrategies(t *testing.T) {
	got := Strategies()
	want := []string{"analytical_v1", "empathetic_v1", "socratic_v1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Strategies() = %v, want %v sorted", got, want)
	}
}

func TestRender(t *testing.T) {
	got := Render("Entry: '{content}' and again: {content}", "my day")
	want := "Entry: 'my day' and again: my day"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestServiceGenerate(t *testing.T) {
	client := &stubClient{reply: "  What made today feel heavy?  \n"}
	svc := NewService(client)

	content := "Today was exhausting and I could not say why."
	result, err := svc.Generate(context.Background(), content, "empathetic_v1")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if result.Prompt != "What made today feel heavy?" {
		t.Errorf("Prompt = %q, want trimmed reply", result.Prompt)
	}
	if result.Strategy != "empathetic_v1" {
		t.Errorf("Strategy = %q", result.Strategy)
	}
	if result.Timestamp.IsZero() {
		t.Error("Timestamp not stamped")
	}
	if result.EntryPreview != content {
		t.Errorf("EntryPreview = %q, want short content verbatim", result.EntryPreview)
	}

	if !strings.Contains(client.lastPrompt, content) {
		t.Errorf("prompt sent to model missing entry content: %q", client.lastPrompt)
	}
	if client.lastSystem != SystemPrompt {
		t.Errorf("system prompt = %q, want the shared system prompt", client.lastSystem)
	}
}

func TestServiceGenerateDefaultStrategy(t *testing.T) {
	svc := NewService(&stubClient{reply: "q"})
	result, err := svc.Generate(context.Background(), "content", "")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if result.Strategy != DefaultStrategy {
		t.Errorf("Strategy = %q, want default %q", result.Strategy, DefaultStrategy)
	}
}

func TestServiceGenerateUnknownStrategy(t *testing.T) {
	svc := NewService(&stubClient{reply: "q"})
	_, err := svc.Generate(context.Background(), "content", "mystery_v9")
	if err == nil {
		t.Fatal("expected error for an unknown strategy")
	}
	if !strings.Contains(err.Error(), "mystery_v9") || !strings.Contains(err.Error(), "empathetic_v1") {
		t.Errorf("err = %v, want the bad name and the available strategies", err)
	}
}

func TestServiceGenerateClientError(t *testing.T) {
	svc := NewService(&stubClient{err: fmt.Errorf("connection refused")})
	if _, err := svc.Generate(context.Background(), "content", ""); err == nil {
		t.Fatal("expected client error to propagate")
	}
}

func TestServiceGenerateLongEntryPreviewTruncated(t *testing.T) {
	svc := NewService(&stubClient{reply: "q"})
	long := strings.Repeat("x", 300)

	result, err := svc.Generate(context.Background(), long, "")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(result.EntryPreview) != 103 || !strings.HasSuffix(result.EntryPreview, "...") {
		t.Errorf("EntryPreview length = %d, want 100 chars plus ellipsis", len(result.EntryPreview))
	}
}
