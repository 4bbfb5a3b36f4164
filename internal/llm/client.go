// Package llm provides the language-model client used for reflection prompt
// generation. Two providers are supported: a native Ollama client and an
// OpenAI-compatible client that also works against local servers exposing
// the /v1 API (Ollama, LM Studio).
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrUnknownProvider is returned by New for an unrecognized provider name.
var ErrUnknownProvider = errors.New("unknown llm provider")

// Client generates text from a user prompt and an optional system prompt.
// Calls are synchronous and blocking; cancellation comes from ctx.
type Client interface {
	Generate(ctx context.Context, prompt, system string) (string, error)
	Name() string
}

// Config selects and configures a provider.
type Config struct {
	// Provider is "ollama" (default) or "openai".
	Provider string

	// BaseURL of the model server, e.g. http://localhost:11434.
	BaseURL string

	// Model name passed to the server.
	Model string

	// Temperature for sampling. Zero means server default.
	Temperature float64

	// APIKey for OpenAI-compatible servers. Local servers usually accept
	// any non-empty value.
	APIKey string

	// Timeout for a single generation call. Zero disables the client-side
	// timeout entirely; a hung server then stalls the caller.
	Timeout time.Duration
}

// New builds a client for the configured provider.
func New(cfg Config) (Client, error) {
	switch cfg.Provider {
	case "", "ollama":
		return NewOllamaClient(cfg), nil
	case "openai":
		return NewOpenAIClient(cfg), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}
