package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIClient uses the Chat Completions API. Pointing BaseURL at a local
// server's /v1 endpoint (Ollama, LM Studio) works the same as the hosted API.
type OpenAIClient struct {
	client      openai.Client
	model       string
	temperature float64
}

// NewOpenAIClient builds a Chat Completions client from cfg.
func NewOpenAIClient(cfg Config) *OpenAIClient {
	var opts []option.RequestOption
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	model := cfg.Model
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAIClient{
		client:      openai.NewClient(opts...),
		model:       model,
		temperature: cfg.Temperature,
	}
}

// Name identifies the provider for logging and experiment provenance.
func (c *OpenAIClient) Name() string { return "openai" }

// Generate sends a chat completion with an optional system message and
// returns the assistant text.
func (c *OpenAIClient) Generate(ctx context.Context, prompt, system string) (string, error) {
	var messages []openai.ChatCompletionMessageParamUnion
	if system != "" {
		messages = append(messages, openai.SystemMessage(system))
	}
	messages = append(messages, openai.UserMessage(prompt))

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.model),
		Messages: messages,
	}
	if c.temperature > 0 {
		params.Temperature = openai.Float(c.temperature)
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
