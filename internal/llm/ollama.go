package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nvandessel/jrn/internal/textutil"
)

const (
	defaultOllamaURL   = "http://localhost:11434"
	defaultOllamaModel = "mistral"
)

// OllamaClient talks to an Ollama server's native /api/generate endpoint.
type OllamaClient struct {
	baseURL     string
	model       string
	temperature float64
	httpClient  *http.Client
}

// NewOllamaClient builds a client from cfg, filling in localhost defaults.
func NewOllamaClient(cfg Config) *OllamaClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOllamaURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultOllamaModel
	}
	return &OllamaClient{
		baseURL:     strings.TrimRight(baseURL, "/"),
		model:       model,
		temperature: cfg.Temperature,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
	}
}

// Name identifies the provider for logging and experiment provenance.
func (c *OllamaClient) Name() string { return "ollama" }

type generateOptions struct {
	Temperature float64 `json:"temperature"`
}

type generateRequest struct {
	Model   string           `json:"model"`
	Prompt  string           `json:"prompt"`
	System  string           `json:"system,omitempty"`
	Stream  bool             `json:"stream"`
	Options *generateOptions `json:"options,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Generate sends a non-streaming generation request and returns the raw
// response text. Non-2xx statuses and transport failures are errors.
func (c *OllamaClient) Generate(ctx context.Context, prompt, system string) (string, error) {
	reqBody := generateRequest{
		Model:  c.model,
		Prompt: prompt,
		System: system,
		Stream: false,
	}
	if c.temperature > 0 {
		reqBody.Options = &generateOptions{Temperature: c.temperature}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading ollama response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama returned %s: %s",
			resp.Status, textutil.Truncate(strings.TrimSpace(string(body)), 200))
	}

	var out generateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decoding ollama response: %w", err)
	}
	return out.Response, nil
}

type tagsResponse struct {
	Models []struct {
		Name       string    `json:"name"`
		ModifiedAt time.Time `json:"modified_at"`
	} `json:"models"`
}

// ListModels returns the model names known to the server via /api/tags.
func (c *OllamaClient) ListModels(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama returned %s", resp.Status)
	}

	var out tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding ollama response: %w", err)
	}

	names := make([]string, 0, len(out.Models))
	for _, m := range out.Models {
		names = append(names, m.Name)
	}
	return names, nil
}
