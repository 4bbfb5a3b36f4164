package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

func TestOllamaGenerate(t *testing.T) {
	var gotReq generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("path = %q, want /api/generate", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		json.NewEncoder(w).Encode(generateResponse{Response: "What is really bothering you?"})
	}))
	defer server.Close()

	client := NewOllamaClient(Config{BaseURL: server.URL, Model: "mistral", Temperature: 0.7})

	got, err := client.Generate(context.Background(), "the prompt", "the system prompt")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "What is really bothering you?" {
		t.Errorf("response = %q", got)
	}

	if gotReq.Model != "mistral" {
		t.Errorf("Model = %q", gotReq.Model)
	}
	if gotReq.Prompt != "the prompt" || gotReq.System != "the system prompt" {
		t.Errorf("Prompt/System = %q / %q", gotReq.Prompt, gotReq.System)
	}
	if gotReq.Stream {
		t.Error("Stream = true, want false")
	}
	if gotReq.Options == nil || gotReq.Options.Temperature != 0.7 {
		t.Errorf("Options = %+v, want temperature 0.7", gotReq.Options)
	}
}

func TestOllamaGenerateZeroTemperatureOmitsOptions(t *testing.T) {
	var rawBody map[string]json.RawMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&rawBody); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		json.NewEncoder(w).Encode(generateResponse{Response: "ok"})
	}))
	defer server.Close()

	client := NewOllamaClient(Config{BaseURL: server.URL})
	if _, err := client.Generate(context.Background(), "p", ""); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, present := rawBody["options"]; present {
		t.Error("options should be omitted at zero temperature")
	}
	if _, present := rawBody["system"]; present {
		t.Error("system should be omitted when empty")
	}
}

func TestOllamaGenerateServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model 'mistral' not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	client := NewOllamaClient(Config{BaseURL: server.URL})
	_, err := client.Generate(context.Background(), "p", "")
	if err == nil {
		t.Fatal("expected error for a 404")
	}
	if !strings.Contains(err.Error(), "404") || !strings.Contains(err.Error(), "not found") {
		t.Errorf("err = %v, want status and body detail", err)
	}
}

func TestOllamaGenerateConnectionRefused(t *testing.T) {
	// A server that is already closed refuses connections.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewOllamaClient(Config{BaseURL: server.URL})
	if _, err := client.Generate(context.Background(), "p", ""); err == nil {
		t.Fatal("expected error when the server is unreachable")
	}
}

func TestOllamaListModels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("path = %q, want /api/tags", r.URL.Path)
		}
		w.Write([]byte(`{"models":[{"name":"mistral:latest"},{"name":"llama3:8b"}]}`))
	}))
	defer server.Close()

	client := NewOllamaClient(Config{BaseURL: server.URL})
	names, err := client.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"mistral:latest", "llama3:8b"}) {
		t.Errorf("names = %v", names)
	}
}

func TestNewOllamaClientDefaults(t *testing.T) {
	client := NewOllamaClient(Config{})
	if client.baseURL != defaultOllamaURL {
		t.Errorf("baseURL = %q, want %q", client.baseURL, defaultOllamaURL)
	}
	if client.model != defaultOllamaModel {
		t.Errorf("model = %q, want %q", client.model, defaultOllamaModel)
	}
}

func TestNewOllamaClientTrimsTrailingSlash(t *testing.T) {
	client := NewOllamaClient(Config{BaseURL: "http://host:11434/"})
	if client.baseURL != "http://host:11434" {
		t.Errorf("baseURL = %q, want trailing slash removed", client.baseURL)
	}
}
