// Package config loads jrn's configuration: defaults, an optional
// <data>/jrn.yaml file, an optional .env file, and JRN_* environment
// overrides, applied in that order.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ConfigFile is the name of the optional config file inside the data directory.
const ConfigFile = "jrn.yaml"

// Duration wraps time.Duration so the config file can use strings like "30s".
type Duration time.Duration

// UnmarshalYAML parses a Go duration string; an empty string means zero.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("invalid duration %q: want a string like 30s", value.Value)
	}
	if s == "" {
		*d = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// OllamaConfig configures the native Ollama provider.
type OllamaConfig struct {
	URL         string  `yaml:"url"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
}

// OpenAIConfig configures the OpenAI-compatible provider.
type OpenAIConfig struct {
	BaseURL     string  `yaml:"base_url"`
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
}

// ExperimentConfig holds experiment tunables.
type ExperimentConfig struct {
	TargetWords int `yaml:"target_words"`
}

// Config is the full tool configuration.
type Config struct {
	// Storage backend: "json" or "sqlite".
	Storage string `yaml:"storage"`

	// Provider: "ollama" or "openai".
	Provider string `yaml:"provider"`

	Ollama     OllamaConfig     `yaml:"ollama"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Experiment ExperimentConfig `yaml:"experiment"`

	// LogFile relative to the data directory; empty disables file logging.
	LogFile string `yaml:"log_file"`

	// RequestTimeout for a single LLM call, as a duration string ("30s",
	// "2m"); zero means no client timeout.
	RequestTimeout Duration `yaml:"request_timeout"`
}

// Default returns the zero-config setup: JSON storage, Ollama on localhost.
func Default() Config {
	return Config{
		Storage:  "json",
		Provider: "ollama",
		Ollama: OllamaConfig{
			URL:   "http://localhost:11434",
			Model: "mistral",
		},
		Experiment: ExperimentConfig{TargetWords: 200},
		LogFile:    "jrn.log",
	}
}

// Load builds the configuration for a data directory. A missing config file
// and a missing .env are both fine; a malformed config file is an error.
func Load(dataDir string) (Config, error) {
	cfg := Default()

	// .env is optional and only feeds the environment overrides below.
	_ = godotenv.Load()

	path := filepath.Join(dataDir, ConfigFile)
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString("JRN_STORAGE", &cfg.Storage)
	setString("JRN_PROVIDER", &cfg.Provider)
	setString("JRN_OLLAMA_URL", &cfg.Ollama.URL)
	setString("JRN_OLLAMA_MODEL", &cfg.Ollama.Model)
	setString("JRN_OPENAI_BASE_URL", &cfg.OpenAI.BaseURL)
	setString("JRN_OPENAI_API_KEY", &cfg.OpenAI.APIKey)
	setString("JRN_OPENAI_MODEL", &cfg.OpenAI.Model)

	// One temperature knob covers both providers.
	if v := os.Getenv("JRN_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Ollama.Temperature = f
			cfg.OpenAI.Temperature = f
		}
	}
}
