package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nvandessel/jrn/internal/config"
	"github.com/nvandessel/jrn/internal/journal"
	"github.com/nvandessel/jrn/internal/llm"
	"github.com/nvandessel/jrn/internal/logging"
	"github.com/nvandessel/jrn/internal/storage"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "jrn",
		Short: "jrn - local AI journaling",
		Long: `jrn manages a local journal with AI-assisted reflection.

It stores free-text entries with metadata, imports entries from markdown
files, generates reflection prompts through a local language-model server,
and runs interactive experiments comparing prompt strategies.`,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON (for tool consumption)")
	rootCmd.PersistentFlags().String("data", "data", "Data directory")

	rootCmd.AddCommand(
		newVersionCmd(),
		newCreateCmd(),
		newListCmd(),
		newShowCmd(),
		newEditCmd(),
		newDeleteCmd(),
		newSearchCmd(),
		newImportCmd(),
		newReflectCmd(),
		newStrategiesCmd(),
		newExperimentCmd(),
		newMCPServerCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				printJSON(map[string]string{"version": version})
			} else {
				fmt.Printf("jrn version %s\n", version)
			}
		},
	}
}

// env bundles everything a command needs: config, journal service, and the
// file logger. close must be deferred by the caller.
type env struct {
	dataDir string
	cfg     config.Config
	service *journal.Service
	log     *zap.Logger
	close   func()
}

func openEnv(cmd *cobra.Command) (*env, error) {
	dataDir, _ := cmd.Flags().GetString("data")

	cfg, err := config.Load(dataDir)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(cfg.Storage, dataDir)
	if err != nil {
		return nil, err
	}

	var logPath string
	if cfg.LogFile != "" {
		logPath = filepath.Join(dataDir, cfg.LogFile)
	}
	log := logging.New(logPath)

	return &env{
		dataDir: dataDir,
		cfg:     cfg,
		service: journal.NewService(store, log),
		log:     log,
		close: func() {
			_ = log.Sync()
			_ = store.Close()
		},
	}, nil
}

// newLLMClient builds the configured provider for commands that talk to the
// model server.
func (e *env) newLLMClient() (llm.Client, error) {
	cfg := llm.Config{
		Provider: e.cfg.Provider,
		Timeout:  time.Duration(e.cfg.RequestTimeout),
	}
	switch e.cfg.Provider {
	case "openai":
		cfg.BaseURL = e.cfg.OpenAI.BaseURL
		cfg.APIKey = e.cfg.OpenAI.APIKey
		cfg.Model = e.cfg.OpenAI.Model
		cfg.Temperature = e.cfg.OpenAI.Temperature
	default:
		cfg.BaseURL = e.cfg.Ollama.URL
		cfg.Model = e.cfg.Ollama.Model
		cfg.Temperature = e.cfg.Ollama.Temperature
	}
	return llm.New(cfg)
}
