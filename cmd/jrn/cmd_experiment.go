package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nvandessel/jrn/internal/experiment"
	"github.com/nvandessel/jrn/internal/reflection"
)

func newExperimentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "experiment",
		Short: "Run an interactive prompt-variant experiment",
		Long: `Run an A/B/N experiment comparing reflection prompt templates.

Entries are segmented, every variant is generated up front through the
model server, and you are walked through each segment to pick the variant
you prefer. Results are written under <data>/experiments/.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, _ := cmd.Flags().GetString("entries")
			all, _ := cmd.Flags().GetBool("all")
			recent, _ := cmd.Flags().GetInt("recent")
			targetWords, _ := cmd.Flags().GetInt("target-words")

			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			// The config file's target takes over when the flag is unset.
			if !cmd.Flags().Changed("target-words") && e.cfg.Experiment.TargetWords > 0 {
				targetWords = e.cfg.Experiment.TargetWords
			}

			client, err := e.newLLMClient()
			if err != nil {
				return err
			}

			generator := experiment.NewGenerator(
				client, reflection.SystemPrompt, experiment.DefaultTemplates(), os.Stdout, e.log)
			collector := experiment.NewCollector(
				experiment.NewConsolePrompter(os.Stdin, os.Stdout), os.Stdout)
			store := experiment.NewResultsStore(filepath.Join(e.dataDir, "experiments"))

			exp := experiment.NewExperimenter(e.service, generator, collector, store, os.Stdout, e.log)
			return exp.Run(cmd.Context(), experiment.Options{
				Entries:     entries,
				All:         all,
				Recent:      recent,
				TargetWords: targetWords,
			})
		},
	}

	cmd.Flags().String("entries", "", "Comma-separated entry IDs or ID prefixes")
	cmd.Flags().Bool("all", false, "Experiment on all entries")
	cmd.Flags().Int("recent", 0, "Experiment on the N most recent entries")
	cmd.Flags().Int("target-words", experiment.DefaultTargetWords, "Target words per segment")
	cmd.MarkFlagsMutuallyExclusive("entries", "all", "recent")

	return cmd
}
