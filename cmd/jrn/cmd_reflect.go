package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nvandessel/jrn/internal/reflection"
)

func newReflectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reflect <entry-id>",
		Short: "Generate an AI reflection prompt for an entry",
		Long: `Generate a reflection question for a journal entry using the configured
language-model server. The --strategy flag picks the prompt template; run
"jrn strategies" to see what is available.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			strategy, _ := cmd.Flags().GetString("strategy")

			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			id, err := e.service.ResolveID(args[0])
			if err != nil {
				return err
			}
			entry, err := e.service.GetEntry(id)
			if err != nil {
				return err
			}

			client, err := e.newLLMClient()
			if err != nil {
				return err
			}

			result, err := reflection.NewService(client).Generate(cmd.Context(), entry.Content, strategy)
			if err != nil {
				return err
			}

			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				printJSON(result)
				return nil
			}

			headerf("Reflection prompt (%s):", result.Strategy)
			fmt.Println()
			fmt.Println(result.Prompt)
			return nil
		},
	}

	cmd.Flags().String("strategy", reflection.DefaultStrategy, "Prompt strategy to use")

	return cmd
}

func newStrategiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List available reflection strategies",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := reflection.Strategies()

			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				printJSON(map[string]any{"strategies": names, "default": reflection.DefaultStrategy})
				return nil
			}

			headerf("Available strategies:")
			for _, name := range names {
				marker := " "
				if name == reflection.DefaultStrategy {
					marker = "*"
				}
				fmt.Printf(" %s %s\n", marker, name)
			}
			fmt.Println(strings.Repeat("-", 30))
			fmt.Println("* = default")
			return nil
		},
	}
}
