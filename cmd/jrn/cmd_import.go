package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <directory>",
		Short: "Import journal entries from markdown files",
		Long: `Import every *.md file in a directory as a journal entry.

Front matter (title, date, tags) is honored when present. Entries whose date
and content match an existing entry are skipped as duplicates.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			result, err := e.service.ImportFromDirectory(args[0], warnf)
			if err != nil {
				return err
			}

			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				printJSON(map[string]any{
					"imported": result.Imported,
					"skipped":  result.Skipped,
				})
				return nil
			}

			fmt.Println("Import complete:")
			fmt.Printf("  Imported: %d entries\n", len(result.Imported))
			fmt.Printf("  Skipped: %d duplicates\n", result.Skipped)

			if len(result.Imported) > 0 {
				fmt.Println("\nImported entries:")
				for i, entry := range result.Imported {
					if i >= 5 {
						fmt.Printf("  ... and %d more\n", len(result.Imported)-5)
						break
					}
					title := entry.Title
					if title == "" {
						title = "(no title)"
					}
					fmt.Printf("  %s - %s - %s\n",
						entry.ShortID(), entry.CreatedAt.Format("2006-01-02"), title)
				}
			}
			return nil
		},
	}
}
