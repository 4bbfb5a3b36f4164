package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nvandessel/jrn/internal/journal"
	"github.com/nvandessel/jrn/internal/models"
	"github.com/nvandessel/jrn/internal/textutil"
)

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func newCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new journal entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			content, _ := cmd.Flags().GetString("content")
			title, _ := cmd.Flags().GetString("title")
			tags, _ := cmd.Flags().GetString("tags")

			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			entry, err := e.service.CreateEntry(content, title, splitTags(tags))
			if err != nil {
				return err
			}

			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				printJSON(entry)
			} else {
				fmt.Printf("Created entry %s\n", entry.ShortID())
			}
			return nil
		},
	}

	cmd.Flags().String("content", "", "Entry content")
	cmd.Flags().String("title", "", "Entry title")
	cmd.Flags().String("tags", "", "Comma-separated tags")

	return cmd
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journal entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			entries, err := e.service.ListEntries(limit)
			if err != nil {
				return err
			}

			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				printJSON(map[string]any{"entries": entries, "count": len(entries)})
				return nil
			}

			printEntryTable(entries)
			return nil
		},
	}

	cmd.Flags().Int("limit", 50, "Maximum number of entries to show")

	return cmd
}

func printEntryTable(entries []*models.Entry) {
	if len(entries) == 0 {
		fmt.Println("No journal entries found.")
		return
	}

	headerf("%-8s | %-10s | %-20s | %s", "ID", "Date", "Title", "Preview")
	fmt.Println(strings.Repeat("-", 80))
	for _, entry := range entries {
		title := entry.Title
		if title == "" {
			title = "(no title)"
		}
		fmt.Printf("%-8s | %-10s | %-20s | %s\n",
			entry.ShortID(),
			entry.CreatedAt.Format("2006-01-02"),
			textutil.Truncate(title, 20),
			textutil.Preview(entry.Content, 50))
	}
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <entry-id>",
		Short: "Show a specific journal entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				printJSON(entry)
				return nil
			}

			title := entry.Title
			if title == "" {
				title = "(no title)"
			}
			tags := "(no tags)"
			if len(entry.Tags) > 0 {
				tags = strings.Join(entry.Tags, ", ")
			}
			fmt.Printf("ID: %s\n", entry.ShortID())
			fmt.Printf("Title: %s\n", title)
			fmt.Printf("Created: %s\n", entry.CreatedAt.Format("2006-01-02 15:04:05"))
			fmt.Printf("Updated: %s\n", entry.UpdatedAt.Format("2006-01-02 15:04:05"))
			fmt.Printf("Tags: %s\n", tags)
			fmt.Println(strings.Repeat("-", 50))
			fmt.Println(entry.Content)
			return nil
		},
	}
}

func newEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <entry-id>",
		Short: "Edit an existing journal entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			id, err := e.service.ResolveID(args[0])
			if err != nil {
				return err
			}

			var upd journal.EntryUpdate
			if cmd.Flags().Changed("content") {
				content, _ := cmd.Flags().GetString("content")
				upd.Content = &content
			}
			if cmd.Flags().Changed("title") {
				title, _ := cmd.Flags().GetString("title")
				upd.Title = &title
			}
			if cmd.Flags().Changed("tags") {
				raw, _ := cmd.Flags().GetString("tags")
				tags := splitTags(raw)
				if tags == nil {
					tags = []string{}
				}
				upd.Tags = &tags
			}

			entry, err := e.service.UpdateEntry(id, upd)
			if err != nil {
				return err
			}

			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				printJSON(entry)
			} else {
				fmt.Printf("Updated entry %s\n", entry.ShortID())
			}
			return nil
		},
	}

	cmd.Flags().String("content", "", "New content")
	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("tags", "", "New comma-separated tags (empty clears)")

	return cmd
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <entry-id>",
		Short: "Delete a journal entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			id, err := e.service.ResolveID(args[0])
			if err != nil {
				return err
			}
			if err := e.service.DeleteEntry(id); err != nil {
				return err
			}

			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				printJSON(map[string]string{"deleted": id})
			} else {
				fmt.Printf("Deleted entry %s\n", shortID(id))
			}
			return nil
		},
	}
}

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search entries by title or content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			entries, err := e.service.SearchEntries(args[0])
			if err != nil {
				return err
			}

			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				printJSON(map[string]any{"entries": entries, "count": len(entries)})
				return nil
			}
			printEntryTable(entries)
			return nil
		},
	}
}

func shortID(id string) string {
	if len(id) < 8 {
		return id
	}
	return id[:8]
}
