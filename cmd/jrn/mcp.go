package main

import (
	"github.com/spf13/cobra"

	"github.com/nvandessel/jrn/internal/mcpserver"
)

func newMCPServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp-server",
		Short: "Run the MCP server (stdio transport)",
		Long: `Run a Model Context Protocol server over stdio, exposing the journal
to AI tools as journal_list, journal_show, journal_search, and
journal_create.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			server := mcpserver.NewServer(&mcpserver.Config{
				Name:    "jrn",
				Version: version,
			}, e.service)

			return server.Run(cmd.Context())
		},
	}
}
