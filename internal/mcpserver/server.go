// Package mcpserver exposes the journal over the Model Context Protocol so
// AI tools can list, read, search, and create entries via JSON-RPC 2.0 over
// stdio.
package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/nvandessel/jrn/internal/journal"
	"github.com/nvandessel/jrn/internal/models"
	"github.com/nvandessel/jrn/internal/textutil"
)

// Config configures the MCP server identity and backing journal.
type Config struct {
	Name    string
	Version string
}

// Server wraps an MCP server bound to a journal service.
type Server struct {
	server  *mcp.Server
	service *journal.Service
}

// NewServer registers the journal tools on a fresh MCP server.
func NewServer(cfg *Config, service *journal.Service) *Server {
	s := &Server{
		server:  mcp.NewServer(&mcp.Implementation{Name: cfg.Name, Version: cfg.Version}, nil),
		service: service,
	}

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "journal_list",
		Description: "List journal entries, newest first",
	}, s.handleList)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "journal_show",
		Description: "Show a journal entry by ID or unique ID prefix",
	}, s.handleShow)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "journal_search",
		Description: "Search journal entries by title or content",
	}, s.handleSearch)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "journal_create",
		Description: "Create a new journal entry",
	}, s.handleCreate)

	return s
}

// Run serves MCP over stdio until the client disconnects or ctx is done.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// EntrySummary is the compact entry representation returned by list/search.
type EntrySummary struct {
	ID        string   `json:"id"`
	Title     string   `json:"title,omitempty"`
	CreatedAt string   `json:"created_at"`
	Preview   string   `json:"preview"`
	Tags      []string `json:"tags,omitempty"`
}

func summarize(e *models.Entry) EntrySummary {
	return EntrySummary{
		ID:        e.ID,
		Title:     e.Title,
		CreatedAt: e.CreatedAt.Format("2006-01-02 15:04:05"),
		Preview:   textutil.Preview(e.Content, 80),
		Tags:      e.Tags,
	}
}

type listArgs struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of entries to return, 0 means all"`
}

type listResult struct {
	Entries []EntrySummary `json:"entries"`
	Count   int            `json:"count"`
}

func (s *Server) handleList(ctx context.Context, req *mcp.CallToolRequest, args listArgs) (*mcp.CallToolResult, listResult, error) {
	entries, err := s.service.ListEntries(args.Limit)
	if err != nil {
		return nil, listResult{}, err
	}

	out := listResult{Entries: make([]EntrySummary, 0, len(entries)), Count: len(entries)}
	for _, e := range entries {
		out.Entries = append(out.Entries, summarize(e))
	}
	return nil, out, nil
}

type showArgs struct {
	ID string `json:"id" jsonschema:"entry ID or unique ID prefix"`
}

type showResult struct {
	Entry *models.Entry `json:"entry"`
}

func (s *Server) handleShow(ctx context.Context, req *mcp.CallToolRequest, args showArgs) (*mcp.CallToolResult, showResult, error) {
	id, err := s.service.ResolveID(args.ID)
	if err != nil {
		return nil, showResult{}, err
	}
	entry, err := s.service.GetEntry(id)
	if err != nil {
		return nil, showResult{}, err
	}
	return nil, showResult{Entry: entry}, nil
}

type searchArgs struct {
	Query string `json:"query" jsonschema:"substring to match in title or content"`
}

func (s *Server) handleSearch(ctx context.Context, req *mcp.CallToolRequest, args searchArgs) (*mcp.CallToolResult, listResult, error) {
	if args.Query == "" {
		return nil, listResult{}, fmt.Errorf("query is required")
	}
	entries, err := s.service.SearchEntries(args.Query)
	if err != nil {
		return nil, listResult{}, err
	}

	out := listResult{Entries: make([]EntrySummary, 0, len(entries)), Count: len(entries)}
	for _, e := range entries {
		out.Entries = append(out.Entries, summarize(e))
	}
	return nil, out, nil
}

type createArgs struct {
	Content string   `json:"content" jsonschema:"entry body text"`
	Title   string   `json:"title,omitempty" jsonschema:"optional entry title"`
	Tags    []string `json:"tags,omitempty" jsonschema:"optional tags"`
}

type createResult struct {
	ID      string `json:"id"`
	ShortID string `json:"short_id"`
}

func (s *Server) handleCreate(ctx context.Context, req *mcp.CallToolRequest, args createArgs) (*mcp.CallToolResult, createResult, error) {
	entry, err := s.service.CreateEntry(args.Content, args.Title, args.Tags)
	if err != nil {
		return nil, createResult{}, err
	}
	return nil, createResult{ID: entry.ID, ShortID: entry.ShortID()}, nil
}
