package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docgrep/internal/core/domain"
)

// defaultMaxResults caps a search when the caller does not.
const defaultMaxResults = 100

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Pattern     string   `json:"pattern" jsonschema:"regular expression; a \\n in the pattern matches across lines"`
	IgnoreCase  bool     `json:"ignore_case,omitempty" jsonschema:"match case-insensitively"`
	MaxResults  int      `json:"max_results,omitempty" jsonschema:"maximum number of matches to return (default 100)"`
	DocumentIDs []string `json:"document_ids,omitempty" jsonschema:"restrict the search to these open documents"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Matches   []MatchOutput `json:"matches"`
	Count     int           `json:"count"`
	Documents int           `json:"documents"`
	Multiline bool          `json:"multiline"`
	Truncated bool          `json:"truncated"`
	Skipped   []string      `json:"skipped,omitempty"`
}

// MatchOutput is a single match. Lines and columns are zero-based.
type MatchOutput struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	StartLine   int    `json:"start_line"`
	StartColumn int    `json:"start_column"`
	EndLine     int    `json:"end_line"`
	EndColumn   int    `json:"end_column"`
	Preview     string `json:"preview"`
}

// OpenInput is the input schema for the open_documents tool.
type OpenInput struct {
	Paths []string `json:"paths" jsonschema:"files or directories to open"`
}

// DocumentOutput describes an open document.
type DocumentOutput struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	URI   string `json:"uri"`
	Lines int    `json:"lines"`
}

// DocumentsOutput is the output schema for tools returning documents.
type DocumentsOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
}

// ListInput is the input schema for the list_documents tool.
type ListInput struct{}

// CloseInput is the input schema for the close_document tool.
type CloseInput struct {
	ID string `json:"id" jsonschema:"id of the document to close"`
}

// CloseOutput is the output schema for the close_document tool.
type CloseOutput struct {
	Closed string `json:"closed"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search the open documents for a regular expression",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "open_documents",
		Description: "Open files or directories as documents so they can be searched",
	}, s.handleOpen)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List the open documents",
	}, s.handleList)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "close_document",
		Description: "Close an open document",
	}, s.handleClose)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	maxResults := input.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	report, err := s.ports.Search.Search(ctx, input.Pattern, domain.SearchOptions{
		IgnoreCase:  input.IgnoreCase,
		MaxResults:  maxResults,
		DocumentIDs: input.DocumentIDs,
	})
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Matches:   make([]MatchOutput, len(report.Matches)),
		Count:     len(report.Matches),
		Documents: report.Documents,
		Multiline: report.Multiline,
		Truncated: report.Truncated,
	}
	for i, m := range report.Matches {
		output.Matches[i] = MatchOutput{
			URI:         m.URI,
			Name:        m.DocumentName,
			StartLine:   m.StartLine,
			StartColumn: m.StartColumn,
			EndLine:     m.EndLine,
			EndColumn:   m.EndColumn,
			Preview:     m.Preview,
		}
	}
	for _, e := range report.Errors {
		output.Skipped = append(output.Skipped, fmt.Sprintf("%s: %v", e.URI, e.Err))
	}

	return nil, output, nil
}

// handleOpen handles the open_documents tool invocation.
func (s *Server) handleOpen(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input OpenInput,
) (*mcp.CallToolResult, DocumentsOutput, error) {
	docs, err := s.ports.Document.Open(ctx, input.Paths)
	if err != nil {
		return nil, DocumentsOutput{}, err
	}
	return nil, documentsOutput(docs), nil
}

// handleList handles the list_documents tool invocation.
func (s *Server) handleList(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListInput,
) (*mcp.CallToolResult, DocumentsOutput, error) {
	docs, err := s.ports.Document.List(ctx)
	if err != nil {
		return nil, DocumentsOutput{}, err
	}
	return nil, documentsOutput(docs), nil
}

// handleClose handles the close_document tool invocation.
func (s *Server) handleClose(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CloseInput,
) (*mcp.CallToolResult, CloseOutput, error) {
	if err := s.ports.Document.Close(ctx, input.ID); err != nil {
		return nil, CloseOutput{}, err
	}
	return nil, CloseOutput{Closed: input.ID}, nil
}

func documentsOutput(docs []*domain.Document) DocumentsOutput {
	out := DocumentsOutput{
		Documents: make([]DocumentOutput, len(docs)),
		Count:     len(docs),
	}
	for i, d := range docs {
		out.Documents[i] = DocumentOutput{
			ID:    d.ID,
			Name:  d.Name,
			URI:   d.URI,
			Lines: d.LineCount(),
		}
	}
	return out
}
