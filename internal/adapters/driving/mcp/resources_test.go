package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docgrep/internal/core/domain"
)

func TestExtractDocumentID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid document URI",
			uri:      "docgrep://documents/doc-456",
			expected: "doc-456",
		},
		{
			name:     "invalid prefix",
			uri:      "file://documents/doc-456",
			expected: "",
		},
		{
			name:     "list URI",
			uri:      "docgrep://documents",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractDocumentID(tt.uri))
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleDocumentsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns documents", func(t *testing.T) {
		docs := &mockDocumentService{documents: []*domain.Document{
			domain.NewDocument("doc-1", "/path/readme.md", "readme.md", "# hi"),
			domain.NewDocument("doc-2", "/path/guide.md", "guide.md", "text"),
		}}
		server := newTestServer(t, nil, docs)

		result, err := server.handleDocumentsResource(ctx, makeReadResourceRequest("docgrep://documents"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, "doc-1")
		assert.Contains(t, result.Contents[0].Text, "readme.md")
		assert.Contains(t, result.Contents[0].Text, "doc-2")
	})

	t.Run("handles empty list", func(t *testing.T) {
		server := newTestServer(t, nil, &mockDocumentService{})

		result, err := server.handleDocumentsResource(ctx, makeReadResourceRequest("docgrep://documents"))

		require.NoError(t, err)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns error on list failure", func(t *testing.T) {
		server := newTestServer(t, nil, &mockDocumentService{err: errors.New("storage error")})

		_, err := server.handleDocumentsResource(ctx, makeReadResourceRequest("docgrep://documents"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing documents")
	})
}

func TestServer_handleDocumentContentResource(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid URI returns not found", func(t *testing.T) {
		server := newTestServer(t, nil, &mockDocumentService{})

		_, err := server.handleDocumentContentResource(ctx, makeReadResourceRequest("docgrep://invalid/uri"))

		require.Error(t, err)
	})

	t.Run("returns content", func(t *testing.T) {
		doc := domain.NewDocument("doc-123", "/path/a.md", "a.md", "# Hello\r\n\r\nBody\n")
		doc.Metadata = map[string]any{"mime_type": "text/markdown"}
		server := newTestServer(t, nil, &mockDocumentService{documents: []*domain.Document{doc}})

		result, err := server.handleDocumentContentResource(ctx, makeReadResourceRequest("docgrep://documents/doc-123"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "# Hello\n\nBody", result.Contents[0].Text)
		assert.Equal(t, "text/markdown", result.Contents[0].MIMEType)
	})

	t.Run("missing document", func(t *testing.T) {
		server := newTestServer(t, nil, &mockDocumentService{})

		_, err := server.handleDocumentContentResource(ctx, makeReadResourceRequest("docgrep://documents/nope"))

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Contains(t, err.Error(), "getting document")
	})
}
