package driven

import (
	"context"

	"github.com/custodia-labs/docgrep/internal/core/domain"
)

// DocumentStore holds the set of open documents.
// List returns documents in the order they were first opened.
type DocumentStore interface {
	// SaveDocument stores a document, replacing any with the same ID.
	// A replaced document keeps its position in open order.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// GetDocumentByURI retrieves a document by its URI.
	GetDocumentByURI(ctx context.Context, uri string) (*domain.Document, error)

	// DeleteDocument removes a document.
	DeleteDocument(ctx context.Context, id string) error

	// ListDocuments returns all open documents in open order.
	ListDocuments(ctx context.Context) ([]*domain.Document, error)
}
