package driving

import (
	"context"

	"github.com/custodia-labs/docgrep/internal/core/domain"
)

// ClosingFunc is notified before an open document is closed or replaced.
type ClosingFunc func(doc *domain.Document)

// DocumentService manages the set of open documents.
type DocumentService interface {
	// Open loads files and directories as documents.
	// Paths that are already open are returned unchanged.
	Open(ctx context.Context, paths []string) ([]*domain.Document, error)

	// OpenWith is Open with explicit file settings.
	OpenWith(ctx context.Context, paths []string, files domain.FileSettings) ([]*domain.Document, error)

	// OpenText opens caller supplied text as a document.
	OpenText(ctx context.Context, uri, name, text string) (*domain.Document, error)

	// Close closes a document.
	Close(ctx context.Context, id string) error

	// CloseAll closes every document.
	CloseAll(ctx context.Context) error

	// Reload re-reads a document from disk.
	Reload(ctx context.Context, id string) (*domain.Document, error)

	// List returns open documents in open order.
	List(ctx context.Context) ([]*domain.Document, error)

	// Get retrieves an open document by ID.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// ApplyChange applies a change reported for a backing file.
	ApplyChange(ctx context.Context, change domain.DocumentChange) error

	// OnClosing registers fn to run before any document is closed or replaced.
	OnClosing(fn ClosingFunc)
}
