package driven

import (
	"context"

	"github.com/custodia-labs/docgrep/internal/core/domain"
)

// DocumentWatcher reports changes to the files backing open documents.
type DocumentWatcher interface {
	// Watch starts watching the given files.
	// The channel is closed when ctx is cancelled or the watcher is closed.
	Watch(ctx context.Context, paths []string) (<-chan domain.DocumentChange, error)

	// Close stops watching.
	Close() error
}
