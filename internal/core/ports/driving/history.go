package driving

import (
	"context"

	"github.com/custodia-labs/docgrep/internal/core/domain"
)

// HistoryService records and recalls finished searches.
type HistoryService interface {
	// Record stores a finished search.
	Record(ctx context.Context, entry *domain.HistoryEntry) error

	// List returns recent searches, most recent first.
	List(ctx context.Context, limit int) ([]domain.HistoryEntry, error)

	// Clear forgets every search.
	Clear(ctx context.Context) error
}
