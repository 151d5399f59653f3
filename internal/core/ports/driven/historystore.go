package driven

import (
	"context"

	"github.com/custodia-labs/docgrep/internal/core/domain"
)

// HistoryStore persists finished searches.
type HistoryStore interface {
	// SaveEntry persists a history entry.
	SaveEntry(ctx context.Context, entry *domain.HistoryEntry) error

	// ListEntries returns recent entries, most recent first.
	// A limit of zero or less returns all entries.
	ListEntries(ctx context.Context, limit int) ([]domain.HistoryEntry, error)

	// PruneEntries keeps the most recent 'keep' entries and removes the rest.
	PruneEntries(ctx context.Context, keep int) error

	// ClearEntries removes every entry.
	ClearEntries(ctx context.Context) error
}
