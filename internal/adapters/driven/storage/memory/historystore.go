package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/docgrep/internal/core/domain"
	"github.com/custodia-labs/docgrep/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.HistoryStore.
type HistoryStore struct {
	mu      sync.RWMutex
	entries []domain.HistoryEntry
}

// NewHistoryStore creates a new in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{}
}

// SaveEntry persists a history entry.
func (s *HistoryStore) SaveEntry(_ context.Context, entry *domain.HistoryEntry) error {
	if entry == nil || entry.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, *entry)
	sort.SliceStable(s.entries, func(i, j int) bool {
		return s.entries[i].StartedAt.After(s.entries[j].StartedAt)
	})
	return nil
}

// ListEntries returns recent entries, most recent first.
func (s *HistoryStore) ListEntries(_ context.Context, limit int) ([]domain.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := len(s.entries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]domain.HistoryEntry, n)
	copy(out, s.entries[:n])
	return out, nil
}

// PruneEntries keeps the most recent 'keep' entries.
func (s *HistoryStore) PruneEntries(_ context.Context, keep int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if keep < 0 {
		keep = 0
	}
	if len(s.entries) > keep {
		s.entries = s.entries[:keep]
	}
	return nil
}

// ClearEntries removes every entry.
func (s *HistoryStore) ClearEntries(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	return nil
}
