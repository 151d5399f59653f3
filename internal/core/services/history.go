package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/docgrep/internal/core/domain"
	"github.com/custodia-labs/docgrep/internal/core/ports/driven"
	"github.com/custodia-labs/docgrep/internal/core/ports/driving"
	"github.com/custodia-labs/docgrep/internal/logger"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService records finished searches and keeps the store within
// the configured limit.
type HistoryService struct {
	store    driven.HistoryStore
	settings driving.SettingsService
}

// NewHistoryService creates a new history service.
// The settings parameter is optional (can be nil).
func NewHistoryService(store driven.HistoryStore, settings driving.SettingsService) *HistoryService {
	return &HistoryService{
		store:    store,
		settings: settings,
	}
}

// Record stores a finished search, assigning an ID if it has none.
func (s *HistoryService) Record(ctx context.Context, entry *domain.HistoryEntry) error {
	if entry == nil || entry.Pattern == "" {
		return fmt.Errorf("%w: history entry needs a pattern", domain.ErrInvalidInput)
	}
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if err := s.store.SaveEntry(ctx, entry); err != nil {
		return err
	}

	if limit := s.limit(); limit > 0 {
		if err := s.store.PruneEntries(ctx, limit); err != nil {
			logger.Warn("failed to prune search history: %v", err)
		}
	}
	return nil
}

// List returns recent searches, most recent first.
func (s *HistoryService) List(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	return s.store.ListEntries(ctx, limit)
}

// Clear forgets every search.
func (s *HistoryService) Clear(ctx context.Context) error {
	return s.store.ClearEntries(ctx)
}

func (s *HistoryService) limit() int {
	if s.settings != nil {
		if settings, err := s.settings.Get(); err == nil {
			return settings.History.Limit
		}
	}
	return domain.DefaultAppSettings().History.Limit
}
