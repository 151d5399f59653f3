package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/custodia-labs/docgrep/internal/core/domain"
	"github.com/custodia-labs/docgrep/internal/core/ports/driven"
)

// historyStore implements driven.HistoryStore.
type historyStore struct {
	store *Store
}

var _ driven.HistoryStore = (*historyStore)(nil)

// SaveEntry persists a history entry. Saving an existing ID replaces it.
func (s *historyStore) SaveEntry(ctx context.Context, entry *domain.HistoryEntry) error {
	if entry == nil || entry.ID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO search_history (id, pattern, ignore_case, multiline, match_count, document_count, status, started_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			pattern = excluded.pattern,
			ignore_case = excluded.ignore_case,
			multiline = excluded.multiline,
			match_count = excluded.match_count,
			document_count = excluded.document_count,
			status = excluded.status,
			started_at = excluded.started_at,
			duration_ms = excluded.duration_ms
	`, entry.ID, entry.Pattern, boolToInt(entry.IgnoreCase), boolToInt(entry.Multiline),
		entry.MatchCount, entry.DocumentCount, entry.Status.String(),
		formatTime(entry.StartedAt), entry.Duration.Milliseconds())

	if err != nil {
		return fmt.Errorf("saving history entry: %w", err)
	}
	return nil
}

// ListEntries returns recent entries, most recent first.
func (s *historyStore) ListEntries(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, pattern, ignore_case, multiline, match_count, document_count, status, started_at, duration_ms
		FROM search_history
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []domain.HistoryEntry //nolint:prealloc // size unknown from query
	for rows.Next() {
		entry, err := scanHistoryEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}
	return entries, nil
}

// PruneEntries keeps the most recent 'keep' entries.
func (s *historyStore) PruneEntries(ctx context.Context, keep int) error {
	if keep < 0 {
		keep = 0
	}
	_, err := s.store.db.ExecContext(ctx, `
		DELETE FROM search_history
		WHERE id NOT IN (
			SELECT id FROM search_history ORDER BY started_at DESC LIMIT ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("pruning history: %w", err)
	}
	return nil
}

// ClearEntries removes every entry.
func (s *historyStore) ClearEntries(ctx context.Context) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM search_history"); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}

func scanHistoryEntry(rows *sql.Rows) (*domain.HistoryEntry, error) {
	var (
		entry      domain.HistoryEntry
		ignoreCase int
		multiline  int
		status     string
		startedAt  string
		durationMS int64
	)
	err := rows.Scan(&entry.ID, &entry.Pattern, &ignoreCase, &multiline,
		&entry.MatchCount, &entry.DocumentCount, &status, &startedAt, &durationMS)
	if err != nil {
		return nil, fmt.Errorf("scanning history entry: %w", err)
	}

	entry.IgnoreCase = ignoreCase != 0
	entry.Multiline = multiline != 0
	entry.Status = parseStatus(status)
	entry.StartedAt = parseTime(startedAt)
	entry.Duration = time.Duration(durationMS) * time.Millisecond
	return &entry, nil
}

// timeLayout sorts lexically in chronological order for UTC times.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime returns zero time if the string is invalid.
func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseStatus(s string) domain.SearchStatus {
	for _, st := range []domain.SearchStatus{
		domain.SearchIdle, domain.SearchRunning, domain.SearchCancelled,
		domain.SearchTerminated, domain.SearchDone,
	} {
		if st.String() == s {
			return st
		}
	}
	return domain.SearchIdle
}

// boolToInt converts a bool to 1 (true) or 0 (false).
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
