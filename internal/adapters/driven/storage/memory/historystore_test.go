package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docgrep/internal/core/domain"
)

func historyEntry(id string, at time.Time) *domain.HistoryEntry {
	return &domain.HistoryEntry{ID: id, Pattern: "p-" + id, StartedAt: at, Status: domain.SearchDone}
}

func TestHistoryStore_ListMostRecentFirst(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()
	base := time.Now()

	require.NoError(t, store.SaveEntry(ctx, historyEntry("old", base)))
	require.NoError(t, store.SaveEntry(ctx, historyEntry("new", base.Add(time.Minute))))
	require.NoError(t, store.SaveEntry(ctx, historyEntry("mid", base.Add(time.Second))))

	entries, err := store.ListEntries(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "new", entries[0].ID)
	assert.Equal(t, "mid", entries[1].ID)
	assert.Equal(t, "old", entries[2].ID)

	limited, err := store.ListEntries(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "new", limited[0].ID)
}

func TestHistoryStore_SaveInvalid(t *testing.T) {
	store := NewHistoryStore()

	assert.ErrorIs(t, store.SaveEntry(context.Background(), nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.SaveEntry(context.Background(), &domain.HistoryEntry{}), domain.ErrInvalidInput)
}

func TestHistoryStore_Prune(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()
	base := time.Now()
	for i, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, store.SaveEntry(ctx, historyEntry(id, base.Add(time.Duration(i)*time.Second))))
	}

	require.NoError(t, store.PruneEntries(ctx, 2))

	entries, err := store.ListEntries(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "d", entries[0].ID)
	assert.Equal(t, "c", entries[1].ID)
}

func TestHistoryStore_Clear(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()
	require.NoError(t, store.SaveEntry(ctx, historyEntry("a", time.Now())))

	require.NoError(t, store.ClearEntries(ctx))

	entries, err := store.ListEntries(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
