package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docgrep/internal/core/domain"
)

func TestNewDocumentStore(t *testing.T) {
	store := NewDocumentStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.documents)
}

func TestDocumentStore_SaveAndGet(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()
	doc := domain.NewDocument("doc-1", "/tmp/a.txt", "a.txt", "one\ntwo")

	require.NoError(t, store.SaveDocument(ctx, doc))

	saved, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Same(t, doc, saved)

	byURI, err := store.GetDocumentByURI(ctx, "/tmp/a.txt")
	require.NoError(t, err)
	assert.Same(t, doc, byURI)
}

func TestDocumentStore_SaveInvalid(t *testing.T) {
	store := NewDocumentStore()

	assert.ErrorIs(t, store.SaveDocument(context.Background(), nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.SaveDocument(context.Background(), &domain.Document{}), domain.ErrInvalidInput)
}

func TestDocumentStore_ReplaceKeepsOrder(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()
	require.NoError(t, store.SaveDocument(ctx, domain.NewDocument("a", "a", "a", "1")))
	require.NoError(t, store.SaveDocument(ctx, domain.NewDocument("b", "b", "b", "2")))
	require.NoError(t, store.SaveDocument(ctx, domain.NewDocument("a", "a", "a", "changed")))

	docs, err := store.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].ID)
	assert.Equal(t, "changed", docs[0].Line(0))
	assert.Equal(t, "b", docs[1].ID)
}

func TestDocumentStore_NotFound(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	_, err := store.GetDocument(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = store.GetDocumentByURI(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, store.DeleteDocument(ctx, "missing"), domain.ErrNotFound)
}

func TestDocumentStore_Delete(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.SaveDocument(ctx, domain.NewDocument(id, id, id, id)))
	}

	require.NoError(t, store.DeleteDocument(ctx, "b"))

	docs, err := store.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].ID)
	assert.Equal(t, "c", docs[1].ID)
}

func TestDocumentStore_ConcurrentAccess(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("doc-%d", i)
			_ = store.SaveDocument(ctx, domain.NewDocument(id, id, id, "x"))
			_, _ = store.ListDocuments(ctx)
		}(i)
	}
	wg.Wait()

	docs, err := store.ListDocuments(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 50)
}
