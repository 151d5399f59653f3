package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docgrep/internal/core/domain"
	"github.com/custodia-labs/docgrep/internal/core/ports/driven"
	"github.com/custodia-labs/docgrep/internal/core/ports/driving"
	"github.com/custodia-labs/docgrep/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService manages the set of open documents.
type DocumentService struct {
	docStore driven.DocumentStore
	loader   driven.DocumentLoader
	settings driving.SettingsService

	mu        sync.RWMutex
	listeners []driving.ClosingFunc
}

// NewDocumentService creates a new document service.
// The loader and settings parameters are optional (can be nil).
func NewDocumentService(
	docStore driven.DocumentStore,
	loader driven.DocumentLoader,
	settings driving.SettingsService,
) *DocumentService {
	return &DocumentService{
		docStore: docStore,
		loader:   loader,
		settings: settings,
	}
}

// OnClosing registers fn to run before any document is closed or replaced.
func (s *DocumentService) OnClosing(fn driving.ClosingFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Open loads files and directories as documents using the configured file settings.
func (s *DocumentService) Open(ctx context.Context, paths []string) ([]*domain.Document, error) {
	return s.OpenWith(ctx, paths, s.fileSettings())
}

// OpenWith loads files and directories as documents using files instead of
// the configured file settings.
func (s *DocumentService) OpenWith(
	ctx context.Context, paths []string, files domain.FileSettings,
) ([]*domain.Document, error) {
	if s.loader == nil {
		return nil, domain.ErrNotImplemented
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no paths given", domain.ErrInvalidInput)
	}
	defer logger.Timed("open documents")()

	loaded, err := s.loader.Load(ctx, paths, driven.LoadOptions{
		IncludeHidden: files.IncludeHidden,
		MaxSizeBytes:  int64(files.MaxSizeKB) * 1024,
	})
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}

	docs := make([]*domain.Document, 0, len(loaded))
	for _, f := range loaded {
		existing, err := s.docStore.GetDocumentByURI(ctx, f.Path)
		if err == nil {
			docs = append(docs, existing)
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}

		doc := domain.NewDocument(uuid.New().String(), f.Path, f.Name, f.Text)
		doc.Metadata = map[string]any{"size": len(f.Text), "mime_type": f.MIMEType}
		if err := s.docStore.SaveDocument(ctx, doc); err != nil {
			return nil, fmt.Errorf("save document %s: %w", f.Path, err)
		}
		logger.Debug("opened %s (%d lines)", f.Path, doc.LineCount())
		docs = append(docs, doc)
	}
	return docs, nil
}

// OpenText opens caller supplied text as a document.
// Opening a URI that is already open replaces its content.
func (s *DocumentService) OpenText(ctx context.Context, uri, name, text string) (*domain.Document, error) {
	if uri == "" {
		return nil, fmt.Errorf("%w: uri is required", domain.ErrInvalidInput)
	}
	if name == "" {
		name = filepath.Base(uri)
	}

	existing, err := s.docStore.GetDocumentByURI(ctx, uri)
	switch {
	case err == nil:
		return s.replace(ctx, existing, text)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	doc := domain.NewDocument(uuid.New().String(), uri, name, text)
	if err := s.docStore.SaveDocument(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Close closes a document.
func (s *DocumentService) Close(ctx context.Context, id string) error {
	doc, err := s.docStore.GetDocument(ctx, id)
	if err != nil {
		return err
	}
	s.notifyClosing(doc)
	logger.Debug("closed %s", doc.URI)
	return s.docStore.DeleteDocument(ctx, id)
}

// CloseAll closes every document.
func (s *DocumentService) CloseAll(ctx context.Context) error {
	docs, err := s.docStore.ListDocuments(ctx)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		if err := s.Close(ctx, doc.ID); err != nil {
			return err
		}
	}
	return nil
}

// Reload re-reads a document from disk.
func (s *DocumentService) Reload(ctx context.Context, id string) (*domain.Document, error) {
	if s.loader == nil {
		return nil, domain.ErrNotImplemented
	}
	doc, err := s.docStore.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}

	files, err := s.loader.Load(ctx, []string{doc.URI}, driven.LoadOptions{IncludeHidden: true})
	if err != nil {
		return nil, fmt.Errorf("reload %s: %w", doc.URI, err)
	}
	if len(files) != 1 {
		return nil, fmt.Errorf("reload %s: %w", doc.URI, domain.ErrNotFound)
	}
	return s.replace(ctx, doc, files[0].Text)
}

// List returns open documents in open order.
func (s *DocumentService) List(ctx context.Context) ([]*domain.Document, error) {
	return s.docStore.ListDocuments(ctx)
}

// Get retrieves an open document by ID.
func (s *DocumentService) Get(ctx context.Context, id string) (*domain.Document, error) {
	return s.docStore.GetDocument(ctx, id)
}

// ApplyChange applies a change reported for a backing file.
// Changes for files that are not open are ignored.
func (s *DocumentService) ApplyChange(ctx context.Context, change domain.DocumentChange) error {
	doc, err := s.docStore.GetDocumentByURI(ctx, change.URI)
	if errors.Is(err, domain.ErrNotFound) {
		logger.Debug("ignoring %s change for %s: not open", change.Type, change.URI)
		return nil
	}
	if err != nil {
		return err
	}

	logger.Debug("applying %s change to %s", change.Type, change.URI)
	switch change.Type {
	case domain.ChangeDeleted:
		return s.Close(ctx, doc.ID)
	case domain.ChangeCreated, domain.ChangeUpdated:
		_, err := s.replace(ctx, doc, change.Text)
		return err
	default:
		return fmt.Errorf("%w: change type %d", domain.ErrInvalidInput, change.Type)
	}
}

// replace swaps a document's content, keeping its ID and open position.
// Documents are never mutated in place; a search holding the old value
// keeps reading consistent lines until it is terminated.
func (s *DocumentService) replace(ctx context.Context, old *domain.Document, text string) (*domain.Document, error) {
	s.notifyClosing(old)

	doc := domain.NewDocument(old.ID, old.URI, old.Name, text)
	doc.OpenedAt = old.OpenedAt
	doc.ModifiedAt = time.Now()
	doc.Metadata = make(map[string]any, len(old.Metadata)+1)
	for k, v := range old.Metadata {
		doc.Metadata[k] = v
	}
	doc.Metadata["size"] = len(text)
	if err := s.docStore.SaveDocument(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *DocumentService) notifyClosing(doc *domain.Document) {
	s.mu.RLock()
	listeners := make([]driving.ClosingFunc, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn(doc)
	}
}

func (s *DocumentService) fileSettings() domain.FileSettings {
	if s.settings != nil {
		if settings, err := s.settings.Get(); err == nil {
			return settings.Files
		}
	}
	return domain.DefaultAppSettings().Files
}
