package mcp

import (
	"context"

	"github.com/custodia-labs/docgrep/internal/core/domain"
	"github.com/custodia-labs/docgrep/internal/core/ports/driven"
	"github.com/custodia-labs/docgrep/internal/core/ports/driving"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	report   *domain.SearchReport
	err      error
	lastOpts domain.SearchOptions
}

func (m *mockSearchService) Search(
	_ context.Context,
	pattern string,
	opts domain.SearchOptions,
) (*domain.SearchReport, error) {
	m.lastOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	if m.report == nil {
		return &domain.SearchReport{Pattern: pattern, Status: domain.SearchDone}, nil
	}
	return m.report, nil
}

func (m *mockSearchService) Start(
	string, domain.SearchOptions, driven.MatchSink, driving.StepScheduler,
) (driving.SearchHandle, error) {
	return nil, domain.ErrNotImplemented
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	documents []*domain.Document
	err       error
	opened    []string
	closed    []string
}

func (m *mockDocumentService) Open(_ context.Context, paths []string) ([]*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.opened = append(m.opened, paths...)
	return m.documents, nil
}

func (m *mockDocumentService) OpenWith(
	ctx context.Context, paths []string, _ domain.FileSettings,
) ([]*domain.Document, error) {
	return m.Open(ctx, paths)
}

func (m *mockDocumentService) OpenText(_ context.Context, uri, name, text string) (*domain.Document, error) {
	return domain.NewDocument("text", uri, name, text), m.err
}

func (m *mockDocumentService) Close(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	m.closed = append(m.closed, id)
	return nil
}

func (m *mockDocumentService) CloseAll(context.Context) error { return m.err }

func (m *mockDocumentService) Reload(context.Context, string) (*domain.Document, error) {
	return nil, domain.ErrNotImplemented
}

func (m *mockDocumentService) List(context.Context) ([]*domain.Document, error) {
	return m.documents, m.err
}

func (m *mockDocumentService) Get(_ context.Context, id string) (*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, d := range m.documents {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockDocumentService) ApplyChange(context.Context, domain.DocumentChange) error { return m.err }

func (m *mockDocumentService) OnClosing(driving.ClosingFunc) {}
