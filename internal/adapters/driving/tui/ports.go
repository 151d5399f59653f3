// Package tui provides an interactive terminal user interface for docgrep.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/docgrep/internal/core/domain"
	"github.com/custodia-labs/docgrep/internal/core/ports/driving"
)

// Ports aggregates the driving ports and event sources used by the TUI.
type Ports struct {
	// Search runs incremental searches.
	Search driving.SearchService

	// Document manages the open documents.
	Document driving.DocumentService

	// Settings provides application settings (optional).
	Settings driving.SettingsService

	// History records finished searches (optional).
	History driving.HistoryService

	// Changes delivers file changes for open documents (optional).
	Changes <-chan domain.DocumentChange
}

// NewPorts creates a new Ports aggregate with the required services.
func NewPorts(search driving.SearchService, document driving.DocumentService) *Ports {
	return &Ports{
		Search:   search,
		Document: document,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	return nil
}
