// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/docgrep/internal/core/domain"
)

// SearchRequested is a command to start a search.
type SearchRequested struct {
	Pattern string
	Options domain.SearchOptions
}

// SearchStep carries one scheduled search step. It runs inside Update so
// steps interleave with key handling on the UI goroutine.
type SearchStep struct {
	Run func()
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSearch is the pattern input and streaming results view.
	ViewSearch
	// ViewDocuments lists the open documents.
	ViewDocuments
	// ViewDocContent shows a document's lines.
	ViewDocContent
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSearch:
		return "search"
	case ViewDocuments:
		return "documents"
	case ViewDocContent:
		return "doc_content"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// DocumentsLoaded carries the list of open documents.
type DocumentsLoaded struct {
	Documents []*domain.Document
	Err       error
}

// DocumentSelected asks to show a document, optionally scrolled to a line.
type DocumentSelected struct {
	DocumentID string
	URI        string
	Line       int
}

// DocumentClosed signals a document was closed from the documents view.
type DocumentClosed struct {
	DocumentID string
	Err        error
}

// DocumentChanged carries a change reported by the file watcher.
type DocumentChanged struct {
	Change domain.DocumentChange
}

// WatchStopped is sent when the file watcher channel closes.
type WatchStopped struct{}
