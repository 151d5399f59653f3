package driving

import (
	"context"

	"github.com/custodia-labs/docgrep/internal/core/domain"
	"github.com/custodia-labs/docgrep/internal/core/ports/driven"
)

// StepScheduler drives an incremental search by running scheduled steps.
// Implementations must run each step on the same logical thread as the caller.
type StepScheduler interface {
	Schedule(step func())
}

// SearchHandle controls an incremental search started with SearchService.Start.
type SearchHandle interface {
	// ID identifies the search.
	ID() string

	// Cancel stops scheduling further steps. Idempotent.
	Cancel()

	// Terminate stops the search and aborts any step in progress. Idempotent.
	Terminate()

	// Status returns the current lifecycle state.
	Status() domain.SearchStatus

	// Searching reports whether the search is still running.
	Searching() bool
}

// SearchService provides search over open documents to external actors.
type SearchService interface {
	// Search runs a search to completion and returns every match.
	Search(ctx context.Context, pattern string, opts domain.SearchOptions) (*domain.SearchReport, error)

	// Start begins an incremental search. Matches are delivered to sink
	// from steps run by scheduler.
	Start(pattern string, opts domain.SearchOptions, sink driven.MatchSink, scheduler StepScheduler) (SearchHandle, error)
}
