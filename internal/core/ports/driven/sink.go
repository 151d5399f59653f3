package driven

import "github.com/custodia-labs/docgrep/internal/core/domain"

// MatchSink receives the output of a search session.
// All methods are invoked synchronously from inside a search step.
type MatchSink interface {
	// OnMatch is called for every match, in scan order.
	OnMatch(m domain.Match)

	// OnProgress reports the document currently being scanned.
	// Advisory and rate-limited; fast searches may never see it.
	OnProgress(uri, name string)

	// OnDone is called exactly once when every document was scanned
	// without cancellation.
	OnDone()
}

// ErrorSink is an optional extension of MatchSink for contained
// per-document failures. Sinks that do not implement it only see them in logs.
type ErrorSink interface {
	OnError(err domain.DocumentError)
}
