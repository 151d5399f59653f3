package domain

import "time"

// SearchStatus is the lifecycle state of a search session.
type SearchStatus int

const (
	// SearchIdle means no search has been started.
	SearchIdle SearchStatus = iota

	// SearchRunning means steps are still being scheduled.
	SearchRunning

	// SearchCancelled means the search was soft-cancelled.
	// The in-flight step finished its matcher call; nothing more is scheduled.
	SearchCancelled

	// SearchTerminated means the caller forced a full reset, aborting mid-scan.
	SearchTerminated

	// SearchDone means every document was scanned.
	SearchDone
)

// String returns the string representation.
func (s SearchStatus) String() string {
	switch s {
	case SearchIdle:
		return "idle"
	case SearchRunning:
		return "running"
	case SearchCancelled:
		return "cancelled"
	case SearchTerminated:
		return "terminated"
	case SearchDone:
		return "done"
	default:
		return "unknown"
	}
}

// IsTerminal returns true once no further steps will run.
func (s SearchStatus) IsTerminal() bool {
	return s == SearchCancelled || s == SearchTerminated || s == SearchDone
}

// Cursor is the resumption checkpoint of a search session.
// ResumePoint is a line number in single-line mode and an absolute
// character offset into the synthesized buffer in multi-line mode.
type Cursor struct {
	DocumentIndex int
	ResumePoint   int
}

// InactiveCursor is the cursor of a session with no active search.
var InactiveCursor = Cursor{DocumentIndex: -1, ResumePoint: 0}

// Match is a single search hit. Lines and columns are zero-based;
// columns and Length count Unicode code points.
type Match struct {
	// URI identifies the document.
	URI string

	// DocumentName is the display name of the document.
	DocumentName string

	// Preview is the matched line for single-line matches, or the start
	// line's prefix followed by the matched text for multi-line matches.
	Preview string

	// Length is the match length.
	Length int

	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// SearchOptions configures a search.
type SearchOptions struct {
	// IgnoreCase enables case-insensitive matching.
	IgnoreCase bool

	// Budget is the wall-clock slice a single step may spend scanning.
	// Zero uses the configured default.
	Budget time.Duration

	// MatchTimeout bounds a single match attempt. Zero disables it.
	MatchTimeout time.Duration

	// MaxResults stops a synchronous search after this many matches. Zero is unlimited.
	MaxResults int

	// DocumentIDs restricts the search to these open documents, in open order.
	DocumentIDs []string
}

// DocumentError records a per-document failure that did not stop the search.
type DocumentError struct {
	URI string
	Err error
}

// SearchReport is the outcome of a synchronous search.
type SearchReport struct {
	// Pattern is the pattern as supplied by the caller.
	Pattern string

	// Multiline is true when the pattern was searched across line boundaries.
	Multiline bool

	// Matches holds every match in emission order.
	Matches []Match

	// Documents is the number of documents searched.
	Documents int

	// Steps is the number of scheduling steps the search took.
	Steps int

	// Status is the final session status.
	Status SearchStatus

	// Truncated is true when MaxResults stopped the search early.
	Truncated bool

	// Errors holds contained per-document failures.
	Errors []DocumentError

	// Duration is the total wall-clock time.
	Duration time.Duration
}
