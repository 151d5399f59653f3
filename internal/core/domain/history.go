package domain

import "time"

// HistoryEntry is a finished search remembered for recall.
type HistoryEntry struct {
	// ID is the unique identifier for the entry.
	ID string

	// Pattern is the search pattern.
	Pattern string

	// IgnoreCase records whether the search was case-insensitive.
	IgnoreCase bool

	// Multiline records whether the pattern crossed line boundaries.
	Multiline bool

	// MatchCount is the number of matches found.
	MatchCount int

	// DocumentCount is the number of documents searched.
	DocumentCount int

	// Status is the final status of the search.
	Status SearchStatus

	// StartedAt is when the search started.
	StartedAt time.Time

	// Duration is how long the search took.
	Duration time.Duration
}
