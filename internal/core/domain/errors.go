package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Search Errors.

	// ErrPatternCompile indicates the search pattern could not be compiled.
	// The session never enters the running state.
	ErrPatternCompile = errors.New("pattern compile error")

	// ErrAlreadyRunning indicates a search was started while another one
	// on the same session is still active.
	ErrAlreadyRunning = errors.New("search already running")

	// ErrOffsetLookup indicates a match offset could not be mapped back to a line.
	// It aborts the current document only.
	ErrOffsetLookup = errors.New("internal offset lookup failure")

	// ErrMatchTimeout indicates a single match attempt exceeded its time limit.
	ErrMatchTimeout = errors.New("match attempt timed out")

	// ErrNoDocuments indicates a search was requested with nothing open.
	ErrNoDocuments = errors.New("no open documents")
)
