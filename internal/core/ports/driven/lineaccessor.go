package driven

// LineAccessor is a read-only view of one open document.
// The search engine borrows it for the duration of a single step.
type LineAccessor interface {
	// LineCount returns the number of lines.
	LineCount() int

	// Line returns the text of line i without its terminator.
	// Behaviour is undefined for out-of-range indices.
	Line(i int) string

	// Identity returns the document's URI or path and its display name.
	Identity() (uri, name string)
}
