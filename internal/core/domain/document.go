package domain

import (
	"strings"
	"time"
)

// Document is an open text document held in memory.
// Lines are split once when the document is opened; the engine reads
// them through LineCount and Line and never mutates them.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// URI is the original location (file path or caller supplied URI).
	URI string

	// Name is the human-readable display name.
	Name string

	// Lines holds the document text without line terminators.
	Lines []string

	// Metadata contains arbitrary key-value pairs (size, mime type).
	Metadata map[string]any

	// OpenedAt is when the document was opened.
	OpenedAt time.Time

	// ModifiedAt is when the document content last changed.
	ModifiedAt time.Time
}

// NewDocument creates a document from raw text.
func NewDocument(id, uri, name, text string) *Document {
	now := time.Now()
	return &Document{
		ID:         id,
		URI:        uri,
		Name:       name,
		Lines:      SplitLines(text),
		OpenedAt:   now,
		ModifiedAt: now,
	}
}

// LineCount returns the number of lines in the document.
func (d *Document) LineCount() int {
	return len(d.Lines)
}

// Line returns the text of line i. Callers must not request out-of-range lines.
func (d *Document) Line(i int) string {
	return d.Lines[i]
}

// Identity returns the URI and display name of the document.
func (d *Document) Identity() (uri, name string) {
	return d.URI, d.Name
}

// Text joins the lines back together with "\n".
func (d *Document) Text() string {
	return strings.Join(d.Lines, "\n")
}

// SplitLines splits text on "\n", dropping a trailing "\r" from each line.
// A single trailing newline does not produce an extra empty line.
// Empty text yields a single empty line, like an empty editor buffer.
func SplitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// ChangeType represents the type of document change.
type ChangeType int

const (
	// ChangeCreated indicates a new document.
	ChangeCreated ChangeType = iota

	// ChangeUpdated indicates a modified document.
	ChangeUpdated

	// ChangeDeleted indicates a removed document.
	ChangeDeleted
)

// String returns the string representation.
func (c ChangeType) String() string {
	switch c {
	case ChangeCreated:
		return "created"
	case ChangeUpdated:
		return "updated"
	case ChangeDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// DocumentChange is a change reported for an open document's backing file.
type DocumentChange struct {
	// Type is the kind of change.
	Type ChangeType

	// URI identifies the affected document.
	URI string

	// Text is the new content for created/updated changes.
	Text string
}
