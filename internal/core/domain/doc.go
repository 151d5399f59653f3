// Package domain defines the core business entities for docgrep.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An open, line-indexed text document
//   - Match: A single search hit with line/column span
//   - SearchStatus: The lifecycle state of a search session
//   - HistoryEntry: A finished search kept for recall
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
