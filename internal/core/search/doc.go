// Package search implements the incremental regex search engine.
//
// A Session scans an ordered list of open documents for a pattern in
// bounded steps. Each step runs for at most a configured budget (100ms by
// default), records a checkpoint, and asks its Scheduler to run the next
// step. Callers stay responsive because no step blocks for long.
//
// Patterns without a newline token are matched line by line. Patterns
// containing "\n" are matched against a synthesized buffer of the whole
// document joined with newlines; an OffsetIndex maps buffer offsets back
// to line/column positions.
//
// A Session is not safe for concurrent use. Start, Step, Cancel and
// Terminate must all be called from the same goroutine, which is also the
// goroutine the Scheduler runs steps on.
package search
