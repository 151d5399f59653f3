package search

import (
	"time"

	"github.com/custodia-labs/docgrep/internal/core/domain"
	"github.com/custodia-labs/docgrep/internal/core/ports/driven"
)

// Unbounded disables the per-step budget.
const Unbounded time.Duration = -1

// scanState is how a matcher call ended.
type scanState int

const (
	// scanExhausted means the document has no more matches.
	scanExhausted scanState = iota

	// scanPaused means the budget ran out; resume at next.
	scanPaused

	// scanHalted means the session was terminated mid-scan.
	scanHalted

	// scanFailed means the document could not be scanned further.
	scanFailed
)

type scanResult struct {
	state scanState
	next  int
	err   error
}

// budget decides when a matcher must yield.
type budget struct {
	deadline  time.Time
	unbounded bool
	now       func() time.Time
	halt      func() bool
}

func newBudget(d time.Duration, now func() time.Time, halt func() bool) budget {
	b := budget{now: now, halt: halt, unbounded: d < 0}
	if !b.unbounded {
		b.deadline = now().Add(d)
	}
	return b
}

func (b budget) expired() bool {
	return !b.unbounded && b.now().After(b.deadline)
}

func (b budget) halted() bool {
	return b.halt != nil && b.halt()
}

// matcher scans one document from a resume point.
type matcher interface {
	scan(doc driven.LineAccessor, from int, b budget, emit func(domain.Match)) scanResult

	// reset discards per-document scratch state.
	reset()
}
