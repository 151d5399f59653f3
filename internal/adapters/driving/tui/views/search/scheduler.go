package search

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docgrep/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docgrep/internal/core/ports/driving"
)

// Ensure stepQueue implements the interface.
var _ driving.StepScheduler = (*stepQueue)(nil)

// stepQueue turns scheduled search steps into Bubble Tea messages.
// Schedule is only called from inside Update, so no locking is needed.
type stepQueue struct {
	pending []func()
}

// Schedule queues a step until the next Cmd call.
func (q *stepQueue) Schedule(step func()) {
	q.pending = append(q.pending, step)
}

// Cmd returns a command delivering every queued step as a SearchStep message.
func (q *stepQueue) Cmd() tea.Cmd {
	if len(q.pending) == 0 {
		return nil
	}
	steps := q.pending
	q.pending = nil

	cmds := make([]tea.Cmd, len(steps))
	for i, step := range steps {
		cmds[i] = func() tea.Msg { return messages.SearchStep{Run: step} }
	}
	if len(cmds) == 1 {
		return cmds[0]
	}
	return tea.Sequence(cmds...)
}

// Len returns the number of queued steps.
func (q *stepQueue) Len() int {
	return len(q.pending)
}
