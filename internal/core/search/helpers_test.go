package search

import (
	"strings"
	"time"

	"github.com/custodia-labs/docgrep/internal/core/domain"
	"github.com/custodia-labs/docgrep/internal/core/ports/driven"
)

// manualScheduler queues steps until the test runs them.
type manualScheduler struct {
	queue []func()
}

func (m *manualScheduler) Schedule(step func()) {
	m.queue = append(m.queue, step)
}

func (m *manualScheduler) runOne() bool {
	if len(m.queue) == 0 {
		return false
	}
	step := m.queue[0]
	m.queue = m.queue[1:]
	step()
	return true
}

func (m *manualScheduler) drain() int {
	n := 0
	for m.runOne() {
		n++
	}
	return n
}

// recordingSink records everything a session reports.
type recordingSink struct {
	matches  []domain.Match
	progress []string
	errors   []domain.DocumentError
	done     int
	onMatch  func(m domain.Match)
}

func (r *recordingSink) OnMatch(m domain.Match) {
	r.matches = append(r.matches, m)
	if r.onMatch != nil {
		r.onMatch(m)
	}
}

func (r *recordingSink) OnProgress(uri, _ string) {
	r.progress = append(r.progress, uri)
}

func (r *recordingSink) OnDone() {
	r.done++
}

func (r *recordingSink) OnError(err domain.DocumentError) {
	r.errors = append(r.errors, err)
}

// tickClock advances by tick every time it is read.
type tickClock struct {
	t    time.Time
	tick time.Duration
}

func (c *tickClock) now() time.Time {
	c.t = c.t.Add(c.tick)
	return c.t
}

func newDoc(uri string, lines ...string) *domain.Document {
	return domain.NewDocument(uri, uri, uri, strings.Join(lines, "\n"))
}

func accessors(docs ...*domain.Document) []driven.LineAccessor {
	out := make([]driven.LineAccessor, len(docs))
	for i, d := range docs {
		out[i] = d
	}
	return out
}

func mustCompile(source string) *Pattern {
	p, err := Compile(source, CompileOptions{})
	if err != nil {
		panic(err)
	}
	return p
}
