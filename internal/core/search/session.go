package search

import (
	"errors"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/docgrep/internal/core/domain"
	"github.com/custodia-labs/docgrep/internal/core/ports/driven"
	"github.com/custodia-labs/docgrep/internal/logger"
)

// terminatedResume marks the resume point of a terminated session so an
// in-flight scan notices and stops.
const terminatedResume = -1

// Scheduler runs session steps. Schedule must not run step synchronously;
// the step runs once the caller yields back to whatever drives the scheduler.
type Scheduler interface {
	Schedule(step func())
}

// Config tunes a Session. Zero values use defaults.
type Config struct {
	// Budget is the time one step may scan before yielding.
	// Zero uses domain.DefaultSearchBudget; Unbounded disables it.
	Budget time.Duration

	// ProgressInterval is the minimum time between OnProgress calls.
	ProgressInterval time.Duration

	// Clock replaces time.Now for budget accounting.
	Clock func() time.Time

	// Interrupt is polled before every match attempt. When it returns true
	// the scan stops and the session terminates. It lets another goroutine
	// request termination without touching the session.
	Interrupt func() bool
}

// Session is one search over an ordered list of documents.
// It can be reused once it reaches a terminal status.
type Session struct {
	sink      driven.MatchSink
	errSink   driven.ErrorSink
	scheduler Scheduler

	budget           time.Duration
	progressInterval time.Duration
	now              func() time.Time
	interrupt        func() bool
	progress         *rate.Sometimes

	docs    []driven.LineAccessor
	pattern *Pattern
	matcher matcher
	status  domain.SearchStatus
	cursor  domain.Cursor
	steps   int

	// gen invalidates steps scheduled by an earlier search.
	gen int
}

// NewSession creates an idle session that reports to sink and is driven by scheduler.
// If sink also implements driven.ErrorSink it receives per-document failures.
func NewSession(sink driven.MatchSink, scheduler Scheduler, cfg Config) *Session {
	s := &Session{
		sink:             sink,
		scheduler:        scheduler,
		budget:           cfg.Budget,
		progressInterval: cfg.ProgressInterval,
		now:              cfg.Clock,
		interrupt:        cfg.Interrupt,
		status:           domain.SearchIdle,
		cursor:           domain.InactiveCursor,
	}
	if es, ok := sink.(driven.ErrorSink); ok {
		s.errSink = es
	}
	if s.budget == 0 {
		s.budget = domain.DefaultSearchBudget
	}
	if s.progressInterval <= 0 {
		s.progressInterval = domain.DefaultProgressInterval
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Start begins searching docs for pattern and schedules the first step.
// It fails with domain.ErrAlreadyRunning while a search is active.
func (s *Session) Start(docs []driven.LineAccessor, pattern *Pattern) error {
	if s.cursor.DocumentIndex != -1 {
		return domain.ErrAlreadyRunning
	}
	if pattern == nil {
		return domain.ErrInvalidInput
	}

	s.docs = docs
	s.pattern = pattern
	if pattern.Multiline() {
		s.matcher = &bufferMatcher{pattern: pattern}
	} else {
		s.matcher = &lineMatcher{pattern: pattern}
	}
	s.cursor = domain.Cursor{DocumentIndex: 0, ResumePoint: 0}
	s.status = domain.SearchRunning
	s.steps = 0
	s.progress = &rate.Sometimes{Interval: s.progressInterval}
	s.gen++

	logger.Debug("search: start %q over %d documents (multiline=%v)", pattern.Source(), len(docs), pattern.Multiline())
	s.schedule()
	return nil
}

// Step does one bounded slice of work and reschedules itself while running.
func (s *Session) Step() {
	if s.status != domain.SearchRunning {
		return
	}
	s.steps++

	if s.cursor.DocumentIndex >= len(s.docs) {
		s.finish()
		return
	}

	doc := s.docs[s.cursor.DocumentIndex]
	uri, name := doc.Identity()
	s.progress.Do(func() { s.sink.OnProgress(uri, name) })

	b := newBudget(s.budget, s.now, s.halted)
	res := s.matcher.scan(doc, s.cursor.ResumePoint, b, s.sink.OnMatch)

	if res.state == scanHalted && s.status == domain.SearchRunning {
		s.Terminate()
	}

	// Cancel or Terminate may have been called from the sink.
	if s.status != domain.SearchRunning {
		logger.Debug("search: step %d stopped (%s)", s.steps, s.status)
		return
	}

	switch res.state {
	case scanPaused:
		logger.Debug("search: step %d paused in %s at %d", s.steps, name, res.next)
		s.cursor.ResumePoint = res.next
	case scanFailed:
		s.reportFailure(uri, res.err)
		s.nextDocument()
	default:
		s.nextDocument()
	}

	if s.cursor.DocumentIndex >= len(s.docs) {
		s.finish()
		return
	}
	s.schedule()
}

// Cancel stops scheduling further steps. A step in progress finishes its
// current matcher call. Idempotent.
func (s *Session) Cancel() {
	if s.status == domain.SearchRunning {
		s.status = domain.SearchCancelled
		logger.Debug("search: cancelled after %d steps", s.steps)
	}
	s.cursor.DocumentIndex = -1
	s.clearScratch()
}

// Terminate stops the search and makes a step in progress abort mid-scan.
// Idempotent, and accepted in any state.
func (s *Session) Terminate() {
	if s.status == domain.SearchRunning || s.status == domain.SearchCancelled {
		s.status = domain.SearchTerminated
		logger.Debug("search: terminated after %d steps", s.steps)
	}
	s.cursor = domain.Cursor{DocumentIndex: -1, ResumePoint: terminatedResume}
	s.clearScratch()
}

// Status returns the lifecycle state.
func (s *Session) Status() domain.SearchStatus {
	return s.status
}

// Cursor returns the current checkpoint.
func (s *Session) Cursor() domain.Cursor {
	return s.cursor
}

// Pattern returns the pattern of the current or last search.
func (s *Session) Pattern() *Pattern {
	return s.pattern
}

// Searching reports whether steps are still being scheduled.
func (s *Session) Searching() bool {
	return s.status == domain.SearchRunning
}

// Steps returns the number of steps run by the current or last search.
func (s *Session) Steps() int {
	return s.steps
}

func (s *Session) schedule() {
	gen := s.gen
	s.scheduler.Schedule(func() {
		if gen == s.gen {
			s.Step()
		}
	})
}

func (s *Session) halted() bool {
	if s.cursor.ResumePoint == terminatedResume {
		return true
	}
	return s.interrupt != nil && s.interrupt()
}

func (s *Session) nextDocument() {
	s.cursor.DocumentIndex++
	s.cursor.ResumePoint = 0
	s.clearScratch()
}

func (s *Session) clearScratch() {
	if s.matcher != nil {
		s.matcher.reset()
	}
}

func (s *Session) finish() {
	s.status = domain.SearchDone
	s.cursor = domain.InactiveCursor
	s.docs = nil
	s.clearScratch()
	logger.Debug("search: done in %d steps", s.steps)
	s.sink.OnDone()
}

func (s *Session) reportFailure(uri string, err error) {
	if errors.Is(err, domain.ErrMatchTimeout) {
		logger.Warn("search: match attempt timed out in %s: %v", uri, err)
	} else {
		logger.Warn("search: abandoning %s: %v", uri, err)
	}
	if s.errSink != nil {
		s.errSink.OnError(domain.DocumentError{URI: uri, Err: err})
	}
}
