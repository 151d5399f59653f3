package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docgrep/internal/core/domain"
	"github.com/custodia-labs/docgrep/internal/core/ports/driven"
	"github.com/custodia-labs/docgrep/internal/core/ports/driving"
	"github.com/custodia-labs/docgrep/internal/core/search"
	"github.com/custodia-labs/docgrep/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService runs incremental searches over the open documents.
type SearchService struct {
	documents driving.DocumentService
	settings  driving.SettingsService
	history   driving.HistoryService

	mu     sync.Mutex
	active map[string]*searchHandle
}

// NewSearchService creates a new search service.
// The settings and history parameters are optional (can be nil).
func NewSearchService(
	documents driving.DocumentService,
	settings driving.SettingsService,
	history driving.HistoryService,
) *SearchService {
	s := &SearchService{
		documents: documents,
		settings:  settings,
		history:   history,
		active:    make(map[string]*searchHandle),
	}
	documents.OnClosing(s.documentClosing)
	return s
}

// Search runs a search to completion on the calling goroutine.
// Cancelling ctx terminates the search; the partial report is returned
// together with ctx.Err().
func (s *SearchService) Search(
	ctx context.Context, pattern string, opts domain.SearchOptions,
) (*domain.SearchReport, error) {
	logger.Section("Search Execution")

	sched := NewScheduler()
	collector := &collectingSink{max: opts.MaxResults}
	h, err := s.Start(pattern, opts, collector, sched)
	if err != nil {
		return nil, err
	}
	collector.handle = h
	sh := h.(*searchHandle)

	runErr := sched.Run(ctx)
	if runErr != nil {
		h.Terminate()
		_ = sched.Run(context.Background())
	}

	report := &domain.SearchReport{
		Pattern:   pattern,
		Multiline: sh.session.Pattern().Multiline(),
		Matches:   collector.matches,
		Documents: len(sh.docIDs),
		Steps:     sh.session.Steps(),
		Status:    h.Status(),
		Truncated: collector.truncated,
		Errors:    collector.errors,
		Duration:  time.Since(sh.startedAt),
	}
	if report.Matches == nil {
		report.Matches = []domain.Match{}
	}
	logger.Debug("search %s: %d matches in %d documents, %d steps, %v",
		report.Status, len(report.Matches), report.Documents, report.Steps, report.Duration)
	return report, runErr
}

// Start begins an incremental search over the open documents.
func (s *SearchService) Start(
	pattern string, opts domain.SearchOptions, sink driven.MatchSink, scheduler driving.StepScheduler,
) (driving.SearchHandle, error) {
	if pattern == "" {
		return nil, fmt.Errorf("%w: empty pattern", domain.ErrInvalidInput)
	}
	if sink == nil || scheduler == nil {
		return nil, fmt.Errorf("%w: sink and scheduler are required", domain.ErrInvalidInput)
	}

	settings := s.currentSettings()
	ignoreCase := opts.IgnoreCase || settings.Search.IgnoreCase
	compiled, err := search.Compile(pattern, search.CompileOptions{
		IgnoreCase:   ignoreCase,
		MatchTimeout: firstNonZero(opts.MatchTimeout, settings.Search.MatchTimeout),
	})
	if err != nil {
		return nil, err
	}

	docs, err := s.snapshot(opts.DocumentIDs)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, domain.ErrNoDocuments
	}

	h := &searchHandle{
		id:         uuid.New().String(),
		scheduler:  scheduler,
		ignoreCase: ignoreCase,
		docIDs:     make(map[string]struct{}, len(docs)),
		startedAt:  time.Now(),
		onFinish:   s.finished,
	}
	accessors := make([]driven.LineAccessor, len(docs))
	for i, d := range docs {
		accessors[i] = d
		h.docIDs[d.ID] = struct{}{}
	}
	h.sink = &countingSink{inner: sink}
	h.session = search.NewSession(h.sink, h, search.Config{
		Budget:           firstNonZero(opts.Budget, settings.Search.Budget),
		ProgressInterval: settings.Search.ProgressInterval,
		Interrupt:        h.terminateReq.Load,
	})
	h.status.Store(int32(domain.SearchRunning))

	s.mu.Lock()
	s.active[h.id] = h
	s.mu.Unlock()

	if err := h.session.Start(accessors, compiled); err != nil {
		s.mu.Lock()
		delete(s.active, h.id)
		s.mu.Unlock()
		return nil, err
	}
	logger.Debug("search %s: %q over %d documents", h.id, pattern, len(docs))
	return h, nil
}

// snapshot returns the documents to search, in open order.
func (s *SearchService) snapshot(ids []string) ([]*domain.Document, error) {
	all, err := s.documents.List(context.Background())
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	if len(ids) == 0 {
		return all, nil
	}

	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	docs := make([]*domain.Document, 0, len(ids))
	for _, d := range all {
		if wanted[d.ID] {
			docs = append(docs, d)
			delete(wanted, d.ID)
		}
	}
	for id := range wanted {
		return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	return docs, nil
}

// documentClosing terminates every search that references doc.
func (s *SearchService) documentClosing(doc *domain.Document) {
	s.mu.Lock()
	var affected []*searchHandle
	for _, h := range s.active {
		if _, ok := h.docIDs[doc.ID]; ok {
			affected = append(affected, h)
		}
	}
	s.mu.Unlock()

	for _, h := range affected {
		logger.Debug("search %s: terminating, %s is closing", h.id, doc.URI)
		h.Terminate()
	}
}

// finished unregisters a search and records it in history.
func (s *SearchService) finished(h *searchHandle) {
	s.mu.Lock()
	delete(s.active, h.id)
	s.mu.Unlock()

	if s.history == nil || !s.currentSettings().History.Enabled {
		return
	}
	p := h.session.Pattern()
	entry := &domain.HistoryEntry{
		Pattern:       p.Source(),
		IgnoreCase:    h.ignoreCase,
		Multiline:     p.Multiline(),
		MatchCount:    int(h.sink.count.Load()),
		DocumentCount: len(h.docIDs),
		Status:        h.Status(),
		StartedAt:     h.startedAt,
		Duration:      time.Since(h.startedAt),
	}
	if err := s.history.Record(context.Background(), entry); err != nil {
		logger.Warn("failed to record search history: %v", err)
	}
}

// Active returns the number of searches still running.
func (s *SearchService) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}

func (s *SearchService) currentSettings() domain.AppSettings {
	if s.settings != nil {
		if settings, err := s.settings.Get(); err == nil {
			return *settings
		}
	}
	return domain.DefaultAppSettings()
}

func firstNonZero(vals ...time.Duration) time.Duration {
	for _, v := range vals {
		if v != 0 {
			return v
		}
	}
	return 0
}

// searchHandle wraps a session so it can be controlled from any goroutine.
// Requests are applied by the step wrapper on the goroutine driving the
// search; a terminate request also interrupts a step already scanning.
type searchHandle struct {
	id         string
	session    *search.Session
	scheduler  driving.StepScheduler
	sink       *countingSink
	docIDs     map[string]struct{}
	ignoreCase bool
	startedAt  time.Time
	onFinish   func(h *searchHandle)

	cancelReq    atomic.Bool
	terminateReq atomic.Bool
	status       atomic.Int32
	finished     atomic.Bool
}

// Ensure searchHandle implements the interfaces.
var (
	_ driving.SearchHandle = (*searchHandle)(nil)
	_ search.Scheduler     = (*searchHandle)(nil)
)

func (h *searchHandle) ID() string {
	return h.id
}

func (h *searchHandle) Cancel() {
	h.cancelReq.Store(true)
}

func (h *searchHandle) Terminate() {
	h.terminateReq.Store(true)
}

func (h *searchHandle) Status() domain.SearchStatus {
	return domain.SearchStatus(h.status.Load())
}

func (h *searchHandle) Searching() bool {
	return h.Status() == domain.SearchRunning
}

// Schedule wraps each session step so pending requests are applied first
// and the published status is refreshed afterwards.
func (h *searchHandle) Schedule(step func()) {
	h.scheduler.Schedule(func() {
		switch {
		case h.terminateReq.Load():
			h.session.Terminate()
		case h.cancelReq.Load():
			h.session.Cancel()
		}
		step()

		status := h.session.Status()
		h.status.Store(int32(status))
		if status.IsTerminal() && h.finished.CompareAndSwap(false, true) {
			h.onFinish(h)
		}
	})
}

// countingSink counts matches and forwards everything to the caller's sink.
type countingSink struct {
	inner driven.MatchSink
	count atomic.Int64
}

func (c *countingSink) OnMatch(m domain.Match) {
	c.count.Add(1)
	c.inner.OnMatch(m)
}

func (c *countingSink) OnProgress(uri, name string) {
	c.inner.OnProgress(uri, name)
}

func (c *countingSink) OnDone() {
	c.inner.OnDone()
}

func (c *countingSink) OnError(err domain.DocumentError) {
	if es, ok := c.inner.(driven.ErrorSink); ok {
		es.OnError(err)
	}
}

// collectingSink gathers matches for a synchronous search.
type collectingSink struct {
	handle    driving.SearchHandle
	max       int
	matches   []domain.Match
	errors    []domain.DocumentError
	truncated bool
}

func (c *collectingSink) OnMatch(m domain.Match) {
	if c.truncated {
		return
	}
	c.matches = append(c.matches, m)
	if c.max > 0 && len(c.matches) >= c.max {
		c.truncated = true
		c.handle.Terminate()
	}
}

func (c *collectingSink) OnProgress(uri, _ string) {
	logger.Debug("searching %s", uri)
}

func (c *collectingSink) OnDone() {}

func (c *collectingSink) OnError(err domain.DocumentError) {
	c.errors = append(c.errors, err)
}
