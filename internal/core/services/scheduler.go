package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/docgrep/internal/core/ports/driving"
	"github.com/custodia-labs/docgrep/internal/core/search"
	"github.com/custodia-labs/docgrep/internal/logger"
)

// Ensure Scheduler satisfies both step scheduler contracts.
var (
	_ driving.StepScheduler = (*Scheduler)(nil)
	_ search.Scheduler      = (*Scheduler)(nil)
)

// Scheduler is a FIFO queue of search steps.
// Steps are queued from any goroutine and run one at a time on the
// goroutine that calls Run, which yields between steps.
type Scheduler struct {
	mu      sync.Mutex
	queue   []func()
	running bool
	stopCh  chan struct{}
	ran     int
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Schedule queues a step.
func (s *Scheduler) Schedule(step func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append(s.queue, step)
}

// Run executes queued steps, including steps they queue, until the queue
// is empty, ctx is cancelled, or Stop is called. It returns ctx.Err() on
// cancellation; remaining steps stay queued.
func (s *Scheduler) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil // Already running
	}
	s.running = true
	s.stopCh = make(chan struct{})
	stopCh := s.stopCh
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("scheduler: interrupted with %d steps pending", s.Pending())
			return ctx.Err()
		case <-stopCh:
			return nil
		default:
		}

		step, ok := s.next()
		if !ok {
			return nil
		}
		step()
	}
}

// Stop makes a running Run return before its next step.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	close(s.stopCh)
}

// Pending returns the number of queued steps.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Ran returns how many steps have been run.
func (s *Scheduler) Ran() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ran
}

func (s *Scheduler) next() (func(), bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return nil, false
	}
	step := s.queue[0]
	s.queue[0] = nil
	s.queue = s.queue[1:]
	s.ran++
	return step, true
}
