// Package autosave debounces persistence so a burst of session changes
// collapses into one write. A single pending timer is kept; every new
// change cancels and reschedules it.
package autosave

import (
	"log/slog"
	"sync"
	"time"

	"shoplens/internal/logging"
)

// DefaultDelay is how long the saver waits for changes to settle.
const DefaultDelay = 1500 * time.Millisecond

// SaveFunc persists the current state. It runs on the timer goroutine.
type SaveFunc func() error

// Saver coalesces rapid change notifications into delayed saves.
type Saver struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending bool
	stopped bool

	delay  time.Duration
	save   SaveFunc
	logger *slog.Logger
}

// New builds a saver around the given persistence function. A
// non-positive delay falls back to DefaultDelay.
func New(save SaveFunc, delay time.Duration, logger *slog.Logger) *Saver {
	if delay <= 0 {
		delay = DefaultDelay
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Saver{
		delay:  delay,
		save:   save,
		logger: logging.WithComponent(logger, "autosave"),
	}
}

// Notify marks the state dirty and (re)schedules the delayed save.
func (s *Saver) Notify() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	s.pending = true
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, s.fire)
}

func (s *Saver) fire() {
	s.mu.Lock()
	if !s.pending || s.stopped {
		s.mu.Unlock()
		return
	}
	s.pending = false
	s.mu.Unlock()

	if err := s.save(); err != nil {
		s.logger.Warn("autosave failed", logging.Error(err))
	}
}

// Flush runs any pending save immediately and cancels the timer.
func (s *Saver) Flush() error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
	}
	wasPending := s.pending
	s.pending = false
	s.mu.Unlock()

	if !wasPending {
		return nil
	}
	return s.save()
}

// Stop flushes pending work and refuses further notifications.
func (s *Saver) Stop() error {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return nil
	}
	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
	}
	wasPending := s.pending
	s.pending = false
	s.mu.Unlock()

	if !wasPending {
		return nil
	}
	return s.save()
}
