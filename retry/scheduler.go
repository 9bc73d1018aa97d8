// Package retry implements per-error-code retry scheduling with
// exponential backoff and a bounded attempt ceiling.
package retry

import (
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/vietddude/triage/config"
	"github.com/vietddude/triage/metrics"
)

// Operation is the work to run when a retry fires. Outcome routing is
// the caller's job; the scheduler only guarantees at-most-once firing
// per arm.
type Operation func()

// codeState tracks one error code's retry progress.
//
// gen is bumped on every arm/cancel so a timer that fires after its
// state changed can detect it lost the race and do nothing.
type codeState struct {
	attempts int
	curve    backoff.BackOff
	timer    *time.Timer
	gen      uint64
	gaveUp   bool
}

// Scheduler owns retry state for all error codes. All state access is
// guarded by mu; operations never run under the lock.
type Scheduler struct {
	mu     sync.Mutex
	states map[string]*codeState

	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration
}

// NewScheduler builds a scheduler from retry configuration.
func NewScheduler(cfg config.RetryConfig) *Scheduler {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	baseDelay := cfg.BaseDelay
	if baseDelay <= 0 {
		baseDelay = 2 * time.Second
	}
	maxDelay := cfg.MaxDelay
	if maxDelay <= 0 {
		maxDelay = 60 * time.Second
	}
	return &Scheduler{
		states:      make(map[string]*codeState),
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
		maxDelay:    maxDelay,
	}
}

// newCurve returns the deterministic 2s, 4s, 8s... delay sequence. No
// jitter: the curve is part of the observable contract.
func (s *Scheduler) newCurve() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.baseDelay
	b.RandomizationFactor = 0
	b.Multiplier = 2
	b.MaxInterval = s.maxDelay
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

func (s *Scheduler) state(code string) *codeState {
	st, ok := s.states[code]
	if !ok {
		st = &codeState{curve: s.newCurve()}
		s.states[code] = st
	}
	return st
}

// ScheduleAuto arms a one-shot retry for code on the next backoff
// delay. Returns ok=false without arming anything when the attempt
// ceiling is reached; the caller must then surface the error instead.
func (s *Scheduler) ScheduleAuto(code string, op Operation) (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state(code)
	if st.gaveUp || st.attempts >= s.maxAttempts {
		st.gaveUp = true
		return 0, false
	}

	s.disarm(st)
	delay := st.curve.NextBackOff()
	st.attempts++
	s.arm(code, st, delay, op)
	metrics.RetriesScheduled.WithLabelValues(code).Inc()
	return delay, true
}

// ScheduleIn arms a retry after exactly d, independent of the backoff
// curve. The attempt still counts toward the ceiling.
func (s *Scheduler) ScheduleIn(code string, d time.Duration, op Operation) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state(code)
	if st.gaveUp || st.attempts >= s.maxAttempts {
		st.gaveUp = true
		return false
	}

	s.disarm(st)
	st.curve.NextBackOff() // the curve tracks attempts even off-curve
	st.attempts++
	s.arm(code, st, d, op)
	metrics.RetriesScheduled.WithLabelValues(code).Inc()
	return true
}

// Manual cancels any pending timer for code and runs op immediately on
// its own goroutine. Manual retries consume attempts like automatic
// ones, so user-driven loops stay bounded too.
func (s *Scheduler) Manual(code string, op Operation) bool {
	s.mu.Lock()
	st := s.state(code)
	if st.gaveUp || st.attempts >= s.maxAttempts {
		st.gaveUp = true
		s.mu.Unlock()
		return false
	}
	s.disarm(st)
	st.curve.NextBackOff() // the curve tracks attempts even off-curve
	st.attempts++
	st.gen++
	s.mu.Unlock()

	go op()
	return true
}

// RecordSuccess drops all state for code: a later unrelated failure
// starts a fresh backoff curve.
func (s *Scheduler) RecordSuccess(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.states[code]; ok {
		s.disarm(st)
		delete(s.states, code)
	}
}

// Cancel invalidates any pending timer for code and drops its state.
// A no-op when the code is idle.
func (s *Scheduler) Cancel(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.states[code]; ok {
		s.disarm(st)
		delete(s.states, code)
	}
}

// CancelAll cancels every pending timer and drops all state.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for code, st := range s.states {
		s.disarm(st)
		delete(s.states, code)
	}
}

// Attempts reports how many retries have been consumed for code.
func (s *Scheduler) Attempts(code string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.states[code]; ok {
		return st.attempts
	}
	return 0
}

// Pending reports whether a timer is armed for code.
func (s *Scheduler) Pending(code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[code]
	return ok && st.timer != nil
}

// NextDelay previews the delay the next ScheduleAuto would use,
// without consuming anything. Zero when the ceiling is reached.
func (s *Scheduler) NextDelay(code string) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	attempts := 0
	if st, ok := s.states[code]; ok {
		if st.gaveUp || st.attempts >= s.maxAttempts {
			return 0
		}
		attempts = st.attempts
	}

	delay := s.baseDelay
	for i := 0; i < attempts; i++ {
		delay *= 2
		if delay >= s.maxDelay {
			return s.maxDelay
		}
	}
	return delay
}

// arm must be called with mu held.
func (s *Scheduler) arm(code string, st *codeState, delay time.Duration, op Operation) {
	st.gen++
	gen := st.gen
	st.timer = time.AfterFunc(delay, func() {
		s.fire(code, gen, op)
	})
}

// disarm must be called with mu held.
func (s *Scheduler) disarm(st *codeState) {
	if st.timer != nil {
		st.timer.Stop()
		st.timer = nil
		st.gen++
	}
}

// fire claims the pending arm against the authoritative state. A timer
// whose state was cancelled or re-armed since is a no-op.
func (s *Scheduler) fire(code string, gen uint64, op Operation) {
	s.mu.Lock()
	st, ok := s.states[code]
	if !ok || st.gen != gen || st.timer == nil {
		s.mu.Unlock()
		return
	}
	st.timer = nil
	s.mu.Unlock()

	op()
}
