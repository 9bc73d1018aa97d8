package triage

import (
	"time"

	"github.com/vietddude/triage/domain"
)

// Statistics recomputes aggregate error statistics from the history
// and retry-outcome rings on every call. Nothing is cached: derived
// counters cannot drift from the history they summarize.
func (c *Coordinator) Statistics() domain.Statistics {
	return ask(c, func() domain.Statistics {
		return domain.ComputeStatistics(c.history.entries, c.outcomes, time.Now().UTC())
	})
}

// Recent returns up to limit history entries, newest first.
func (c *Coordinator) Recent(limit int) []domain.LogEntry {
	return ask(c, func() []domain.LogEntry {
		return c.history.recent(limit)
	})
}

// IsShowingError reports whether an error is currently presented.
func (c *Coordinator) IsShowingError() bool {
	return ask(c, func() bool {
		return c.current != nil
	})
}

// CurrentError returns the presented error and its classification.
func (c *Coordinator) CurrentError() (*domain.Error, domain.Classification, bool) {
	type answer struct {
		err *domain.Error
		cls domain.Classification
		ok  bool
	}
	a := ask(c, func() answer {
		if c.current == nil {
			return answer{}
		}
		return answer{err: c.current.err, cls: c.current.cls, ok: true}
	})
	return a.err, a.cls, a.ok
}

// RetryAttempts reports how many retries have been consumed for code.
func (c *Coordinator) RetryAttempts(code string) int {
	return ask(c, func() int {
		return c.sched.Attempts(code)
	})
}

// HistoryLen reports the current size of the bounded history ring.
func (c *Coordinator) HistoryLen() int {
	return ask(c, func() int {
		return c.history.len()
	})
}

// RecentLogLines returns the most recent persisted log lines.
func (c *Coordinator) RecentLogLines(limit int) []string {
	return c.store.Recent(limit)
}
