package triage

import (
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/vietddude/triage/domain"
	"github.com/vietddude/triage/metrics"
	"github.com/vietddude/triage/retry"
	"github.com/vietddude/triage/sanitize"
)

// HandleOption attaches context to a Handle call.
type HandleOption func(*handleOpts)

type handleOpts struct {
	operation string
	retry     RetryFunc
}

// WithOperation records which operation raised the error.
func WithOperation(op string) HandleOption {
	return func(o *handleOpts) { o.operation = op }
}

// WithRetry supplies the operation to re-run on retry. It is also
// remembered for the error's code, so manual recovery actions and
// later failures of the same code can reuse it.
func WithRetry(fn RetryFunc) HandleOption {
	return func(o *handleOpts) { o.retry = fn }
}

// Handle submits an error to the pipeline. It never blocks beyond the
// enqueue and never returns a failure to the caller: errors in error
// handling stay inside the coordinator.
func (c *Coordinator) Handle(err error, opts ...HandleOption) {
	if err == nil {
		return
	}
	var o handleOpts
	for _, opt := range opts {
		opt(&o)
	}
	c.submit(func() { c.handle(domain.FromErr(err), o) })
}

// handle runs on the actor.
func (c *Coordinator) handle(e *domain.Error, o handleOpts) {
	cls := domain.Classify(e)
	msg := sanitize.Sanitize(cls.Message)

	line := cls.Code + " | " + string(cls.Category) + " | " + msg
	if o.operation != "" {
		line += " | op=" + sanitize.Sanitize(o.operation)
	}
	if cls.Severity == domain.SeverityCritical {
		// Host details stay verbatim on critical entries: diagnostic
		// value outweighs the privacy cost at that severity.
		line += fmt.Sprintf(" | host=%s/%s go=%s", runtime.GOOS, runtime.GOARCH, runtime.Version())
	}
	c.store.Append(line, cls.Severity)

	entry := domain.LogEntry{
		ID:        uuid.New(),
		Code:      cls.Code,
		Severity:  cls.Severity,
		Category:  cls.Category,
		Message:   msg,
		Operation: o.operation,
		Timestamp: time.Now().UTC(),
	}
	c.history.push(entry)
	metrics.ErrorsTotal.WithLabelValues(string(cls.Category), cls.Severity.String()).Inc()

	if o.retry != nil {
		c.retryFuncs[cls.Code] = o.retry
	}

	switch cls.Severity {
	case domain.SeverityCritical:
		c.present(e, cls)
		c.reportCrash(e, entry)
	case domain.SeverityHigh:
		c.present(e, cls)
	case domain.SeverityMedium:
		if cls.Retryable && !c.closing() {
			if fn, ok := c.retryFuncs[cls.Code]; ok {
				if c.scheduleAuto(cls.Code, fn) {
					return
				}
				c.appendOutcome(cls.Code, domain.OutcomeGaveUp)
			}
		}
		c.present(e, cls)
	default:
		// Low severity: log only, never presented, never retried.
	}
}

// scheduleAuto arms the next backoff retry for code. Returns false
// when the attempt ceiling is exhausted.
func (c *Coordinator) scheduleAuto(code string, fn RetryFunc) bool {
	delay, ok := c.sched.ScheduleAuto(code, c.runner(code, fn))
	if !ok {
		return false
	}
	c.history.markRetried(code)
	c.trackPending(code)
	slog.Debug("auto-retry scheduled", "code", code, "delay", delay)
	return true
}

// trackPending records the newly armed attempt. Re-arming a code whose
// timer was still pending replaces that attempt, so its record is
// reused in place rather than left pending forever.
func (c *Coordinator) trackPending(code string) {
	for i := len(c.outcomes) - 1; i >= 0; i-- {
		if c.outcomes[i].Code == code && c.outcomes[i].Outcome == domain.OutcomePending {
			c.outcomes[i].Attempt = c.sched.Attempts(code)
			c.outcomes[i].At = time.Now().UTC()
			return
		}
	}
	c.pushOutcome(domain.RetryRecord{
		Code:    code,
		Attempt: c.sched.Attempts(code),
		At:      time.Now().UTC(),
		Outcome: domain.OutcomePending,
	})
}

// runner wraps a RetryFunc for the scheduler. The function itself runs
// on the scheduler's goroutine, outside the actor; only the outcome
// bookkeeping re-enters the serialized context.
func (c *Coordinator) runner(code string, fn RetryFunc) retry.Operation {
	return func() {
		err := runRetry(fn)
		c.submit(func() { c.finishRetry(code, err) })
	}
}

func runRetry(fn RetryFunc) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("retry operation panicked: %v", r)
		}
	}()
	return fn()
}

// finishRetry runs on the actor with the retry operation's result.
func (c *Coordinator) finishRetry(code string, err error) {
	if err == nil {
		c.sched.RecordSuccess(code)
		c.resolveOutcome(code, domain.OutcomeSuccess)
		c.history.markRetried(code)
		metrics.RetryOutcomes.WithLabelValues(string(domain.OutcomeSuccess)).Inc()
		if c.current != nil && c.current.cls.Code == code {
			c.clearPresented()
		}
		slog.Debug("retry succeeded", "code", code)
		return
	}

	c.resolveOutcome(code, domain.OutcomeFailure)
	metrics.RetryOutcomes.WithLabelValues(string(domain.OutcomeFailure)).Inc()
	slog.Debug("retry failed", "code", code, "error", err)

	// The failure re-enters the pipeline as a fresh error. Recursion
	// depth is bounded by the retry ceiling.
	c.handle(domain.FromErr(err), handleOpts{})
}

func (c *Coordinator) present(e *domain.Error, cls domain.Classification) {
	c.current = &presented{err: e, cls: cls}
	metrics.ErrorsPresented.WithLabelValues(cls.Severity.String()).Inc()
	go c.presenter.Present(e, cls)
}

func (c *Coordinator) clearPresented() {
	c.current = nil
	go c.presenter.Dismissed()
}

func (c *Coordinator) reportCrash(e *domain.Error, entry domain.LogEntry) {
	metrics.CrashReports.Inc()
	go c.crash.Report(e, entry)
}

// pushOutcome appends a retry record, evicting the oldest beyond the
// ring bound.
func (c *Coordinator) pushOutcome(r domain.RetryRecord) {
	if len(c.outcomes) >= outcomeLimit {
		copy(c.outcomes, c.outcomes[1:])
		c.outcomes[len(c.outcomes)-1] = r
	} else {
		c.outcomes = append(c.outcomes, r)
	}
}

// appendOutcome records a terminal outcome with no pending record.
func (c *Coordinator) appendOutcome(code string, outcome domain.RetryOutcome) {
	c.pushOutcome(domain.RetryRecord{
		Code:    code,
		Attempt: c.sched.Attempts(code),
		At:      time.Now().UTC(),
		Outcome: outcome,
	})
	metrics.RetryOutcomes.WithLabelValues(string(outcome)).Inc()
}

// resolveOutcome settles the most recent pending record for code, or
// appends one when the retry was fired without scheduling bookkeeping.
func (c *Coordinator) resolveOutcome(code string, outcome domain.RetryOutcome) {
	for i := len(c.outcomes) - 1; i >= 0; i-- {
		if c.outcomes[i].Code == code && c.outcomes[i].Outcome == domain.OutcomePending {
			c.outcomes[i].Outcome = outcome
			return
		}
	}
	c.pushOutcome(domain.RetryRecord{
		Code:    code,
		Attempt: c.sched.Attempts(code),
		At:      time.Now().UTC(),
		Outcome: outcome,
	})
}
