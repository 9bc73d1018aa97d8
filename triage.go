// Package triage is the error-handling core for a local-LLM chat
// backend: it classifies raw errors against a closed taxonomy, decides
// whether to present, auto-retry, or stay silent, keeps a bounded
// error history with derived statistics, and persists sanitized
// diagnostic logs.
//
// The Coordinator is a single-goroutine actor: all mutable state is
// confined to it and submissions apply in order, so no two Handle
// calls ever observe interleaved partial state.
package triage

import (
	"context"
	"sync"

	"github.com/vietddude/triage/config"
	"github.com/vietddude/triage/domain"
	"github.com/vietddude/triage/logstore"
	"github.com/vietddude/triage/notify"
	"github.com/vietddude/triage/retry"
)

// RetryFunc re-runs the operation that originally failed. It is
// supplied per call site and executed outside the coordinator's
// serialized context.
type RetryFunc func() error

// outcomeLimit bounds the retry-record ring backing the success ratio.
const outcomeLimit = 200

type presented struct {
	err *domain.Error
	cls domain.Classification
}

// Coordinator orchestrates classification, presentation policy, retry
// scheduling, history, and diagnostic logging.
type Coordinator struct {
	cfg   config.Config
	store *logstore.Store
	sched *retry.Scheduler

	notifier  notify.Notifier
	crash     notify.CrashReporter
	presenter notify.Presenter

	inbox   chan func()
	quit    chan struct{}
	stopped chan struct{}

	closeOnce sync.Once
	closeErr  error

	// Actor-confined state. Only the run goroutine touches it.
	history    *historyRing
	outcomes   []domain.RetryRecord
	retryFuncs map[string]RetryFunc
	current    *presented
}

// Option customizes a Coordinator.
type Option func(*Coordinator)

// WithNotifier routes recovery requests to n instead of discarding them.
func WithNotifier(n notify.Notifier) Option {
	return func(c *Coordinator) { c.notifier = n }
}

// WithCrashReporter escalates critical errors to r.
func WithCrashReporter(r notify.CrashReporter) Option {
	return func(c *Coordinator) { c.crash = r }
}

// WithPresenter notifies p of presentation changes.
func WithPresenter(p notify.Presenter) Option {
	return func(c *Coordinator) { c.presenter = p }
}

// WithStore injects a prebuilt log store. The coordinator takes
// ownership and closes it on Close.
func WithStore(s *logstore.Store) Option {
	return func(c *Coordinator) { c.store = s }
}

// New builds and starts a coordinator.
func New(cfg config.Config, opts ...Option) (*Coordinator, error) {
	c := &Coordinator{
		cfg:        cfg,
		sched:      retry.NewScheduler(cfg.Retry),
		notifier:   notify.NopNotifier{},
		crash:      notify.NopCrashReporter{},
		presenter:  notify.NopPresenter{},
		inbox:      make(chan func(), 128),
		quit:       make(chan struct{}),
		stopped:    make(chan struct{}),
		history:    newHistoryRing(cfg.History.Limit),
		retryFuncs: make(map[string]RetryFunc),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.store == nil {
		store, err := logstore.New(cfg.Log)
		if err != nil {
			return nil, err
		}
		c.store = store
	}

	go c.run()
	return c, nil
}

func (c *Coordinator) run() {
	defer close(c.stopped)
	for {
		select {
		case fn := <-c.inbox:
			fn()
		case <-c.quit:
			// Apply whatever was submitted before shutdown.
			for {
				select {
				case fn := <-c.inbox:
					fn()
				default:
					return
				}
			}
		}
	}
}

// submit enqueues fn onto the actor. Returns false after Close.
func (c *Coordinator) submit(fn func()) bool {
	select {
	case <-c.quit:
		return false
	default:
	}
	select {
	case c.inbox <- fn:
		return true
	case <-c.quit:
		return false
	}
}

// ask runs fn on the actor and waits for its reply. The zero value is
// returned when the coordinator is already closed.
func ask[T any](c *Coordinator, fn func() T) T {
	reply := make(chan T, 1)
	if !c.submit(func() { reply <- fn() }) {
		var zero T
		return zero
	}
	select {
	case v := <-reply:
		return v
	case <-c.stopped:
		// Shutdown drained the inbox, so the reply may still be there.
		select {
		case v := <-reply:
			return v
		default:
			var zero T
			return zero
		}
	}
}

// closing reports whether Close has begun. Submissions applied during
// the shutdown drain use it to keep new retry timers from being armed
// past teardown.
func (c *Coordinator) closing() bool {
	select {
	case <-c.quit:
		return true
	default:
		return false
	}
}

// Close stops intake, drains the actor queue, cancels all pending
// retries, and flushes and closes the log store. Idempotent.
func (c *Coordinator) Close(ctx context.Context) error {
	c.closeOnce.Do(func() {
		close(c.quit)
		select {
		case <-c.stopped:
		case <-ctx.Done():
			c.sched.CancelAll()
			c.closeErr = ctx.Err()
			return
		}
		// After the drain: anything the drained submissions armed is
		// cancelled too.
		c.sched.CancelAll()
		c.closeErr = c.store.Close(ctx)
	})
	return c.closeErr
}
