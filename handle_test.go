package triage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vietddude/triage/config"
	"github.com/vietddude/triage/domain"
)

// =============================================================================
// Mock Collaborators
// =============================================================================

type mockPresenter struct {
	mu        sync.Mutex
	presented []domain.Classification
	dismissed int
}

func (p *mockPresenter) Present(e *domain.Error, c domain.Classification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.presented = append(p.presented, c)
}

func (p *mockPresenter) Dismissed() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dismissed++
}

func (p *mockPresenter) presentCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.presented)
}

type mockCrashReporter struct {
	reports atomic.Int32
}

func (r *mockCrashReporter) Report(*domain.Error, domain.LogEntry) {
	r.reports.Add(1)
}

// =============================================================================
// Helpers
// =============================================================================

func newTestCoordinator(t *testing.T, opts ...Option) *Coordinator {
	t.Helper()
	cfg := config.Default()
	cfg.Log.Dir = t.TempDir()
	cfg.Retry.BaseDelay = 5 * time.Millisecond
	cfg.Retry.MaxDelay = time.Second

	c, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = c.Close(ctx)
	})
	return c
}

// sync waits for all prior submissions to be applied by the actor.
func (c *Coordinator) sync() {
	_ = c.HistoryLen()
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

// =============================================================================
// Severity Routing
// =============================================================================

func TestHandle_LowSeverityIsSilent(t *testing.T) {
	presenter := &mockPresenter{}
	c := newTestCoordinator(t, WithPresenter(presenter))

	c.Handle(domain.NewMemoryPressure())
	c.sync()

	if c.IsShowingError() {
		t.Error("low severity must not present")
	}
	if c.HistoryLen() != 1 {
		t.Errorf("history len = %d, want 1 (low severity still logs)", c.HistoryLen())
	}
	if n := presenter.presentCount(); n != 0 {
		t.Errorf("presenter called %d times for low severity", n)
	}
}

func TestHandle_HighSeverityPresents(t *testing.T) {
	presenter := &mockPresenter{}
	c := newTestCoordinator(t, WithPresenter(presenter))

	c.Handle(domain.NewModelNotFound("llama-3b"))
	c.sync()

	if !c.IsShowingError() {
		t.Fatal("high severity must present")
	}
	_, cls, ok := c.CurrentError()
	if !ok || cls.Code != "MDL_001" {
		t.Errorf("CurrentError = (%v, %v), want MDL_001", cls.Code, ok)
	}
	waitFor(t, "presenter notification", func() bool { return presenter.presentCount() == 1 })
}

func TestHandle_CriticalReportsCrashExactlyOnce(t *testing.T) {
	crash := &mockCrashReporter{}
	c := newTestCoordinator(t, WithCrashReporter(crash))

	c.Handle(domain.NewOutOfMemory())
	c.sync()

	if !c.IsShowingError() {
		t.Error("critical severity must present")
	}
	waitFor(t, "crash report", func() bool { return crash.reports.Load() == 1 })

	// Settling time: no duplicate report may arrive.
	time.Sleep(20 * time.Millisecond)
	if n := crash.reports.Load(); n != 1 {
		t.Errorf("crash reported %d times, want exactly 1", n)
	}
}

func TestHandle_MediumRetryableSchedulesInsteadOfPresenting(t *testing.T) {
	// Base delay long enough that the scheduled state is observable
	// before the timer fires.
	cfg := config.Default()
	cfg.Log.Dir = t.TempDir()
	cfg.Retry.BaseDelay = 150 * time.Millisecond
	c, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = c.Close(ctx)
	})

	var calls atomic.Int32
	c.Handle(domain.NewNetworkTimeout(), WithRetry(func() error {
		calls.Add(1)
		return nil
	}))
	c.sync()

	if c.IsShowingError() {
		t.Error("medium retryable with a retry op must not present")
	}
	if got := c.RetryAttempts("NET_002"); got != 1 {
		t.Errorf("attempts = %d, want 1", got)
	}

	entries := c.Recent(1)
	if len(entries) != 1 || !entries[0].WasRetried {
		t.Errorf("history entry should be marked retried: %+v", entries)
	}

	waitFor(t, "retry to fire and succeed", func() bool { return calls.Load() == 1 })
}

func TestHandle_MediumWithoutRetryOpPresents(t *testing.T) {
	c := newTestCoordinator(t)

	c.Handle(domain.NewNetworkTimeout())
	c.sync()

	if !c.IsShowingError() {
		t.Error("medium retryable without a retry op must present")
	}
}

func TestHandle_MediumNonRetryablePresents(t *testing.T) {
	c := newTestCoordinator(t)

	c.Handle(domain.NewNoModelLoaded(), WithRetry(func() error { return nil }))
	c.sync()

	if !c.IsShowingError() {
		t.Error("medium non-retryable must present even with a retry op")
	}
}

func TestHandle_UnclassifiedErrorWrappedAsUnexpected(t *testing.T) {
	crash := &mockCrashReporter{}
	c := newTestCoordinator(t, WithCrashReporter(crash))

	c.Handle(errors.New("something exploded"))
	c.sync()

	entries := c.Recent(1)
	if len(entries) != 1 || entries[0].Code != "SYS_005" {
		t.Fatalf("unclassified error should log as SYS_005, got %+v", entries)
	}
	if !c.IsShowingError() {
		t.Error("unexpected errors are critical and must present")
	}
	waitFor(t, "crash report", func() bool { return crash.reports.Load() == 1 })
}

func TestHandle_NilIsNoop(t *testing.T) {
	c := newTestCoordinator(t)
	c.Handle(nil)
	c.sync()
	if c.HistoryLen() != 0 {
		t.Error("nil error should not be recorded")
	}
}

// =============================================================================
// History
// =============================================================================

func TestHistoryRingBounded(t *testing.T) {
	c := newTestCoordinator(t)

	for i := 0; i < 150; i++ {
		c.Handle(domain.NewInvalidInput(fmt.Sprintf("field-%d", i)))
	}
	c.sync()

	if got := c.HistoryLen(); got != 100 {
		t.Fatalf("history len = %d, want 100", got)
	}

	entries := c.Recent(200)
	if len(entries) != 100 {
		t.Fatalf("Recent returned %d entries, want 100", len(entries))
	}
	// The 100 most recent survive: newest is field-149, oldest field-50.
	if entries[0].Message != domain.NewInvalidInput("field-149").Message() {
		t.Errorf("newest entry = %q", entries[0].Message)
	}
	if entries[99].Message != domain.NewInvalidInput("field-50").Message() {
		t.Errorf("oldest surviving entry = %q", entries[99].Message)
	}
}

func TestHandle_OperationContextRecorded(t *testing.T) {
	c := newTestCoordinator(t)

	c.Handle(domain.NewExportFailed("chat.md", nil), WithOperation("export_conversation"))
	c.sync()

	entries := c.Recent(1)
	if len(entries) != 1 || entries[0].Operation != "export_conversation" {
		t.Errorf("operation context missing: %+v", entries)
	}
}

// =============================================================================
// Retry Pipeline
// =============================================================================

func TestEndToEnd_FailsTwiceThenSucceeds(t *testing.T) {
	c := newTestCoordinator(t)

	// The submitted timeout is the first failure; the retry op fails
	// once more, then succeeds. Two retries get scheduled in total.
	var calls atomic.Int32
	retryOp := func() error {
		if calls.Add(1) == 1 {
			return domain.NewNetworkTimeout()
		}
		return nil
	}

	c.Handle(domain.NewNetworkTimeout(), WithOperation("send_message"), WithRetry(retryOp))

	waitFor(t, "retry op to succeed", func() bool { return calls.Load() == 2 })
	// Full reset after success: a fresh failure starts a new curve.
	// The success lands on the actor after the op returns, so poll.
	waitFor(t, "attempt counter reset", func() bool { return c.RetryAttempts("NET_002") == 0 })

	if c.IsShowingError() {
		t.Error("final state must not present: the retry succeeded")
	}

	var matching []domain.LogEntry
	for _, e := range c.Recent(10) {
		if e.Code == "NET_002" {
			matching = append(matching, e)
		}
	}
	if len(matching) != 2 {
		t.Fatalf("history has %d NET_002 entries, want 2", len(matching))
	}
	// Newest-first: the last matching entry chronologically is first.
	if !matching[0].WasRetried {
		t.Error("last NET_002 entry should be marked wasRetried")
	}

	stats := c.Statistics()
	if stats.RetriesAttempted != 2 || stats.RetriesSucceeded != 1 {
		t.Errorf("retries = %d attempted / %d succeeded, want 2/1",
			stats.RetriesAttempted, stats.RetriesSucceeded)
	}
	if stats.RetrySuccessRate != 0.5 {
		t.Errorf("RetrySuccessRate = %v, want 0.5", stats.RetrySuccessRate)
	}
}

func TestRetry_CeilingExhaustionPresents(t *testing.T) {
	presenter := &mockPresenter{}
	c := newTestCoordinator(t, WithPresenter(presenter))

	var calls atomic.Int32
	retryOp := func() error {
		calls.Add(1)
		return domain.NewNetworkTimeout()
	}

	c.Handle(domain.NewNetworkTimeout(), WithRetry(retryOp))

	// Three attempts burn the ceiling; the fourth failure surfaces.
	waitFor(t, "ceiling exhaustion", func() bool { return c.IsShowingError() })
	if got := calls.Load(); got != 3 {
		t.Errorf("retry op ran %d times, want 3", got)
	}
	if got := c.RetryAttempts("NET_002"); got != 3 {
		t.Errorf("attempts = %d, want 3 (ceiling)", got)
	}
}

func TestRetry_PanicIsContainedAndResubmitted(t *testing.T) {
	c := newTestCoordinator(t)

	var calls atomic.Int32
	c.Handle(domain.NewMessageSendFailed(nil), WithRetry(func() error {
		calls.Add(1)
		panic("retry exploded")
	}))

	// The panic is recovered, wrapped as unexpected (critical), and
	// presented rather than crashing the host.
	waitFor(t, "panic to surface", func() bool { return c.IsShowingError() })
	_, cls, _ := c.CurrentError()
	if cls.Code != "SYS_005" {
		t.Errorf("panicked retry surfaced as %s, want SYS_005", cls.Code)
	}
}

// =============================================================================
// Dismiss
// =============================================================================

func TestDismiss(t *testing.T) {
	presenter := &mockPresenter{}
	c := newTestCoordinator(t, WithPresenter(presenter))

	c.Handle(domain.NewModelNotFound("llama-3b"))
	c.sync()
	if !c.IsShowingError() {
		t.Fatal("setup: error should be presented")
	}

	c.Dismiss()
	c.sync()

	if c.IsShowingError() {
		t.Error("Dismiss should clear the presented error")
	}
	waitFor(t, "dismissed notification", func() bool {
		presenter.mu.Lock()
		defer presenter.mu.Unlock()
		return presenter.dismissed == 1
	})

	// Dismissing with nothing presented is a no-op.
	c.Dismiss()
	c.sync()
}

func TestStatistics_Windows(t *testing.T) {
	c := newTestCoordinator(t)

	c.Handle(domain.NewNetworkTimeout())
	c.Handle(domain.NewNetworkTimeout())
	c.Handle(domain.NewOutOfMemory())
	c.sync()

	stats := c.Statistics()
	if stats.Total != 3 {
		t.Errorf("Total = %d, want 3", stats.Total)
	}
	if stats.Last24h != 3 || stats.Last7d != 3 {
		t.Errorf("windows = %d/%d, want 3/3", stats.Last24h, stats.Last7d)
	}
	if stats.MostFrequentCode != "NET_002" {
		t.Errorf("MostFrequentCode = %s, want NET_002", stats.MostFrequentCode)
	}
	if stats.ByCategory[domain.CategoryNetwork] != 2 {
		t.Errorf("ByCategory[network] = %d, want 2", stats.ByCategory[domain.CategoryNetwork])
	}
	if stats.BySeverity[domain.SeverityCritical] != 1 {
		t.Errorf("BySeverity[critical] = %d, want 1", stats.BySeverity[domain.SeverityCritical])
	}
}

func TestClose_Idempotent(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Dir = t.TempDir()
	c, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	if err := c.Close(ctx); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := c.Close(ctx); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}

	// Post-close calls are no-ops, not panics.
	c.Handle(domain.NewNetworkTimeout())
	c.Dismiss()
	if c.IsShowingError() {
		t.Error("closed coordinator should report zero values")
	}
}

func TestClose_CancelsRetryQueuedBehindSlowWork(t *testing.T) {
	presenter := &mockPresenter{}
	cfg := config.Default()
	cfg.Log.Dir = t.TempDir()
	cfg.Retry.BaseDelay = time.Millisecond
	c, err := New(cfg, WithPresenter(presenter))
	if err != nil {
		t.Fatal(err)
	}

	// Park the actor so the retryable error is still in the inbox when
	// Close begins; the shutdown drain applies it.
	gate := make(chan struct{})
	c.submit(func() { <-gate })

	var calls atomic.Int32
	c.Handle(domain.NewNetworkTimeout(), WithRetry(func() error {
		calls.Add(1)
		return nil
	}))

	go func() {
		time.Sleep(10 * time.Millisecond)
		close(gate)
	}()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Close(ctx); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	time.Sleep(50 * time.Millisecond)
	if n := calls.Load(); n != 0 {
		t.Errorf("retry operation ran %d times after Close", n)
	}
}

func TestRetry_ReArmingReplacesPendingRecord(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Dir = t.TempDir()
	cfg.Retry.BaseDelay = time.Hour // keep the timer pending
	cfg.Retry.MaxDelay = 2 * time.Hour
	c, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = c.Close(ctx)
	})

	op := func() error { return nil }
	c.Handle(domain.NewNetworkTimeout(), WithRetry(op))
	c.Handle(domain.NewNetworkTimeout(), WithRetry(op))
	c.sync()

	type pendingState struct {
		count   int
		attempt int
	}
	got := ask(c, func() pendingState {
		var st pendingState
		for _, r := range c.outcomes {
			if r.Code == "NET_002" && r.Outcome == domain.OutcomePending {
				st.count++
				st.attempt = r.Attempt
			}
		}
		return st
	})
	if got.count != 1 {
		t.Errorf("pending retry records = %d, want 1 (re-arming replaces the superseded attempt)", got.count)
	}
	if got.attempt != 2 {
		t.Errorf("pending record attempt = %d, want 2", got.attempt)
	}
}
