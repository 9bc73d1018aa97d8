package triage

import (
	"log/slog"

	"github.com/vietddude/triage/domain"
)

// ExecuteRecoveryAction carries out a recovery action chosen by the
// user or by policy. Actions with external effects are forwarded to
// the collaborators as fire-and-forget requests; the coordinator does
// not implement or await them.
func (c *Coordinator) ExecuteRecoveryAction(a domain.RecoveryAction, e *domain.Error) {
	c.submit(func() { c.executeAction(a, e) })
}

// executeAction runs on the actor.
func (c *Coordinator) executeAction(a domain.RecoveryAction, e *domain.Error) {
	cls := domain.Classify(e)
	code := cls.Code

	switch a.Type {
	case domain.ActionRetry:
		fn, ok := c.retryFuncs[code]
		if !ok {
			slog.Warn("no retry operation registered", "code", code)
			return
		}
		if c.closing() {
			return
		}
		if c.sched.Manual(code, c.runner(code, fn)) {
			c.history.markRetried(code)
			c.trackPending(code)
		} else {
			// Ceiling exhausted: degrade to presentation.
			c.appendOutcome(code, domain.OutcomeGaveUp)
			c.present(e, cls)
		}

	case domain.ActionRetryWithDelay:
		fn, ok := c.retryFuncs[code]
		if !ok {
			slog.Warn("no retry operation registered", "code", code)
			return
		}
		if c.closing() {
			return
		}
		if c.sched.ScheduleIn(code, a.Delay, c.runner(code, fn)) {
			c.history.markRetried(code)
			c.trackPending(code)
		} else {
			c.appendOutcome(code, domain.OutcomeGaveUp)
			c.present(e, cls)
		}

	case domain.ActionRedownloadModel:
		model := a.Model
		if model == "" {
			model = e.Model
		}
		go c.notifier.RequestRedownload(model)

	case domain.ActionClearCache:
		go c.notifier.RequestClearCache()

	case domain.ActionFreeMemory:
		go c.notifier.RequestFreeMemory()

	case domain.ActionRestartApp:
		go c.notifier.RequestRestart()

	case domain.ActionCheckStorage:
		go c.notifier.RequestNavigateToStorage()

	case domain.ActionOpenSettings:
		go c.notifier.RequestOpenSettings()

	case domain.ActionSwitchFallbackModel:
		go c.notifier.RequestSwitchFallbackModel()

	case domain.ActionContactSupport:
		diagnostic, err := c.store.ExportString()
		if err != nil {
			slog.Error("failed to export logs for support", "error", err)
		}
		go c.notifier.RequestContactSupport(diagnostic)

	case domain.ActionCheckNetwork:
		// Guidance only: no collaborator attached to this action.
		slog.Debug("check-network guidance issued", "code", code)

	case domain.ActionDismiss:
		c.dismiss()
	}
}

// Dismiss clears the currently presented error and drops its retry
// state and registered retry operation.
func (c *Coordinator) Dismiss() {
	c.submit(c.dismiss)
}

// dismiss runs on the actor.
func (c *Coordinator) dismiss() {
	if c.current == nil {
		return
	}
	code := c.current.cls.Code
	c.sched.Cancel(code)
	delete(c.retryFuncs, code)
	c.clearPresented()
}
