// Package notify is the boundary with the excluded collaborators:
// cache cleanup, memory reclamation, model management, navigation,
// crash reporting, and error presentation. Everything here is one-way
// and fire-and-forget; the coordinator never awaits completion.
package notify

import "github.com/vietddude/triage/domain"

// Notifier receives recovery requests. Implementations must return
// promptly; they are invoked from fire-and-forget goroutines.
type Notifier interface {
	RequestRedownload(model string)
	RequestClearCache()
	RequestFreeMemory()
	RequestRestart()
	RequestNavigateToStorage()
	RequestContactSupport(diagnostic string)
	RequestSwitchFallbackModel()
	RequestOpenSettings()
}

// CrashReporter receives critical errors for external diagnostics.
type CrashReporter interface {
	Report(e *domain.Error, entry domain.LogEntry)
}

// Presenter is told when an error should be shown to or removed from
// the user. Rendering is out of scope; this is a notification only.
type Presenter interface {
	Present(e *domain.Error, c domain.Classification)
	Dismissed()
}

// NopNotifier discards all requests.
type NopNotifier struct{}

func (NopNotifier) RequestRedownload(string)     {}
func (NopNotifier) RequestClearCache()           {}
func (NopNotifier) RequestFreeMemory()           {}
func (NopNotifier) RequestRestart()              {}
func (NopNotifier) RequestNavigateToStorage()    {}
func (NopNotifier) RequestContactSupport(string) {}
func (NopNotifier) RequestSwitchFallbackModel()  {}
func (NopNotifier) RequestOpenSettings()         {}

// NopCrashReporter discards all reports.
type NopCrashReporter struct{}

func (NopCrashReporter) Report(*domain.Error, domain.LogEntry) {}

// NopPresenter discards all presentation changes.
type NopPresenter struct{}

func (NopPresenter) Present(*domain.Error, domain.Classification) {}
func (NopPresenter) Dismissed()                                   {}
