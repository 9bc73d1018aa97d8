package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ErrorsTotal counts handled errors by category and severity
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_errors_total",
			Help: "Total number of errors handled",
		},
		[]string{"category", "severity"},
	)

	// ErrorsPresented counts errors surfaced to the user
	ErrorsPresented = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_errors_presented_total",
			Help: "Total number of errors presented to the user",
		},
		[]string{"severity"},
	)

	// RetriesScheduled counts scheduled retries per error code
	RetriesScheduled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_retries_scheduled_total",
			Help: "Total number of retries scheduled",
		},
		[]string{"code"},
	)

	// RetryOutcomes counts completed retries by outcome
	RetryOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_retry_outcomes_total",
			Help: "Total number of retry outcomes recorded",
		},
		[]string{"outcome"},
	)

	// CrashReports counts critical errors escalated to the crash reporter
	CrashReports = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "triage_crash_reports_total",
			Help: "Total number of crash reports sent",
		},
	)

	// LogLinesWritten counts lines persisted to the log store
	LogLinesWritten = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "triage_log_lines_written_total",
			Help: "Total number of log lines written",
		},
	)

	// LogWriteFailures counts swallowed log I/O failures
	LogWriteFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "triage_log_write_failures_total",
			Help: "Total number of log write failures",
		},
	)

	// LogLinesDropped counts lines dropped because the writer queue was full
	LogLinesDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "triage_log_lines_dropped_total",
			Help: "Total number of log lines dropped at enqueue",
		},
	)

	// LogRotations counts rotation passes that deleted at least one file
	LogRotations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "triage_log_rotations_total",
			Help: "Total number of log rotations performed",
		},
	)

	// LogFilesDeleted counts files removed by rotation
	LogFilesDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "triage_log_files_deleted_total",
			Help: "Total number of log files deleted by rotation",
		},
	)
)
