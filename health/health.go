// Package health provides error-subsystem health monitoring and status
// reporting.
package health

import (
	"time"

	"github.com/vietddude/triage/domain"
)

// Status represents the overall health state of the subsystem.
type Status string

const (
	StatusHealthy  Status = "healthy"
	StatusDegraded Status = "degraded"
	StatusCritical Status = "critical"
)

// Source exposes the coordinator state the monitor derives health
// from.
type Source interface {
	Statistics() domain.Statistics
	Recent(limit int) []domain.LogEntry
}

// Report contains the full health report.
type Report struct {
	Status         Status            `json:"status"`
	CriticalRecent int               `json:"critical_recent"`
	HighRecent     int               `json:"high_recent"`
	Errors24h      int               `json:"errors_24h"`
	Window         time.Duration     `json:"window_ns"`
	Statistics     domain.Statistics `json:"statistics"`
	CheckedAt      time.Time         `json:"checked_at"`
}
