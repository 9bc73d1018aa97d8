package health

import (
	"sync"
	"time"

	"github.com/vietddude/triage/config"
	"github.com/vietddude/triage/domain"
)

// recentScan bounds how much history a single check inspects.
const recentScan = 200

// Monitor derives a health status from recent error activity.
type Monitor struct {
	source               Source
	window               time.Duration
	degradedThreshold24h int

	mu         sync.Mutex
	lastCheck  time.Time
	lastReport Report
}

// NewMonitor creates a health monitor.
func NewMonitor(source Source, cfg config.HealthConfig) *Monitor {
	window := cfg.CriticalWindow
	if window <= 0 {
		window = 15 * time.Minute
	}
	threshold := cfg.DegradedThreshold24h
	if threshold <= 0 {
		threshold = 60
	}
	return &Monitor{
		source:               source,
		window:               window,
		degradedThreshold24h: threshold,
	}
}

// Check produces a health report. Checks are rate limited to avoid
// hammering the coordinator from scrape loops.
func (m *Monitor) Check() Report {
	m.mu.Lock()
	defer m.mu.Unlock()

	if time.Since(m.lastCheck) < 5*time.Second && !m.lastCheck.IsZero() {
		return m.lastReport
	}

	now := time.Now().UTC()
	report := Report{
		Status:    StatusHealthy,
		Window:    m.window,
		CheckedAt: now,
	}

	cutoff := now.Add(-m.window)
	for _, e := range m.source.Recent(recentScan) {
		if e.Timestamp.Before(cutoff) {
			continue
		}
		switch e.Severity {
		case domain.SeverityCritical:
			report.CriticalRecent++
		case domain.SeverityHigh:
			report.HighRecent++
		}
	}

	stats := m.source.Statistics()
	report.Statistics = stats
	report.Errors24h = stats.Last24h

	switch {
	case report.CriticalRecent > 0:
		report.Status = StatusCritical
	case report.HighRecent > 0 || report.Errors24h > m.degradedThreshold24h:
		report.Status = StatusDegraded
	}

	m.lastCheck = now
	m.lastReport = report
	return report
}
