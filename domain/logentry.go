package domain

import (
	"time"

	"github.com/google/uuid"
)

// LogEntry is an immutable record of a handled error. The coordinator
// appends one per Handle call; WasRetried is flipped when a retry is
// scheduled or succeeds for the entry's code.
type LogEntry struct {
	ID         uuid.UUID `json:"id"`
	Code       string    `json:"code"`
	Severity   Severity  `json:"severity"`
	Category   Category  `json:"category"`
	Message    string    `json:"message"`
	Operation  string    `json:"operation,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	WasRetried bool      `json:"was_retried"`
}

// RetryOutcome records where a scheduled retry ended up.
type RetryOutcome string

const (
	OutcomePending RetryOutcome = "pending"
	OutcomeSuccess RetryOutcome = "success"
	OutcomeFailure RetryOutcome = "failure"
	OutcomeGaveUp  RetryOutcome = "gave_up"
)

// RetryRecord tracks a single retry attempt and its outcome. The
// outcome field backs the retry-success ratio in Statistics.
type RetryRecord struct {
	Code    string       `json:"code"`
	Attempt int          `json:"attempt"`
	At      time.Time    `json:"at"`
	Outcome RetryOutcome `json:"outcome"`
}

// Statistics is derived from history on demand, never cached.
type Statistics struct {
	Total            int              `json:"total"`
	Last24h          int              `json:"last_24h"`
	Last7d           int              `json:"last_7d"`
	ByCategory       map[Category]int `json:"by_category"`
	BySeverity       map[Severity]int `json:"by_severity"`
	MostFrequentCode string           `json:"most_frequent_code,omitempty"`
	RetriesAttempted int              `json:"retries_attempted"`
	RetriesSucceeded int              `json:"retries_succeeded"`
	RetrySuccessRate float64          `json:"retry_success_rate"`
	GeneratedAt      time.Time        `json:"generated_at"`
}

// ComputeStatistics aggregates a history window and retry records.
// now is injected so windows are testable.
func ComputeStatistics(history []LogEntry, retries []RetryRecord, now time.Time) Statistics {
	stats := Statistics{
		Total:       len(history),
		ByCategory:  make(map[Category]int),
		BySeverity:  make(map[Severity]int),
		GeneratedAt: now,
	}

	dayAgo := now.Add(-24 * time.Hour)
	weekAgo := now.Add(-7 * 24 * time.Hour)
	codeCounts := make(map[string]int)

	for _, e := range history {
		if e.Timestamp.After(dayAgo) {
			stats.Last24h++
		}
		if e.Timestamp.After(weekAgo) {
			stats.Last7d++
		}
		stats.ByCategory[e.Category]++
		stats.BySeverity[e.Severity]++
		codeCounts[e.Code]++
	}

	best := 0
	for code, n := range codeCounts {
		if n > best || (n == best && code < stats.MostFrequentCode) {
			best = n
			stats.MostFrequentCode = code
		}
	}

	for _, r := range retries {
		switch r.Outcome {
		case OutcomeSuccess:
			stats.RetriesAttempted++
			stats.RetriesSucceeded++
		case OutcomeFailure, OutcomeGaveUp:
			stats.RetriesAttempted++
		}
	}
	if stats.RetriesAttempted > 0 {
		stats.RetrySuccessRate = float64(stats.RetriesSucceeded) / float64(stats.RetriesAttempted)
	}

	return stats
}
