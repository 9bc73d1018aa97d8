package triage

import "github.com/vietddude/triage/domain"

// historyRing is the bounded in-memory error history. Oldest entries
// are evicted first. Confined to the coordinator's actor.
type historyRing struct {
	limit   int
	entries []domain.LogEntry
}

func newHistoryRing(limit int) *historyRing {
	if limit <= 0 {
		limit = 100
	}
	return &historyRing{limit: limit, entries: make([]domain.LogEntry, 0, limit)}
}

func (h *historyRing) push(e domain.LogEntry) {
	if len(h.entries) >= h.limit {
		// Shift left, drop oldest
		copy(h.entries, h.entries[1:])
		h.entries[len(h.entries)-1] = e
	} else {
		h.entries = append(h.entries, e)
	}
}

// markRetried flips WasRetried on the most recent entry for code.
func (h *historyRing) markRetried(code string) {
	for i := len(h.entries) - 1; i >= 0; i-- {
		if h.entries[i].Code == code {
			h.entries[i].WasRetried = true
			return
		}
	}
}

// recent returns up to limit entries, newest first.
func (h *historyRing) recent(limit int) []domain.LogEntry {
	if limit <= 0 || len(h.entries) == 0 {
		return nil
	}
	if limit > len(h.entries) {
		limit = len(h.entries)
	}
	out := make([]domain.LogEntry, limit)
	for i := 0; i < limit; i++ {
		out[i] = h.entries[len(h.entries)-1-i]
	}
	return out
}

func (h *historyRing) len() int { return len(h.entries) }
