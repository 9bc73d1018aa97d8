package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vietddude/triage/config"
	"github.com/vietddude/triage/domain"
)

// =============================================================================
// Mock Source
// =============================================================================

type mockSource struct {
	entries []domain.LogEntry
	stats   domain.Statistics
}

func (s *mockSource) Statistics() domain.Statistics { return s.stats }

func (s *mockSource) Recent(limit int) []domain.LogEntry {
	if limit > len(s.entries) {
		limit = len(s.entries)
	}
	return s.entries[:limit]
}

func entry(sev domain.Severity, age time.Duration) domain.LogEntry {
	return domain.LogEntry{
		Severity:  sev,
		Timestamp: time.Now().UTC().Add(-age),
	}
}

// =============================================================================
// Monitor
// =============================================================================

func TestMonitor_StatusDerivation(t *testing.T) {
	cfg := config.HealthConfig{
		CriticalWindow:       15 * time.Minute,
		DegradedThreshold24h: 60,
	}

	tests := []struct {
		name    string
		entries []domain.LogEntry
		stats   domain.Statistics
		want    Status
	}{
		{
			name: "no errors is healthy",
			want: StatusHealthy,
		},
		{
			name:    "recent critical entry",
			entries: []domain.LogEntry{entry(domain.SeverityCritical, time.Minute)},
			want:    StatusCritical,
		},
		{
			name:    "old critical entry outside the window",
			entries: []domain.LogEntry{entry(domain.SeverityCritical, time.Hour)},
			want:    StatusHealthy,
		},
		{
			name:    "recent high entry degrades",
			entries: []domain.LogEntry{entry(domain.SeverityHigh, time.Minute)},
			want:    StatusDegraded,
		},
		{
			name:    "low noise stays healthy",
			entries: []domain.LogEntry{entry(domain.SeverityLow, time.Minute), entry(domain.SeverityMedium, time.Minute)},
			want:    StatusHealthy,
		},
		{
			name:  "24h volume over threshold degrades",
			stats: domain.Statistics{Last24h: 61},
			want:  StatusDegraded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMonitor(&mockSource{entries: tt.entries, stats: tt.stats}, cfg)
			report := m.Check()
			if report.Status != tt.want {
				t.Errorf("status = %s, want %s", report.Status, tt.want)
			}
		})
	}
}

func TestMonitor_RateLimitsChecks(t *testing.T) {
	src := &mockSource{}
	m := NewMonitor(src, config.HealthConfig{CriticalWindow: 15 * time.Minute, DegradedThreshold24h: 60})

	first := m.Check()
	src.entries = []domain.LogEntry{entry(domain.SeverityCritical, time.Minute)}
	second := m.Check()

	if second.Status != first.Status {
		t.Error("checks within the rate-limit window should return the cached report")
	}
}

// =============================================================================
// Server
// =============================================================================

func newTestServer(src *mockSource) *Server {
	m := NewMonitor(src, config.HealthConfig{CriticalWindow: 15 * time.Minute, DegradedThreshold24h: 60})
	return NewServer(m, src, 0)
}

func TestServer_Health(t *testing.T) {
	s := newTestServer(&mockSource{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != string(StatusHealthy) {
		t.Errorf("status = %s, want healthy", body["status"])
	}
}

func TestServer_HealthCriticalIs503(t *testing.T) {
	s := newTestServer(&mockSource{
		entries: []domain.LogEntry{entry(domain.SeverityCritical, time.Minute)},
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestServer_Detailed(t *testing.T) {
	s := newTestServer(&mockSource{
		entries: []domain.LogEntry{entry(domain.SeverityHigh, time.Minute)},
		stats:   domain.Statistics{Total: 1, Last24h: 1},
	})

	req := httptest.NewRequest(http.MethodGet, "/health/detailed", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var report Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if report.Status != StatusDegraded {
		t.Errorf("status = %s, want degraded", report.Status)
	}
	if report.HighRecent != 1 || report.Errors24h != 1 {
		t.Errorf("report = %+v", report)
	}
}

func TestServer_RecentErrors(t *testing.T) {
	src := &mockSource{entries: []domain.LogEntry{
		{Code: "NET_002", Severity: domain.SeverityMedium, Timestamp: time.Now().UTC()},
		{Code: "MEM_001", Severity: domain.SeverityCritical, Timestamp: time.Now().UTC()},
	}}
	s := newTestServer(src)

	req := httptest.NewRequest(http.MethodGet, "/errors/recent?limit=1", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var entries []domain.LogEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(entries) != 1 || entries[0].Code != "NET_002" {
		t.Errorf("entries = %+v", entries)
	}

	// Bad limit rejected.
	req = httptest.NewRequest(http.MethodGet, "/errors/recent?limit=zero", nil)
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad limit status = %d, want 400", rec.Code)
	}
}
