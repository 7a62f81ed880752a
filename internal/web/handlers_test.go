package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/satishreddimedapati/switchbuddy-cron/internal/debrief"
)

func serveRequest(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func saveSample(t *testing.T, dir, runID string, started time.Time) {
	t.Helper()

	report := &debrief.RunReport{
		RunID:     runID,
		Date:      started.Format("2006-01-02"),
		StartedAt: started,
		Entries: []debrief.UserOutcome{
			{UserID: "alice", Outcome: debrief.OutcomeDelivered},
			{UserID: "bob", Outcome: debrief.OutcomeFailed, Stage: debrief.StageSummarize, Reason: "quota"},
		},
	}
	if err := debrief.SaveReport(dir, report); err != nil {
		t.Fatalf("SaveReport failed: %v", err)
	}
}

func TestHealthz(t *testing.T) {
	s := NewServer(t.TempDir(), 10)

	w := serveRequest(t, s, "/healthz")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
}

func TestRunsEmptyHistory(t *testing.T) {
	s := NewServer(t.TempDir(), 10)

	w := serveRequest(t, s, "/api/runs")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Bad JSON: %v", err)
	}
	if resp.Count != 0 {
		t.Errorf("Expected 0 runs, got %d", resp.Count)
	}
}

func TestRunsReturnsHistory(t *testing.T) {
	dir := t.TempDir()
	saveSample(t, dir, "11111111-0000-0000-0000-000000000000", time.Date(2026, 8, 29, 14, 50, 0, 0, time.UTC))
	saveSample(t, dir, "22222222-0000-0000-0000-000000000000", time.Date(2026, 8, 30, 14, 50, 0, 0, time.UTC))

	s := NewServer(dir, 10)

	w := serveRequest(t, s, "/api/runs")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp struct {
		Runs  []runResponse `json:"runs"`
		Count int           `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Bad JSON: %v", err)
	}
	if resp.Count != 2 {
		t.Fatalf("Expected 2 runs, got %d", resp.Count)
	}
	if resp.Runs[0].Date != "2026-08-30" {
		t.Errorf("Expected newest run first, got %s", resp.Runs[0].Date)
	}
	if resp.Runs[0].Delivered != 1 || resp.Runs[0].Failed != 1 {
		t.Errorf("Unexpected counts: %+v", resp.Runs[0])
	}
}

func TestLatestRun(t *testing.T) {
	dir := t.TempDir()
	saveSample(t, dir, "33333333-0000-0000-0000-000000000000", time.Date(2026, 8, 30, 14, 50, 0, 0, time.UTC))

	s := NewServer(dir, 10)

	w := serveRequest(t, s, "/api/runs/latest")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp runResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Bad JSON: %v", err)
	}
	if len(resp.Entries) != 2 {
		t.Errorf("Expected 2 entries, got %d", len(resp.Entries))
	}
	if resp.Entries[1].Stage != "summarize" || resp.Entries[1].Reason != "quota" {
		t.Errorf("Unexpected failed entry: %+v", resp.Entries[1])
	}
}

func TestLatestRunNotFound(t *testing.T) {
	s := NewServer(t.TempDir(), 10)

	w := serveRequest(t, s, "/api/runs/latest")
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", w.Code)
	}
}
