package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/danielsimonjr/deepthinking-mcp/internal/session"
)

// newTestStore creates a Store backed by a temp directory for isolation.
func newTestStore(t *testing.T) *session.Store {
	t.Helper()
	s, err := session.New(session.Config{DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// ─── New / Initialization ───────────────────────────────────────────────────

func TestNew_CreatesDBFile(t *testing.T) {
	dir := t.TempDir()
	s, err := session.New(session.Config{DataDir: dir})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(filepath.Join(dir, "sessions.db")); err != nil {
		t.Errorf("expected database file to exist: %v", err)
	}
}

func TestNew_CreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s, err := session.New(session.Config{DataDir: dir})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(dir); err != nil {
		t.Errorf("expected data dir to exist: %v", err)
	}
}

// ─── Sessions ───────────────────────────────────────────────────────────────

func TestStartSession_ReturnsID(t *testing.T) {
	s := newTestStore(t)

	id, err := s.StartSession("root cause review")
	if err != nil {
		t.Fatalf("StartSession() error: %v", err)
	}
	if id == "" {
		t.Fatal("expected non-empty session id")
	}

	sess, err := s.GetSession(id)
	if err != nil {
		t.Fatalf("GetSession() error: %v", err)
	}
	if sess == nil {
		t.Fatal("expected session to exist")
	}
	if sess.Title != "root cause review" {
		t.Errorf("title = %q, want %q", sess.Title, "root cause review")
	}
	if sess.EndedAt != nil {
		t.Error("new session should not have ended_at set")
	}
}

func TestGetSession_Missing(t *testing.T) {
	s := newTestStore(t)

	sess, err := s.GetSession("nope")
	if err != nil {
		t.Fatalf("GetSession() error: %v", err)
	}
	if sess != nil {
		t.Error("expected nil for missing session")
	}
}

func TestEndSession_SetsEndedAtAndSummary(t *testing.T) {
	s := newTestStore(t)

	id, err := s.StartSession("incident analysis")
	if err != nil {
		t.Fatalf("StartSession() error: %v", err)
	}
	if err := s.EndSession(id, "deploy caused the outage"); err != nil {
		t.Fatalf("EndSession() error: %v", err)
	}

	sess, err := s.GetSession(id)
	if err != nil {
		t.Fatalf("GetSession() error: %v", err)
	}
	if sess.EndedAt == nil {
		t.Error("expected ended_at to be set")
	}
	if sess.Summary == nil || *sess.Summary != "deploy caused the outage" {
		t.Errorf("summary = %v, want %q", sess.Summary, "deploy caused the outage")
	}
}

// ─── Analyses ───────────────────────────────────────────────────────────────

func TestRecordAnalysis_AndList(t *testing.T) {
	s := newTestStore(t)

	id, err := s.StartSession("traffic model")
	if err != nil {
		t.Fatalf("StartSession() error: %v", err)
	}

	for _, kind := range []string{"centrality", "d_separation", "intervention"} {
		if _, err := s.RecordAnalysis(session.RecordParams{
			SessionID: id,
			GraphID:   "g1",
			Kind:      kind,
			Query:     "X vs Y",
			Summary:   "ok",
		}); err != nil {
			t.Fatalf("RecordAnalysis(%s) error: %v", kind, err)
		}
	}

	got, err := s.SessionAnalyses(id)
	if err != nil {
		t.Fatalf("SessionAnalyses() error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d analyses, want 3", len(got))
	}
	if got[0].Kind != "centrality" || got[2].Kind != "intervention" {
		t.Errorf("analyses out of order: %q, %q", got[0].Kind, got[2].Kind)
	}
	if got[0].GraphID != "g1" {
		t.Errorf("graph_id = %q, want g1", got[0].GraphID)
	}
}

func TestRecordAnalysis_EmptySessionUsesAdHoc(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.RecordAnalysis(session.RecordParams{
		GraphID: "g1",
		Kind:    "centrality",
		Query:   "all",
		Summary: "top node A",
	}); err != nil {
		t.Fatalf("RecordAnalysis() error: %v", err)
	}

	got, err := s.SessionAnalyses("ad-hoc")
	if err != nil {
		t.Fatalf("SessionAnalyses() error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d analyses under ad-hoc, want 1", len(got))
	}
}

// ─── RecentSessions / Stats ─────────────────────────────────────────────────

func TestRecentSessions_IncludesCounts(t *testing.T) {
	s := newTestStore(t)

	id, err := s.StartSession("counted")
	if err != nil {
		t.Fatalf("StartSession() error: %v", err)
	}
	if _, err := s.RecordAnalysis(session.RecordParams{
		SessionID: id, GraphID: "g1", Kind: "structure", Query: "v", Summary: "2 found",
	}); err != nil {
		t.Fatalf("RecordAnalysis() error: %v", err)
	}
	if _, err := s.StartSession("empty"); err != nil {
		t.Fatalf("StartSession() error: %v", err)
	}

	got, err := s.RecentSessions(10)
	if err != nil {
		t.Fatalf("RecentSessions() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d sessions, want 2", len(got))
	}

	counts := map[string]int{}
	for _, sum := range got {
		counts[sum.Title] = sum.AnalysisCount
	}
	if counts["counted"] != 1 {
		t.Errorf("counted session analysis count = %d, want 1", counts["counted"])
	}
	if counts["empty"] != 0 {
		t.Errorf("empty session analysis count = %d, want 0", counts["empty"])
	}
}

func TestRecentSessions_DefaultLimit(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.StartSession("one"); err != nil {
		t.Fatalf("StartSession() error: %v", err)
	}

	got, err := s.RecentSessions(0)
	if err != nil {
		t.Fatalf("RecentSessions() error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d sessions, want 1", len(got))
	}
}

func TestStats_Aggregates(t *testing.T) {
	s := newTestStore(t)

	id, err := s.StartSession("stats")
	if err != nil {
		t.Fatalf("StartSession() error: %v", err)
	}
	for _, kind := range []string{"centrality", "centrality", "adjustment"} {
		if _, err := s.RecordAnalysis(session.RecordParams{
			SessionID: id, GraphID: "g1", Kind: kind, Query: "q", Summary: "s",
		}); err != nil {
			t.Fatalf("RecordAnalysis() error: %v", err)
		}
	}

	st, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats() error: %v", err)
	}
	if st.TotalSessions != 1 {
		t.Errorf("TotalSessions = %d, want 1", st.TotalSessions)
	}
	if st.TotalAnalyses != 3 {
		t.Errorf("TotalAnalyses = %d, want 3", st.TotalAnalyses)
	}
	if len(st.Kinds) != 2 {
		t.Errorf("Kinds = %v, want 2 distinct", st.Kinds)
	}
}
