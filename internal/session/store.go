// Package session implements the persistent reasoning-session store.
//
// It records analysis runs — which graph was queried, which question was
// asked, and a short result summary — in SQLite so a session's reasoning
// trail survives restarts. The store is an independent subsystem: when it
// fails to initialize, the analysis tools keep working without history.
package session

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// Session represents one reasoning session.
type Session struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	StartedAt string  `json:"started_at"`
	EndedAt   *string `json:"ended_at,omitempty"`
	Summary   *string `json:"summary,omitempty"`
}

// Analysis is one recorded engine run within a session.
type Analysis struct {
	ID        int64  `json:"id"`
	SessionID string `json:"session_id"`
	GraphID   string `json:"graph_id"`
	Kind      string `json:"kind"`
	Query     string `json:"query"`
	Summary   string `json:"summary"`
	CreatedAt string `json:"created_at"`
}

// RecordParams holds the input for recording an analysis.
type RecordParams struct {
	SessionID string `json:"session_id"`
	GraphID   string `json:"graph_id"`
	Kind      string `json:"kind"`
	Query     string `json:"query"`
	Summary   string `json:"summary"`
}

// SessionSummary is a compact session view with its analysis count.
type SessionSummary struct {
	Session
	AnalysisCount int `json:"analysis_count"`
}

// Stats holds aggregate store statistics.
type Stats struct {
	TotalSessions int      `json:"total_sessions"`
	TotalAnalyses int      `json:"total_analyses"`
	Kinds         []string `json:"kinds"`
}

// Config holds store configuration.
type Config struct {
	DataDir string
}

// DefaultConfig returns the default configuration, storing the database
// under the user's home directory.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{DataDir: filepath.Join(home, ".deepthinking")}
}

// Store is the session history engine backed by SQLite.
type Store struct {
	db  *sql.DB
	cfg Config
}

// New creates a Store with the given configuration. It creates the data
// directory if needed, opens SQLite with WAL mode, and runs migrations.
func New(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, fmt.Errorf("session: create data dir: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, "sessions.db")
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("session: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("session: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, cfg: cfg}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("session: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id         TEXT PRIMARY KEY,
			title      TEXT NOT NULL,
			started_at TEXT NOT NULL DEFAULT (datetime('now')),
			ended_at   TEXT,
			summary    TEXT
		);

		CREATE TABLE IF NOT EXISTS analyses (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			graph_id   TEXT NOT NULL,
			kind       TEXT NOT NULL,
			query      TEXT NOT NULL,
			summary    TEXT NOT NULL,
			created_at TEXT NOT NULL DEFAULT (datetime('now')),
			FOREIGN KEY (session_id) REFERENCES sessions(id)
		);

		CREATE INDEX IF NOT EXISTS idx_analyses_session ON analyses(session_id);
		CREATE INDEX IF NOT EXISTS idx_analyses_kind ON analyses(kind);
	`
	_, err := s.db.Exec(schema)
	return err
}

// StartSession creates a new session and returns its generated id.
func (s *Store) StartSession(title string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(`INSERT INTO sessions (id, title) VALUES (?, ?)`, id, title)
	if err != nil {
		return "", fmt.Errorf("session: start: %w", err)
	}
	return id, nil
}

// EndSession marks a session as ended with an optional summary.
func (s *Store) EndSession(id, summary string) error {
	_, err := s.db.Exec(
		`UPDATE sessions SET ended_at = datetime('now'), summary = ? WHERE id = ?`,
		summary, id)
	if err != nil {
		return fmt.Errorf("session: end: %w", err)
	}
	return nil
}

// GetSession returns one session by id, or nil when not found.
func (s *Store) GetSession(id string) (*Session, error) {
	row := s.db.QueryRow(
		`SELECT id, title, started_at, ended_at, summary FROM sessions WHERE id = ?`, id)
	var sess Session
	err := row.Scan(&sess.ID, &sess.Title, &sess.StartedAt, &sess.EndedAt, &sess.Summary)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session: get: %w", err)
	}
	return &sess, nil
}

// RecordAnalysis stores one analysis run. An empty SessionID is recorded
// as "ad-hoc" so tools can log without an explicit session.
func (s *Store) RecordAnalysis(p RecordParams) (int64, error) {
	if p.SessionID == "" {
		p.SessionID = "ad-hoc"
	}
	// Ensure the implicit session row exists.
	if _, err := s.db.Exec(
		`INSERT OR IGNORE INTO sessions (id, title) VALUES (?, ?)`,
		p.SessionID, p.SessionID); err != nil {
		return 0, fmt.Errorf("session: ensure session: %w", err)
	}

	res, err := s.db.Exec(
		`INSERT INTO analyses (session_id, graph_id, kind, query, summary) VALUES (?, ?, ?, ?, ?)`,
		p.SessionID, p.GraphID, p.Kind, p.Query, p.Summary)
	if err != nil {
		return 0, fmt.Errorf("session: record analysis: %w", err)
	}
	return res.LastInsertId()
}

// RecentSessions lists the most recently started sessions with their
// analysis counts.
func (s *Store) RecentSessions(limit int) ([]SessionSummary, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(`
		SELECT s.id, s.title, s.started_at, s.ended_at, s.summary,
		       (SELECT COUNT(*) FROM analyses a WHERE a.session_id = s.id)
		FROM sessions s
		ORDER BY s.started_at DESC, s.id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("session: recent: %w", err)
	}
	defer rows.Close()

	var out []SessionSummary
	for rows.Next() {
		var sum SessionSummary
		if err := rows.Scan(&sum.ID, &sum.Title, &sum.StartedAt, &sum.EndedAt,
			&sum.Summary, &sum.AnalysisCount); err != nil {
			return nil, fmt.Errorf("session: scan: %w", err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// SessionAnalyses lists the analyses of one session in chronological order.
func (s *Store) SessionAnalyses(sessionID string) ([]Analysis, error) {
	rows, err := s.db.Query(`
		SELECT id, session_id, graph_id, kind, query, summary, created_at
		FROM analyses WHERE session_id = ? ORDER BY id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("session: analyses: %w", err)
	}
	defer rows.Close()

	var out []Analysis
	for rows.Next() {
		var a Analysis
		if err := rows.Scan(&a.ID, &a.SessionID, &a.GraphID, &a.Kind,
			&a.Query, &a.Summary, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("session: scan: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Stats returns aggregate counts and the distinct analysis kinds seen.
func (s *Store) Stats() (*Stats, error) {
	st := &Stats{}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&st.TotalSessions); err != nil {
		return nil, fmt.Errorf("session: stats: %w", err)
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM analyses`).Scan(&st.TotalAnalyses); err != nil {
		return nil, fmt.Errorf("session: stats: %w", err)
	}

	rows, err := s.db.Query(`SELECT DISTINCT kind FROM analyses ORDER BY kind`)
	if err != nil {
		return nil, fmt.Errorf("session: stats kinds: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("session: scan: %w", err)
		}
		st.Kinds = append(st.Kinds, k)
	}
	return st, rows.Err()
}
