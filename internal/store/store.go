// Package store provides SQLite persistence for session results.
//
// The rep engine itself never persists anything; this package is the
// collaborator that records completed sessions and reps, wired in by the
// cmd layer outside the frame-processing path.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Store handles SQLite persistence. NOT an interface - concrete type.
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Session is one recorded workout session for a single exercise.
type Session struct {
	ID       int64
	Exercise string
	Started  time.Time
	Ended    time.Time
	RepCount int
	AvgScore float64
}

// Rep is one recorded repetition within a session.
type Rep struct {
	ID        int64
	SessionID int64
	Time      time.Time
	Score     int
	Issues    []string
}

// Open creates a new Store with the given database path.
// Creates tables if they don't exist.
// Uses WAL mode for better concurrent read performance (file-based DBs only).
func Open(dbPath string) (*Store, error) {
	connStr := dbPath
	if dbPath == ":memory:" {
		// Shared cache so all pooled connections see the same database.
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &Store{db: db}

	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return s, nil
}

// createTables creates the required tables and indexes if they don't exist.
func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		exercise TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		ended_at DATETIME,
		rep_count INTEGER DEFAULT 0,
		avg_score REAL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at DESC);

	CREATE TABLE IF NOT EXISTS reps (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id INTEGER NOT NULL,
		at DATETIME NOT NULL,
		score INTEGER NOT NULL,
		issues TEXT,
		FOREIGN KEY (session_id) REFERENCES sessions(id)
	);

	CREATE INDEX IF NOT EXISTS idx_reps_session ON reps(session_id);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// BeginSession inserts a new session row and returns its id.
func (s *Store) BeginSession(exercise string, started time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(
		"INSERT INTO sessions (exercise, started_at) VALUES (?, ?)",
		exercise, started,
	)
	if err != nil {
		return 0, fmt.Errorf("insert session: %w", err)
	}
	return res.LastInsertId()
}

// SaveRep records one completed rep for a session.
func (s *Store) SaveRep(sessionID int64, r Rep) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	issues, err := json.Marshal(r.Issues)
	if err != nil {
		return fmt.Errorf("marshal issues: %w", err)
	}

	_, err = s.db.Exec(
		"INSERT INTO reps (session_id, at, score, issues) VALUES (?, ?, ?, ?)",
		sessionID, r.Time, r.Score, string(issues),
	)
	if err != nil {
		return fmt.Errorf("insert rep: %w", err)
	}
	return nil
}

// FinishSession closes out a session with its final rep count and average.
func (s *Store) FinishSession(sessionID int64, ended time.Time, repCount int, avgScore float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"UPDATE sessions SET ended_at = ?, rep_count = ?, avg_score = ? WHERE id = ?",
		ended, repCount, avgScore, sessionID,
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}

// RecentSessions returns the most recent sessions, newest first.
func (s *Store) RecentSessions(limit int) ([]Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT id, exercise, started_at, COALESCE(ended_at, started_at), rep_count, avg_score
		FROM sessions
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.ID, &sess.Exercise, &sess.Started, &sess.Ended, &sess.RepCount, &sess.AvgScore); err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// SessionReps returns the recorded reps for a session in order.
func (s *Store) SessionReps(sessionID int64) ([]Rep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT id, session_id, at, score, COALESCE(issues, '[]')
		FROM reps
		WHERE session_id = ?
		ORDER BY at ASC
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reps []Rep
	for rows.Next() {
		var r Rep
		var issues string
		if err := rows.Scan(&r.ID, &r.SessionID, &r.Time, &r.Score, &issues); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(issues), &r.Issues); err != nil {
			r.Issues = nil
		}
		reps = append(reps, r)
	}
	return reps, rows.Err()
}
