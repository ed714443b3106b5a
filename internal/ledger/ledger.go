// Package ledger records grid expansions in a sqlite manifest so a
// sweep written to disk can be traced back to the configuration that
// produced it. Only the command layer writes here; the engine never
// touches it.
package ledger

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"config-forge/internal/logging"
	"config-forge/params"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	source     TEXT NOT NULL,
	total      INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS runs (
	session_id  TEXT NOT NULL REFERENCES sessions(id),
	ordinal     INTEGER NOT NULL,
	hash        TEXT NOT NULL,
	path        TEXT NOT NULL,
	config_json TEXT NOT NULL,
	PRIMARY KEY (session_id, ordinal)
);
`

// Session is one recorded expansion: where the space came from and how
// many runs it produced.
type Session struct {
	ID        string
	CreatedAt time.Time
	Source    string
	Total     int
}

// Run is one materialized configuration inside a session.
type Run struct {
	SessionID string
	Ordinal   int
	Hash      string
	Path      string
	Config    map[string]any
}

// Ledger is a sqlite-backed manifest store.
type Ledger struct {
	db *sql.DB
}

// Open opens or creates the manifest database at path and brings the
// schema up to date.
func Open(path string) (*Ledger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create ledger dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set ledger journal mode: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate ledger schema: %w", err)
	}
	return &Ledger{db: db}, nil
}

func (l *Ledger) Close() error { return l.db.Close() }

// Record stores a session and its runs in one transaction.
func (l *Ledger) Record(s Session, runs []Run) error {
	tx, err := l.db.Begin()
	if err != nil {
		return fmt.Errorf("begin ledger tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(
		"INSERT INTO sessions(id, created_at, source, total) VALUES(?, ?, ?, ?)",
		s.ID, s.CreatedAt.UTC().Format(time.RFC3339), s.Source, s.Total)
	if err != nil {
		return fmt.Errorf("insert session %s: %w", s.ID, err)
	}
	for _, r := range runs {
		blob, err := json.Marshal(r.Config)
		if err != nil {
			return fmt.Errorf("encode run %d: %w", r.Ordinal, err)
		}
		_, err = tx.Exec(
			"INSERT INTO runs(session_id, ordinal, hash, path, config_json) VALUES(?, ?, ?, ?, ?)",
			s.ID, r.Ordinal, r.Hash, r.Path, string(blob))
		if err != nil {
			return fmt.Errorf("insert run %d: %w", r.Ordinal, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit ledger tx: %w", err)
	}

	logging.L().Debug("ledger session recorded",
		zap.String("session", s.ID),
		zap.Int("runs", len(runs)))
	return nil
}

// Sessions lists recorded sessions, newest first.
func (l *Ledger) Sessions() ([]Session, error) {
	rows, err := l.db.Query(
		"SELECT id, created_at, source, total FROM sessions ORDER BY created_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var s Session
		var created string
		if err := rows.Scan(&s.ID, &created, &s.Source, &s.Total); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if s.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
			return nil, fmt.Errorf("parse session %s timestamp: %w", s.ID, err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Runs lists the runs of one session in ordinal order. Configurations
// decode through the params JSON codec, so integral numbers come back
// as int.
func (l *Ledger) Runs(sessionID string) ([]Run, error) {
	rows, err := l.db.Query(
		"SELECT session_id, ordinal, hash, path, config_json FROM runs WHERE session_id = ? ORDER BY ordinal",
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("list runs for %s: %w", sessionID, err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var blob string
		if err := rows.Scan(&r.SessionID, &r.Ordinal, &r.Hash, &r.Path, &blob); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		p, err := params.ParseJSON([]byte(blob))
		if err != nil {
			return nil, fmt.Errorf("decode run %d config: %w", r.Ordinal, err)
		}
		r.Config = p.AsDict()
		out = append(out, r)
	}
	return out, rows.Err()
}
