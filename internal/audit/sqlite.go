package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"reconpipe/internal/scope"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	scope TEXT NOT NULL,
	started_at DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS executions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	at DATETIME NOT NULL,
	task TEXT NOT NULL,
	result TEXT NOT NULL,
	kind TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_executions_run ON executions(run_id);
`

// SQLiteSink stores entries as rows so several runs can share one database.
type SQLiteSink struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	sink, err := NewSQLiteSink(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return sink, nil
}

// NewSQLiteSink wraps an open handle and creates the schema.
func NewSQLiteSink(db *sql.DB) (*SQLiteSink, error) {
	if _, err := db.Exec(sqliteSchema); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &SQLiteSink{db: db}, nil
}

func (s *SQLiteSink) Begin(ctx context.Context, runID string, sc scope.Scope) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO runs (id, scope, started_at) VALUES (?, ?, ?)",
		runID, sc.String(), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("insert run %s: %w", runID, err)
	}
	return nil
}

func (s *SQLiteSink) Record(ctx context.Context, e Entry) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO executions (run_id, at, task, result, kind) VALUES (?, ?, ?, ?, ?)",
		e.RunID, e.At.UTC(), e.Task, e.Result, e.Kind)
	if err != nil {
		return fmt.Errorf("insert execution for run %s: %w", e.RunID, err)
	}
	return nil
}

// Entries returns a run's entries in the order they were recorded.
func (s *SQLiteSink) Entries(ctx context.Context, runID string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT run_id, at, task, result, kind FROM executions WHERE run_id = ? ORDER BY id",
		runID)
	if err != nil {
		return nil, fmt.Errorf("query executions: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.RunID, &e.At, &e.Task, &e.Result, &e.Kind); err != nil {
			return nil, fmt.Errorf("scan execution: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *SQLiteSink) Close() error {
	return s.db.Close()
}
