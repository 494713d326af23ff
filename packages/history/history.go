// Package history keeps a local SQLite journal of pushes.
//
// Only variable names are stored, never their values.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/abdul-hamid-achik/vercel-env-push/packages/errors"
	"github.com/abdul-hamid-achik/vercel-env-push/packages/push"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"
)

// Status is how a push ended
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusAborted   Status = "aborted"
	StatusDryRun    Status = "dry-run"
)

const schema = `
CREATE TABLE IF NOT EXISTS pushes (
	id           TEXT PRIMARY KEY,
	started_at   INTEGER NOT NULL,
	file         TEXT NOT NULL,
	environments TEXT NOT NULL,
	keys         TEXT NOT NULL,
	dry_run      INTEGER NOT NULL,
	status       TEXT NOT NULL,
	error        TEXT NOT NULL DEFAULT '',
	duration_ms  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS pushes_started_at ON pushes (started_at);
`

// Entry is one journaled push
type Entry struct {
	ID           string
	StartedAt    time.Time
	File         string
	Environments []string
	Keys         []string
	DryRun       bool
	Status       Status
	Error        string
	Duration     time.Duration
}

// FromResult builds an entry from the outcome of a push
func FromResult(result *push.Result, err error) Entry {
	entry := Entry{
		ID:           result.ID,
		StartedAt:    result.StartedAt,
		File:         result.File,
		Environments: result.Environments,
		Keys:         result.Keys,
		DryRun:       result.DryRun,
		Duration:     result.Duration,
		Status:       StatusSucceeded,
	}

	switch {
	case err != nil && apperrors.IsCode(err, apperrors.ErrUserAborted):
		entry.Status = StatusAborted
		entry.Error = err.Error()
	case err != nil:
		entry.Status = StatusFailed
		entry.Error = err.Error()
	case result.DryRun:
		entry.Status = StatusDryRun
	}
	return entry
}

// Store is a push journal backed by a SQLite file
type Store struct {
	db   *sql.DB
	path string
}

// DefaultPath returns the journal location under the user config directory
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "vercel-env-push", "history.db"), nil
}

// Open opens or creates the journal at path
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("history path is empty")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to history: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate history: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Path returns the journal file path
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record stores an entry, replacing any entry with the same id
func (s *Store) Record(ctx context.Context, e Entry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO pushes (id, started_at, file, environments, keys, dry_run, status, error, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID,
		e.StartedAt.UnixMilli(),
		e.File,
		strings.Join(e.Environments, ","),
		strings.Join(e.Keys, ","),
		e.DryRun,
		string(e.Status),
		e.Error,
		e.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to record push: %w", err)
	}
	return nil
}

// List returns the most recent entries first. A limit of zero or less
// returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT id, started_at, file, environments, keys, dry_run, status, error, duration_ms
		FROM pushes ORDER BY started_at DESC, rowid DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e            Entry
			startedAt    int64
			environments string
			keys         string
			status       string
			durationMs   int64
		)
		if err := rows.Scan(&e.ID, &startedAt, &e.File, &environments, &keys, &e.DryRun, &status, &e.Error, &durationMs); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		e.StartedAt = time.UnixMilli(startedAt)
		e.Environments = splitList(environments)
		e.Keys = splitList(keys)
		e.Status = Status(status)
		e.Duration = time.Duration(durationMs) * time.Millisecond
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return entries, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
