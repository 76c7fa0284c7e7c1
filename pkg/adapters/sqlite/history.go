// Package sqlite provides a run-history store on SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/LeenJaber1/automata-builder/pkg/domain"
	"github.com/LeenJaber1/automata-builder/pkg/ports"
)

// DefaultPath is the database location used when none is configured.
const DefaultPath = ".automata/history.db"

const createRuns = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	automaton  TEXT NOT NULL,
	kind       TEXT NOT NULL,
	input      TEXT NOT NULL,
	accepted   INTEGER NOT NULL,
	error      TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

// History implements ports.RunHistory on a SQLite database.
type History struct {
	mu    sync.Mutex
	db    *sql.DB
	clock func() time.Time
}

var _ ports.RunHistory = (*History)(nil)

// Open opens (or creates) the database at path and ensures the runs table exists.
func Open(path string) (*History, error) {
	if path == "" {
		path = DefaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(context.Background(), createRuns); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &History{db: db, clock: time.Now}, nil
}

// Record stores rec. Missing id and timestamp are filled in.
func (h *History) Record(ctx context.Context, rec domain.RunRecord) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = h.clock()
	}

	_, err := h.db.ExecContext(ctx,
		`INSERT INTO runs (id, automaton, kind, input, accepted, error, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Automaton, rec.Kind.String(), rec.Input, rec.Accepted, rec.Error, rec.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to record run %s: %w", rec.ID, err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (h *History) Recent(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	if limit <= 0 {
		return []domain.RunRecord{}, nil
	}

	rows, err := h.db.QueryContext(ctx,
		`SELECT id, automaton, kind, input, accepted, error, created_at FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	recs := make([]domain.RunRecord, 0, limit)
	for rows.Next() {
		var (
			rec      domain.RunRecord
			kind     string
			accepted bool
			created  int64
		)
		if err := rows.Scan(&rec.ID, &rec.Automaton, &kind, &rec.Input, &accepted, &rec.Error, &created); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		rec.Kind = domain.Kind(kind)
		rec.Accepted = accepted
		rec.CreatedAt = time.Unix(0, created).UTC()
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// Close closes the database.
func (h *History) Close() error {
	return h.db.Close()
}
