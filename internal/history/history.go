// Package history keeps an append-only log of check verdicts in SQLite.
// The log is bookkeeping only: a failed write never changes the verdict or
// the exit status.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cephtools/check-ceph-df/internal/probe"
)

const schema = `
CREATE TABLE IF NOT EXISTS check_results (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	status TEXT NOT NULL,
	message TEXT NOT NULL,
	pool TEXT NOT NULL DEFAULT '',
	raw_percent REAL,
	checked_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_check_results_checked_at ON check_results(checked_at);
`

// Store wraps the SQLite verdict log.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the verdict log at the given path.
// Creates the parent directory if needed.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	// WAL mode and a busy timeout; SQLite works best with a single
	// connection for writes.
	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping history database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Record appends one verdict. pool is empty for cluster-wide checks.
func (s *Store) Record(ctx context.Context, result *probe.Result, pool string) error {
	var rawPercent any
	if v, ok := result.Metrics["raw_percent"].(float64); ok {
		rawPercent = v
	} else if v, ok := result.Metrics["percent_used"].(float64); ok {
		rawPercent = v
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO check_results (status, message, pool, raw_percent, checked_at)
		VALUES (?, ?, ?, ?, ?)
	`, string(result.Status), result.Message, pool, rawPercent, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("record verdict: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
