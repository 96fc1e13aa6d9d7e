// Package journal keeps an append-only record of patch outcomes in SQLite or
// Postgres so that a run over published forms can be audited afterwards.
package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	_ "modernc.org/sqlite"             // pure go sqlite driver

	"formrestyle/internal/patch"
)

// Driver names accepted by Open.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// recordedAtLayout is fixed width so that recorded_at sorts as text.
const recordedAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// Entry is one journaled outcome.
type Entry struct {
	RunID     string
	Key       string
	Status    patch.Status
	Steps     []string
	BeforeSHA string
	AfterSHA  string
	At        time.Time
}

// Journal appends outcomes to the patch_journal table.
type Journal struct {
	db      *sql.DB
	dialect dialect
}

type dialect struct {
	sqlDriver string
	postgres  bool
}

func (d dialect) placeholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		if d.postgres {
			parts[i] = fmt.Sprintf("$%d", i+1)
		} else {
			parts[i] = "?"
		}
	}
	return strings.Join(parts, ", ")
}

// Open connects to the journal database and ensures the table exists.
// For sqlite the DSN is a file path whose parent directories are created.
func Open(ctx context.Context, driver, dsn string) (*Journal, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("journal dsn required")
	}
	var d dialect
	switch driver {
	case "", DriverSQLite:
		d = dialect{sqlDriver: "sqlite"}
		if dir := filepath.Dir(dsn); dir != "." && !strings.HasPrefix(dsn, "file:") {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("create dirs: %w", err)
			}
		}
	case DriverPostgres:
		d = dialect{sqlDriver: "pgx", postgres: true}
	default:
		return nil, fmt.Errorf("unknown journal driver %s", driver)
	}
	openMu.Lock()
	db, err := sqlOpen(d.sqlDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.sqlDriver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", d.sqlDriver, err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS patch_journal (
		run_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		target TEXT NOT NULL,
		status TEXT NOT NULL,
		steps TEXT NOT NULL,
		before_sha TEXT NOT NULL,
		after_sha TEXT NOT NULL,
		recorded_at TEXT NOT NULL,
		PRIMARY KEY (run_id, seq)
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create journal table: %w", err)
	}
	return &Journal{db: db, dialect: d}, nil
}

// Record appends one outcome for runID. Sequence numbers keep the processing order.
func (j *Journal) Record(ctx context.Context, runID string, o patch.Outcome) (retErr error) {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	var seq int
	row := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) FROM patch_journal WHERE run_id = `+j.dialect.placeholders(1), runID)
	if err := row.Scan(&seq); err != nil {
		return fmt.Errorf("next seq: %w", err)
	}
	stmt := `INSERT INTO patch_journal (run_id, seq, target, status, steps, before_sha, after_sha, recorded_at) VALUES (` + j.dialect.placeholders(8) + `)`
	if _, err := tx.ExecContext(ctx, stmt,
		runID, seq+1, o.Key, string(o.Status), strings.Join(o.Changed, ","),
		o.BeforeSHA, o.AfterSHA, o.At.UTC().Format(recordedAtLayout),
	); err != nil {
		return fmt.Errorf("insert journal entry: %w", err)
	}
	return tx.Commit()
}

// Entries returns the outcomes of runID in processing order.
func (j *Journal) Entries(ctx context.Context, runID string) ([]Entry, error) {
	rows, err := j.db.QueryContext(ctx, `SELECT run_id, target, status, steps, before_sha, after_sha, recorded_at
		FROM patch_journal WHERE run_id = `+j.dialect.placeholders(1)+` ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("select journal: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []Entry
	for rows.Next() {
		var (
			e      Entry
			status string
			steps  string
			at     string
		)
		if err := rows.Scan(&e.RunID, &e.Key, &status, &steps, &e.BeforeSHA, &e.AfterSHA, &at); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		e.Status = patch.Status(status)
		if steps != "" {
			e.Steps = strings.Split(steps, ",")
		}
		if e.At, err = time.Parse(recordedAtLayout, at); err != nil {
			return nil, fmt.Errorf("parse recorded_at: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Runs lists the journaled run ids, oldest first.
func (j *Journal) Runs(ctx context.Context) ([]string, error) {
	rows, err := j.db.QueryContext(ctx, `SELECT run_id FROM patch_journal GROUP BY run_id ORDER BY MIN(recorded_at), run_id`)
	if err != nil {
		return nil, fmt.Errorf("select runs: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// Close releases the database handle.
func (j *Journal) Close() error { return j.db.Close() }
