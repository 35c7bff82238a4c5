// Package store persists reconstructed subject timelines into one shared
// multi-subject table, backed by sqlite or postgres.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	_ "modernc.org/sqlite"             // pure go sqlite driver

	"sleepline"
)

// Store is an append-only tabular sink keyed by subject id.
type Store struct {
	db     *sql.DB
	driver string
	table  string
}

// Open connects to the configured backend. The subject table itself is created
// lazily on first append, so a fresh store reports no subjects.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	cfg = cfg.withDefaults()

	var driverName string
	switch cfg.Driver {
	case "sqlite":
		driverName = "sqlite"
	case "postgres", "pgx":
		driverName = "pgx"
	default:
		return nil, fmt.Errorf("unsupported store driver %q (want sqlite or postgres)", cfg.Driver)
	}

	db, err := sql.Open(driverName, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping store: %w", err)
	}
	return &Store{db: db, driver: cfg.Driver, table: cfg.Table}, nil
}

// Table returns the shared table name the store writes to.
func (s *Store) Table() string {
	return s.table
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// HasSubject reports whether the shared table already holds rows for
// subjectID. A store whose table does not exist yet reports false.
func (s *Store) HasSubject(ctx context.Context, subjectID int) (bool, error) {
	exists, err := s.tableExists(ctx)
	if err != nil {
		return false, fmt.Errorf("check subject table: %w", err)
	}
	if !exists {
		return false, nil
	}
	query := fmt.Sprintf("SELECT 1 FROM %s WHERE subject_id = %s LIMIT 1", s.table, s.placeholder(1))
	var one int
	err = s.db.QueryRowContext(ctx, query, subjectID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query subject rows: %w", err)
	}
	return true, nil
}

// AppendSubject writes one row per reconstructed second inside a single
// transaction, so the subject lands in the table exactly once or not at all.
// Seconds without a measured value carry NULL signal and status columns.
func (s *Store) AppendSubject(ctx context.Context, subjectID int, samples []sleepline.Sample) error {
	if len(samples) == 0 {
		return sleepline.ErrTimelineEmpty
	}
	if err := s.ensureTable(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	query := fmt.Sprintf(
		"INSERT INTO %s (elapsed_seconds, signal_value, status, num_days, subject_id) VALUES (%s)",
		s.table, s.placeholders(5),
	)
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range samples {
		smp := &samples[i]
		var value sql.NullFloat64
		if smp.Value != nil {
			value = sql.NullFloat64{Float64: *smp.Value, Valid: true}
		}
		var status sql.NullString
		if text, ok := smp.RecordedStatus(); ok {
			status = sql.NullString{String: text, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, smp.Second, value, status, smp.Day, subjectID); err != nil {
			return fmt.Errorf("insert second %d: %w", smp.Second, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit append: %w", err)
	}
	committed = true
	return nil
}

func (s *Store) ensureTable(ctx context.Context) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		elapsed_seconds BIGINT NOT NULL,
		signal_value DOUBLE PRECISION,
		status TEXT,
		num_days BIGINT NOT NULL,
		subject_id BIGINT NOT NULL
	)`, s.table)
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure subject table: %w", err)
	}
	return nil
}

func (s *Store) tableExists(ctx context.Context) (bool, error) {
	var query string
	switch s.driver {
	case "postgres", "pgx":
		query = "SELECT table_name FROM information_schema.tables WHERE table_schema = 'public' AND table_name = $1"
	default:
		query = "SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?"
	}
	var name string
	err := s.db.QueryRowContext(ctx, query, s.table).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) placeholder(n int) string {
	if s.driver == "postgres" || s.driver == "pgx" {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

func (s *Store) placeholders(count int) string {
	parts := make([]string, count)
	for i := range parts {
		parts[i] = s.placeholder(i + 1)
	}
	return strings.Join(parts, ", ")
}
