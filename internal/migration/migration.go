// Package migration applies numbered SQL files to a database and records the schema version.
package migration

import (
	"cmp"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/noor/internal/logger"
)

// Migration is one NNN_name.sql file.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Parse reads every NNN_name.sql file at the root of fsys, ordered by version.
func Parse(fsys fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var out []Migration
	for _, entry := range entries {
		file := entry.Name()
		if entry.IsDir() || path.Ext(file) != ".sql" {
			continue
		}
		m, err := parseName(file)
		if err != nil {
			return nil, err
		}
		body, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration file %s: %w", file, err)
		}
		m.SQL = string(body)
		out = append(out, m)
	}

	slices.SortFunc(out, func(a, b Migration) int { return cmp.Compare(a.Version, b.Version) })
	for i := 1; i < len(out); i++ {
		if out[i].Version == out[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d (%s, %s)", out[i].Version, out[i-1].Name, out[i].Name)
		}
	}
	return out, nil
}

func parseName(file string) (Migration, error) {
	num, name, ok := strings.Cut(strings.TrimSuffix(file, ".sql"), "_")
	if !ok || name == "" {
		return Migration{}, fmt.Errorf("invalid migration filename %s (want NNN_name.sql)", file)
	}
	v, err := strconv.Atoi(num)
	switch {
	case err != nil:
		return Migration{}, fmt.Errorf("invalid version number in %s: %w", file, err)
	case v < 1:
		return Migration{}, fmt.Errorf("invalid version number in %s: must be at least 1", file)
	}
	return Migration{Version: v, Name: name}, nil
}

// Runner brings one database up to the newest migration it knows about.
type Runner struct {
	db          *sql.DB
	fsys        fs.FS
	placeholder string
	backend     string
}

type Option func(*Runner)

// WithPostgres switches version bookkeeping to $n placeholders.
func WithPostgres() Option {
	return func(r *Runner) {
		r.placeholder = "$1"
		r.backend = "postgres"
	}
}

func NewRunner(db *sql.DB, fsys fs.FS, opts ...Option) *Runner {
	r := &Runner{db: db, fsys: fsys, placeholder: "?", backend: "sqlite"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *Runner) ensureTable(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)"); err != nil {
		return fmt.Errorf("failed to ensure schema_version table: %w", err)
	}
	return nil
}

// Current returns the recorded schema version, 0 for a fresh database.
func (r *Runner) Current(ctx context.Context) (int, error) {
	if err := r.ensureTable(ctx); err != nil {
		return 0, err
	}
	var v int
	err := r.db.QueryRowContext(ctx, "SELECT version FROM schema_version").Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get current version: %w", err)
	}
	return v, nil
}

func (r *Runner) setVersion(ctx context.Context, db execer, v int) error {
	if _, err := db.ExecContext(ctx, "DELETE FROM schema_version"); err != nil {
		return fmt.Errorf("failed to clear schema version: %w", err)
	}
	if _, err := db.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES ("+r.placeholder+")", v); err != nil {
		return fmt.Errorf("failed to record schema version %d: %w", v, err)
	}
	return nil
}

// Latest returns the highest migration version available, 0 when there are none.
func (r *Runner) Latest() (int, error) {
	all, err := Parse(r.fsys)
	if err != nil || len(all) == 0 {
		return 0, err
	}
	return all[len(all)-1].Version, nil
}

func tooNew(current, latest int) error {
	return fmt.Errorf("database schema version (%d) is newer than supported version (%d), please upgrade noor", current, latest)
}

// Check fails unless the database is exactly at the latest version.
func (r *Runner) Check(ctx context.Context) error {
	current, err := r.Current(ctx)
	if err != nil {
		return err
	}
	latest, err := r.Latest()
	if err != nil {
		return err
	}
	switch {
	case current > latest:
		return tooNew(current, latest)
	case current < latest:
		return fmt.Errorf("database schema version (%d) is behind (%d), run 'noor migrate'", current, latest)
	}
	return nil
}

// Up applies pending migrations in order, each in its own transaction, and returns how many
// were applied. A failing migration leaves the version at the last one that succeeded.
func (r *Runner) Up(ctx context.Context) (int, error) {
	current, err := r.Current(ctx)
	if err != nil {
		return 0, err
	}
	all, err := Parse(r.fsys)
	if err != nil {
		return 0, fmt.Errorf("failed to read migrations: %w", err)
	}
	if len(all) == 0 {
		logger.Warn("No migration files found", "backend", r.backend)
		return 0, nil
	}
	if latest := all[len(all)-1].Version; current > latest {
		return 0, tooNew(current, latest)
	}

	start := time.Now()
	applied := 0
	for _, m := range all {
		if m.Version <= current {
			continue
		}
		if err := r.apply(ctx, m); err != nil {
			return applied, err
		}
		applied++
		logger.Info("Applied migration", "backend", r.backend, "version", m.Version, "name", m.Name)
	}
	if applied == 0 {
		logger.Debug("Schema is up to date", "backend", r.backend, "version", current)
	} else {
		logger.Info("Schema migrated", "backend", r.backend, "from", current, "applied", applied, "took", time.Since(start))
	}
	return applied, nil
}

func (r *Runner) apply(ctx context.Context, m Migration) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration %d: %w", m.Version, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Name, err)
	}
	if err := r.setVersion(ctx, tx, m.Version); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
	}
	return nil
}
