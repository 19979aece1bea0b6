// Package migration applies the numbered SQL files shipped in the migrations
// package to a SQLite or PostgreSQL database and tracks the schema version.
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Driver selects the SQL dialect used for the version bookkeeping statements.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// ErrSchemaTooNew is returned when the database was migrated by a newer build.
var ErrSchemaTooNew = errors.New("database schema is newer than this build supports")

// Migration is one NNN_name.sql file.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Runner applies pending migrations in version order.
type Runner struct {
	db     *sql.DB
	fs     fs.FS
	driver Driver
}

// NewRunner creates a runner reading migration files from migrationFS.
// A string is treated as a directory on disk.
func NewRunner(db *sql.DB, migrationFS any, driver Driver) (*Runner, error) {
	var fsys fs.FS
	switch v := migrationFS.(type) {
	case fs.FS:
		fsys = v
	case string:
		fsys = os.DirFS(v)
	default:
		return nil, fmt.Errorf("unsupported migration source %T", migrationFS)
	}

	switch driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	return &Runner{db: db, fs: fsys, driver: driver}, nil
}

func (r *Runner) placeholder() string {
	if r.driver == DriverPostgres {
		return "$1"
	}
	return "?"
}

// EnsureSchemaVersionTable creates schema_version if it is missing.
func (r *Runner) EnsureSchemaVersionTable() error {
	_, err := r.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)`)
	return err
}

// GetCurrentVersion returns the recorded schema version, or 0 for a fresh database.
func (r *Runner) GetCurrentVersion() (int, error) {
	if err := r.EnsureSchemaVersionTable(); err != nil {
		return 0, fmt.Errorf("failed to ensure schema_version table: %w", err)
	}

	var version int
	err := r.db.QueryRow("SELECT version FROM schema_version").Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// SetVersion overwrites the recorded schema version.
func (r *Runner) SetVersion(version int) error {
	if err := r.EnsureSchemaVersionTable(); err != nil {
		return fmt.Errorf("failed to ensure schema_version table: %w", err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	if err := r.writeVersion(tx, version); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (r *Runner) writeVersion(tx *sql.Tx, version int) error {
	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return fmt.Errorf("failed to clear schema version: %w", err)
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES ("+r.placeholder()+")", version); err != nil {
		return fmt.Errorf("failed to record schema version %d: %w", version, err)
	}
	return nil
}

// ReadMigrationFiles parses every .sql file, sorted by version.
func (r *Runner) ReadMigrationFiles() ([]Migration, error) {
	entries, err := fs.ReadDir(r.fs, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}

	var migrations []Migration
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		prefix, rest, ok := strings.Cut(entry.Name(), "_")
		if !ok {
			return nil, fmt.Errorf("invalid migration filename %s (expected NNN_name.sql)", entry.Name())
		}
		version, err := strconv.Atoi(prefix)
		if err != nil {
			return nil, fmt.Errorf("invalid version in %s: %w", entry.Name(), err)
		}
		if version < 1 {
			return nil, fmt.Errorf("invalid version in %s: must be at least 1", entry.Name())
		}

		body, err := fs.ReadFile(r.fs, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}

		migrations = append(migrations, Migration{
			Version: version,
			Name:    strings.TrimSuffix(rest, ".sql"),
			SQL:     string(body),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
	for i := 1; i < len(migrations); i++ {
		if migrations[i].Version == migrations[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d", migrations[i].Version)
		}
	}
	return migrations, nil
}

// GetLatestVersion returns the highest available migration version.
func (r *Runner) GetLatestVersion() (int, error) {
	migrations, err := r.ReadMigrationFiles()
	if err != nil {
		return 0, err
	}
	if len(migrations) == 0 {
		return 0, nil
	}
	return migrations[len(migrations)-1].Version, nil
}

// ApplyMigrations runs every pending migration, each in its own transaction,
// and returns how many were applied. logFn may be nil.
func (r *Runner) ApplyMigrations(logFn func(string)) (int, error) {
	if logFn == nil {
		logFn = func(string) {}
	}

	current, err := r.GetCurrentVersion()
	if err != nil {
		return 0, err
	}
	migrations, err := r.ReadMigrationFiles()
	if err != nil {
		return 0, err
	}
	if len(migrations) == 0 {
		logFn("No migration files found")
		return 0, nil
	}

	latest := migrations[len(migrations)-1].Version
	if current > latest {
		return 0, fmt.Errorf("%w: database is at %d, build supports %d", ErrSchemaTooNew, current, latest)
	}

	var pending []Migration
	for _, m := range migrations {
		if m.Version > current {
			pending = append(pending, m)
		}
	}
	if len(pending) == 0 {
		logFn(fmt.Sprintf("Schema is up to date (version %d)", current))
		return 0, nil
	}

	logFn(fmt.Sprintf("Migrating schema %d -> %d (%d pending)", current, latest, len(pending)))
	start := time.Now()
	applied := 0
	for _, m := range pending {
		tx, err := r.db.Begin()
		if err != nil {
			return applied, fmt.Errorf("failed to begin migration %d: %w", m.Version, err)
		}
		if _, err := tx.Exec(m.SQL); err != nil {
			_ = tx.Rollback()
			return applied, fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Name, err)
		}
		if err := r.writeVersion(tx, m.Version); err != nil {
			_ = tx.Rollback()
			return applied, err
		}
		if err := tx.Commit(); err != nil {
			return applied, fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
		}
		applied++
		logFn(fmt.Sprintf("  applied %03d_%s", m.Version, m.Name))
	}
	logFn(fmt.Sprintf("Applied %d migration(s) in %v", applied, time.Since(start).Round(time.Millisecond)))
	return applied, nil
}

// ValidateVersion fails when the database is ahead of the embedded migrations.
func (r *Runner) ValidateVersion() error {
	current, err := r.GetCurrentVersion()
	if err != nil {
		return err
	}
	latest, err := r.GetLatestVersion()
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("%w: database is at %d, build supports %d", ErrSchemaTooNew, current, latest)
	}
	return nil
}
