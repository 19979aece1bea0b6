package migration

import (
	"database/sql"
	"os"
	"testing"
	"testing/fstest"

	_ "github.com/lib/pq"
)

// Set POSTGRES_TEST_URL to run, e.g.
// POSTGRES_TEST_URL="postgres://user@localhost:5432/testdb?sslmode=disable"
func setupPostgresTestDB(t *testing.T) *sql.DB {
	t.Helper()
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("failed to open postgres database: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Fatalf("failed to ping postgres database: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DROP TABLE IF EXISTS schema_version")
		db.Exec("DROP TABLE IF EXISTS migration_test_notes")
		db.Close()
	})
	return db
}

func TestPostgresApplyMigrations(t *testing.T) {
	db := setupPostgresTestDB(t)

	r, err := NewRunner(db, fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE migration_test_notes (id SERIAL PRIMARY KEY, body TEXT);")},
	}, DriverPostgres)
	if err != nil {
		t.Fatalf("NewRunner failed: %v", err)
	}

	n, err := r.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if n != 1 {
		t.Errorf("applied %d, want 1", n)
	}

	if err := r.SetVersion(1); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}
	v, err := r.GetCurrentVersion()
	if err != nil || v != 1 {
		t.Errorf("GetCurrentVersion = %d, %v; want 1, nil", v, err)
	}
}
