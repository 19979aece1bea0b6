package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	pq "github.com/lib/pq"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/constants"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/logger"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/migration"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/models"
	"github.com/Harshit-code-tech/personal-diary-sub001/migrations"
)

type Store struct {
	connStr string
	db      *sql.DB
}

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

func New(connStr string) *Store {
	return &Store{connStr: withSearchPath(connStr)}
}

// IsConnString reports whether s looks like a PostgreSQL URL or DSN rather
// than a file path.
func IsConnString(s string) bool {
	if strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://") {
		return true
	}
	return strings.Contains(s, "host=") || strings.Contains(s, "dbname=")
}

// withSearchPath pins the session to the application schema unless the caller
// already chose one.
func withSearchPath(connStr string) string {
	if isURL(connStr) {
		u, err := url.Parse(connStr)
		if err != nil {
			logger.Warn("Failed to parse Postgres connection string", "error", err)
			return connStr
		}
		q := u.Query()
		if q.Get("search_path") == "" {
			q.Set("search_path", constants.AppName)
			u.RawQuery = q.Encode()
		}
		return u.String()
	}
	if dsnHasKey(connStr, "search_path") {
		return connStr
	}
	return strings.TrimSpace(connStr) + " search_path=" + constants.AppName
}

func isURL(connStr string) bool {
	return strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://")
}

// dsnHasKey checks a space-separated key=value DSN for key, case-insensitively.
func dsnHasKey(connStr, key string) bool {
	for _, part := range strings.Fields(connStr) {
		k, _, ok := strings.Cut(part, "=")
		if ok && strings.EqualFold(strings.TrimSpace(k), key) {
			return true
		}
	}
	return false
}

func hasSSLMode(connStr string) bool {
	if u, err := url.Parse(connStr); err == nil && u.Scheme != "" {
		for key := range u.Query() {
			if strings.EqualFold(key, "sslmode") {
				return true
			}
		}
	}
	return dsnHasKey(connStr, "sslmode")
}

// ValidateConnString checks that connStr parses as a PostgreSQL URL or DSN and
// carries no password. Credentials belong in the keyring, PGPASSWORD or .pgpass.
func ValidateConnString(connStr string) (bool, error) {
	if strings.TrimSpace(connStr) == "" {
		return false, fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}
	if _, err := pq.NewConnector(connStr); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
	}

	if isURL(connStr) {
		u, err := url.Parse(connStr)
		if err != nil {
			return false, fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
		}
		if _, set := u.User.Password(); set {
			return false, ErrEmbeddedCredentials
		}
		if u.Host == "" && u.User == nil && (u.Path == "" || u.Path == "/") {
			return false, fmt.Errorf("%w: connection URL is incomplete", ErrInvalidConnectionString)
		}
		return true, nil
	}

	if dsnHasKey(connStr, "password") {
		return false, ErrEmbeddedCredentials
	}
	return true, nil
}

func (s *Store) open() (*sql.DB, error) {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}

func (s *Store) ping() error {
	if err := s.db.Ping(); err != nil {
		if strings.Contains(err.Error(), "SSL is not enabled on the server") && !hasSSLMode(s.connStr) {
			return fmt.Errorf("failed to connect to database: %w (hint: add sslmode=disable to the connection string)", err)
		}
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	return nil
}

func (s *Store) Init() error {
	db, err := s.open()
	if err != nil {
		return err
	}
	if _, err := db.Exec("CREATE SCHEMA IF NOT EXISTS " + constants.AppName); err != nil {
		db.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}
	s.db = db
	if err := s.ping(); err != nil {
		return err
	}

	if _, err := s.Migrate(func(msg string) { logger.Info(msg) }); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if _, err := s.GetSettings(); err != nil {
		if err := s.SaveSettings(models.DefaultSettings()); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}
	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}
	db, err := s.open()
	if err != nil {
		return err
	}
	s.db = db
	if err := s.ping(); err != nil {
		return err
	}

	r, err := s.runner()
	if err != nil {
		return err
	}
	return r.ValidateVersion()
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) runner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return nil, fmt.Errorf("failed to access postgres migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS, migration.DriverPostgres)
}

func (s *Store) Migrate(logFn func(string)) (int, error) {
	if s.db == nil {
		return 0, fmt.Errorf("database not open")
	}
	r, err := s.runner()
	if err != nil {
		return 0, err
	}
	return r.ApplyMigrations(logFn)
}

// GetConfigPath returns a non-sensitive identifier instead of the connection string.
func (s *Store) GetConfigPath() string {
	return "postgresql"
}

// GetDB returns the underlying connection, or nil before Init/Load.
func (s *Store) GetDB() *sql.DB {
	return s.db
}
