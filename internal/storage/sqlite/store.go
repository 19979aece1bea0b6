package sqlite

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/constants"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/logger"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/migration"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/models"
	"github.com/Harshit-code-tech/personal-diary-sub001/migrations"
)

type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) open() error {
	db, err := sql.Open("sqlite", s.path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// A single writer avoids SQLITE_BUSY under the HTTP server.
	db.SetMaxOpenConns(1)
	s.db = db
	return nil
}

func (s *Store) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if s.db == nil {
		if err := s.open(); err != nil {
			return err
		}
	}

	if _, err := s.Migrate(func(msg string) { logger.Info(msg) }); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	settings, err := s.GetSettings()
	if err != nil || settings.Timezone == "" {
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
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
	}
	if err := s.open(); err != nil {
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
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS, migration.DriverSQLite)
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

func (s *Store) GetConfigPath() string {
	return s.path
}

// GetDB returns the underlying connection, or nil before Init/Load.
func (s *Store) GetDB() *sql.DB {
	return s.db
}
