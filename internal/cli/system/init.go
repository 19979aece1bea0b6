package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/cli"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/export"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/storage"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/storage/postgres"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Delete an existing SQLite database before initializing."`
	Source string `help:"Database path or connection string to copy entries and folders from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force && ctx.IsSQLite() {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized diary storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Copying data from: %s\n", c.Source)
		if err := c.copyFrom(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	dbPath := ctx.Store.GetConfigPath()
	if abs, err := filepath.Abs(dbPath); err == nil {
		dbPath = abs
	}
	if c.Source != "" {
		if src, err := filepath.Abs(c.Source); err == nil && src == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	_, err := os.Stat(dbPath)
	switch {
	case os.IsNotExist(err):
		return nil
	case err != nil:
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close existing database: %w", err)
	}
	for _, suffix := range []string{"", "-wal", "-shm"} {
		if err := os.Remove(dbPath + suffix); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
	}
	ctx.Printf("Deleted existing database at: %s\n", dbPath)
	return nil
}

func (c *InitCmd) copyFrom(ctx *cli.Context) error {
	source, err := openSource(c.Source)
	if err != nil {
		return err
	}
	if err := source.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer source.Close()

	settings, err := source.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	doc, err := export.Build(ctx.Context(), source, export.Options{IncludeDeleted: true})
	if err != nil {
		return err
	}
	result, err := export.Import(ctx.Context(), ctx.Store, doc)
	if err != nil {
		return err
	}
	ctx.Printf("  Copied %d entries and %d folders (%d already present)\n", result.Entries, result.Folders, result.Skipped)
	return nil
}

func openSource(src string) (storage.Provider, error) {
	if !postgres.IsConnString(src) {
		return sqlite.NewStore(src), nil
	}
	if _, err := postgres.ValidateConnString(src); err != nil {
		if errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return nil, errors.New("PostgreSQL source connection string contains embedded credentials. Use the keyring, PGPASSWORD or .pgpass instead")
		}
		return nil, err
	}
	return postgres.New(src), nil
}
