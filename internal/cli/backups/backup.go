package backups

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/backup"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/cli"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/constants"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/logger"
)

var errNotSQLite = errors.New("backups are only available for SQLite databases; use pg_dump for PostgreSQL")

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	if !ctx.IsSQLite() {
		return errNotSQLite
	}
	info, err := backup.NewManager(ctx.Store.GetConfigPath()).Create()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	ctx.Printf("✓ Backup created: %s\n", info.Name)
	return nil
}

type BackupListCmd struct {
	JSON bool `help:"Output as JSON."`
}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	if !ctx.IsSQLite() {
		return errNotSQLite
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if c.JSON {
		if backups == nil {
			backups = []backup.Info{}
		}
		return ctx.PrintJSON(backups)
	}

	if len(backups) == 0 {
		ctx.Println("No backups found.")
		ctx.Printf("Backups are stored in: %s\n", mgr.Dir())
		return nil
	}
	ctx.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		ctx.Printf("  %s  %s  (%.1f KB)\n", b.Timestamp.Local().Format("2006-01-02 15:04:05"), b.Name, float64(b.Size)/1024.0)
	}
	ctx.Printf("\nBackup directory: %s\n", mgr.Dir())
	return nil
}

// confirmRestore asks before overwriting the database; replaced in tests.
var confirmRestore = func(path string) (bool, error) {
	ok := false
	err := huh.NewConfirm().
		Title("Replace the current database with this backup?").
		Description(path + "\nStop every other diary process first. The current database is backed up before restoring.").
		Affirmative("Restore").
		Negative("Cancel").
		Value(&ok).
		Run()
	return ok, err
}

type BackupRestoreCmd struct {
	Backup string `arg:"" default:"latest" help:"Backup file name, path, or 'latest'."`
	Yes    bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	if !ctx.IsSQLite() {
		return errNotSQLite
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	path, err := mgr.Resolve(c.Backup)
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := confirmRestore(path)
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Restore cancelled.")
			return nil
		}
	}

	if err := ctx.Store.Close(); err != nil {
		logger.Warn("Failed to close database before restore", "error", err)
	}
	restored, safety, err := mgr.Restore(path)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	if safety != nil {
		ctx.Printf("Previous database saved as %s\n", safety.Name)
	}
	ctx.Printf("✓ Database restored from %s\n", restored.Name)
	ctx.Println("Restart any running 'diary serve' or 'diary tui' processes.")
	return nil
}
