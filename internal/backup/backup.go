// Package backup snapshots the SQLite diary database and restores snapshots.
package backup

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/constants"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/logger"
)

const timestampFormat = "20060102-150405"

var ErrNoBackup = errors.New("backup not found")

// Info describes one backup file.
type Info struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
	Size      int64     `json:"size"`
}

// Manager creates, lists and restores backups kept next to the database.
type Manager struct {
	dbPath    string
	backupDir string
	keep      int
	now       func() time.Time
}

func NewManager(dbPath string) *Manager {
	return &Manager{
		dbPath:    dbPath,
		backupDir: filepath.Join(filepath.Dir(dbPath), constants.BackupDirName),
		keep:      constants.MaxBackups,
		now:       time.Now,
	}
}

func (m *Manager) Dir() string {
	return m.backupDir
}

// Create writes a new snapshot and prunes the oldest beyond the retention limit.
func (m *Manager) Create() (Info, error) {
	info, err := m.create()
	if err != nil {
		return Info{}, err
	}
	if err := m.prune(); err != nil {
		logger.Warn("Failed to rotate old backups", "error", err)
	}
	return info, nil
}

func (m *Manager) create() (Info, error) {
	if _, err := os.Stat(m.dbPath); err != nil {
		return Info{}, fmt.Errorf("database does not exist: %s", m.dbPath)
	}
	if err := os.MkdirAll(m.backupDir, 0o700); err != nil {
		return Info{}, fmt.Errorf("failed to create backup directory: %w", err)
	}

	stamp := m.now().UTC().Format(timestampFormat)
	name := constants.BackupFilePrefix + stamp + constants.BackupFileSuffix
	for n := 1; fileExists(filepath.Join(m.backupDir, name)); n++ {
		if n > 100 {
			return Info{}, fmt.Errorf("failed to generate unique backup filename")
		}
		name = fmt.Sprintf("%s%s-%d%s", constants.BackupFilePrefix, stamp, n, constants.BackupFileSuffix)
	}
	dest := filepath.Join(m.backupDir, name)

	if err := snapshot(m.dbPath, dest); err != nil {
		return Info{}, fmt.Errorf("failed to backup database: %w", err)
	}
	logger.Debug("Backup created", "path", dest)
	return m.stat(name)
}

// snapshot copies src to dest with VACUUM INTO, which produces a consistent
// copy even while the WAL holds uncheckpointed pages.
func snapshot(src, dest string) error {
	db, err := sql.Open("sqlite", src+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer db.Close()

	if err := verify(db); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}
	if _, err := db.Exec("VACUUM INTO ?", dest); err != nil {
		logger.Warn("VACUUM INTO failed, falling back to a file copy", "error", err)
		return copyFile(src, dest)
	}
	return nil
}

func verify(db *sql.DB) error {
	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

// parseName extracts the timestamp from a backup file name.
func parseName(name string) (time.Time, bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)
	if i := strings.LastIndex(stamp, "-"); i > 0 && len(stamp)-i-1 != 6 {
		if _, err := strconv.Atoi(stamp[i+1:]); err == nil {
			stamp = stamp[:i]
		}
	}
	ts, err := time.Parse(timestampFormat, stamp)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

func (m *Manager) stat(name string) (Info, error) {
	ts, ok := parseName(name)
	if !ok {
		return Info{}, fmt.Errorf("%w: %s", ErrNoBackup, name)
	}
	path := filepath.Join(m.backupDir, name)
	fi, err := os.Stat(path)
	if err != nil {
		return Info{}, fmt.Errorf("%w: %s", ErrNoBackup, name)
	}
	return Info{Name: name, Path: path, Timestamp: ts, Size: fi.Size()}, nil
}

// List returns all backups, newest first.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.backupDir)
	if errors.Is(err, os.ErrNotExist) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []Info{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := m.stat(e.Name())
		if err != nil {
			continue
		}
		backups = append(backups, info)
	}
	sort.Slice(backups, func(i, j int) bool {
		if !backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Timestamp.After(backups[j].Timestamp)
		}
		return backups[i].Name > backups[j].Name
	})
	return backups, nil
}

func (m *Manager) prune() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	for i := m.keep; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Name, err)
		}
	}
	return nil
}

// Resolve maps a backup name, a path, or "latest" to a backup file.
func (m *Manager) Resolve(ref string) (string, error) {
	if ref == "latest" {
		backups, err := m.List()
		if err != nil {
			return "", err
		}
		if len(backups) == 0 {
			return "", ErrNoBackup
		}
		return backups[0].Path, nil
	}
	if fileExists(ref) {
		return ref, nil
	}
	if info, err := m.stat(filepath.Base(ref)); err == nil {
		return info.Path, nil
	}
	return "", fmt.Errorf("%w: %s", ErrNoBackup, ref)
}

// Restore replaces the database with the backup named by ref. The current
// database is snapshotted first, outside rotation, so a restore can be undone.
// The store must be closed while restoring.
func (m *Manager) Restore(ref string) (restored Info, safety *Info, err error) {
	path, err := m.Resolve(ref)
	if err != nil {
		return Info{}, nil, err
	}

	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return Info{}, nil, err
	}
	err = verify(db)
	db.Close()
	if err != nil {
		return Info{}, nil, fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	if fileExists(m.dbPath) {
		current, err := m.create()
		if err != nil {
			return Info{}, nil, fmt.Errorf("failed to backup current database before restore: %w", err)
		}
		safety = &current
	}

	tmp := m.dbPath + ".restore.tmp"
	if err := copyFile(path, tmp); err != nil {
		return Info{}, safety, fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tmp, m.dbPath); err != nil {
		_ = os.Remove(tmp)
		return Info{}, safety, fmt.Errorf("failed to restore database: %w", err)
	}
	// Stale WAL files would be replayed over the restored database.
	for _, suffix := range []string{"-wal", "-shm"} {
		_ = os.Remove(m.dbPath + suffix)
	}

	fi, _ := os.Stat(path)
	restored = Info{Name: filepath.Base(path), Path: path}
	if fi != nil {
		restored.Size = fi.Size()
	}
	restored.Timestamp, _ = parseName(restored.Name)
	return restored, safety, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
