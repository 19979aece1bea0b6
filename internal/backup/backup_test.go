package backup

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/constants"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/models"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/storage/sqlite"
)

func setupTestDB(t *testing.T, entries ...string) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "diary.db")
	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	defer store.Close()
	for _, id := range entries {
		if err := store.AddEntry(models.Entry{ID: id, Day: "2025-06-01"}); err != nil {
			t.Fatal(err)
		}
	}
	return dbPath
}

func countEntries(t *testing.T, dbPath string) int {
	t.Helper()
	store := sqlite.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatalf("failed to load store: %v", err)
	}
	defer store.Close()
	entries, err := store.ListEntries(models.EntryFilter{})
	if err != nil {
		t.Fatal(err)
	}
	return len(entries)
}

// fixedClock returns a clock that advances one minute per call.
func fixedClock(start time.Time) func() time.Time {
	n := 0
	return func() time.Time {
		n++
		return start.Add(time.Duration(n) * time.Minute)
	}
}

func TestCreateAndList(t *testing.T) {
	dbPath := setupTestDB(t, "a")
	mgr := NewManager(dbPath)
	mgr.now = fixedClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))

	first, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if first.Name != "diary-20250601-090100.db" || first.Size == 0 {
		t.Errorf("first backup = %+v", first)
	}
	if filepath.Dir(first.Path) != filepath.Join(filepath.Dir(dbPath), constants.BackupDirName) {
		t.Errorf("backup written to %s", first.Path)
	}
	if countEntries(t, first.Path) != 1 {
		t.Error("backup does not contain the entry")
	}

	second, _ := mgr.Create()
	backups, err := mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 2 || backups[0].Name != second.Name {
		t.Errorf("List = %+v, want newest first", backups)
	}
}

func TestCreateSameSecond(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	at := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	mgr.now = func() time.Time { return at }

	a, _ := mgr.Create()
	b, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}
	if a.Name == b.Name || b.Name != "diary-20250601-090000-1.db" {
		t.Errorf("names = %s, %s", a.Name, b.Name)
	}
	if !b.Timestamp.Equal(at) {
		t.Errorf("Timestamp = %v, want %v", b.Timestamp, at)
	}
}

func TestRotation(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = fixedClock(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	for i := 0; i < constants.MaxBackups+3; i++ {
		if _, err := mgr.Create(); err != nil {
			t.Fatal(err)
		}
	}
	backups, _ := mgr.List()
	if len(backups) != constants.MaxBackups {
		t.Fatalf("kept %d backups, want %d", len(backups), constants.MaxBackups)
	}
	if backups[len(backups)-1].Name != "diary-20250601-000400.db" {
		t.Errorf("oldest kept = %s", backups[len(backups)-1].Name)
	}
}

func TestListIgnoresForeignFiles(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	if backups, err := mgr.List(); err != nil || len(backups) != 0 {
		t.Errorf("List without a backup dir = %v, %v", backups, err)
	}

	if err := os.MkdirAll(mgr.Dir(), 0o700); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"notes.txt", "diary-yesterday.db", "journal-20250101-1200.db"} {
		os.WriteFile(filepath.Join(mgr.Dir(), name), []byte("x"), 0o600)
	}
	if backups, _ := mgr.List(); len(backups) != 0 {
		t.Errorf("List picked up foreign files: %+v", backups)
	}
}

func TestRestore(t *testing.T) {
	dbPath := setupTestDB(t, "a", "b")
	mgr := NewManager(dbPath)
	mgr.now = fixedClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))

	snap, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}

	store := sqlite.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	store.AddEntry(models.Entry{ID: "c", Day: "2025-06-02"})
	store.Close()
	if countEntries(t, dbPath) != 3 {
		t.Fatal("setup: expected 3 entries")
	}

	restored, safety, err := mgr.Restore(snap.Name)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if restored.Name != snap.Name {
		t.Errorf("restored %s, want %s", restored.Name, snap.Name)
	}
	if safety == nil || countEntries(t, safety.Path) != 3 {
		t.Error("restore should snapshot the current database first")
	}
	if countEntries(t, dbPath) != 2 {
		t.Errorf("after restore got %d entries, want 2", countEntries(t, dbPath))
	}
}

func TestResolve(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = fixedClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))

	if _, err := mgr.Resolve("latest"); !errors.Is(err, ErrNoBackup) {
		t.Errorf("Resolve(latest) with no backups = %v, want ErrNoBackup", err)
	}

	mgr.Create()
	newest, _ := mgr.Create()

	tests := []struct {
		ref     string
		want    string
		wantErr bool
	}{
		{"latest", newest.Path, false},
		{newest.Name, newest.Path, false},
		{newest.Path, newest.Path, false},
		{"diary-20990101-000000.db", "", true},
	}
	for _, tt := range tests {
		got, err := mgr.Resolve(tt.ref)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("Resolve(%q) = %q, %v; want %q", tt.ref, got, err, tt.want)
		}
	}
}

func TestRestoreRejectsCorruptBackup(t *testing.T) {
	dbPath := setupTestDB(t, "a")
	mgr := NewManager(dbPath)
	bad := filepath.Join(t.TempDir(), "diary-20250101-000000.db")
	if err := os.WriteFile(bad, []byte("definitely not sqlite"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, _, err := mgr.Restore(bad); err == nil {
		t.Error("Restore should reject a corrupt backup")
	}
	if countEntries(t, dbPath) != 1 {
		t.Error("a failed restore must leave the database untouched")
	}
}

func TestCreateMissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "nope.db"))
	if _, err := mgr.Create(); err == nil {
		t.Error("Create should fail for a missing database")
	}
}
