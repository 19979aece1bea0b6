package postgres

import (
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/constants"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/models"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/storage"
)

// Set POSTGRES_TEST_URL to run, e.g.
// POSTGRES_TEST_URL="postgres://diary_user@localhost:5432/diary_test?sslmode=disable"
func TestStore_Integration(t *testing.T) {
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	store := New(connStr)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer store.Close()

	t.Run("Settings", func(t *testing.T) {
		settings, err := store.GetSettings()
		if err != nil {
			t.Fatalf("GetSettings failed: %v", err)
		}
		if settings.CalendarMonths == 0 {
			t.Errorf("CalendarMonths = 0, want a default of %d", constants.DefaultCalendarMonths)
		}
		settings.ReminderTime = "21:30"
		if err := store.SaveSettings(settings); err != nil {
			t.Fatalf("SaveSettings failed: %v", err)
		}
		got, _ := store.GetSettings()
		if got.ReminderTime != "21:30" {
			t.Errorf("ReminderTime = %q, want 21:30", got.ReminderTime)
		}
	})

	t.Run("Entries", func(t *testing.T) {
		folderID := uuid.New().String()
		id := uuid.New().String()
		entry := models.Entry{ID: id, Day: "2025-06-01", Title: "pg", Mood: 3, FolderID: &folderID}
		if err := store.AddEntry(entry); err != nil {
			t.Fatalf("AddEntry failed: %v", err)
		}
		got, err := store.GetEntry(id)
		if err != nil || got.Mood != 3 {
			t.Fatalf("GetEntry = %+v, %v", got, err)
		}

		dates, err := store.GetEntryDates("2025-06-01", "2025-06-01")
		if err != nil || len(dates) == 0 {
			t.Errorf("GetEntryDates = %v, %v", dates, err)
		}
		counts, err := store.CountEntriesByFolder()
		if err != nil || counts[folderID] != 1 {
			t.Errorf("CountEntriesByFolder()[%s] = %d, %v; want 1", folderID, counts[folderID], err)
		}

		if err := store.DeleteEntry(id); err != nil {
			t.Fatal(err)
		}
		if err := store.DeleteEntry(id); !errors.Is(err, storage.ErrAlreadyDeleted) {
			t.Errorf("second DeleteEntry = %v, want ErrAlreadyDeleted", err)
		}
		if err := store.RestoreEntry(id); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("Folders", func(t *testing.T) {
		root := models.Folder{ID: uuid.New().String(), Name: "Root"}
		if err := store.AddFolder(root); err != nil {
			t.Fatalf("AddFolder failed: %v", err)
		}
		if err := store.SetFolderExpanded(root.ID, true); err != nil {
			t.Fatal(err)
		}
		got, err := store.GetFolder(root.ID)
		if err != nil || !got.IsExpanded {
			t.Errorf("GetFolder = %+v, %v; want expanded", got, err)
		}
		if err := store.DeleteFolder(root.ID); err != nil {
			t.Fatal(err)
		}
		if _, err := store.GetFolder(root.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetFolder after delete = %v, want ErrNotFound", err)
		}
	})
}
