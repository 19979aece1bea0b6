package entries

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/cli"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/models"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/storage"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/storage/sqlite"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/validation"
)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	var out bytes.Buffer
	return &cli.Context{
		Store:    store,
		Timezone: "UTC",
		Now:      func() time.Time { return time.Date(2025, 6, 15, 22, 0, 0, 0, time.UTC) },
		Out:      &out,
	}, &out
}

func listed(t *testing.T, ctx *cli.Context, out *bytes.Buffer, cmd ListCmd) []models.Entry {
	t.Helper()
	out.Reset()
	cmd.JSON = true
	if err := cmd.Run(ctx); err != nil {
		t.Fatal(err)
	}
	var entries []models.Entry
	if err := json.Unmarshal(out.Bytes(), &entries); err != nil {
		t.Fatalf("invalid JSON %q: %v", out.String(), err)
	}
	return entries
}

func TestAddCmd(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&AddCmd{Content: "First page", Day: "yesterday", Mood: 4}).Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := (&AddCmd{Content: "Second page", Day: "today"}).Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if !strings.Contains(out.String(), "Current streak: 2 days") {
		t.Errorf("unexpected output:\n%s", out.String())
	}

	entries := listed(t, ctx, out, ListCmd{})
	if len(entries) != 2 || entries[0].Day != "2025-06-15" || entries[1].Day != "2025-06-14" {
		t.Errorf("entries = %+v", entries)
	}
	if entries[1].Mood != 4 || entries[1].ID == "" {
		t.Errorf("first entry = %+v", entries[1])
	}
}

func TestAddCmd_Invalid(t *testing.T) {
	ctx, _ := setupTestDB(t)

	tests := []struct {
		name string
		cmd  AddCmd
		want error
	}{
		{"bad day", AddCmd{Day: "15/06/2025"}, validation.ErrInvalid},
		{"bad mood", AddCmd{Day: "today", Mood: 9}, validation.ErrInvalid},
		{"missing folder", AddCmd{Day: "today", Folder: "ghost"}, storage.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Run(ctx); !errors.Is(err, tt.want) {
				t.Errorf("Run() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestListCmd_Filters(t *testing.T) {
	ctx, out := setupTestDB(t)
	folder := "work"
	ctx.Store.AddFolder(models.Folder{ID: folder, Name: "Work"})
	for _, e := range []models.Entry{
		{ID: "a", Day: "2025-06-01"},
		{ID: "b", Day: "2025-06-05", FolderID: &folder},
		{ID: "c", Day: "2025-06-10"},
	} {
		if err := ctx.Store.AddEntry(e); err != nil {
			t.Fatal(err)
		}
	}

	if got := listed(t, ctx, out, ListCmd{From: "2025-06-02"}); len(got) != 2 {
		t.Errorf("--from returned %d entries, want 2", len(got))
	}
	if got := listed(t, ctx, out, ListCmd{Folder: folder}); len(got) != 1 || got[0].ID != "b" {
		t.Errorf("--folder returned %+v", got)
	}
	if got := listed(t, ctx, out, ListCmd{Limit: 1}); len(got) != 1 || got[0].ID != "c" {
		t.Errorf("--limit returned %+v", got)
	}

	out.Reset()
	if err := (&ListCmd{Limit: 20}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "DAY") || !strings.Contains(out.String(), "2025-06-10") {
		t.Errorf("table output:\n%s", out.String())
	}
}

func TestDeleteRestore(t *testing.T) {
	ctx, out := setupTestDB(t)
	if err := ctx.Store.AddEntry(models.Entry{ID: "e1", Day: "2025-06-15"}); err != nil {
		t.Fatal(err)
	}

	if err := (&DeleteCmd{ID: "e1"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if got := listed(t, ctx, out, ListCmd{}); len(got) != 0 {
		t.Errorf("deleted entry still listed: %+v", got)
	}
	if got := listed(t, ctx, out, ListCmd{Deleted: true}); len(got) != 1 || got[0].DeletedAt == nil {
		t.Errorf("--deleted listing = %+v", got)
	}
	if err := (&DeleteCmd{ID: "e1"}).Run(ctx); !errors.Is(err, storage.ErrAlreadyDeleted) {
		t.Errorf("second delete = %v, want ErrAlreadyDeleted", err)
	}
	if err := (&RestoreCmd{ID: "e1"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&RestoreCmd{ID: "e1"}).Run(ctx); !errors.Is(err, storage.ErrNotDeleted) {
		t.Errorf("second restore = %v, want ErrNotDeleted", err)
	}
}

func TestSummary(t *testing.T) {
	if got := summary("  hello\nworld"); got != "hello" {
		t.Errorf("summary = %q", got)
	}
	long := strings.Repeat("x", 80)
	if got := summary(long); len([]rune(got)) != 50 || !strings.HasSuffix(got, "…") {
		t.Errorf("summary of long line = %q", got)
	}
}
