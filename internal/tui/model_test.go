package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/insights"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/models"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/storage/sqlite"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/tui/components/folders"
)

func setupModel(t *testing.T) (Model, *insights.Service) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "diary.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	svc, err := insights.New(store, insights.WithClock(func() time.Time { return now }), insights.WithTimezone("UTC"))
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	journal, err := svc.AddFolder(ctx, models.Folder{Name: "Journal"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddFolder(ctx, models.Folder{Name: "Travel", ParentID: &journal.ID}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddFolder(ctx, models.Folder{Name: "Work"}); err != nil {
		t.Fatal(err)
	}
	for _, day := range []string{"2025-06-13", "2025-06-14"} {
		if _, err := svc.AddEntry(ctx, models.Entry{Day: day, Content: "x"}); err != nil {
			t.Fatal(err)
		}
	}

	return NewModel(ctx, svc), svc
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press sends a key and delivers any folder message the pane emits in response.
func press(t *testing.T, m Model, k string) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(keyMsg(k))
	m = next.(Model)
	if cmd == nil || m.state == StateAddFolder || m.state == StateAddEntry {
		return m, cmd
	}
	switch msg := cmd().(type) {
	case folders.AddFolderMsg, folders.ToggleFolderMsg, folders.PinFolderMsg, folders.DeleteFolderMsg:
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func visibleNames(m Model) string {
	tree, _ := m.svc.FolderTree(m.ctx)
	var names []string
	for _, n := range tree.Visible() {
		names = append(names, n.Name)
	}
	return strings.Join(names, ",")
}

func TestTabSwitching(t *testing.T) {
	m, _ := setupModel(t)

	if m.State() != StateStreak {
		t.Fatalf("initial state = %v, want StateStreak", m.State())
	}
	if !strings.Contains(m.View(), "Writing streak") {
		t.Errorf("streak tab missing summary:\n%s", m.View())
	}

	m, _ = press(t, m, "tab")
	if m.State() != StateFolders {
		t.Errorf("after tab state = %v, want StateFolders", m.State())
	}
	m, _ = press(t, m, "tab")
	if m.State() != StateStreak {
		t.Errorf("tab should wrap to StateStreak, got %v", m.State())
	}
	m, _ = press(t, m, "shift+tab")
	if m.State() != StateFolders {
		t.Errorf("shift+tab state = %v, want StateFolders", m.State())
	}
}

func TestStreakTabShowsCurrentStreak(t *testing.T) {
	m, _ := setupModel(t)
	if m.err != nil {
		t.Fatalf("reload error: %v", m.err)
	}
	if !strings.Contains(m.View(), "Write today") {
		t.Errorf("a streak ending yesterday should show the at-risk warning:\n%s", m.View())
	}
}

func TestFolderToggleAndNavigation(t *testing.T) {
	m, svc := setupModel(t)
	m, _ = press(t, m, "tab")

	if got := visibleNames(m); got != "Journal,Work" {
		t.Fatalf("visible = %q, want Journal,Work", got)
	}
	if m.foldersModel.Selected().Name != "Journal" {
		t.Fatalf("cursor on %q, want Journal", m.foldersModel.Selected().Name)
	}

	m, _ = press(t, m, "enter")
	if m.err != nil {
		t.Fatalf("toggle failed: %v", m.err)
	}
	if got := visibleNames(m); got != "Journal,Travel,Work" {
		t.Errorf("visible after expand = %q", got)
	}
	if !strings.Contains(m.View(), "Travel") {
		t.Errorf("expanded child not rendered:\n%s", m.View())
	}

	m, _ = press(t, m, "j")
	if m.foldersModel.Selected().Name != "Travel" {
		t.Errorf("after j cursor on %q, want Travel", m.foldersModel.Selected().Name)
	}

	// Pinning Work moves it ahead of Journal and the cursor follows it.
	m, _ = press(t, m, "j")
	m, _ = press(t, m, "p")
	if m.err != nil {
		t.Fatalf("pin failed: %v", m.err)
	}
	work := m.foldersModel.Selected()
	if work == nil || work.Name != "Work" || !work.IsPinned {
		t.Fatalf("selected after pin = %+v, want pinned Work", work)
	}
	if got := visibleNames(m); got != "Work,Journal,Travel" {
		t.Errorf("visible after pin = %q", got)
	}

	stored, err := svc.Store().GetFolder(work.ID)
	if err != nil || !stored.IsPinned {
		t.Errorf("pin not persisted: %+v, %v", stored, err)
	}

	m, _ = press(t, m, "k")
	m, _ = press(t, m, "k")
	if m.foldersModel.Selected().Name != "Work" {
		t.Errorf("cursor should stop at the top, on %q", m.foldersModel.Selected().Name)
	}
}

func TestFolderDelete(t *testing.T) {
	m, _ := setupModel(t)
	m, _ = press(t, m, "tab")

	m, _ = press(t, m, "j")
	m, _ = press(t, m, "d")
	if m.err != nil {
		t.Fatal(m.err)
	}
	if got := visibleNames(m); got != "Journal" {
		t.Errorf("visible after delete = %q, want Journal", got)
	}
	if !strings.Contains(m.status, "trash") {
		t.Errorf("status = %q", m.status)
	}
}

func TestFormsOpenAndCancel(t *testing.T) {
	m, _ := setupModel(t)
	m, _ = press(t, m, "tab")

	m, cmd := press(t, m, "a")
	if m.State() != StateAddFolder {
		t.Fatalf("state after a = %v, want StateAddFolder", m.State())
	}
	if cmd == nil {
		t.Error("opening a form should return its init command")
	}
	if m.folderForm == nil || m.folderForm.ParentID != "" {
		t.Errorf("folder form = %+v, want a top-level folder", m.folderForm)
	}

	m, _ = press(t, m, "esc")
	if m.State() != StateFolders {
		t.Errorf("esc should return to folders, got %v", m.State())
	}

	m, _ = press(t, m, "A")
	if m.State() != StateAddFolder || m.folderForm.ParentID != m.foldersModel.SelectedID() {
		t.Errorf("A should open a subfolder form for the selected folder, got %+v", m.folderForm)
	}
	m, _ = press(t, m, "esc")

	m, _ = press(t, m, "w")
	if m.State() != StateAddEntry {
		t.Fatalf("state after w = %v, want StateAddEntry", m.State())
	}
	m, _ = press(t, m, "esc")
	if m.State() != StateFolders {
		t.Errorf("esc should return to folders, got %v", m.State())
	}
}

func TestQuit(t *testing.T) {
	m, _ := setupModel(t)
	next, cmd := m.Update(keyMsg("q"))
	m = next.(Model)
	if !m.quitting || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}
