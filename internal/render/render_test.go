package render

import (
	"strings"
	"testing"
	"time"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/foldertree"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/models"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/streak"
)

func strPtr(s string) *string { return &s }

func TestStreak(t *testing.T) {
	last := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	r := streak.Result{
		CurrentStreak: 4,
		LongestStreak: 9,
		TotalEntries:  20,
		LastEntryDate: &last,
		NextMilestone: streak.NextMilestone(4),
	}
	out := Streak(r, true)
	for _, want := range []string{"Current", "4 days", "9 days", "2025-06-14", "3 more days", "keep your streak"} {
		if !strings.Contains(out, want) {
			t.Errorf("Streak output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(Streak(r, false), "keep your streak") {
		t.Error("at-risk line shown for a safe streak")
	}

	broken := streak.Result{LongestStreak: 9, LastEntryDate: &last, NextMilestone: streak.NextMilestone(0)}
	out = Streak(broken, true)
	if strings.Contains(out, "keep your streak") || !strings.Contains(out, "Nothing written today") {
		t.Errorf("broken streak should not promise to keep it alive:\n%s", out)
	}
}

func TestHeatmap(t *testing.T) {
	if !strings.Contains(Heatmap(streak.Calendar{}), "No days") {
		t.Error("empty calendar should say so")
	}

	days := []models.EntryDate{
		{Date: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), Count: 1},
		{Date: time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), Count: 6},
	}
	cal := streak.BuildCalendar(days, time.Date(2025, 5, 25, 0, 0, 0, 0, time.UTC), time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC))
	out := Heatmap(cal)
	lines := strings.Split(out, "\n")

	// Header, seven weekday rows, a blank line and the legend.
	if len(lines) != 10 {
		t.Fatalf("got %d lines, want 10:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "May") || !strings.Contains(lines[0], "Jun") {
		t.Errorf("header = %q", lines[0])
	}
	// 2025-05-25 is a Sunday, so four full weeks fit exactly.
	if got := strings.Count(lines[1], cellGlyph); got != 4 {
		t.Errorf("Sunday row has %d cells, want 4", got)
	}
	if !strings.HasPrefix(lines[2], "Mon") {
		t.Errorf("second row = %q, want Mon label", lines[2])
	}
	if !strings.Contains(lines[9], "Less") {
		t.Errorf("legend = %q", lines[9])
	}
}

func TestTree(t *testing.T) {
	tree := foldertree.Build([]models.Folder{
		{ID: "root", Name: "Journal", IsExpanded: true},
		{ID: "travel", Name: "Travel", ParentID: strPtr("root"), IsPinned: true},
		{ID: "japan", Name: "Japan", ParentID: strPtr("travel")},
		{ID: "lost", Name: "Lost", ParentID: strPtr("missing")},
	}, map[string]int{"travel": 3})

	out := Tree(tree, TreeOptions{})
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "▾ Journal") {
		t.Errorf("root line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "  ▸ Travel *") || !strings.Contains(lines[1], "(3)") {
		t.Errorf("child line = %q", lines[1])
	}
	if !strings.Contains(lines[2], "lost") || !strings.Contains(lines[2], "dangling_parent") {
		t.Errorf("warning line = %q", lines[2])
	}

	all := Tree(tree, TreeOptions{All: true})
	if !strings.Contains(all, "    Japan") {
		t.Errorf("expanded tree should show the grandchild at level 2:\n%s", all)
	}

	if !strings.Contains(Tree(foldertree.Build(nil, nil), TreeOptions{}), "No folders") {
		t.Error("empty tree should say so")
	}
}
