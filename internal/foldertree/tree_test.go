package foldertree

import (
	"errors"
	"reflect"
	"testing"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/models"
)

func strPtr(s string) *string { return &s }

func folder(id, parent, name string) models.Folder {
	f := models.Folder{ID: id, Name: name}
	if parent != "" {
		f.ParentID = strPtr(parent)
	}
	return f
}

func ids(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}

func TestBuildOrdersSiblings(t *testing.T) {
	b := folder("b", "", "Beta")
	b.IsPinned = true
	a := folder("a", "", "Alpha")
	c := folder("c", "", "Alpha")
	z := folder("z", "", "Zeta")
	z.SortOrder = -1

	tree := Build([]models.Folder{a, z, c, b}, nil)

	want := []string{"b", "z", "a", "c"}
	if got := ids(tree.Roots); !reflect.DeepEqual(got, want) {
		t.Errorf("root order = %v, want %v", got, want)
	}
	for _, r := range tree.Roots {
		if r.Level != 0 {
			t.Errorf("root %s level = %d, want 0", r.ID, r.Level)
		}
	}
}

func TestBuildPinnedChildFirst(t *testing.T) {
	a := folder("A", "", "Work")
	b := folder("B", "A", "Meetings")
	c := folder("C", "A", "Ideas")
	c.IsPinned = true

	tree := Build([]models.Folder{b, c, a}, map[string]int{"B": 4})

	if len(tree.Roots) != 1 || tree.Roots[0].ID != "A" {
		t.Fatalf("roots = %v, want [A]", ids(tree.Roots))
	}
	children := tree.Roots[0].Children
	if got := ids(children); !reflect.DeepEqual(got, []string{"C", "B"}) {
		t.Errorf("children = %v, want [C B]", got)
	}
	for _, ch := range children {
		if ch.Level != 1 {
			t.Errorf("child %s level = %d, want 1", ch.ID, ch.Level)
		}
	}
	if children[1].EntryCount != 4 {
		t.Errorf("B EntryCount = %d, want 4", children[1].EntryCount)
	}
	if children[0].EntryCount != 0 {
		t.Errorf("C EntryCount = %d, want 0", children[0].EntryCount)
	}
}

func TestBuildLevelsIndependentOfInputOrder(t *testing.T) {
	// Child listed before its parent, which is listed before the root.
	records := []models.Folder{
		folder("leaf", "mid", "Leaf"),
		folder("mid", "root", "Mid"),
		folder("root", "", "Root"),
	}
	tree := Build(records, nil)

	wantLevels := map[string]int{"root": 0, "mid": 1, "leaf": 2}
	for id, want := range wantLevels {
		n, ok := tree.Find(id)
		if !ok {
			t.Fatalf("Find(%q) missing", id)
		}
		if n.Level != want {
			t.Errorf("%s level = %d, want %d", id, n.Level, want)
		}
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	records := []models.Folder{
		folder("r1", "", "Journal"),
		folder("r2", "", "Journal"),
		folder("c1", "r1", "2024"),
		folder("c2", "r1", "2025"),
		folder("g1", "c2", "June"),
		folder("x", "missing", "Orphan"),
	}
	reversed := make([]models.Folder, len(records))
	for i, r := range records {
		reversed[len(records)-1-i] = r
	}

	first := Build(records, map[string]int{"g1": 2})
	second := Build(reversed, map[string]int{"g1": 2})
	if !reflect.DeepEqual(first, second) {
		t.Error("Build produced different trees for the same records")
	}
}

func TestBuildDanglingParent(t *testing.T) {
	records := []models.Folder{
		folder("root", "", "Root"),
		folder("orphan", "gone", "Orphan"),
		folder("orphan-child", "orphan", "Below orphan"),
	}
	tree := Build(records, nil)

	if tree.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tree.Len())
	}
	if _, ok := tree.Find("orphan-child"); ok {
		t.Error("subtree of a dangling folder should not be placed")
	}
	want := []IntegrityWarning{{FolderID: "orphan", ParentID: "gone", Kind: DanglingParent}}
	if !reflect.DeepEqual(tree.Warnings, want) {
		t.Errorf("Warnings = %+v, want %+v", tree.Warnings, want)
	}
	if err := tree.Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}
}

func TestBuildCycle(t *testing.T) {
	records := []models.Folder{
		folder("root", "", "Root"),
		folder("a", "b", "A"),
		folder("b", "a", "B"),
	}
	tree := Build(records, nil)

	if tree.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tree.Len())
	}
	if len(tree.Warnings) != 2 {
		t.Fatalf("Warnings = %+v, want two cycle warnings", tree.Warnings)
	}
	for _, w := range tree.Warnings {
		if w.Kind != Cycle {
			t.Errorf("warning kind = %s, want %s", w.Kind, Cycle)
		}
	}
	if !errors.Is(tree.Err(), ErrCycle) {
		t.Errorf("Err() = %v, want ErrCycle", tree.Err())
	}

	if _, err := tree.Path("a"); !errors.Is(err, ErrCycle) {
		t.Errorf("Path(a) error = %v, want ErrCycle", err)
	}
}

func TestPath(t *testing.T) {
	records := []models.Folder{
		folder("leaf", "mid", "Leaf"),
		folder("root", "", "Root"),
		folder("mid", "root", "Mid"),
		folder("stray", "nowhere", "Stray"),
	}
	tree := Build(records, nil)

	tests := []struct {
		name    string
		id      string
		want    []string
		wantErr error
	}{
		{"leaf", "leaf", []string{"root", "mid", "leaf"}, nil},
		{"root", "root", []string{"root"}, nil},
		{"truncated at missing parent", "stray", []string{"stray"}, nil},
		{"unknown", "nope", nil, ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := tree.Path(tt.id)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Path(%q) error = %v, want %v", tt.id, err, tt.wantErr)
			}
			var got []string
			for _, f := range path {
				got = append(got, f.ID)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Path(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestToggleExpandedAndVisible(t *testing.T) {
	records := []models.Folder{
		folder("root", "", "Root"),
		folder("child", "root", "Child"),
		folder("grandchild", "child", "Grandchild"),
	}
	tree := Build(records, nil)

	if got := ids(tree.Visible()); !reflect.DeepEqual(got, []string{"root"}) {
		t.Errorf("Visible() = %v, want [root]", got)
	}

	expanded, err := tree.ToggleExpanded("root")
	if err != nil || !expanded {
		t.Fatalf("ToggleExpanded(root) = %v, %v; want true, nil", expanded, err)
	}
	if got := ids(tree.Visible()); !reflect.DeepEqual(got, []string{"root", "child"}) {
		t.Errorf("Visible() = %v, want [root child]", got)
	}

	path, _ := tree.Path("root")
	if !path[0].IsExpanded {
		t.Error("Path should reflect the toggled state")
	}

	expanded, _ = tree.ToggleExpanded("root")
	if expanded {
		t.Error("second toggle should collapse")
	}

	if _, err := tree.ToggleExpanded("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ToggleExpanded(missing) error = %v, want ErrNotFound", err)
	}
}

func TestWalkVisitsEveryPlacedNode(t *testing.T) {
	tree := Build([]models.Folder{
		folder("a", "", "A"),
		folder("b", "a", "B"),
		folder("c", "", "C"),
	}, nil)

	var seen []string
	tree.Walk(func(n *Node) { seen = append(seen, n.ID) })
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(seen, want) {
		t.Errorf("Walk order = %v, want %v", seen, want)
	}
}

func TestBuildEmpty(t *testing.T) {
	tree := Build(nil, nil)
	if tree.Roots == nil || len(tree.Roots) != 0 {
		t.Errorf("Roots = %v, want empty non-nil slice", tree.Roots)
	}
	if tree.Err() != nil {
		t.Errorf("Err() = %v, want nil", tree.Err())
	}
}
