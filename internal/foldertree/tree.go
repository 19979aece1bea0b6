// Package foldertree turns the flat list of folder records kept in storage into
// an ordered forest, and answers breadcrumb and expand/collapse queries on it.
package foldertree

import (
	"errors"
	"sort"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/models"
)

var (
	// ErrCycle is returned when parent links loop back on themselves.
	ErrCycle = errors.New("folder hierarchy contains a cycle")
	// ErrNotFound is returned for an id that is not part of the tree.
	ErrNotFound = errors.New("folder not found")
)

// WarningKind classifies a record that could not be placed in the forest.
type WarningKind string

const (
	DanglingParent WarningKind = "dangling_parent"
	Cycle          WarningKind = "cycle"
)

// IntegrityWarning describes a folder record left out of the forest.
type IntegrityWarning struct {
	FolderID string      `json:"folder_id"`
	ParentID string      `json:"parent_id"`
	Kind     WarningKind `json:"kind"`
}

// Node is a folder placed in the tree.
type Node struct {
	models.Folder
	Children   []*Node `json:"children"`
	Level      int     `json:"level"`
	EntryCount int     `json:"entry_count"`
}

// Tree is an ordered forest of folders.
type Tree struct {
	Roots    []*Node            `json:"roots"`
	Warnings []IntegrityWarning `json:"warnings,omitempty"`

	byID    map[string]*Node
	records map[string]models.Folder
}

// Less orders siblings: pinned folders first, then by sort order, name and id.
func Less(a, b models.Folder) bool {
	if a.IsPinned != b.IsPinned {
		return a.IsPinned
	}
	if a.SortOrder != b.SortOrder {
		return a.SortOrder < b.SortOrder
	}
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.ID < b.ID
}

// Build assembles records into a forest. entryCounts may be nil.
//
// Records whose parent does not exist are dropped together with their subtrees
// and reported as dangling_parent warnings. Records that sit on or below a parent
// cycle can never be reached from a root; they are dropped and reported as cycle
// warnings. Input order does not affect the result.
func Build(records []models.Folder, entryCounts map[string]int) *Tree {
	t := &Tree{
		byID:    make(map[string]*Node, len(records)),
		records: make(map[string]models.Folder, len(records)),
	}

	for _, r := range records {
		t.records[r.ID] = r
	}

	nodes := make(map[string]*Node, len(t.records))
	for id, r := range t.records {
		nodes[id] = &Node{Folder: r, Children: []*Node{}, EntryCount: entryCounts[id]}
	}

	var dangling []string
	for id, n := range nodes {
		if n.IsRoot() {
			t.Roots = append(t.Roots, n)
			continue
		}
		parent, ok := nodes[*n.ParentID]
		if !ok {
			dangling = append(dangling, id)
			continue
		}
		parent.Children = append(parent.Children, n)
	}

	sortNodes(t.Roots)
	for _, root := range t.Roots {
		t.place(root, 0)
	}

	// Anything not reached from a root hangs off a dangling parent or a cycle.
	reachedViaDangling := make(map[string]bool)
	for _, id := range dangling {
		t.Warnings = append(t.Warnings, IntegrityWarning{
			FolderID: id,
			ParentID: *nodes[id].ParentID,
			Kind:     DanglingParent,
		})
		markSubtree(nodes[id], reachedViaDangling)
	}
	for id, n := range nodes {
		if _, placed := t.byID[id]; placed || reachedViaDangling[id] {
			continue
		}
		t.Warnings = append(t.Warnings, IntegrityWarning{
			FolderID: id,
			ParentID: *n.ParentID,
			Kind:     Cycle,
		})
	}
	sort.Slice(t.Warnings, func(i, j int) bool {
		if t.Warnings[i].Kind != t.Warnings[j].Kind {
			return t.Warnings[i].Kind < t.Warnings[j].Kind
		}
		return t.Warnings[i].FolderID < t.Warnings[j].FolderID
	})

	if t.Roots == nil {
		t.Roots = []*Node{}
	}
	return t
}

func (t *Tree) place(n *Node, level int) {
	n.Level = level
	t.byID[n.ID] = n
	sortNodes(n.Children)
	for _, c := range n.Children {
		t.place(c, level+1)
	}
}

func markSubtree(n *Node, seen map[string]bool) {
	if seen[n.ID] {
		return
	}
	seen[n.ID] = true
	for _, c := range n.Children {
		markSubtree(c, seen)
	}
}

func sortNodes(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return Less(nodes[i].Folder, nodes[j].Folder)
	})
}

// Find returns the placed node with the given id.
func (t *Tree) Find(id string) (*Node, bool) {
	n, ok := t.byID[id]
	return n, ok
}

// Path returns the chain of folders from a root down to folderID.
// The walk stops quietly at a parent id that has no record. Records that were
// dropped from the forest can still be resolved, so a breadcrumb for a folder
// under a dangling parent is the partial chain that exists.
func (t *Tree) Path(folderID string) ([]models.Folder, error) {
	current, ok := t.records[folderID]
	if !ok {
		return nil, ErrNotFound
	}

	visited := map[string]bool{}
	var reversed []models.Folder
	for {
		if visited[current.ID] {
			return nil, ErrCycle
		}
		visited[current.ID] = true
		reversed = append(reversed, current)

		if current.IsRoot() {
			break
		}
		parent, ok := t.records[*current.ParentID]
		if !ok {
			break
		}
		current = parent
	}

	path := make([]models.Folder, len(reversed))
	for i, f := range reversed {
		path[len(reversed)-1-i] = f
	}
	return path, nil
}

// ToggleExpanded flips the expanded flag of one folder in place and returns the
// new state.
func (t *Tree) ToggleExpanded(folderID string) (bool, error) {
	n, ok := t.byID[folderID]
	if !ok {
		return false, ErrNotFound
	}
	n.IsExpanded = !n.IsExpanded
	r := t.records[folderID]
	r.IsExpanded = n.IsExpanded
	t.records[folderID] = r
	return n.IsExpanded, nil
}

// Visible lists nodes in display order, descending only into expanded folders.
func (t *Tree) Visible() []*Node {
	var out []*Node
	var walk func([]*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			out = append(out, n)
			if n.IsExpanded {
				walk(n.Children)
			}
		}
	}
	walk(t.Roots)
	return out
}

// Walk visits every placed node depth-first in sibling order.
func (t *Tree) Walk(fn func(*Node)) {
	var walk func([]*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			fn(n)
			walk(n.Children)
		}
	}
	walk(t.Roots)
}

// Len is the number of folders placed in the forest.
func (t *Tree) Len() int {
	return len(t.byID)
}

// Err reports ErrCycle when any record was dropped because of a cycle.
func (t *Tree) Err() error {
	for _, w := range t.Warnings {
		if w.Kind == Cycle {
			return ErrCycle
		}
	}
	return nil
}
