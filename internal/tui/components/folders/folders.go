// Package folders is the folder tree pane of the terminal UI.
package folders

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/foldertree"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/render"
)

type ToggleFolderMsg struct {
	ID string
}

// AddFolderMsg asks for a new folder under ParentID, or at the top level when empty.
type AddFolderMsg struct {
	ParentID string
}

type PinFolderMsg struct {
	ID     string
	Pinned bool
}

type DeleteFolderMsg struct {
	ID string
}

type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Add      key.Binding
	AddChild key.Binding
	Pin      key.Binding
	Delete   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "expand/collapse"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add folder"),
		),
		AddChild: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "add subfolder"),
		),
		Pin: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pin/unpin"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

// Model keeps a cursor over the visible rows of a folder tree.
type Model struct {
	tree    *foldertree.Tree
	visible []*foldertree.Node
	cursor  int
	keys    KeyMap
	width   int
	height  int
}

func New(width, height int) Model {
	return Model{keys: DefaultKeyMap(), width: width, height: height}
}

// SetTree replaces the tree, keeping the cursor on the same folder when it is
// still visible.
func (m *Model) SetTree(tree *foldertree.Tree) {
	selected := m.SelectedID()
	m.tree = tree
	m.visible = nil
	if tree != nil {
		m.visible = tree.Visible()
	}
	m.cursor = 0
	for i, n := range m.visible {
		if n.ID == selected {
			m.cursor = i
			break
		}
	}
}

// Selected is the node under the cursor, or nil for an empty tree.
func (m Model) Selected() *foldertree.Node {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return nil
	}
	return m.visible[m.cursor]
}

func (m Model) SelectedID() string {
	if n := m.Selected(); n != nil {
		return n.ID
	}
	return ""
}

func (m Model) Keys() KeyMap {
	return m.keys
}

func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(kmsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(kmsg, m.keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case key.Matches(kmsg, m.keys.Add):
		return m, func() tea.Msg { return AddFolderMsg{} }
	case key.Matches(kmsg, m.keys.AddChild):
		if n := m.Selected(); n != nil {
			return m, func() tea.Msg { return AddFolderMsg{ParentID: n.ID} }
		}
	case key.Matches(kmsg, m.keys.Toggle):
		if n := m.Selected(); n != nil && len(n.Children) > 0 {
			return m, func() tea.Msg { return ToggleFolderMsg{ID: n.ID} }
		}
	case key.Matches(kmsg, m.keys.Pin):
		if n := m.Selected(); n != nil {
			return m, func() tea.Msg { return PinFolderMsg{ID: n.ID, Pinned: !n.IsPinned} }
		}
	case key.Matches(kmsg, m.keys.Delete):
		if n := m.Selected(); n != nil {
			return m, func() tea.Msg { return DeleteFolderMsg{ID: n.ID} }
		}
	}
	return m, nil
}

func (m Model) View() string {
	if len(m.visible) == 0 {
		return "\n  No folders yet.\n  Press 'a' to add one."
	}

	// Scroll so the cursor stays on screen.
	start, end := 0, len(m.visible)
	if m.height > 0 && end > m.height {
		start = m.cursor - m.height/2
		if start < 0 {
			start = 0
		}
		if start+m.height > end {
			start = end - m.height
		}
		end = start + m.height
	}

	lines := make([]string, 0, end-start+len(m.tree.Warnings))
	for i := start; i < end; i++ {
		line := render.TreeLine(m.visible[i], false)
		if i == m.cursor {
			line = cursorStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	for _, w := range m.tree.Warnings {
		lines = append(lines, render.WarnStyle.Render("! folder "+w.FolderID+" skipped ("+string(w.Kind)+")"))
	}
	return strings.Join(lines, "\n")
}
