// Package tui is the interactive terminal view over streaks and folders.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/insights"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/tui/components/folders"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/tui/components/streak"
)

type SessionState int

const (
	StateStreak SessionState = iota
	StateFolders
	StateAddFolder
	StateAddEntry
)

// tabCount is the number of tabs reachable with tab/shift+tab.
const tabCount = 2

type FolderFormModel struct {
	ParentID string
	Name     string
	Icon     string
	Color    string
}

type EntryFormModel struct {
	Title   string
	Content string
	Mood    int
}

type Model struct {
	ctx           context.Context
	svc           *insights.Service
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	streakModel   streak.Model
	foldersModel  folders.Model
	form          *huh.Form
	folderForm    *FolderFormModel
	entryForm     *EntryFormModel
	status        string
	err           error
	quitting      bool
	width         int
	height        int
}

func NewModel(ctx context.Context, svc *insights.Service) Model {
	m := Model{
		ctx:          ctx,
		svc:          svc,
		state:        StateStreak,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		streakModel:  streak.New(0, 0),
		foldersModel: folders.New(0, 0),
	}
	m.reload()
	return m
}

// reload recomputes both tabs from the service. Failures are kept for the
// status line rather than aborting the program.
func (m *Model) reload() {
	m.err = nil

	atRisk, result, err := m.svc.AtRisk(m.ctx)
	if err != nil {
		m.err = err
		return
	}
	cal, err := m.svc.Calendar(m.ctx, time.Time{}, time.Time{}) // zero bounds use the configured range
	if err != nil {
		m.err = err
		return
	}
	window := m.svc.Settings().ConsistencyWindowMonths
	rate, err := m.svc.Consistency(m.ctx, window)
	if err != nil {
		m.err = err
		return
	}
	m.streakModel.SetData(result, atRisk, cal, rate, window)

	tree, err := m.svc.FolderTree(m.ctx)
	if err != nil {
		m.err = err
		return
	}
	m.foldersModel.SetTree(tree)
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help, m.keys.Write}
	if m.state == StateFolders {
		fk := m.foldersModel.Keys()
		keys = append(keys, fk.Toggle, fk.Add, fk.Pin)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Refresh, m.keys.Write}
	if m.state != StateFolders {
		return [][]key.Binding{global}
	}
	fk := m.foldersModel.Keys()
	return [][]key.Binding{
		global,
		{fk.Up, fk.Down, fk.Toggle},
		{fk.Add, fk.AddChild, fk.Pin, fk.Delete},
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// State reports which tab or form is showing.
func (m Model) State() SessionState {
	return m.state
}
