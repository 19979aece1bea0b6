package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/models"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/tui/components/folders"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = ws.Width
		m.height = ws.Height
		m.help.Width = ws.Width
		// Tabs, status and help take the remaining rows.
		m.foldersModel.SetSize(ws.Width, ws.Height-8)
		m.streakModel.SetSize(ws.Width, ws.Height-8)
		return m, nil
	}

	switch m.state {
	case StateAddFolder:
		return m.updateFolderForm(msg)
	case StateAddEntry:
		return m.updateEntryForm(msg)
	}

	if handled, cmd := m.handleFolderMessages(msg); handled {
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.svc.Invalidate(m.ctx)
			m.reload()
			m.status = "Refreshed"
			return m, nil
		case key.Matches(msg, m.keys.Write):
			m.entryForm = &EntryFormModel{}
			m.form = newEntryForm(m.entryForm)
			m.previousState = m.state
			m.state = StateAddEntry
			return m, m.form.Init()
		}
	}

	if m.state == StateFolders {
		var cmd tea.Cmd
		m.foldersModel, cmd = m.foldersModel.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleFolderMessages(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case folders.AddFolderMsg:
		m.folderForm = &FolderFormModel{ParentID: msg.ParentID}
		parentName := ""
		if n := m.foldersModel.Selected(); n != nil && n.ID == msg.ParentID {
			parentName = n.Name
		}
		m.form = newFolderForm(m.folderForm, parentName)
		m.previousState = m.state
		m.state = StateAddFolder
		return true, m.form.Init()

	case folders.ToggleFolderMsg:
		if _, err := m.svc.ToggleFolder(m.ctx, msg.ID); err != nil {
			m.err = err
			return true, nil
		}
		m.reload()
		return true, nil

	case folders.PinFolderMsg:
		if err := m.svc.SetPinned(m.ctx, msg.ID, msg.Pinned); err != nil {
			m.err = err
			return true, nil
		}
		m.reload()
		if msg.Pinned {
			m.status = "Folder pinned"
		} else {
			m.status = "Folder unpinned"
		}
		return true, nil

	case folders.DeleteFolderMsg:
		if err := m.svc.DeleteFolder(m.ctx, msg.ID); err != nil {
			m.err = err
			return true, nil
		}
		m.reload()
		m.status = "Folder moved to trash (restore with: diary folder restore " + msg.ID + ")"
		return true, nil
	}
	return false, nil
}

// updateForm feeds msg to the active form. Esc leaves without saving.
func (m *Model) updateForm(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.form.State = huh.StateAborted
		return nil
	}
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	return cmd
}

func (m Model) updateFolderForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.updateForm(msg)

	switch m.form.State {
	case huh.StateCompleted:
		f := models.Folder{
			Name:  m.folderForm.Name,
			Icon:  m.folderForm.Icon,
			Color: m.folderForm.Color,
		}
		if m.folderForm.ParentID != "" {
			parent := m.folderForm.ParentID
			f.ParentID = &parent
		}
		created, err := m.svc.AddFolder(m.ctx, f)
		if err != nil {
			m.err = err
			m.form.State = huh.StateNormal
			return m, cmd
		}
		// Show the new folder under its parent.
		if created.ParentID != nil {
			if expanded, ok := m.isExpanded(*created.ParentID); ok && !expanded {
				_, _ = m.svc.ToggleFolder(m.ctx, *created.ParentID)
			}
		}
		m.reload()
		m.status = fmt.Sprintf("Added folder %q", created.Name)
		m.state = m.previousState
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, cmd
}

// isExpanded reports the expanded state of id and whether it exists.
func (m Model) isExpanded(id string) (expanded, ok bool) {
	tree, err := m.svc.FolderTree(m.ctx)
	if err != nil {
		return false, false
	}
	n, found := tree.Find(id)
	if !found {
		return false, false
	}
	return n.IsExpanded, true
}

func (m Model) updateEntryForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.updateForm(msg)

	switch m.form.State {
	case huh.StateCompleted:
		e := models.Entry{
			Title:   m.entryForm.Title,
			Content: m.entryForm.Content,
			Mood:    m.entryForm.Mood,
		}
		if m.previousState == StateFolders {
			if id := m.foldersModel.SelectedID(); id != "" {
				e.FolderID = &id
			}
		}
		if _, err := m.svc.AddEntry(m.ctx, e); err != nil {
			m.err = err
			m.form.State = huh.StateNormal
			return m, cmd
		}
		m.reload()
		m.status = "Entry saved"
		m.state = m.previousState
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, cmd
}
