package tui

import (
	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateStreak:
		content = m.streakModel.View()
	case StateFolders:
		content = m.foldersModel.View()
	case StateAddFolder, StateAddEntry:
		content = m.form.View()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		bodyStyle.Render(content),
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	active := m.state
	if active == StateAddFolder || active == StateAddEntry {
		active = m.previousState
	}
	var tabs []string
	for i, title := range []string{"Streak", "Folders"} {
		if SessionState(i) == active {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if m.status != "" {
		return statusStyle.Render(m.status)
	}
	return ""
}
