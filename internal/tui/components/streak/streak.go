// Package streak is the statistics pane of the terminal UI.
package streak

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/render"
	engine "github.com/Harshit-code-tech/personal-diary-sub001/internal/streak"
)

type Model struct {
	result      engine.Result
	atRisk      bool
	calendar    engine.Calendar
	consistency int
	window      int
	loaded      bool
	width       int
	height      int
}

func New(width, height int) Model {
	return Model{width: width, height: height}
}

// SetData replaces the statistics shown. window is the consistency window in months.
func (m *Model) SetData(result engine.Result, atRisk bool, cal engine.Calendar, consistency, window int) {
	m.result = result
	m.atRisk = atRisk
	m.calendar = cal
	m.consistency = consistency
	m.window = window
	m.loaded = true
}

func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
}

func (m Model) View() string {
	if !m.loaded {
		return "\n  Loading..."
	}
	summary := lipgloss.JoinVertical(lipgloss.Left,
		render.Streak(m.result, m.atRisk),
		render.MutedStyle.Render(fmt.Sprintf(" %d%% of days written in the last %d month(s)", m.consistency, m.window)),
	)
	return lipgloss.JoinVertical(lipgloss.Left, summary, "", render.Heatmap(m.calendar))
}
