package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/cli"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	p := tea.NewProgram(tui.NewModel(ctx.Context(), svc), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}
