package folders

import "github.com/charmbracelet/lipgloss"

var cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
