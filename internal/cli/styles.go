package cli

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#10B981"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	overStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
)
