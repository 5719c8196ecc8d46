package cmd

import "github.com/charmbracelet/lipgloss"

// Styles used across the CLI commands
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00CED1")). // Cyan
			Bold(true).
			Padding(1, 0)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCCCCC")) // Light Gray

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#32CD32")). // Lime green
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6347")). // Tomato red
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")) // Dim gray

	amountStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")) // Gold
)
