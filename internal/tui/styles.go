package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primaryColor = lipgloss.Color("#F97316") // Orange
	mutedColor   = lipgloss.Color("#6B7280") // Gray

	promptStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	placeholderStyle = lipgloss.NewStyle().
				Foreground(mutedColor)

	echoStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	// Help bar below the prompt
	statusStyle = lipgloss.NewStyle().
			Foreground(mutedColor)
)
