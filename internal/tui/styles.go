package tui

import "github.com/charmbracelet/lipgloss"

var (
	subtle   = lipgloss.Color("#a6adc8")
	accent   = lipgloss.Color("#b4befe")
	sapphire = lipgloss.Color("#74c7ec")
	green    = lipgloss.Color("#a6e3a1")
	red      = lipgloss.Color("#f38ba8")
	peach    = lipgloss.Color("#fab387")

	appStyle      = lipgloss.NewStyle().Padding(1, 2)
	titleStyle    = lipgloss.NewStyle().Foreground(sapphire).Bold(true).MarginBottom(1)
	labelStyle    = lipgloss.NewStyle().Bold(true)
	hintStyle     = lipgloss.NewStyle().Foreground(subtle)
	timerStyle    = lipgloss.NewStyle().Foreground(red)
	questionStyle = lipgloss.NewStyle().MarginBottom(1)
	errorStyle    = lipgloss.NewStyle().Foreground(red)
	goodStyle     = lipgloss.NewStyle().Foreground(green)
	warnStyle     = lipgloss.NewStyle().Foreground(peach)

	choiceStyle = lipgloss.NewStyle().
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(subtle)
	selectedChoiceStyle = choiceStyle.BorderForeground(accent).Foreground(accent).Bold(true)
)
