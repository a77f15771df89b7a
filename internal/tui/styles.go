package tui

import "github.com/charmbracelet/lipgloss"

var (
	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Bold(true)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	arabicStyle = lipgloss.NewStyle().Bold(true).Align(lipgloss.Right)

	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	nextStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F2C94C"))

	doneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))

	dangerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))

	barStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))
)
