package cli

import "github.com/charmbracelet/lipgloss"

// Styles shared by command output. lipgloss drops colors when stdout is not a terminal.
var (
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	DoneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	MutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	NextStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F2C94C"))
)

// Check renders a completion marker.
func Check(done bool) string {
	if done {
		return DoneStyle.Render("[x]")
	}
	return MutedStyle.Render("[ ]")
}
