package milestones

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/noor/internal/hijri"
	"github.com/julianstephens/noor/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			Width(20)

	countdownStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F2C94C")).
			Width(14)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	descStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("246")).
			PaddingLeft(3)
)

type Model struct {
	viewport   viewport.Model
	Milestones []models.Milestone
	Err        error
	loaded     bool
	width      int
	height     int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.loaded {
		return "Loading milestones…"
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetMilestones(list []models.Milestone, err error) {
	m.loaded = true
	m.Err = err
	if err == nil {
		m.Milestones = list
	}
	m.Render()
}

func (m *Model) Render() {
	var b strings.Builder
	if m.Err != nil {
		fmt.Fprintf(&b, "Could not load milestones: %v\n\n", m.Err)
	}
	if len(m.Milestones) == 0 && m.Err == nil {
		b.WriteString("No milestones in the next twelve months.")
	}
	for _, ms := range m.Milestones {
		icon := "  "
		var desc string
		if e, ok := hijri.EventInfo(ms.Slug); ok {
			icon, desc = e.Icon, e.Description
		}
		fmt.Fprintf(&b, "%s %s %s %s\n", icon,
			titleStyle.Render(ms.Title),
			countdownStyle.Render(hijri.Countdown(ms.InDays)),
			dateStyle.Render(ms.DateLabel),
		)
		if desc != "" && m.width > 0 {
			b.WriteString(descStyle.Width(m.width-4).Render(desc) + "\n")
		}
		b.WriteString("\n")
	}
	m.viewport.SetContent(b.String())
}
