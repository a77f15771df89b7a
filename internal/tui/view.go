package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/noor/internal/hijri"
	"github.com/julianstephens/noor/internal/prayer"
)

const statsBarWidth = 20

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateVerse:
		content = m.viewVerse()
	case StatePrayers:
		content = m.viewPrayers()
	case StateHabits:
		content = docStyle.Render(m.habitList.View())
	case StateStats:
		content = m.viewStats()
	case StateCalendar:
		content = m.viewCalendar()
	case StatePermission:
		content = m.viewPermission()
	}

	parts := []string{m.viewTabs(), content}
	if m.status != "" {
		parts = append(parts, mutedStyle.Render("  "+m.status))
	}
	parts = append(parts, m.help.View(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	active := m.state
	if active == StatePermission {
		active = m.previousState
	}
	var tabs []string
	for i, title := range tabTitles {
		if active == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) textWidth() int {
	if m.width <= 8 {
		return 72
	}
	return min(m.width-8, 96)
}

func (m Model) viewVerse() string {
	switch {
	case m.verse.data == nil && m.verse.err != nil:
		return docStyle.Render(dangerStyle.Render(fmt.Sprintf("Could not load verse: %v", m.verse.err)))
	case m.verse.data == nil:
		return docStyle.Render(m.spinner.View() + " Loading verse…")
	}

	v := m.verse.data
	w := m.textWidth()
	ref := fmt.Sprintf("%s %s", v.SurahEnglish, v.Ref())
	if m.verse.saved {
		ref += " ★"
	}
	label := "verse of the minute"
	if m.verse.random {
		label = "random verse, space returns to the verse of the minute"
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		arabicStyle.Width(w).Render(v.ArabicAyah),
		"",
		lipgloss.NewStyle().Width(w).Render(v.EnglishAyah),
		"",
		nextStyle.Render(ref),
		mutedStyle.Render(label),
	))
}

func (m Model) viewPrayers() string {
	if !m.prayers.loaded {
		return docStyle.Render(m.spinner.View() + " Loading prayer times…")
	}

	var b strings.Builder
	if m.prayers.err != nil {
		b.WriteString(dangerStyle.Render(fmt.Sprintf("Prayer times may be out of date: %v", m.prayers.err)) + "\n\n")
	}
	for i, st := range m.prayers.status {
		cursor := "  "
		if i == m.prayers.cursor {
			cursor = "› "
		}
		reminder := mutedStyle.Render("off")
		if st.Enabled {
			reminder = doneStyle.Render("on ")
		}
		at := st.Time
		if at == "" {
			at = "--:--"
		}
		line := fmt.Sprintf("%s%-8s %-5s  %s", cursor, st.Prayer, at, reminder)
		if st.IsNext {
			line = nextStyle.Render(line + "  ← next")
		}
		b.WriteString(line + "\n")
	}

	if key, at, err := prayer.NextPrayer(m.prayers.times, m.now); err == nil {
		d := at.Sub(m.now).Round(time.Minute)
		fmt.Fprintf(&b, "\n%s in %dh %02dm", key, int(d.Hours()), int(d.Minutes())%60)
	}
	return docStyle.Render(b.String())
}

func (m Model) viewStats() string {
	if m.summary == nil {
		if m.statsErr != nil {
			return docStyle.Render(dangerStyle.Render(fmt.Sprintf("Could not load stats: %v", m.statsErr)))
		}
		return docStyle.Render("Loading stats…")
	}

	s := m.summary
	done, total := m.habitList.Done()
	var b strings.Builder
	fmt.Fprintf(&b, "Today: %d/%d habits    This month: %d completions\n\n", done, total, s.Month)

	peak := 0
	for _, d := range s.Days {
		peak = max(peak, d.Count)
	}
	for _, d := range s.Days {
		bar := ""
		if peak > 0 && d.Count > 0 {
			bar = barStyle.Render(strings.Repeat("█", max(1, d.Count*statsBarWidth/peak)))
		}
		fmt.Fprintf(&b, "%s %3d %s\n", mutedStyle.Render(d.Date), d.Count, bar)
	}
	return docStyle.Render(b.String())
}

func (m Model) viewCalendar() string {
	var header string
	switch {
	case m.hijri != nil:
		header = fmt.Sprintf("%s %s  %s", hijri.MoonEmoji(hijri.MoonPhase(m.now)),
			nextStyle.Render(m.hijri.HijriLabel), mutedStyle.Render(m.hijri.GregorianLabel))
	case m.hijriErr != nil:
		header = dangerStyle.Render(fmt.Sprintf("Could not load the Hijri date: %v", m.hijriErr))
	default:
		header = "Loading…"
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, "", m.milestones.View()))
}

func (m Model) viewPermission() string {
	if m.form == nil {
		return ""
	}
	return lipgloss.Place(m.width, max(m.height-4, 0),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			fmt.Sprintf("Turning on the %s reminder needs notification permission.", m.pendingPrayer),
			"",
			m.form.View(),
			mutedStyle.Render("You can change this later with 'noor settings set --permission'."),
		),
	)
}
