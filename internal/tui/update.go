package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/noor/internal/constants"
	"github.com/julianstephens/noor/internal/prayer"
	"github.com/julianstephens/noor/internal/quran"
	"github.com/julianstephens/noor/internal/tui/components/habitlist"
	"github.com/julianstephens/noor/internal/utils"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.habitList.SetSize(msg.Width-4, msg.Height-6)
		m.milestones.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.FocusMsg:
		if !m.lifecycle.Transition(prayer.StateActive) {
			return m, nil
		}
		refresh := m.refreshClock(m.deps.Now())
		return m, tea.Batch(m.reconcile(), refresh)

	case tea.BlurMsg:
		m.lifecycle.Transition(prayer.StateInactive)
		return m, nil

	case tickMsg:
		now := m.deps.Now()
		refresh := m.refreshClock(now)
		return m, tea.Batch(refresh, m.tick(now))

	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case verseMsg:
		if msg.ayah != m.verse.ayah {
			return m, nil
		}
		m.verse.err = msg.err
		if msg.err == nil {
			v := msg.verse
			m.verse.data = &v
			m.verse.saved = msg.saved
		}
		return m, nil

	case favoriteMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Could not update favorites: %v", msg.err)
		} else if m.verse.data != nil && m.verse.data.Ref() == msg.ref {
			m.verse.saved = msg.saved
		}
		return m, nil

	case prayersMsg:
		m.prayers.loaded = true
		m.prayers.err = msg.err
		if msg.status != nil {
			m.prayers.status = msg.status
		}
		if msg.times != nil {
			m.prayers.times = msg.times
		}
		return m, nil

	case toggledMsg:
		return m.handleToggled(msg)

	case habitsMsg:
		if msg.date != m.today {
			return m, nil
		}
		m.statsErr = msg.err
		if msg.err == nil {
			m.habitList.SetHabits(msg.habits)
			s := msg.summary
			m.summary = &s
		}
		return m, nil

	case habitlist.ToggleHabitMsg:
		return m, m.toggleHabit(msg.ID, m.today)

	case hijriMsg:
		m.hijriErr = msg.err
		if msg.err == nil {
			info := msg.info
			m.hijri = &info
		}
		return m, nil

	case milestonesMsg:
		m.milestones.SetMilestones(msg.list, msg.err)
		return m, nil
	}

	if m.state == StatePermission {
		return m.updatePermission(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = SessionState((int(m.state) + 1) % tabCount)
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = SessionState((int(m.state) - 1 + tabCount) % tabCount)
			return m, nil
		case key.Matches(msg, m.keys.Jump):
			if target, ok := jumpTarget(msg.String()); ok {
				m.state = target
			}
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.status = ""
			return m, tea.Batch(m.reconcile(), m.loadVerse(m.verse.ayah), m.loadHabits(m.today), m.loadCalendar(m.now))
		}
	}

	switch m.state {
	case StateVerse:
		return m.updateVerse(msg)
	case StatePrayers:
		return m.updatePrayers(msg)
	case StateHabits:
		var cmd tea.Cmd
		m.habitList, cmd = m.habitList.Update(msg)
		return m, cmd
	case StateCalendar:
		var cmd tea.Cmd
		m.milestones, cmd = m.milestones.Update(msg)
		return m, cmd
	}
	return m, nil
}

// refreshClock advances the dashboard to now: a new minute brings a new verse and a new day
// reloads the day-scoped screens.
func (m *Model) refreshClock(now time.Time) tea.Cmd {
	prev := m.now
	m.now = now
	var cmds []tea.Cmd

	if !m.verse.random && quran.GlobalAyahForTime(now) != quran.GlobalAyahForTime(prev) {
		m.verse.ayah = quran.GlobalAyahForTime(now)
		cmds = append(cmds, m.loadVerse(m.verse.ayah))
	}
	if today := utils.DateString(now); today != m.today {
		m.today = today
		cmds = append(cmds, m.loadHabits(today), m.loadCalendar(now))
	}
	return tea.Batch(cmds...)
}

func (m Model) updateVerse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Favorite):
		if m.verse.data != nil {
			return m, m.toggleFavorite(*m.verse.data)
		}
	case key.Matches(keyMsg, m.keys.Random):
		m.verse.random = true
		m.verse.ayah = quran.RandomGlobalAyah()
		return m, m.loadVerse(m.verse.ayah)
	case key.Matches(keyMsg, m.keys.Toggle):
		// back to the verse of the minute
		m.verse.random = false
		m.verse.ayah = quran.GlobalAyahForTime(m.now)
		return m, m.loadVerse(m.verse.ayah)
	}
	return m, nil
}

func (m Model) updatePrayers(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.prayers.cursor > 0 {
			m.prayers.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.prayers.cursor < len(constants.DailyPrayers)-1 {
			m.prayers.cursor++
		}
	case key.Matches(keyMsg, m.keys.Toggle):
		m.status = ""
		return m, m.togglePrayer(constants.DailyPrayers[m.prayers.cursor])
	}
	return m, nil
}

func (m Model) handleToggled(msg toggledMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.err == nil:
		if msg.enabled {
			m.status = fmt.Sprintf("%s reminder on", msg.prayer)
		} else {
			m.status = fmt.Sprintf("%s reminder off", msg.prayer)
		}
		return m, m.prayerStatus()

	case errors.Is(msg.err, prayer.ErrPermissionDenied):
		status, err := m.deps.Permission.PermissionStatus(context.Background())
		if err != nil {
			m.status = fmt.Sprintf("Could not read notification permission: %v", err)
			return m, nil
		}
		if status == constants.PermissionUndetermined {
			cmd := m.askPermission(msg.prayer)
			return m, cmd
		}
		m.status = "Notifications are not allowed. Run 'noor settings set --permission granted' to allow them."
		return m, nil

	case errors.Is(msg.err, prayer.ErrTimesNotLoaded):
		m.status = "Prayer times are not loaded yet. Press R to retry."
		return m, nil
	}
	m.status = fmt.Sprintf("Could not update %s reminder: %v", msg.prayer, msg.err)
	return m, m.prayerStatus()
}

func (m *Model) askPermission(pending string) tea.Cmd {
	allow := true
	m.allow = &allow
	m.pendingPrayer = pending
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Allow noor to show prayer reminders?").
			Description("Reminders are delivered through noor-tray when `noor notify` runs.").
			Affirmative("Allow").
			Negative("Don't allow").
			Value(m.allow),
	)).WithShowHelp(false)
	m.previousState = m.state
	m.state = StatePermission
	return m.form.Init()
}

func (m Model) updatePermission(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.state = m.previousState
		m.form = nil
		pending := m.pendingPrayer
		m.pendingPrayer = ""
		if *m.allow {
			if err := m.deps.Permission.SetPermission(constants.PermissionGranted); err != nil {
				m.status = fmt.Sprintf("Could not save permission: %v", err)
				return m, nil
			}
			return m, m.togglePrayer(pending)
		}
		if err := m.deps.Permission.SetPermission(constants.PermissionDenied); err != nil {
			m.status = fmt.Sprintf("Could not save permission: %v", err)
			return m, nil
		}
		m.status = "Reminders stay off."
		return m, nil

	case huh.StateAborted:
		// Escaping leaves the question open for next time
		m.state = m.previousState
		m.form = nil
		m.pendingPrayer = ""
		return m, nil
	}
	return m, cmd
}
