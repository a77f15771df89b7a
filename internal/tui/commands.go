package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/noor/internal/favorites"
	"github.com/julianstephens/noor/internal/habits"
	"github.com/julianstephens/noor/internal/logger"
	"github.com/julianstephens/noor/internal/models"
	"github.com/julianstephens/noor/internal/stats"
)

type verseMsg struct {
	ayah  int
	verse models.VerseData
	saved bool
	err   error
}

type favoriteMsg struct {
	ref   string
	saved bool
	err   error
}

type prayersMsg struct {
	status []models.AlarmStatus
	times  models.PrayerTimes
	err    error
}

type toggledMsg struct {
	prayer  string
	enabled bool
	err     error
}

type habitsMsg struct {
	date    string
	habits  []models.HabitWithToday
	summary stats.Summary
	err     error
}

type hijriMsg struct {
	info models.HijriInfo
	err  error
}

type milestonesMsg struct {
	list []models.Milestone
	err  error
}

type tickMsg time.Time

// minuteTick fires at the start of the next minute, when the verse of the minute changes.
func minuteTick(now time.Time) tea.Cmd {
	next := now.Truncate(time.Minute).Add(time.Minute)
	return tea.Tick(next.Sub(now), func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) loadVerse(ayah int) tea.Cmd {
	verses, store := m.deps.Verses, m.deps.Store
	return func() tea.Msg {
		v, err := verses.Verse(context.Background(), ayah)
		if err != nil {
			return verseMsg{ayah: ayah, err: err}
		}
		saved, err := favorites.New(store).Contains(v.Ref())
		return verseMsg{ayah: ayah, verse: v, saved: saved, err: err}
	}
}

func (m Model) toggleFavorite(v models.VerseData) tea.Cmd {
	store, now := m.deps.Store, m.now
	return func() tea.Msg {
		saved, err := favorites.New(store).Toggle(v, now)
		return favoriteMsg{ref: v.Ref(), saved: saved, err: err}
	}
}

// reconcile reschedules enabled reminders against fresh times and reports the resulting status.
func (m Model) reconcile() tea.Cmd {
	r := m.deps.Reconciler
	return func() tea.Msg {
		err := r.Reconcile(context.Background())
		if err != nil {
			logger.Warn("Failed to reconcile prayer reminders", "error", err)
		}
		status, serr := r.Status()
		if err == nil {
			err = serr
		}
		return prayersMsg{status: status, times: r.Times(), err: err}
	}
}

func (m Model) togglePrayer(key string) tea.Cmd {
	r := m.deps.Reconciler
	return func() tea.Msg {
		enabled, err := r.Toggle(context.Background(), key)
		return toggledMsg{prayer: key, enabled: enabled, err: err}
	}
}

func (m Model) prayerStatus() tea.Cmd {
	r := m.deps.Reconciler
	return func() tea.Msg {
		status, err := r.Status()
		return prayersMsg{status: status, times: r.Times(), err: err}
	}
}

func (m Model) loadHabits(date string) tea.Cmd {
	tracker := habits.New(m.deps.Store)
	return func() tea.Msg {
		return buildHabitsMsg(tracker, date)
	}
}

func (m Model) toggleHabit(id int64, date string) tea.Cmd {
	tracker := habits.New(m.deps.Store)
	return func() tea.Msg {
		if _, err := tracker.Toggle(id, date); err != nil {
			return habitsMsg{date: date, err: err}
		}
		return buildHabitsMsg(tracker, date)
	}
}

func buildHabitsMsg(tracker *habits.Tracker, date string) habitsMsg {
	list, err := tracker.Today(date)
	if err != nil {
		return habitsMsg{date: date, err: err}
	}
	summary, err := stats.Build(tracker, date)
	return habitsMsg{date: date, habits: list, summary: summary, err: err}
}

func (m Model) loadCalendar(now time.Time) tea.Cmd {
	cal := m.deps.Calendar
	return tea.Batch(
		func() tea.Msg {
			info, err := cal.Today(context.Background(), now)
			return hijriMsg{info: info, err: err}
		},
		func() tea.Msg {
			list, err := cal.UpcomingMilestones(context.Background(), now)
			return milestonesMsg{list: list, err: err}
		},
	)
}
