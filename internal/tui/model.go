// Package tui is the interactive dashboard started by 'noor tui'.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/noor/internal/models"
	"github.com/julianstephens/noor/internal/prayer"
	"github.com/julianstephens/noor/internal/quran"
	"github.com/julianstephens/noor/internal/stats"
	"github.com/julianstephens/noor/internal/storage"
	"github.com/julianstephens/noor/internal/tui/components/habitlist"
	"github.com/julianstephens/noor/internal/tui/components/milestones"
	"github.com/julianstephens/noor/internal/utils"
)

type SessionState int

const (
	StateVerse SessionState = iota
	StatePrayers
	StateHabits
	StateStats
	StateCalendar
	StatePermission
)

const tabCount = int(StateCalendar) + 1

var tabTitles = [tabCount]string{"Verse", "Prayers", "Habits", "Stats", "Calendar"}

type VerseSource interface {
	Verse(ctx context.Context, globalAyah int) (models.VerseData, error)
}

type CalendarSource interface {
	Today(ctx context.Context, now time.Time) (models.HijriInfo, error)
	UpcomingMilestones(ctx context.Context, now time.Time) ([]models.Milestone, error)
}

// Permission reads and records the user's answer to the notification prompt.
type Permission interface {
	PermissionStatus(ctx context.Context) (string, error)
	SetPermission(status string) error
}

// Deps are the services the dashboard talks to. Now must return local wall-clock time.
type Deps struct {
	Store      storage.Provider
	Reconciler *prayer.Reconciler
	Permission Permission
	Verses     VerseSource
	Calendar   CalendarSource
	Now        func() time.Time
}

type verseState struct {
	data   *models.VerseData
	ayah   int
	saved  bool
	random bool
	err    error
}

type prayerState struct {
	status []models.AlarmStatus
	times  models.PrayerTimes
	cursor int
	err    error
	loaded bool
}

type Model struct {
	deps          Deps
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	spinner       spinner.Model
	lifecycle     *prayer.Lifecycle

	now        time.Time
	today      string
	verse      verseState
	prayers    prayerState
	habitList  habitlist.Model
	summary    *stats.Summary
	statsErr   error
	hijri      *models.HijriInfo
	hijriErr   error
	milestones milestones.Model

	form          *huh.Form
	allow         *bool
	pendingPrayer string

	// tick schedules the next clock refresh
	tick func(now time.Time) tea.Cmd

	status   string
	quitting bool
	width    int
	height   int
}

func NewModel(deps Deps) Model {
	now := deps.Now()
	return Model{
		deps:       deps,
		state:      StateVerse,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(mutedStyle)),
		lifecycle:  &prayer.Lifecycle{},
		now:        now,
		today:      utils.DateString(now),
		verse:      verseState{ayah: quran.GlobalAyahForTime(now)},
		habitList:  habitlist.New(nil, 0, 0),
		milestones: milestones.New(0, 0),
		tick:       minuteTick,
	}
}

// loading reports whether a screen is still waiting for its first result.
func (m Model) loading() bool {
	return (m.verse.data == nil && m.verse.err == nil) || !m.prayers.loaded
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateVerse:
		keys = append(keys, m.keys.Favorite, m.keys.Random)
	case StatePrayers, StateHabits:
		keys = append(keys, m.keys.Toggle)
	}
	return append(keys, m.keys.Refresh)
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Jump, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	switch m.state {
	case StateVerse:
		actions = []key.Binding{m.keys.Favorite, m.keys.Random}
	case StatePrayers, StateHabits:
		actions = []key.Binding{m.keys.Toggle}
	}
	return [][]key.Binding{global, navigation, actions}
}

// Init loads every screen. The first lifecycle event counts as coming to the foreground,
// so reminders are reconciled on start.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.loadVerse(m.verse.ayah),
		m.loadHabits(m.today),
		m.loadCalendar(m.now),
		m.tick(m.now),
		m.spinner.Tick,
	}
	if m.lifecycle.Transition(prayer.StateActive) {
		cmds = append(cmds, m.reconcile())
	}
	return tea.Batch(cmds...)
}
