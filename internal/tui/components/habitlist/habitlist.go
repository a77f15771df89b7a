package habitlist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/noor/internal/models"
)

// ToggleHabitMsg asks the parent to flip today's completion for a habit.
type ToggleHabitMsg struct {
	ID int64
}

type Item struct {
	Habit models.HabitWithToday
}

func (i Item) Title() string {
	mark := "○ "
	if i.Habit.DoneToday {
		mark = "● "
	}
	if e := i.Habit.DisplayEmoji(); e != "" {
		return mark + e + " " + i.Habit.Name
	}
	return mark + i.Habit.Name
}

func (i Item) Description() string {
	if i.Habit.DoneToday {
		return "done today"
	}
	return "not yet"
}

func (i Item) FilterValue() string { return i.Habit.Name }

type KeyMap struct {
	Toggle key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter", "x"),
			key.WithHelp("space", "toggle"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(habits []models.HabitWithToday, width, height int) Model {
	l := list.New(toItems(habits), list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle}
	}
	return Model{list: l, keys: keys}
}

func toItems(habits []models.HabitWithToday) []list.Item {
	items := make([]list.Item, len(habits))
	for i, h := range habits {
		items[i] = Item{Habit: h}
	}
	return items
}

// SetHabits replaces the items and keeps the cursor where it was.
func (m *Model) SetHabits(habits []models.HabitWithToday) {
	idx := m.list.Index()
	m.list.SetItems(toItems(habits))
	if idx < len(habits) {
		m.list.Select(idx)
	}
}

// Done counts habits completed today.
func (m Model) Done() (done, total int) {
	for _, it := range m.list.Items() {
		if i, ok := it.(Item); ok && i.Habit.DoneToday {
			done++
		}
	}
	return done, len(m.list.Items())
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		if key.Matches(msg, m.keys.Toggle) {
			if i, ok := m.list.SelectedItem().(Item); ok {
				id := i.Habit.ID
				return m, func() tea.Msg { return ToggleHabitMsg{ID: id} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No habits yet.\n  Add one with 'noor habit add'."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
