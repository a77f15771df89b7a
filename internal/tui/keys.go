package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every dashboard binding. Which ones are offered in the help bar depends on
// the active tab; see Model.ShortHelp.
type KeyMap struct {
	// global
	Tab      key.Binding
	ShiftTab key.Binding
	Jump     key.Binding
	Quit     key.Binding
	Help     key.Binding
	Refresh  key.Binding

	// lists
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding

	// verse tab
	Favorite key.Binding
	Random   key.Binding
}

func binding(help, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab:      binding("tab", "next tab", "tab", "l"),
		ShiftTab: binding("shift+tab", "prev tab", "shift+tab", "h"),
		Jump:     binding("1-5", "go to tab", "1", "2", "3", "4", "5"),
		Quit:     binding("q", "quit", "q", "ctrl+c"),
		Help:     binding("?", "toggle help", "?"),
		Refresh:  binding("R", "refresh", "R"),

		Up:     binding("↑/k", "up", "up", "k"),
		Down:   binding("↓/j", "down", "down", "j"),
		Toggle: binding("space", "toggle", " ", "enter"),

		Favorite: binding("f", "save verse", "f"),
		Random:   binding("r", "random verse", "r"),
	}
}

// jumpTarget maps a Jump key press ("1".."5") to its tab.
func jumpTarget(pressed string) (SessionState, bool) {
	if len(pressed) != 1 || pressed[0] < '1' || int(pressed[0]-'1') >= tabCount {
		return 0, false
	}
	return SessionState(pressed[0] - '1'), true
}
