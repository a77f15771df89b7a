package prayer

// State is the host application's foreground state.
type State int

const (
	StateActive State = iota
	StateInactive
	StateBackground
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateInactive:
		return "inactive"
	case StateBackground:
		return "background"
	default:
		return "unknown"
	}
}

// Lifecycle tracks host state changes and decides when reminders need reconciling.
type Lifecycle struct {
	state   State
	mounted bool
}

// Transition records the new state. It reports true for the first delivery (initial mount)
// and whenever the host returns to the foreground from inactive or background.
func (l *Lifecycle) Transition(next State) bool {
	if !l.mounted {
		l.mounted = true
		l.state = next
		return true
	}
	resume := next == StateActive && l.state != StateActive
	l.state = next
	return resume
}

// State returns the last delivered state.
func (l *Lifecycle) State() State {
	return l.state
}
