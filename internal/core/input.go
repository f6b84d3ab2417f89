package core

// Action is a discrete input intent for one tick, independent of the key
// that produced it.
type Action int

const (
	ActionNone    Action = iota
	ActionAttack         // X, J - strike nearby enemies
	ActionConfirm        // Enter - confirm menu selection
	ActionBack           // B, Esc - back to menu
	ActionRestart        // R - restart after the run ended
	ActionQuit           // Q, Ctrl+C - leave the session
	ActionPause          // P - toggle pause
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionAttack:
		return "Attack"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame is the sampled input for a single simulation tick: a
// continuous horizontal axis plus the discrete actions triggered this tick.
type InputFrame struct {
	Axis    float64 // Horizontal intent in [-1, 1], negative is left
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has reports whether an action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// SetAxis stores the horizontal axis, clamped to [-1, 1].
func (f *InputFrame) SetAxis(v float64) {
	f.Axis = ClampF(v, -1, 1)
}

// Clear resets the actions and the axis for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Axis = 0
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	clone.Axis = f.Axis
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
