package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/skyhop/internal/core"
)

// KeyMap defines the key bindings for menus and play.
type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Attack     key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Back       key.Binding
	Quit       key.Binding
	Screenshot key.Binding

	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Scores key.Binding
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "steer left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "steer right"),
		),
		Attack: key.NewBinding(
			key.WithKeys(" ", "x", "j"),
			key.WithHelp("space/x", "attack"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "high scores"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Scores, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Attack},
		{k.Pause, k.Restart, k.Back},
		{k.Screenshot, k.Quit},
	}
}

// axisHoldDivisor sets how long a steering key holds the axis: a quarter
// second, longer than the usual terminal key repeat interval.
const axisHoldDivisor = 4

// InputMapper turns key presses into per-tick input frames. Terminals send
// no key release, so a steering key holds the axis for a few ticks and key
// repeat refreshes it.
type InputMapper struct {
	keys      KeyMap
	frame     core.InputFrame
	axis      float64
	hold      int
	holdTicks int
}

// NewInputMapper creates a mapper for the given tick rate.
func NewInputMapper(keys KeyMap, tickRate int) *InputMapper {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &InputMapper{
		keys:      keys,
		frame:     core.NewInputFrame(),
		holdTicks: max(tickRate/axisHoldDivisor, 1),
	}
}

// Key records a key press. It returns the action it mapped to, or
// ActionNone.
func (m *InputMapper) Key(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return core.ActionQuit
	case key.Matches(msg, m.keys.Left):
		m.steer(-1)
		return core.ActionNone
	case key.Matches(msg, m.keys.Right):
		m.steer(1)
		return core.ActionNone
	}

	action := core.ActionNone
	switch {
	case key.Matches(msg, m.keys.Attack):
		action = core.ActionAttack
	case key.Matches(msg, m.keys.Pause):
		action = core.ActionPause
	case key.Matches(msg, m.keys.Restart):
		action = core.ActionRestart
	case key.Matches(msg, m.keys.Back):
		action = core.ActionBack
	}
	if action != core.ActionNone {
		m.frame.Set(action)
	}
	return action
}

func (m *InputMapper) steer(dir float64) {
	m.axis = dir
	m.hold = m.holdTicks
}

// Next returns the frame for the coming tick and starts a fresh one.
func (m *InputMapper) Next() core.InputFrame {
	if m.hold > 0 {
		m.hold--
		m.frame.SetAxis(m.axis)
	} else {
		m.axis = 0
	}

	out := m.frame.Clone()
	m.frame.Clear()
	return out
}

// Reset drops any held steering and pending actions.
func (m *InputMapper) Reset() {
	m.frame.Clear()
	m.axis = 0
	m.hold = 0
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(keys KeyMap, msg tea.KeyMsg) MenuAction {
	switch {
	case key.Matches(msg, keys.Quit):
		return MenuActionQuit
	case key.Matches(msg, keys.Up):
		return MenuActionUp
	case key.Matches(msg, keys.Down):
		return MenuActionDown
	case key.Matches(msg, keys.Select):
		return MenuActionSelect
	case key.Matches(msg, keys.Back):
		return MenuActionBack
	case key.Matches(msg, keys.Scores):
		return MenuActionScoreboard
	}
	return MenuActionNone
}
