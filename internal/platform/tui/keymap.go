package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/santa-racer/internal/core"
)

// Hold windows for emulated key-up. A first press must outlast the
// terminal's auto-repeat delay; later repeats arrive much faster.
const (
	DefaultHoldInitial = 550 * time.Millisecond
	DefaultHoldRepeat  = 150 * time.Millisecond
)

// KeyMap defines the key bindings of the game screen.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Drop       key.Binding
	StartEasy  key.Binding
	StartHard  key.Binding
	Confirm    key.Binding
	Back       key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Right, k.Drop, k.StartEasy, k.StartHard, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Drop},
		{k.StartEasy, k.StartHard, k.Confirm, k.Back},
		{k.Screenshot, k.Quit},
	}
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("up/w", "climb"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("down/s", "descend"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("left/a", "brake"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("right/d", "accelerate"),
		),
		Drop: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "drop gift"),
		),
		StartEasy: key.NewBinding(
			key.WithKeys("f5", "e"),
			key.WithHelp("e/F5", "easy"),
		),
		StartHard: key.NewBinding(
			key.WithKeys("f6", "h"),
			key.WithHelp("h/F6", "hard"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "play again"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "menu"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultKeyMap()}
}

// Keys returns the bindings, e.g. for a help view.
func (km *KeyMapper) Keys() KeyMap {
	return km.keys
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	k := km.keys
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, k.Up):
		return core.ActionUp, false
	case key.Matches(msg, k.Down):
		return core.ActionDown, false
	case key.Matches(msg, k.Left):
		return core.ActionLeft, false
	case key.Matches(msg, k.Right):
		return core.ActionRight, false
	case key.Matches(msg, k.Drop):
		return core.ActionDrop, false
	case key.Matches(msg, k.StartEasy):
		return core.ActionStartEasy, false
	case key.Matches(msg, k.StartHard):
		return core.ActionStartHard, false
	case key.Matches(msg, k.Confirm):
		return core.ActionConfirm, false
	case key.Matches(msg, k.Back):
		return core.ActionBack, false
	}
	return core.ActionNone, false
}

// Directional reports whether a is a held action rather than a one-shot press.
func Directional(a core.Action) bool {
	switch a {
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		return true
	}
	return false
}

var opposite = map[core.Action]core.Action{
	core.ActionUp:    core.ActionDown,
	core.ActionDown:  core.ActionUp,
	core.ActionLeft:  core.ActionRight,
	core.ActionRight: core.ActionLeft,
}

type press struct {
	last      time.Time
	repeating bool
}

// HoldTracker emulates key-up events, which terminals do not report.
// An action counts as held until no press has arrived within its window
// or the opposite direction is pressed.
type HoldTracker struct {
	initial time.Duration
	repeat  time.Duration
	pressed map[core.Action]press
}

// NewHoldTracker creates a tracker. Non-positive windows take the defaults.
func NewHoldTracker(initial, repeat time.Duration) *HoldTracker {
	if initial <= 0 {
		initial = DefaultHoldInitial
	}
	if repeat <= 0 {
		repeat = DefaultHoldRepeat
	}
	return &HoldTracker{
		initial: initial,
		repeat:  repeat,
		pressed: make(map[core.Action]press),
	}
}

func (h *HoldTracker) window(p press) time.Duration {
	if p.repeating {
		return h.repeat
	}
	return h.initial
}

// Press records a key press at now.
func (h *HoldTracker) Press(a core.Action, now time.Time) {
	p, ok := h.pressed[a]
	repeating := ok && now.Sub(p.last) <= h.window(p)
	h.pressed[a] = press{last: now, repeating: repeating}
	delete(h.pressed, opposite[a])
}

// Apply sets every still-held action on frame and forgets expired ones.
func (h *HoldTracker) Apply(frame *core.InputFrame, now time.Time) {
	for a, p := range h.pressed {
		if now.Sub(p.last) > h.window(p) {
			delete(h.pressed, a)
			continue
		}
		frame.Set(a)
	}
}

// Release forgets all held actions.
func (h *HoldTracker) Release() {
	clear(h.pressed)
}
