package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gift-runner/internal/core"
)

// DefaultHoldWindow is how long a key counts as held after its last press or repeat.
const DefaultHoldWindow = 180 * time.Millisecond

// KeyMap defines the key bindings used while a game is on screen.
// This centralizes key bindings and makes them testable.
type KeyMap struct {
	Jump       key.Binding
	Left       key.Binding
	Right      key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Confirm    key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Jump: key.NewBinding(
			key.WithKeys(" ", "w", "up"),
			key.WithHelp("space/w", "jump"),
		),
		Left: key.NewBinding(
			key.WithKeys("a", "left"),
			key.WithHelp("a/←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("d", "right"),
			key.WithHelp("d/→", "right"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
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

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Jump, k.Left, k.Right, k.Pause, k.Restart, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Jump, k.Left, k.Right},
		{k.Pause, k.Restart, k.Confirm},
		{k.Screenshot, k.Quit},
	}
}

// Action translates a key message to a game action.
// Screenshot has no game action and maps to ActionNone.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Jump):
		return core.ActionJump
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	case key.Matches(msg, k.Confirm):
		return core.ActionConfirm
	}
	return core.ActionNone
}

// HeldKeys emulates key-held state on terminals, which only report presses.
// A held action stays active until the hold window passes without a repeat.
type HeldKeys struct {
	window time.Duration
	last   map[core.Action]time.Time
}

// NewHeldKeys creates a latch with the given hold window.
func NewHeldKeys(window time.Duration) *HeldKeys {
	if window <= 0 {
		window = DefaultHoldWindow
	}
	return &HeldKeys{
		window: window,
		last:   make(map[core.Action]time.Time, 3),
	}
}

// Press records a press of a held action. Left and right cancel each other,
// since a terminal only repeats the most recent key.
func (h *HeldKeys) Press(a core.Action, now time.Time) {
	if !a.IsHeld() {
		return
	}
	switch a {
	case core.ActionLeft:
		delete(h.last, core.ActionRight)
	case core.ActionRight:
		delete(h.last, core.ActionLeft)
	}
	h.last[a] = now
}

// Apply sets every action still inside its hold window on frame and forgets expired ones.
func (h *HeldKeys) Apply(frame *core.InputFrame, now time.Time) {
	for a, at := range h.last {
		if now.Sub(at) > h.window {
			delete(h.last, a)
			continue
		}
		frame.Set(a)
	}
}

// Reset releases every held action.
func (h *HeldKeys) Reset() {
	clear(h.last)
}
