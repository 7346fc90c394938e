package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gift-runner/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyMapAction(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeySpace}, core.ActionJump},
		{runeKey("w"), core.ActionJump},
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionJump},
		{runeKey("a"), core.ActionLeft},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{runeKey("d"), core.ActionRight},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{runeKey("p"), core.ActionPause},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause},
		{runeKey("r"), core.ActionRestart},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{runeKey("q"), core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{runeKey("x"), core.ActionNone},
		{tea.KeyMsg{Type: tea.KeyCtrlS}, core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.msg.String(), func(t *testing.T) {
			if got := keys.Action(tc.msg); got != tc.want {
				t.Errorf("Action(%q) = %s, expected %s", tc.msg.String(), got, tc.want)
			}
		})
	}
}

func TestHeldKeysWindow(t *testing.T) {
	h := NewHeldKeys(100 * time.Millisecond)
	t0 := time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC)

	h.Press(core.ActionRight, t0)

	frame := core.NewInputFrame()
	h.Apply(&frame, t0.Add(100*time.Millisecond))
	if !frame.Has(core.ActionRight) {
		t.Error("right should still be held at the end of the window")
	}

	// A repeat extends the hold
	h.Press(core.ActionRight, t0.Add(90*time.Millisecond))
	frame = core.NewInputFrame()
	h.Apply(&frame, t0.Add(150*time.Millisecond))
	if !frame.Has(core.ActionRight) {
		t.Error("repeat should extend the hold")
	}

	frame = core.NewInputFrame()
	h.Apply(&frame, t0.Add(300*time.Millisecond))
	if frame.Has(core.ActionRight) {
		t.Error("right should be released after the window passes")
	}
}

func TestHeldKeysOpposingDirections(t *testing.T) {
	h := NewHeldKeys(time.Second)
	t0 := time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC)

	h.Press(core.ActionLeft, t0)
	h.Press(core.ActionJump, t0)
	h.Press(core.ActionRight, t0)

	frame := core.NewInputFrame()
	h.Apply(&frame, t0)
	if frame.Has(core.ActionLeft) {
		t.Error("pressing right should release left")
	}
	if !frame.Has(core.ActionRight) || !frame.Has(core.ActionJump) {
		t.Errorf("expected right and jump held, got %v", frame.Actions)
	}
}

func TestHeldKeysIgnoresOneShots(t *testing.T) {
	h := NewHeldKeys(time.Second)
	t0 := time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC)

	h.Press(core.ActionPause, t0)
	h.Press(core.ActionRestart, t0)

	frame := core.NewInputFrame()
	h.Apply(&frame, t0)
	if len(frame.Actions) != 0 {
		t.Errorf("one-shot actions should not latch, got %v", frame.Actions)
	}

	h.Press(core.ActionJump, t0)
	h.Reset()
	h.Apply(&frame, t0)
	if frame.Has(core.ActionJump) {
		t.Error("Reset should release held actions")
	}
}
