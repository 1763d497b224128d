package ui

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/diegok/rallypong/internal/protocol"
)

func TestKeyToDirection(t *testing.T) {
	tests := []struct {
		key       tcell.Key
		rune      rune
		twoPlayer bool
		side      protocol.Side
		want      protocol.Direction
	}{
		{tcell.KeyUp, 0, false, protocol.SideLeft, protocol.DirUp},
		{tcell.KeyDown, 0, false, protocol.SideLeft, protocol.DirDown},
		{tcell.KeyUp, 0, true, protocol.SideRight, protocol.DirUp},
		{tcell.KeyDown, 0, true, protocol.SideRight, protocol.DirDown},
		{tcell.KeyRune, 'w', false, protocol.SideLeft, protocol.DirUp},
		{tcell.KeyRune, 'W', true, protocol.SideLeft, protocol.DirUp},
		{tcell.KeyRune, 's', false, protocol.SideLeft, protocol.DirDown},
		{tcell.KeyRune, 'S', true, protocol.SideLeft, protocol.DirDown},
		{tcell.KeyRune, 'x', false, protocol.SideLeft, protocol.DirNone},
	}

	for _, tt := range tests {
		side, got := KeyToDirection(tt.key, tt.rune, tt.twoPlayer)
		if got != tt.want || (got != protocol.DirNone && side != tt.side) {
			t.Errorf("KeyToDirection(%v, %c, %v) = %v %v, want %v %v",
				tt.key, tt.rune, tt.twoPlayer, side, got, tt.side, tt.want)
		}
	}
}

func TestKeyToAction(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		rune rune
		want Action
	}{
		{tcell.KeyRune, 'q', ActionQuit},
		{tcell.KeyRune, 'Q', ActionQuit},
		{tcell.KeyCtrlC, 0, ActionQuit},
		{tcell.KeyEscape, 0, ActionPause},
		{tcell.KeyRune, 'p', ActionPause},
		{tcell.KeyEnter, 0, ActionConfirm},
		{tcell.KeyRune, 'c', ActionContinue},
		{tcell.KeyRune, 'n', ActionDecline},
		{tcell.KeyRune, 'x', ActionNone},
		{tcell.KeyUp, 0, ActionNone},
	}

	for _, tt := range tests {
		if got := KeyToAction(tt.key, tt.rune); got != tt.want {
			t.Errorf("KeyToAction(%v, %c) = %v, want %v", tt.key, tt.rune, got, tt.want)
		}
	}
}

func TestHeldKeys_Timeout(t *testing.T) {
	h := NewHeldKeys(false)
	now := time.Unix(0, 0)

	if !h.Press(tcell.KeyUp, 0, now) {
		t.Fatal("expected arrow to be a movement key")
	}
	if h.Press(tcell.KeyRune, 'q', now) {
		t.Error("q must not move a paddle")
	}

	c := h.Controls(now.Add(100 * time.Millisecond))
	if c.Left != protocol.KeyIntent(protocol.DirUp) {
		t.Errorf("expected held up, got %+v", c.Left)
	}
	if c.Right != (protocol.Intent{}) {
		t.Errorf("right paddle must stay idle in single player, got %+v", c.Right)
	}

	c = h.Controls(now.Add(HoldTimeout + time.Millisecond))
	if c.Left != (protocol.Intent{}) {
		t.Errorf("expected release after timeout, got %+v", c.Left)
	}
}

func TestHeldKeys_TwoPlayer(t *testing.T) {
	h := NewHeldKeys(true)
	now := time.Unix(0, 0)

	h.Press(tcell.KeyRune, 's', now)
	h.Press(tcell.KeyUp, 0, now)

	c := h.Controls(now)
	if c.Left.Direction != protocol.DirDown || c.Right.Direction != protocol.DirUp {
		t.Errorf("expected left down and right up, got %+v", c)
	}
}

func TestHeldKeys_Pointer(t *testing.T) {
	h := NewHeldKeys(false)
	now := time.Unix(0, 0)

	h.Pointer(0.3)
	if c := h.Controls(now); c.Left != protocol.PointerIntent(0.3) {
		t.Errorf("expected pointer intent, got %+v", c.Left)
	}

	h.Press(tcell.KeyRune, 'w', now)
	if c := h.Controls(now); c.Left.Source != protocol.SourceKeys {
		t.Errorf("key press must take over from the pointer, got %+v", c.Left)
	}

	h.Clear()
	if c := h.Controls(now); c.Left != (protocol.Intent{}) {
		t.Errorf("expected idle after clear, got %+v", c.Left)
	}
}
