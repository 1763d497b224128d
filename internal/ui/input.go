package ui

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/diegok/rallypong/internal/protocol"
)

// HoldTimeout is how long a movement key counts as held after its last
// press. Terminals report no key release, only autorepeat.
const HoldTimeout = 150 * time.Millisecond

// Action is a non-movement command
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionPause
	ActionConfirm  // start, replay or leave the end screen
	ActionContinue // accept a continue offer or revive
	ActionDecline
)

// KeyToAction maps a key event to a command
func KeyToAction(key tcell.Key, r rune) Action {
	switch key {
	case tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyEscape:
		return ActionPause
	case tcell.KeyEnter:
		return ActionConfirm
	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			return ActionQuit
		case 'p', 'P', ' ':
			return ActionPause
		case 'c', 'C', 'y', 'Y':
			return ActionContinue
		case 'n', 'N':
			return ActionDecline
		}
	}
	return ActionNone
}

// KeyToDirection converts a key event to a paddle and direction.
// With a single human player both W/S and the arrows drive the left
// paddle; in two-player the arrows belong to the right paddle.
func KeyToDirection(key tcell.Key, r rune, twoPlayer bool) (protocol.Side, protocol.Direction) {
	arrows := protocol.SideLeft
	if twoPlayer {
		arrows = protocol.SideRight
	}

	switch key {
	case tcell.KeyUp:
		return arrows, protocol.DirUp
	case tcell.KeyDown:
		return arrows, protocol.DirDown
	case tcell.KeyRune:
		switch r {
		case 'w', 'W':
			return protocol.SideLeft, protocol.DirUp
		case 's', 'S':
			return protocol.SideLeft, protocol.DirDown
		}
	}
	return protocol.SideLeft, protocol.DirNone
}

// HeldKeys turns key presses and mouse motion into per-tick Controls
type HeldKeys struct {
	TwoPlayer bool

	dir     [2]protocol.Direction
	at      [2]time.Time
	pointer float64
	mouse   bool
}

// NewHeldKeys creates an input tracker
func NewHeldKeys(twoPlayer bool) *HeldKeys {
	return &HeldKeys{TwoPlayer: twoPlayer}
}

// Press records a key event. Returns false if the key does not move a paddle.
func (h *HeldKeys) Press(key tcell.Key, r rune, now time.Time) bool {
	side, dir := KeyToDirection(key, r, h.TwoPlayer)
	if dir == protocol.DirNone {
		return false
	}
	h.dir[side] = dir
	h.at[side] = now
	if side == protocol.SideLeft {
		h.mouse = false
	}
	return true
}

// Pointer makes the left paddle follow a court-relative Y until the next key press
func (h *HeldKeys) Pointer(y float64) {
	h.pointer = y
	h.mouse = true
}

// Clear drops every held key and the pointer
func (h *HeldKeys) Clear() {
	*h = HeldKeys{TwoPlayer: h.TwoPlayer}
}

// Controls returns the intents for this tick
func (h *HeldKeys) Controls(now time.Time) protocol.Controls {
	var c protocol.Controls
	if h.mouse {
		c.Left = protocol.PointerIntent(h.pointer)
	} else {
		c.Left = h.intent(protocol.SideLeft, now)
	}
	if h.TwoPlayer {
		c.Right = h.intent(protocol.SideRight, now)
	}
	return c
}

func (h *HeldKeys) intent(side protocol.Side, now time.Time) protocol.Intent {
	if h.dir[side] == protocol.DirNone || now.Sub(h.at[side]) > HoldTimeout {
		return protocol.Intent{}
	}
	return protocol.KeyIntent(h.dir[side])
}
