package match

import "strings"

// Phase is the state of a match session
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseCountdown
	PhaseActive
	PhaseServeDelay
	PhasePaused
	PhaseAwaitingContinue
	PhaseEnded
)

var phaseNames = [...]string{
	PhaseIdle:             "idle",
	PhaseCountdown:        "countdown",
	PhaseActive:           "active",
	PhaseServeDelay:       "serve-delay",
	PhasePaused:           "paused",
	PhaseAwaitingContinue: "awaiting-continue",
	PhaseEnded:            "ended",
}

func (p Phase) String() string {
	if p >= 0 && int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// Mode selects who plays and how a match ends
type Mode int

const (
	ModeVsAI Mode = iota
	ModeTwoPlayer
	ModeEndless
	ModeChallenge
)

func (m Mode) String() string {
	switch m {
	case ModeTwoPlayer:
		return "two-player"
	case ModeEndless:
		return "endless"
	case ModeChallenge:
		return "challenge"
	}
	return "vs-ai"
}

// SinglePlayer reports whether the right paddle is driven by the AI
func (m Mode) SinglePlayer() bool {
	return m != ModeTwoPlayer
}

// LookupMode resolves a selectable mode name. Challenge mode is entered
// through StartChallenge, not by name.
func LookupMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vs-ai", "vsai", "ai", "1p":
		return ModeVsAI, true
	case "two-player", "2p", "pvp":
		return ModeTwoPlayer, true
	case "endless":
		return ModeEndless, true
	}
	return ModeVsAI, false
}

// ParseMode is LookupMode with the vs-AI fallback
func ParseMode(s string) Mode {
	m, _ := LookupMode(s)
	return m
}

// ServePolicy decides the direction of each serve
type ServePolicy int

const (
	ServeRandom    ServePolicy = iota // coin flip from the session Rand
	ServeAlternate                    // flips every serve, first one toward the right
	ServeLeft                         // always toward the left paddle
	ServeRight                        // always toward the right paddle
)
