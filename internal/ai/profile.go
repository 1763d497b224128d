package ai

import (
	"strings"
	"time"
)

// Difficulty selects one row of the AI profile table
type Difficulty int

const (
	Easy Difficulty = iota
	Normal
	Hard
)

var difficultyNames = [...]string{Easy: "easy", Normal: "normal", Hard: "hard"}

func (d Difficulty) String() string {
	if d < Easy || d > Hard {
		return "normal"
	}
	return difficultyNames[d]
}

// Valid reports whether d is one of the known levels
func (d Difficulty) Valid() bool {
	return d >= Easy && d <= Hard
}

// LookupDifficulty parses a difficulty name
func LookupDifficulty(s string) (Difficulty, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, true
	case "normal":
		return Normal, true
	case "hard":
		return Hard, true
	}
	return Normal, false
}

// ParseDifficulty parses a difficulty name, falling back to Normal
func ParseDifficulty(s string) Difficulty {
	d, _ := LookupDifficulty(s)
	return d
}

// Profile is one AI skill setting
type Profile struct {
	Delay     time.Duration // reaction delay between aim samples
	Speed     float64       // tracking rate, scaled by StepScale per tick
	Error     float64       // max aim error, field fraction
	BallSpeed float64       // ball speed multiplier for this difficulty
}

// StepScale converts Profile.Speed into per-normalized-tick paddle travel
const StepScale = 0.18

// Relaxation softens a profile after some time in the match so long rallies
// stay playable.
type Relaxation struct {
	Threshold time.Duration // active play time before relaxing starts
	Window    time.Duration // blend duration toward the relaxed extreme
	Delay     float64       // relaxed multipliers
	Speed     float64
	Error     float64
}

// Blend returns how far along the curve the AI is, in [0, 1]
func (r Relaxation) Blend(elapsed time.Duration) float64 {
	if elapsed <= r.Threshold {
		return 0
	}
	if r.Window <= 0 {
		return 1
	}
	t := float64(elapsed-r.Threshold) / float64(r.Window)
	if t > 1 {
		return 1
	}
	return t
}

// Apply returns the profile softened for the given active play time
func (r Relaxation) Apply(p Profile, elapsed time.Duration) Profile {
	t := r.Blend(elapsed)
	if t == 0 {
		return p
	}
	lerp := func(mult float64) float64 { return 1 + (mult-1)*t }
	p.Delay = time.Duration(float64(p.Delay) * lerp(r.Delay))
	p.Speed *= lerp(r.Speed)
	p.Error *= lerp(r.Error)
	return p
}

// Settings is the full difficulty table
type Settings struct {
	Profiles [3]Profile
	Relax    [3]Relaxation
}

func DefaultSettings() Settings {
	relax := func(threshold time.Duration) Relaxation {
		return Relaxation{
			Threshold: threshold,
			Window:    60 * time.Second,
			Delay:     1.5,
			Speed:     0.8,
			Error:     1.5,
		}
	}
	return Settings{
		Profiles: [3]Profile{
			Easy:   {Delay: 170 * time.Millisecond, Speed: 0.25, Error: 0.17, BallSpeed: 0.57},
			Normal: {Delay: 120 * time.Millisecond, Speed: 0.33, Error: 0.12, BallSpeed: 0.6},
			Hard:   {Delay: 100 * time.Millisecond, Speed: 0.36, Error: 0.10, BallSpeed: 0.66},
		},
		Relax: [3]Relaxation{
			Easy:   relax(20 * time.Second),
			Normal: relax(30 * time.Second),
			Hard:   relax(40 * time.Second),
		},
	}
}

// Profile returns the base profile for d, defaulting unknown levels to Normal
func (s Settings) Profile(d Difficulty) Profile {
	if !d.Valid() {
		d = Normal
	}
	return s.Profiles[d]
}

// Relaxation returns the curve for d, defaulting unknown levels to Normal
func (s Settings) Relaxation(d Difficulty) Relaxation {
	if !d.Valid() {
		d = Normal
	}
	return s.Relax[d]
}

// PerfectProfile is the keep-the-ball-alive opponent used by endurance stages
func PerfectProfile(ballSpeed float64) Profile {
	return Profile{
		Delay:     30 * time.Millisecond,
		Speed:     0.6,
		Error:     0,
		BallSpeed: ballSpeed,
	}
}
