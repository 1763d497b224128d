package match

import (
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/diegok/rallypong/internal/ai"
	"github.com/diegok/rallypong/internal/challenge"
	"github.com/diegok/rallypong/internal/clock"
	"github.com/diegok/rallypong/internal/game"
)

// Default timing and scoring
const (
	DefaultWinScore           = 10
	DefaultServeDelay         = 800 * time.Millisecond
	DefaultCountdownStep      = time.Second
	DefaultCountdownSteps     = 3
	DefaultGoHold             = 400 * time.Millisecond
	DefaultSpeedLevelInterval = 15 * time.Second
	MaxSpeedLevel             = 3
	TwoPlayerBallSpeed        = 0.75
	SpeedLevelBoost           = 0.1
)

// Options configures a Session. Zero values are replaced by defaults.
type Options struct {
	Clock  clock.Clock
	Rand   ai.Rand
	Logger *log.Logger

	Serve              ServePolicy
	WinScore           int
	ServeDelay         time.Duration
	CountdownStep      time.Duration
	CountdownSteps     int
	GoHold             time.Duration
	SpeedLevelInterval time.Duration

	Tuning    game.Tuning
	AI        ai.Settings
	Completed challenge.Set
}

// DefaultOptions returns options for the real-time game
func DefaultOptions() Options {
	return Options{
		Clock:              clock.System{},
		Rand:               rand.New(rand.NewSource(time.Now().UnixNano())),
		Logger:             log.New(io.Discard, "", 0),
		Serve:              ServeRandom,
		WinScore:           DefaultWinScore,
		ServeDelay:         DefaultServeDelay,
		CountdownStep:      DefaultCountdownStep,
		CountdownSteps:     DefaultCountdownSteps,
		GoHold:             DefaultGoHold,
		SpeedLevelInterval: DefaultSpeedLevelInterval,
		Tuning:             game.DefaultTuning(),
		AI:                 ai.DefaultSettings(),
		Completed:          challenge.NewSet(),
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Clock == nil {
		o.Clock = d.Clock
	}
	if o.Rand == nil {
		o.Rand = d.Rand
	}
	if o.Logger == nil {
		o.Logger = d.Logger
	}
	if o.WinScore < 1 {
		o.WinScore = d.WinScore
	}
	if o.ServeDelay <= 0 {
		o.ServeDelay = d.ServeDelay
	}
	if o.CountdownStep <= 0 {
		o.CountdownStep = d.CountdownStep
	}
	if o.CountdownSteps <= 0 {
		o.CountdownSteps = d.CountdownSteps
	}
	if o.GoHold <= 0 {
		o.GoHold = d.GoHold
	}
	if o.SpeedLevelInterval <= 0 {
		o.SpeedLevelInterval = d.SpeedLevelInterval
	}
	if o.Tuning == (game.Tuning{}) {
		o.Tuning = d.Tuning
	}
	if o.AI == (ai.Settings{}) {
		o.AI = d.AI
	}
	if o.Completed == nil {
		o.Completed = d.Completed
	}
	return o
}
