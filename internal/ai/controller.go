package ai

import (
	"time"

	"github.com/diegok/rallypong/internal/game"
)

// Rand is the randomness the controller needs. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Controller drives the non-human paddle. It only re-aims when the ball is
// heading its way and the reaction delay has elapsed; in between it keeps
// moving toward its last target.
type Controller struct {
	rng     Rand
	base    Profile
	relax   Relaxation
	perfect bool

	reaction time.Duration
	TargetY  float64
	Samples  int
}

// NewController builds a controller for a difficulty row
func NewController(rng Rand, base Profile, relax Relaxation) *Controller {
	return &Controller{
		rng:     rng,
		base:    base,
		relax:   relax,
		TargetY: game.CenterY,
	}
}

// NewPerfectController builds a controller that ignores relaxation
func NewPerfectController(rng Rand, ballSpeed float64) *Controller {
	c := NewController(rng, PerfectProfile(ballSpeed), Relaxation{})
	c.perfect = true
	return c
}

// Perfect reports whether the never-miss override is active
func (c *Controller) Perfect() bool {
	return c.perfect
}

// Profile returns the effective settings after elapsed active play
func (c *Controller) Profile(elapsed time.Duration) Profile {
	if c.perfect {
		return c.base
	}
	return c.relax.Apply(c.base, elapsed)
}

// ReactionTimer returns time accumulated toward the next aim sample
func (c *Controller) ReactionTimer() time.Duration {
	return c.reaction
}

// ResetReaction clears the reaction timer, used on every serve
func (c *Controller) ResetReaction() {
	c.reaction = 0
}

// Reset returns the controller to its match-start state
func (c *Controller) Reset() {
	c.reaction = 0
	c.TargetY = game.CenterY
	c.Samples = 0
}

// Update advances the reaction model by dt and returns the paddle motion
// for this tick.
func (c *Controller) Update(dt time.Duration, dtNorm float64, ball *game.Ball, elapsed time.Duration) game.Motion {
	p := c.Profile(elapsed)

	if ball.VX > 0 {
		c.reaction += dt
		if c.reaction >= p.Delay {
			c.TargetY = ball.Y + (c.rng.Float64()-0.5)*2*p.Error
			c.reaction = 0
			c.Samples++
		}
	} else {
		c.reaction = 0
	}

	return game.Track(c.TargetY, p.Speed*dtNorm*StepScale)
}
