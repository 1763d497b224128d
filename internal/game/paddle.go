package game

import (
	"math"

	"github.com/diegok/rallypong/internal/protocol"
)

// Motion is what drives a paddle for one tick: either a player intent or an
// AI tracking target.
type Motion struct {
	Intent   protocol.Intent
	Tracking bool
	TargetY  float64
	Step     float64 // max travel per tick while tracking
}

// Follow wraps a player intent
func Follow(in protocol.Intent) Motion {
	return Motion{Intent: in}
}

// Track builds a capped-rate tracking motion
func Track(target, step float64) Motion {
	return Motion{Tracking: true, TargetY: target, Step: step}
}

type Paddle struct {
	Side  protocol.Side
	Y     float64
	PrevY float64
	VY    float64 // per normalized tick, used for spin transfer
}

func NewPaddle(side protocol.Side) *Paddle {
	return &Paddle{Side: side, Y: CenterY, PrevY: CenterY}
}

// Reset centers the paddle and clears its velocity
func (p *Paddle) Reset() {
	p.Y = CenterY
	p.PrevY = CenterY
	p.VY = 0
}

// Apply moves the paddle for one tick and derives its velocity
func (p *Paddle) Apply(m Motion, dtNorm float64, t Tuning) {
	p.PrevY = p.Y

	if m.Tracking {
		diff := m.TargetY - p.Y
		if math.Abs(diff) <= m.Step {
			p.Y += diff
		} else if diff > 0 {
			p.Y += m.Step
		} else {
			p.Y -= m.Step
		}
		p.Y = ClampPaddleY(p.Y)
		// Tracked paddles never impart motion spin
		p.VY = 0
		return
	}

	in := m.Intent
	switch in.Source {
	case protocol.SourcePointer:
		p.Y += (in.TargetY - p.Y) * t.PointerBlend
	case protocol.SourceTouch:
		p.Y += (in.TargetY - p.Y) * t.TouchBlend
	case protocol.SourceKeys:
		p.Y += in.Direction.Sign() * t.KeyboardStep * dtNorm
	}
	p.Y = ClampPaddleY(p.Y)

	if dtNorm > 0 {
		p.VY = (p.Y - p.PrevY) / dtNorm
	} else {
		p.VY = 0
	}
}

func (p *Paddle) TopY() float64 {
	return p.Y - PaddleHeight/2
}

func (p *Paddle) BottomY() float64 {
	return p.Y + PaddleHeight/2
}

// HitOffset maps a contact y to [-0.5, 0.5], top to bottom of the paddle
func (p *Paddle) HitOffset(y float64) float64 {
	off := (y-p.TopY())/PaddleHeight - 0.5
	if off < -0.5 {
		return -0.5
	}
	if off > 0.5 {
		return 0.5
	}
	return off
}

func (p *Paddle) State() protocol.PaddleState {
	return protocol.PaddleState{Side: p.Side, Y: p.Y, VY: p.VY}
}
