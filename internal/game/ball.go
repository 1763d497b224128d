package game

import (
	"math"

	"github.com/diegok/rallypong/internal/protocol"
)

type Ball struct {
	X, Y   float64
	VX, VY float64
}

func NewBall(x, y float64) *Ball {
	return &Ball{X: x, Y: y}
}

// Move advances the ball by its velocity scaled to the normalized tick
func (b *Ball) Move(dtNorm float64) {
	b.X += b.VX * dtNorm
	b.Y += b.VY * dtNorm
}

// Speed returns current speed
func (b *Ball) Speed() float64 {
	return math.Hypot(b.VX, b.VY)
}

// ClampSpeed rescales the velocity vector so its magnitude does not exceed
// max. Returns true if the ball was slowed down.
func (b *Ball) ClampSpeed(max float64) bool {
	s := b.Speed()
	if s <= max || s == 0 {
		return false
	}
	b.VX = b.VX / s * max
	b.VY = b.VY / s * max
	return true
}

// Reset places ball at center and launches it horizontally.
// dir is +1 for toward the right paddle, -1 for toward the left one.
func (b *Ball) Reset(dir, speed float64) {
	b.X = CenterX
	b.Y = CenterY
	if dir < 0 {
		b.VX = -speed
	} else {
		b.VX = speed
	}
	b.VY = 0
}

// Stop freezes the ball at the center of the court
func (b *Ball) Stop() {
	b.X, b.Y = CenterX, CenterY
	b.VX, b.VY = 0, 0
}

// BounceWalls reflects the ball off the top and bottom edges.
// Horizontal speed is never touched.
func (b *Ball) BounceWalls() bool {
	bounced := false
	if b.Y-BallRadiusY <= 0 {
		b.Y = BallRadiusY
		b.VY = math.Abs(b.VY)
		bounced = true
	}
	if b.Y+BallRadiusY >= 1 {
		b.Y = 1 - BallRadiusY
		b.VY = -math.Abs(b.VY)
		bounced = true
	}
	return bounced
}

// Out reports which side conceded when the ball has fully left the court
func (b *Ball) Out() (conceded protocol.Side, out bool) {
	if b.X+BallRadiusX < 0 {
		return protocol.SideLeft, true
	}
	if b.X-BallRadiusX > 1 {
		return protocol.SideRight, true
	}
	return protocol.SideLeft, false
}

func (b *Ball) State() protocol.BallState {
	return protocol.BallState{X: b.X, Y: b.Y, VX: b.VX, VY: b.VY}
}
