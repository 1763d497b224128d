package game

import (
	"math"
	"time"

	"github.com/diegok/rallypong/internal/protocol"
)

// Timing for the fixed-model step
const (
	BaseTick = 16 * time.Millisecond // one normalized tick
	MaxTick  = 40 * time.Millisecond // larger frame gaps are clamped
)

// MaxBallTravel bounds the ball move between collision checks. It is
// well under the paddle hit window of 2*(PaddlePadX+BallRadiusX).
const MaxBallTravel = BallRadiusX

// Tuning holds the physics constants. Speeds are in field fractions per
// normalized tick.
type Tuning struct {
	BaseSpeed            float64 // serve speed before multipliers
	MaxSpeed             float64 // speed cap before multipliers
	SpinStrength         float64
	PaddleSpeedInfluence float64
	HitSpeedup           float64 // forward speed factor per paddle hit
	KeyboardStep         float64
	PointerBlend         float64
	TouchBlend           float64
	CenterBand           float64 // |offset| below this counts as a center hit
}

func DefaultTuning() Tuning {
	return Tuning{
		BaseSpeed:            0.012,
		MaxSpeed:             0.024,
		SpinStrength:         1.0,
		PaddleSpeedInfluence: 0.6,
		HitSpeedup:           1.08,
		KeyboardStep:         0.018,
		PointerBlend:         0.35,
		TouchBlend:           0.4,
		CenterBand:           0.2,
	}
}

// NormalizeDt converts an elapsed frame duration into normalized ticks
func NormalizeDt(dt time.Duration) float64 {
	if dt < 0 {
		dt = 0
	}
	if dt > MaxTick {
		dt = MaxTick
	}
	return float64(dt) / float64(BaseTick)
}

// SpinVelocity is the vertical velocity given to the ball by a paddle hit.
// It is a pure function of its inputs.
func SpinVelocity(offset, forwardSpeed, paddleVY float64, t Tuning) float64 {
	return offset*t.SpinStrength*forwardSpeed + paddleVY*t.PaddleSpeedInfluence
}

// Hit describes a ball/paddle contact
type Hit struct {
	Side   protocol.Side
	Offset float64
	Center bool
}

// StepInput is everything one tick of physics consumes
type StepInput struct {
	DtNorm   float64
	Left     Motion
	Right    Motion
	MaxSpeed float64 // cap for the current context (base cap * multiplier)
}

// StepResult lists what happened during the tick
type StepResult struct {
	Walls    int
	Hits     []Hit
	Point    bool
	Conceded protocol.Side
}

// World owns the ball and both paddles during a rally
type World struct {
	Ball   *Ball
	Left   *Paddle
	Right  *Paddle
	Tuning Tuning
}

func NewWorld(t Tuning) *World {
	return &World{
		Ball:   NewBall(CenterX, CenterY),
		Left:   NewPaddle(protocol.SideLeft),
		Right:  NewPaddle(protocol.SideRight),
		Tuning: t,
	}
}

// Paddle returns the paddle for a side
func (w *World) Paddle(side protocol.Side) *Paddle {
	if side == protocol.SideLeft {
		return w.Left
	}
	return w.Right
}

// Serve recenters everything and launches the ball
func (w *World) Serve(dir, speed float64) {
	w.Ball.Reset(dir, speed)
	w.Left.Reset()
	w.Right.Reset()
}

// Step runs one tick: paddles, then ball, then walls, then paddle
// collisions, then scoring. The ball part repeats in sub-steps of at
// most MaxBallTravel. The order matters because spin uses the
// paddle velocity computed in this same tick.
func (w *World) Step(in StepInput) StepResult {
	var res StepResult

	w.Left.Apply(in.Left, in.DtNorm, w.Tuning)
	w.Right.Apply(in.Right, in.DtNorm, w.Tuning)

	// Sub-step so no single move is long enough to jump a paddle
	steps := int(math.Ceil(w.Ball.Speed() * in.DtNorm / MaxBallTravel))
	if steps < 1 {
		steps = 1
	}
	sub := in.DtNorm / float64(steps)

	for i := 0; i < steps; i++ {
		w.Ball.Move(sub)

		if w.Ball.BounceWalls() {
			res.Walls++
		}

		if hit, ok := w.collide(w.Left, in.MaxSpeed); ok {
			res.Hits = append(res.Hits, hit)
		}
		if hit, ok := w.collide(w.Right, in.MaxSpeed); ok {
			res.Hits = append(res.Hits, hit)
		}
	}

	// Keep the invariant even if a multiplier dropped since the last hit
	w.Ball.ClampSpeed(in.MaxSpeed)

	if side, out := w.Ball.Out(); out {
		res.Point = true
		res.Conceded = side
	}

	return res
}

// collide bounces the ball off a paddle when it is moving toward it and
// overlaps the padded paddle box.
func (w *World) collide(p *Paddle, maxSpeed float64) (Hit, bool) {
	b := w.Ball
	left := p.Side == protocol.SideLeft

	if left && b.VX >= 0 || !left && b.VX <= 0 {
		return Hit{}, false
	}

	faceX := FaceX(left)
	if b.X-BallRadiusX > faceX+PaddlePadX || b.X+BallRadiusX < faceX-PaddlePadX {
		return Hit{}, false
	}
	if b.Y < p.TopY()-BallRadiusY || b.Y > p.BottomY()+BallRadiusY {
		return Hit{}, false
	}

	offset := p.HitOffset(b.Y)

	// Snap outside the face so the next tick cannot re-trigger
	if left {
		b.X = faceX + PaddlePadX + BallRadiusX
	} else {
		b.X = faceX - PaddlePadX - BallRadiusX
	}

	forward := math.Min(maxSpeed, b.Speed()*w.Tuning.HitSpeedup)
	if left {
		b.VX = forward
	} else {
		b.VX = -forward
	}
	b.VY = SpinVelocity(offset, forward, p.VY, w.Tuning)
	b.ClampSpeed(maxSpeed)

	return Hit{
		Side:   p.Side,
		Offset: offset,
		Center: math.Abs(offset) < w.Tuning.CenterBand,
	}, true
}
