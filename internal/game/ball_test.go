package game

import (
	"math"
	"testing"

	"github.com/diegok/rallypong/internal/protocol"
)

func TestBall_Move(t *testing.T) {
	ball := NewBall(0.5, 0.5)
	ball.VX = 0.01
	ball.VY = -0.005

	ball.Move(2)

	if math.Abs(ball.X-0.52) > 1e-12 {
		t.Errorf("expected X=0.52, got %f", ball.X)
	}
	if math.Abs(ball.Y-0.49) > 1e-12 {
		t.Errorf("expected Y=0.49, got %f", ball.Y)
	}
}

func TestBall_BounceWalls(t *testing.T) {
	t.Run("top", func(t *testing.T) {
		ball := NewBall(0.5, 0.01)
		ball.VX = 0.01
		ball.VY = -0.004

		if !ball.BounceWalls() {
			t.Fatal("expected a bounce off the top wall")
		}
		if ball.VX != 0.01 {
			t.Errorf("expected VX=0.01 (unchanged), got %f", ball.VX)
		}
		if ball.VY != 0.004 {
			t.Errorf("expected VY=0.004, got %f", ball.VY)
		}
		if ball.Y != BallRadiusY {
			t.Errorf("expected Y snapped to %f, got %f", BallRadiusY, ball.Y)
		}
	})

	t.Run("bottom", func(t *testing.T) {
		ball := NewBall(0.5, 0.99)
		ball.VX = -0.01
		ball.VY = 0.004

		if !ball.BounceWalls() {
			t.Fatal("expected a bounce off the bottom wall")
		}
		if ball.VX != -0.01 {
			t.Errorf("expected VX=-0.01 (unchanged), got %f", ball.VX)
		}
		if ball.VY != -0.004 {
			t.Errorf("expected VY=-0.004, got %f", ball.VY)
		}
		if ball.Y != 1-BallRadiusY {
			t.Errorf("expected Y snapped to %f, got %f", 1-BallRadiusY, ball.Y)
		}
	})

	t.Run("mid court", func(t *testing.T) {
		ball := NewBall(0.5, 0.5)
		ball.VY = 0.01
		if ball.BounceWalls() {
			t.Error("expected no bounce in mid court")
		}
	})
}

func TestBall_ClampSpeed(t *testing.T) {
	ball := NewBall(0.5, 0.5)
	ball.VX = 0.03
	ball.VY = 0.04

	if !ball.ClampSpeed(0.025) {
		t.Fatal("expected ball to be slowed down")
	}
	if math.Abs(ball.Speed()-0.025) > 1e-12 {
		t.Errorf("expected speed 0.025, got %f", ball.Speed())
	}
	// Direction is preserved
	if math.Abs(ball.VX/ball.VY-0.75) > 1e-9 {
		t.Errorf("expected VX/VY ratio 0.75, got %f", ball.VX/ball.VY)
	}

	if ball.ClampSpeed(1) {
		t.Error("expected no change when under the cap")
	}
}

func TestBall_Reset(t *testing.T) {
	ball := NewBall(0.1, 0.9)
	ball.VY = 0.3

	ball.Reset(1, 0.012)
	if ball.X != CenterX || ball.Y != CenterY {
		t.Errorf("expected ball centered, got (%f, %f)", ball.X, ball.Y)
	}
	if ball.VX != 0.012 || ball.VY != 0 {
		t.Errorf("expected velocity (0.012, 0), got (%f, %f)", ball.VX, ball.VY)
	}

	ball.Reset(-1, 0.012)
	if ball.VX != -0.012 {
		t.Errorf("expected VX=-0.012, got %f", ball.VX)
	}
}

func TestBall_Out(t *testing.T) {
	tests := []struct {
		name     string
		x        float64
		out      bool
		conceded protocol.Side
	}{
		{"inside", 0.5, false, protocol.SideLeft},
		{"touching left edge", 0, false, protocol.SideLeft},
		{"past left edge", -BallRadiusX - 0.001, true, protocol.SideLeft},
		{"past right edge", 1 + BallRadiusX + 0.001, true, protocol.SideRight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ball := NewBall(tt.x, 0.5)
			side, out := ball.Out()
			if out != tt.out {
				t.Fatalf("expected out=%v, got %v", tt.out, out)
			}
			if out && side != tt.conceded {
				t.Errorf("expected conceded side %v, got %v", tt.conceded, side)
			}
		})
	}
}
