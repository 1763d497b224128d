package game

import (
	"math"
	"testing"

	"github.com/diegok/rallypong/internal/protocol"
)

func TestPaddle_KeyMovement(t *testing.T) {
	tun := DefaultTuning()
	p := NewPaddle(protocol.SideLeft)

	p.Apply(Follow(protocol.KeyIntent(protocol.DirUp)), 1, tun)

	want := CenterY - tun.KeyboardStep
	if math.Abs(p.Y-want) > 1e-12 {
		t.Errorf("expected Y=%f, got %f", want, p.Y)
	}
	if math.Abs(p.VY+tun.KeyboardStep) > 1e-12 {
		t.Errorf("expected VY=%f, got %f", -tun.KeyboardStep, p.VY)
	}

	p.Apply(Follow(protocol.KeyIntent(protocol.DirDown)), 2, tun)
	want += 2 * tun.KeyboardStep
	if math.Abs(p.Y-want) > 1e-12 {
		t.Errorf("expected Y=%f, got %f", want, p.Y)
	}
	// velocity is per normalized tick
	if math.Abs(p.VY-tun.KeyboardStep) > 1e-12 {
		t.Errorf("expected VY=%f, got %f", tun.KeyboardStep, p.VY)
	}
}

func TestPaddle_PointerBlend(t *testing.T) {
	tun := DefaultTuning()

	p := NewPaddle(protocol.SideLeft)
	p.Apply(Follow(protocol.PointerIntent(0.7)), 1, tun)
	want := CenterY + 0.2*tun.PointerBlend
	if math.Abs(p.Y-want) > 1e-12 {
		t.Errorf("pointer: expected Y=%f, got %f", want, p.Y)
	}

	p = NewPaddle(protocol.SideRight)
	p.Apply(Follow(protocol.TouchIntent(0.7)), 1, tun)
	want = CenterY + 0.2*tun.TouchBlend
	if math.Abs(p.Y-want) > 1e-12 {
		t.Errorf("touch: expected Y=%f, got %f", want, p.Y)
	}
}

func TestPaddle_Bounds(t *testing.T) {
	tun := DefaultTuning()

	tests := []struct {
		name   string
		intent protocol.Intent
		want   float64
	}{
		{"pointer above field", protocol.PointerIntent(-5), PaddleMinY},
		{"pointer below field", protocol.PointerIntent(5), PaddleMaxY},
		{"keys up", protocol.KeyIntent(protocol.DirUp), PaddleMinY},
		{"keys down", protocol.KeyIntent(protocol.DirDown), PaddleMaxY},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPaddle(protocol.SideLeft)
			for i := 0; i < 200; i++ {
				p.Apply(Follow(tt.intent), 2.5, tun)
				if p.Y < PaddleMinY || p.Y > PaddleMaxY {
					t.Fatalf("paddle left bounds: %f", p.Y)
				}
			}
			if math.Abs(p.Y-tt.want) > 1e-9 {
				t.Errorf("expected Y=%f, got %f", tt.want, p.Y)
			}
		})
	}
}

func TestPaddle_Tracking(t *testing.T) {
	tun := DefaultTuning()

	t.Run("snaps when within one step", func(t *testing.T) {
		p := NewPaddle(protocol.SideRight)
		p.Apply(Track(0.53, 0.05), 1, tun)
		if p.Y != 0.53 {
			t.Errorf("expected Y=0.53, got %f", p.Y)
		}
	})

	t.Run("moves a fixed step otherwise", func(t *testing.T) {
		p := NewPaddle(protocol.SideRight)
		p.Apply(Track(0.2, 0.05), 1, tun)
		if math.Abs(p.Y-0.45) > 1e-12 {
			t.Errorf("expected Y=0.45, got %f", p.Y)
		}
		p.Apply(Track(0.9, 0.05), 1, tun)
		if math.Abs(p.Y-0.5) > 1e-12 {
			t.Errorf("expected Y=0.5, got %f", p.Y)
		}
	})

	t.Run("never reports velocity", func(t *testing.T) {
		p := NewPaddle(protocol.SideRight)
		p.Apply(Track(0.1, 0.05), 1, tun)
		if p.VY != 0 {
			t.Errorf("expected VY=0 for a tracked paddle, got %f", p.VY)
		}
	})
}

func TestPaddle_ZeroDtKeepsVelocityFinite(t *testing.T) {
	p := NewPaddle(protocol.SideLeft)
	p.Apply(Follow(protocol.PointerIntent(0.8)), 0, DefaultTuning())
	if math.IsNaN(p.VY) || math.IsInf(p.VY, 0) {
		t.Errorf("expected finite VY, got %f", p.VY)
	}
}

func TestPaddle_HitOffset(t *testing.T) {
	p := NewPaddle(protocol.SideLeft)

	tests := []struct {
		y    float64
		want float64
	}{
		{CenterY, 0},
		{p.TopY(), -0.5},
		{p.BottomY(), 0.5},
		{p.TopY() - 0.02, -0.5}, // within the radius padding, clamped
		{p.BottomY() + 0.02, 0.5},
	}

	for _, tt := range tests {
		got := p.HitOffset(tt.y)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("HitOffset(%f) = %f, want %f", tt.y, got, tt.want)
		}
	}
}
