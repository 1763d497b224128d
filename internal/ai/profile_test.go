package ai

import (
	"math"
	"testing"
	"time"
)

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in   string
		want Difficulty
	}{
		{"easy", Easy},
		{"Normal", Normal},
		{" HARD ", Hard},
		{"", Normal},
		{"nightmare", Normal},
	}

	for _, tt := range tests {
		if got := ParseDifficulty(tt.in); got != tt.want {
			t.Errorf("ParseDifficulty(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, ok := LookupDifficulty("nightmare"); ok {
		t.Error("expected lookup of an unknown name to fail")
	}
}

func TestSettings_UnknownDifficultyDefaults(t *testing.T) {
	s := DefaultSettings()
	if s.Profile(Difficulty(42)) != s.Profile(Normal) {
		t.Error("expected unknown difficulty to use the normal profile")
	}
	if Difficulty(-1).String() != "normal" {
		t.Errorf("expected normal, got %s", Difficulty(-1).String())
	}
}

func TestRelaxation_Blend(t *testing.T) {
	r := DefaultSettings().Relaxation(Normal)

	tests := []struct {
		elapsed time.Duration
		want    float64
	}{
		{0, 0},
		{30 * time.Second, 0},
		{60 * time.Second, 0.5},
		{90 * time.Second, 1},
		{10 * time.Minute, 1},
	}

	for _, tt := range tests {
		if got := r.Blend(tt.elapsed); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Blend(%v) = %f, want %f", tt.elapsed, got, tt.want)
		}
	}
}

func TestRelaxation_Apply(t *testing.T) {
	s := DefaultSettings()
	base := s.Profile(Easy)
	r := s.Relaxation(Easy)

	if got := r.Apply(base, 5*time.Second); got != base {
		t.Errorf("expected untouched profile before threshold, got %+v", got)
	}

	half := r.Apply(base, r.Threshold+r.Window/2)
	if math.Abs(half.Speed-base.Speed*0.9) > 1e-12 {
		t.Errorf("expected speed %f halfway, got %f", base.Speed*0.9, half.Speed)
	}

	full := r.Apply(base, r.Threshold+r.Window)
	if full.Delay != time.Duration(float64(base.Delay)*r.Delay) {
		t.Errorf("expected delay %v at the relaxed extreme, got %v", time.Duration(float64(base.Delay)*r.Delay), full.Delay)
	}
	if math.Abs(full.Error-base.Error*r.Error) > 1e-12 {
		t.Errorf("expected error %f, got %f", base.Error*r.Error, full.Error)
	}
	if full.BallSpeed != base.BallSpeed {
		t.Errorf("relaxation must not touch ball speed, got %f", full.BallSpeed)
	}

	// Asymptote: nothing changes past the window
	if later := r.Apply(base, r.Threshold+3*r.Window); later != full {
		t.Errorf("expected relaxed extreme to hold, got %+v", later)
	}
}
