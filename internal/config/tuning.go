package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/diegok/rallypong/internal/ai"
	"github.com/diegok/rallypong/internal/game"
	"github.com/diegok/rallypong/internal/match"
)

// Tuning is the YAML-editable set of gameplay constants
type Tuning struct {
	WinScore           int         `yaml:"win_score"`
	ServeDelayMs       int         `yaml:"serve_delay_ms"`
	SpeedLevelInterval float64     `yaml:"speed_level_interval_sec"`
	Physics            Physics     `yaml:"physics"`
	AI                 AIProfiles  `yaml:"ai"`
	Relax              RelaxConfig `yaml:"relaxation"`
}

// Physics mirrors game.Tuning
type Physics struct {
	BaseSpeed            float64 `yaml:"base_speed"`
	MaxSpeed             float64 `yaml:"max_speed"`
	SpinStrength         float64 `yaml:"spin_strength"`
	PaddleSpeedInfluence float64 `yaml:"paddle_speed_influence"`
	HitSpeedup           float64 `yaml:"hit_speedup"`
	KeyboardStep         float64 `yaml:"keyboard_step"`
	PointerBlend         float64 `yaml:"pointer_blend"`
	TouchBlend           float64 `yaml:"touch_blend"`
	CenterBand           float64 `yaml:"center_band"`
}

// AIProfile is one difficulty row
type AIProfile struct {
	DelayMs    int     `yaml:"delay_ms"`
	Speed      float64 `yaml:"speed"`
	Error      float64 `yaml:"error"`
	BallSpeed  float64 `yaml:"ball_speed"`
	RelaxAfter float64 `yaml:"relax_after_sec"`
}

type AIProfiles struct {
	Easy   AIProfile `yaml:"easy"`
	Normal AIProfile `yaml:"normal"`
	Hard   AIProfile `yaml:"hard"`
}

// RelaxConfig is the shared shape of the relaxation curve
type RelaxConfig struct {
	WindowSec float64 `yaml:"window_sec"`
	Delay     float64 `yaml:"delay"`
	Speed     float64 `yaml:"speed"`
	Error     float64 `yaml:"error"`
}

// DefaultTuning returns the built-in constants
func DefaultTuning() Tuning {
	g := game.DefaultTuning()
	s := ai.DefaultSettings()

	row := func(d ai.Difficulty) AIProfile {
		p, r := s.Profile(d), s.Relaxation(d)
		return AIProfile{
			DelayMs:    int(p.Delay / time.Millisecond),
			Speed:      p.Speed,
			Error:      p.Error,
			BallSpeed:  p.BallSpeed,
			RelaxAfter: r.Threshold.Seconds(),
		}
	}
	r := s.Relaxation(ai.Normal)

	return Tuning{
		WinScore:           match.DefaultWinScore,
		ServeDelayMs:       int(match.DefaultServeDelay / time.Millisecond),
		SpeedLevelInterval: match.DefaultSpeedLevelInterval.Seconds(),
		Physics: Physics{
			BaseSpeed:            g.BaseSpeed,
			MaxSpeed:             g.MaxSpeed,
			SpinStrength:         g.SpinStrength,
			PaddleSpeedInfluence: g.PaddleSpeedInfluence,
			HitSpeedup:           g.HitSpeedup,
			KeyboardStep:         g.KeyboardStep,
			PointerBlend:         g.PointerBlend,
			TouchBlend:           g.TouchBlend,
			CenterBand:           g.CenterBand,
		},
		AI: AIProfiles{
			Easy:   row(ai.Easy),
			Normal: row(ai.Normal),
			Hard:   row(ai.Hard),
		},
		Relax: RelaxConfig{
			WindowSec: r.Window.Seconds(),
			Delay:     r.Delay,
			Speed:     r.Speed,
			Error:     r.Error,
		},
	}
}

// LoadTuning reads a YAML file over the defaults. Keys missing from the
// file keep their default values.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()

	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read tuning: %w", err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("parse tuning %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("tuning %s: %w", path, err)
	}
	return t, nil
}

// Validate rejects values the simulation cannot run with
func (t Tuning) Validate() error {
	if t.WinScore < 1 {
		return fmt.Errorf("win_score must be at least 1, got %d", t.WinScore)
	}
	if t.ServeDelayMs < 0 {
		return fmt.Errorf("serve_delay_ms must not be negative, got %d", t.ServeDelayMs)
	}
	if t.Physics.BaseSpeed <= 0 || t.Physics.MaxSpeed < t.Physics.BaseSpeed {
		return fmt.Errorf("need 0 < base_speed <= max_speed, got %g and %g", t.Physics.BaseSpeed, t.Physics.MaxSpeed)
	}
	for name, p := range map[string]AIProfile{"easy": t.AI.Easy, "normal": t.AI.Normal, "hard": t.AI.Hard} {
		if p.Speed <= 0 || p.BallSpeed <= 0 || p.Error < 0 || p.DelayMs < 0 {
			return fmt.Errorf("ai %s: speed and ball_speed must be positive, error and delay not negative", name)
		}
	}
	if t.Relax.WindowSec < 0 {
		return fmt.Errorf("relaxation window_sec must not be negative, got %g", t.Relax.WindowSec)
	}
	return nil
}

// Apply copies the tuning into session options
func (t Tuning) Apply(o *match.Options) {
	o.WinScore = t.WinScore
	o.ServeDelay = time.Duration(t.ServeDelayMs) * time.Millisecond
	o.SpeedLevelInterval = seconds(t.SpeedLevelInterval)
	o.Tuning = game.Tuning{
		BaseSpeed:            t.Physics.BaseSpeed,
		MaxSpeed:             t.Physics.MaxSpeed,
		SpinStrength:         t.Physics.SpinStrength,
		PaddleSpeedInfluence: t.Physics.PaddleSpeedInfluence,
		HitSpeedup:           t.Physics.HitSpeedup,
		KeyboardStep:         t.Physics.KeyboardStep,
		PointerBlend:         t.Physics.PointerBlend,
		TouchBlend:           t.Physics.TouchBlend,
		CenterBand:           t.Physics.CenterBand,
	}

	for d, p := range map[ai.Difficulty]AIProfile{ai.Easy: t.AI.Easy, ai.Normal: t.AI.Normal, ai.Hard: t.AI.Hard} {
		o.AI.Profiles[d] = ai.Profile{
			Delay:     time.Duration(p.DelayMs) * time.Millisecond,
			Speed:     p.Speed,
			Error:     p.Error,
			BallSpeed: p.BallSpeed,
		}
		o.AI.Relax[d] = ai.Relaxation{
			Threshold: seconds(p.RelaxAfter),
			Window:    seconds(t.Relax.WindowSec),
			Delay:     t.Relax.Delay,
			Speed:     t.Relax.Speed,
			Error:     t.Relax.Error,
		}
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
