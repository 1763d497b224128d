package challenge

import (
	"time"

	"github.com/diegok/rallypong/internal/ai"
)

// Outcome is the record a stage predicate is judged on. It is rebuilt from
// the Tracker every time a verdict is needed.
type Outcome struct {
	PlayerScore      int
	AIScore          int
	Won              bool
	MaxRallyCount    int
	SurvivalTimeSec  float64 // longest unbroken no-miss stretch
	MatchTimeSec     float64
	Difficulty       ai.Difficulty
	CenterHitCount   int
	BallSpeedLevel   int
	ComebackFrom0to2 bool
	PaddleHits       int
	SpeedFactor      float64
}

// Tracker accumulates the running statistics of a stage attempt
type Tracker struct {
	rally       int
	maxRally    int
	survival    time.Duration
	maxSurvival time.Duration
	matchTime   time.Duration
	centerHits  int
	paddleHits  int
}

// Reset clears everything for a fresh attempt
func (t *Tracker) Reset() {
	*t = Tracker{}
}

// Advance adds active play time
func (t *Tracker) Advance(dt time.Duration) {
	t.matchTime += dt
	t.survival += dt
	if t.survival > t.maxSurvival {
		t.maxSurvival = t.survival
	}
}

// PlayerHit records a contact by the human paddle
func (t *Tracker) PlayerHit(center bool) {
	t.paddleHits++
	t.rally++
	if t.rally > t.maxRally {
		t.maxRally = t.rally
	}
	if center {
		t.centerHits++
	}
}

// Point resets the running rally and survival counters; maxima survive
func (t *Tracker) Point() {
	t.rally = 0
	t.survival = 0
}

// RestartClock restarts the stage time window, used after a time-limit continue
func (t *Tracker) RestartClock() {
	t.matchTime = 0
}

func (t *Tracker) Rally() int { return t.rally }
func (t *Tracker) MaxRally() int { return t.maxRally }
func (t *Tracker) CenterHits() int { return t.centerHits }
func (t *Tracker) MatchTime() time.Duration { return t.matchTime }
func (t *Tracker) MaxSurvival() time.Duration { return t.maxSurvival }

// Outcome snapshots the tracker together with the score-side facts
func (t *Tracker) Outcome(playerScore, aiScore int, won bool, d ai.Difficulty, speedLevel int, s Stage) Outcome {
	return Outcome{
		PlayerScore:      playerScore,
		AIScore:          aiScore,
		Won:              won,
		MaxRallyCount:    t.maxRally,
		SurvivalTimeSec:  t.maxSurvival.Seconds(),
		MatchTimeSec:     t.matchTime.Seconds(),
		Difficulty:       d,
		CenterHitCount:   t.centerHits,
		BallSpeedLevel:   speedLevel,
		ComebackFrom0to2: won && s.Mods.OpponentHeadStart >= 2,
		PaddleHits:       t.paddleHits,
		SpeedFactor:      s.Mods.Speed(),
	}
}
