package challenge

import (
	"time"

	"github.com/diegok/rallypong/internal/ai"
)

// Tier groups stages for unlocking
type Tier int

const (
	Beginner Tier = iota + 1
	Intermediate
	Advanced
)

func (t Tier) String() string {
	switch t {
	case Beginner:
		return "beginner"
	case Intermediate:
		return "intermediate"
	case Advanced:
		return "advanced"
	}
	return "unknown"
}

// Modifiers change the physics or the starting state of a stage
type Modifiers struct {
	SpeedFactor       float64       // ball speed multiplier, 0 means 1
	OpponentHeadStart int           // AI starting score
	TimeLimit         time.Duration // stage clock, 0 means none
}

// Speed returns the effective ball speed factor
func (m Modifiers) Speed() float64 {
	if m.SpeedFactor <= 0 {
		return 1
	}
	return m.SpeedFactor
}

// Stage is one static challenge definition
type Stage struct {
	ID          int
	Name        string
	Tier        Tier
	Difficulty  ai.Difficulty
	WinScore    int
	Description string
	Rule        Rule
	Mods        Modifiers
}

// PerfectOpponent reports whether the AI must never miss in this stage
func (s Stage) PerfectOpponent() bool {
	return s.Rule.Endurance()
}

var catalog = []Stage{
	{ID: 1, Name: "First Point", Tier: Beginner, Difficulty: ai.Easy, WinScore: 1,
		Description: "Score 1 point before the AI does.",
		Rule:        Rule{Kind: RuleScoreWin, Score: 1}},
	{ID: 2, Name: "Safe Win", Tier: Beginner, Difficulty: ai.Easy, WinScore: 3,
		Description: "Win without giving the AI any point. One goal for AI = instant fail.",
		Rule:        Rule{Kind: RuleShutoutWin, Score: 3}},
	{ID: 3, Name: "Rally 5", Tier: Beginner, Difficulty: ai.Easy, WinScore: 3,
		Description: "Hit the ball 5 times in a row without missing.",
		Rule:        Rule{Kind: RuleRally, Count: 5}},
	{ID: 4, Name: "Calm Start", Tier: Beginner, Difficulty: ai.Easy, WinScore: 5,
		Description: "Don't miss the ball for the first 20 seconds.",
		Rule:        Rule{Kind: RuleSurvival, Seconds: 20}},
	{ID: 5, Name: "Easy Break", Tier: Beginner, Difficulty: ai.Easy, WinScore: 5,
		Description: "Win one game against Easy AI.",
		Rule:        Rule{Kind: RuleDifficultyWin, Difficulty: ai.Easy}},
	{ID: 6, Name: "Quick Match", Tier: Beginner, Difficulty: ai.Easy, WinScore: 1,
		Description: "Score 1 point within 30 seconds.",
		Rule:        Rule{Kind: RuleTimedScore, Score: 1, Seconds: 30},
		Mods:        Modifiers{TimeLimit: 30 * time.Second}},
	{ID: 7, Name: "Rally 20", Tier: Intermediate, Difficulty: ai.Normal, WinScore: 5,
		Description: "Hit the ball 20 times in a row without missing.",
		Rule:        Rule{Kind: RuleRally, Count: 20}},
	{ID: 8, Name: "No Mercy", Tier: Intermediate, Difficulty: ai.Normal, WinScore: 3,
		Description: "Score 3 points without giving the AI a single point. One goal for AI = instant fail.",
		Rule:        Rule{Kind: RuleShutoutWin, Score: 3}},
	{ID: 9, Name: "Survivor 30", Tier: Intermediate, Difficulty: ai.Normal, WinScore: 5,
		Description: "Survive for 30 seconds without missing.",
		Rule:        Rule{Kind: RuleSurvival, Seconds: 30}},
	{ID: 10, Name: "Comeback", Tier: Intermediate, Difficulty: ai.Normal, WinScore: 3,
		Description: "Win from 0-2 deficit. Score 3 points.",
		Rule:        Rule{Kind: RuleScoreWin, Score: 3},
		Mods:        Modifiers{OpponentHeadStart: 2}},
	{ID: 11, Name: "Speed Up", Tier: Intermediate, Difficulty: ai.Normal, WinScore: 3,
		Description: "Score 3 points with ball at 1.3x speed.",
		Rule:        Rule{Kind: RuleScoreWin, Score: 3},
		Mods:        Modifiers{SpeedFactor: 1.3}},
	{ID: 12, Name: "Precision 10", Tier: Intermediate, Difficulty: ai.Normal, WinScore: 5,
		Description: "Hit the paddle center 10 times.",
		Rule:        Rule{Kind: RuleCenterHits, Count: 10}},
	{ID: 13, Name: "First to 10", Tier: Intermediate, Difficulty: ai.Normal, WinScore: 10,
		Description: "Win one game. First to 10 points.",
		Rule:        Rule{Kind: RuleScoreWin, Score: 10}},
	{ID: 14, Name: "Normal Crusher", Tier: Intermediate, Difficulty: ai.Normal, WinScore: 5,
		Description: "Win against Normal AI.",
		Rule:        Rule{Kind: RuleDifficultyWin, Difficulty: ai.Normal}},
	{ID: 15, Name: "Rally 20", Tier: Advanced, Difficulty: ai.Hard, WinScore: 5,
		Description: "Hit the ball 20 times in a row without missing.",
		Rule:        Rule{Kind: RuleRally, Count: 20}},
	{ID: 16, Name: "Survivor 50", Tier: Advanced, Difficulty: ai.Hard, WinScore: 5,
		Description: "Survive for 50 seconds without missing.",
		Rule:        Rule{Kind: RuleSurvival, Seconds: 50}},
	{ID: 17, Name: "Perfect Game", Tier: Advanced, Difficulty: ai.Hard, WinScore: 10,
		Description: "Score 10 points without giving the AI 3 or more.",
		Rule:        Rule{Kind: RuleBoundedLossWin, Score: 10, MaxConceded: 2}},
	{ID: 18, Name: "Speed Demon", Tier: Advanced, Difficulty: ai.Hard, WinScore: 3,
		Description: "Score 3 points with ball at 1.5x speed.",
		Rule:        Rule{Kind: RuleScoreWin, Score: 3},
		Mods:        Modifiers{SpeedFactor: 1.5}},
	{ID: 19, Name: "Hard Breaker", Tier: Advanced, Difficulty: ai.Hard, WinScore: 5,
		Description: "Win against Hard AI.",
		Rule:        Rule{Kind: RuleDifficultyWin, Difficulty: ai.Hard}},
	{ID: 20, Name: "Rally 50", Tier: Advanced, Difficulty: ai.Normal, WinScore: 5,
		Description: "Hit the ball 50 times in a row without missing.",
		Rule:        Rule{Kind: RuleRally, Count: 50}},
}

// catalogByID provides O(1) lookup by stage ID
var catalogByID map[int]Stage

func init() {
	catalogByID = make(map[int]Stage, len(catalog))
	for _, s := range catalog {
		catalogByID[s.ID] = s
	}
}

// Catalog returns a copy of all stages in id order
func Catalog() []Stage {
	out := make([]Stage, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the stage with the given id
func Lookup(id int) (Stage, bool) {
	s, ok := catalogByID[id]
	return s, ok
}

// ByTier returns the stages of one tier
func ByTier(t Tier) []Stage {
	var out []Stage
	for _, s := range catalog {
		if s.Tier == t {
			out = append(out, s)
		}
	}
	return out
}
