package challenge

import "github.com/diegok/rallypong/internal/ai"

// RuleKind is the predicate family of a stage
type RuleKind int

const (
	RuleScoreWin       RuleKind = iota // won, player score >= Score
	RuleShutoutWin                     // won, player score >= Score, AI score == 0
	RuleBoundedLossWin                 // won, player score >= Score, AI score <= MaxConceded
	RuleRally                          // max rally >= Count
	RuleSurvival                       // longest no-miss stretch >= Seconds
	RuleTimedScore                     // player score >= Score within Seconds of match time
	RuleCenterHits                     // center hits >= Count
	RuleDifficultyWin                  // won against Difficulty
)

var ruleNames = [...]string{
	RuleScoreWin:       "score-win",
	RuleShutoutWin:     "shutout-win",
	RuleBoundedLossWin: "bounded-loss-win",
	RuleRally:          "rally",
	RuleSurvival:       "survival",
	RuleTimedScore:     "timed-score",
	RuleCenterHits:     "center-hits",
	RuleDifficultyWin:  "difficulty-win",
}

func (k RuleKind) String() string {
	if k >= 0 && int(k) < len(ruleNames) {
		return ruleNames[k]
	}
	return "unknown"
}

// Rule is a tagged predicate descriptor. Only the fields used by Kind matter.
type Rule struct {
	Kind        RuleKind
	Score       int
	MaxConceded int
	Count       int
	Seconds     float64
	Difficulty  ai.Difficulty
}

// Endurance rules are judged continuously and pass the moment their
// counter reaches the target, whatever the score.
func (r Rule) Endurance() bool {
	switch r.Kind {
	case RuleRally, RuleSurvival, RuleCenterHits:
		return true
	}
	return false
}

// Evaluate is the single evaluator for every predicate family
func Evaluate(r Rule, o Outcome) bool {
	switch r.Kind {
	case RuleScoreWin:
		return o.Won && o.PlayerScore >= r.Score
	case RuleShutoutWin:
		return o.Won && o.PlayerScore >= r.Score && o.AIScore == 0
	case RuleBoundedLossWin:
		return o.Won && o.PlayerScore >= r.Score && o.AIScore <= r.MaxConceded
	case RuleRally:
		return o.MaxRallyCount >= r.Count
	case RuleSurvival:
		return o.SurvivalTimeSec >= r.Seconds
	case RuleTimedScore:
		return o.PlayerScore >= r.Score && o.MatchTimeSec <= r.Seconds
	case RuleCenterHits:
		return o.CenterHitCount >= r.Count
	case RuleDifficultyWin:
		return o.Difficulty == r.Difficulty && o.Won
	}
	return false
}
