package match

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/diegok/rallypong/internal/ai"
	"github.com/diegok/rallypong/internal/challenge"
	"github.com/diegok/rallypong/internal/game"
	"github.com/diegok/rallypong/internal/protocol"
)

var (
	ErrUnknownStage = errors.New("unknown stage")
	ErrStageLocked  = errors.New("stage locked")
)

// pending is what a continue offer is holding back
type pending int

const (
	pendingNone pending = iota
	pendingPoint
	pendingTime
)

// Session owns every piece of state of one match. It is driven by a
// single caller once per frame and is not safe for concurrent use.
type Session struct {
	opts Options
	log  *log.Logger

	id         string
	phase      Phase
	mode       Mode
	difficulty ai.Difficulty
	stage      *challenge.Stage
	winScore   int

	world *game.World
	ctrl  *ai.Controller

	scoreLeft  int
	scoreRight int
	won        bool
	passed     bool
	pending    pending

	countdown  int
	timer      time.Duration // time spent in the current countdown or serve delay
	active     time.Duration // physics time since match start
	speedLevel int
	serves     int
	tracker    challenge.Tracker

	lastFrame time.Time
	events    []protocol.Event
}

// New creates an idle session
func New(opts Options) *Session {
	opts = opts.withDefaults()
	return &Session{
		opts:       opts,
		log:        opts.Logger,
		difficulty: ai.Normal,
		winScore:   opts.WinScore,
		world:      game.NewWorld(opts.Tuning),
		lastFrame:  opts.Clock.Now(),
	}
}

// StartMatch begins a non-challenge match and enters the countdown.
// Invalid difficulties fall back to normal.
func (s *Session) StartMatch(mode Mode, d ai.Difficulty) protocol.Snapshot {
	if mode == ModeChallenge || mode < ModeVsAI || mode > ModeChallenge {
		mode = ModeVsAI
	}
	if !d.Valid() {
		d = ai.Normal
	}
	s.reset(mode, d, nil, s.opts.WinScore)
	s.log.Printf("match %s started: mode=%s difficulty=%s win=%d", s.id, s.mode, s.difficulty, s.winScore)
	return s.Snapshot()
}

// StartChallenge begins a stage with its forced difficulty, win score
// and modifiers. The session is left untouched on error.
func (s *Session) StartChallenge(id int) (protocol.Snapshot, error) {
	st, ok := challenge.Lookup(id)
	if !ok {
		return protocol.Snapshot{}, fmt.Errorf("stage %d: %w", id, ErrUnknownStage)
	}
	if !challenge.IsUnlocked(id, s.opts.Completed) {
		return protocol.Snapshot{}, fmt.Errorf("stage %d: %w", id, ErrStageLocked)
	}

	s.reset(ModeChallenge, st.Difficulty, &st, st.WinScore)
	s.scoreRight = st.Mods.OpponentHeadStart
	s.log.Printf("match %s started: stage=%d (%s) difficulty=%s win=%d perfect-ai=%v",
		s.id, st.ID, st.Name, s.difficulty, s.winScore, s.ctrl.Perfect())
	return s.Snapshot(), nil
}

func (s *Session) reset(mode Mode, d ai.Difficulty, st *challenge.Stage, winScore int) {
	s.id = uuid.NewString()
	s.mode = mode
	s.difficulty = d
	s.stage = st
	s.winScore = winScore
	s.scoreLeft, s.scoreRight = 0, 0
	s.won, s.passed = false, false
	s.pending = pendingNone
	s.active = 0
	s.speedLevel = 0
	s.serves = 0
	s.tracker.Reset()
	s.events = nil

	s.ctrl = nil
	if mode.SinglePlayer() {
		if st != nil && st.PerfectOpponent() {
			s.ctrl = ai.NewPerfectController(s.opts.Rand, s.opts.AI.Profile(d).BallSpeed)
		} else {
			s.ctrl = ai.NewController(s.opts.Rand, s.opts.AI.Profile(d), s.opts.AI.Relaxation(d))
		}
	}

	s.lastFrame = s.opts.Clock.Now()
	s.serve(s.nextServeDir())
}

// Frame samples the clock and runs one Tick with the elapsed time
func (s *Session) Frame(in protocol.Controls) protocol.Snapshot {
	now := s.opts.Clock.Now()
	dt := now.Sub(s.lastFrame)
	s.lastFrame = now
	return s.Tick(dt, in)
}

// Tick advances the session by dt. Only the countdown, serve delay and
// active phases consume time; all others ignore it.
func (s *Session) Tick(dt time.Duration, in protocol.Controls) protocol.Snapshot {
	if dt < 0 {
		dt = 0
	}
	if dt > game.MaxTick {
		dt = game.MaxTick
	}

	switch s.phase {
	case PhaseCountdown:
		s.tickCountdown(dt)
	case PhaseServeDelay:
		s.tickServeDelay(dt)
	case PhaseActive:
		s.tickActive(dt, in)
	}
	return s.Snapshot()
}

func (s *Session) tickCountdown(dt time.Duration) {
	s.timer += dt
	steps := s.opts.CountdownSteps
	step := s.opts.CountdownStep

	for s.countdown > 0 && s.timer >= time.Duration(steps-s.countdown+1)*step {
		s.countdown--
		if s.countdown > 0 {
			s.emit(protocol.Event{Kind: protocol.EventCountdown, Value: s.countdown})
		} else {
			s.emit(protocol.Event{Kind: protocol.EventGo})
		}
	}

	if s.countdown == 0 && s.timer >= time.Duration(steps)*step+s.opts.GoHold {
		s.phase = PhaseActive
		s.emit(protocol.Event{Kind: protocol.EventServe, Side: s.serveSide()})
	}
}

func (s *Session) tickServeDelay(dt time.Duration) {
	s.timer += dt
	if s.timer >= s.opts.ServeDelay {
		s.serve(s.nextServeDir())
	}
}

// tickActive runs one physics step, then stage checks, then scoring
func (s *Session) tickActive(dt time.Duration, in protocol.Controls) {
	dtNorm := game.NormalizeDt(dt)
	s.active += dt
	s.updateSpeedLevel()

	left := game.Follow(in.Left)
	var right game.Motion
	if s.ctrl != nil {
		right = s.ctrl.Update(dt, dtNorm, s.world.Ball, s.active)
	} else {
		right = game.Follow(in.Right)
	}

	res := s.world.Step(game.StepInput{
		DtNorm:   dtNorm,
		Left:     left,
		Right:    right,
		MaxSpeed: s.MaxSpeed(),
	})
	s.tracker.Advance(dt)

	for i := 0; i < res.Walls; i++ {
		s.emit(protocol.Event{Kind: protocol.EventWall})
	}
	for _, h := range res.Hits {
		s.emit(protocol.Event{Kind: protocol.EventPaddle, Side: h.Side, Center: h.Center})
		if h.Side == protocol.SideLeft {
			s.tracker.PlayerHit(h.Center)
		}
	}

	if s.stage != nil {
		if s.stage.Rule.Endurance() && challenge.Evaluate(s.stage.Rule, s.outcome(false)) {
			s.completeStage()
			return
		}
		if lim := s.stage.Mods.TimeLimit; lim > 0 && s.tracker.MatchTime() > lim {
			s.offerContinue(pendingTime)
			return
		}
	}

	if res.Point {
		s.point(res.Conceded.Opposite())
	}
}

func (s *Session) updateSpeedLevel() {
	if !s.mode.SinglePlayer() {
		return
	}
	lvl := int(s.active / s.opts.SpeedLevelInterval)
	if lvl > MaxSpeedLevel {
		lvl = MaxSpeedLevel
	}
	if lvl > s.speedLevel {
		s.speedLevel = lvl
		s.emit(protocol.Event{Kind: protocol.EventSpeedLevel, Value: lvl})
	}
}

// SpeedMultiplier is the factor applied to the base serve speed and cap
func (s *Session) SpeedMultiplier() float64 {
	base := TwoPlayerBallSpeed
	if s.mode.SinglePlayer() {
		base = s.opts.AI.Profile(s.difficulty).BallSpeed
	}
	factor := 1.0
	if s.stage != nil {
		factor = s.stage.Mods.Speed()
	}
	return base * factor * (1 + SpeedLevelBoost*float64(s.speedLevel))
}

// MaxSpeed is the current ball speed cap
func (s *Session) MaxSpeed() float64 {
	return s.opts.Tuning.MaxSpeed * s.SpeedMultiplier()
}

func (s *Session) point(scorer protocol.Side) {
	if scorer == protocol.SideRight && s.intercepts() {
		s.offerContinue(pendingPoint)
		return
	}

	s.applyPoint(scorer)

	if s.mode != ModeEndless && (s.scoreLeft >= s.winScore || s.scoreRight >= s.winScore) {
		s.finish(scorer == protocol.SideLeft)
		return
	}

	s.world.Ball.Stop()
	s.phase = PhaseServeDelay
	s.timer = 0
}

// intercepts reports whether an AI point would end the stage
func (s *Session) intercepts() bool {
	return s.stage != nil && s.scoreRight+1 >= s.winScore
}

func (s *Session) applyPoint(scorer protocol.Side) {
	if scorer == protocol.SideLeft {
		s.scoreLeft++
	} else {
		s.scoreRight++
	}
	s.emit(protocol.Event{Kind: protocol.EventScore, Side: scorer})
	s.tracker.Point()
	if s.ctrl != nil {
		s.ctrl.ResetReaction()
	}
}

func (s *Session) serve(dir float64) {
	s.world.Serve(dir, s.opts.Tuning.BaseSpeed*s.SpeedMultiplier())
	if s.ctrl != nil {
		s.ctrl.ResetReaction()
	}
	s.phase = PhaseCountdown
	s.countdown = s.opts.CountdownSteps
	s.timer = 0
	s.emit(protocol.Event{Kind: protocol.EventCountdown, Value: s.countdown})
}

func (s *Session) nextServeDir() float64 {
	s.serves++
	switch s.opts.Serve {
	case ServeLeft:
		return -1
	case ServeRight:
		return 1
	case ServeAlternate:
		if s.serves%2 == 1 {
			return 1
		}
		return -1
	}
	if s.opts.Rand.Float64() > 0.5 {
		return 1
	}
	return -1
}

// serveSide is the paddle the ball is travelling toward
func (s *Session) serveSide() protocol.Side {
	if s.world.Ball.VX < 0 {
		return protocol.SideLeft
	}
	return protocol.SideRight
}

func (s *Session) offerContinue(p pending) {
	s.pending = p
	s.phase = PhaseAwaitingContinue
	s.world.Ball.Stop()
	s.emit(protocol.Event{Kind: protocol.EventContinueOffered, StageID: s.stage.ID})
	s.log.Printf("match %s: stage %d continue offered (%d-%d)", s.id, s.stage.ID, s.scoreLeft, s.scoreRight)
}

func (s *Session) finish(leftWon bool) {
	s.phase = PhaseEnded
	s.won = leftWon
	s.world.Ball.Stop()

	winner := protocol.SideRight
	if leftWon {
		winner = protocol.SideLeft
	}
	s.emit(protocol.Event{Kind: protocol.EventWin, Side: winner})
	s.log.Printf("match %s ended %d-%d, %s wins", s.id, s.scoreLeft, s.scoreRight, winner)

	if s.stage == nil {
		return
	}
	if challenge.Evaluate(s.stage.Rule, s.outcome(s.won)) {
		s.completeStage()
	} else {
		s.failStage()
	}
}

func (s *Session) completeStage() {
	s.phase = PhaseEnded
	s.passed = true
	s.world.Ball.Stop()
	s.opts.Completed.Add(s.stage.ID)
	s.emit(protocol.Event{Kind: protocol.EventStageComplete, StageID: s.stage.ID})
	s.log.Printf("match %s: stage %d complete", s.id, s.stage.ID)
}

func (s *Session) failStage() {
	s.phase = PhaseEnded
	s.world.Ball.Stop()
	s.emit(protocol.Event{Kind: protocol.EventStageFail, StageID: s.stage.ID})
	s.log.Printf("match %s: stage %d failed", s.id, s.stage.ID)
}

// Pause freezes an active rally. Returns false in any other phase.
func (s *Session) Pause() bool {
	if s.phase != PhaseActive {
		return false
	}
	s.phase = PhasePaused
	return true
}

// Resume continues a paused rally and rebases the frame clock so the
// time spent paused is never fed to Tick.
func (s *Session) Resume() bool {
	if s.phase != PhasePaused {
		return false
	}
	s.phase = PhaseActive
	s.lastFrame = s.opts.Clock.Now()
	return true
}

// RequestContinue answers a continue offer, or revives a lost vs-AI
// match by taking one point off the AI. Returns false when there was
// nothing to answer.
func (s *Session) RequestContinue(granted bool) bool {
	switch s.phase {
	case PhaseAwaitingContinue:
		kind := s.pending
		s.pending = pendingNone

		if !granted {
			if kind == pendingPoint {
				s.applyPoint(protocol.SideRight)
				if s.scoreRight >= s.winScore {
					s.finish(false)
					return true
				}
			}
			s.failStage()
			return true
		}

		if kind == pendingTime {
			s.tracker.RestartClock()
		} else {
			s.tracker.Point()
		}
		s.log.Printf("match %s: stage %d continued", s.id, s.stage.ID)
		s.serve(s.nextServeDir())
		return true

	case PhaseEnded:
		if !granted || !s.canRevive() {
			return false
		}
		s.scoreRight--
		s.won = false
		s.log.Printf("match %s revived at %d-%d", s.id, s.scoreLeft, s.scoreRight)
		s.serve(1)
		return true
	}
	return false
}

func (s *Session) canRevive() bool {
	return s.phase == PhaseEnded && s.mode == ModeVsAI && !s.won && s.scoreRight > 0
}

// CanContinue reports whether RequestContinue(true) would do anything
func (s *Session) CanContinue() bool {
	return s.phase == PhaseAwaitingContinue || s.canRevive()
}

func (s *Session) outcome(won bool) challenge.Outcome {
	var st challenge.Stage
	if s.stage != nil {
		st = *s.stage
	}
	return s.tracker.Outcome(s.scoreLeft, s.scoreRight, won, s.difficulty, s.speedLevel, st)
}

// Outcome returns the challenge record for the current stage attempt
func (s *Session) Outcome() (challenge.Outcome, bool) {
	if s.stage == nil {
		return challenge.Outcome{}, false
	}
	return s.outcome(s.won), true
}

func (s *Session) emit(ev protocol.Event) {
	s.events = append(s.events, ev)
}

// Snapshot returns the observable state and drains pending events
func (s *Session) Snapshot() protocol.Snapshot {
	snap := protocol.Snapshot{
		MatchID:        s.id,
		Phase:          s.phase.String(),
		Mode:           s.mode.String(),
		Difficulty:     s.difficulty.String(),
		LeftScore:      s.scoreLeft,
		RightScore:     s.scoreRight,
		WinScore:       s.winScore,
		Ball:           s.world.Ball.State(),
		Left:           s.world.Left.State(),
		Right:          s.world.Right.State(),
		BallSpeedLevel: s.speedLevel,
		Rally:          s.tracker.Rally(),
		CanContinue:    s.CanContinue(),
		Won:            s.won,
		Passed:         s.passed,
		Events:         s.events,
	}
	if s.phase == PhaseCountdown {
		snap.Countdown = s.countdown
	}
	if s.stage != nil {
		snap.StageID = s.stage.ID
	}
	s.events = nil
	return snap
}

func (s *Session) ID() string { return s.id }
func (s *Session) Phase() Phase { return s.phase }
func (s *Session) Mode() Mode { return s.mode }
func (s *Session) Difficulty() ai.Difficulty { return s.difficulty }
func (s *Session) Scores() (left, right int) { return s.scoreLeft, s.scoreRight }
func (s *Session) Won() bool { return s.won }
func (s *Session) Passed() bool { return s.passed }
func (s *Session) ActiveTime() time.Duration { return s.active }
func (s *Session) Tracker() *challenge.Tracker { return &s.tracker }
func (s *Session) Controller() *ai.Controller { return s.ctrl }
func (s *Session) World() *game.World { return s.world }

// Stage returns the active challenge stage, if any
func (s *Session) Stage() (challenge.Stage, bool) {
	if s.stage == nil {
		return challenge.Stage{}, false
	}
	return *s.stage, true
}

// Catalog returns every challenge stage
func (s *Session) Catalog() []challenge.Stage {
	return challenge.Catalog()
}

// CompletedChallenges returns the completed stage ids in order
func (s *Session) CompletedChallenges() []int {
	return s.opts.Completed.IDs()
}

// IsStageUnlocked checks a stage against a completed set
func (s *Session) IsStageUnlocked(id int, completed challenge.Set) bool {
	return challenge.IsUnlocked(id, completed)
}
