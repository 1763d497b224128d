package protocol

// Direction represents paddle movement direction
type Direction int

const (
	DirNone Direction = 0
	DirUp   Direction = 1
	DirDown Direction = 2
)

// Sign returns -1 for up, +1 for down and 0 otherwise (screen Y grows downward)
func (d Direction) Sign() float64 {
	switch d {
	case DirUp:
		return -1
	case DirDown:
		return 1
	}
	return 0
}

// Side identifies a paddle / half of the court
type Side int

const (
	SideLeft  Side = 0
	SideRight Side = 1
)

// Opposite returns the other side
func (s Side) Opposite() Side {
	if s == SideLeft {
		return SideRight
	}
	return SideLeft
}

func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// InputSource tells how an Intent should be applied to a paddle
type InputSource int

const (
	SourceNone    InputSource = iota // paddle holds position
	SourcePointer                    // follow TargetY, mouse-style smoothing
	SourceTouch                      // follow TargetY, touch smoothing
	SourceKeys                       // fixed-rate movement in Direction
)

// Intent is an already-normalized control request for one paddle
type Intent struct {
	Source    InputSource
	TargetY   float64 // 0..1, used by pointer and touch sources
	Direction Direction
}

// PointerIntent builds a pointer-follow intent
func PointerIntent(y float64) Intent {
	return Intent{Source: SourcePointer, TargetY: y}
}

// TouchIntent builds a touch-follow intent
func TouchIntent(y float64) Intent {
	return Intent{Source: SourceTouch, TargetY: y}
}

// KeyIntent builds a digital intent
func KeyIntent(dir Direction) Intent {
	if dir == DirNone {
		return Intent{}
	}
	return Intent{Source: SourceKeys, Direction: dir}
}

// Controls carries the intents for both paddles for one tick.
// Right is ignored unless the match is two-player.
type Controls struct {
	Left  Intent
	Right Intent
}

// BallState represents the ball's position and velocity
type BallState struct {
	X  float64
	Y  float64
	VX float64
	VY float64
}

// PaddleState represents a paddle's state
type PaddleState struct {
	Side Side
	Y    float64
	VY   float64
}

// EventKind enumerates what happened during a tick
type EventKind int

const (
	EventWall EventKind = iota
	EventPaddle
	EventScore
	EventWin
	EventCountdown
	EventGo
	EventServe
	EventContinueOffered
	EventStageComplete
	EventStageFail
	EventSpeedLevel
)

var eventNames = [...]string{
	EventWall:            "wall",
	EventPaddle:          "paddle",
	EventScore:           "score",
	EventWin:             "win",
	EventCountdown:       "countdown",
	EventGo:              "go",
	EventServe:           "serve",
	EventContinueOffered: "continue-offered",
	EventStageComplete:   "stage-complete",
	EventStageFail:       "stage-fail",
	EventSpeedLevel:      "speed-level",
}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// Event is a single occurrence within a tick
type Event struct {
	Kind    EventKind
	Side    Side // paddle/score/win side
	Center  bool // paddle events: hit within the center band
	Value   int  // countdown value or speed level
	StageID int  // stage events
}

// Snapshot is the externally observable state after a tick
type Snapshot struct {
	MatchID        string
	Phase          string
	Mode           string
	Difficulty     string
	StageID        int
	LeftScore      int
	RightScore     int
	WinScore       int
	Countdown      int
	Ball           BallState
	Left           PaddleState
	Right          PaddleState
	BallSpeedLevel int
	Rally          int
	CanContinue    bool
	Won            bool
	Passed         bool // challenge predicate satisfied
	Events         []Event
}

// Has reports whether the snapshot carries an event of the given kind
func (s Snapshot) Has(kind EventKind) bool {
	for _, ev := range s.Events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}
