package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/diegok/rallypong/internal/protocol"
)

const (
	sampleRate = beep.SampleRate(44100)
)

var (
	initialized bool
)

// Init initializes the audio system
func Init() error {
	if initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(time.Second/30))
	if err != nil {
		return err
	}

	initialized = true
	return nil
}

// Close shuts down the audio system
func Close() {
	if initialized {
		speaker.Close()
		initialized = false
	}
}

// Wave selects the oscillator shape of a note
type Wave int

const (
	Square Wave = iota
	Sine
)

// Note is one fixed-pitch segment of a cue
type Note struct {
	Freq     float64
	Duration time.Duration
	Wave     Wave
}

// Cue is a short sequence of notes played back to back
type Cue []Note

// Length is the total duration of the cue
func (c Cue) Length() time.Duration {
	var d time.Duration
	for _, n := range c {
		d += n.Duration
	}
	return d
}

// CueFor maps a match event to its sound. Win events are heard as a
// loss when the AI wins a single-player match.
func CueFor(ev protocol.Event, singlePlayer bool) Cue {
	switch ev.Kind {
	case protocol.EventPaddle:
		return Cue{{1100, 12 * time.Millisecond, Square}, {350, 16 * time.Millisecond, Square}}
	case protocol.EventWall:
		return Cue{{850, 10 * time.Millisecond, Square}, {280, 15 * time.Millisecond, Square}}
	case protocol.EventScore:
		return Cue{{900, 20 * time.Millisecond, Square}, {600, 20 * time.Millisecond, Square}, {750, 40 * time.Millisecond, Square}}
	case protocol.EventCountdown:
		return Cue{{440, 80 * time.Millisecond, Sine}}
	case protocol.EventGo:
		return Cue{{523, 40 * time.Millisecond, Sine}, {659, 40 * time.Millisecond, Sine}, {784, 70 * time.Millisecond, Sine}}
	case protocol.EventWin, protocol.EventStageComplete:
		if ev.Kind == protocol.EventWin && singlePlayer && ev.Side == protocol.SideRight {
			return loseCue
		}
		return Cue{{523, 80 * time.Millisecond, Sine}, {659, 80 * time.Millisecond, Sine}, {784, 190 * time.Millisecond, Sine}}
	case protocol.EventStageFail:
		return loseCue
	case protocol.EventContinueOffered:
		return Cue{{330, 60 * time.Millisecond, Sine}, {440, 60 * time.Millisecond, Sine}}
	case protocol.EventSpeedLevel:
		return Cue{{660, 30 * time.Millisecond, Square}, {990, 30 * time.Millisecond, Square}}
	}
	return nil
}

var loseCue = Cue{{280, 120 * time.Millisecond, Sine}, {200, 60 * time.Millisecond, Sine}}

// Streamer renders a cue as one beep stream
func (c Cue) Streamer() beep.Streamer {
	parts := make([]beep.Streamer, 0, len(c))
	for _, n := range c {
		if n.Wave == Sine {
			parts = append(parts, tone(n.Freq, n.Duration))
		} else {
			parts = append(parts, squareWave(n.Freq, n.Duration))
		}
	}
	return beep.Seq(parts...)
}

// Player turns snapshot events into sounds
type Player struct {
	Muted bool
}

// Play queues the cues for every event of a tick. Duplicate kinds
// within one tick are played once.
func (p *Player) Play(events []protocol.Event, singlePlayer bool) {
	if !initialized || p.Muted {
		return
	}
	seen := make(map[protocol.EventKind]bool, len(events))
	for _, ev := range events {
		if seen[ev.Kind] {
			continue
		}
		seen[ev.Kind] = true
		if cue := CueFor(ev, singlePlayer); len(cue) > 0 {
			speaker.Play(cue.Streamer())
		}
	}
}

// tone generates a sine wave tone at the given frequency for the given duration
func tone(freq float64, duration time.Duration) beep.Streamer {
	numSamples := sampleRate.N(duration)
	phase := 0.0
	phaseStep := 2 * math.Pi * freq / float64(sampleRate)

	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i := range samples {
			if numSamples <= 0 {
				return i, false
			}
			val := math.Sin(phase) * 0.3 // 0.3 volume
			samples[i][0] = val
			samples[i][1] = val
			phase += phaseStep
			numSamples--
		}
		return len(samples), true
	})
}

// squareWave generates a square wave tone (more retro/8-bit feel)
func squareWave(freq float64, duration time.Duration) beep.Streamer {
	numSamples := sampleRate.N(duration)
	phase := 0.0
	phaseStep := freq / float64(sampleRate)

	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i := range samples {
			if numSamples <= 0 {
				return i, false
			}
			val := 0.2 // volume
			if math.Mod(phase, 1.0) > 0.5 {
				val = -val
			}
			samples[i][0] = val
			samples[i][1] = val
			phase += phaseStep
			numSamples--
		}
		return len(samples), true
	})
}
