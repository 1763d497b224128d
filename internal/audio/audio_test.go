package audio

import (
	"testing"
	"time"

	"github.com/diegok/rallypong/internal/protocol"
)

// drain counts the samples a streamer produces
func drain(c Cue) int {
	s := c.Streamer()
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			return total
		}
	}
}

func TestCueFor(t *testing.T) {
	tests := []struct {
		name string
		ev   protocol.Event
		want bool
	}{
		{"paddle", protocol.Event{Kind: protocol.EventPaddle}, true},
		{"wall", protocol.Event{Kind: protocol.EventWall}, true},
		{"countdown", protocol.Event{Kind: protocol.EventCountdown, Value: 3}, true},
		{"serve is silent", protocol.Event{Kind: protocol.EventServe}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(CueFor(tt.ev, true)) > 0; got != tt.want {
				t.Errorf("expected cue=%v, got %v", tt.want, got)
			}
		})
	}
}

func TestCueFor_WinOrLose(t *testing.T) {
	aiWins := protocol.Event{Kind: protocol.EventWin, Side: protocol.SideRight}
	if CueFor(aiWins, true)[0] != loseCue[0] {
		t.Error("expected lose cue when the AI wins")
	}
	if CueFor(aiWins, false)[0] == loseCue[0] {
		t.Error("expected win cue for the right player in two-player")
	}
}

func TestCue_Streamer(t *testing.T) {
	cue := CueFor(protocol.Event{Kind: protocol.EventGo}, true)
	want := 0
	for _, n := range cue {
		want += sampleRate.N(n.Duration)
	}
	if got := drain(cue); got != want {
		t.Errorf("expected %d samples, got %d", want, got)
	}
	if cue.Length() != 150*time.Millisecond {
		t.Errorf("expected 150ms, got %v", cue.Length())
	}
}

func TestPlayer_Uninitialized(t *testing.T) {
	p := &Player{}
	// Must be a no-op without a speaker
	p.Play([]protocol.Event{{Kind: protocol.EventPaddle}}, true)
}
