package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/diegok/rallypong/internal/game"
	"github.com/diegok/rallypong/internal/protocol"
)

func newSimRenderer(t *testing.T, w, h int) (*Renderer, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("failed to init simulation screen: %v", err)
	}
	sim.SetSize(w, h)
	t.Cleanup(sim.Fini)
	return NewRenderer(NewScreen(sim)), sim
}

func rowText(sim tcell.SimulationScreen, y int) string {
	w, _ := sim.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := sim.GetContent(x, y)
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
	}
	return b.String()
}

func screenText(sim tcell.SimulationScreen) string {
	_, h := sim.Size()
	var b strings.Builder
	for y := 0; y < h; y++ {
		b.WriteString(rowText(sim, y))
		b.WriteByte('\n')
	}
	return b.String()
}

func testSnapshot() protocol.Snapshot {
	return protocol.Snapshot{
		Phase:      "active",
		Mode:       "vs-ai",
		LeftScore:  3,
		RightScore: 2,
		WinScore:   10,
		Ball:       protocol.BallState{X: 0.5, Y: 0.5},
		Left:       protocol.PaddleState{Side: protocol.SideLeft, Y: 0.5},
		Right:      protocol.PaddleState{Side: protocol.SideRight, Y: 0.5},
	}
}

func TestRenderGame_Court(t *testing.T) {
	r, sim := newSimRenderer(t, 80, 24)
	r.RenderGame(testSnapshot(), Hud{Title: "VS CPU"})

	if top := rowText(sim, 0); !strings.Contains(top, "YOU 3 - 2 CPU") {
		t.Errorf("expected scoreboard, got %q", top)
	}
	if status := rowText(sim, 23); !strings.Contains(status, "VS CPU | First to 10") {
		t.Errorf("expected status bar, got %q", status)
	}

	ball, _, _, _ := sim.GetContent(courtCol(0.5, 80), courtRow(0.5, 24))
	if ball != BallChar {
		t.Errorf("expected ball at court center, got %q", ball)
	}

	col := courtCol(game.LeftFaceX-game.PaddlePadX/2, 80)
	paddles := 0
	for y := 1; y < 23; y++ {
		if c, _, _, _ := sim.GetContent(col, y); c == PaddleChar {
			paddles++
		}
	}
	if paddles == 0 {
		t.Errorf("expected left paddle in column %d", col)
	}
}

func TestRenderGame_Overlays(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*protocol.Snapshot)
		want   string
	}{
		{"countdown", func(s *protocol.Snapshot) { s.Phase, s.Countdown = "countdown", 2 }, "GET READY!"},
		{"go", func(s *protocol.Snapshot) { s.Phase = "countdown" }, "GO!"},
		{"paused", func(s *protocol.Snapshot) { s.Phase = "paused" }, "PAUSED"},
		{"continue", func(s *protocol.Snapshot) { s.Phase = "awaiting-continue" }, "CONTINUE?"},
		{"win", func(s *protocol.Snapshot) { s.Phase, s.Won = "ended", true }, "YOU WIN!"},
		{"revive", func(s *protocol.Snapshot) { s.Phase, s.CanContinue = "ended", true }, "c: revive"},
		{"stage", func(s *protocol.Snapshot) { s.Phase, s.StageID, s.Passed = "ended", 4, true }, "STAGE COMPLETE!"},
		{"stage fail", func(s *protocol.Snapshot) { s.Phase, s.StageID = "ended", 4 }, "STAGE FAILED"},
		{"two player", func(s *protocol.Snapshot) { s.Phase, s.Mode = "ended", "two-player" }, "RIGHT WINS!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, sim := newSimRenderer(t, 80, 24)
			snap := testSnapshot()
			tt.modify(&snap)
			r.RenderGame(snap, Hud{})
			if text := screenText(sim); !strings.Contains(text, tt.want) {
				t.Errorf("expected %q on screen", tt.want)
			}
		})
	}
}

func TestRenderMenu(t *testing.T) {
	r, sim := newSimRenderer(t, 80, 24)
	items := []MenuItem{
		{Label: "MODES", Header: true},
		{Label: "Vs CPU"},
		{Label: "1. First Steps", Done: true},
		{Label: "7. Rally Master", Locked: true},
	}
	r.RenderMenu(items, 1)

	text := screenText(sim)
	for _, want := range []string{"RALLYPONG", "MODES", "Vs CPU", "* 1. First Steps", "# 7. Rally Master"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in menu", want)
		}
	}
}

func TestCourtY(t *testing.T) {
	if got := CourtY(1, 24); got != 0 {
		t.Errorf("expected top row at 0, got %f", got)
	}
	if got := CourtY(22, 24); got != 1 {
		t.Errorf("expected bottom row at 1, got %f", got)
	}
	if got := CourtY(100, 24); got != 1 {
		t.Errorf("expected clamp to 1, got %f", got)
	}
	if got := CourtY(courtRow(0.25, 24), 24); got < 0.2 || got > 0.3 {
		t.Errorf("expected round trip near 0.25, got %f", got)
	}
}
