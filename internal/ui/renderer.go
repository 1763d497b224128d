package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/diegok/rallypong/internal/game"
	"github.com/diegok/rallypong/internal/protocol"
)

const (
	BallChar   = '\u2B24' // ⬤
	PaddleChar = '\u2588' // █
)

// MenuItem is one selectable line of the start menu
type MenuItem struct {
	Label  string
	Detail string
	Locked bool
	Done   bool
	Header bool // section title, not selectable
}

// Hud is the text shown around the court
type Hud struct {
	Title string // mode or stage name
	Goal  string // stage description
}

// Renderer handles rendering all game screens
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer with the given screen
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Court rows run from 1 to h-2; row 0 is the scoreboard and h-1 the status bar.
func courtCol(x float64, w int) int {
	return int(x*float64(w-1) + 0.5)
}

func courtRow(y float64, h int) int {
	return 1 + int(y*float64(h-3)+0.5)
}

// CourtY maps a screen row back to a normalized court Y, clamped to [0, 1]
func CourtY(row, h int) float64 {
	if h <= 3 {
		return game.CenterY
	}
	y := float64(row-1) / float64(h-3)
	if y < 0 {
		return 0
	}
	if y > 1 {
		return 1
	}
	return y
}

// RenderMenu displays the mode and stage selection list
func (r *Renderer) RenderMenu(items []MenuItem, cursor int) {
	r.screen.Clear()
	screenW, screenH := r.screen.Size()

	titleStyle := tcell.StyleDefault.Bold(true).Foreground(tcell.ColorWhite)
	r.screen.DrawCentered(1, "=== RALLYPONG ===", titleStyle)

	// Scroll so the cursor stays visible
	listY := 3
	rows := screenH - listY - 2
	first := 0
	if rows > 0 && cursor >= rows {
		first = cursor - rows + 1
	}

	for i := first; i < len(items) && i-first < rows; i++ {
		item := items[i]
		y := listY + i - first

		if item.Header {
			r.screen.DrawText(2, y, item.Label, tcell.StyleDefault.Foreground(tcell.ColorTeal).Bold(true))
			continue
		}

		style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
		mark := "  "
		switch {
		case item.Locked:
			style = tcell.StyleDefault.Foreground(tcell.ColorGray)
			mark = "# "
		case item.Done:
			style = tcell.StyleDefault.Foreground(tcell.ColorGreen)
			mark = "* "
		}
		if i == cursor {
			style = style.Reverse(true)
		}

		line := mark + item.Label
		r.screen.DrawText(4, y, line, style)
		if item.Detail != "" && 6+len(line) < screenW {
			r.screen.DrawText(6+len(line), y, item.Detail, tcell.StyleDefault.Foreground(tcell.ColorGray))
		}
	}

	hint := "UP/DOWN select | ENTER play | q quit"
	r.screen.DrawText(2, screenH-1, hint, tcell.StyleDefault.Foreground(tcell.ColorGray))

	r.screen.Show()
}

// RenderGame displays the court and the overlay for the current phase
func (r *Renderer) RenderGame(snap protocol.Snapshot, hud Hud) {
	r.screen.Clear()
	screenW, screenH := r.screen.Size()

	// Draw court background (black)
	courtStyle := tcell.StyleDefault.Background(tcell.ColorBlack)
	r.screen.FillRect(0, 1, screenW, screenH-2, courtStyle, ' ')

	// Draw center dashed line
	centerX := courtCol(game.CenterX, screenW)
	lineStyle := tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	for y := 1; y < screenH-1; y += 2 {
		r.screen.SetCell(centerX, y, lineStyle, '|')
	}

	r.renderScoreboard(snap, screenW)

	r.renderPaddle(snap.Left, game.LeftFaceX-game.PaddlePadX/2, screenW, screenH)
	r.renderPaddle(snap.Right, game.RightFaceX+game.PaddlePadX/2, screenW, screenH)

	ballX := courtCol(snap.Ball.X, screenW)
	ballY := courtRow(snap.Ball.Y, screenH)
	if ballX >= 0 && ballX < screenW && ballY >= 1 && ballY < screenH-1 {
		ballStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
		r.screen.SetCell(ballX, ballY, ballStyle, BallChar)
	}

	r.renderStatus(snap, hud, screenW, screenH)

	switch snap.Phase {
	case "countdown":
		text := "GO!"
		if snap.Countdown > 0 {
			text = fmt.Sprintf("%d", snap.Countdown)
		}
		r.renderBox([]string{"GET READY!", "", text}, tcell.ColorYellow)
	case "paused":
		r.renderBox([]string{"PAUSED", "", "ESC or p to resume"}, tcell.ColorTeal)
	case "awaiting-continue":
		r.renderBox([]string{"CONTINUE?", "", "c: continue | n: give up"}, tcell.ColorYellow)
	case "ended":
		r.renderEnd(snap)
	}

	r.screen.Show()
}

func (r *Renderer) renderPaddle(p protocol.PaddleState, x float64, screenW, screenH int) {
	style := SideStyle(p.Side)
	col := courtCol(x, screenW)
	height := int(game.PaddleHeight*float64(screenH-2) + 0.5)
	if height < 1 {
		height = 1
	}

	top := courtRow(p.Y, screenH) - height/2
	bottom := top + height - 1
	if top < 1 {
		top = 1
	}
	if bottom > screenH-2 {
		bottom = screenH - 2
	}
	r.screen.DrawVerticalLine(col, top, bottom, style, PaddleChar)
}

// renderScoreboard draws a stadium-style scoreboard at top center
func (r *Renderer) renderScoreboard(snap protocol.Snapshot, screenW int) {
	leftLabel, rightLabel := "YOU", "CPU"
	if snap.Mode == "two-player" {
		leftLabel, rightLabel = "LEFT", "RIGHT"
	}

	leftScore := fmt.Sprintf(" %d", snap.LeftScore)
	mid := fmt.Sprintf("%s - %d ", leftScore, snap.RightScore)
	text := fmt.Sprintf("[ %s%s%s ]", leftLabel, mid, rightLabel)
	x := (screenW - len(text)) / 2

	base := tcell.StyleDefault.Background(tcell.ColorDarkGray).Foreground(tcell.ColorWhite).Bold(true)
	r.screen.DrawText(x, 0, "[ ", base)
	x += 2
	r.screen.DrawText(x, 0, leftLabel, base.Foreground(SideColors[protocol.SideLeft]))
	x += len(leftLabel)
	r.screen.DrawText(x, 0, mid, base)
	x += len(mid)
	r.screen.DrawText(x, 0, rightLabel, base.Foreground(SideColors[protocol.SideRight]))
	x += len(rightLabel)
	r.screen.DrawText(x, 0, " ]", base)
}

func (r *Renderer) renderStatus(snap protocol.Snapshot, hud Hud, screenW, screenH int) {
	statusY := screenH - 1
	statusStyle := tcell.StyleDefault.Background(tcell.ColorDarkGray).Foreground(tcell.ColorWhite)
	for x := 0; x < screenW; x++ {
		r.screen.SetCell(x, statusY, statusStyle, ' ')
	}

	text := " " + hud.Title
	if snap.Mode != "endless" {
		text += fmt.Sprintf(" | First to %d", snap.WinScore)
	}
	if snap.BallSpeedLevel > 0 {
		text += fmt.Sprintf(" | Speed Lv %d", snap.BallSpeedLevel)
	}
	if snap.StageID > 0 {
		text += fmt.Sprintf(" | Rally %d", snap.Rally)
		if hud.Goal != "" {
			text += " | " + hud.Goal
		}
	}
	r.screen.DrawText(0, statusY, text, statusStyle)
}

func (r *Renderer) renderEnd(snap protocol.Snapshot) {
	var title string
	color := tcell.ColorGreen
	switch {
	case snap.StageID > 0 && snap.Passed:
		title = "STAGE COMPLETE!"
	case snap.StageID > 0:
		title, color = "STAGE FAILED", tcell.ColorRed
	case snap.Mode == "two-player" && snap.Won:
		title = "LEFT WINS!"
	case snap.Mode == "two-player":
		title, color = "RIGHT WINS!", tcell.ColorBlue
	case snap.Won:
		title = "YOU WIN!"
	default:
		title, color = "YOU LOSE", tcell.ColorRed
	}

	lines := []string{title, fmt.Sprintf("Final Score: %d - %d", snap.LeftScore, snap.RightScore), ""}
	if snap.CanContinue {
		lines = append(lines, "c: revive (CPU loses a point)")
	}
	lines = append(lines, "ENTER: play again | ESC: menu")
	r.renderBox(lines, color)
}

// renderBox draws a centered message box; the first line is the title
func (r *Renderer) renderBox(lines []string, titleColor tcell.Color) {
	screenW, screenH := r.screen.Size()

	boxW := 0
	for _, l := range lines {
		if len(l) > boxW {
			boxW = len(l)
		}
	}
	boxW += 6
	boxH := len(lines) + 4
	boxX := (screenW - boxW) / 2
	boxY := (screenH - boxH) / 2

	fillStyle := tcell.StyleDefault.Background(tcell.ColorDarkGray)
	r.screen.FillRect(boxX+1, boxY+1, boxW-2, boxH-2, fillStyle, ' ')
	r.screen.DrawBox(boxX, boxY, boxW, boxH, tcell.StyleDefault.Foreground(tcell.ColorWhite))

	for i, l := range lines {
		style := fillStyle.Foreground(tcell.ColorWhite)
		if i == 0 {
			style = fillStyle.Foreground(titleColor).Bold(true)
		}
		r.screen.DrawCentered(boxY+2+i, l, style)
	}
}

// RenderError displays an error screen
func (r *Renderer) RenderError(err string) {
	r.screen.Clear()
	screenW, screenH := r.screen.Size()

	titleStyle := tcell.StyleDefault.Bold(true).Foreground(tcell.ColorRed)
	r.screen.DrawCentered(screenH/2-2, "ERROR", titleStyle)

	// Truncate if too long
	maxErrLen := screenW - 4
	errMsg := err
	if maxErrLen > 3 && len(errMsg) > maxErrLen {
		errMsg = errMsg[:maxErrLen-3] + "..."
	}
	r.screen.DrawCentered(screenH/2, errMsg, tcell.StyleDefault.Foreground(tcell.ColorWhite))

	r.screen.DrawCentered(screenH/2+3, "Press any key to continue", tcell.StyleDefault.Foreground(tcell.ColorGray))

	r.screen.Show()
}
