package app

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/diegok/rallypong/internal/ai"
	"github.com/diegok/rallypong/internal/audio"
	"github.com/diegok/rallypong/internal/challenge"
	"github.com/diegok/rallypong/internal/config"
	"github.com/diegok/rallypong/internal/match"
	"github.com/diegok/rallypong/internal/protocol"
	"github.com/diegok/rallypong/internal/store"
	"github.com/diegok/rallypong/internal/ui"
)

// FrameInterval is the render and simulation period
const FrameInterval = 16 * time.Millisecond

// Deps are the collaborators built by main
type Deps struct {
	Session   *match.Session
	DB        *store.DB // nil disables persistence
	Completed challenge.Set
	Logger    *log.Logger
	Screen    *ui.Screen // nil opens the terminal
}

// menuEntry is what a menu line starts
type menuEntry struct {
	item  ui.MenuItem
	mode  match.Mode
	stage int
}

// App is the main application controller that manages the game lifecycle.
type App struct {
	cfg       *config.Config
	log       *log.Logger
	db        *store.DB
	session   *match.Session
	completed challenge.Set
	screen    *ui.Screen
	renderer  *ui.Renderer
	player    audio.Player
	keys      *ui.HeldKeys

	// State
	inMenu     bool
	menu       []menuEntry
	cursor     int
	difficulty ai.Difficulty
	current    menuEntry // what ENTER replays
	snap       protocol.Snapshot
	hud        ui.Hud
	recorded   bool

	quit    chan struct{}
	sigChan chan os.Signal
}

// NewApp creates a new App instance with the given configuration.
func NewApp(cfg *config.Config, deps Deps) *App {
	logger := deps.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}
	completed := deps.Completed
	if completed == nil {
		completed = challenge.NewSet()
	}
	return &App{
		cfg:        cfg,
		log:        logger,
		db:         deps.DB,
		session:    deps.Session,
		completed:  completed,
		screen:     deps.Screen,
		player:     audio.Player{Muted: cfg.Mute},
		keys:       ui.NewHeldKeys(false),
		difficulty: cfg.Difficulty,
		quit:       make(chan struct{}),
	}
}

// Run is the main entry point for the application.
// It initializes the screen, sets up signal handling, and starts the game.
func (a *App) Run() error {
	if !a.cfg.Mute {
		// Game works without sound
		if err := audio.Init(); err != nil {
			a.log.Printf("audio disabled: %v", err)
		}
	}

	if a.screen == nil {
		screen, err := ui.InitScreen()
		if err != nil {
			return fmt.Errorf("failed to initialize screen: %w", err)
		}
		a.screen = screen
	}
	a.renderer = ui.NewRenderer(a.screen)

	a.sigChan = make(chan os.Signal, 1)
	signal.Notify(a.sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-a.sigChan:
			close(a.quit)
		case <-a.quit:
		}
	}()

	a.menu = a.buildMenu()
	switch {
	case a.cfg.Stage > 0:
		a.start(menuEntry{mode: match.ModeChallenge, stage: a.cfg.Stage})
	case a.cfg.Set["mode"]:
		a.start(menuEntry{mode: a.cfg.Mode})
	default:
		a.openMenu()
	}

	runErr := a.mainLoop()
	a.cleanup()
	return runErr
}

// mainLoop is the main event loop that handles all input and state updates.
func (a *App) mainLoop() error {
	events := make(chan tcell.Event)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-a.quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-a.quit:
			return nil

		case ev := <-events:
			if a.handleEvent(ev) {
				return nil
			}

		case now := <-ticker.C:
			a.frame(now)
		}
	}
}

// frame advances the session and renders the result
func (a *App) frame(now time.Time) {
	if a.inMenu {
		a.renderer.RenderMenu(a.menuItems(), a.cursor)
		return
	}

	a.snap = a.session.Frame(a.keys.Controls(now))
	a.player.Play(a.snap.Events, a.session.Mode().SinglePlayer())

	if a.session.Phase() == match.PhaseEnded && !a.recorded {
		a.record()
	}
	a.renderer.RenderGame(a.snap, a.hud)
}

// handleEvent processes keyboard and other events.
// Returns true if the application should quit.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ui.KeyToAction(ev.Key(), ev.Rune()) == ui.ActionQuit {
			return true
		}
		if a.inMenu {
			a.handleMenuEvent(ev)
		} else {
			a.handleGameEvent(ev)
		}

	case *tcell.EventMouse:
		if !a.inMenu {
			_, y := ev.Position()
			_, h := a.screen.Size()
			a.keys.Pointer(ui.CourtY(y, h))
		}

	case *tcell.EventResize:
		a.screen.Clear()
	}

	return false
}

// handleMenuEvent moves the cursor, changes difficulty or starts a match
func (a *App) handleMenuEvent(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyUp:
		a.moveCursor(-1)
	case tcell.KeyDown:
		a.moveCursor(1)
	case tcell.KeyLeft:
		a.difficulty = (a.difficulty + 2) % 3
	case tcell.KeyRight:
		a.difficulty = (a.difficulty + 1) % 3
	case tcell.KeyEnter:
		entry := a.menu[a.cursor]
		if entry.stage > 0 && !a.session.IsStageUnlocked(entry.stage, a.completed) {
			return
		}
		a.start(entry)
	}
}

// handleGameEvent handles events during a match
func (a *App) handleGameEvent(ev *tcell.EventKey) {
	phase := a.session.Phase()

	switch ui.KeyToAction(ev.Key(), ev.Rune()) {
	case ui.ActionPause:
		switch phase {
		case match.PhasePaused:
			a.session.Resume()
		case match.PhaseEnded:
			a.openMenu()
		default:
			if a.session.Pause() {
				a.keys.Clear()
			}
		}
		return
	case ui.ActionConfirm:
		if phase == match.PhaseEnded {
			a.start(a.current)
		}
		return
	case ui.ActionContinue:
		if a.session.RequestContinue(true) {
			a.recorded = false
		}
		return
	case ui.ActionDecline:
		a.session.RequestContinue(false)
		return
	}

	a.keys.Press(ev.Key(), ev.Rune(), time.Now())
}

// start begins the match or stage described by entry
func (a *App) start(entry menuEntry) {
	a.inMenu = false
	a.recorded = false
	a.current = entry
	a.keys = ui.NewHeldKeys(entry.mode == match.ModeTwoPlayer)

	if entry.stage > 0 {
		snap, err := a.session.StartChallenge(entry.stage)
		if err != nil {
			a.log.Printf("cannot start stage %d: %v", entry.stage, err)
			a.openMenu()
			return
		}
		st, _ := a.session.Stage()
		a.snap = snap
		a.hud = ui.Hud{Title: fmt.Sprintf("Stage %d: %s", st.ID, st.Name), Goal: st.Description}
		return
	}

	a.snap = a.session.StartMatch(entry.mode, a.difficulty)
	a.hud = ui.Hud{Title: modeTitle(entry.mode, a.difficulty)}
}

func (a *App) openMenu() {
	a.inMenu = true
	a.menu = a.buildMenu()
	if a.cursor <= 0 || a.cursor >= len(a.menu) || a.menu[a.cursor].item.Header {
		a.cursor = 0
		a.moveCursor(1)
	}
}

func (a *App) moveCursor(delta int) {
	for i := a.cursor + delta; i >= 0 && i < len(a.menu); i += delta {
		if !a.menu[i].item.Header {
			a.cursor = i
			return
		}
	}
}

// buildMenu lists the free modes followed by every stage grouped by tier
func (a *App) buildMenu() []menuEntry {
	entries := []menuEntry{
		{item: ui.MenuItem{Label: "MODES", Header: true}},
		{item: ui.MenuItem{Label: "Vs CPU"}, mode: match.ModeVsAI},
		{item: ui.MenuItem{Label: "Two players", Detail: "W/S vs arrows"}, mode: match.ModeTwoPlayer},
		{item: ui.MenuItem{Label: "Endless"}, mode: match.ModeEndless},
	}

	for _, tier := range []challenge.Tier{challenge.Beginner, challenge.Intermediate, challenge.Advanced} {
		header := fmt.Sprintf("CHALLENGES: %s", tier)
		if !challenge.TierUnlocked(tier, a.completed) {
			header += " (locked)"
		}
		entries = append(entries, menuEntry{item: ui.MenuItem{Label: header, Header: true}})

		for _, st := range challenge.ByTier(tier) {
			entries = append(entries, menuEntry{
				item: ui.MenuItem{
					Label:  fmt.Sprintf("%2d. %s", st.ID, st.Name),
					Detail: fmt.Sprintf("[%s] %s", st.Difficulty, st.Description),
					Locked: !a.session.IsStageUnlocked(st.ID, a.completed),
					Done:   a.completed[st.ID],
				},
				mode:  match.ModeChallenge,
				stage: st.ID,
			})
		}
	}
	return entries
}

// menuItems renders the difficulty next to the free modes
func (a *App) menuItems() []ui.MenuItem {
	items := make([]ui.MenuItem, len(a.menu))
	for i, e := range a.menu {
		items[i] = e.item
		if e.stage == 0 && !e.item.Header && e.mode != match.ModeTwoPlayer {
			items[i].Detail = fmt.Sprintf("< %s >", a.difficulty)
		}
	}
	return items
}

// record stores the finished match and the updated progress
func (a *App) record() {
	a.recorded = true
	if a.db == nil {
		return
	}

	left, right := a.session.Scores()
	res := store.Result{
		MatchID:    a.session.ID(),
		Profile:    a.cfg.Profile,
		Mode:       a.session.Mode().String(),
		Difficulty: a.session.Difficulty().String(),
		Won:        a.session.Won(),
		Passed:     a.session.Passed(),
		LeftScore:  left,
		RightScore: right,
		Duration:   a.session.ActiveTime(),
	}
	if st, ok := a.session.Stage(); ok {
		res.Stage = st.ID
	}
	if err := a.db.RecordResult(res); err != nil {
		a.log.Printf("failed to record result: %v", err)
	}

	p := store.Progress{
		Completed:  a.completed.IDs(),
		Difficulty: a.difficulty.String(),
		Mode:       a.cfg.Mode.String(),
		Muted:      a.cfg.Mute,
	}
	if a.current.stage == 0 {
		p.Mode = a.current.mode.String()
	}
	if err := a.db.SaveProgress(a.cfg.Profile, p); err != nil {
		a.log.Printf("failed to save progress: %v", err)
	}
}

// cleanup shuts down all resources.
func (a *App) cleanup() {
	audio.Close()

	if a.screen != nil {
		a.screen.Fini()
	}

	signal.Stop(a.sigChan)
}

func modeTitle(m match.Mode, d ai.Difficulty) string {
	switch m {
	case match.ModeTwoPlayer:
		return "Two players"
	case match.ModeEndless:
		return fmt.Sprintf("Endless (%s)", d)
	}
	return fmt.Sprintf("Vs CPU (%s)", d)
}
