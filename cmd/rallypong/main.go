package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/diegok/rallypong/internal/ai"
	"github.com/diegok/rallypong/internal/app"
	"github.com/diegok/rallypong/internal/challenge"
	"github.com/diegok/rallypong/internal/config"
	"github.com/diegok/rallypong/internal/match"
	"github.com/diegok/rallypong/internal/store"
)

func main() {
	cfg, err := config.ParseArgs(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage()
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		printUsage()
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	// The terminal belongs to the game, so logs go to a file or nowhere
	logOut := io.Discard
	if cfg.LogPath != "" {
		f, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := log.New(logOut, "", log.LstdFlags)

	db, err := store.Open(cfg.DBPath, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	progress, err := db.LoadProgress(cfg.Profile)
	if err != nil {
		logger.Printf("ignoring stored progress: %v", err)
	}
	applyPreferences(cfg, progress)
	completed := challenge.NewSet(progress.Completed...)

	if cfg.List {
		return listStages(os.Stdout, db, cfg.Profile, completed)
	}

	if cfg.Stage > 0 && !challenge.IsUnlocked(cfg.Stage, completed) {
		st, _ := challenge.Lookup(cfg.Stage)
		return fmt.Errorf("stage %d is locked: complete every %s stage first", cfg.Stage, st.Tier-1)
	}

	tuning := config.DefaultTuning()
	if cfg.TuningPath != "" {
		if tuning, err = config.LoadTuning(cfg.TuningPath); err != nil {
			return err
		}
	}

	opts := match.DefaultOptions()
	opts.Logger = logger
	opts.Completed = completed
	tuning.Apply(&opts)
	if cfg.TuningPath == "" || cfg.Set["points"] {
		opts.WinScore = cfg.PointsToWin
	}

	application := app.NewApp(cfg, app.Deps{
		Session:   match.New(opts),
		DB:        db,
		Completed: completed,
		Logger:    logger,
	})
	return application.Run()
}

// applyPreferences fills in what the command line left out from the stored profile
func applyPreferences(cfg *config.Config, p store.Progress) {
	if !cfg.Set["difficulty"] {
		if d, ok := ai.LookupDifficulty(p.Difficulty); ok {
			cfg.Difficulty = d
		}
	}
	if !cfg.Set["mode"] {
		if m, ok := match.LookupMode(p.Mode); ok {
			cfg.Mode = m
		}
	}
	if !cfg.Set["mute"] {
		cfg.Mute = p.Muted
	}
}

func listStages(w io.Writer, db *store.DB, profile string, completed challenge.Set) error {
	fmt.Fprintf(w, "Challenge stages for %q (%d/%d complete)\n", profile, len(completed), len(challenge.Catalog()))
	for _, st := range challenge.Catalog() {
		status := "      "
		switch {
		case completed[st.ID]:
			status = "[done]"
		case !challenge.IsUnlocked(st.ID, completed):
			status = "[lock]"
		}
		fmt.Fprintf(w, "  %s %2d. %-22s %-12s %-6s %s\n", status, st.ID, st.Name, st.Tier, st.Difficulty, st.Description)
	}

	results, err := db.RecentResults(profile, 5)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return nil
	}
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Recent matches:")
	for _, r := range results {
		outcome := "lost"
		if r.Won || r.Passed {
			outcome = "won"
		}
		what := r.Mode
		if r.Stage > 0 {
			what = fmt.Sprintf("stage %d", r.Stage)
		}
		fmt.Fprintf(w, "  %s  %-10s %-6s %2d - %-2d %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), what, r.Difficulty, r.LeftScore, r.RightScore, outcome)
	}
	return nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  rallypong [options]               Open the menu")
	fmt.Fprintln(os.Stderr, "  rallypong --mode <mode> [options] Start a match right away")
	fmt.Fprintln(os.Stderr, "  rallypong --stage <n> [options]   Play a challenge stage")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Options:")
	fmt.Fprintln(os.Stderr, "  --mode <mode>          vs-ai, two-player or endless")
	fmt.Fprintln(os.Stderr, "  --difficulty <level>   easy, normal or hard (default: normal)")
	fmt.Fprintf(os.Stderr, "  --points <n>           Points to win (default: %d)\n", config.DefaultPoints)
	fmt.Fprintf(os.Stderr, "  --db <file>            Progress database (default: %s)\n", config.DefaultDBPath)
	fmt.Fprintf(os.Stderr, "  --profile <name>       Progress profile (default: %s)\n", config.DefaultProfile)
	fmt.Fprintln(os.Stderr, "  --tuning <file>        YAML physics and AI tuning")
	fmt.Fprintln(os.Stderr, "  --log <file>           Write logs to a file")
	fmt.Fprintln(os.Stderr, "  --mute                 Disable sound")
	fmt.Fprintln(os.Stderr, "  --list                 List stages and recent matches")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Controls:")
	fmt.Fprintln(os.Stderr, "  W/S or arrows move, mouse drags the left paddle, two players use W/S and arrows")
	fmt.Fprintln(os.Stderr, "  ESC or p pause, c continue, n give up, ENTER replay, q quit")
}
