package config

import (
	"errors"
	"flag"
	"fmt"

	"github.com/diegok/rallypong/internal/ai"
	"github.com/diegok/rallypong/internal/challenge"
	"github.com/diegok/rallypong/internal/match"
)

// Default values for configuration
const (
	DefaultPoints  = match.DefaultWinScore
	DefaultDBPath  = "rallypong.db"
	DefaultProfile = "default"
)

// Config holds the application configuration
type Config struct {
	Mode        match.Mode
	Difficulty  ai.Difficulty
	Stage       int // challenge stage, 0 for a regular match
	PointsToWin int
	DBPath      string
	Profile     string
	TuningPath  string
	LogPath     string
	Mute        bool
	List        bool

	// Set reports flags given explicitly, so stored preferences
	// only fill in what the command line left out.
	Set map[string]bool
}

// ParseArgs parses command line arguments and returns a Config
func ParseArgs(args []string) (*Config, error) {
	fs := flag.NewFlagSet("rallypong", flag.ContinueOnError)

	mode := fs.String("mode", "vs-ai", "game mode: vs-ai, two-player or endless")
	difficulty := fs.String("difficulty", "normal", "AI difficulty: easy, normal or hard")
	stage := fs.Int("stage", 0, "challenge stage to play (1-20)")
	points := fs.Int("points", DefaultPoints, "points to win (>=1)")
	dbPath := fs.String("db", DefaultDBPath, "progress database file")
	profile := fs.String("profile", DefaultProfile, "progress profile name")
	tuning := fs.String("tuning", "", "YAML tuning file")
	logPath := fs.String("log", "", "write logs to this file")
	mute := fs.Bool("mute", false, "disable sound")
	list := fs.Bool("list", false, "list challenge stages and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	m, ok := match.LookupMode(*mode)
	if !ok {
		return nil, fmt.Errorf("unknown mode %q", *mode)
	}

	d, ok := ai.LookupDifficulty(*difficulty)
	if !ok {
		return nil, fmt.Errorf("unknown difficulty %q", *difficulty)
	}

	// Validate stage
	if *stage != 0 {
		if _, ok := challenge.Lookup(*stage); !ok {
			return nil, fmt.Errorf("stage must be between 1 and %d, got %d", len(challenge.Catalog()), *stage)
		}
		if set["mode"] {
			return nil, errors.New("cannot specify both --stage and --mode")
		}
	}

	// Validate points
	if *points < 1 {
		return nil, fmt.Errorf("points must be at least 1, got %d", *points)
	}

	if *profile == "" {
		return nil, errors.New("profile must not be empty")
	}

	cfg := &Config{
		Mode:        m,
		Difficulty:  d,
		Stage:       *stage,
		PointsToWin: *points,
		DBPath:      *dbPath,
		Profile:     *profile,
		TuningPath:  *tuning,
		LogPath:     *logPath,
		Mute:        *mute,
		List:        *list,
		Set:         set,
	}

	return cfg, nil
}
