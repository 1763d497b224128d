package store

import (
	"fmt"
	"time"
)

// Result is one finished match
type Result struct {
	MatchID    string
	Profile    string
	Mode       string
	Difficulty string
	Stage      int
	Won        bool
	Passed     bool
	LeftScore  int
	RightScore int
	Duration   time.Duration
	CreatedAt  time.Time
}

// RecordResult stores a finished match. Recording the same match id
// again replaces the earlier row, which happens after a revive.
func (db *DB) RecordResult(r Result) error {
	_, err := db.conn.Exec(
		`INSERT OR REPLACE INTO results
		(match_id, profile, mode, difficulty, stage, won, passed, left_score, right_score, duration)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.MatchID, r.Profile, r.Mode, r.Difficulty, r.Stage,
		boolToInt(r.Won), boolToInt(r.Passed), r.LeftScore, r.RightScore, r.Duration.Seconds(),
	)
	if err != nil {
		return fmt.Errorf("record result %s: %w", r.MatchID, err)
	}
	db.log.Printf("[DB] result %s: %s stage=%d %d-%d won=%v passed=%v",
		r.MatchID, r.Mode, r.Stage, r.LeftScore, r.RightScore, r.Won, r.Passed)
	return nil
}

// RecentResults returns up to limit results for a profile, newest first
func (db *DB) RecentResults(profile string, limit int) ([]Result, error) {
	rows, err := db.conn.Query(
		`SELECT match_id, profile, mode, difficulty, stage, won, passed, left_score, right_score, duration, created_at
		FROM results WHERE profile = ? ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		profile, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var r Result
		var won, passed int
		var secs float64
		if err := rows.Scan(&r.MatchID, &r.Profile, &r.Mode, &r.Difficulty, &r.Stage,
			&won, &passed, &r.LeftScore, &r.RightScore, &secs, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		r.Won = won != 0
		r.Passed = passed != 0
		r.Duration = time.Duration(secs * float64(time.Second))
		out = append(out, r)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
