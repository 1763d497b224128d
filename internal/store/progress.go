package store

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

const progressPrefix = "progress:"

// Progress is the persisted per-profile blob: completed stages and
// the last used preferences.
type Progress struct {
	Completed  []int  `msgpack:"completed"`
	Difficulty string `msgpack:"difficulty"`
	Mode       string `msgpack:"mode"`
	Muted      bool   `msgpack:"muted"`
}

// LoadProgress reads the progress of a profile. A profile that was
// never saved yields a zero Progress.
func (db *DB) LoadProgress(profile string) (Progress, error) {
	var p Progress
	raw, err := db.Get(progressPrefix + profile)
	if err != nil || raw == nil {
		return p, err
	}
	if err := msgpack.Unmarshal(raw, &p); err != nil {
		return Progress{}, fmt.Errorf("decode progress %q: %w", profile, err)
	}
	return p, nil
}

// SaveProgress writes the progress of a profile
func (db *DB) SaveProgress(profile string, p Progress) error {
	raw, err := msgpack.Marshal(&p)
	if err != nil {
		return fmt.Errorf("encode progress %q: %w", profile, err)
	}
	return db.Set(progressPrefix+profile, raw)
}
