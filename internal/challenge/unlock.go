package challenge

import "sort"

// Set is the collection of stage ids cleared at least once
type Set map[int]bool

// NewSet builds a set from ids, dropping ids that are not in the catalog
func NewSet(ids ...int) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		if _, ok := catalogByID[id]; ok {
			s[id] = true
		}
	}
	return s
}

// Add marks a stage complete. Returns true if it was new.
func (s Set) Add(id int) bool {
	if s[id] {
		return false
	}
	if _, ok := catalogByID[id]; !ok {
		return false
	}
	s[id] = true
	return true
}

// IDs returns the completed ids in ascending order
func (s Set) IDs() []int {
	ids := make([]int, 0, len(s))
	for id, done := range s {
		if done {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// IsUnlocked applies the strict tier gate: a stage is playable once every
// stage of every lower tier has been completed. Beginner is always open.
func IsUnlocked(id int, completed Set) bool {
	stage, ok := catalogByID[id]
	if !ok {
		return false
	}
	for _, other := range catalog {
		if other.Tier < stage.Tier && !completed[other.ID] {
			return false
		}
	}
	return true
}

// TierUnlocked reports whether a whole tier is open
func TierUnlocked(t Tier, completed Set) bool {
	stages := ByTier(t)
	if len(stages) == 0 {
		return false
	}
	return IsUnlocked(stages[0].ID, completed)
}
