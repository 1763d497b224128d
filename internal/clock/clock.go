package clock

import (
	"sync"
	"time"
)

// Clock is the time source a match samples frame deltas from
type Clock interface {
	Now() time.Time
}

// System reads the monotonic wall clock
type System struct{}

// Now returns time.Now
func (System) Now() time.Time {
	return time.Now()
}

// Mock is a manually driven clock for tests
type Mock struct {
	mu  sync.RWMutex
	now time.Time
}

// NewMock creates a mock clock stopped at start
func NewMock(start time.Time) *Mock {
	return &Mock{now: start}
}

// Now returns the current mocked time
func (m *Mock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Set jumps to t
func (m *Mock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// Advance moves the clock forward by d
func (m *Mock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}
