package clock

import (
	"sync"
	"time"
)

// Mock provides a controllable time source for testing
type Mock struct {
	mu          sync.RWMutex
	currentTime time.Time
}

// NewMock creates a mock clock starting at the given time
func NewMock(start time.Time) *Mock {
	return &Mock{currentTime: start}
}

// Now returns the current mocked time
func (m *Mock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// Set sets the current time
func (m *Mock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = t
}

// Advance moves the clock forward by d
func (m *Mock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}
