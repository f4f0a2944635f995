package widget

import (
	"sync"
	"time"
)

// Scheduler runs f once after d
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

// TimerScheduler is backed by time.AfterFunc
type TimerScheduler struct{}

func (TimerScheduler) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// ManualScheduler queues callbacks until Fire is called.
// Used to drive the reveal sequence in tests without sleeping.
type ManualScheduler struct {
	mu      sync.Mutex
	pending []func()
}

func (m *ManualScheduler) AfterFunc(_ time.Duration, f func()) {
	m.mu.Lock()
	m.pending = append(m.pending, f)
	m.mu.Unlock()
}

// Pending returns the number of queued callbacks
func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// Fire runs every queued callback in order and clears the queue
func (m *ManualScheduler) Fire() {
	m.mu.Lock()
	queued := m.pending
	m.pending = nil
	m.mu.Unlock()

	for _, f := range queued {
		f()
	}
}
