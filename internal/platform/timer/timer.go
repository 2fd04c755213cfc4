// Package timer abstracts wall clock and deferred callbacks so session
// expiry can be driven by a virtual clock in tests
package timer

import (
	"sync"
	"time"
)

// Task is a cancelable scheduled callback
type Task interface {
	// Stop cancels the task if it has not fired. Returns false when the
	// callback already ran or was stopped before
	Stop() bool
}

// Scheduler tells time and schedules one shot callbacks
type Scheduler interface {
	Now() time.Time
	Schedule(d time.Duration, fn func()) Task
}

// Real is the production scheduler backed by time.AfterFunc
type Real struct{}

// Now returns the wall clock time
func (Real) Now() time.Time { return time.Now() }

// Schedule runs fn after d on its own goroutine
func (Real) Schedule(d time.Duration, fn func()) Task {
	return realTask{t: time.AfterFunc(d, fn)}
}

type realTask struct{ t *time.Timer }

func (rt realTask) Stop() bool { return rt.t.Stop() }

// Manual is a virtual clock for tests. Advance moves time forward and
// fires due callbacks synchronously on the calling goroutine
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	pending []*manualTask
}

// NewManual starts a virtual clock at start
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the current virtual time
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Schedule registers fn to fire once the clock advances past d
func (m *Manual) Schedule(d time.Duration, fn func()) Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTask{clock: m, due: m.now.Add(d), fn: fn}
	m.pending = append(m.pending, t)
	return t
}

// Advance moves the clock by d, firing due tasks in due order
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	now := m.now
	var due []*manualTask
	var rest []*manualTask
	for _, t := range m.pending {
		if !t.stopped && !t.due.After(now) {
			due = append(due, t)
		} else {
			rest = append(rest, t)
		}
	}
	m.pending = rest
	m.mu.Unlock()

	// fire outside the lock, callbacks may schedule again
	for _, t := range due {
		t.fire()
	}
}

type manualTask struct {
	clock   *Manual
	due     time.Time
	fn      func()
	stopped bool
	fired   bool
	mu      sync.Mutex
}

func (t *manualTask) fire() {
	t.mu.Lock()
	if t.stopped || t.fired {
		t.mu.Unlock()
		return
	}
	t.fired = true
	fn := t.fn
	t.mu.Unlock()
	fn()
}

func (t *manualTask) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}
