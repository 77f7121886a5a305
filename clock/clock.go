// Package clock is the monotonic time source all timestamps and delays are
// taken from.
package clock

import (
	"sort"
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
	// AfterFunc calls f once d has elapsed. There is no way to cancel.
	AfterFunc(d time.Duration, f func())
}

// Real is backed by the runtime's monotonic clock. Callbacks run on their
// own goroutine.
type Real struct{}

func (Real) Now() time.Time { return time.Now() }

func (Real) AfterFunc(d time.Duration, f func()) { time.AfterFunc(d, f) }

type pending struct {
	at  time.Time
	seq int
	f   func()
}

// Manual only moves when told to. Due callbacks run synchronously inside
// Advance or Set, in time order, with Now returning their fire time.
type Manual struct {
	mu     sync.Mutex
	now    time.Time
	seq    int
	timers []pending
}

func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) AfterFunc(d time.Duration, f func()) {
	if d < 0 {
		d = 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	m.timers = append(m.timers, pending{at: m.now.Add(d), seq: m.seq, f: f})
}

// Advance moves the clock forward by d.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()
	m.Set(target)
}

// Set moves the clock to t, firing everything due on the way. Callbacks may
// schedule further callbacks; those fire too if they are due by t.
func (m *Manual) Set(t time.Time) {
	for {
		m.mu.Lock()
		sort.Slice(m.timers, func(i, j int) bool {
			if !m.timers[i].at.Equal(m.timers[j].at) {
				return m.timers[i].at.Before(m.timers[j].at)
			}
			return m.timers[i].seq < m.timers[j].seq
		})
		if len(m.timers) == 0 || m.timers[0].at.After(t) {
			if t.After(m.now) {
				m.now = t
			}
			m.mu.Unlock()
			return
		}
		next := m.timers[0]
		m.timers = m.timers[1:]
		if next.at.After(m.now) {
			m.now = next.at
		}
		m.mu.Unlock()
		next.f()
	}
}

// Pending is the number of callbacks not yet fired.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}
