// Package cue holds the audible metronome services. Every Player is fire and
// forget: nothing about capture depends on a click actually sounding.
package cue

import (
	"io"
	"sync"
	"time"

	"github.com/jsphweid/rhythmdex/clock"
	"github.com/sirupsen/logrus"
)

type Player interface {
	Play(delay time.Duration)
}

// PlayerFunc adapts a function to Player.
type PlayerFunc func(delay time.Duration)

func (f PlayerFunc) Play(delay time.Duration) { f(delay) }

type Silent struct{}

func (Silent) Play(time.Duration) {}

// Bell writes the terminal bell character once the delay has passed.
type Bell struct {
	Clock clock.Clock
	Out   io.Writer

	mu sync.Mutex
}

func NewBell(c clock.Clock, out io.Writer) *Bell {
	return &Bell{Clock: c, Out: out}
}

func (b *Bell) Play(delay time.Duration) {
	b.Clock.AfterFunc(delay, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.Out.Write([]byte{'\a'})
	})
}

// Logging traces every request before handing it on.
type Logging struct {
	Next Player
	Log  logrus.FieldLogger
}

func (l Logging) Play(delay time.Duration) {
	l.Log.WithField("delay", delay).Debug("cue requested")
	if l.Next != nil {
		l.Next.Play(delay)
	}
}
