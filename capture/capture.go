// Package capture turns raw trigger signals into a BeatHistory relative to
// a round's anchor and cleans the history up when the round closes.
package capture

import (
	"time"

	"github.com/jsphweid/rhythmdex/model"
	"golang.org/x/exp/slices"
)

// Outcome says what a signal did to the history.
type Outcome int

const (
	Ignored Outcome = iota
	Pressed
	Released
	// Synthesized means a release arrived without a press and one was
	// added at the anchor.
	Synthesized
	// Discarded means an early press and release before the anchor wiped
	// the history.
	Discarded
	// Frozen means the round already closed.
	Frozen
)

func (o Outcome) String() string {
	switch o {
	case Pressed:
		return "pressed"
	case Released:
		return "released"
	case Synthesized:
		return "synthesized"
	case Discarded:
		return "discarded"
	case Frozen:
		return "frozen"
	default:
		return "ignored"
	}
}

// Capture owns the history for one running phase. The gate outlives rounds.
type Capture struct {
	Gate

	anchor  time.Time
	history model.BeatHistory
	frozen  bool
}

func New() *Capture {
	return &Capture{frozen: true}
}

// Begin clears the history and starts measuring against anchor.
func (c *Capture) Begin(anchor time.Time) {
	c.anchor = anchor
	c.history = nil
	c.frozen = false
}

func (c *Capture) Anchor() time.Time { return c.anchor }

// Relative is at measured against the anchor.
func (c *Capture) Relative(at time.Time) time.Duration {
	return at.Sub(c.anchor)
}

// Signal applies one running-phase signal observed at time at.
func (c *Capture) Signal(s model.Signal, at time.Time) Outcome {
	if c.frozen {
		return Frozen
	}
	if !c.Pass(s) {
		return Ignored
	}
	return Record(&c.history, s, c.Relative(at))
}

// Record applies the history rules for a signal that already passed the gate.
func Record(h *model.BeatHistory, s model.Signal, rel time.Duration) Outcome {
	if s == model.Press {
		*h = append(*h, model.Beat{Press: rel})
		return Pressed
	}
	if rel < 0 {
		*h = nil
		return Discarded
	}
	outcome := Released
	if len(*h) == 0 {
		*h = append(*h, model.Beat{Press: 0})
		outcome = Synthesized
	}
	last := &(*h)[len(*h)-1]
	last.Release = rel
	last.Released = true
	return outcome
}

// History returns a copy of the records so far.
func (c *Capture) History() model.BeatHistory {
	return slices.Clone(c.history)
}

// Close freezes the history, normalizes it against the close time and
// returns it. Later signals report Frozen.
func (c *Capture) Close(at time.Time) model.BeatHistory {
	if !c.frozen {
		c.frozen = true
		Normalize(c.history, c.Relative(at))
	}
	return slices.Clone(c.history)
}

func (c *Capture) Closed() bool { return c.frozen }
