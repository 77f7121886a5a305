// Package render is the display side: it coalesces trainer state changes
// into frames and hands them to whoever draws.
package render

import (
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/rhythmdex/feedback"
	"github.com/jsphweid/rhythmdex/model"
	"github.com/jsphweid/rhythmdex/trainer"
)

// Event is one refresh of the display.
type Event struct {
	Snapshot trainer.Snapshot `json:"snapshot"`
	// Frame is nil when nothing is drawn, and empty when the canvas is
	// cleared.
	Frame *feedback.Frame `json:"frame,omitempty"`
}

// FrameFor builds the feedback drawing for a snapshot: nothing while
// welcoming, a cleared canvas while running, both tracks on feedback.
func FrameFor(s trainer.Snapshot, width float64) *feedback.Frame {
	switch s.Phase {
	case model.PhaseRunning:
		return &feedback.Frame{Width: width}
	case model.PhaseFeedback:
		f := feedback.Build(s.Expected, s.History, s.Verdict, model.FromMillis(s.BarDurationMs), width)
		return &f
	default:
		return nil
	}
}

// Renderer collapses bursts of Invalidate calls into one AfterRender call
// with the latest snapshot.
type Renderer struct {
	width     float64
	debounced func(f func())
	after     func(Event)

	mu     sync.Mutex
	latest trainer.Snapshot
}

func NewRenderer(interval time.Duration, width float64, afterRender func(Event)) *Renderer {
	return &Renderer{
		width:     width,
		debounced: debounce.New(interval),
		after:     afterRender,
	}
}

func (r *Renderer) Invalidate(s trainer.Snapshot) {
	r.mu.Lock()
	r.latest = s
	r.mu.Unlock()
	r.debounced(r.flush)
}

func (r *Renderer) flush() {
	r.mu.Lock()
	s := r.latest
	r.mu.Unlock()
	r.after(Event{Snapshot: s, Frame: FrameFor(s, r.width)})
}
