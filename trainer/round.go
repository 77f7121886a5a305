package trainer

import (
	"time"

	"github.com/google/uuid"
	"github.com/jsphweid/rhythmdex/beat"
	"github.com/jsphweid/rhythmdex/model"
)

// Round is the context of one attempt at a bar. Scheduled callbacks refer
// to it by ID only.
type Round struct {
	ID          uuid.UUID
	StartedAt   time.Time
	Bar         *model.RhythmBar
	BarDuration time.Duration
	Plan        beat.Plan
	// Beat is the displayed metronome beat.
	Beat int

	// Set when the round closes.
	Closed   bool
	Expected []model.Interval
	History  model.BeatHistory
	Verdict  model.Verdict
}

func (r *Round) Result() model.RoundResult {
	return model.RoundResult{
		ID:          r.ID.String(),
		StartedAt:   r.StartedAt,
		Bar:         *r.Bar,
		BarDuration: r.BarDuration,
		Expected:    r.Expected,
		Recorded:    r.History,
		Verdict:     r.Verdict,
	}
}
