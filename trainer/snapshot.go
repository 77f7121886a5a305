package trainer

import (
	"github.com/jsphweid/rhythmdex/constants"
	"github.com/jsphweid/rhythmdex/model"
	"golang.org/x/exp/slices"
)

// Snapshot is a copy of everything a display needs.
type Snapshot struct {
	Phase         model.Phase       `json:"phase"`
	Round         string            `json:"round,omitempty"`
	Beat          int               `json:"beat"`
	Bar           model.RhythmBar   `json:"bar"`
	BarDurationMs float64           `json:"barDurationMs"`
	Verdict       model.Verdict     `json:"verdict"`
	Expected      []model.Interval  `json:"expected,omitempty"`
	History       model.BeatHistory `json:"history,omitempty"`
	Message       string            `json:"message"`
	Hint          string            `json:"hint,omitempty"`
}

func (t *Trainer) Snapshot() Snapshot {
	s := Snapshot{
		Phase:         t.phase,
		Beat:          constants.NoBeat,
		Bar:           *t.bar,
		BarDurationMs: model.Millis(t.opts.BarDuration),
		Verdict:       t.verdict,
	}
	if r := t.round; r != nil {
		s.Round = r.ID.String()
		s.Beat = r.Beat
		s.BarDurationMs = model.Millis(r.BarDuration)
		if r.Closed {
			s.Expected = slices.Clone(r.Expected)
			s.History = slices.Clone(r.History)
		}
	}

	switch t.phase {
	case model.PhaseWelcome:
		s.Message = "Welcome to this rhythm training. Hit " + t.opts.TriggerKey + " to start."
	case model.PhaseRunning:
		s.Message = "Play the bar after the count-in."
	case model.PhaseFeedback:
		if t.verdict.Success {
			s.Message = "Yay! You nailed the rhythm!"
			s.Hint = "Hit " + t.opts.TriggerKey + " to try a new rhythm."
		} else {
			s.Message = "Oh no, you didn't get the rhythm right :("
			s.Hint = "Hit " + t.opts.TriggerKey + " to try again."
		}
	}
	return s
}
