package beat

import (
	"time"

	"github.com/google/uuid"
	"github.com/jsphweid/rhythmdex/clock"
	"github.com/jsphweid/rhythmdex/constants"
	"github.com/jsphweid/rhythmdex/cue"
)

// Timing holds the scheduling constants of a round.
type Timing struct {
	// Buffer is the delay before the first cue, absorbing start-up latency.
	Buffer time.Duration
	// CueDuration is how long one metronome click sounds.
	CueDuration time.Duration
	// OnsetFraction is where inside a click the beat is perceived.
	OnsetFraction float64
	// CountIn is the length of the count-in in beats. The bar gets the same
	// number of slots.
	CountIn int
}

func DefaultTiming() Timing {
	return Timing{
		Buffer:        constants.SchedulingBuffer,
		CueDuration:   constants.CueDuration,
		OnsetFraction: constants.OnsetFraction,
		CountIn:       constants.CountInBeats,
	}
}

// Slots is the number of scheduled beat slots, count-in plus bar.
func (t Timing) Slots() int { return 2 * t.CountIn }

// Plan is the set of absolute anchors computed for one round.
type Plan struct {
	Round      uuid.UUID
	Start      time.Time
	Anchor     time.Time
	BeatLength time.Duration
}

// BeatTime is the absolute fire time of slot i.
func (p Plan) BeatTime(i int) time.Time {
	return p.Start.Add(time.Duration(i) * p.BeatLength)
}

type Scheduler struct {
	Timing Timing
	clock  clock.Clock
	cue    cue.Player

	// OnBeat receives the beat to display: the count-in index or
	// constants.NoBeat.
	OnBeat func(round uuid.UUID, beat int)
	// OnClose fires exactly once per round, after the last slot.
	OnClose func(round uuid.UUID)
}

func NewScheduler(c clock.Clock, p cue.Player) *Scheduler {
	if p == nil {
		p = cue.Silent{}
	}
	return &Scheduler{
		Timing: DefaultTiming(),
		clock:  c,
		cue:    p,
	}
}

// Anchor computes the perceived onset of beat one of the bar for a round
// whose first cue fires at start.
func (t Timing) Anchor(start time.Time, beatLength time.Duration) time.Time {
	onset := time.Duration(float64(t.CueDuration) * t.OnsetFraction)
	return start.Add(time.Duration(t.CountIn)*beatLength + onset)
}

// Start computes the round's anchors relative to now and schedules every
// callback of the round. Callbacks carry the round id; filtering stale ones
// is up to the receiver.
func (s *Scheduler) Start(round uuid.UUID, barDuration time.Duration) Plan {
	if barDuration <= 0 || s.Timing.CountIn <= 0 {
		return Plan{Round: round}
	}
	now := s.clock.Now()
	beatLength := barDuration / time.Duration(s.Timing.CountIn)
	start := now.Add(s.Timing.Buffer)
	plan := Plan{
		Round:      round,
		Start:      start,
		Anchor:     s.Timing.Anchor(start, beatLength),
		BeatLength: beatLength,
	}

	slots := s.Timing.Slots()
	for i := 0; i <= slots; i++ {
		delay := plan.BeatTime(i).Sub(now)
		if i < slots {
			s.cue.Play(delay)
		}
		s.clock.AfterFunc(delay, func() { s.fire(round, i) })
	}
	return plan
}

func (s *Scheduler) fire(round uuid.UUID, i int) {
	if s.OnBeat != nil {
		s.OnBeat(round, s.Timing.DisplayedBeat(i))
	}
	if i == s.Timing.Slots() && s.OnClose != nil {
		s.OnClose(round)
	}
}

// DisplayedBeat maps slot i to the visible metronome beat.
func (t Timing) DisplayedBeat(i int) int {
	if i < t.CountIn {
		return i % t.CountIn
	}
	return constants.NoBeat
}
