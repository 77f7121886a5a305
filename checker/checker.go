// Package checker derives expected beat times from a bar and judges a
// recorded history against them.
package checker

import (
	"time"

	"github.com/jsphweid/rhythmdex/model"
	"github.com/jsphweid/rhythmdex/util"
)

// Comparator judges a recorded history against the expected intervals.
type Comparator interface {
	Compare(expected []model.Interval, history model.BeatHistory) model.Verdict
}

// ComparatorFunc adapts a function to Comparator.
type ComparatorFunc func(expected []model.Interval, history model.BeatHistory) model.Verdict

func (f ComparatorFunc) Compare(expected []model.Interval, history model.BeatHistory) model.Verdict {
	return f(expected, history)
}

// ExpectedTimes scales bar fractions to contiguous intervals covering
// [0, barDuration]. Boundaries come from the running sum so rounding never
// leaves gaps, and the last interval always ends at barDuration.
func ExpectedTimes(durations []float64, barDuration time.Duration) []model.Interval {
	res := make([]model.Interval, 0, len(durations))
	total := util.Sum(durations)
	var cum float64
	var start time.Duration
	for i, d := range durations {
		cum += d
		end := time.Duration(cum / total * float64(barDuration))
		if i == len(durations)-1 {
			end = barDuration
		}
		res = append(res, model.Interval{Start: start, End: end})
		start = end
	}
	return res
}

// Checker compares onsets. A press may be off by Tolerance times the
// shorter of one beat and the expected note.
type Checker struct {
	Tolerance   float64
	BeatsPerBar int
}

func New(tolerance float64, beatsPerBar int) *Checker {
	return &Checker{Tolerance: tolerance, BeatsPerBar: beatsPerBar}
}

func (c *Checker) window(expected model.Interval, beatLength time.Duration) time.Duration {
	base := util.Min(beatLength, expected.Length())
	if base <= 0 {
		base = expected.Length()
	}
	return time.Duration(c.Tolerance * float64(base))
}

func (c *Checker) Compare(expected []model.Interval, history model.BeatHistory) model.Verdict {
	if len(expected) != len(history) {
		return model.Verdict{Reason: model.ReasonWrongLength}
	}
	var beatLength time.Duration
	if n := len(expected); n > 0 && c.BeatsPerBar > 0 {
		beatLength = expected[n-1].End / time.Duration(c.BeatsPerBar)
	}
	for i, exp := range expected {
		rec := history[i]
		w := c.window(exp, beatLength)
		switch {
		case rec.Press < exp.Start-w:
			return model.Fail(model.ReasonTooEarly, i)
		case rec.Press > exp.Start+w:
			return model.Fail(model.ReasonTooLate, i)
		}
		if i+1 < len(expected) && rec.Released && rec.Release > expected[i+1].Start+w {
			return model.Fail(model.ReasonHeldTooLong, i)
		}
	}
	return model.Verdict{Success: true}
}

// OnsetErrors returns the absolute press offset of every matched record.
func OnsetErrors(expected []model.Interval, history model.BeatHistory) []time.Duration {
	n := util.Min(len(expected), len(history))
	res := make([]time.Duration, 0, n)
	for i := 0; i < n; i++ {
		res = append(res, util.Abs(history[i].Press-expected[i].Start))
	}
	return res
}
