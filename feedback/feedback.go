// Package feedback maps expected and recorded beat intervals onto two
// parallel display tracks.
package feedback

import (
	"time"

	"github.com/jsphweid/rhythmdex/model"
)

type Color string

const (
	Match    Color = "green"
	Mismatch Color = "red"
	Neutral  Color = "gray"
)

// Span is an interval in display units.
type Span struct {
	X     float64 `json:"x"`
	Width float64 `json:"width"`
}

type Segment struct {
	Span
	Color Color `json:"color"`
}

type Frame struct {
	Width    float64   `json:"width"`
	Expected []Segment `json:"expected"`
	Recorded []Segment `json:"recorded"`
}

// Empty reports whether the frame draws nothing.
func (f Frame) Empty() bool {
	return len(f.Expected) == 0 && len(f.Recorded) == 0
}

// Project scales intervals of a bar onto width display units.
func Project(intervals []model.Interval, barDuration time.Duration, width float64) []Span {
	if barDuration <= 0 || len(intervals) == 0 {
		return nil
	}
	bar := float64(barDuration)
	res := make([]Span, 0, len(intervals))
	for _, iv := range intervals {
		a := float64(iv.Start) * width / bar
		b := float64(iv.End) * width / bar
		res = append(res, Span{X: a, Width: b - a})
	}
	return res
}

// RecordedColor colors record i of the recorded track.
func RecordedColor(v model.Verdict, i int) Color {
	if v.Success {
		return Match
	}
	if v.Reason == model.ReasonWrongLength {
		return Mismatch
	}
	wrong, ok := v.Wrong()
	switch {
	case !ok:
		// failed without naming a record
		return Neutral
	case i < wrong:
		return Match
	case i == wrong:
		return Mismatch
	default:
		return Neutral
	}
}

func color(spans []Span, pick func(i int) Color) []Segment {
	res := make([]Segment, 0, len(spans))
	for i, s := range spans {
		res = append(res, Segment{Span: s, Color: pick(i)})
	}
	return res
}

// Build projects both sequences. The expected track is always neutral.
func Build(expected []model.Interval, recorded model.BeatHistory, v model.Verdict, barDuration time.Duration, width float64) Frame {
	return Frame{
		Width: width,
		Expected: color(Project(expected, barDuration, width), func(int) Color {
			return Neutral
		}),
		Recorded: color(Project(recorded.Intervals(), barDuration, width), func(i int) Color {
			return RecordedColor(v, i)
		}),
	}
}
