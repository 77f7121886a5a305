package model

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Signal is the direction of a trigger key transition. The zero value is
// Release so a fresh Gate starts out as "key up".
type Signal uint8

const (
	Release Signal = iota
	Press
)

func (s Signal) String() string {
	switch s {
	case Press:
		return "press"
	case Release:
		return "release"
	default:
		return fmt.Sprintf("signal(%d)", uint8(s))
	}
}

func (s Signal) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Signal) UnmarshalText(b []byte) error {
	switch string(b) {
	case "press", "down", "keydown":
		*s = Press
	case "release", "up", "keyup":
		*s = Release
	default:
		return fmt.Errorf("unknown signal %q", string(b))
	}
	return nil
}

// KeyEvent is one raw transition from an input source.
type KeyEvent struct {
	Key  string
	Type Signal
	At   time.Time
}

// Millis converts a duration into fractional milliseconds.
func Millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// FromMillis is the inverse of Millis, rounded to the nanosecond.
func FromMillis(ms float64) time.Duration {
	return time.Duration(math.Round(ms * float64(time.Millisecond)))
}

// Interval is a [start, end] span relative to the anchor.
// Encoded as a two element array of milliseconds.
type Interval struct {
	Start time.Duration
	End   time.Duration
}

func (i Interval) Length() time.Duration { return i.End - i.Start }

func (i Interval) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{Millis(i.Start), Millis(i.End)})
}

func (i *Interval) UnmarshalJSON(b []byte) error {
	var raw [2]float64
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	i.Start, i.End = FromMillis(raw[0]), FromMillis(raw[1])
	return nil
}

// Beat is one record of a BeatHistory. Until Released is set only Press is
// meaningful.
type Beat struct {
	Press    time.Duration
	Release  time.Duration
	Released bool
}

func (b Beat) Interval() Interval {
	return Interval{Start: b.Press, End: b.Release}
}

// MarshalJSON encodes [press] or [press, release] in milliseconds.
func (b Beat) MarshalJSON() ([]byte, error) {
	if !b.Released {
		return json.Marshal([]float64{Millis(b.Press)})
	}
	return json.Marshal([]float64{Millis(b.Press), Millis(b.Release)})
}

func (b *Beat) UnmarshalJSON(data []byte) error {
	var raw []float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch len(raw) {
	case 1:
		*b = Beat{Press: FromMillis(raw[0])}
	case 2:
		*b = Beat{Press: FromMillis(raw[0]), Release: FromMillis(raw[1]), Released: true}
	default:
		return fmt.Errorf("beat record needs 1 or 2 values, got %d", len(raw))
	}
	return nil
}

// BeatHistory holds recorded beats relative to the anchor. Only the last
// record may be unreleased.
type BeatHistory []Beat

// Intervals returns the completed records as intervals.
func (h BeatHistory) Intervals() []Interval {
	res := make([]Interval, 0, len(h))
	for _, b := range h {
		if b.Released {
			res = append(res, b.Interval())
		}
	}
	return res
}

// Pending reports whether the last record still waits for its release.
func (h BeatHistory) Pending() bool {
	return len(h) > 0 && !h[len(h)-1].Released
}
