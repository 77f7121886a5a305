// Package bar produces the rhythmic bars a learner is asked to play.
package bar

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/jsphweid/rhythmdex/model"
	"github.com/jsphweid/rhythmdex/util"
	"gitlab.com/gomidi/midi/v2/smf"
)

const eps = 1e-9

var ErrNoNotes = errors.New("no notes in first bar")

var keys = map[float64]string{
	1:      "w",
	0.75:   "hd",
	0.5:    "h",
	0.375:  "qd",
	0.25:   "q",
	0.125:  "8",
	0.0625: "16",
}

// KeyFor is the display key of a bar fraction.
func KeyFor(d float64) string {
	for v, k := range keys {
		if util.NearlyEqual(v, d, 1e-6) {
			return k
		}
	}
	return fmt.Sprintf("%.3f", d)
}

func DefaultSettings() model.BarSettings {
	return model.BarSettings{Values: []float64{0.5, 0.25, 0.125}}
}

// Generator builds random bars. It is not safe for concurrent use.
type Generator struct {
	rnd *rand.Rand
}

// NewGenerator seeds from the clock when seed is zero.
func NewGenerator(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

func (g *Generator) Empty() *model.RhythmBar { return Empty() }

// Generate fills one bar with note values picked from the settings. If no
// allowed value fits the remainder, the remainder becomes the last note.
func (g *Generator) Generate(settings model.BarSettings) *model.RhythmBar {
	values := settings.Values
	if len(values) == 0 {
		values = DefaultSettings().Values
	}
	res := &model.RhythmBar{}
	remaining := 1.0
	for remaining > eps {
		var fits []float64
		for _, v := range values {
			if v > eps && v <= remaining+eps {
				fits = append(fits, v)
			}
		}
		d := remaining
		if len(fits) > 0 {
			d = fits[g.rnd.Intn(len(fits))]
		}
		res.Durations = append(res.Durations, d)
		res.Keys = append(res.Keys, KeyFor(d))
		remaining -= d
	}
	return res
}

// Empty is the placeholder shown before the first round.
func Empty() *model.RhythmBar {
	return &model.RhythmBar{}
}

// FromSMF reads the rhythm of the first 4/4 bar of a MIDI file. Each note
// lasts until the next onset or the end of the bar.
func FromSMF(s *smf.SMF) (*model.RhythmBar, error) {
	mt, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, errors.New("only metric time formats are supported")
	}
	barTicks := 4 * int64(mt)

	seen := make(map[int64]bool)
	var onsets []int64
	for _, track := range s.Tracks {
		var absTicks int64
		for _, event := range track {
			absTicks += int64(event.Delta)
			if absTicks >= barTicks {
				break
			}
			var channel, key, velocity uint8
			if event.Message.GetNoteOn(&channel, &key, &velocity) && velocity > 0 && !seen[absTicks] {
				seen[absTicks] = true
				onsets = append(onsets, absTicks)
			}
		}
	}
	if len(onsets) == 0 {
		return nil, ErrNoNotes
	}
	sort.Slice(onsets, func(i, j int) bool { return onsets[i] < onsets[j] })
	if onsets[0] != 0 {
		return nil, fmt.Errorf("bar must start with a note, first onset at tick %d", onsets[0])
	}

	res := &model.RhythmBar{}
	for i, on := range onsets {
		next := barTicks
		if i+1 < len(onsets) {
			next = onsets[i+1]
		}
		d := float64(next-on) / float64(barTicks)
		res.Durations = append(res.Durations, d)
		res.Keys = append(res.Keys, KeyFor(d))
	}
	return res, nil
}
