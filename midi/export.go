package midi

import (
	"fmt"
	"io"
	"math"
	"sort"
	"time"

	"github.com/jsphweid/rhythmdex/model"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	Resolution   = smf.MetricTicks(960)
	ExpectedNote = 60
	RecordedNote = 62
)

type timedMsg struct {
	tick uint32
	off  bool
	msg  gomidi.Message
}

func toTicks(d, bar time.Duration) uint32 {
	if d < 0 {
		d = 0
	}
	return uint32(math.Round(float64(d) / float64(bar) * 4 * float64(Resolution)))
}

func noteTrack(intervals []model.Interval, bar time.Duration, note uint8) smf.Track {
	var msgs []timedMsg
	for _, iv := range intervals {
		msgs = append(msgs,
			timedMsg{tick: toTicks(iv.Start, bar), msg: gomidi.NoteOn(0, note, 100)},
			timedMsg{tick: toTicks(iv.End, bar), off: true, msg: gomidi.NoteOff(0, note)},
		)
	}
	// note off first when two events share a tick
	sort.SliceStable(msgs, func(i, j int) bool {
		if msgs[i].tick != msgs[j].tick {
			return msgs[i].tick < msgs[j].tick
		}
		return msgs[i].off && !msgs[j].off
	})

	var tr smf.Track
	var last uint32
	for _, m := range msgs {
		tr.Add(m.tick-last, m.msg)
		last = m.tick
	}
	tr.Close(0)
	return tr
}

// TempoFor is the tempo at which one 4/4 bar lasts bar.
func TempoFor(bar time.Duration) float64 {
	return 4 * float64(time.Minute) / float64(bar)
}

// WritePerformance writes a round as a standard MIDI file: a tempo track,
// the expected rhythm and the recorded one.
func WritePerformance(w io.Writer, r model.RoundResult) error {
	if r.BarDuration <= 0 {
		return fmt.Errorf("round %s has no bar duration", r.ID)
	}
	s := smf.New()
	s.TimeFormat = Resolution

	var tempo smf.Track
	tempo.Add(0, smf.MetaMeter(4, 4))
	tempo.Add(0, smf.MetaTempo(TempoFor(r.BarDuration)))
	tempo.Close(0)

	tracks := []smf.Track{
		tempo,
		noteTrack(r.Expected, r.BarDuration, ExpectedNote),
		noteTrack(r.Recorded.Intervals(), r.BarDuration, RecordedNote),
	}
	for _, tr := range tracks {
		if err := s.Add(tr); err != nil {
			return fmt.Errorf("adding track: %w", err)
		}
	}
	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("writing smf: %w", err)
	}
	return nil
}
