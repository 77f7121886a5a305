package midi

import (
	"fmt"
	"time"

	"github.com/jsphweid/rhythmdex/clock"
	"github.com/sirupsen/logrus"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

type CueOptions struct {
	Channel  uint8
	Note     uint8
	Velocity uint8
	Length   time.Duration
}

// Cue clicks the metronome on a MIDI output. Failed sends are logged and
// otherwise ignored.
type Cue struct {
	send  func(msg gomidi.Message) error
	clock clock.Clock
	opts  CueOptions
	log   logrus.FieldLogger
}

func NewCue(out drivers.Out, c clock.Clock, opts CueOptions, log logrus.FieldLogger) (*Cue, error) {
	send, err := gomidi.SendTo(out)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", out, err)
	}
	return newCue(send, c, opts, log), nil
}

func newCue(send func(msg gomidi.Message) error, c clock.Clock, opts CueOptions, log logrus.FieldLogger) *Cue {
	if opts.Velocity == 0 {
		opts.Velocity = 100
	}
	return &Cue{send: send, clock: c, opts: opts, log: log}
}

func (c *Cue) Play(delay time.Duration) {
	c.clock.AfterFunc(delay, func() {
		if err := c.send(gomidi.NoteOn(c.opts.Channel, c.opts.Note, c.opts.Velocity)); err != nil {
			c.log.WithError(err).Warn("cue note on failed")
			return
		}
		c.clock.AfterFunc(c.opts.Length, func() {
			if err := c.send(gomidi.NoteOff(c.opts.Channel, c.opts.Note)); err != nil {
				c.log.WithError(err).Warn("cue note off failed")
			}
		})
	})
}
