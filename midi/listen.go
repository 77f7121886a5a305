package midi

import (
	"fmt"

	"github.com/jsphweid/rhythmdex/model"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// NoteHandler maps note start and end of trigger to press and release.
// Every other message is ignored.
func NoteHandler(trigger uint8, fn func(model.Signal)) func(msg gomidi.Message, timestampms int32) {
	return func(msg gomidi.Message, timestampms int32) {
		var ch, key, vel uint8
		switch {
		case msg.GetNoteStart(&ch, &key, &vel):
			if key == trigger {
				fn(model.Press)
			}
		case msg.GetNoteEnd(&ch, &key):
			if key == trigger {
				fn(model.Release)
			}
		default:
			// ignore
		}
	}
}

// Listen starts delivering trigger signals from in. Call stop when done.
func Listen(in drivers.In, trigger uint8, fn func(model.Signal)) (stop func(), err error) {
	stop, err = gomidi.ListenTo(in, NoteHandler(trigger, fn))
	if err != nil {
		return nil, fmt.Errorf("listening to %s: %w", in, err)
	}
	return stop, nil
}
