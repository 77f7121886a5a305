package constants

import (
	"os"
	"time"
)

func GetConfigPath() string {
	path := os.Getenv("RHYTHM_CONFIG")
	if path != "" {
		return path
	}
	return "./rhythmdex.yaml"
}

func GetExportDir() string {
	path := os.Getenv("RHYTHM_EXPORT_PATH")
	if path != "" {
		return path
	}
	return "./out"
}

// CountInBeats is the number of metronome beats before the playable bar.
// The bar itself is treated as the same number of slots.
const CountInBeats = 4

// SchedulingBuffer gives the scheduler a bit of time before the first cue.
const SchedulingBuffer = 100 * time.Millisecond

// CueDuration is how long one metronome click sounds.
const CueDuration = 180 * time.Millisecond

// OnsetFraction is where within a click a listener perceives the beat.
// Not known exactly, a third of the click was chosen by ear.
const OnsetFraction = 0.33

const DefaultBarDuration = 2000 * time.Millisecond

const FeedbackWidth = 500

// FrameInterval is the display refresh period renders are coalesced to.
const FrameInterval = 16 * time.Millisecond

const TriggerKey = "space"

// NoBeat is the displayed metronome beat when none is shown.
const NoBeat = -1
