package model

import "time"

// RoundResult is what gets persisted when a round closes.
type RoundResult struct {
	ID          string        `json:"id"`
	StartedAt   time.Time     `json:"startedAt"`
	Bar         RhythmBar     `json:"bar"`
	BarDuration time.Duration `json:"barDuration"`
	Expected    []Interval    `json:"expected"`
	Recorded    BeatHistory   `json:"recorded"`
	Verdict     Verdict       `json:"verdict"`
}
