package model

// RhythmBar is one generated bar. Durations are fractions of a bar and sum
// to 1; Keys is display data for the stave and is not interpreted here.
type RhythmBar struct {
	Durations []float64 `json:"durations"`
	Keys      []string  `json:"keys"`
}

// BarSettings steers bar generation.
type BarSettings struct {
	// Allowed note values as fractions of a bar, e.g. 0.25 for a quarter.
	Values []float64 `json:"values" yaml:"values"`
}
