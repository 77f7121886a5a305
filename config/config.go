// Package config loads settings from an optional .env file, a YAML file and
// RHYTHM_* environment variables, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/jsphweid/rhythmdex/beat"
	"github.com/jsphweid/rhythmdex/constants"
	"github.com/jsphweid/rhythmdex/db"
	"github.com/jsphweid/rhythmdex/midi"
	"github.com/jsphweid/rhythmdex/model"
	"github.com/jsphweid/rhythmdex/trainer"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid config")

type Timing struct {
	BufferMs      float64 `yaml:"buffer_ms"`
	CueDurationMs float64 `yaml:"cue_duration_ms"`
	OnsetFraction float64 `yaml:"onset_fraction"`
}

type Tolerance struct {
	// OnsetFraction is the allowed onset error as a fraction of a beat.
	OnsetFraction float64 `yaml:"onset_fraction"`
}

type Store struct {
	Driver   string `yaml:"driver"`
	Endpoint string `yaml:"endpoint"`
	Region   string `yaml:"region"`
	Table    string `yaml:"table"`
}

type MIDI struct {
	In          string `yaml:"in"`
	Out         string `yaml:"out"`
	TriggerNote uint8  `yaml:"trigger_note"`
	CueNote     uint8  `yaml:"cue_note"`
	Channel     uint8  `yaml:"channel"`
}

type Config struct {
	BarDurationMs float64   `yaml:"bar_duration_ms"`
	TriggerKey    string    `yaml:"trigger_key"`
	NoteValues    []float64 `yaml:"note_values"`
	Timing        Timing    `yaml:"timing"`
	FeedbackWidth float64   `yaml:"feedback_width"`
	Tolerance     Tolerance `yaml:"tolerance"`
	Listen        string    `yaml:"listen"`
	LogLevel      string    `yaml:"log_level"`
	Store         Store     `yaml:"store"`
	MIDI          MIDI      `yaml:"midi"`
	Seed          int64     `yaml:"seed"`
}

func Default() Config {
	return Config{
		BarDurationMs: model.Millis(constants.DefaultBarDuration),
		TriggerKey:    constants.TriggerKey,
		NoteValues:    []float64{0.5, 0.25, 0.125},
		Timing: Timing{
			BufferMs:      model.Millis(constants.SchedulingBuffer),
			CueDurationMs: model.Millis(constants.CueDuration),
			OnsetFraction: constants.OnsetFraction,
		},
		FeedbackWidth: constants.FeedbackWidth,
		Tolerance:     Tolerance{OnsetFraction: 0.1},
		Listen:        ":8080",
		LogLevel:      "info",
		Store:         Store{Driver: "memory"},
		MIDI:          MIDI{TriggerNote: 60, CueNote: 76, Channel: 9},
	}
}

// Load reads path on top of the defaults. A missing file is fine, so is an
// empty path.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	c := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("reading %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &c); err != nil {
				return Config{}, fmt.Errorf("parsing %s: %w", path, err)
			}
		}
	}

	if err := c.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"RHYTHM_LISTEN":          &c.Listen,
		"RHYTHM_LOG_LEVEL":       &c.LogLevel,
		"RHYTHM_STORE":           &c.Store.Driver,
		"RHYTHM_DYNAMO_ENDPOINT": &c.Store.Endpoint,
		"RHYTHM_MIDI_IN":         &c.MIDI.In,
		"RHYTHM_MIDI_OUT":        &c.MIDI.Out,
	}
	for k, dst := range strs {
		if v, ok := os.LookupEnv(k); ok {
			*dst = v
		}
	}
	if v, ok := os.LookupEnv("RHYTHM_BAR_DURATION_MS"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: RHYTHM_BAR_DURATION_MS=%q", ErrInvalid, v)
		}
		c.BarDurationMs = f
	}
	return nil
}

func (c Config) Validate() error {
	switch {
	case c.BarDurationMs <= 0:
		return fmt.Errorf("%w: bar_duration_ms must be positive", ErrInvalid)
	case c.Timing.OnsetFraction <= 0 || c.Timing.OnsetFraction >= 1:
		return fmt.Errorf("%w: timing.onset_fraction must be between 0 and 1", ErrInvalid)
	case c.Timing.BufferMs < 0 || c.Timing.CueDurationMs < 0:
		return fmt.Errorf("%w: timing values must not be negative", ErrInvalid)
	case c.FeedbackWidth <= 0:
		return fmt.Errorf("%w: feedback_width must be positive", ErrInvalid)
	case c.Tolerance.OnsetFraction < 0:
		return fmt.Errorf("%w: tolerance.onset_fraction must not be negative", ErrInvalid)
	case c.TriggerKey == "":
		return fmt.Errorf("%w: trigger_key is empty", ErrInvalid)
	case c.MIDI.TriggerNote > 127 || c.MIDI.CueNote > 127 || c.MIDI.Channel > 15:
		return fmt.Errorf("%w: midi values out of range", ErrInvalid)
	}
	for _, v := range c.NoteValues {
		if v <= 0 || v > 1 {
			return fmt.Errorf("%w: note value %v", ErrInvalid, v)
		}
	}
	switch c.Store.Driver {
	case "", "memory", "dynamodb":
	default:
		return fmt.Errorf("%w: unknown store driver %q", ErrInvalid, c.Store.Driver)
	}
	return nil
}

func (c Config) BarDuration() time.Duration { return model.FromMillis(c.BarDurationMs) }

func (c Config) BeatTiming() beat.Timing {
	return beat.Timing{
		Buffer:        model.FromMillis(c.Timing.BufferMs),
		CueDuration:   model.FromMillis(c.Timing.CueDurationMs),
		OnsetFraction: c.Timing.OnsetFraction,
		CountIn:       constants.CountInBeats,
	}
}

func (c Config) TrainerOptions() trainer.Options {
	return trainer.Options{
		BarDuration: c.BarDuration(),
		TriggerKey:  c.TriggerKey,
		Settings:    model.BarSettings{Values: c.NoteValues},
		Timing:      c.BeatTiming(),
	}
}

func (c Config) StoreOptions() db.Options {
	return db.Options{
		Driver:   c.Store.Driver,
		Endpoint: c.Store.Endpoint,
		Region:   c.Store.Region,
		Table:    c.Store.Table,
	}
}

func (c Config) CueOptions() midi.CueOptions {
	return midi.CueOptions{
		Channel: c.MIDI.Channel,
		Note:    c.MIDI.CueNote,
		Length:  model.FromMillis(c.Timing.CueDurationMs),
	}
}
