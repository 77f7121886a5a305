package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "rhythmdex.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, `
bar_duration_ms: 2400
timing:
  onset_fraction: 0.25
store:
  driver: dynamodb
  table: rounds
midi:
  in: "Launchkey"
`)
	c, err := Load(path)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(2400*time.Millisecond, c.BarDuration())
	assert.Equal(0.25, c.BeatTiming().OnsetFraction)
	// untouched keys keep their defaults
	assert.Equal(100*time.Millisecond, c.BeatTiming().Buffer)
	assert.Equal(4, c.BeatTiming().CountIn)
	assert.Equal("dynamodb", c.StoreOptions().Driver)
	assert.Equal("rounds", c.StoreOptions().Table)
	assert.Equal("Launchkey", c.MIDI.In)
	assert.Equal(uint8(76), c.CueOptions().Note)
	assert.Equal(180*time.Millisecond, c.CueOptions().Length)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "listen: \":9000\"\nbar_duration_ms: 2400\n")
	t.Setenv("RHYTHM_LISTEN", ":7000")
	t.Setenv("RHYTHM_BAR_DURATION_MS", "1600")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", c.Listen)
	assert.Equal(t, 1600*time.Millisecond, c.TrainerOptions().BarDuration)
}

func TestInvalid(t *testing.T) {
	cases := map[string]string{
		"bar":     "bar_duration_ms: 0\n",
		"onset":   "timing:\n  onset_fraction: 1.5\n",
		"store":   "store:\n  driver: postgres\n",
		"note":    "note_values: [2]\n",
		"width":   "feedback_width: -1\n",
		"channel": "midi:\n  channel: 16\n",
		"trigger": "trigger_key: \"\"\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, body))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestBadEnvNumber(t *testing.T) {
	t.Setenv("RHYTHM_BAR_DURATION_MS", "fast")
	_, err := Load("")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestMalformedYAML(t *testing.T) {
	_, err := Load(writeFile(t, "timing: [\n"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}
