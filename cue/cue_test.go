package cue

import (
	"bytes"
	"testing"
	"time"

	"github.com/jsphweid/rhythmdex/clock"
	"github.com/jsphweid/rhythmdex/logger"
	"github.com/stretchr/testify/assert"
)

func TestBellRingsAfterDelay(t *testing.T) {
	c := clock.NewManual(time.Unix(0, 0))
	var out bytes.Buffer
	b := NewBell(c, &out)
	b.Play(100 * time.Millisecond)
	b.Play(200 * time.Millisecond)

	c.Advance(150 * time.Millisecond)
	assert.Equal(t, "\a", out.String())
	c.Advance(100 * time.Millisecond)
	assert.Equal(t, "\a\a", out.String())
}

func TestLoggingForwards(t *testing.T) {
	var got []time.Duration
	p := Logging{
		Next: PlayerFunc(func(d time.Duration) { got = append(got, d) }),
		Log:  logger.Discard(),
	}
	p.Play(5 * time.Millisecond)
	Silent{}.Play(time.Millisecond)
	assert.Equal(t, []time.Duration{5 * time.Millisecond}, got)
}
