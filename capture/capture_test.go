package capture

import (
	"fmt"
	"testing"
	"time"

	"github.com/jsphweid/rhythmdex/model"
	"github.com/stretchr/testify/assert"
)

var anchor = time.Unix(1000, 0)

func at(ms int) time.Time { return anchor.Add(time.Duration(ms) * time.Millisecond) }

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func done(press, release int) model.Beat {
	return model.Beat{Press: ms(press), Release: ms(release), Released: true}
}

func TestRecordsAlternatingSignals(t *testing.T) {
	c := New()
	c.Begin(anchor)
	c.Signal(model.Press, at(5))
	c.Signal(model.Release, at(300))
	c.Signal(model.Press, at(1010))
	c.Signal(model.Release, at(1300))

	assert.Equal(t, model.BeatHistory{done(5, 300), done(1010, 1300)}, c.History())
}

func TestDuplicateSignalIsIgnored(t *testing.T) {
	signals := []model.Signal{model.Press, model.Release, model.Press, model.Release, model.Press, model.Release}

	for dup := range signals {
		name := fmt.Sprintf("duplicate after signal %d", dup)
		t.Run(name, func(t *testing.T) {
			c := New()
			c.Begin(anchor)
			for i, s := range signals {
				c.Signal(s, at(100*i+10))
				if i == dup {
					assert.Equal(t, Ignored, c.Signal(s, at(100*i+20)))
				}
			}
			assert.Len(t, c.History(), 3)
		})
	}
}

func TestEarlyReleaseDiscardsHistory(t *testing.T) {
	h := model.BeatHistory{done(0, 100), {Press: ms(-40)}}
	outcome := Record(&h, model.Release, ms(-10))

	assert := assert.New(t)
	assert.Equal(Discarded, outcome)
	assert.Empty(h)
}

func TestEarlyPressAndReleaseBeforeAnchorIsNoise(t *testing.T) {
	c := New()
	c.Begin(anchor)
	c.Signal(model.Press, at(-200))
	assert.Equal(t, Discarded, c.Signal(model.Release, at(-150)))
	c.Signal(model.Press, at(2))
	c.Signal(model.Release, at(400))

	assert.Equal(t, model.BeatHistory{done(2, 400)}, c.History())
}

func TestReleaseWithoutPressSynthesizesPressAtAnchor(t *testing.T) {
	var h model.BeatHistory
	outcome := Record(&h, model.Release, ms(250))

	assert := assert.New(t)
	assert.Equal(Synthesized, outcome)
	assert.Equal(model.BeatHistory{done(0, 250)}, h)
}

func TestSignalsAfterCloseAreFrozen(t *testing.T) {
	c := New()
	c.Begin(anchor)
	c.Signal(model.Press, at(10))
	closed := c.Close(at(2050))

	assert := assert.New(t)
	assert.Equal(Frozen, c.Signal(model.Release, at(2100)))
	assert.Equal(model.BeatHistory{done(10, 2050)}, closed)
	assert.Equal(closed, c.History())
	assert.True(c.Closed())
}

func TestNewCaptureIsFrozenUntilBegin(t *testing.T) {
	c := New()
	assert.Equal(t, Frozen, c.Signal(model.Press, at(0)))
	assert.Equal(t, model.Release, c.Last())
}

func TestBeginClearsHistoryButKeepsGate(t *testing.T) {
	c := New()
	c.Begin(anchor)
	c.Signal(model.Press, at(10))
	c.Close(at(100))

	c.Begin(anchor.Add(time.Minute))
	assert.Empty(t, c.History())
	assert.Equal(t, model.Press, c.Last())
}

func TestGateArm(t *testing.T) {
	assert := assert.New(t)

	var g Gate
	assert.False(g.Arm(model.Press))
	assert.True(g.Arm(model.Release))

	held := Gate{last: model.Press}
	assert.False(held.Arm(model.Release), "release of a press from the previous round")
	assert.Equal(model.Release, held.Last())
	assert.True(held.Arm(model.Release))
}
