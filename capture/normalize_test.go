package capture

import (
	"testing"

	"github.com/jsphweid/rhythmdex/model"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeClampsEarlyFirstPress(t *testing.T) {
	h := model.BeatHistory{done(-5, 100)}
	Normalize(h, ms(4000))
	assert.Equal(t, model.BeatHistory{done(0, 100)}, h)
}

func TestNormalizeReleasesUnterminatedLastBeat(t *testing.T) {
	h := model.BeatHistory{{Press: ms(10)}}
	Normalize(h, ms(250))
	assert.Equal(t, model.BeatHistory{done(10, 250)}, h)
}

func TestNormalizeEmpty(t *testing.T) {
	var h model.BeatHistory
	Normalize(h, ms(250))
	assert.Empty(t, h)
}

func TestNormalizeOnlyTouchesFirstPress(t *testing.T) {
	h := model.BeatHistory{done(3, 100), done(-1, 200)}
	Normalize(h, ms(250))
	assert.Equal(t, model.BeatHistory{done(3, 100), done(-1, 200)}, h)
}
