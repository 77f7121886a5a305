package feedback

import (
	"testing"
	"time"

	"github.com/jsphweid/rhythmdex/model"
	"github.com/stretchr/testify/assert"
)

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func TestProjectScalesToWidth(t *testing.T) {
	got := Project([]model.Interval{{Start: 0, End: ms(1000)}, {Start: ms(1000), End: ms(2000)}}, ms(2000), 500)
	assert.Equal(t, []Span{{X: 0, Width: 250}, {X: 250, Width: 250}}, got)
}

func TestProjectEmptyInput(t *testing.T) {
	assert := assert.New(t)
	assert.Empty(Project(nil, ms(2000), 500))
	assert.Empty(Project([]model.Interval{{End: ms(5)}}, 0, 500))
}

func TestRecordedColors(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(Match, RecordedColor(model.Verdict{Success: true}, 3))
	assert.Equal(Mismatch, RecordedColor(model.Verdict{Reason: model.ReasonWrongLength}, 0))

	v := model.Fail(model.ReasonTooLate, 1)
	assert.Equal(Match, RecordedColor(v, 0))
	assert.Equal(Mismatch, RecordedColor(v, 1))
	assert.Equal(Neutral, RecordedColor(v, 2))

	unnamed := model.Verdict{Reason: model.ReasonTooEarly}
	assert.Equal(Neutral, RecordedColor(unnamed, 0))
	assert.Equal(Neutral, RecordedColor(unnamed, 4))
}

func TestBuildFrame(t *testing.T) {
	expected := []model.Interval{{Start: 0, End: ms(1000)}, {Start: ms(1000), End: ms(2000)}}
	recorded := model.BeatHistory{
		{Press: ms(5), Release: ms(300), Released: true},
		{Press: ms(1010), Release: ms(1300), Released: true},
	}
	f := Build(expected, recorded, model.Fail(model.ReasonTooLate, 1), ms(2000), 500)

	assert := assert.New(t)
	assert.Len(f.Expected, 2)
	assert.Equal(Neutral, f.Expected[0].Color)
	assert.Equal(Segment{Span: Span{X: 1.25, Width: 73.75}, Color: Match}, f.Recorded[0])
	assert.Equal(Mismatch, f.Recorded[1].Color)
	assert.False(f.Empty())

	again := Build(expected, recorded, model.Fail(model.ReasonTooLate, 1), ms(2000), 500)
	assert.Equal(f, again)
}
