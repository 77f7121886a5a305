package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jsphweid/rhythmdex/config"
	"github.com/jsphweid/rhythmdex/feedback"
	"github.com/jsphweid/rhythmdex/midi"
	"github.com/jsphweid/rhythmdex/model"
	"github.com/jsphweid/rhythmdex/render"
	"github.com/jsphweid/rhythmdex/trainer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func TestSummarize(t *testing.T) {
	expected := []model.Interval{{Start: 0, End: ms(1000)}, {Start: ms(1000), End: ms(2000)}}
	rounds := []model.RoundResult{
		{
			Expected: expected,
			Recorded: model.BeatHistory{
				{Press: ms(10), Release: ms(900), Released: true},
				{Press: ms(990), Release: ms(1900), Released: true},
			},
			Verdict: model.Verdict{Success: true},
		},
		{
			Expected: expected,
			Recorded: model.BeatHistory{{Press: ms(40), Release: ms(900), Released: true}},
			Verdict:  model.Fail(model.ReasonWrongLength, 1),
		},
	}

	report := summarize(rounds)
	assert := assert.New(t)
	assert.Equal(2, report.numRounds)
	assert.Equal(1, report.numSuccesses)
	assert.Equal(map[model.Reason]int{model.ReasonWrongLength: 1}, report.reasons)
	assert.Equal(ms(20), report.meanOnsetErr)
	assert.Equal(ms(40), report.maxOnsetErr)

	var buf bytes.Buffer
	printReport(&buf, report)
	assert.Contains(buf.String(), "successes: 1 (50%)")
	assert.Contains(buf.String(), "failed wrongLength: 1")
}

func TestPrintReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, summarize(nil))
	assert.Equal(t, "rounds: 0\n", buf.String())
}

func TestGenerate(t *testing.T) {
	cfg := config.Default()
	cfg.Seed = 7
	var buf bytes.Buffer
	generate(&buf, cfg, 3)

	out := buf.String()
	assert.Equal(t, 3, strings.Count(out, "keys: "))
	assert.Equal(t, 3, strings.Count(out, "expected ms: [0 "))
	// every bar ends on the bar duration
	assert.Equal(t, 3, strings.Count(out, " 2000]\n"))
}

func TestFormatIntervals(t *testing.T) {
	got := formatIntervals([]model.Interval{{Start: 0, End: ms(500)}, {Start: ms(500), End: 1500 * time.Millisecond}})
	assert.Equal(t, "[0 500] [500 1500]", got)
}

func TestInputURL(t *testing.T) {
	assert.Equal(t, "http://example.com:8080", inputURL("example.com:8080"))
	assert.True(t, strings.HasPrefix(inputURL(":8080"), "http://"))
	assert.True(t, strings.HasSuffix(inputURL(":8080"), ":8080"))
}

func TestDrawEvent(t *testing.T) {
	var buf bytes.Buffer
	drawEvent(&buf, render.Event{Snapshot: trainer.Snapshot{Message: "Welcome"}})
	assert.Equal(t, "Welcome\n", buf.String())

	buf.Reset()
	frame := feedback.Frame{
		Width:    500,
		Expected: []feedback.Segment{{Span: feedback.Span{X: 0, Width: 500}, Color: feedback.Neutral}},
		Recorded: []feedback.Segment{{Span: feedback.Span{X: 0, Width: 480}, Color: feedback.Match}},
	}
	drawEvent(&buf, render.Event{
		Snapshot: trainer.Snapshot{Message: "Yay!", Hint: "Hit space to try a new rhythm."},
		Frame:    &frame,
	})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, "Yay!", lines[0])
	assert.Equal(t, "Hit space to try a new rhythm.", lines[len(lines)-1])
	assert.Greater(t, len(lines), 2)
}

func TestExportRounds(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	rounds := []model.RoundResult{
		{ID: "a", BarDuration: ms(2000), Expected: []model.Interval{{Start: 0, End: ms(2000)}}},
		{ID: "b", BarDuration: ms(2000)},
	}
	require.NoError(t, exportRounds(dir, rounds))

	for _, id := range []string{"a", "b"} {
		s, err := midi.ReadMidiFile(filepath.Join(dir, id+".mid"))
		require.NoError(t, err)
		assert.Len(t, s.Tracks, 3)
	}
}
