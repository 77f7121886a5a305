package render

import (
	"testing"
	"time"

	"github.com/jsphweid/rhythmdex/feedback"
	"github.com/jsphweid/rhythmdex/model"
	"github.com/jsphweid/rhythmdex/trainer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func feedbackSnapshot() trainer.Snapshot {
	return trainer.Snapshot{
		Phase:         model.PhaseFeedback,
		BarDurationMs: 2000,
		Verdict:       model.Verdict{Success: true},
		Expected:      []model.Interval{{Start: 0, End: ms(1000)}, {Start: ms(1000), End: ms(2000)}},
		History: model.BeatHistory{
			{Press: ms(5), Release: ms(300), Released: true},
			{Press: ms(1010), Release: ms(1300), Released: true},
		},
	}
}

func TestFrameForPhases(t *testing.T) {
	assert := assert.New(t)
	assert.Nil(FrameFor(trainer.Snapshot{Phase: model.PhaseWelcome}, 500))

	running := FrameFor(trainer.Snapshot{Phase: model.PhaseRunning}, 500)
	require.NotNil(t, running)
	assert.True(running.Empty())

	fb := FrameFor(feedbackSnapshot(), 500)
	require.NotNil(t, fb)
	assert.Len(fb.Expected, 2)
	assert.Len(fb.Recorded, 2)
	assert.Equal(feedback.Match, fb.Recorded[1].Color)
}

func TestRendererCoalescesBursts(t *testing.T) {
	events := make(chan Event, 10)
	r := NewRenderer(20*time.Millisecond, 500, func(ev Event) { events <- ev })

	for i := 0; i < 5; i++ {
		r.Invalidate(trainer.Snapshot{Phase: model.PhaseRunning, Beat: i})
	}

	select {
	case ev := <-events:
		assert.Equal(t, 4, ev.Snapshot.Beat)
		assert.NotNil(t, ev.Frame)
	case <-time.After(2 * time.Second):
		t.Fatal("no render")
	}
	select {
	case ev := <-events:
		t.Fatalf("unexpected second render %+v", ev)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHubDeliversLastEventToNewSubscribers(t *testing.T) {
	h := NewHub()
	a, leaveA := h.Subscribe()
	assert.Equal(t, 1, h.Publish(Event{Snapshot: trainer.Snapshot{Beat: 2}}))
	assert.Equal(t, 2, (<-a).Snapshot.Beat)

	b, leaveB := h.Subscribe()
	assert.Equal(t, 2, (<-b).Snapshot.Beat)
	assert.Equal(t, 2, h.Count())

	leaveA()
	leaveA()
	leaveB()
	assert.Equal(t, 0, h.Count())
}

func TestTextDrawsBothTracks(t *testing.T) {
	f := feedback.Build(
		feedbackSnapshot().Expected,
		feedbackSnapshot().History,
		model.Fail(model.ReasonTooLate, 1),
		ms(2000), 500,
	)
	want := "expected |========= ========= |\n" +
		"recorded |##        xx        |\n"
	assert.Equal(t, want, Text(f, 20))
	assert.Equal(t, "", Text(feedback.Frame{}, 20))
}
