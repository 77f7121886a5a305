package engine

import (
	"testing"
	"time"

	"github.com/jsphweid/rhythmdex/bar"
	"github.com/jsphweid/rhythmdex/checker"
	"github.com/jsphweid/rhythmdex/clock"
	"github.com/jsphweid/rhythmdex/model"
	"github.com/jsphweid/rhythmdex/trainer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, c clock.Clock, onResult func(model.RoundResult)) *Engine {
	e := New(Config{
		Options: trainer.DefaultOptions(),
		Deps: trainer.Deps{
			Clock:      c,
			Bars:       bar.NewGenerator(3),
			Comparator: checker.New(0.1, 4),
		},
		OnResult: onResult,
	})
	t.Cleanup(e.Close)
	return e
}

func TestEngineRunsRoundOnLoop(t *testing.T) {
	c := clock.NewManual(time.Unix(0, 0))
	var got []model.RoundResult
	e := newTestEngine(t, c, func(r model.RoundResult) { got = append(got, r) })

	e.Submit(model.KeyEvent{Key: "space", Type: model.Press})
	e.Submit(model.KeyEvent{Key: "space", Type: model.Release})
	assert.Equal(t, model.PhaseRunning, e.Snapshot().Phase)

	c.Advance(10 * time.Second)
	s := e.Snapshot()
	assert.Equal(t, model.PhaseFeedback, s.Phase)
	assert.False(t, s.Verdict.Success)
	require.Len(t, got, 1)
	assert.Equal(t, s.Round, got[0].ID)
}

func TestEngineWithRealClock(t *testing.T) {
	closed := make(chan struct{})
	e := newTestEngine(t, clock.Real{}, func(model.RoundResult) { close(closed) })
	require.NoError(t, e.SetBarDuration(200*time.Millisecond))

	e.Submit(model.KeyEvent{Type: model.Release})
	select {
	case <-closed:
	case <-time.After(5 * time.Second):
		t.Fatal("round did not close")
	}
	assert.Equal(t, model.PhaseFeedback, e.Snapshot().Phase)
}

func TestEngineRejectsBadBarDuration(t *testing.T) {
	e := newTestEngine(t, clock.NewManual(time.Unix(0, 0)), nil)
	assert.ErrorIs(t, e.SetBarDuration(-time.Second), trainer.ErrInvalidBarDuration)
}

func TestClosedEngineDropsWork(t *testing.T) {
	e := New(Config{Deps: trainer.Deps{
		Clock:      clock.NewManual(time.Unix(0, 0)),
		Bars:       bar.NewGenerator(1),
		Comparator: checker.New(0.1, 4),
	}})
	e.Close()
	e.Submit(model.KeyEvent{Type: model.Release})
	assert.False(t, e.Do(func(*trainer.Trainer) {}))
}
