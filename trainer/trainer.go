// Package trainer sequences welcome, running and feedback phases. It is not
// safe for concurrent use: every method, including scheduled callbacks, has
// to run on one goroutine (see package engine).
package trainer

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jsphweid/rhythmdex/beat"
	"github.com/jsphweid/rhythmdex/capture"
	"github.com/jsphweid/rhythmdex/checker"
	"github.com/jsphweid/rhythmdex/clock"
	"github.com/jsphweid/rhythmdex/constants"
	"github.com/jsphweid/rhythmdex/cue"
	"github.com/jsphweid/rhythmdex/logger"
	"github.com/jsphweid/rhythmdex/model"
	"github.com/sirupsen/logrus"
)

var ErrInvalidBarDuration = errors.New("bar duration must be positive")

// BarSource hands out the bars to practice.
type BarSource interface {
	Generate(settings model.BarSettings) *model.RhythmBar
	Empty() *model.RhythmBar
}

type Options struct {
	BarDuration time.Duration
	TriggerKey  string
	Settings    model.BarSettings
	Timing      beat.Timing
}

func DefaultOptions() Options {
	return Options{
		BarDuration: constants.DefaultBarDuration,
		TriggerKey:  constants.TriggerKey,
		Timing:      beat.DefaultTiming(),
	}
}

type Deps struct {
	Clock      clock.Clock
	Bars       BarSource
	Comparator checker.Comparator
	Cue        cue.Player
	Log        logrus.FieldLogger
}

type Trainer struct {
	opts    Options
	clock   clock.Clock
	bars    BarSource
	compare checker.Comparator
	sched   *beat.Scheduler
	capture *capture.Capture
	log     *logrus.Entry

	phase   model.Phase
	bar     *model.RhythmBar
	verdict model.Verdict
	round   *Round

	// OnChange is called after every visible state change.
	OnChange func(Snapshot)
	// OnResult is called once per closed round.
	OnResult func(model.RoundResult)
}

func New(opts Options, deps Deps) *Trainer {
	if deps.Log == nil {
		deps.Log = logger.Discard()
	}
	if opts.BarDuration <= 0 {
		opts.BarDuration = constants.DefaultBarDuration
	}
	if opts.TriggerKey == "" {
		opts.TriggerKey = constants.TriggerKey
	}
	if opts.Timing.CountIn <= 0 {
		opts.Timing = beat.DefaultTiming()
	}
	t := &Trainer{
		opts:    opts,
		clock:   deps.Clock,
		bars:    deps.Bars,
		compare: deps.Comparator,
		sched:   beat.NewScheduler(deps.Clock, deps.Cue),
		capture: capture.New(),
		log:     logger.Component(deps.Log, "trainer"),
		phase:   model.PhaseWelcome,
		bar:     deps.Bars.Empty(),
		// the first start always generates a fresh bar
		verdict: model.Verdict{Success: true},
	}
	t.sched.Timing = opts.Timing
	t.sched.OnBeat = t.onBeat
	t.sched.OnClose = t.onClose
	return t
}

func (t *Trainer) Phase() model.Phase { return t.phase }

// Bar is the bar of the current or last round.
func (t *Trainer) Bar() *model.RhythmBar { return t.bar }

func (t *Trainer) Verdict() model.Verdict { return t.verdict }

// Round is the current or last round, nil before the first start.
func (t *Trainer) Round() *Round { return t.round }

// SetBarDuration applies from the next round on.
func (t *Trainer) SetBarDuration(d time.Duration) error {
	if d <= 0 {
		return ErrInvalidBarDuration
	}
	t.opts.BarDuration = d
	return nil
}

// Input handles one raw signal. Keys other than the trigger key are ignored;
// an empty key counts as the trigger key.
func (t *Trainer) Input(ev model.KeyEvent) {
	if ev.Key != "" && ev.Key != t.opts.TriggerKey {
		return
	}
	at := ev.At
	if at.IsZero() {
		at = t.clock.Now()
	}

	if t.phase == model.PhaseRunning {
		outcome := t.capture.Signal(ev.Type, at)
		t.log.WithFields(logrus.Fields{
			"signal":   ev.Type,
			"relative": t.capture.Relative(at),
			"outcome":  outcome,
		}).Debug("input")
		return
	}

	if t.capture.Arm(ev.Type) {
		t.start()
	}
}

func (t *Trainer) nextBar() *model.RhythmBar {
	if t.verdict.Success {
		return t.bars.Generate(t.opts.Settings)
	}
	return t.bar
}

func (t *Trainer) start() {
	r := &Round{
		ID:          uuid.New(),
		StartedAt:   t.clock.Now(),
		Bar:         t.nextBar(),
		BarDuration: t.opts.BarDuration,
		Beat:        constants.NoBeat,
	}
	t.round = r
	t.bar = r.Bar
	t.phase = model.PhaseRunning
	r.Plan = t.sched.Start(r.ID, r.BarDuration)
	t.capture.Begin(r.Plan.Anchor)

	t.log.WithFields(logrus.Fields{
		"round":  r.ID,
		"bar":    r.Bar.Keys,
		"anchor": r.Plan.Anchor.Sub(r.StartedAt),
	}).Info("round started")
	t.changed()
}

func (t *Trainer) current(id uuid.UUID) bool {
	return t.round != nil && t.round.ID == id && !t.round.Closed
}

func (t *Trainer) onBeat(id uuid.UUID, b int) {
	if !t.current(id) {
		t.log.WithField("round", id).Debug("stale beat ignored")
		return
	}
	t.round.Beat = b
	t.changed()
}

func (t *Trainer) onClose(id uuid.UUID) {
	if !t.current(id) || t.phase != model.PhaseRunning {
		t.log.WithField("round", id).Debug("stale close ignored")
		return
	}
	r := t.round
	r.Closed = true
	r.History = t.capture.Close(t.clock.Now())
	r.Expected = checker.ExpectedTimes(r.Bar.Durations, r.BarDuration)
	r.Verdict = t.compare.Compare(r.Expected, r.History)

	t.verdict = r.Verdict
	t.phase = model.PhaseFeedback

	t.log.WithFields(logrus.Fields{
		"round":   r.ID,
		"success": r.Verdict.Success,
		"reason":  r.Verdict.Reason,
		"beats":   len(r.History),
	}).Info("round closed")
	if t.OnResult != nil {
		t.OnResult(r.Result())
	}
	t.changed()
}

func (t *Trainer) changed() {
	if t.OnChange != nil {
		t.OnChange(t.Snapshot())
	}
}
