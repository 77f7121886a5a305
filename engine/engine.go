package engine

import (
	"context"
	"time"

	"github.com/jsphweid/rhythmdex/clock"
	"github.com/jsphweid/rhythmdex/logger"
	"github.com/jsphweid/rhythmdex/model"
	"github.com/jsphweid/rhythmdex/trainer"
)

const queueSize = 64

type Config struct {
	Options trainer.Options
	// Deps.Clock is the base clock; the trainer gets a clock whose
	// callbacks run on the engine goroutine.
	Deps     trainer.Deps
	OnChange func(trainer.Snapshot)
	OnResult func(model.RoundResult)
}

// Engine runs the trainer on its own goroutine. Input and timer callbacks
// are queued and executed one at a time in arrival order.
type Engine struct {
	trainer *trainer.Trainer
	clock   clock.Clock
	tasks   chan func()
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
}

// loopClock hands every callback to the engine goroutine.
type loopClock struct {
	base clock.Clock
	post func(func())
}

func (l loopClock) Now() time.Time { return l.base.Now() }

func (l loopClock) AfterFunc(d time.Duration, f func()) {
	l.base.AfterFunc(d, func() { l.post(f) })
}

// New creates an Engine and starts its run loop.
func New(cfg Config) *Engine {
	ctx, cancel := context.WithCancel(context.Background())
	if cfg.Deps.Clock == nil {
		cfg.Deps.Clock = clock.Real{}
	}
	if cfg.Deps.Log == nil {
		cfg.Deps.Log = logger.Discard()
	}
	e := &Engine{
		clock:  cfg.Deps.Clock,
		tasks:  make(chan func(), queueSize),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	deps := cfg.Deps
	deps.Clock = loopClock{base: cfg.Deps.Clock, post: e.post}
	e.trainer = trainer.New(cfg.Options, deps)
	e.trainer.OnChange = cfg.OnChange
	e.trainer.OnResult = cfg.OnResult

	go e.run()
	return e
}

func (e *Engine) run() {
	defer close(e.done)
	for {
		select {
		case f := <-e.tasks:
			f()
		case <-e.ctx.Done():
			return
		}
	}
}

// post queues f. After Close it is dropped.
func (e *Engine) post(f func()) {
	select {
	case e.tasks <- f:
	case <-e.ctx.Done():
	}
}

// Submit queues a raw input event, stamping it on receipt.
func (e *Engine) Submit(ev model.KeyEvent) {
	if ev.At.IsZero() {
		ev.At = e.clock.Now()
	}
	e.post(func() { e.trainer.Input(ev) })
}

// Do runs f on the engine goroutine and waits for it. It returns false if
// the engine was closed first.
func (e *Engine) Do(f func(t *trainer.Trainer)) bool {
	ran := make(chan struct{})
	e.post(func() {
		f(e.trainer)
		close(ran)
	})
	select {
	case <-ran:
		return true
	case <-e.ctx.Done():
		return false
	}
}

func (e *Engine) Snapshot() trainer.Snapshot {
	var s trainer.Snapshot
	e.Do(func(t *trainer.Trainer) { s = t.Snapshot() })
	return s
}

func (e *Engine) SetBarDuration(d time.Duration) error {
	var err error
	if !e.Do(func(t *trainer.Trainer) { err = t.SetBarDuration(d) }) {
		return context.Canceled
	}
	return err
}

// Close terminates the engine goroutine.
func (e *Engine) Close() {
	e.cancel()
	<-e.done
}
