package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jsphweid/rhythmdex/bar"
	"github.com/jsphweid/rhythmdex/checker"
	"github.com/jsphweid/rhythmdex/clock"
	"github.com/jsphweid/rhythmdex/config"
	"github.com/jsphweid/rhythmdex/constants"
	"github.com/jsphweid/rhythmdex/cue"
	"github.com/jsphweid/rhythmdex/db"
	"github.com/jsphweid/rhythmdex/engine"
	"github.com/jsphweid/rhythmdex/logger"
	"github.com/jsphweid/rhythmdex/model"
	"github.com/jsphweid/rhythmdex/render"
	"github.com/jsphweid/rhythmdex/trainer"
	"github.com/sirupsen/logrus"
)

const saveTimeout = 5 * time.Second

// App is what every command builds from the configuration.
type App struct {
	Config config.Config
	Log    *logrus.Logger
	Store  db.Store
}

func NewApp(cfg config.Config, log *logrus.Logger) (*App, error) {
	store, err := db.Open(cfg.StoreOptions())
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	return &App{Config: cfg, Log: log, Store: store}, nil
}

// loadApp reads the config named by the persistent flags.
func loadApp() (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return NewApp(cfg, logger.New(cfg.LogLevel, os.Stderr))
}

// Session starts an engine whose state changes are rendered through
// afterRender and whose results end up in the store.
func (a *App) Session(c clock.Clock, player cue.Player, afterRender func(render.Event)) *engine.Engine {
	renderer := render.NewRenderer(constants.FrameInterval, a.Config.FeedbackWidth, afterRender)
	log := logger.Component(a.Log, "session")

	return engine.New(engine.Config{
		Options: a.Config.TrainerOptions(),
		Deps: trainer.Deps{
			Clock:      c,
			Bars:       bar.NewGenerator(a.Config.Seed),
			Comparator: checker.New(a.Config.Tolerance.OnsetFraction, constants.CountInBeats),
			Cue:        cue.Logging{Next: player, Log: logger.Component(a.Log, "cue")},
			Log:        a.Log,
		},
		OnChange: renderer.Invalidate,
		OnResult: func(r model.RoundResult) {
			go a.save(log, r)
		},
	})
}

func (a *App) save(log logrus.FieldLogger, r model.RoundResult) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := a.Store.Save(ctx, r); err != nil {
		log.WithError(err).WithField("round", r.ID).Error("saving round")
		return
	}
	log.WithFields(logrus.Fields{"round": r.ID, "success": r.Verdict.Success}).Info("round saved")
}
