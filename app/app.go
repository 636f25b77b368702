package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/gridflood/cue"
	"github.com/katalvlaran/gridflood/ctxlog"
	"github.com/katalvlaran/gridflood/flood"
	"github.com/katalvlaran/gridflood/gridgeom"
	"github.com/katalvlaran/gridflood/metrics"
	"github.com/katalvlaran/gridflood/relay"
	"github.com/katalvlaran/gridflood/scenario"
	"github.com/katalvlaran/gridflood/session"
	"github.com/katalvlaran/gridflood/tui"
)

// App owns the program's dependencies for one run.
type App struct {
	outW     io.Writer
	cfg      *Config
	logger   *slog.Logger
	closeLog func() error

	registry *prometheus.Registry
	recorder *metrics.Recorder

	// newScreen opens the terminal; replaced in tests.
	newScreen func() (tcell.Screen, error)
}

// New builds an App writing results to outW. Call Close when done.
func New(outW io.Writer, cfg *Config) (*App, error) {
	logger, closeLog, err := newLogger(cfg, outW)
	if err != nil {
		return nil, err
	}
	reg := prometheus.NewRegistry()
	return &App{
		outW:      outW,
		cfg:       cfg,
		logger:    logger,
		closeLog:  closeLog,
		registry:  reg,
		recorder:  metrics.NewRecorder(reg),
		newScreen: tcell.NewScreen,
	}, nil
}

// Close releases the log file, if any.
func (a *App) Close() error { return a.closeLog() }

// Run loads the board, starts the optional side services and runs either
// headless or in the terminal until the search ends, the user quits or ctx
// is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	sc, err := a.board(ctx)
	if err != nil {
		return err
	}

	if a.cfg.MetricsAddr != "" {
		stop, err := a.serve(ctx, a.cfg.MetricsAddr)
		if err != nil {
			return err
		}
		defer stop()
	}

	publish := func(s flood.Snapshot) { a.recorder.ObserveFrontier(len(s.Frontier)) }
	if a.cfg.RelayURL != "" {
		rc, err := relay.Dial(ctx, relay.Config{
			URL:       a.cfg.RelayURL,
			Namespace: a.cfg.RelayNamespace,
			Logger:    a.logger,
		})
		if err != nil {
			return fmt.Errorf("app: %w", err)
		}
		defer rc.Close()
		publish = func(s flood.Snapshot) {
			a.recorder.ObserveFrontier(len(s.Frontier))
			rc.Publish(s)
		}
	}

	engineOpts := a.engineOptions(publish)
	if a.cfg.Sound {
		sp := cue.NewSpeaker()
		if err := sp.Init(); err != nil {
			a.logger.Warn("sound disabled", "error", err)
		} else {
			defer sp.Close()
			engineOpts = append(engineOpts, sp.Option())
		}
	}

	geom, err := sc.Geometry()
	if err != nil {
		return fmt.Errorf("app: %w", err)
	}
	sess, err := session.New(geom, session.WithLogger(a.logger), session.WithEngineOptions(engineOpts...))
	if err != nil {
		return fmt.Errorf("app: %w", err)
	}
	if err := sess.Load(sc); err != nil {
		return fmt.Errorf("app: %w", err)
	}

	a.logger.Info("board ready",
		"width", geom.Width, "height", geom.Height, "cell", geom.CellSize,
		"walls", len(sess.View().Walls), "order", sc.Order.String())

	if a.cfg.Headless {
		return a.headless(ctx, sess, publish)
	}
	return a.interactive(ctx, sess, sc, publish)
}

// engineOptions collects the engine options for the configured mode.
// Headless runs are bounded by MaxSteps and publish every expansion through
// the engine; the terminal UI publishes once per frame instead.
func (a *App) engineOptions(publish func(flood.Snapshot)) []flood.Option {
	opts := a.recorder.Options()
	if a.cfg.Headless {
		opts = append(opts, flood.WithMaxSteps(a.cfg.MaxSteps), flood.WithOnStep(publish))
	}
	return opts
}

// board loads the scenario file or builds an empty board from the flags.
func (a *App) board(ctx context.Context) (*scenario.Scenario, error) {
	if a.cfg.ScenarioPath != "" {
		sc, err := scenario.Load(ctx, a.cfg.ScenarioPath)
		if err != nil {
			return nil, fmt.Errorf("app: %w", err)
		}
		return sc, nil
	}
	order, err := flood.ParseOrder(a.cfg.Order)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	cell := a.cfg.CellSize
	if cell == 0 {
		cell = gridgeom.DefaultCellSize
	}
	return &scenario.Scenario{
		CellSize: cell,
		Width:    a.cfg.Width,
		Height:   a.cfg.Height,
		Tick:     a.cfg.Tick,
		Order:    order,
	}, nil
}

// interactive runs the terminal UI until the user quits. Cancellation of
// ctx is a normal exit.
func (a *App) interactive(ctx context.Context, sess *session.Session, sc *scenario.Scenario, publish func(flood.Snapshot)) error {
	screen, err := a.newScreen()
	if err != nil {
		return fmt.Errorf("app: terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("app: terminal: %w", err)
	}
	defer screen.Fini()

	tick := sc.Tick
	if tick <= 0 {
		tick = a.cfg.Tick
	}
	ui := tui.New(screen, sess,
		tui.WithTick(tick),
		tui.WithLogger(a.logger),
		tui.WithOnTick(publish),
		tui.WithOnStop(a.recorder.Stopped),
	)
	if err := ui.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
