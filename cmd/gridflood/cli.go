package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/katalvlaran/gridflood/app"
	"github.com/katalvlaran/gridflood/gridgeom"
	"github.com/katalvlaran/gridflood/scenario"
)

// ExitError carries the process exit code for a failure.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string { return e.Message }

// parse turns command-line arguments into a validated config. The boolean
// is true when the program should exit without running, e.g. after -h.
func parse(args []string, output io.Writer) (*app.Config, bool, error) {
	fs := flag.NewFlagSet("gridflood", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprint(output, `
gridflood - watch a flood-fill search spread across a grid.

Usage:
  gridflood [options] [SCENARIO]

Arguments:
  SCENARIO
    Optional HCL scenario file with the board, start, target and walls.

Keys (terminal UI):
  click start, Tab target, w or right click wall, space search,
  s stop, r reset, c clear, q quit

Options:
`)
		fs.PrintDefaults()
	}

	scenarioPath := fs.String("scenario", "", "Path to an HCL scenario file.")
	cell := fs.Int("cell", gridgeom.DefaultCellSize, "Cell edge length in board units.")
	width := fs.Int("width", 600, "Board width in board units.")
	height := fs.Int("height", 600, "Board height in board units.")
	tick := fs.Duration("tick", scenario.DefaultTick, "Interval between search steps in the terminal UI.")
	order := fs.String("order", "breadth", "Frontier order: 'breadth' or 'depth'.")
	maxSteps := fs.Int("max-steps", 0, "Abort a headless search after this many steps. 0 is unlimited.")
	headless := fs.Bool("headless", false, "Run the scenario to completion and print the path.")
	logLevel := fs.String("log-level", "info", "Logging level: 'debug', 'info', 'warn' or 'error'.")
	logFormat := fs.String("log-format", "text", "Log output format: 'text' or 'json'.")
	logFile := fs.String("log-file", "", "Append logs to this file. The terminal UI logs nowhere otherwise.")
	metricsAddr := fs.String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. ':9090'.")
	relayURL := fs.String("relay-url", "", "Stream snapshots to this socket.io server.")
	relayNS := fs.String("relay-namespace", "/", "socket.io namespace for the relay.")
	sound := fs.Bool("sound", false, "Play a cue when a search ends.")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	path := *scenarioPath
	if path == "" && fs.NArg() > 0 {
		path = fs.Arg(0)
	}
	if fs.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected arguments: %v", fs.Args()[1:])}
	}

	cfg, err := app.NewConfig(app.Config{
		ScenarioPath:   path,
		CellSize:       *cell,
		Width:          *width,
		Height:         *height,
		Tick:           *tick,
		Order:          *order,
		MaxSteps:       *maxSteps,
		Headless:       *headless,
		LogLevel:       *logLevel,
		LogFormat:      *logFormat,
		LogFile:        *logFile,
		MetricsAddr:    *metricsAddr,
		RelayURL:       *relayURL,
		RelayNamespace: *relayNS,
		Sound:          *sound,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	return cfg, false, nil
}
