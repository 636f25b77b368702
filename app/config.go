package app

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/katalvlaran/gridflood/ctxlog"
	"github.com/katalvlaran/gridflood/flood"
	"github.com/katalvlaran/gridflood/gridgeom"
)

// ErrInvalidConfig wraps every validation failure of NewConfig.
var ErrInvalidConfig = errors.New("app: invalid configuration")

// Config holds everything needed to run one board.
type Config struct {
	// ScenarioPath, when set, supplies the board, markers, walls, tick and
	// order; the board flags below are then ignored.
	ScenarioPath string

	CellSize int
	Width    int
	Height   int
	Tick     time.Duration
	Order    string
	MaxSteps int

	// Headless runs the search to completion and prints the path instead of
	// opening the terminal UI. It needs a scenario with both markers.
	Headless bool

	LogLevel  string
	LogFormat string
	LogFile   string

	MetricsAddr    string
	RelayURL       string
	RelayNamespace string
	Sound          bool
}

// NewConfig validates cfg and returns a copy.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ScenarioPath == "" {
		if cfg.Headless {
			return nil, fmt.Errorf("%w: headless runs need a scenario", ErrInvalidConfig)
		}
		if _, err := gridgeom.New(cfg.CellSize, cfg.Width, cfg.Height); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	if cfg.Tick <= 0 {
		return nil, fmt.Errorf("%w: tick must be positive, got %s", ErrInvalidConfig, cfg.Tick)
	}
	if _, err := flood.ParseOrder(cfg.Order); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if cfg.MaxSteps < 0 {
		return nil, fmt.Errorf("%w: max-steps cannot be negative", ErrInvalidConfig)
	}
	if _, err := ctxlog.New(cfg.LogLevel, cfg.LogFormat, io.Discard); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return &cfg, nil
}
