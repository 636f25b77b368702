package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/katalvlaran/gridflood/ctxlog"
)

// newLogger picks the log sink: the log file when configured, outW for
// headless runs, and nowhere for the terminal UI so records never land on
// the screen. The returned closer releases the log file.
func newLogger(cfg *Config, outW io.Writer) (*slog.Logger, func() error, error) {
	noop := func() error { return nil }

	var w io.Writer
	closer := noop
	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, noop, fmt.Errorf("app: open log file: %w", err)
		}
		w, closer = f, f.Close
	case cfg.Headless:
		w = outW
	default:
		return ctxlog.Discard(), noop, nil
	}

	logger, err := ctxlog.New(cfg.LogLevel, cfg.LogFormat, w)
	if err != nil {
		_ = closer()
		return nil, noop, err
	}
	return logger, closer, nil
}
