// Package relay streams search snapshots to a socket.io server so that
// spectators can follow a run from another process.
//
// Two events are emitted: "snapshot" after every published step and
// "finished" once per run when it reaches Found or Unreachable. Payloads are
// plain maps whose cells are [x, y] pairs.
package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/katalvlaran/gridflood/flood"
	"github.com/katalvlaran/gridflood/gridgeom"
)

// Event names.
const (
	EventSnapshot = "snapshot"
	EventFinished = "finished"
)

// DefaultTimeout bounds Dial when Config.Timeout is zero.
const DefaultTimeout = 15 * time.Second

// Sentinel errors for Dial.
var (
	ErrBadURL        = errors.New("relay: invalid server URL")
	ErrConnectFailed = errors.New("relay: connection failed")
)

// Config selects the server and namespace.
type Config struct {
	URL       string
	Namespace string
	Timeout   time.Duration
	Logger    *slog.Logger
}

// Client publishes snapshots over one socket. Publish is called from the
// goroutine that drives the engine.
type Client struct {
	emit       func(event string, data any)
	connected  func() bool
	disconnect func()
	logger     *slog.Logger

	last    flood.State
	sent    int
	dropped int
}

// Dial connects to cfg.URL over the websocket transport and waits for the
// connect event, ctx cancellation or the timeout, whichever comes first.
func Dial(ctx context.Context, cfg Config) (*Client, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("component", "relay", "url", cfg.URL)

	u, err := url.Parse(cfg.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrBadURL, cfg.URL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	opts := socket.DefaultOptions()
	if u.Path != "" {
		opts.SetPath(u.Path)
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(fmt.Sprintf("%s://%s", u.Scheme, u.Host), opts)
	io := manager.Socket(namespace(cfg.Namespace), opts)

	done := make(chan error, 1)
	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("relay connected", "sid", io.Id())
		done <- nil
	})
	io.Once(types.EventName("connect_error"), func(args ...any) {
		var cause error = ErrConnectFailed
		if len(args) > 0 {
			if e, ok := args[0].(error); ok {
				cause = e
			}
		}
		done <- cause
	})
	io.Connect()

	select {
	case err := <-done:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("%w: %w", ErrConnectFailed, err)
		}
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("%w: %w", ErrConnectFailed, ctx.Err())
	case <-time.After(timeout):
		io.Disconnect()
		return nil, fmt.Errorf("%w: timed out after %s", ErrConnectFailed, timeout)
	}

	return newClient(
		func(event string, data any) { io.Emit(event, data) },
		func() bool { return io.Connected() },
		func() { io.Disconnect() },
		logger,
	), nil
}

func newClient(emit func(string, any), connected func() bool, disconnect func(), logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		emit:       emit,
		connected:  connected,
		disconnect: disconnect,
		logger:     logger,
		last:       flood.Idle,
	}
}

// Publish emits s as a snapshot event, and as a finished event when s is the
// first terminal snapshot of its run. While the socket is disconnected the
// snapshot is dropped and counted.
func (c *Client) Publish(s flood.Snapshot) {
	if !c.connected() {
		c.dropped++
		if c.dropped == 1 {
			c.logger.Warn("relay disconnected, dropping snapshots")
		}
		c.last = s.State
		return
	}

	c.emit(EventSnapshot, Payload(s))
	c.sent++
	if s.State.Terminal() && !c.last.Terminal() {
		c.emit(EventFinished, Finished(s))
	}
	c.last = s.State
}

// Sent is the number of snapshot events emitted.
func (c *Client) Sent() int { return c.sent }

// Dropped is the number of snapshots discarded while disconnected.
func (c *Client) Dropped() int { return c.dropped }

// Close disconnects the socket.
func (c *Client) Close() error {
	c.disconnect()
	c.logger.Info("relay closed", "sent", c.sent, "dropped", c.dropped)
	return nil
}

// Payload renders s as the snapshot event body.
func Payload(s flood.Snapshot) map[string]any {
	p := map[string]any{
		"state":      s.State.String(),
		"origin":     pair(s.Origin),
		"target":     pair(s.Target),
		"frontier":   pairs(s.Frontier),
		"visited":    pairs(s.Visited),
		"path":       pairs(s.Path),
		"discovered": s.Discovered,
		"steps":      s.Steps,
	}
	if s.HasCurrent {
		p["current"] = pair(s.Current)
	}
	return p
}

// Finished renders the terminal summary of s.
func Finished(s flood.Snapshot) map[string]any {
	return map[string]any{
		"state": s.State.String(),
		"path":  pairs(s.Path),
		"steps": s.Steps,
	}
}

func pair(c gridgeom.Cell) [2]int { return [2]int{c.X, c.Y} }

func pairs(cells []gridgeom.Cell) [][2]int {
	out := make([][2]int, len(cells))
	for i, c := range cells {
		out[i] = pair(c)
	}
	return out
}

func namespace(ns string) string {
	if ns == "" {
		return "/"
	}
	return ns
}
