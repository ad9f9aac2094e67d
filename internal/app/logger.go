package app

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"

	slogmulti "github.com/samber/slog-multi"
)

// newLogger creates and configures a new slog.Logger instance. It does not
// set the global logger, allowing for isolated logger instances. Every record
// is also fanned out to a counter of warnings and errors so commands can
// report how many problems were logged while they ran.
func newLogger(levelStr, formatStr string, outW io.Writer) (*slog.Logger, *problemCounter) {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler

	if formatStr == "json" {
		handler = slog.NewJSONHandler(outW, handlerOpts)
	} else {
		handler = slog.NewTextHandler(outW, handlerOpts)
	}

	counter := &problemCounter{}
	return slog.New(slogmulti.Fanout(handler, counter)), counter
}

// problemCounter is a slog.Handler that only counts warning and error records.
type problemCounter struct {
	warnings atomic.Int64
	errors   atomic.Int64
}

func (c *problemCounter) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelWarn
}

func (c *problemCounter) Handle(_ context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		c.errors.Add(1)
	} else {
		c.warnings.Add(1)
	}
	return nil
}

func (c *problemCounter) WithAttrs([]slog.Attr) slog.Handler { return c }
func (c *problemCounter) WithGroup(string) slog.Handler      { return c }
