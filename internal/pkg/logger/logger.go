// Package logger configures the zerolog logger used by the bulkctl client.
// The API server logs through slog via httplog instead.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is aliased so callers do not import zerolog directly.
type Logger = zerolog.Logger

// Event is an alias for zerolog.Event.
type Event = zerolog.Event

const consoleTimeFormat = "2006-01-02 15:04:05"

// Options controls where and how the client logs.
type Options struct {
	Level  string
	Format string // console | json
	Out    io.Writer
}

// New builds a logger from opts. Unknown levels fall back to info and the
// fallback is reported on the returned logger.
func New(opts Options) Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format != "json" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: consoleTimeFormat}
	}

	level := strings.ToLower(strings.TrimSpace(opts.Level))
	if level == "" {
		level = "info"
	}
	lvl, err := zerolog.ParseLevel(level)
	invalid := err != nil || lvl == zerolog.NoLevel
	if invalid {
		lvl = zerolog.InfoLevel
	}

	l := zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	if invalid {
		l.Warn().Str("log_level_in", opts.Level).Msg("Invalid log level, defaulting to 'info'")
	}
	return l
}

// Nop returns a disabled logger.
func Nop() Logger {
	return zerolog.Nop()
}

// HTTPEvent logs one client request with standardized fields.
func HTTPEvent(l *Logger, method, path string, status int, duration time.Duration) *Event {
	return l.Debug().
		Str("event_category", "http").
		Str("method", method).
		Str("path", path).
		Int("status", status).
		Float64("duration_ms", float64(duration.Microseconds())/1000)
}

// HTTPError logs a failed client request.
func HTTPError(l *Logger, method, path string, status int, err error) *Event {
	return l.Error().
		Str("event_category", "http").
		Str("method", method).
		Str("path", path).
		Int("status", status).
		Err(err)
}
