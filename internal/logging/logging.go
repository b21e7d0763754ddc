// Package logging builds the zerolog loggers used across the client and the
// stand-in API server.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Config struct {
	// Level is one of trace, debug, info, warn, error. Default: info.
	Level string
	// Format is json or console. Default: console.
	Format string
	// Output defaults to os.Stderr.
	Output io.Writer
}

// New returns a logger configured from cfg. Unknown levels fall back to info.
func New(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if !strings.EqualFold(cfg.Format, "json") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly, NoColor: true}
	}
	return zerolog.New(out).Level(ParseLevel(cfg.Level)).With().Timestamp().Logger()
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	if s == "" {
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Nop discards everything; used where no logger was supplied.
func Nop() zerolog.Logger { return zerolog.Nop() }
