// Package logging builds the process logger.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"go.elastic.co/ecszerolog"
)

// Options selects output format and level. Format is one of "console",
// "json" or "ecs"; empty picks console in development and json otherwise.
type Options struct {
	Level  string
	Format string
	Dev    bool
	Out    io.Writer
}

// New returns a timestamped logger tagged with the application name.
func New(opts Options) zerolog.Logger {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	format := strings.ToLower(opts.Format)
	if format == "" {
		format = "json"
		if opts.Dev {
			format = "console"
		}
	}

	var logger zerolog.Logger
	switch format {
	case "ecs":
		logger = ecszerolog.New(out)
	case "console":
		logger = zerolog.New(zerolog.ConsoleWriter{Out: out}).With().Timestamp().Logger()
	default:
		logger = zerolog.New(out).With().Timestamp().Logger()
	}

	level, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}
	return logger.Level(level).With().Str("app", "hms").Logger()
}
