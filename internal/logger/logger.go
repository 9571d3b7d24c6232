// Package logger configures the logrus logger shared by the game.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. It discards output until Init is called.
var Log = Discard()

// Options controls logger construction.
type Options struct {
	Level  string    // panic, fatal, error, warn, info, debug or trace
	Format string    // "json" or "text"
	Output io.Writer // defaults to os.Stderr
	Color  bool      // force colored text output
}

// OptionsFromEnv reads LOG_LEVEL and LOG_FORMAT. Level defaults to "info".
func OptionsFromEnv() Options {
	level, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		level = "info"
	}
	return Options{
		Level:  level,
		Format: strings.ToLower(os.Getenv("LOG_FORMAT")),
	}
}

// New builds a logger from opts. An unknown level falls back to info.
func New(opts Options) *logrus.Logger {
	l := logrus.New()

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if opts.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   opts.Color,
		})
	}

	if opts.Output != nil {
		l.SetOutput(opts.Output)
	} else {
		l.SetOutput(os.Stderr)
	}
	return l
}

// Init replaces Log with a logger built from opts.
func Init(opts Options) *logrus.Logger {
	Log = New(opts)
	return Log
}

// Discard returns a logger that drops everything. Used by tests and before Init.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
