// Package logger builds the zerolog loggers used by the server and rosterctl.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds logger configuration
type Config struct {
	Level  string // debug, info, warn, error; empty means info
	Pretty bool   // human-readable console output instead of JSON
}

// ParseLevel maps a LOG_LEVEL value to a zerolog level. Only the four levels
// the service logs at are accepted.
func ParseLevel(s string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "", "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	}
	return zerolog.NoLevel, fmt.Errorf("unknown log level %q (want debug, info, warn or error)", s)
}

// New creates a structured logger writing to stdout.
func New(cfg Config) zerolog.Logger {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter creates a structured logger writing to w. The level applies to
// the returned logger only. An unparseable level falls back to info; callers
// that read it from the environment validate it first with ParseLevel.
func NewWithWriter(cfg Config, w io.Writer) zerolog.Logger {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var output io.Writer = w
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Str("service", "roster-backend").
		Logger()
}

// SetGlobalLogger routes the zerolog/log package helpers through l.
func SetGlobalLogger(l zerolog.Logger) {
	log.Logger = l
}
