// Package logging builds the zerolog logger shared by commands and the MCP
// server. Logs go to stderr so stdout stays reserved for results and for the
// stdio MCP transport.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// New returns a logger at the named level ("debug", "info", "warn", ...).
// Unknown levels fall back to info. A terminal gets human-readable output.
func New(level string) zerolog.Logger {
	var w io.Writer = os.Stderr
	if term.IsTerminal(int(os.Stderr.Fd())) {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}
	return NewWithWriter(w, level)
}

// NewWithWriter is New with an explicit destination and no terminal detection.
func NewWithWriter(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(w).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// ParseLevel converts a level name, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// NewNop returns a logger that discards everything.
func NewNop() zerolog.Logger {
	return zerolog.Nop()
}
