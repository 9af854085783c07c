// Package logger provides a thin wrapper around zerolog.Logger used across
// stackvault. Application output intended for the user goes to stdout via
// the cmd layer; this logger carries diagnostics on stderr in JSON form.
package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger embeds zerolog.Logger so the full zerolog API is available.
type Logger struct {
	zerolog.Logger
}

// New constructs a *Logger with the given role label (e.g. "cli", "saver").
// The level defaults to warn so normal CLI runs stay quiet; set
// STACKVAULT_LOG=debug (or any zerolog level name) to see more.
func New(role string) *Logger {
	level := zerolog.WarnLevel
	if s := os.Getenv("STACKVAULT_LOG"); s != "" {
		if l, err := zerolog.ParseLevel(s); err == nil {
			level = l
		}
	}

	l := zerolog.New(os.Stderr).Level(level).With().
		Str("role", role).
		Timestamp().
		Logger()

	return &Logger{l}
}

// Nop returns a *Logger that discards all output. For tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}
