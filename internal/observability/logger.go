// Package observability centralizes structured logging setup for the
// daemons, following danmuck-edgectl's logger construction.
package observability

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns a console-formatted zerolog.Logger tagged with the
// daemon's name.
func NewLogger(daemon string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).With().Timestamp().Str("daemon", daemon).Logger()
}
