package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console logger tagged with the owning component.
func New(component string) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().
		Timestamp().
		Str("component", component).
		Logger()
}
