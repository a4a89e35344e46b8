// Package logger builds the process-wide zerolog logger.
package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New returns a JSON logger tagged with the service name. Unknown levels
// fall back to info.
func New(serviceName, level string) zerolog.Logger {
	return zerolog.New(os.Stdout).Level(parseLevel(level)).With().
		Str("service", serviceName).
		Timestamp().
		Logger()
}

// NewConsole returns a human-readable logger for local runs and CLI output.
func NewConsole(serviceName, level string) zerolog.Logger {
	cw := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(cw).Level(parseLevel(level)).With().
		Str("service", serviceName).
		Timestamp().
		Logger()
}

func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
