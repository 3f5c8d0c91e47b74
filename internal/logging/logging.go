// Package logging provides structured logging setup for the engine binary.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"zikalyze-engine/config"
)

// New creates a zerolog logger from the logging config. The console writer
// is for interactive use; plain JSON goes to stdout otherwise.
func New(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	if cfg.Console {
		writer := zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
		return zerolog.New(writer).Level(level).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
}
