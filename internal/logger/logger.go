package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"ssoverify/internal/config"
)

// New builds the application logger from LogConfig. Format "console" gives
// human-readable output for development; anything else emits JSON lines.
func New(cfg config.LogConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Logger()
}
