// Package logging provides structured logging for freerank using zerolog.
// Console output is used when stderr is a terminal, JSON otherwise, so a
// report run can be read by a human or shipped to a log pipeline unchanged.
//
// Example usage:
//
//	log := logging.Default()
//	log.Info().Int("sources", 42).Msg("Fetched free models")
//
//	// Carry a logger through a run
//	ctx := logging.WithRunID(context.Background(), runID)
//	logging.FromContext(ctx).Debug().Str("stage", "match").Msg("Matching")
package logging

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultLogger serves code that runs before the CLI installs its own.
var defaultLogger zerolog.Logger

func init() {
	defaultLogger = NewLoggerFromConfig(envConfig())
}

// envConfig reads LOG_LEVEL, LOG_FORMAT and NO_COLOR. DEBUG set without
// LOG_LEVEL means debug.
func envConfig() *Config {
	level := os.Getenv("LOG_LEVEL")
	if level == "" && os.Getenv("DEBUG") != "" {
		level = "debug"
	}
	return &Config{
		Level:   level,
		Format:  os.Getenv("LOG_FORMAT"),
		Output:  "stderr",
		NoColor: os.Getenv("NO_COLOR") != "",
	}
}

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault sets the default global logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// Warn starts a warning on the default logger, for code with no context at hand.
func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}
