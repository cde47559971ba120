package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey int

const (
	loggerKey contextKey = iota
	runIDKey
)

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger from context, or returns the default logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return Default()
	}

	if logger, ok := ctx.Value(loggerKey).(*zerolog.Logger); ok && logger != nil {
		return logger
	}

	return Default()
}

// WithRunID tags the context and its logger with the id of one report run.
func WithRunID(ctx context.Context, runID string) context.Context {
	ctx = context.WithValue(ctx, runIDKey, runID)
	return withField(ctx, "run_id", runID)
}

// RunID extracts the run id from context.
func RunID(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey).(string); ok {
		return id
	}
	return ""
}

func withField(ctx context.Context, key, value string) context.Context {
	logger := FromContext(ctx).With().Str(key, value).Logger()
	return WithLogger(ctx, &logger)
}

// WithSource adds the catalog source ("openrouter", "leaderboard") to the logger.
func WithSource(ctx context.Context, source string) context.Context {
	return withField(ctx, "source", source)
}

// WithStage adds the pipeline stage ("fetch", "match", "merge", "publish") to the logger.
func WithStage(ctx context.Context, stage string) context.Context {
	return withField(ctx, "stage", stage)
}

// WithListing tags the logger with one source listing id.
func WithListing(ctx context.Context, listingID string) context.Context {
	return withField(ctx, "listing_id", listingID)
}
