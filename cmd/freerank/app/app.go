// Package app provides the application context and dependency management
// for the freerank CLI: configuration, logging and pipeline construction.
package app

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/freerank"
	"github.com/agentstation/freerank/cmd/application"
	"github.com/agentstation/freerank/internal/cache"
	"github.com/agentstation/freerank/internal/sources/leaderboard"
	"github.com/agentstation/freerank/pkg/errors"
)

// App represents the freerank application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger
}

var _ application.Application = (*App)(nil)

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}
	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the --format value.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// NoColor reports whether colored output is disabled.
func (a *App) NoColor() bool {
	return a.config.NoColor
}

// Paths returns the configured file locations.
func (a *App) Paths() application.Paths {
	return application.Paths{
		CacheDir:       a.config.CacheDir,
		AliasesFile:    a.config.AliasesFile,
		ReportFile:     a.config.ReportFile,
		HTMLReportFile: a.config.HTMLReportFile,
	}
}

// Freerank returns a pipeline built from the configuration. opts are
// applied after the configured options and win over them.
func (a *App) Freerank(opts ...freerank.Option) (freerank.Freerank, error) {
	base := []freerank.Option{
		freerank.WithLogger(a.logger),
		freerank.WithCacheDir(a.config.CacheDir),
		freerank.WithCacheTTL(a.config.CacheTTL),
		freerank.WithAliasesFile(a.config.AliasesFile),
		freerank.WithSourceURL(a.config.OpenRouterURL),
		freerank.WithTargetURL(a.config.LeaderboardURL),
		freerank.WithAPIKey(a.config.OpenRouterAPIKey),
		freerank.WithBrowserBin(a.config.BrowserBin),
	}
	fr, err := freerank.New(append(base, opts...)...)
	if err != nil {
		return nil, errors.WrapResource("create", "pipeline", "", err)
	}
	return fr, nil
}

// Leaderboard returns a leaderboard scraper sharing the pipeline's cache.
func (a *App) Leaderboard(refresh bool) freerank.TargetFetcher {
	return leaderboard.NewScraper(
		leaderboard.WithURL(a.config.LeaderboardURL),
		leaderboard.WithBrowser(leaderboard.NewRodBrowser(a.config.BrowserBin)),
		leaderboard.WithCache(cache.New(a.config.CacheDir, a.config.CacheTTL)),
		leaderboard.WithRefresh(refresh),
	)
}

// Shutdown flushes anything the application holds open.
func (a *App) Shutdown(_ context.Context) error {
	a.logger.Debug().Msg("Shutting down")
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}
