// Package application provides the application interface for freerank commands.
//
// Commands accept this interface rather than the concrete App type, so they
// can be tested with Mock:
//
//	mock := &application.Mock{
//	    FreerankFunc: func(opts ...freerank.Option) (freerank.Freerank, error) {
//	        return freerank.New(append(opts, freerank.WithSourceFetcher(stub))...)
//	    },
//	}
//	cmd := match.NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/freerank"
)

// Paths are the files and directories a run reads and writes.
type Paths struct {
	CacheDir       string
	AliasesFile    string
	ReportFile     string
	HTMLReportFile string
}

// Application provides what commands need from the CLI application.
type Application interface {
	// Freerank returns a pipeline configured from the application settings.
	// Options given here are applied after the configured ones.
	Freerank(opts ...freerank.Option) (freerank.Freerank, error)

	// Leaderboard returns the configured leaderboard fetcher.
	Leaderboard(refresh bool) freerank.TargetFetcher

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, wide, json, yaml).
	OutputFormat() string

	// NoColor reports whether colored output is disabled.
	NoColor() bool

	// Paths returns the configured file locations.
	Paths() Paths

	// Version returns the application version string.
	Version() string
}
