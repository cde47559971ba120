package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/freerank"
	"github.com/agentstation/freerank/pkg/constants"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default value.
type Mock struct {
	FreerankFunc    func(opts ...freerank.Option) (freerank.Freerank, error)
	LeaderboardFunc func(refresh bool) freerank.TargetFetcher
	LoggerFunc      func() *zerolog.Logger
	Format          string
	Colorless       bool
	PathsValue      *Paths
}

var _ Application = (*Mock)(nil)

// Freerank returns a pipeline using the mock function or freerank.New.
func (m *Mock) Freerank(opts ...freerank.Option) (freerank.Freerank, error) {
	if m.FreerankFunc != nil {
		return m.FreerankFunc(opts...)
	}
	return freerank.New(opts...)
}

// Leaderboard returns a fetcher using the mock function or nil.
func (m *Mock) Leaderboard(refresh bool) freerank.TargetFetcher {
	if m.LeaderboardFunc != nil {
		return m.LeaderboardFunc(refresh)
	}
	return nil
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the mock format.
func (m *Mock) OutputFormat() string {
	return m.Format
}

// NoColor returns the mock color setting.
func (m *Mock) NoColor() bool {
	return m.Colorless
}

// Paths returns the mock paths or the defaults.
func (m *Mock) Paths() Paths {
	if m.PathsValue != nil {
		return *m.PathsValue
	}
	return Paths{
		CacheDir:       constants.DefaultCacheDir,
		AliasesFile:    constants.DefaultAliasesFile,
		ReportFile:     constants.DefaultReportFile,
		HTMLReportFile: constants.DefaultHTMLReportFile,
	}
}

// Version returns a fixed development version.
func (m *Mock) Version() string {
	return "dev"
}
