// Package constants provides shared constants used throughout the freerank codebase.
// This includes source URLs, timeouts, file permissions and default file names
// that should be consistent across the application.
package constants

import "time"

// Source endpoints
const (
	// OpenRouterModelsURL lists every model OpenRouter serves, with pricing.
	OpenRouterModelsURL = "https://openrouter.ai/api/v1/models"

	// LeaderboardURL is the Artificial Analysis model leaderboard page.
	LeaderboardURL = "https://artificialanalysis.ai/leaderboards/models"

	// OpenRouterAPIKeyEnv is the optional API key sent as a bearer token.
	OpenRouterAPIKeyEnv = "OPENROUTER_API_KEY"
)

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to source APIs
	DefaultHTTPTimeout = 30 * time.Second

	// ScrapeTimeout bounds a full browser scrape of the leaderboard page
	ScrapeTimeout = 2 * time.Minute

	// ExpandColumnsDelay is how long the page gets to re-render after
	// the leaderboard columns are expanded.
	ExpandColumnsDelay = 2 * time.Second

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 10 * time.Minute

	// ShutdownTimeout is how long shutdown hooks may run after an error
	ShutdownTimeout = 5 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Default file locations, relative to the working directory
const (
	// DefaultCacheDir holds cached source and leaderboard responses
	DefaultCacheDir = "cache"

	// DefaultAliasesFile maps source model IDs to leaderboard model names
	DefaultAliasesFile = "model_aliases.json"

	// DefaultReportFile is the Markdown report
	DefaultReportFile = "free_models_report.md"

	// DefaultHTMLReportFile is the sortable HTML report
	DefaultHTMLReportFile = "free_models_report.html"

	// SourcesCacheName is the cache entry for the raw OpenRouter response
	SourcesCacheName = "openrouter_models.json"

	// LeaderboardCacheName is the cache entry for the parsed leaderboard table
	LeaderboardCacheName = "artificial_analysis_leaderboard.json"
)

// Format constants
const (
	// TimeFormatReport is the timestamp format printed in reports
	TimeFormatReport = "2006-01-02 15:04:05"
)
