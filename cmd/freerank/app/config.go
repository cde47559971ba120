package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/freerank/pkg/constants"
	"github.com/agentstation/freerank/pkg/errors"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Files
	CacheDir       string
	CacheTTL       time.Duration
	AliasesFile    string
	ReportFile     string
	HTMLReportFile string

	// Upstreams
	OpenRouterURL    string
	OpenRouterAPIKey string
	LeaderboardURL   string
	BrowserBin       string

	// Logging configuration. LogLevel comes from --log-level, EnvLogLevel
	// from LOG_LEVEL.
	LogLevel    string
	EnvLogLevel string
	LogFormat   string
	LogOutput   string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.freerank.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return loadConfig(viper.New(), "")
}

// LoadConfigFile is LoadConfig with an explicit config file.
func LoadConfigFile(path string) (*Config, error) {
	return loadConfig(viper.New(), path)
}

func loadConfig(v *viper.Viper, configFile string) (*Config, error) {
	loadEnvFiles()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.SetEnvPrefix("FREERANK")
	if err := v.BindEnv("openrouter_api_key", constants.OpenRouterAPIKeyEnv, "FREERANK_OPENROUTER_API_KEY"); err != nil {
		return nil, errors.NewConfigError("env", "failed to bind "+constants.OpenRouterAPIKeyEnv+": "+err.Error(), err)
	}

	v.SetDefault("cache_dir", constants.DefaultCacheDir)
	v.SetDefault("cache_ttl", time.Duration(0))
	v.SetDefault("aliases_file", constants.DefaultAliasesFile)
	v.SetDefault("report_file", constants.DefaultReportFile)
	v.SetDefault("html_report_file", constants.DefaultHTMLReportFile)
	v.SetDefault("openrouter_url", constants.OpenRouterModelsURL)
	v.SetDefault("leaderboard_url", constants.LeaderboardURL)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("file", "failed to read "+configFile+": "+err.Error(), err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".freerank")
		// A missing config file is fine; a broken one is not.
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, errors.NewConfigError("file", "failed to read "+v.ConfigFileUsed()+": "+err.Error(), err)
			}
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no-color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		CacheDir:       v.GetString("cache_dir"),
		CacheTTL:       v.GetDuration("cache_ttl"),
		AliasesFile:    v.GetString("aliases_file"),
		ReportFile:     v.GetString("report_file"),
		HTMLReportFile: v.GetString("html_report_file"),

		OpenRouterURL:    v.GetString("openrouter_url"),
		OpenRouterAPIKey: v.GetString("openrouter_api_key"),
		LeaderboardURL:   v.GetString("leaderboard_url"),
		BrowserBin:       v.GetString("browser_bin"),

		EnvLogLevel: os.Getenv("LOG_LEVEL"),
		LogFormat:   getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput:   getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	if config.CacheTTL < 0 {
		return nil, errors.NewConfigError("cache_ttl", "must not be negative", nil)
	}
	return config, nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// Variables already set in the environment are never overwritten.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
