package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/freerank/pkg/constants"
	"github.com/agentstation/freerank/pkg/errors"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv(constants.OpenRouterAPIKeyEnv, "")
	t.Setenv("FREERANK_OPENROUTER_API_KEY", "")
	t.Setenv("FREERANK_CACHE_TTL", "")
	t.Setenv("FREERANK_CACHE_DIR", "")
	t.Setenv("LOG_LEVEL", "")
}

func TestLoadConfigDefaults(t *testing.T) {
	isolate(t)

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultCacheDir, config.CacheDir)
	assert.Equal(t, time.Duration(0), config.CacheTTL)
	assert.Equal(t, constants.DefaultAliasesFile, config.AliasesFile)
	assert.Equal(t, constants.DefaultReportFile, config.ReportFile)
	assert.Equal(t, constants.OpenRouterModelsURL, config.OpenRouterURL)
	assert.Equal(t, constants.LeaderboardURL, config.LeaderboardURL)
	assert.Equal(t, "auto", config.LogFormat)
	assert.Equal(t, "stderr", config.LogOutput)
}

func TestLoadConfigEnv(t *testing.T) {
	isolate(t)
	t.Setenv(constants.OpenRouterAPIKeyEnv, "sk-test")
	t.Setenv("FREERANK_CACHE_TTL", "24h")
	t.Setenv("LOG_LEVEL", "warn")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "sk-test", config.OpenRouterAPIKey)
	assert.Equal(t, 24*time.Hour, config.CacheTTL)
	assert.Equal(t, "warn", config.EnvLogLevel)
	assert.Empty(t, config.LogLevel)
}

func TestLoadConfigFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "freerank.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
cache_dir: /tmp/freerank-cache
cache_ttl: 6h
aliases_file: my_aliases.yaml
browser_bin: /usr/bin/chromium
`), 0o600))

	config, err := LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, path, config.ConfigFile)
	assert.Equal(t, "/tmp/freerank-cache", config.CacheDir)
	assert.Equal(t, 6*time.Hour, config.CacheTTL)
	assert.Equal(t, "my_aliases.yaml", config.AliasesFile)
	assert.Equal(t, "/usr/bin/chromium", config.BrowserBin)
	assert.Equal(t, constants.DefaultReportFile, config.ReportFile)
}

func TestLoadConfigErrors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	negative := filepath.Join(dir, "negative.yaml")
	require.NoError(t, os.WriteFile(negative, []byte("cache_ttl: -1h\n"), 0o600))
	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("cache_dir: [unclosed\n"), 0o600))

	tests := []struct {
		name string
		path string
	}{
		{name: "missing explicit file", path: filepath.Join(dir, "absent.yaml")},
		{name: "negative ttl", path: negative},
		{name: "malformed yaml", path: broken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfigFile(tt.path)
			var cerr *errors.ConfigError
			assert.ErrorAs(t, err, &cerr)
		})
	}
}

func TestUpdateFromFlags(t *testing.T) {
	config := &Config{Format: "yaml", LogLevel: ""}
	config.UpdateFromFlags(true, false, true, "", "trace")

	assert.True(t, config.Verbose)
	assert.True(t, config.NoColor)
	assert.Equal(t, "yaml", config.Format)
	assert.Equal(t, "trace", config.LogLevel)

	config.UpdateFromFlags(false, false, false, "json", "")
	assert.Equal(t, "json", config.Format)
	assert.Equal(t, "trace", config.LogLevel)
}
