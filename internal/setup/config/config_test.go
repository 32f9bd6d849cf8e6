package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tubeguard/tubeguard/internal/setup/config"
)

const commonTOML = `
version = 1

[debug]
log_level = "debug"

[ai]
provider = "openai"
api_key = "file-key"
max_batch_size = 20

[youtube]
api_key = "yt-key"

[cache]
enabled = true
ttl = 120

[filter]
negative_keywords = ["노잼"]
`

const serviceTOML = `
version = 1

[server]
host = "0.0.0.0"
port = 8080
`

func writeConfigDir(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}

	return dir
}

func TestLoadConfigFrom(t *testing.T) {
	t.Parallel()

	dir := writeConfigDir(t, map[string]string{
		"common.toml":  commonTOML,
		"service.toml": serviceTOML,
	})

	cfg, usedPath, err := config.LoadConfigFrom(filepath.Join(dir, "missing"), dir)
	require.NoError(t, err)
	assert.Equal(t, dir, usedPath)

	assert.Equal(t, "debug", cfg.Common.Debug.LogLevel)
	assert.Equal(t, "file-key", cfg.Common.AI.APIKey)
	assert.Equal(t, 20, cfg.Common.AI.MaxBatchSize)
	assert.Equal(t, []string{"노잼"}, cfg.Common.Filter.NegativeKeywords)
	assert.True(t, cfg.Common.Cache.Enabled)
	assert.Equal(t, 2*time.Minute, cfg.Common.Cache.TTLDuration())
	assert.Equal(t, "0.0.0.0:8080", cfg.Service.Server.Address())

	// Defaults
	assert.Equal(t, "gpt-4o-mini", cfg.Common.AI.Model)
	assert.Equal(t, 15*time.Second, cfg.Common.AI.RequestTimeoutDuration())
	assert.Equal(t, 50, cfg.Common.YouTube.MaxResults)
}

func TestLoadConfigFromErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		files   map[string]string
		wantErr error
	}{
		{
			name:    "missing service file",
			files:   map[string]string{"common.toml": commonTOML},
			wantErr: config.ErrConfigFileNotFound,
		},
		{
			name: "missing version",
			files: map[string]string{
				"common.toml":  "[ai]\nmodel = \"x\"\n",
				"service.toml": serviceTOML,
			},
			wantErr: config.ErrConfigVersionMissing,
		},
		{
			name: "version mismatch",
			files: map[string]string{
				"common.toml":  commonTOML,
				"service.toml": "version = 7\n",
			},
			wantErr: config.ErrConfigVersionMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := writeConfigDir(t, tt.files)
			_, _, err := config.LoadConfigFrom(dir)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("TUBEGUARD_AI__API_KEY", "env-key")
	t.Setenv("TUBEGUARD_SERVER__PORT", "9090")

	dir := writeConfigDir(t, map[string]string{
		"common.toml":  commonTOML,
		"service.toml": serviceTOML,
	})

	cfg, _, err := config.LoadConfigFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.Common.AI.APIKey)
	assert.Equal(t, 9090, cfg.Service.Server.Port)
}

func TestLoadFilterList(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		list, err := config.LoadFilterList(t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, list.ProfanityPatterns)
	})

	t.Run("jsonc with comments", func(t *testing.T) {
		t.Parallel()

		dir := writeConfigDir(t, map[string]string{
			config.FilterListFile: `{
				// channel specific slang
				"profanityPatterns": ["바\\s*보"],
				"positiveKeywords": ["대박",],
			}`,
		})

		list, err := config.LoadFilterList(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{`바\s*보`}, list.ProfanityPatterns)

		merged := list.Merge(config.Filter{PositiveKeywords: []string{"멋져"}})
		assert.Equal(t, []string{"멋져", "대박"}, merged.PositiveKeywords)
		assert.Equal(t, []string{`바\s*보`}, merged.ProfanityPatterns)
	})

	t.Run("malformed file", func(t *testing.T) {
		t.Parallel()

		dir := writeConfigDir(t, map[string]string{config.FilterListFile: `{"adPatterns": [`})
		_, err := config.LoadFilterList(dir)
		require.Error(t, err)
	})
}
