package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cotstudio/cot/internal/config"
)

// useTempHome points COTSTUDIO_HOME at a fresh temp dir and resets the global
// config so each test sees an isolated environment.
func useTempHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("COTSTUDIO_HOME", home)
	config.ResetGlobalConfigForTest()
	t.Cleanup(config.ResetGlobalConfigForTest)
	return home
}

func TestDefaultConfig_Values(t *testing.T) {
	home := useTempHome(t)

	cfg := config.DefaultConfig()

	assert.Equal(t, config.DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, config.DefaultTimeoutSeconds, cfg.API.TimeoutSeconds)
	assert.True(t, cfg.API.CacheEnabled)
	assert.Equal(t, config.DefaultCacheTTLSeconds, cfg.API.CacheTTLSeconds)
	assert.Equal(t, config.FormatTable, cfg.Output.DefaultFormat)
	assert.Equal(t, config.ColorAuto, cfg.Output.Color)
	assert.Equal(t, config.ThemeDark, cfg.UI.Theme)
	assert.Equal(t, config.DefaultPageSize, cfg.UI.PageSize)
	assert.Equal(t, config.DefaultBufferSize, cfg.UI.BufferSize)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, filepath.Join(home, "config.yaml"), cfg.ConfigPath())
}

func TestNew_MissingFileUsesDefaults(t *testing.T) {
	useTempHome(t)

	cfg := config.New()

	assert.Equal(t, config.DefaultBaseURL, cfg.API.BaseURL)
	require.NoError(t, cfg.Validate())
}

func TestNew_LoadsExistingFile(t *testing.T) {
	home := useTempHome(t)
	content := `
api:
  base_url: http://localhost:8420
  timeout_seconds: 5
  cache_enabled: true
  cache_ttl_seconds: 120
output:
  default_format: json
  color: never
ui:
  theme: light
  page_size: 10
  buffer_size: 3
logging:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(content), 0600))

	cfg := config.New()

	assert.Equal(t, "http://localhost:8420", cfg.API.BaseURL)
	assert.Equal(t, 5, cfg.API.TimeoutSeconds)
	assert.Equal(t, 120, cfg.API.CacheTTLSeconds)
	assert.Equal(t, "json", cfg.Output.DefaultFormat)
	assert.Equal(t, "light", cfg.UI.Theme)
	assert.Equal(t, 10, cfg.UI.PageSize)
	assert.Equal(t, 3, cfg.UI.BufferSize)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestNew_CorruptFileFallsBackToDefaults(t *testing.T) {
	home := useTempHome(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte("{{{{nope"), 0600))

	cfg := config.New()

	assert.Equal(t, config.DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, config.FormatTable, cfg.Output.DefaultFormat)
}

func TestSave_RoundTrip(t *testing.T) {
	useTempHome(t)

	cfg := config.DefaultConfig()
	cfg.API.BaseURL = "https://cot.internal.example.com"
	cfg.UI.PageSize = 75
	require.NoError(t, cfg.Save())

	loaded := config.New()
	assert.Equal(t, "https://cot.internal.example.com", loaded.API.BaseURL)
	assert.Equal(t, 75, loaded.UI.PageSize)
}

func TestSave_CustomPath(t *testing.T) {
	useTempHome(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := config.DefaultConfig()
	cfg.SetConfigPath(path)
	require.NoError(t, cfg.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "base_url")
}

func TestValidate_Defaults(t *testing.T) {
	useTempHome(t)
	require.NoError(t, config.DefaultConfig().Validate())
}

func TestValidate_Errors(t *testing.T) {
	useTempHome(t)

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			name:    "empty base URL",
			mutate:  func(c *config.Config) { c.API.BaseURL = "" },
			wantErr: "api.base_url",
		},
		{
			name:    "non-http base URL",
			mutate:  func(c *config.Config) { c.API.BaseURL = "ftp://example.com" },
			wantErr: "api.base_url",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *config.Config) { c.API.TimeoutSeconds = 0 },
			wantErr: "api.timeout_seconds",
		},
		{
			name:    "negative cache ttl",
			mutate:  func(c *config.Config) { c.API.CacheTTLSeconds = -1 },
			wantErr: "api.cache_ttl_seconds",
		},
		{
			name:    "bad output format",
			mutate:  func(c *config.Config) { c.Output.DefaultFormat = "xml" },
			wantErr: "output.default_format",
		},
		{
			name:    "bad color mode",
			mutate:  func(c *config.Config) { c.Output.Color = "sometimes" },
			wantErr: "output.color",
		},
		{
			name:    "bad theme",
			mutate:  func(c *config.Config) { c.UI.Theme = "solarized" },
			wantErr: "ui.theme",
		},
		{
			name:    "zero page size",
			mutate:  func(c *config.Config) { c.UI.PageSize = 0 },
			wantErr: "ui.page_size",
		},
		{
			name:    "page size over cap",
			mutate:  func(c *config.Config) { c.UI.PageSize = config.MaxPageSize + 1 },
			wantErr: "ui.page_size",
		},
		{
			name:    "negative buffer size",
			mutate:  func(c *config.Config) { c.UI.BufferSize = -1 },
			wantErr: "ui.buffer_size",
		},
		{
			name:    "bad log level",
			mutate:  func(c *config.Config) { c.Logging.Level = "loud" },
			wantErr: "logging.level",
		},
		{
			name:    "bad log format",
			mutate:  func(c *config.Config) { c.Logging.Format = "xml" },
			wantErr: "logging.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetOutputFormat_FallsBackToTable(t *testing.T) {
	useTempHome(t)

	cfg := config.DefaultConfig()
	cfg.Output.DefaultFormat = ""
	assert.Equal(t, config.FormatTable, cfg.GetOutputFormat())

	cfg.Output.DefaultFormat = config.FormatNDJSON
	assert.Equal(t, config.FormatNDJSON, cfg.GetOutputFormat())
}
