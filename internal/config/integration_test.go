package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubHome points COTSTUDIO_HOME at a fresh temp dir so tests never touch the
// real user configuration.
func stubHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("COTSTUDIO_HOME", home)
	ResetGlobalConfigForTest()
	t.Cleanup(ResetGlobalConfigForTest)
	return home
}

func TestGlobalConfig(t *testing.T) {
	stubHome(t)

	// GetGlobalConfig initializes if needed
	cfg := GetGlobalConfig()
	assert.NotNil(t, cfg)
	assert.Equal(t, FormatTable, cfg.Output.DefaultFormat)

	// Subsequent calls return the same instance
	cfg2 := GetGlobalConfig()
	assert.Same(t, cfg, cfg2)

	// ResetGlobalConfigForTest resets the instance
	ResetGlobalConfigForTest()
	cfg3 := GetGlobalConfig()
	assert.NotSame(t, cfg, cfg3)
}

func TestConfigGetters(t *testing.T) {
	stubHome(t)
	cfg := GetGlobalConfig()
	cfg.Output.DefaultFormat = FormatJSON
	cfg.Logging.Level = "debug"
	cfg.Logging.File = "/tmp/test.log"
	cfg.API.BaseURL = "http://localhost:8420"
	cfg.UI.PageSize = 25

	assert.Equal(t, FormatJSON, GetDefaultOutputFormat())
	assert.Equal(t, "debug", GetLogLevel())
	assert.Equal(t, "/tmp/test.log", GetLogFile())
	assert.Equal(t, "http://localhost:8420", GetAPIBaseURL())
	assert.Equal(t, 25, GetPageSize())
}

func TestGetAPIToken_EnvWins(t *testing.T) {
	stubHome(t)
	cfg := GetGlobalConfig()
	cfg.API.Token = "from-config"

	t.Setenv("COTSTUDIO_TOKEN", "from-env")
	assert.Equal(t, "from-env", GetAPIToken())

	t.Setenv("COTSTUDIO_TOKEN", "")
	assert.Equal(t, "from-config", GetAPIToken())
}

func TestGetStrictServerCompatibility(t *testing.T) {
	stubHome(t)
	cfg := GetGlobalConfig()

	t.Setenv("COTSTUDIO_STRICT_COMPATIBILITY", "")
	cfg.API.StrictCompatibility = false
	assert.False(t, GetStrictServerCompatibility())

	cfg.API.StrictCompatibility = true
	assert.True(t, GetStrictServerCompatibility())

	// Env var takes precedence when it parses as a bool.
	t.Setenv("COTSTUDIO_STRICT_COMPATIBILITY", "false")
	assert.False(t, GetStrictServerCompatibility())

	t.Setenv("COTSTUDIO_STRICT_COMPATIBILITY", "not-a-bool")
	assert.True(t, GetStrictServerCompatibility())
}

func TestEnsureConfigDir(t *testing.T) {
	home := stubHome(t)

	err := EnsureConfigDir()
	require.NoError(t, err)

	stat, err := os.Stat(home)
	require.NoError(t, err)
	assert.True(t, stat.IsDir())
}

func TestEnsureLogDir(t *testing.T) {
	stubHome(t)
	tmpDir := t.TempDir()

	cfg := GetGlobalConfig()
	cfg.Logging.File = filepath.Join(tmpDir, "logs", "subdir", "cot.log")

	err := EnsureLogDir()
	require.NoError(t, err)

	logDir := filepath.Join(tmpDir, "logs", "subdir")
	stat, err := os.Stat(logDir)
	require.NoError(t, err)
	assert.True(t, stat.IsDir())
}

func TestEnsureLogDirError(t *testing.T) {
	stubHome(t)
	cfg := GetGlobalConfig()

	// Use an existing file as a path segment so MkdirAll must fail.
	tmpFile, err := os.CreateTemp("", "test-file")
	require.NoError(t, err)
	tmpFile.Close()
	defer os.Remove(tmpFile.Name())

	cfg.Logging.File = filepath.Join(tmpFile.Name(), "subdir", "cot.log")

	err = EnsureLogDir()
	assert.Error(t, err)
}

func TestGetConfigDir_EnvOverride(t *testing.T) {
	home := stubHome(t)

	dir, err := GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, home, dir)
}

func TestGetConfigDir_DefaultUnderHome(t *testing.T) {
	t.Setenv("COTSTUDIO_HOME", "")

	dir, err := GetConfigDir()
	require.NoError(t, err)

	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(homeDir, ".cotstudio"), dir)
}

func TestGetCacheDir(t *testing.T) {
	home := stubHome(t)

	dir, err := GetCacheDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "cache"), dir)
}

func TestGetExportDir(t *testing.T) {
	home := stubHome(t)

	dir, err := GetExportDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "exports"), dir)
}

func TestEnsureSubDirs(t *testing.T) {
	home := stubHome(t)

	require.NoError(t, EnsureSubDirs())

	for _, sub := range []string{"cache", "exports"} {
		stat, err := os.Stat(filepath.Join(home, sub))
		require.NoError(t, err)
		assert.True(t, stat.IsDir())
	}
}

func TestInitGlobalConfigWithWorkspace(t *testing.T) {
	ctx := context.Background()

	t.Run("workspace_config_overrides_global_api", func(t *testing.T) {
		globalDir := stubHome(t)

		globalCfg := `api:
  base_url: https://api.cotstudio.io
  timeout_seconds: 30
  cache_enabled: true
  cache_ttl_seconds: 900
`
		require.NoError(t, os.WriteFile(filepath.Join(globalDir, "config.yaml"), []byte(globalCfg), 0o644))

		wsDir := filepath.Join(t.TempDir(), ".cotstudio")
		require.NoError(t, os.MkdirAll(wsDir, 0o755))
		wsCfg := `api:
  base_url: http://localhost:8420
  timeout_seconds: 5
  cache_enabled: false
  cache_ttl_seconds: 0
`
		require.NoError(t, os.WriteFile(filepath.Join(wsDir, "config.yaml"), []byte(wsCfg), 0o644))

		InitGlobalConfigWithWorkspace(ctx, wsDir)
		cfg := GetGlobalConfig()

		require.NotNil(t, cfg)
		assert.Equal(t, "http://localhost:8420", cfg.API.BaseURL,
			"workspace api section should override the global one")
		assert.Equal(t, 5, cfg.API.TimeoutSeconds)
	})

	t.Run("workspace_config_inherits_output_from_global", func(t *testing.T) {
		globalDir := stubHome(t)

		globalCfg := `output:
  default_format: json
  color: never
`
		require.NoError(t, os.WriteFile(filepath.Join(globalDir, "config.yaml"), []byte(globalCfg), 0o644))

		wsDir := filepath.Join(t.TempDir(), ".cotstudio")
		require.NoError(t, os.MkdirAll(wsDir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(wsDir, "config.yaml"),
			[]byte("ui:\n  theme: light\n  page_size: 10\n  buffer_size: 2\n"), 0o644))

		InitGlobalConfigWithWorkspace(ctx, wsDir)
		cfg := GetGlobalConfig()

		assert.Equal(t, FormatJSON, cfg.Output.DefaultFormat,
			"output section should be inherited from global config")
		assert.Equal(t, ThemeLight, cfg.UI.Theme)
	})

	t.Run("empty_workspace_dir_loads_global_only", func(t *testing.T) {
		stubHome(t)

		InitGlobalConfigWithWorkspace(ctx, "")
		cfg := GetGlobalConfig()

		assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	})
}
