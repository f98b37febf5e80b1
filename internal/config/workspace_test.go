package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cotstudio/cot/internal/config"
)

func TestResolveWorkspaceDir_FlagWins(t *testing.T) {
	useTempHome(t)
	t.Setenv("COTSTUDIO_WORKSPACE", "/ignored/by/flag")

	dir := t.TempDir()
	got := config.ResolveWorkspaceDir(context.Background(), dir, t.TempDir())

	assert.Equal(t, filepath.Join(dir, ".cotstudio"), got)
}

func TestResolveWorkspaceDir_FlagAlreadyCotstudioDir(t *testing.T) {
	useTempHome(t)

	dir := filepath.Join(t.TempDir(), ".cotstudio")
	got := config.ResolveWorkspaceDir(context.Background(), dir, t.TempDir())

	assert.Equal(t, dir, got)
}

func TestResolveWorkspaceDir_EnvFallback(t *testing.T) {
	useTempHome(t)
	envDir := t.TempDir()
	t.Setenv("COTSTUDIO_WORKSPACE", envDir)

	got := config.ResolveWorkspaceDir(context.Background(), "", t.TempDir())

	assert.Equal(t, filepath.Join(envDir, ".cotstudio"), got)
}

func TestResolveWorkspaceDir_WalkUp(t *testing.T) {
	useTempHome(t)
	t.Setenv("COTSTUDIO_WORKSPACE", "")

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "cotstudio.yaml"), []byte("name: t\n"), 0644))
	nested := filepath.Join(root, "docs", "part1")
	require.NoError(t, os.MkdirAll(nested, 0755))

	got := config.ResolveWorkspaceDir(context.Background(), "", nested)

	assert.Equal(t, filepath.Join(root, ".cotstudio"), got)
}

func TestResolveWorkspaceDir_NoWorkspace(t *testing.T) {
	useTempHome(t)
	t.Setenv("COTSTUDIO_WORKSPACE", "")

	got := config.ResolveWorkspaceDir(context.Background(), "", t.TempDir())

	assert.Empty(t, got)
}

func TestSetResolvedWorkspaceDir_RoundTrip(t *testing.T) {
	config.SetResolvedWorkspaceDir("/some/project/.cotstudio")
	t.Cleanup(func() { config.SetResolvedWorkspaceDir("") })

	assert.Equal(t, "/some/project/.cotstudio", config.GetResolvedWorkspaceDir())
}

func TestNewWithWorkspaceDir_EmptyDirBehavesLikeNew(t *testing.T) {
	useTempHome(t)

	cfg := config.NewWithWorkspaceDir(context.Background(), "")

	assert.Equal(t, config.DefaultBaseURL, cfg.API.BaseURL)
}

func TestNewWithWorkspaceDir_MergesOverlay(t *testing.T) {
	useTempHome(t)

	wsDir := filepath.Join(t.TempDir(), ".cotstudio")
	require.NoError(t, os.MkdirAll(wsDir, 0750))
	overlay := `
api:
  base_url: http://localhost:8420
  timeout_seconds: 15
  cache_enabled: false
  cache_ttl_seconds: 0
`
	require.NoError(t, os.WriteFile(filepath.Join(wsDir, "config.yaml"), []byte(overlay), 0600))

	cfg := config.NewWithWorkspaceDir(context.Background(), wsDir)

	assert.Equal(t, "http://localhost:8420", cfg.API.BaseURL)
	assert.Equal(t, 15, cfg.API.TimeoutSeconds)
	assert.False(t, cfg.API.CacheEnabled)
	// Sections absent from the overlay keep global values.
	assert.Equal(t, config.ThemeDark, cfg.UI.Theme)
}

func TestNewWithWorkspaceDir_MissingOverlayUsesGlobals(t *testing.T) {
	useTempHome(t)

	wsDir := filepath.Join(t.TempDir(), ".cotstudio")
	require.NoError(t, os.MkdirAll(wsDir, 0750))

	cfg := config.NewWithWorkspaceDir(context.Background(), wsDir)

	assert.Equal(t, config.DefaultBaseURL, cfg.API.BaseURL)
}

func TestNewWithWorkspaceDir_CorruptOverlayFallsBack(t *testing.T) {
	useTempHome(t)

	wsDir := filepath.Join(t.TempDir(), ".cotstudio")
	require.NoError(t, os.MkdirAll(wsDir, 0750))
	require.NoError(t, os.WriteFile(filepath.Join(wsDir, "config.yaml"), []byte("{{{{bad"), 0600))

	cfg := config.NewWithWorkspaceDir(context.Background(), wsDir)

	assert.Equal(t, config.DefaultBaseURL, cfg.API.BaseURL)
}
