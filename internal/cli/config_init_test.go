package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cotstudio/cot/internal/config"
)

func runConfigInit(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewConfigInitCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestConfigInit_Global(t *testing.T) {
	setupTestConfig(t)
	config.SetResolvedWorkspaceDir("")

	out, err := runConfigInit(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized successfully")

	configPath := filepath.Join(os.Getenv("COTSTUDIO_HOME"), "config.yaml")
	_, err = os.Stat(configPath)
	require.NoError(t, err)

	// Rerunning without --force refuses to clobber the file.
	_, err = runConfigInit(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	// --force overwrites.
	_, err = runConfigInit(t, "--force")
	require.NoError(t, err)
}

func TestConfigInit_WorkspaceLocal(t *testing.T) {
	setupTestConfig(t)

	workspaceDir := filepath.Join(t.TempDir(), ".cotstudio")
	config.SetResolvedWorkspaceDir(workspaceDir)
	t.Cleanup(func() { config.SetResolvedWorkspaceDir("") })

	out, err := runConfigInit(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized at "+filepath.Join(workspaceDir, "config.yaml"))
	assert.Contains(t, out, "Created .gitignore")

	_, err = os.Stat(filepath.Join(workspaceDir, "config.yaml"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(workspaceDir, ".gitignore"))
	require.NoError(t, err)

	// Nothing lands in the global config directory.
	_, err = os.Stat(filepath.Join(os.Getenv("COTSTUDIO_HOME"), "config.yaml"))
	assert.True(t, os.IsNotExist(err))
}

func TestConfigInit_GlobalFlagInsideWorkspace(t *testing.T) {
	setupTestConfig(t)

	workspaceDir := filepath.Join(t.TempDir(), ".cotstudio")
	config.SetResolvedWorkspaceDir(workspaceDir)
	t.Cleanup(func() { config.SetResolvedWorkspaceDir("") })

	_, err := runConfigInit(t, "--global")
	require.NoError(t, err)

	// --global targets the home config even inside a workspace.
	_, err = os.Stat(filepath.Join(os.Getenv("COTSTUDIO_HOME"), "config.yaml"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(workspaceDir, "config.yaml"))
	assert.True(t, os.IsNotExist(err))
}
