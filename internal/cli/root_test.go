package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) (string, bool) { return "", false }

func TestNewRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd("1.0.0-test")

	var names []string
	for _, sub := range root.Commands() {
		names = append(names, sub.Name())
	}

	expected := []string{
		"project", "docs", "tasks", "graph",
		"studio", "config", "setup", "status",
	}
	for _, want := range expected {
		assert.Contains(t, names, want)
	}
}

func TestRootCmd_CacheTTLValidation(t *testing.T) {
	setupTestConfig(t)

	cmd := NewRootCmdWithArgs("test", nil, noEnv)
	require.NoError(t, cmd.PersistentFlags().Set("cache-ttl", "-1"))

	err := cmd.PersistentPreRunE(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache-ttl must be >= 0")
}

func TestResolveWorkspace(t *testing.T) {
	setupTestConfig(t)
	t.Setenv("COTSTUDIO_WORKSPACE", "")
	ctx := context.Background()

	t.Run("flag wins over env", func(t *testing.T) {
		flagDir := t.TempDir()
		lookup := func(key string) (string, bool) {
			if key == "COTSTUDIO_WORKSPACE" {
				return "/elsewhere", true
			}
			return "", false
		}

		got := resolveWorkspace(ctx, flagDir, t.TempDir(), lookup)
		assert.Equal(t, filepath.Join(flagDir, ".cotstudio"), got)
	})

	t.Run("env used when flag empty", func(t *testing.T) {
		envDir := t.TempDir()
		lookup := func(key string) (string, bool) {
			if key == "COTSTUDIO_WORKSPACE" {
				return envDir, true
			}
			return "", false
		}

		got := resolveWorkspace(ctx, "", t.TempDir(), lookup)
		assert.Equal(t, filepath.Join(envDir, ".cotstudio"), got)
	})

	t.Run("walk-up finds manifest", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(
			filepath.Join(root, "cotstudio.yaml"),
			[]byte("name: test-workspace\n"), 0o600))
		nested := filepath.Join(root, "docs", "corpus")
		require.NoError(t, os.MkdirAll(nested, 0o750))

		got := resolveWorkspace(ctx, "", nested, noEnv)
		assert.Equal(t, filepath.Join(root, ".cotstudio"), got)
	})

	t.Run("no workspace resolves empty", func(t *testing.T) {
		got := resolveWorkspace(ctx, "", t.TempDir(), noEnv)
		assert.Empty(t, got)
	})
}
