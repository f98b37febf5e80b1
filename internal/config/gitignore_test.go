package config_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cotstudio/cot/internal/config"
)

func TestEnsureGitignore(t *testing.T) {
	t.Parallel()

	t.Run("creates the file with the workspace rules", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()

		created, err := config.EnsureGitignore(dir)
		require.NoError(t, err)
		assert.True(t, created)

		data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
		require.NoError(t, err)
		content := string(data)
		assert.Equal(t, config.GitignoreContent(), content)
		for _, rule := range []string{"cache/", "exports/", "*.log"} {
			assert.Contains(t, content, rule)
		}
	})

	t.Run("creates missing parent directories", func(t *testing.T) {
		t.Parallel()
		nested := filepath.Join(t.TempDir(), "project", ".cotstudio")

		created, err := config.EnsureGitignore(nested)
		require.NoError(t, err)
		assert.True(t, created)
		assert.FileExists(t, filepath.Join(nested, ".gitignore"))
	})

	t.Run("second call is a no-op", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()

		created, err := config.EnsureGitignore(dir)
		require.NoError(t, err)
		require.True(t, created)

		created, err = config.EnsureGitignore(dir)
		require.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("hand-edited file is preserved", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, ".gitignore")
		custom := "# my rules\nnode_modules/\n"
		require.NoError(t, os.WriteFile(path, []byte(custom), 0o644))

		created, err := config.EnsureGitignore(dir)
		require.NoError(t, err)
		assert.False(t, created)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, custom, string(data))
	})

	t.Run("unwritable directory reported", func(t *testing.T) {
		t.Parallel()
		if runtime.GOOS == "windows" {
			t.Skip("file permission tests not reliable on Windows")
		}

		dir := filepath.Join(t.TempDir(), "readonly")
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.Chmod(dir, 0o555))
		t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

		created, err := config.EnsureGitignore(dir)
		require.Error(t, err)
		assert.False(t, created)
	})
}
