package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatStatus(t *testing.T) {
	tests := []struct {
		name           string
		status         StepStatus
		nonInteractive bool
		want           string
	}{
		{name: "success tty", status: StepSuccess, want: "✓"},
		{name: "warning tty", status: StepWarning, want: "!"},
		{name: "skipped tty", status: StepSkipped, want: "-"},
		{name: "error tty", status: StepError, want: "✗"},
		{name: "success plain", status: StepSuccess, nonInteractive: true, want: "[OK]"},
		{name: "warning plain", status: StepWarning, nonInteractive: true, want: "[WARN]"},
		{name: "skipped plain", status: StepSkipped, nonInteractive: true, want: "[SKIP]"},
		{name: "error plain", status: StepError, nonInteractive: true, want: "[ERR]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatStatus(tt.status, tt.nonInteractive))
		})
	}
}

func TestStepDisplayVersion(t *testing.T) {
	step := stepDisplayVersion()

	assert.Equal(t, StepSuccess, step.Status)
	assert.Contains(t, step.Message, "COT Studio client v")
}

func TestStepCreateDirectories(t *testing.T) {
	setupTestConfig(t)

	steps := stepCreateDirectories()
	require.Len(t, steps, 4)
	for _, step := range steps {
		assert.Equal(t, StepSuccess, step.Status)
		assert.Contains(t, step.Message, "Created")
	}

	home := os.Getenv("COTSTUDIO_HOME")
	for _, sub := range []string{"cache", "exports", "logs"} {
		info, err := os.Stat(filepath.Join(home, sub))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}

	// Idempotent: a second run detects the directories without touching them.
	steps = stepCreateDirectories()
	require.Len(t, steps, 4)
	for _, step := range steps {
		assert.Equal(t, StepSuccess, step.Status)
		assert.Contains(t, step.Message, "Directory exists")
	}
}

func TestStepInitConfig(t *testing.T) {
	setupTestConfig(t)

	step := stepInitConfig()
	assert.Equal(t, StepSuccess, step.Status)
	assert.Contains(t, step.Message, "Initialized config")

	configPath := filepath.Join(os.Getenv("COTSTUDIO_HOME"), "config.yaml")
	_, err := os.Stat(configPath)
	require.NoError(t, err)

	// An existing config file is preserved.
	step = stepInitConfig()
	assert.Equal(t, StepSuccess, step.Status)
	assert.Contains(t, step.Message, "Config already exists")
}
