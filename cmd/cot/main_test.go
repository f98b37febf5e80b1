package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cotstudio/cot/internal/cli"
	"github.com/cotstudio/cot/pkg/version"
)

func TestMainComponents(t *testing.T) {
	t.Run("version available", func(t *testing.T) {
		v := version.GetVersion()
		if v == "" {
			t.Error("expected version to be non-empty")
		}
	})

	t.Run("cli root command", func(t *testing.T) {
		root := cli.NewRootCmd(version.GetVersion())
		if root == nil {
			t.Error("expected root command to be non-nil")
		}
		if root.Use == "" {
			t.Error("expected root command to have a use string")
		}
	})
}

// Exit codes surfaced through ExitError must survive error wrapping; plain
// errors exit 1.
func TestExtractExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "unhealthy server exit code",
			err:  &cli.ExitError{Code: cli.ExitCodeUnhealthy, Reason: "server unreachable"},
			want: cli.ExitCodeUnhealthy,
		},
		{
			name: "partial import exit code",
			err:  &cli.ExitError{Code: cli.ExitCodePartialFailure, Reason: "3 of 10 uploads failed"},
			want: cli.ExitCodePartialFailure,
		},
		{
			name: "wrapped exit error",
			err:  fmt.Errorf("import: %w", &cli.ExitError{Code: cli.ExitCodePartialFailure, Reason: "partial"}),
			want: cli.ExitCodePartialFailure,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractExitCode(tt.err))
		})
	}
}
