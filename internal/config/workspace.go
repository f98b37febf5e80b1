package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/cotstudio/cot/internal/logging"
	"github.com/cotstudio/cot/internal/workspace"
)

// resolvedWorkspaceDir holds the resolved workspace directory path for use
// by other config functions during the lifetime of a CLI invocation.
var (
	resolvedWorkspaceDir   string       //nolint:gochecknoglobals // Set once at startup, read by config loaders
	resolvedWorkspaceDirMu sync.RWMutex //nolint:gochecknoglobals // Protects resolvedWorkspaceDir
)

// SetResolvedWorkspaceDir stores the resolved workspace directory for use by
// other config functions.
func SetResolvedWorkspaceDir(dir string) {
	resolvedWorkspaceDirMu.Lock()
	defer resolvedWorkspaceDirMu.Unlock()
	resolvedWorkspaceDir = dir
}

// GetResolvedWorkspaceDir returns the stored resolved workspace directory.
func GetResolvedWorkspaceDir() string {
	resolvedWorkspaceDirMu.RLock()
	defer resolvedWorkspaceDirMu.RUnlock()
	return resolvedWorkspaceDir
}

// ResolveWorkspaceDir determines the workspace-local .cotstudio directory path.
// It checks (in order):
//  1. flagValue (--project-dir CLI flag)
//  2. COTSTUDIO_WORKSPACE env var
//  3. workspace.FindRoot(startDir) walk-up
//
// Returns the path to $PROJECT/.cotstudio/ or empty string if no workspace
// found. Does NOT create the directory (read-only operation). Returned path
// is always absolute (or empty).
func ResolveWorkspaceDir(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return toAbsWorkspaceDir(ctx, flagValue)
	}

	if envDir := os.Getenv("COTSTUDIO_WORKSPACE"); envDir != "" {
		return toAbsWorkspaceDir(ctx, envDir)
	}

	root, err := workspace.FindRoot(startDir)
	if err != nil {
		if !errors.Is(err, workspace.ErrNoWorkspace) {
			logger := logging.FromContext(ctx)
			logger.Warn().
				Str("component", "config").
				Err(err).
				Str("start_dir", startDir).
				Msg("unexpected error during workspace discovery")
		}
		return ""
	}

	return toAbsWorkspaceDir(ctx, root)
}

// NewWithWorkspaceDir creates a Config by loading global config then
// shallow-merging workspace-local config on top. If workspaceDir is empty,
// behaves identically to New().
func NewWithWorkspaceDir(ctx context.Context, workspaceDir string) *Config {
	cfg := New()

	if workspaceDir == "" {
		return cfg
	}

	overlayPath := filepath.Join(workspaceDir, configFileName)
	if _, err := os.Stat(overlayPath); err != nil {
		// Missing workspace config is not an error — use global defaults.
		return cfg
	}

	cfgCopy := New()
	if err := ShallowMergeYAML(cfgCopy, overlayPath); err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Str("operation", "merge_workspace_config").
			Err(err).
			Str("overlay_path", overlayPath).
			Msg("failed to merge workspace config, using global defaults")
		return cfg
	}

	return cfgCopy
}

// toAbsWorkspaceDir converts dir to an absolute path and appends ".cotstudio".
// If the path already ends with ".cotstudio", it is returned as-is (after
// resolving to an absolute path) to prevent double-append.
func toAbsWorkspaceDir(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for workspace directory")
		abs = dir
	}

	if filepath.Base(abs) == ".cotstudio" {
		return abs
	}

	return filepath.Join(abs, ".cotstudio")
}
