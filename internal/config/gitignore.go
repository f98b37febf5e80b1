package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// workspaceIgnoreRules lists the .cotstudio/ artifacts that never belong in
// version control. The config file itself stays tracked so a workspace can
// share settings.
var workspaceIgnoreRules = []string{
	"cache/",
	"exports/",
	"*.log",
}

// GitignoreContent returns the .gitignore body written into workspace-local
// .cotstudio/ directories.
func GitignoreContent() string {
	var b strings.Builder
	b.WriteString("# COT Studio workspace-local data (auto-generated)\n")
	b.WriteString("# Config is tracked; user-specific state is not.\n")
	for _, rule := range workspaceIgnoreRules {
		b.WriteString(rule)
		b.WriteByte('\n')
	}
	return b.String()
}

// EnsureGitignore writes the workspace .gitignore into dir unless one is
// already there, creating dir as needed. Reports whether a new file was
// written. O_EXCL makes create-if-absent atomic, so a user's hand-edited
// .gitignore is never clobbered even by a racing init.
func EnsureGitignore(dir string) (bool, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return false, fmt.Errorf("creating directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, ".gitignore")
	//nolint:gosec // .gitignore must be world-readable (0644).
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return false, nil
		}
		return false, fmt.Errorf("creating .gitignore at %s: %w", path, err)
	}

	if _, writeErr := f.WriteString(GitignoreContent()); writeErr != nil {
		_ = f.Close()
		return false, fmt.Errorf("writing .gitignore at %s: %w", path, writeErr)
	}
	if closeErr := f.Close(); closeErr != nil {
		return false, fmt.Errorf("writing .gitignore at %s: %w", path, closeErr)
	}

	return true, nil
}
