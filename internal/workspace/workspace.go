// Package workspace locates and describes project-local COT Studio
// workspaces: directory trees rooted at a cotstudio.yaml manifest that
// bind local documents to a server-side project.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// manifestNames lists the file names recognized as workspace roots, in
// lookup order.
//
///nolint:gochecknoglobals // Compile-time constant lookup table.
var manifestNames = []string{"cotstudio.yaml", "cotstudio.yml"}

// Sentinel errors for structured error handling across workspace discovery.
var (
	// ErrNoWorkspace indicates no cotstudio.yaml or cotstudio.yml was found.
	ErrNoWorkspace = errors.New(
		"no COT Studio workspace found in current or parent directories; pass --project-dir or run 'cot config init' at the project root")

	// ErrInvalidManifest indicates the manifest file could not be parsed.
	ErrInvalidManifest = errors.New("invalid workspace manifest")
)

// Manifest describes a local workspace bound to a COT Studio project.
// Name labels the checkout, Project names the server-side project the
// workspace imports into, and DocumentDirs lists the directories scanned
// by default when importing documents.
type Manifest struct {
	Name         string   `yaml:"name"`
	Project      string   `yaml:"project"`
	DocumentDirs []string `yaml:"document_dirs,omitempty"`
}

// FindRoot walks up the directory tree from dir looking for cotstudio.yaml
// or cotstudio.yml. Returns the directory containing the manifest, or
// ErrNoWorkspace if no manifest is found before reaching the filesystem root.
func FindRoot(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}

	current := absDir
	for {
		for _, name := range manifestNames {
			candidate := filepath.Join(current, name)
			if _, statErr := os.Stat(candidate); statErr == nil {
				return current, nil
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			// Reached filesystem root.
			return "", ErrNoWorkspace
		}
		current = parent
	}
}

// LoadManifest reads and parses the workspace manifest in root. Returns
// ErrNoWorkspace if root contains no manifest file, or ErrInvalidManifest
// wrapped with parse details if the YAML is malformed.
func LoadManifest(root string) (*Manifest, error) {
	for _, name := range manifestNames {
		path := filepath.Join(root, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("reading manifest %s: %w", path, err)
		}

		var m Manifest
		if unmarshalErr := yaml.Unmarshal(data, &m); unmarshalErr != nil {
			return nil, fmt.Errorf("%w: %s: %s", ErrInvalidManifest, path, unmarshalErr)
		}
		return &m, nil
	}

	return nil, ErrNoWorkspace
}
