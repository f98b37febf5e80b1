package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cotstudio/cot/internal/logging"
)

// ErrUnsupportedManifest indicates the manifest extension is neither
// yaml nor json.
var ErrUnsupportedManifest = errors.New("unsupported manifest format (expected .yaml, .yml or .json)")

// manifestDocument is one file listed in an import manifest. Relative
// paths resolve against the manifest's own directory.
type manifestDocument struct {
	Path  string   `json:"path" yaml:"path"`
	Title string   `json:"title,omitempty" yaml:"title,omitempty"`
	Tags  []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

type manifest struct {
	Documents []manifestDocument `json:"documents" yaml:"documents"`
}

// LoadManifest reads an import manifest and stages its documents. Every
// listed file must exist; a manifest that lists nothing is an error.
func LoadManifest(ctx context.Context, path string) ([]Entry, error) {
	log := logging.FromContext(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var m manifest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedManifest, path)
	}

	if len(m.Documents) == 0 {
		return nil, fmt.Errorf("%w in manifest %s", ErrNoDocuments, path)
	}

	baseDir := filepath.Dir(path)
	entries := make([]Entry, 0, len(m.Documents))
	for i, doc := range m.Documents {
		if doc.Path == "" {
			return nil, fmt.Errorf("manifest %s: entry %d has no path", path, i+1)
		}

		resolved := doc.Path
		if !filepath.IsAbs(resolved) {
			resolved = filepath.Join(baseDir, resolved)
		}

		info, err := os.Stat(resolved)
		if err != nil {
			return nil, fmt.Errorf("manifest entry %q: %w", doc.Path, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("manifest entry %q is a directory, not a document", doc.Path)
		}

		title := doc.Title
		if title == "" {
			title = titleFromPath(resolved)
		}

		entries = append(entries, Entry{
			Path:      resolved,
			Title:     title,
			MediaType: detectMediaType(resolved),
			SizeBytes: info.Size(),
			Tags:      doc.Tags,
		})
	}

	log.Debug().
		Str("component", "importer").
		Str("manifest", path).
		Int("staged", len(entries)).
		Msg("manifest loaded")

	return entries, nil
}
