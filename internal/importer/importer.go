// Package importer collects local documents for upload into a COT Studio
// project. It can scan a directory tree for supported document types or
// read an import manifest (yaml or json) that lists files explicitly.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cotstudio/cot/internal/api"
	"github.com/cotstudio/cot/internal/logging"
)

// MaxDocumentBytes is the per-document upload ceiling.
const MaxDocumentBytes = 16 << 20 // 16 MiB

// Sentinel errors for import collection.
var (
	// ErrNoDocuments indicates a scan or manifest produced an empty set.
	ErrNoDocuments = errors.New("no importable documents found")

	// ErrDocumentTooLarge indicates a document exceeds MaxDocumentBytes.
	ErrDocumentTooLarge = errors.New("document exceeds the upload size limit")
)

// mediaTypes maps supported extensions to upload media types. Directory
// scans import only these; manifest entries may list anything and fall
// back to extension sniffing.
var mediaTypes = map[string]string{
	".md":   "text/markdown",
	".txt":  "text/plain",
	".html": "text/html",
	".htm":  "text/html",
	".json": "application/json",
	".csv":  "text/csv",
	".xml":  "application/xml",
	".rst":  "text/x-rst",
}

// Entry is one document staged for upload: where it lives, how it will be
// titled, and what the server should treat it as.
type Entry struct {
	Path      string
	Title     string
	MediaType string
	SizeBytes int64
	Tags      []string
}

// Upload reads the document from disk and builds the API request body.
// Files over MaxDocumentBytes are refused before reading.
func (e Entry) Upload() (api.DocumentUpload, error) {
	info, err := os.Stat(e.Path)
	if err != nil {
		return api.DocumentUpload{}, fmt.Errorf("reading document %s: %w", e.Path, err)
	}
	if info.Size() > MaxDocumentBytes {
		return api.DocumentUpload{}, fmt.Errorf("%w: %s is %d bytes", ErrDocumentTooLarge, e.Path, info.Size())
	}

	data, err := os.ReadFile(e.Path)
	if err != nil {
		return api.DocumentUpload{}, fmt.Errorf("reading document %s: %w", e.Path, err)
	}

	return api.DocumentUpload{
		Title:    e.Title,
		Source:   e.Path,
		MimeType: e.MediaType,
		Content:  string(data),
		Tags:     e.Tags,
	}, nil
}

// Collect stages documents from path: directories are scanned recursively,
// anything else is read as an import manifest.
func Collect(ctx context.Context, path string) ([]Entry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading import path: %w", err)
	}

	if info.IsDir() {
		return ScanDir(ctx, path)
	}
	return LoadManifest(ctx, path)
}

// ScanDir walks root and stages every supported document found. Hidden
// directories (.git, .cotstudio) are skipped. The result is sorted by path
// so repeated imports batch identically.
func ScanDir(ctx context.Context, root string) ([]Entry, error) {
	log := logging.FromContext(ctx)

	var entries []Entry
	var skipped int

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("scanning %s: %w", path, walkErr)
		}

		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		mediaType, ok := mediaTypes[strings.ToLower(filepath.Ext(d.Name()))]
		if !ok {
			skipped++
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("reading file info for %s: %w", path, err)
		}

		entries = append(entries, Entry{
			Path:      path,
			Title:     titleFromPath(path),
			MediaType: mediaType,
			SizeBytes: info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%w under %s", ErrNoDocuments, root)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})

	log.Debug().
		Str("component", "importer").
		Str("root", root).
		Int("staged", len(entries)).
		Int("skipped", skipped).
		Msg("directory scan complete")

	return entries, nil
}

// detectMediaType resolves the media type for a manifest-listed file.
func detectMediaType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if mediaType, ok := mediaTypes[ext]; ok {
		return mediaType
	}
	if mediaType := mime.TypeByExtension(ext); mediaType != "" {
		if idx := strings.IndexByte(mediaType, ';'); idx >= 0 {
			mediaType = mediaType[:idx]
		}
		return mediaType
	}
	return "application/octet-stream"
}

func titleFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
