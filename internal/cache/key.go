package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sort"
	"strings"
)

// ErrEmptyKeyParams indicates GenerateKey was called without a method or path.
var ErrEmptyKeyParams = errors.New("cache key requires a method and path")

// KeyParams identifies a cacheable API request.
type KeyParams struct {
	// Method is the HTTP method. Case-insensitive.
	Method string

	// Path is the request path relative to the API base URL.
	Path string

	// Query holds query parameters. Map iteration order never affects the
	// generated key.
	Query map[string]string
}

// GenerateKey produces a deterministic SHA256 cache key for the given request
// parameters. Method case and surrounding whitespace are normalized, and
// query parameters are sorted by name, so equivalent requests always map to
// the same key.
func GenerateKey(p KeyParams) (string, error) {
	method := strings.ToUpper(strings.TrimSpace(p.Method))
	path := strings.TrimSpace(p.Path)
	if method == "" || path == "" {
		return "", ErrEmptyKeyParams
	}

	var b strings.Builder
	b.WriteString(method)
	b.WriteByte('|')
	b.WriteString(path)

	if len(p.Query) > 0 {
		names := make([]string, 0, len(p.Query))
		for name := range p.Query {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			b.WriteByte('|')
			b.WriteString(name)
			b.WriteByte('=')
			b.WriteString(p.Query[name])
		}
	}

	return hashKey(b.String()), nil
}

// GenerateSimpleKey produces a SHA256 key from the given parts joined in order.
func GenerateSimpleKey(parts ...string) string {
	return hashKey(strings.Join(parts, "|"))
}

// GenerateKeyFromURL produces a SHA256 key for a fully-assembled request URL.
func GenerateKeyFromURL(rawURL string) string {
	return hashKey(rawURL)
}

func hashKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
