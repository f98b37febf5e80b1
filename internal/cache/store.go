package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/cotstudio/cot/internal/logging"
)

// Lookup outcomes and usage errors.
var (
	ErrMiss     = errors.New("no cached response for request")
	ErrStale    = errors.New("cached response is stale")
	ErrBadKey   = errors.New("cache key must be a SHA256 hex digest")
	ErrDisabled = errors.New("response cache is disabled")
)

const fileSuffix = ".json"

// Store caches GET responses as one JSON file per request under a single
// directory. A nil *Store is a valid disabled cache: every method returns
// ErrDisabled, so call sites need no separate enabled flag.
//
// Safe for concurrent use within one process. Cross-process safety comes
// from the temp-file-and-rename publish in Put.
type Store struct {
	dir string
	ttl time.Duration
	log zerolog.Logger
	mu  sync.RWMutex
}

// Open creates the cache directory if needed and returns a Store that
// serves responses fresh for ttl.
func Open(ctx context.Context, dir string, ttl time.Duration) (*Store, error) {
	if dir == "" {
		return nil, errors.New("cache directory must not be empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("cache TTL must be positive, got %s", ttl)
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	return &Store{
		dir: dir,
		ttl: ttl,
		log: logging.FromContext(ctx).With().Str("component", "cache").Logger(),
	}, nil
}

// Lookup returns the fresh cached response for key. A missing entry is
// ErrMiss; a stale one is evicted and reported as ErrStale. Corrupt files
// are evicted and treated as misses so the next Put rewrites them cleanly.
func (s *Store) Lookup(key string) (*Response, error) {
	if s == nil {
		return nil, ErrDisabled
	}
	if !validKey(key) {
		return nil, ErrBadKey
	}

	s.mu.RLock()
	data, err := os.ReadFile(s.filePath(key))
	s.mu.RUnlock()
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("reading cache file: %w", err)
	}

	resp, err := decodeResponse(data)
	if err != nil {
		s.log.Debug().Err(err).Str("key", key).Msg("evicting unreadable cache file")
		s.removeEntry(key)
		return nil, ErrMiss
	}

	if resp.Stale() {
		s.removeEntry(key)
		return nil, ErrStale
	}

	return resp, nil
}

// Put stores body as the cached response for key, fresh until now plus the
// store TTL. The entry is written to a temp file and renamed into place so
// a concurrent Lookup never observes a half-written file.
func (s *Store) Put(key, path string, body json.RawMessage) error {
	if s == nil {
		return ErrDisabled
	}
	if !validKey(key) {
		return ErrBadKey
	}

	now := time.Now()
	data, err := encodeResponse(&Response{
		RequestKey: key,
		Path:       path,
		Body:       body,
		FetchedAt:  now,
		StaleAt:    now.Add(s.ttl),
	})
	if err != nil {
		return fmt.Errorf("encoding cache file: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, "put-*")
	if err != nil {
		return fmt.Errorf("creating cache temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, writeErr := tmp.Write(data); writeErr != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing cache temp file: %w", writeErr)
	}
	if closeErr := tmp.Close(); closeErr != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("closing cache temp file: %w", closeErr)
	}

	if renameErr := os.Rename(tmpName, s.filePath(key)); renameErr != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("publishing cache file: %w", renameErr)
	}

	return nil
}

// Evict removes the cached response for key. Absent entries are not an
// error.
func (s *Store) Evict(key string) error {
	if s == nil {
		return ErrDisabled
	}
	if !validKey(key) {
		return ErrBadKey
	}

	s.removeEntry(key)
	return nil
}

// Sweep deletes every stale or unreadable cache file and reports how many
// were removed. Runs at store open, not on the request path.
func (s *Store) Sweep() (int, error) {
	if s == nil {
		return 0, ErrDisabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("reading cache directory: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileSuffix) {
			continue
		}

		full := filepath.Join(s.dir, entry.Name())
		data, readErr := os.ReadFile(full)
		if readErr != nil {
			continue
		}

		resp, decodeErr := decodeResponse(data)
		if decodeErr == nil && !resp.Stale() {
			continue
		}
		if os.Remove(full) == nil {
			removed++
		}
	}

	return removed, nil
}

func (s *Store) filePath(key string) string {
	return filepath.Join(s.dir, key+fileSuffix)
}

func (s *Store) removeEntry(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.filePath(key)); err != nil && !os.IsNotExist(err) {
		s.log.Debug().Err(err).Str("key", key).Msg("could not remove cache file")
	}
}

// validKey accepts exactly what key.go produces: 64 lowercase hex
// characters. Anything else would also be unsafe as a file name.
func validKey(key string) bool {
	if len(key) != 64 {
		return false
	}
	for i := 0; i < len(key); i++ {
		c := key[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
