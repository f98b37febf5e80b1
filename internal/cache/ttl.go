package cache

import (
	"fmt"
	"os"
	"time"
)

// Freshness bounds for cached responses. The CLI exposes the TTL as whole
// seconds (config file and --cache-ttl flag); ResolveTTL converts and
// bounds-checks that value.
const (
	// DefaultTTL is how long responses stay fresh when nothing overrides it.
	DefaultTTL = 15 * time.Minute

	// MinTTL is the shortest TTL worth paying the disk round trip for.
	MinTTL = time.Minute

	// MaxTTL caps how long a response may be served without revalidation.
	MaxTTL = 7 * 24 * time.Hour
)

// EnvCacheDir overrides the cache directory when set.
const EnvCacheDir = "COTSTUDIO_CACHE_DIR"

// ErrTTLOutOfRange rejects configured TTLs outside [MinTTL, MaxTTL].
var ErrTTLOutOfRange = fmt.Errorf("cache TTL must be between %s and %s", MinTTL, MaxTTL)

// ResolveTTL converts a TTL configured in whole seconds to a duration.
// Zero selects DefaultTTL; out-of-range values are rejected.
func ResolveTTL(seconds int) (time.Duration, error) {
	if seconds == 0 {
		return DefaultTTL, nil
	}

	ttl := time.Duration(seconds) * time.Second
	if ttl < MinTTL || ttl > MaxTTL {
		return 0, fmt.Errorf("%w: got %s", ErrTTLOutOfRange, ttl)
	}
	return ttl, nil
}

// DirFromEnv returns the COTSTUDIO_CACHE_DIR override, or "" when unset.
func DirFromEnv() string {
	return os.Getenv(EnvCacheDir)
}
