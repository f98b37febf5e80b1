// Package cache persists GET responses from the COT Studio server so
// repeated CLI invocations avoid redundant round trips.
//
// Each cached response is one JSON file under ~/.cotstudio/cache/ (or
// COTSTUDIO_CACHE_DIR), named by the SHA256 digest of the request, carrying
// the raw body plus fetch and staleness timestamps. Freshness is bounded by
// a configurable TTL (default 15 minutes) from the config file or the
// --cache-ttl flag; stale and unreadable files are evicted on lookup and
// swept when the store opens.
//
// The cache is built for CLI workflows where the same query repeats within
// a short window, such as paging through one document list or re-running an
// export.
package cache
