package cache

import (
	"encoding/json"
	"fmt"
	"time"
)

// Response is one cached GET response from the COT Studio server. The body
// stays raw JSON so the API client can decode it into whatever typed page
// the endpoint returns.
type Response struct {
	// RequestKey is the SHA256 digest identifying the request (see key.go).
	RequestKey string

	// Path is the request path the body answers. Stored so cache files can
	// be matched to endpoints when inspected on disk.
	Path string

	// Body is the verbatim response body.
	Body json.RawMessage

	// FetchedAt is when the response came back from the server.
	FetchedAt time.Time

	// StaleAt is when the response stops being served.
	StaleAt time.Time
}

// Stale reports whether the response has passed its freshness deadline.
func (r *Response) Stale() bool {
	return time.Now().After(r.StaleAt)
}

// Age returns how long ago the response was fetched.
func (r *Response) Age() time.Duration {
	return time.Since(r.FetchedAt)
}

// responseFile is the on-disk JSON shape. Timestamps are RFC3339 strings so
// cache files stay readable when inspected by hand.
type responseFile struct {
	RequestKey string          `json:"request_key"`
	Path       string          `json:"path"`
	Body       json.RawMessage `json:"body"`
	FetchedAt  string          `json:"fetched_at"`
	StaleAt    string          `json:"stale_at"`
}

func encodeResponse(r *Response) ([]byte, error) {
	return json.MarshalIndent(responseFile{
		RequestKey: r.RequestKey,
		Path:       r.Path,
		Body:       r.Body,
		FetchedAt:  r.FetchedAt.Format(time.RFC3339),
		StaleAt:    r.StaleAt.Format(time.RFC3339),
	}, "", "  ")
}

func decodeResponse(data []byte) (*Response, error) {
	var f responseFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding cache file: %w", err)
	}

	fetched, err := time.Parse(time.RFC3339, f.FetchedAt)
	if err != nil {
		return nil, fmt.Errorf("cache file fetched_at: %w", err)
	}
	stale, err := time.Parse(time.RFC3339, f.StaleAt)
	if err != nil {
		return nil, fmt.Errorf("cache file stale_at: %w", err)
	}

	return &Response{
		RequestKey: f.RequestKey,
		Path:       f.Path,
		Body:       f.Body,
		FetchedAt:  fetched,
		StaleAt:    stale,
	}, nil
}
