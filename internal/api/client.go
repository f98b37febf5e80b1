// Package api provides the HTTP client for the COT Studio server API.
//
// The client wraps all v1 endpoints (projects, documents, tasks, graph
// nodes, annotations) with context-aware request helpers, bearer-token
// authentication, request-ID propagation, and optional response caching
// for idempotent GET requests.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cotstudio/cot/internal/cache"
	"github.com/cotstudio/cot/internal/config"
	"github.com/cotstudio/cot/internal/logging"
)

const (
	// DefaultTimeout bounds a single request round trip.
	DefaultTimeout = 30 * time.Second

	// maxResponseBytes caps how much of a response body the client reads.
	maxResponseBytes = 32 << 20 // 32 MiB

	apiPrefix = "/v1"
)

// ErrEmptyBaseURL indicates the client was constructed without a server URL.
var ErrEmptyBaseURL = errors.New("API base URL must not be empty")

// Client is an HTTP client for the COT Studio server.
type Client struct {
	baseURL    string
	token      string
	userAgent  string
	httpClient *http.Client

	// store caches GET responses when non-nil. Endpoints opt in per call
	// site; mutating requests never touch the cache.
	store *cache.Store
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the bearer token sent in the Authorization header.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithTimeout overrides the request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client. Used by tests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithCache enables GET response caching backed by the given store.
func WithCache(store *cache.Store) Option {
	return func(c *Client) {
		c.store = store
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// New creates a Client for the server at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, ErrEmptyBaseURL
	}

	client := &Client{
		baseURL:   trimmed,
		userAgent: "cot-cli",
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// NewFromConfig builds a Client from resolved configuration. The token is
// taken from COTSTUDIO_TOKEN when set, falling back to the config file.
// Additional options are applied after the config-derived ones, so callers
// can override any of them.
func NewFromConfig(cfg *config.Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config must not be nil")
	}

	base := []Option{
		WithToken(config.GetAPIToken()),
		WithTimeout(time.Duration(cfg.API.TimeoutSeconds) * time.Second),
	}

	return New(cfg.API.BaseURL, append(base, opts...)...)
}

// BaseURL returns the normalized server URL the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// getJSON performs a GET request and decodes the JSON response into out.
// When cacheable is true and a cache store is attached, a fresh cached
// response is returned without hitting the network, and misses populate
// the cache after a successful round trip.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any, cacheable bool) error {
	log := logging.FromContext(ctx).With().Str("component", "api").Logger()

	var cacheKey string
	if cacheable && c.store != nil {
		// url.Values.Encode sorts by key, so the key is deterministic
		// for a given request regardless of construction order.
		cacheKey = cache.GenerateSimpleKey(http.MethodGet, path, query.Encode())

		if cached, err := c.store.Lookup(cacheKey); err == nil {
			if decodeErr := json.Unmarshal(cached.Body, out); decodeErr == nil {
				log.Debug().
					Str("path", path).
					Dur("age", cached.Age()).
					Msg("serving response from cache")
				return nil
			}
			// Undecodable bodies are treated as misses and rewritten below.
		}
	}

	body, err := c.doRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}

	if cacheKey != "" {
		if err := c.store.Put(cacheKey, path, body); err != nil && !errors.Is(err, cache.ErrDisabled) {
			log.Warn().Err(err).Str("path", path).Msg("failed to cache response")
		}
	}

	return nil
}

// postJSON performs a POST request with a JSON body, decoding the response
// into out when out is non-nil.
func (c *Client) postJSON(ctx context.Context, path string, payload any, out any) error {
	return c.sendJSON(ctx, http.MethodPost, path, payload, out)
}

// patchJSON performs a PATCH request with a JSON body.
func (c *Client) patchJSON(ctx context.Context, path string, payload any, out any) error {
	return c.sendJSON(ctx, http.MethodPatch, path, payload, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding %s request: %w", path, err)
		}
		body = bytes.NewReader(encoded)
	}

	respBody, err := c.doRequest(ctx, method, path, nil, body)
	if err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}

	return nil
}

// del performs a DELETE request, ignoring the response body.
func (c *Client) del(ctx context.Context, path string) error {
	_, err := c.doRequest(ctx, http.MethodDelete, path, nil, nil)
	return err
}

// doRequest executes a single HTTP round trip and returns the response
// body. Non-2xx responses are converted to *APIError.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) ([]byte, error) {
	log := logging.FromContext(ctx).With().Str("component", "api").Logger()

	fullURL := c.baseURL + apiPrefix + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating %s %s request: %w", method, path, err)
	}

	requestID := logging.GetOrGenerateTraceID(ctx)
	c.setHeaders(req, requestID, body != nil)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting %s %s: %w", method, path, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close response body")
		}
	}()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading %s %s response: %w", method, path, err)
	}

	log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Str("request_id", requestID).
		Msg("API request completed")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, parseAPIError(resp.StatusCode, respBody, requestID)
	}

	return respBody, nil
}

// setHeaders applies the standard request headers.
func (c *Client) setHeaders(req *http.Request, requestID string, hasBody bool) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-Id", requestID)
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
