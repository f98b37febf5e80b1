package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for structured error handling across the API client.
var (
	// ErrNotFound indicates the requested resource does not exist on the server.
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized indicates the request was rejected for a missing or
	// invalid token; run 'cot config init' and set api.token or COTSTUDIO_TOKEN.
	ErrUnauthorized = errors.New("unauthorized; set api.token in config or the COTSTUDIO_TOKEN environment variable")

	// ErrIncompatibleServer indicates the server version is outside the
	// supported range.
	ErrIncompatibleServer = errors.New("server version is not supported by this CLI")
)

// APIError is a structured error returned by the COT Studio server.
//
//nolint:revive // APIError is the canonical name for this exported type.
type APIError struct {
	// StatusCode is the HTTP status of the failed response.
	StatusCode int

	// Code is the machine-readable server error code, if provided.
	Code string

	// Message is the human-readable error message.
	Message string

	// RequestID echoes the X-Request-Id header for server-side correlation.
	RequestID string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("API %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("API %d: %s", e.StatusCode, e.Message)
}

// Unwrap maps well-known status codes onto sentinel errors so callers can
// use errors.Is without inspecting status codes.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	default:
		return nil
	}
}

// errorBody is the server's JSON error envelope.
type errorBody struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// parseAPIError builds an *APIError from a non-2xx response body. Falls back
// to the raw body when the envelope does not parse.
func parseAPIError(statusCode int, body []byte, requestID string) *APIError {
	apiErr := &APIError{
		StatusCode: statusCode,
		RequestID:  requestID,
	}

	var envelope errorBody
	if json.Unmarshal(body, &envelope) == nil && envelope.Error != "" {
		apiErr.Message = envelope.Error
		apiErr.Code = envelope.Code
		if envelope.RequestID != "" {
			apiErr.RequestID = envelope.RequestID
		}
		return apiErr
	}

	apiErr.Message = string(body)
	return apiErr
}
