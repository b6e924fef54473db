// Package api implements the HTTP client for the SwiftCare backend: a raw
// JSON request helper, the token refresh routine, and the authenticated
// fetch wrapper with its bounded refresh-and-retry policy.
package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the failure modes callers branch on.
var (
	// ErrNetworkUnavailable indicates the request never reached the backend.
	// It is not retried automatically beyond the built-in refresh path.
	ErrNetworkUnavailable = errors.New("network unavailable")

	// ErrRefreshFailed indicates the refresh endpoint rejected or was
	// unreachable. It is fatal for the session: by the time callers see it,
	// the stored credential and identity snapshot have been cleared, and the
	// next authenticated action must prompt a fresh sign-in.
	ErrRefreshFailed = errors.New("session refresh failed")

	// ErrAuthExpired indicates a second consecutive 401 after a refresh
	// already succeeded for the call. It is terminal: the wrapper never
	// refreshes more than once per call.
	ErrAuthExpired = errors.New("authentication expired")
)

// RequestError is a non-2xx response from the backend, carrying the parsed
// error message when the body had one and a generic status line otherwise.
type RequestError struct {
	StatusCode int    // HTTP status of the response
	Message    string // Human-readable message, surfaced verbatim to callers
}

func (e *RequestError) Error() string {
	return e.Message
}

// newRequestError builds a RequestError from a response status and the
// optional message parsed from its body.
func newRequestError(status int, message string) *RequestError {
	if message == "" {
		message = fmt.Sprintf("API error: %d %s", status, http.StatusText(status))
	}
	return &RequestError{StatusCode: status, Message: message}
}

// isUnauthorized reports whether err is a 401 response.
func isUnauthorized(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.StatusCode == http.StatusUnauthorized
}
