package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/MubeenKhalid10/SwiftCare/internal/credentials"
	"github.com/MubeenKhalid10/SwiftCare/pkg/config"
)

// Client talks to the SwiftCare backend. It owns the cookie jar that carries
// the HTTP-only refresh credential (application code never reads it, the jar
// just forwards it), the credential store holding the access token, and the
// single-flight group that coalesces concurrent refreshes.
//
// One Client serves the whole application; all methods are safe for
// concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	creds   credentials.Store
	refresh refreshGroup
}

// New creates a Client for the backend at cfg.BaseURL, persisting credentials
// in creds. Every request carries the jar's cookies, so the refresh
// credential set by the backend during login accompanies all later calls.
func New(cfg config.APIConfig, creds credentials.Store) *Client {
	// cookiejar.New only errors on bad PublicSuffixList options; nil is valid.
	jar, _ := cookiejar.New(nil)

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Jar:     jar,
			Timeout: cfg.Timeout,
		},
		creds: creds,
	}
}

// Credentials exposes the underlying store. The session manager uses it for
// restore and logout; other callers should not need it.
func (c *Client) Credentials() credentials.Store {
	return c.creds
}

// errorBody is the shape of backend error responses. Only the message field
// is contractual; anything else in the body is ignored.
type errorBody struct {
	Error string `json:"error"`
}

// do issues one HTTP call with a JSON body and decodes a 2xx JSON response
// into out (skipped when out is nil). When bearer is non-empty it is attached
// as the Authorization header. Cookies for the backend origin ride along via
// the jar on every call.
//
// Failures: transport errors wrap ErrNetworkUnavailable; non-2xx responses
// become *RequestError with the backend's message field when the body parses
// and a generic "status code + status text" message otherwise.
func (c *Client) do(ctx context.Context, method, path string, body, out any, bearer string) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		observeRequest(method, path, 0, time.Since(start))
		log.Debug().Err(err).Str("method", method).Str("path", path).Msg("Request failed to reach backend")
		return fmt.Errorf("%w: %v", ErrNetworkUnavailable, err)
	}
	defer resp.Body.Close()

	observeRequest(method, path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var parsed errorBody
		// A non-JSON or empty error body is fine; fall through to the
		// generic message.
		_ = json.NewDecoder(resp.Body).Decode(&parsed)

		reqErr := newRequestError(resp.StatusCode, parsed.Error)
		log.Debug().
			Int("status", resp.StatusCode).
			Str("method", method).
			Str("path", path).
			Str("message", reqErr.Message).
			Msg("Backend returned error")
		return reqErr
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
