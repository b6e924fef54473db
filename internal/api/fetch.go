package api

import (
	"context"

	"github.com/rs/zerolog/log"
)

// attemptState tracks where a logical call is in its refresh-and-retry
// lifecycle. Each call carries its own state; nothing is shared across calls,
// which is what keeps the at-most-one-refresh bound per call obviously true.
type attemptState int

const (
	firstAttempt attemptState = iota
	retried
)

// Do issues an authenticated call: the stored access token (when present) is
// attached as a bearer header, and a 401 response triggers exactly one
// refresh followed by exactly one reissue of the call.
//
// Outcomes:
//   - success: the 2xx JSON body is decoded into out (out may be nil);
//   - non-401 failure: the underlying error propagates unchanged
//     (*RequestError or ErrNetworkUnavailable);
//   - 401, refresh succeeds, retry succeeds: success, transparently;
//   - 401, refresh fails: ErrRefreshFailed, the call is not reissued and
//     the stored session has been cleared;
//   - 401 again after a successful refresh: ErrAuthExpired, terminal.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	return c.doAuthenticated(ctx, method, path, body, out, firstAttempt)
}

func (c *Client) doAuthenticated(ctx context.Context, method, path string, body, out any, state attemptState) error {
	// The token is re-read on every attempt: after a refresh (ours or a
	// concurrent call's) the store holds the fresh credential.
	err := c.do(ctx, method, path, body, out, c.creds.AccessToken())
	if err == nil || !isUnauthorized(err) {
		return err
	}

	if state == retried {
		log.Warn().Str("method", method).Str("path", path).Msg("Still unauthorized after refresh")
		return ErrAuthExpired
	}

	log.Debug().Str("method", method).Str("path", path).Msg("Access token rejected, refreshing")

	if _, err := c.RefreshAccessToken(ctx); err != nil {
		// ErrRefreshFailed; the session is gone, don't reissue the call.
		return err
	}

	return c.doAuthenticated(ctx, method, path, body, out, retried)
}
