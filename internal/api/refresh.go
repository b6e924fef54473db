package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/MubeenKhalid10/SwiftCare/internal/models"
)

type refreshGroup = singleflight.Group

// RefreshAccessToken exchanges the ambient refresh cookie for a new access
// token and persists it. No access token or body is sent: the backend
// authenticates the call purely from the HTTP-only cookie in the jar.
//
// On any failure, rejection or unreachable backend alike, the stored access
// token and identity snapshot are cleared and the returned error wraps
// ErrRefreshFailed: the session is dead and the caller must not carry on
// as if signed in.
//
// Concurrent callers share one in-flight refresh. When several requests hit
// 401 at once, only one refresh reaches the backend and all callers observe
// its outcome, so a rotating refresh cookie is never spent twice.
func (c *Client) RefreshAccessToken(ctx context.Context) (string, error) {
	token, err, _ := c.refresh.Do("refresh", func() (any, error) {
		var resp models.RefreshResponse
		if err := c.do(ctx, http.MethodPost, "/auth/refresh", nil, &resp, ""); err != nil {
			// Hard logout: without a working refresh credential the stored
			// token and snapshot are stale at best.
			c.creds.ClearAccessToken()
			c.creds.ClearUser()

			tokenRefreshTotal.WithLabelValues("failed").Inc()
			log.Warn().Err(err).Msg("Token refresh failed, clearing stored session")
			return nil, fmt.Errorf("%w: %v", ErrRefreshFailed, err)
		}

		c.creds.SetAccessToken(resp.AccessToken)
		tokenRefreshTotal.WithLabelValues("success").Inc()
		log.Debug().Msg("Access token refreshed")
		return resp.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	return token.(string), nil
}
