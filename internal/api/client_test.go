package api

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MubeenKhalid10/SwiftCare/internal/credentials"
	"github.com/MubeenKhalid10/SwiftCare/internal/testutil"
	"github.com/MubeenKhalid10/SwiftCare/pkg/config"
)

func newTestClient(t *testing.T, backend *testutil.StubBackend) (*Client, credentials.Store) {
	t.Helper()

	store := credentials.NewMemoryStore()
	client := New(config.APIConfig{
		BaseURL: backend.URL(),
		Timeout: 5 * time.Second,
	}, store)
	return client, store
}

func TestRawRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("decodes a success response", func(t *testing.T) {
		backend := testutil.NewStubBackend(t)
		backend.Handle("GET", "/ping", testutil.RespondJSON(http.StatusOK, map[string]string{"pong": "yes"}))
		client, _ := newTestClient(t, backend)

		var out map[string]string
		err := client.do(ctx, "GET", "/ping", nil, &out, "")

		require.NoError(t, err)
		assert.Equal(t, "yes", out["pong"])
	})

	t.Run("unreachable backend wraps ErrNetworkUnavailable", func(t *testing.T) {
		store := credentials.NewMemoryStore()
		client := New(config.APIConfig{
			BaseURL: "http://127.0.0.1:1", // nothing listens here
			Timeout: time.Second,
		}, store)

		err := client.do(ctx, "GET", "/ping", nil, nil, "")

		assert.ErrorIs(t, err, ErrNetworkUnavailable)
	})

	t.Run("uses the backend's error message", func(t *testing.T) {
		backend := testutil.NewStubBackend(t)
		backend.Handle("POST", "/auth/login", testutil.RespondError(http.StatusUnauthorized, "Invalid credentials"))
		client, _ := newTestClient(t, backend)

		err := client.do(ctx, "POST", "/auth/login", nil, nil, "")

		var reqErr *RequestError
		require.ErrorAs(t, err, &reqErr)
		assert.Equal(t, http.StatusUnauthorized, reqErr.StatusCode)
		assert.Equal(t, "Invalid credentials", reqErr.Message)
	})

	t.Run("falls back to a generic message on an unparseable body", func(t *testing.T) {
		backend := testutil.NewStubBackend(t)
		backend.Handle("GET", "/doctors", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("<html>bad gateway</html>"))
		})
		client, _ := newTestClient(t, backend)

		err := client.do(ctx, "GET", "/doctors", nil, nil, "")

		var reqErr *RequestError
		require.ErrorAs(t, err, &reqErr)
		assert.Equal(t, http.StatusBadGateway, reqErr.StatusCode)
		assert.Equal(t, "API error: 502 Bad Gateway", reqErr.Message)
	})

	t.Run("attaches the bearer token when given", func(t *testing.T) {
		backend := testutil.NewStubBackend(t)
		var seen string
		backend.Handle("GET", "/doctors", func(w http.ResponseWriter, r *http.Request) {
			seen = testutil.BearerToken(r)
			testutil.WriteJSON(w, http.StatusOK, []any{})
		})
		client, _ := newTestClient(t, backend)

		require.NoError(t, client.do(ctx, "GET", "/doctors", nil, nil, "T1"))
		assert.Equal(t, "T1", seen)

		require.NoError(t, client.do(ctx, "GET", "/doctors", nil, nil, ""))
		assert.Empty(t, seen, "no Authorization header without a token")
	})

	t.Run("carries cookies between requests", func(t *testing.T) {
		backend := testutil.NewStubBackend(t)
		backend.Handle("POST", "/auth/login", func(w http.ResponseWriter, r *http.Request) {
			testutil.SetRefreshCookie(w, "R1")
			testutil.WriteJSON(w, http.StatusOK, map[string]string{"accessToken": "T1"})
		})
		var cookie string
		backend.Handle("POST", "/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
			if c, err := r.Cookie("refreshToken"); err == nil {
				cookie = c.Value
			}
			testutil.WriteJSON(w, http.StatusOK, map[string]string{"accessToken": "T2"})
		})
		client, _ := newTestClient(t, backend)

		require.NoError(t, client.do(ctx, "POST", "/auth/login", nil, nil, ""))
		require.NoError(t, client.do(ctx, "POST", "/auth/refresh", nil, nil, ""))

		assert.Equal(t, "R1", cookie)
	})

	t.Run("honors context cancellation", func(t *testing.T) {
		backend := testutil.NewStubBackend(t)
		backend.Handle("GET", "/slow", func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		})
		client, _ := newTestClient(t, backend)

		cancelled, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
		defer cancel()

		err := client.do(cancelled, "GET", "/slow", nil, nil, "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNetworkUnavailable))
	})
}
