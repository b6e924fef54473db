package mockapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MubeenKhalid10/SwiftCare/pkg/config"
)

func testMockConfig() config.MockConfig {
	return config.MockConfig{
		Environment:    "test",
		JWTSecret:      []byte("test-secret-key-at-least-32-bytes!!"),
		AccessExpiry:   15 * time.Minute,
		RefreshExpiry:  720 * time.Hour,
		AllowedOrigins: []string{"*"},
	}
}

func mustParseURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func setupMockServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()

	server := httptest.NewServer(NewServer(testMockConfig()).Router())
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return server, &http.Client{Jar: jar}
}

func postJSON(t *testing.T, client *http.Client, url string, body any) *http.Response {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := client.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestLoginEndpoint(t *testing.T) {
	server, client := setupMockServer(t)

	t.Run("issues tokens for the demo patient", func(t *testing.T) {
		resp := postJSON(t, client, server.URL+"/auth/login", map[string]string{
			"email":    "patient@swiftcare.test",
			"password": "patient123",
		})

		require.Equal(t, http.StatusOK, resp.StatusCode)
		var body authResponse
		decodeBody(t, resp, &body)
		assert.NotEmpty(t, body.AccessToken)
		assert.Equal(t, "patient", string(body.Role))
		assert.Equal(t, "1", body.UserID)

		cookies := client.Jar.Cookies(mustParseURL(t, server.URL))
		require.NotEmpty(t, cookies)
		assert.Equal(t, refreshCookieName, cookies[0].Name)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		resp := postJSON(t, client, server.URL+"/auth/login", map[string]string{
			"email":    "patient@swiftcare.test",
			"password": "nope",
		})

		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		var body map[string]string
		decodeBody(t, resp, &body)
		assert.Equal(t, "Invalid credentials", body["error"])
	})
}

func TestSignupEndpoint(t *testing.T) {
	server, client := setupMockServer(t)

	t.Run("creates a patient account", func(t *testing.T) {
		resp := postJSON(t, client, server.URL+"/auth/signup", map[string]string{
			"name":     "New Patient",
			"email":    "new@swiftcare.test",
			"password": "secret123",
			"roleHint": "patient",
		})

		require.Equal(t, http.StatusOK, resp.StatusCode)
		var body authResponse
		decodeBody(t, resp, &body)
		assert.NotEmpty(t, body.UserID)
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		resp := postJSON(t, client, server.URL+"/auth/signup", map[string]string{
			"email":    "patient@swiftcare.test",
			"password": "secret123",
			"roleHint": "patient",
		})
		defer resp.Body.Close()

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("rejects doctor signup", func(t *testing.T) {
		resp := postJSON(t, client, server.URL+"/auth/signup", map[string]string{
			"email":    "eve@swiftcare.test",
			"password": "secret123",
			"roleHint": "doctor",
		})
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGoogleAuthEndpoint(t *testing.T) {
	server, client := setupMockServer(t)

	mintIDToken := func(t *testing.T, claims jwt.MapClaims) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte("any-key-the-mock-does-not-verify"))
		require.NoError(t, err)
		return signed
	}

	t.Run("creates an account from the token claims", func(t *testing.T) {
		idToken := mintIDToken(t, jwt.MapClaims{
			"email": "google-user@gmail.com",
			"name":  "Google User",
		})

		resp := postJSON(t, client, server.URL+"/auth/google", map[string]string{
			"idToken":  idToken,
			"roleHint": "patient",
		})

		require.Equal(t, http.StatusOK, resp.StatusCode)
		var body authResponse
		decodeBody(t, resp, &body)
		assert.Equal(t, "patient", string(body.Role))
		assert.NotEmpty(t, body.AccessToken)
	})

	t.Run("rejects garbage tokens", func(t *testing.T) {
		resp := postJSON(t, client, server.URL+"/auth/google", map[string]string{
			"idToken": "not-a-jwt",
		})
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestRefreshEndpoint(t *testing.T) {
	server, client := setupMockServer(t)

	login := func(t *testing.T) {
		resp := postJSON(t, client, server.URL+"/auth/login", map[string]string{
			"email":    "patient@swiftcare.test",
			"password": "patient123",
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	t.Run("rotates the refresh token", func(t *testing.T) {
		login(t)
		before := client.Jar.Cookies(mustParseURL(t, server.URL))[0].Value

		resp := postJSON(t, client, server.URL+"/auth/refresh", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]string
		decodeBody(t, resp, &body)
		assert.NotEmpty(t, body["accessToken"])

		after := client.Jar.Cookies(mustParseURL(t, server.URL))[0].Value
		assert.NotEqual(t, before, after)
	})

	t.Run("rejects a missing cookie", func(t *testing.T) {
		bare := &http.Client{}
		resp := postJSON(t, bare, server.URL+"/auth/refresh", nil)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("rejects a revoked cookie after logout", func(t *testing.T) {
		login(t)
		logoutResp := postJSON(t, client, server.URL+"/auth/logout", nil)
		logoutResp.Body.Close()

		resp := postJSON(t, client, server.URL+"/auth/refresh", nil)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestResourceEndpoints(t *testing.T) {
	server, client := setupMockServer(t)

	resp := postJSON(t, client, server.URL+"/auth/login", map[string]string{
		"email":    "patient@swiftcare.test",
		"password": "patient123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var auth authResponse
	decodeBody(t, resp, &auth)

	authedGet := func(t *testing.T, path, token string) *http.Response {
		req, err := http.NewRequest(http.MethodGet, server.URL+path, nil)
		require.NoError(t, err)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		got, err := client.Do(req)
		require.NoError(t, err)
		return got
	}

	t.Run("requires a bearer token", func(t *testing.T) {
		got := authedGet(t, "/doctors", "")
		defer got.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, got.StatusCode)
	})

	t.Run("rejects a forged token", func(t *testing.T) {
		got := authedGet(t, "/doctors", "forged.token.here")
		defer got.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, got.StatusCode)
	})

	t.Run("serves seeded documents with _id keys", func(t *testing.T) {
		got := authedGet(t, "/doctors", auth.AccessToken)
		require.Equal(t, http.StatusOK, got.StatusCode)

		var docs []map[string]any
		decodeBody(t, got, &docs)
		require.NotEmpty(t, docs)
		assert.Contains(t, docs[0], "_id")
		assert.NotContains(t, docs[0], "id")
	})

	t.Run("creates and fetches a record", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, server.URL+"/appointments",
			bytes.NewReader([]byte(`{"patientId":"1","doctorId":"d1","status":"upcoming"}`)))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+auth.AccessToken)

		created, err := client.Do(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, created.StatusCode)

		var doc map[string]any
		decodeBody(t, created, &doc)
		id, _ := doc["_id"].(string)
		require.NotEmpty(t, id)

		got := authedGet(t, "/appointments/"+id, auth.AccessToken)
		require.Equal(t, http.StatusOK, got.StatusCode)
		var fetched map[string]any
		decodeBody(t, got, &fetched)
		assert.Equal(t, "d1", fetched["doctorId"])
	})
}
