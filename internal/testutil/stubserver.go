package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// StubBackend is a scripted stand-in for the SwiftCare backend. Tests
// register a handler per method and path and afterwards assert how many
// times each endpoint was hit. Unscripted routes answer 404.
type StubBackend struct {
	Server *httptest.Server

	mu       sync.Mutex
	calls    map[string]int
	handlers map[string]http.HandlerFunc
}

// NewStubBackend starts the stub server. It shuts down when the test ends.
func NewStubBackend(t *testing.T) *StubBackend {
	t.Helper()

	b := &StubBackend{
		calls:    make(map[string]int),
		handlers: make(map[string]http.HandlerFunc),
	}
	b.Server = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.Server.Close)
	return b
}

// URL returns the stub's base URL.
func (b *StubBackend) URL() string {
	return b.Server.URL
}

// Handle scripts a response for one endpoint, replacing any previous script.
func (b *StubBackend) Handle(method, path string, h http.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[method+" "+path] = h
}

// Calls returns how many requests one endpoint has received.
func (b *StubBackend) Calls(method, path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[method+" "+path]
}

func (b *StubBackend) serve(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path

	b.mu.Lock()
	b.calls[key]++
	h, ok := b.handlers[key]
	b.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	h(w, r)
}

// WriteJSON encodes v with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// RespondJSON builds a handler that always answers with the given status
// and body.
func RespondJSON(status int, v any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, status, v)
	}
}

// RespondError builds a handler that answers with the backend's error shape.
func RespondError(status int, message string) http.HandlerFunc {
	return RespondJSON(status, map[string]string{"error": message})
}

// SetRefreshCookie attaches an HTTP-only refresh cookie to the response, the
// way the real backend does on login and refresh.
func SetRefreshCookie(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "refreshToken",
		Value:    value,
		Path:     "/",
		HttpOnly: true,
	})
}

// BearerToken extracts the token from an Authorization header, or "" when
// absent or malformed.
func BearerToken(r *http.Request) string {
	const prefix = "Bearer "
	auth := r.Header.Get("Authorization")
	if len(auth) <= len(prefix) || auth[:len(prefix)] != prefix {
		return ""
	}
	return auth[len(prefix):]
}
