// Package credentials persists the short-lived access token and the identity
// snapshot between runs. It is the client-side analogue of the browser's
// local storage: reads are cheap and synchronous, writes are last-writer-wins,
// and no method returns an error. Storage failures are logged and swallowed
// so a broken credentials file degrades to "not signed in" instead of taking
// the whole client down.
//
// The token and the snapshot are independent entries. They are normally
// written and cleared together, but restore logic must tolerate one being
// present without the other and treat that as unauthenticated.
package credentials

import (
	"sync"

	"github.com/MubeenKhalid10/SwiftCare/internal/models"
)

// Store holds the access credential and the identity snapshot.
//
// Implementations must make every method safe for concurrent use and
// idempotent: clearing an absent entry is a no-op, setting overwrites.
type Store interface {
	// AccessToken returns the persisted bearer token, or "" when absent.
	// No validation of expiry or format is performed.
	AccessToken() string

	// SetAccessToken overwrites the persisted bearer token.
	SetAccessToken(token string)

	// ClearAccessToken removes the persisted bearer token.
	ClearAccessToken()

	// User returns the persisted identity snapshot, or (nil, false) when
	// absent or unreadable.
	User() (*models.User, bool)

	// SetUser overwrites the persisted identity snapshot.
	SetUser(user *models.User)

	// ClearUser removes the persisted identity snapshot.
	ClearUser()
}

// MemoryStore is an in-process Store for tests and ephemeral sessions.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
	user  *models.User
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// AccessToken returns the stored token, or "" when absent.
func (s *MemoryStore) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetAccessToken overwrites the stored token.
func (s *MemoryStore) SetAccessToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// ClearAccessToken removes the stored token.
func (s *MemoryStore) ClearAccessToken() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

// User returns the stored identity snapshot.
func (s *MemoryStore) User() (*models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil, false
	}
	u := *s.user
	return &u, true
}

// SetUser overwrites the stored identity snapshot.
func (s *MemoryStore) SetUser(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user == nil {
		s.user = nil
		return
	}
	u := *user
	s.user = &u
}

// ClearUser removes the stored identity snapshot.
func (s *MemoryStore) ClearUser() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
}
