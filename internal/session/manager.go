// Package session tracks who is signed in. It wraps the API client's auth
// calls with local identity state: a restored or freshly authenticated user,
// persisted through the credentials store so the next run can pick it up.
//
// Mutating operations report their outcome as a Result instead of an error.
// Callers render Result.Error to the user verbatim; nothing in this package
// panics or propagates transport errors upward.
package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/MubeenKhalid10/SwiftCare/internal/api"
	"github.com/MubeenKhalid10/SwiftCare/internal/models"
)

// ErrDoctorSignupUnavailable is the message returned when a doctor tries to
// self-register. The backend only provisions doctor accounts through admin
// tooling, so the rejection happens here without a network call.
const ErrDoctorSignupUnavailable = "Only patient signup is currently available. Doctor registration coming soon!"

// Result is the outcome of a mutating auth operation. When Success is false,
// Error holds a message fit for direct display.
type Result struct {
	Success bool
	Error   string
}

func ok() Result { return Result{Success: true} }

func failed(err error) Result { return Result{Error: err.Error()} }

// Manager owns the signed-in identity for one client instance.
type Manager struct {
	client *api.Client

	mu      sync.RWMutex
	user    *models.User
	loading bool
}

// NewManager returns a manager that has not yet restored or authenticated.
// IsLoading reports true until Restore runs.
func NewManager(client *api.Client) *Manager {
	return &Manager{client: client, loading: true}
}

// Restore rebuilds the session from locally stored state without touching
// the network. The stored token and identity snapshot are trusted
// optimistically: if the token has expired in the meantime, the first
// authenticated request repairs or tears down the session via refresh.
//
// Both the token and the snapshot must be present; either alone restores
// nothing.
func (m *Manager) Restore() {
	creds := m.client.Credentials()
	token := creds.AccessToken()
	user, hasUser := creds.User()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading = false

	if token == "" || !hasUser {
		log.Debug().Msg("No stored session to restore")
		return
	}

	m.user = user
	log.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("Session restored")
}

// Login authenticates with email and password and establishes the session.
// The identity is built from the auth response; the backend does not return
// a display name on login, so Name is left empty until a profile fetch
// fills it.
func (m *Manager) Login(ctx context.Context, email, password string) Result {
	resp, err := m.client.Login(ctx, email, password)
	if err != nil {
		return failed(err)
	}

	user := &models.User{
		ID:    resp.UserID,
		Email: email,
		Role:  resp.Role,
	}
	m.establish(user)
	return ok()
}

// Register creates a new patient account and establishes the session.
// Any role hint other than patient is rejected locally; no request is made.
func (m *Manager) Register(ctx context.Context, name, email, password string, roleHint models.Role) Result {
	if roleHint != models.RolePatient {
		log.Debug().Str("email", email).Str("role", string(roleHint)).Msg("Rejected non-patient self-registration")
		return Result{Error: ErrDoctorSignupUnavailable}
	}

	resp, err := m.client.Signup(ctx, name, email, password, roleHint)
	if err != nil {
		return failed(err)
	}

	user := &models.User{
		ID:    resp.UserID,
		Name:  name,
		Email: email,
		Role:  resp.Role,
	}
	m.establish(user)
	return ok()
}

// GoogleAuth exchanges a Google ID token for a session. The identity comes
// from the auth response alone; the backend is expected to resolve name and
// email from the token server-side.
func (m *Manager) GoogleAuth(ctx context.Context, idToken string, roleHint models.Role) Result {
	resp, err := m.client.GoogleAuth(ctx, idToken, roleHint)
	if err != nil {
		return failed(err)
	}

	user := &models.User{
		ID:   resp.UserID,
		Role: resp.Role,
	}
	m.establish(user)
	return ok()
}

// Logout tears the session down. The backend call invalidates the refresh
// cookie but is best-effort: local state is cleared whether or not it
// succeeds, so the user is always signed out from their own point of view.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.client.Logout(ctx); err != nil {
		log.Warn().Err(err).Msg("Backend logout failed, clearing local session anyway")
	}

	creds := m.client.Credentials()
	creds.ClearAccessToken()
	creds.ClearUser()

	m.mu.Lock()
	m.user = nil
	m.mu.Unlock()

	log.Info().Msg("Signed out")
}

// CurrentUser returns a copy of the signed-in user, or false when signed out.
//
// A failed token refresh clears the stored credential and snapshot from
// inside the API client, out of band from this manager. The store is
// consulted here so that teardown surfaces immediately: once both are gone
// the in-memory identity is stale and is dropped.
func (m *Manager) CurrentUser() (*models.User, bool) {
	m.mu.RLock()
	user := m.user
	m.mu.RUnlock()
	if user == nil {
		return nil, false
	}

	if m.sessionRevoked() {
		m.mu.Lock()
		m.user = nil
		m.mu.Unlock()
		log.Debug().Msg("Stored session gone, dropping in-memory identity")
		return nil, false
	}

	u := *user
	return &u, true
}

// IsAuthenticated reports whether a user is signed in.
func (m *Manager) IsAuthenticated() bool {
	_, ok := m.CurrentUser()
	return ok
}

// sessionRevoked reports whether the stored session was torn down behind the
// manager's back. Only the loss of both keys counts: an expired token alone
// is repaired by the next authenticated call's refresh.
func (m *Manager) sessionRevoked() bool {
	creds := m.client.Credentials()
	if creds.AccessToken() != "" {
		return false
	}
	_, hasUser := creds.User()
	return !hasUser
}

// IsLoading reports whether Restore has run yet.
func (m *Manager) IsLoading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// establish records the identity in memory and persists the snapshot.
// The access token was already stored by the API client.
func (m *Manager) establish(user *models.User) {
	m.client.Credentials().SetUser(user)

	m.mu.Lock()
	m.user = user
	m.loading = false
	m.mu.Unlock()
}
