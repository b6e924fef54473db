package api

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/MubeenKhalid10/SwiftCare/internal/models"
)

// loginRequest is the body of POST /auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// signupRequest is the body of POST /auth/signup.
type signupRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	RoleHint models.Role `json:"roleHint"`
}

// googleAuthRequest is the body of POST /auth/google.
type googleAuthRequest struct {
	IDToken  string      `json:"idToken"`
	RoleHint models.Role `json:"roleHint"`
}

// Login authenticates with email and password. The call is unauthenticated;
// the backend responds with an access token and sets the HTTP-only refresh
// cookie on the jar. The returned access token is persisted in the store.
func (c *Client) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &resp, "")
	observeAuthAttempt("login", err)
	if err != nil {
		log.Debug().Err(err).Str("email", email).Msg("Login failed")
		return nil, err
	}

	if resp.AccessToken != "" {
		c.creds.SetAccessToken(resp.AccessToken)
	}

	log.Info().Str("role", string(resp.Role)).Msg("Login successful")
	return &resp, nil
}

// Signup registers a new account. Same credential handling as Login.
// The backend currently only accepts patient signups; the session manager
// rejects other role hints before this call is ever made.
func (c *Client) Signup(ctx context.Context, name, email, password string, roleHint models.Role) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	req := signupRequest{Name: name, Email: email, Password: password, RoleHint: roleHint}
	err := c.do(ctx, http.MethodPost, "/auth/signup", req, &resp, "")
	observeAuthAttempt("signup", err)
	if err != nil {
		log.Debug().Err(err).Str("email", email).Msg("Signup failed")
		return nil, err
	}

	if resp.AccessToken != "" {
		c.creds.SetAccessToken(resp.AccessToken)
	}

	log.Info().Str("role", string(resp.Role)).Msg("Signup successful")
	return &resp, nil
}

// GoogleAuth exchanges a Google ID token for a backend session. Same
// credential handling as Login.
func (c *Client) GoogleAuth(ctx context.Context, idToken string, roleHint models.Role) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/google", googleAuthRequest{IDToken: idToken, RoleHint: roleHint}, &resp, "")
	observeAuthAttempt("google", err)
	if err != nil {
		log.Debug().Err(err).Msg("Google auth failed")
		return nil, err
	}

	if resp.AccessToken != "" {
		c.creds.SetAccessToken(resp.AccessToken)
	}

	log.Info().Str("role", string(resp.Role)).Msg("Google auth successful")
	return &resp, nil
}

// Logout tells the backend to invalidate the refresh credential. The cookie
// rides along via the jar; no bearer token is sent. The session layer clears
// local state regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, "")
}
