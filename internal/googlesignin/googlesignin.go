// Package googlesignin obtains a Google ID token for the sign-in flow.
// Outside a browser there is no Google Identity widget, so the CLI walks the
// OAuth 2.0 authorization-code flow instead: the user visits the consent URL,
// pastes the code back, and the code is exchanged for a token response whose
// id_token is then posted to the backend's /auth/google endpoint.
package googlesignin

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/MubeenKhalid10/SwiftCare/pkg/config"
)

// ErrNoIDToken is returned when the token response lacks an id_token.
// This happens when the OAuth client is not configured with the openid scope
// or the client type does not issue ID tokens.
var ErrNoIDToken = errors.New("token response contained no id_token")

// Flow drives the authorization-code exchange for one sign-in attempt.
type Flow struct {
	config *oauth2.Config
	state  string
}

// NewFlow builds a sign-in flow from the Google client configuration.
// A random CSRF state is generated per flow.
func NewFlow(cfg config.GoogleConfig) (*Flow, error) {
	if !cfg.Configured() {
		return nil, errors.New("google sign-in is not configured")
	}

	state, err := generateState()
	if err != nil {
		return nil, fmt.Errorf("failed to generate state: %w", err)
	}

	return &Flow{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes: []string{
				"openid",
				"https://www.googleapis.com/auth/userinfo.profile",
				"https://www.googleapis.com/auth/userinfo.email",
			},
			Endpoint: google.Endpoint,
		},
		state: state,
	}, nil
}

// AuthURL returns the consent-screen URL the user must visit.
func (f *Flow) AuthURL() string {
	return f.config.AuthCodeURL(f.state, oauth2.AccessTypeOffline)
}

// State returns the CSRF state bound to this flow. Callers using a redirect
// listener must compare it against the state query parameter.
func (f *Flow) State() string {
	return f.state
}

// ExchangeCode trades the authorization code for Google's token response and
// extracts the ID token from it.
func (f *Flow) ExchangeCode(ctx context.Context, code string) (string, error) {
	token, err := f.config.Exchange(ctx, code)
	if err != nil {
		log.Error().Err(err).Msg("Failed to exchange authorization code")
		return "", fmt.Errorf("failed to exchange code: %w", err)
	}

	idToken, ok := token.Extra("id_token").(string)
	if !ok || idToken == "" {
		return "", ErrNoIDToken
	}

	return idToken, nil
}

func generateState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
