package mockapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/MubeenKhalid10/SwiftCare/internal/models"
)

const refreshCookieName = "refreshToken"

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	RoleHint models.Role `json:"roleHint"`
}

type googleAuthRequest struct {
	IDToken  string      `json:"idToken"`
	RoleHint models.Role `json:"roleHint"`
}

type authResponse struct {
	AccessToken string      `json:"accessToken"`
	Role        models.Role `json:"role"`
	UserID      string      `json:"userId"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, ok := s.store.userByEmail(req.Email)
	if !ok || user.Password != req.Password {
		respondError(w, r, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	s.establishSession(w, r, user)
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.RoleHint != models.RolePatient {
		respondError(w, r, http.StatusBadRequest, "Only patient signup is currently available")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, r, http.StatusBadRequest, "Email and password are required")
		return
	}
	if _, exists := s.store.userByEmail(req.Email); exists {
		respondError(w, r, http.StatusConflict, "An account with this email already exists")
		return
	}

	user := s.store.addUser(req.Name, req.Email, req.Password, models.RolePatient)
	s.store.insert(collectionPatients, document{
		"name":  req.Name,
		"email": req.Email,
	})

	log.Info().Str("email", req.Email).Msg("Patient account created")
	s.establishSession(w, r, user)
}

func (s *Server) handleGoogleAuth(w http.ResponseWriter, r *http.Request) {
	var req googleAuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	email, name, ok := parseGoogleIDToken(req.IDToken)
	if !ok {
		respondError(w, r, http.StatusUnauthorized, "Invalid Google token")
		return
	}

	role := req.RoleHint
	if role == "" {
		role = models.RolePatient
	}

	user, exists := s.store.userByEmail(email)
	if !exists {
		user = s.store.addUser(name, email, "", role)
		log.Info().Str("email", email).Msg("Account created from Google sign-in")
	}

	s.establishSession(w, r, user)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshCookieName)
	if err != nil {
		respondError(w, r, http.StatusUnauthorized, "Missing refresh token")
		return
	}

	userID, ok := s.tokens.redeemRefreshToken(cookie.Value)
	if !ok {
		s.clearRefreshCookie(w)
		respondError(w, r, http.StatusUnauthorized, "Refresh token expired")
		return
	}

	user, ok := s.store.userByID(userID)
	if !ok {
		s.clearRefreshCookie(w)
		respondError(w, r, http.StatusUnauthorized, "Unknown user")
		return
	}

	accessToken, err := s.tokens.mintAccessToken(user)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "Failed to issue token")
		return
	}
	if err := s.setRefreshCookie(w, user.ID); err != nil {
		respondError(w, r, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]string{"accessToken": accessToken})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(refreshCookieName); err == nil {
		s.tokens.revokeRefreshToken(cookie.Value)
	}
	s.clearRefreshCookie(w)
	respondJSON(w, r, http.StatusOK, map[string]string{"message": "Logged out"})
}

// establishSession mints the token pair and answers with the auth shape the
// client expects: access token in the body, refresh token in an HTTP-only
// cookie.
func (s *Server) establishSession(w http.ResponseWriter, r *http.Request, user *mockUser) {
	accessToken, err := s.tokens.mintAccessToken(user)
	if err != nil {
		log.Error().Err(err).Msg("Failed to mint access token")
		respondError(w, r, http.StatusInternalServerError, "Failed to issue token")
		return
	}
	if err := s.setRefreshCookie(w, user.ID); err != nil {
		log.Error().Err(err).Msg("Failed to issue refresh token")
		respondError(w, r, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("Session established")
	respondJSON(w, r, http.StatusOK, authResponse{
		AccessToken: accessToken,
		Role:        user.Role,
		UserID:      user.ID,
	})
}

func (s *Server) setRefreshCookie(w http.ResponseWriter, userID string) error {
	token, err := s.tokens.issueRefreshToken(userID)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(s.cfg.RefreshExpiry),
		HttpOnly: true,
		Secure:   s.cfg.Environment == "production",
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *Server) clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// parseGoogleIDToken pulls email and name out of an ID token without
// verifying its signature. The real backend verifies against Google's keys;
// the mock trusts whatever it is handed, which is exactly what makes it
// usable in tests.
func parseGoogleIDToken(idToken string) (email, name string, ok bool) {
	if idToken == "" {
		return "", "", false
	}

	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(idToken, claims); err != nil {
		return "", "", false
	}

	email, _ = claims["email"].(string)
	name, _ = claims["name"].(string)
	if email == "" {
		return "", "", false
	}
	return email, name, true
}

// requireAuth guards the resource routes behind a valid bearer token.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			respondError(w, r, http.StatusUnauthorized, "Missing access token")
			return
		}

		if _, err := s.tokens.validateAccessToken(strings.TrimPrefix(auth, "Bearer ")); err != nil {
			log.Debug().Err(err).Str("request_id", requestID(r.Context())).Msg("Rejected access token")
			respondError(w, r, http.StatusUnauthorized, "Token expired")
			return
		}

		next.ServeHTTP(w, r)
	})
}
