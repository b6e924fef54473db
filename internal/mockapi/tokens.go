package mockapi

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MubeenKhalid10/SwiftCare/internal/models"
)

// accessClaims are the claims minted into access tokens.
type accessClaims struct {
	UserID string      `json:"userId"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// refreshRecord tracks one outstanding refresh token. Tokens are opaque
// random strings; the server holds the mapping. Rotation deletes the old
// record when a new one is issued.
type refreshRecord struct {
	userID    string
	expiresAt time.Time
}

// tokenService mints HS256 access tokens and manages refresh tokens.
type tokenService struct {
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration

	mu      sync.Mutex
	refresh map[string]refreshRecord
}

func newTokenService(secret []byte, accessExpiry, refreshExpiry time.Duration) *tokenService {
	return &tokenService{
		secret:        secret,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
		refresh:       make(map[string]refreshRecord),
	}
}

// mintAccessToken creates a signed access token for the user.
func (t *tokenService) mintAccessToken(u *mockUser) (string, error) {
	now := time.Now()
	claims := accessClaims{
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(t.accessExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// validateAccessToken verifies the signature and expiry of an access token.
func (t *tokenService) validateAccessToken(tokenString string) (*accessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &accessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// issueRefreshToken creates a new opaque refresh token for the user.
func (t *tokenService) issueRefreshToken(userID string) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(buf)

	t.mu.Lock()
	t.refresh[token] = refreshRecord{
		userID:    userID,
		expiresAt: time.Now().Add(t.refreshExpiry),
	}
	t.mu.Unlock()

	return token, nil
}

// redeemRefreshToken validates and consumes a refresh token, returning the
// user it belongs to. The token is deleted whether or not it is still valid,
// so every refresh rotates the credential.
func (t *tokenService) redeemRefreshToken(token string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	record, ok := t.refresh[token]
	if !ok {
		return "", false
	}
	delete(t.refresh, token)

	if time.Now().After(record.expiresAt) {
		return "", false
	}
	return record.userID, true
}

// revokeRefreshToken drops a refresh token without issuing a replacement.
func (t *tokenService) revokeRefreshToken(token string) {
	t.mu.Lock()
	delete(t.refresh, token)
	t.mu.Unlock()
}
