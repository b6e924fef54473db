// Package models defines the core domain records exchanged with the SwiftCare
// backend. These mirror the JSON shapes the REST API produces and consumes.
//
// The backend stores documents in MongoDB and serves them with a `_id` field;
// the api package normalizes that into the `id` field on these types before
// they reach callers, so models never carry `_id` themselves.
package models

// Role identifies which dashboard a user belongs to.
type Role string

// Known user roles. The backend only mints patient and doctor roles through
// the public auth endpoints; admin accounts are provisioned out of band.
const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

// User is the authenticated identity held in session state and persisted as
// the identity snapshot.
//
// Name may be empty after a plain login: the login response carries only
// {accessToken, role, userId}, so the identity is built from those plus the
// email the caller supplied. Signup fills Name from its own request.
//
// JSON example:
//
//	{
//	  "id": "6617f2a1c4b5d90012ab34cd",
//	  "name": "Jane Doe",
//	  "email": "jane@example.com",
//	  "role": "patient",
//	  "avatar": "https://example.com/jane.png"
//	}
type User struct {
	ID     string `json:"id"`               // Backend user identifier
	Name   string `json:"name"`             // Display name (may be empty, see above)
	Email  string `json:"email"`            // Email address used to sign in
	Role   Role   `json:"role"`             // patient, doctor or admin
	Avatar string `json:"avatar,omitempty"` // Optional profile image URL
}

// AuthResponse is the success payload of the login, signup and google-auth
// endpoints. The refresh credential never appears here: the backend delivers
// it as an HTTP-only cookie alongside this body.
type AuthResponse struct {
	AccessToken string `json:"accessToken"` // Short-lived bearer token
	Role        Role   `json:"role"`        // Role the backend resolved for the account
	UserID      string `json:"userId"`      // Backend user identifier
}

// RefreshResponse is the success payload of the refresh endpoint.
type RefreshResponse struct {
	AccessToken string `json:"accessToken"` // Replacement bearer token
}
