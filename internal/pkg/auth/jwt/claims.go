package jwt

import "github.com/golang-jwt/jwt"

// Payload is the claim set of a CryptoHub session token.
type Payload struct {
	// StandardClaims carries expiry, issue time, issuer and subject (the user ID).
	jwt.StandardClaims

	// SessionID identifies the server-side session record; logout revokes it.
	SessionID string `json:"sid"`

	// Email is the account email shown in the navbar.
	Email string `json:"email"`

	// Provider is the sign-in method ("password", "google", ...).
	Provider string `json:"provider"`
}
