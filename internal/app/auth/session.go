/*
Package auth implements the authentication collaborator consumed by the navbar.

A session is created by the identity service (or the `token` CLI command in development),
identified by the sid claim of the session token, and revoked on logout. The session record
lives in a Store: memory, PostgreSQL or Redis.
*/
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"cryptohub/internal/app/user"
)

var (
	// ErrSessionNotFound is returned when no record exists for a session ID.
	ErrSessionNotFound = errors.New("auth: session not found")

	// ErrSessionRevoked is returned when the session was already logged out.
	ErrSessionRevoked = errors.New("auth: session revoked")

	// ErrNoSession is returned by Logout on an anonymous provider.
	ErrNoSession = errors.New("auth: no active session")
)

// Session is the server-side record behind a session token.
type Session struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Email     string     `json:"email"`
	Provider  string     `json:"provider"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
}

// NewSession builds a session for a user that expires after ttl.
func NewSession(u user.User, ttl time.Duration) *Session {
	now := time.Now().UTC()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}

	return &Session{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		Email:     u.Email,
		Provider:  u.Provider,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// Active reports whether the session is neither revoked nor expired at now.
func (s *Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

// User returns the identity carried by the session.
func (s *Session) User() *user.User {
	return &user.User{ID: s.UserID, Email: s.Email, Provider: s.Provider}
}

// Store persists sessions.
type Store interface {
	// Create saves a new session.
	Create(ctx context.Context, s *Session) error

	// Get loads a session, returning ErrSessionNotFound when it does not exist.
	Get(ctx context.Context, id string) (*Session, error)

	// Revoke marks a session as logged out. Revoking twice returns ErrSessionRevoked.
	Revoke(ctx context.Context, id string) error
}
