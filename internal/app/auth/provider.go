package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"cryptohub/internal/app/user"
	"cryptohub/internal/pkg/auth/jwt"
	"cryptohub/internal/pkg/logx"
)

// Provider is the per-page auth collaborator: it knows the current session and can end it.
// It is safe for concurrent use.
type Provider struct {
	store Store

	mu      sync.RWMutex
	session *Session
}

// NewProvider returns a Provider for session, which may be nil for anonymous visitors.
func NewProvider(store Store, session *Session) *Provider {
	return &Provider{store: store, session: session}
}

// Resolve builds a Provider from a verified token payload. The session must exist in the
// store and still be active; otherwise the visitor is treated as anonymous.
func Resolve(ctx context.Context, store Store, payload *jwt.Payload) *Provider {
	if payload == nil {
		return NewProvider(store, nil)
	}

	sess, err := store.Get(ctx, payload.SessionID)
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			logx.Error(err, "Failed to load session, treating as anonymous", "session_id", payload.SessionID)
		}
		return NewProvider(store, nil)
	}

	if !sess.Active(time.Now()) {
		logx.Debug("Session is no longer active, treating as anonymous", "session_id", sess.ID)
		return NewProvider(store, nil)
	}

	return NewProvider(store, sess)
}

// CurrentUser returns the signed-in user, or nil.
func (p *Provider) CurrentUser() *user.User {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.session == nil {
		return nil
	}
	return p.session.User()
}

// SessionID returns the current session ID, or "".
func (p *Provider) SessionID() string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.session == nil {
		return ""
	}
	return p.session.ID
}

// IsEmailProvider reports whether the current session was opened with email and password.
func (p *Provider) IsEmailProvider() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.session != nil && p.session.Provider == user.ProviderPassword
}

// Logout revokes the current session. A session that is already revoked counts as logged out.
// On any other failure the provider keeps its user.
func (p *Provider) Logout(ctx context.Context) error {
	p.mu.RLock()
	sess := p.session
	p.mu.RUnlock()

	if sess == nil {
		return ErrNoSession
	}

	if err := p.store.Revoke(ctx, sess.ID); err != nil && !errors.Is(err, ErrSessionRevoked) {
		return fmt.Errorf("revoke session %s: %w", sess.ID, err)
	}

	p.mu.Lock()
	if p.session == sess {
		p.session = nil
	}
	p.mu.Unlock()

	logx.Info("Session revoked.", "session_id", sess.ID, "user_id", sess.UserID)
	return nil
}
