package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"cryptohub/internal/app/auth"
)

// SessionStore implements auth.Store on the sessions table.
type SessionStore struct {
	pool *pgxpool.Pool
}

// NewSessionStore wraps pool.
func NewSessionStore(pool *pgxpool.Pool) *SessionStore {
	return &SessionStore{pool: pool}
}

const insertSession = `
INSERT INTO sessions (id, user_id, email, provider, created_at, expires_at)
VALUES ($1, $2, $3, $4, $5, $6)`

func (s *SessionStore) Create(ctx context.Context, sess *auth.Session) error {
	_, err := s.pool.Exec(ctx, insertSession,
		sess.ID, sess.UserID, sess.Email, sess.Provider, sess.CreatedAt, sess.ExpiresAt)
	return sessionError("insert", err)
}

const selectSession = `
SELECT id::text, user_id, email, provider, created_at, expires_at, revoked_at
FROM sessions
WHERE id = $1`

func (s *SessionStore) Get(ctx context.Context, id string) (*auth.Session, error) {
	// ids are UUIDs; anything else cannot be in the table
	if uuid.Validate(id) != nil {
		return nil, auth.ErrSessionNotFound
	}

	var (
		sess    auth.Session
		revoked pgtype.Timestamptz
	)

	err := s.pool.QueryRow(ctx, selectSession, id).Scan(
		&sess.ID, &sess.UserID, &sess.Email, &sess.Provider,
		&sess.CreatedAt, &sess.ExpiresAt, &revoked,
	)
	if err != nil {
		return nil, sessionError("select", err)
	}

	if revoked.Valid {
		t := revoked.Time
		sess.RevokedAt = &t
	}
	return &sess, nil
}

const revokeSession = `
UPDATE sessions SET revoked_at = $2
WHERE id = $1 AND revoked_at IS NULL`

// Revoke uses a conditional update; zero affected rows means missing or already revoked.
func (s *SessionStore) Revoke(ctx context.Context, id string) error {
	if uuid.Validate(id) != nil {
		return auth.ErrSessionNotFound
	}

	tag, err := s.pool.Exec(ctx, revokeSession, id, time.Now().UTC())
	if err != nil {
		return sessionError("revoke", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return auth.ErrSessionRevoked
}
