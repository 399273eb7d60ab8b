package db

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"cryptohub/internal/app/auth"
)

// ErrDuplicateSession is returned when a session ID is reused.
var ErrDuplicateSession = errors.New("db: duplicate session id")

// PostgreSQL error codes the session store reacts to.
const (
	codeUniqueViolation  = "23505"
	codeInvalidTextValue = "22P02"
)

// sessionError maps driver errors onto the auth.Store contract and wraps the rest with op.
func sessionError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return auth.ErrSessionNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return ErrDuplicateSession
		case codeInvalidTextValue:
			// a non-UUID id slipped past validation
			return auth.ErrSessionNotFound
		}
	}
	return fmt.Errorf("%s session: %w", op, err)
}
