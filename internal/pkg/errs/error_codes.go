/*
Package errs provides the application error type and its numeric codes.

Codes travel to the browser in JSON responses and in live-session error frames, so the
numbering is stable across releases.
*/
package errs

// 1xxx: request handling
const (
	// ErrInvalidParams indicates that request parameters failed validation.
	ErrInvalidParams = 1001

	// ErrRateLimitExceeded indicates that the client exceeded its request budget.
	ErrRateLimitExceeded = 1007
)

// 2xxx: live session protocol
const (
	// ErrInvalidFrame indicates a frame that is not valid JSON or has an invalid payload.
	ErrInvalidFrame = 2001

	// ErrUnsupportedEvent indicates a frame type the navbar does not handle.
	ErrUnsupportedEvent = 2002
)

// 3xxx: authentication and session
const (
	// ErrUnauthorized indicates that the request carries no valid session.
	ErrUnauthorized = 3001

	// ErrSessionRevoked indicates that the session was already logged out.
	ErrSessionRevoked = 3002

	// ErrLogoutFailed indicates that the auth collaborator could not end the session.
	ErrLogoutFailed = 3003
)

// 5xxx: internal
const (
	// ErrUnknown is an unclassified server error.
	ErrUnknown = 5000

	// ErrRenderFailed indicates that the navbar markup could not be produced.
	ErrRenderFailed = 5001
)
