/*
Package errs provides the application error type and its numeric codes.

This file maps each code to its user-facing message and HTTP status.
*/
package errs

import "net/http"

// errorMap holds the template CustomError for every known code.
// A zero Status is filled with 200 by NewError, matching the JSON envelope convention.
var errorMap = map[int]CustomError{
	ErrInvalidParams:     {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},
	ErrRateLimitExceeded: {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	ErrInvalidFrame:     {Code: ErrInvalidFrame, Message: "Malformed message."},
	ErrUnsupportedEvent: {Code: ErrUnsupportedEvent, Message: "Unsupported event: %s."},

	ErrUnauthorized:   {Code: ErrUnauthorized, Message: "Please sign in to continue.", Status: http.StatusUnauthorized},
	ErrSessionRevoked: {Code: ErrSessionRevoked, Message: "You have already signed out.", Status: http.StatusUnauthorized},
	ErrLogoutFailed:   {Code: ErrLogoutFailed, Message: "We could not sign you out. Please try again."},

	ErrUnknown:      {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
	ErrRenderFailed: {Code: ErrRenderFailed, Message: "The navigation could not be displayed.", Status: http.StatusInternalServerError},
}
