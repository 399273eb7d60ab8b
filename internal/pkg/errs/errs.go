/*
Package errs provides the application error type and its numeric codes.

CustomError implements error and carries the business code, the message shown to the user,
and the HTTP status used when it is written as a response.
*/
package errs

import (
	"fmt"
	"net/http"
	"strings"

	"cryptohub/internal/pkg/logx"
)

// CustomError is the error type returned to clients.
type CustomError struct {
	// Code is the business error code (see error_codes.go).
	Code int

	// Message is the user-facing description.
	Message string

	// Status is the HTTP status used for responses.
	Status int
}

// Error implements error.
func (e CustomError) Error() string {
	return fmt.Sprintf("Error Code %d (HTTP %d): %s", e.Code, e.Status, e.Message)
}

// NewError builds a CustomError from its code. details fill printf verbs in the message
// template; for ErrUnknown the first detail may be the underlying error, which is logged.
// Unknown codes fall back to ErrUnknown.
func NewError(code int, details ...any) *CustomError {
	templateErr, ok := errorMap[code]
	if !ok {
		logx.Error(
			fmt.Errorf("no entry for code %d in errorMap", code),
			"Unknown error code requested",
			"requested_code", code,
		)

		unknownErr := errorMap[ErrUnknown]
		return &unknownErr
	}

	customErr := templateErr
	if customErr.Status == 0 {
		customErr.Status = http.StatusOK
	}

	switch {
	case len(details) == 0:
	case code == ErrUnknown:
		if originalErr, ok := details[0].(error); ok {
			logx.Error(originalErr, "Handling ErrUnknown with underlying error")
		}
	case strings.Contains(customErr.Message, "%"):
		customErr.Message = fmt.Sprintf(customErr.Message, details...)
	default:
		logx.Warn("Details provided for an error whose message has no placeholders. Details ignored.", "code", code)
	}

	return &customErr
}
