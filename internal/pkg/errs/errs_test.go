package errs

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewError(t *testing.T) {
	e := NewError(ErrRateLimitExceeded)
	assert.Equal(t, ErrRateLimitExceeded, e.Code)
	assert.Equal(t, http.StatusTooManyRequests, e.Status)
}

func TestNewErrorDefaultsStatusToOK(t *testing.T) {
	e := NewError(ErrLogoutFailed)
	assert.Equal(t, http.StatusOK, e.Status)
	assert.NotEmpty(t, e.Message)
}

func TestNewErrorFormatsDetails(t *testing.T) {
	e := NewError(ErrUnsupportedEvent, "dance")
	assert.Equal(t, "Unsupported event: dance.", e.Message)
}

func TestNewErrorDoesNotMutateTemplate(t *testing.T) {
	NewError(ErrUnsupportedEvent, "first")
	assert.Equal(t, "Unsupported event: second.", NewError(ErrUnsupportedEvent, "second").Message)
}

func TestNewErrorUnknownCode(t *testing.T) {
	e := NewError(424242)
	assert.Equal(t, ErrUnknown, e.Code)
	assert.Equal(t, http.StatusInternalServerError, e.Status)
}

func TestEveryCodeHasATemplate(t *testing.T) {
	codes := []int{
		ErrInvalidParams, ErrRateLimitExceeded,
		ErrInvalidFrame, ErrUnsupportedEvent,
		ErrUnauthorized, ErrSessionRevoked, ErrLogoutFailed,
		ErrUnknown, ErrRenderFailed,
	}

	for _, code := range codes {
		tmpl, ok := errorMap[code]
		require.True(t, ok, "code %d", code)
		assert.Equal(t, code, tmpl.Code)
		assert.NotEmpty(t, tmpl.Message)
	}
}
