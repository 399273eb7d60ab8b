/*
Package user contains the identity record the navbar reads from the auth collaborator.

The navbar never mutates a User; it only checks for presence and reads the email and the
sign-in provider to decide which actions to offer.
*/
package user

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Sign-in providers known to the identity service.
const (
	// ProviderPassword marks accounts that sign in with email and password.
	ProviderPassword = "password"

	ProviderGoogle = "google"
	ProviderGitHub = "github"
)

// User represents the signed-in account as seen by the navigation bar.
type User struct {
	// ID is the account identifier issued by the identity service.
	ID string `json:"id"`

	// Email is the address displayed in the user menu.
	Email string `json:"email"`

	// Provider is the sign-in method used for the current session (see Provider* constants).
	Provider string `json:"provider"`
}

// Initial returns the upper-cased first letter of the email, or "U" when the email is empty.
func (u *User) Initial() string {
	if u == nil {
		return "U"
	}

	email := strings.TrimSpace(u.Email)
	if email == "" {
		return "U"
	}

	r, _ := utf8.DecodeRuneInString(email)
	return string(unicode.ToUpper(r))
}
