/*
Package theme resolves the colour theme requested by the browser.

The navbar treats the theme as an opaque value and only passes it through to the rendered
markup, so this package is deliberately small.
*/
package theme

import (
	"net/http"
	"strings"
)

// Theme is a colour theme name.
type Theme string

const (
	Light  Theme = "light"
	Dark   Theme = "dark"
	System Theme = "system"
)

// CookieName is the cookie the front-end writes when the user picks a theme.
const CookieName = "theme"

// Parse maps a raw value to a known Theme. Unknown values resolve to System.
func Parse(raw string) Theme {
	switch Theme(strings.ToLower(strings.TrimSpace(raw))) {
	case Light:
		return Light
	case Dark:
		return Dark
	default:
		return System
	}
}

// FromRequest resolves the theme from the theme cookie, then the
// Sec-CH-Prefers-Color-Scheme client hint, then System.
func FromRequest(r *http.Request) Theme {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return Parse(c.Value)
	}

	if hint := r.Header.Get("Sec-CH-Prefers-Color-Scheme"); hint != "" {
		return Parse(strings.Trim(hint, `"`))
	}

	return System
}

// Provider is a fixed-value theme provider.
type Provider struct {
	theme Theme
}

// NewProvider returns a Provider that always reports t.
func NewProvider(t Theme) *Provider {
	return &Provider{theme: t}
}

// Theme returns the resolved theme.
func (p *Provider) Theme() Theme {
	if p == nil || p.theme == "" {
		return System
	}
	return p.theme
}
