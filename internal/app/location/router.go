/*
Package location provides the router collaborator used by the navbar.

A Router holds the browser's current pathname. Navigate is the imperative navigation used by
the component (for example after logout); Sync applies a location change that the browser
already performed (link click handled natively, back/forward).
*/
package location

import (
	"net/url"
	"strings"
)

// Root is the application root path.
const Root = "/"

// NavigateFunc is notified after every imperative navigation.
type NavigateFunc func(path string)

// Router tracks the current path for one navbar instance.
// It is not safe for concurrent use; the owning event loop serialises access.
type Router struct {
	path       string
	onNavigate NavigateFunc
}

// NewRouter returns a Router positioned at initialPath.
func NewRouter(initialPath string, onNavigate NavigateFunc) *Router {
	return &Router{
		path:       Clean(initialPath),
		onNavigate: onNavigate,
	}
}

// CurrentPath returns the current pathname.
func (r *Router) CurrentPath() string {
	return r.path
}

// Navigate moves to path and notifies the navigate callback.
func (r *Router) Navigate(path string) {
	r.path = Clean(path)
	if r.onNavigate != nil {
		r.onNavigate(r.path)
	}
}

// Sync records a location change reported by the browser. It does not fire the callback.
// It reports whether the path changed.
func (r *Router) Sync(path string) bool {
	cleaned := Clean(path)
	if cleaned == r.path {
		return false
	}
	r.path = cleaned
	return true
}

// Clean reduces a raw location to its pathname. Query strings and fragments are dropped,
// an empty value becomes Root, and a missing leading slash is added. Trailing slashes are
// preserved so active-link matching stays an exact comparison.
func Clean(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Root
	}

	if u, err := url.Parse(raw); err == nil {
		raw = u.Path
	} else if i := strings.IndexAny(raw, "?#"); i >= 0 {
		raw = raw[:i]
	}

	if raw == "" {
		return Root
	}
	if !strings.HasPrefix(raw, "/") {
		raw = "/" + raw
	}
	return raw
}
