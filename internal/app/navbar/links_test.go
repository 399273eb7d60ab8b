package navbar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func paths(links []NavLink) []string {
	out := make([]string, len(links))
	for i, l := range links {
		out[i] = l.Path
	}
	return out
}

func TestResolveLinks(t *testing.T) {
	assert.Equal(t,
		[]string{"/", "/pricing", "/blog", "/features", "/contributors"},
		paths(ResolveLinks(nil)))

	assert.Equal(t,
		[]string{"/", "/pricing", "/blog", "/features", "/contributors", "/dashboard", "/leaderboard"},
		paths(ResolveLinks(signedIn())))
}

func TestResolveLinksReturnsFreshSlice(t *testing.T) {
	links := ResolveLinks(nil)
	links[0].Label = "changed"

	assert.Equal(t, "Home", PublicLinks()[0].Label)
}

func TestAuthenticatedLinksStartWithPublicLinks(t *testing.T) {
	public := PublicLinks()
	authed := AuthenticatedLinks()

	assert.Equal(t, public, authed[:len(public)])
	assert.Len(t, authed, len(public)+2)
}

func TestHighlight(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		active []string
	}{
		{name: "pricing", path: "/pricing", active: []string{"Pricing"}},
		{name: "root", path: "/", active: []string{"Home"}},
		{name: "no prefix match", path: "/pricing/enterprise", active: nil},
		{name: "trailing slash is a different path", path: "/blog/", active: nil},
		{name: "unknown", path: "/nowhere", active: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var active []string
			for _, l := range Highlight(AuthenticatedLinks(), tt.path) {
				if l.Active {
					active = append(active, l.Label)
				}
			}
			assert.Equal(t, tt.active, active)
		})
	}
}

func TestIsDashboard(t *testing.T) {
	assert.True(t, IsDashboard("/dashboard"))
	assert.False(t, IsDashboard("/dashboard/settings"))
	assert.False(t, IsDashboard("/"))
}
