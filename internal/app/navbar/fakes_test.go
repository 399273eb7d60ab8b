package navbar

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"cryptohub/internal/app/theme"
	"cryptohub/internal/app/user"
)

type fakeAuth struct {
	mu        sync.Mutex
	user      *user.User
	email     bool
	logoutErr error
	logouts   int
}

func (f *fakeAuth) CurrentUser() *user.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.user
}

func (f *fakeAuth) IsEmailProvider() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.email
}

func (f *fakeAuth) Logout(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.logouts++
	if f.logoutErr != nil {
		return f.logoutErr
	}
	f.user = nil
	return nil
}

type fakeRouter struct {
	path        string
	navigations []string
}

func (f *fakeRouter) CurrentPath() string { return f.path }

func (f *fakeRouter) Navigate(path string) {
	f.path = path
	f.navigations = append(f.navigations, path)
}

type fakeTheme theme.Theme

func (f fakeTheme) Theme() theme.Theme { return theme.Theme(f) }

func signedIn() *user.User {
	return &user.User{ID: "u-1", Email: "alice@example.com", Provider: user.ProviderPassword}
}

func newTestNavbar(auth *fakeAuth, path string) (*Navbar, *fakeRouter) {
	router := &fakeRouter{path: path}
	nb := New(Deps{Auth: auth, Theme: fakeTheme(theme.Dark), Router: router}, Options{Year: 2025})
	return nb, router
}

func mounted(t *testing.T, auth *fakeAuth, path string) (*Navbar, *fakeRouter) {
	t.Helper()

	nb, router := newTestNavbar(auth, path)
	require.NoError(t, nb.Mount())
	return nb, router
}
