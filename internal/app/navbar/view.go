package navbar

import (
	"cryptohub/internal/app/theme"
	"cryptohub/internal/app/user"
)

// View is everything Render needs, derived from the navbar state and its collaborators.
// Both surfaces read Links from the same View so they cannot diverge.
type View struct {
	Brand   string
	Version string
	LogoURL string
	Year    int

	Theme theme.Theme
	User  *user.User

	Links     []LinkView
	Dashboard bool
	Scrolled  bool
	Sidebar   SidebarState

	ShowChangePassword bool
	Listeners          []ListenerKind
}

// Authenticated reports whether a user is signed in.
func (v View) Authenticated() bool {
	return v.User != nil
}

// ShowInlineMenu reports whether the desktop link menu is rendered.
func (v View) ShowInlineMenu() bool {
	return !v.Dashboard
}

// SidebarOpen reports whether the sidebar is open.
func (v View) SidebarOpen() bool {
	return v.Sidebar == SidebarOpen
}

// View derives the current View.
func (n *Navbar) View() View {
	var u *user.User
	if n.auth != nil {
		u = n.auth.CurrentUser()
	}

	t := theme.System
	if n.theme != nil {
		t = n.theme.Theme()
	}

	path := n.router.CurrentPath()

	return View{
		Brand:   n.opts.Brand,
		Version: n.opts.Version,
		LogoURL: n.opts.LogoURL,
		Year:    n.opts.Year,

		Theme: t,
		User:  u,

		Links:     Highlight(ResolveLinks(u), path),
		Dashboard: IsDashboard(path),
		Scrolled:  n.scroll.Scrolled(),
		Sidebar:   n.sidebar.State(),

		ShowChangePassword: u != nil && n.auth.IsEmailProvider(),
		Listeners:          n.listeners.Active(),
	}
}
