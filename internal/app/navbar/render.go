/*
Package navbar implements the site navigation bar.

This file renders a View to HTML with gomponents. Interactive elements carry data-nav-*
attributes; the browser shim turns DOM events on them into live-session messages, and plain
anchors keep working without JavaScript.
*/
package navbar

import (
	"fmt"
	"io"
	"strings"

	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"
)

// Event names the shim reads from data-nav-event.
const (
	EventToggle  = "toggle"
	EventClose   = "close"
	EventOverlay = "overlay"
	EventLink    = "link"
	EventLogout  = "logout"
)

const (
	changePasswordPath = "/change-password"
	loginPath          = "/login"
	signupPath         = "/signup"
	planLabel          = "Premium Plan"
)

const lockIcon = `<svg stroke="currentColor" fill="none" stroke-width="2" viewBox="0 0 24 24" stroke-linecap="round" stroke-linejoin="round" height="1em" width="1em" xmlns="http://www.w3.org/2000/svg"><rect x="3" y="11" width="18" height="11" rx="2" ry="2"></rect><path d="M7 11V7a5 5 0 0 1 10 0v4"></path></svg>`

// Render builds the top bar, the overlay and the sidebar for v.
func Render(v View) g.Node {
	return html.Div(
		html.ID("navbar-root"),
		html.Data("nav-listeners", listenerAttr(v.Listeners)),
		topBar(v),
		overlay(v),
		sidebarPanel(v),
	)
}

// RenderString renders v to an HTML string.
func RenderString(v View) (string, error) {
	var sb strings.Builder
	if err := Render(v).Render(&sb); err != nil {
		return "", fmt.Errorf("render navbar: %w", err)
	}
	return sb.String(), nil
}

// WriteTo renders v to w.
func WriteTo(w io.Writer, v View) error {
	return Render(v).Render(w)
}

func topBar(v View) g.Node {
	return html.Nav(
		html.Class(classes("navbar", cond(v.Scrolled, "scrolled"), cond(v.Dashboard, "is-dashboard"))),
		html.Data("theme", string(v.Theme)),
		html.Div(
			html.Class("navbar-content"),

			logo(v, "navbar-logo", SurfaceTopBar),

			g.If(v.ShowInlineMenu(),
				html.Ul(
					html.Class("navbar-menu"),
					g.Map(v.Links, func(l LinkView) g.Node {
						return html.Li(
							html.Class("navbar-item"),
							navAnchor(l.Path, classes("navbar-link", cond(l.Active, "active")), SurfaceTopBar, g.Text(l.Label)),
						)
					}),
				),
			),

			html.Div(
				html.Class("navbar-actions"),
				html.Div(
					html.Class("desktop-auth"),
					desktopAuth(v),
				),
				toggleButton(v),
			),
		),
	)
}

func desktopAuth(v View) g.Node {
	if !v.Authenticated() {
		return g.Group([]g.Node{
			navAnchor(loginPath, "navbar-btn navbar-btn-login", SurfaceTopBar, g.Text("LOGIN")),
			navAnchor(signupPath, "navbar-btn navbar-btn-signup", SurfaceTopBar, g.Text("Get Started")),
		})
	}

	return html.Div(
		html.Class("user-menu"),
		html.Span(html.Class("user-email"), g.Text(v.User.Email)),
		g.If(v.ShowChangePassword,
			navAnchor(changePasswordPath, "icon-btn", SurfaceTopBar,
				g.Attr("title", "Change Password"),
				g.Raw(lockIcon),
			),
		),
		html.Button(
			html.Type("button"),
			html.Class("logout-btn"),
			html.Data("nav-event", EventLogout),
			html.Data("nav-surface", string(SurfaceTopBar)),
			g.Text("Logout"),
		),
	)
}

func toggleButton(v View) g.Node {
	label := "Open sidebar menu"
	if v.SidebarOpen() {
		label = "Close sidebar menu"
	}

	return html.Button(
		html.Type("button"),
		html.Class(classes("navbar-toggle", cond(v.SidebarOpen(), "active"))),
		html.Data("nav-event", EventToggle),
		g.Attr("aria-label", label),
		g.Attr("aria-expanded", boolAttr(v.SidebarOpen())),
		html.Span(),
		html.Span(),
		html.Span(),
	)
}

func overlay(v View) g.Node {
	return html.Div(
		html.Class(classes("sidebar-overlay", cond(v.SidebarOpen(), "active"))),
		html.Data("nav-event", EventOverlay),
		g.Attr("aria-hidden", boolAttr(!v.SidebarOpen())),
	)
}

func sidebarPanel(v View) g.Node {
	return html.Div(
		html.Class(classes("sidebar-menu", cond(v.SidebarOpen(), "active"))),
		g.Attr("role", "dialog"),
		g.Attr("aria-modal", "true"),
		g.Attr("aria-label", "Navigation menu"),

		html.Div(
			html.Class("sidebar-header"),
			logo(v, "sidebar-logo", SurfaceSidebar),
			html.Button(
				html.Type("button"),
				html.Class("sidebar-close-btn"),
				html.Data("nav-event", EventClose),
				g.Attr("aria-label", "Close sidebar"),
				g.Text("×"),
			),
		),

		html.Div(
			html.Class("sidebar-content"),

			sidebarUser(v),

			html.Ul(
				html.Class("sidebar-nav"),
				g.Map(v.Links, func(l LinkView) g.Node {
					return html.Li(
						html.Class("sidebar-nav-item"),
						navAnchor(l.Path, classes("sidebar-nav-link", cond(l.Active, "active")), SurfaceSidebar, g.Text(l.Label)),
					)
				}),
			),

			html.Div(
				html.Class("sidebar-actions"),
				g.If(!v.Authenticated(),
					html.Div(
						html.Class("sidebar-auth"),
						navAnchor(loginPath, "sidebar-btn sidebar-btn-login", SurfaceSidebar, g.Text("LOGIN")),
						navAnchor(signupPath, "sidebar-btn sidebar-btn-signup", SurfaceSidebar, g.Text("Get Started")),
					),
				),
				g.If(v.Authenticated(),
					html.Button(
						html.Type("button"),
						html.Class("sidebar-btn sidebar-btn-login"),
						html.Data("nav-event", EventLogout),
						html.Data("nav-surface", string(SurfaceSidebar)),
						g.Text("Logout"),
					),
				),
			),

			html.Div(
				html.Class("sidebar-footer"),
				html.P(g.Textf("© %d %s. All rights reserved.", v.Year, v.Brand)),
				html.P(html.Class("sidebar-version"), g.Textf("Version %s", v.Version)),
			),
		),
	)
}

func sidebarUser(v View) g.Node {
	if !v.Authenticated() {
		return g.Group(nil)
	}

	return html.Div(
		html.Class("sidebar-user"),
		html.Div(
			html.Class("user-info"),
			html.Div(html.Class("user-avatar"), g.Text(v.User.Initial())),
			html.Div(
				html.Class("user-details"),
				html.Div(html.Class("user-email-sidebar"), g.Text(v.User.Email)),
				html.Span(html.Class("user-plan"), g.Text(planLabel)),
			),
		),
		g.If(v.ShowChangePassword,
			navAnchor(changePasswordPath, "sidebar-btn sidebar-btn-login sidebar-btn-icon", SurfaceSidebar,
				g.Raw(lockIcon),
				g.Text("Change Password"),
			),
		),
	)
}

func logo(v View, class string, from Surface) g.Node {
	return navAnchor("/", class, from,
		html.Div(
			html.Class(class+"-icon"),
			html.Img(html.Src(v.LogoURL), html.Alt(v.Brand), html.Class("logo-img")),
		),
		html.Span(html.Class("logo-text"), g.Text(v.Brand)),
	)
}

// navAnchor is a real link the shim intercepts and reports as a link event.
func navAnchor(path, class string, from Surface, children ...g.Node) g.Node {
	return html.A(
		html.Href(path),
		html.Class(class),
		html.Data("nav-event", EventLink),
		html.Data("nav-surface", string(from)),
		g.Group(children),
	)
}

func listenerAttr(kinds []ListenerKind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, " ")
}

func classes(names ...string) string {
	out := names[:0:0]
	for _, n := range names {
		if n != "" {
			out = append(out, n)
		}
	}
	return strings.Join(out, " ")
}

func cond(ok bool, class string) string {
	if ok {
		return class
	}
	return ""
}

func boolAttr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
