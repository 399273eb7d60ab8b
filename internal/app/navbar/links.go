/*
Package navbar implements the site navigation bar: the fixed top bar and the off-canvas
sidebar, driven by browser events and rendered on the server.

This file defines the navigation link tables and the pure derivations over them: resolving the
link set for the current user and marking the active link.
*/
package navbar

import "cryptohub/internal/app/user"

// DashboardPath is the route that switches the bar into its compact layout.
const DashboardPath = "/dashboard"

// NavLink is a navigation target and its label.
type NavLink struct {
	Path  string
	Label string
}

// publicLinks are shown to every visitor, in render order.
var publicLinks = []NavLink{
	{Path: "/", Label: "Home"},
	{Path: "/pricing", Label: "Pricing"},
	{Path: "/blog", Label: "Insights"},
	{Path: "/features", Label: "Features"},
	{Path: "/contributors", Label: "Contributors"},
}

// memberLinks are appended to publicLinks when a user is signed in.
var memberLinks = []NavLink{
	{Path: DashboardPath, Label: "Dashboard"},
	{Path: "/leaderboard", Label: "Leaderboard"},
}

// PublicLinks returns a copy of the links shown to anonymous visitors.
func PublicLinks() []NavLink {
	return append([]NavLink(nil), publicLinks...)
}

// AuthenticatedLinks returns a copy of the links shown to signed-in users.
func AuthenticatedLinks() []NavLink {
	links := make([]NavLink, 0, len(publicLinks)+len(memberLinks))
	links = append(links, publicLinks...)
	return append(links, memberLinks...)
}

// ResolveLinks returns the link set for u. A nil user gets the public set.
// The result is always a fresh slice, so callers may keep it across renders.
func ResolveLinks(u *user.User) []NavLink {
	if u == nil {
		return PublicLinks()
	}
	return AuthenticatedLinks()
}

// LinkView is a NavLink prepared for rendering.
type LinkView struct {
	NavLink
	Active bool
}

// Highlight marks the link whose path equals currentPath exactly. No prefix matching.
func Highlight(links []NavLink, currentPath string) []LinkView {
	views := make([]LinkView, len(links))
	for i, l := range links {
		views[i] = LinkView{NavLink: l, Active: l.Path == currentPath}
	}
	return views
}

// IsDashboard reports whether path selects the dashboard layout.
func IsDashboard(path string) bool {
	return path == DashboardPath
}
