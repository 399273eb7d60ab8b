/*
Package navbar implements the site navigation bar.

This file defines the Navbar component: its collaborator interfaces, its lifecycle
(Mount/Unmount) and the event handlers that drive the sidebar, scroll and logout state.

A Navbar is not safe for concurrent use. The owner must deliver events one at a time, the way
a browser event loop does; the live package runs one goroutine per Navbar for that purpose.
*/
package navbar

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"cryptohub/internal/app/location"
	"cryptohub/internal/app/theme"
	"cryptohub/internal/app/user"
	"cryptohub/internal/pkg/logx"
	"cryptohub/internal/pkg/metrics"
)

// AuthProvider is the authentication collaborator.
// Implementations must be safe for concurrent use because Logout may run off the event loop.
type AuthProvider interface {
	// CurrentUser returns the signed-in user, or nil.
	CurrentUser() *user.User

	// Logout ends the current session.
	Logout(ctx context.Context) error

	// IsEmailProvider reports whether the session was opened with email and password.
	IsEmailProvider() bool
}

// ThemeProvider is the theming collaborator.
type ThemeProvider interface {
	Theme() theme.Theme
}

// Router is the routing collaborator.
type Router interface {
	CurrentPath() string
	Navigate(path string)
}

// Surface identifies which part of the navbar an interaction came from.
type Surface string

const (
	SurfaceTopBar  Surface = "topbar"
	SurfaceSidebar Surface = "sidebar"
)

// Deps are the collaborators a Navbar is built from.
type Deps struct {
	Auth   AuthProvider
	Theme  ThemeProvider
	Router Router

	// Logger is optional; the global logger is used when nil.
	Logger *zerolog.Logger
}

// DefaultLogoURL is the logo bundled with the server's static files.
const DefaultLogoURL = "/static/crypto-logo.svg"

// Options carries branding that does not change while the navbar is mounted.
type Options struct {
	Brand   string
	Version string
	LogoURL string
	Year    int
}

func (o Options) withDefaults() Options {
	if o.Brand == "" {
		o.Brand = "CryptoHub"
	}
	if o.Version == "" {
		o.Version = "1.0.0"
	}
	if o.LogoURL == "" {
		o.LogoURL = DefaultLogoURL
	}
	if o.Year == 0 {
		o.Year = time.Now().Year()
	}
	return o
}

// Navbar is one mounted navigation bar instance.
type Navbar struct {
	auth   AuthProvider
	theme  ThemeProvider
	router Router
	opts   Options

	sidebar   Sidebar
	scroll    ScrollTracker
	listeners *Listeners

	releaseScroll  func()
	releaseDismiss []func()

	mounted bool
	logger  zerolog.Logger
}

// New builds an unmounted Navbar.
func New(deps Deps, opts Options) *Navbar {
	base := logx.Logger()
	if deps.Logger != nil {
		base = deps.Logger
	}

	return &Navbar{
		auth:      deps.Auth,
		theme:     deps.Theme,
		router:    deps.Router,
		opts:      opts.withDefaults(),
		listeners: NewListeners(),
		logger:    base.With().Str("component", "navbar").Logger(),
	}
}

// Mount subscribes the scroll listener. Mounting twice is a no-op.
func (n *Navbar) Mount() error {
	if n.mounted {
		return nil
	}

	release, err := n.listeners.Acquire(ListenScroll)
	if err != nil {
		return err
	}

	n.releaseScroll = release
	n.mounted = true
	n.syncDismissListeners()

	n.logger.Debug().Msg("Navbar mounted.")
	return nil
}

// Unmount releases every listener the navbar holds. Events delivered afterwards are ignored.
func (n *Navbar) Unmount() {
	if !n.mounted {
		return
	}

	n.dropDismissListeners()
	if n.releaseScroll != nil {
		n.releaseScroll()
		n.releaseScroll = nil
	}
	n.mounted = false

	n.logger.Debug().Msg("Navbar unmounted.")
}

// Mounted reports whether the navbar is mounted.
func (n *Navbar) Mounted() bool {
	return n.mounted
}

// Listeners exposes the listener registry for inspection.
func (n *Navbar) Listeners() *Listeners {
	return n.listeners
}

// SidebarState returns the sidebar state.
func (n *Navbar) SidebarState() SidebarState {
	return n.sidebar.State()
}

// Scrolled reports the scrolled flag.
func (n *Navbar) Scrolled() bool {
	return n.scroll.Scrolled()
}

// Toggle handles the hamburger control.
func (n *Navbar) Toggle() bool {
	if !n.mounted {
		return false
	}
	return n.transition(ReasonToggle, n.sidebar.Toggle())
}

// CloseButton handles the close control in the sidebar header.
func (n *Navbar) CloseButton() bool {
	if !n.mounted {
		return false
	}
	return n.transition(ReasonCloseButton, n.sidebar.CloseFromButton())
}

// OverlayClick handles a click on the overlay region.
func (n *Navbar) OverlayClick() bool {
	if !n.mounted {
		return false
	}
	return n.transition(ReasonOverlay, n.sidebar.CloseFromOverlay())
}

// KeyDown handles a document keydown. Only Escape while the sidebar is open does anything.
func (n *Navbar) KeyDown(key string) bool {
	if !n.mounted || !n.listeners.Has(ListenKeyDown) {
		return false
	}
	return n.transition(ReasonEscape, n.sidebar.CloseFromKey(key))
}

// FollowLink navigates to path. Links inside the sidebar also close it.
// It reports whether the sidebar state changed.
func (n *Navbar) FollowLink(path string, from Surface) bool {
	if !n.mounted {
		return false
	}

	n.router.Navigate(path)

	if from != SurfaceSidebar {
		return false
	}
	return n.transition(ReasonLink, n.sidebar.CloseFromLink())
}

// Scroll records the window's vertical offset and reports whether the scrolled flag changed.
func (n *Navbar) Scroll(offset float64) bool {
	if !n.mounted || !n.listeners.Has(ListenScroll) {
		return false
	}
	return n.scroll.Observe(offset)
}

// LogoutResult is the outcome of a logout attempt.
type LogoutResult struct {
	// Err is the collaborator's failure, nil on success.
	Err error

	// NavigatedTo is the path the navbar moved to, empty when it did not navigate.
	NavigatedTo string

	// ClosedSidebar reports whether the sidebar was open and got closed.
	ClosedSidebar bool

	// Detached is set when the completion arrived after Unmount and was discarded.
	Detached bool
}

// OK reports whether the logout succeeded.
func (r LogoutResult) OK() bool {
	return r.Err == nil
}

// Logout performs the whole logout on the caller's goroutine.
func (n *Navbar) Logout(ctx context.Context) LogoutResult {
	return n.FinishLogout(n.RequestLogout(ctx))
}

// RequestLogout calls the auth collaborator and returns its error. It touches no navbar state,
// so it may run on a separate goroutine while the event loop keeps serving events.
func (n *Navbar) RequestLogout(ctx context.Context) error {
	ctx, span := otel.Tracer("cryptohub/navbar").Start(ctx, "navbar.logout")
	defer span.End()

	err := n.auth.Logout(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "logout failed")
	}
	return err
}

// FinishLogout applies a logout completion. On success it navigates to the root path and
// closes the sidebar. On failure it only logs; nothing was changed optimistically.
func (n *Navbar) FinishLogout(err error) LogoutResult {
	if !n.mounted {
		n.logger.Debug().Err(err).Msg("Logout completed after unmount. Ignoring.")
		return LogoutResult{Err: err, Detached: true}
	}

	if err != nil {
		metrics.Logouts.WithLabelValues("failure").Inc()
		n.logger.Error().Err(err).Msg("Failed to logout")
		return LogoutResult{Err: err}
	}

	metrics.Logouts.WithLabelValues("success").Inc()

	n.router.Navigate(location.Root)
	closed := n.transition(ReasonLogout, n.sidebar.CloseAfterLogout())

	n.logger.Info().Bool("closed_sidebar", closed).Msg("User logged out.")

	return LogoutResult{NavigatedTo: location.Root, ClosedSidebar: closed}
}

// transition finishes a sidebar state change: listener bookkeeping, metrics and logging.
func (n *Navbar) transition(reason Reason, changed bool) bool {
	if !changed {
		return false
	}

	n.syncDismissListeners()
	metrics.SidebarTransitions.WithLabelValues(string(reason), n.sidebar.State().String()).Inc()

	n.logger.Debug().
		Str("reason", string(reason)).
		Stringer("sidebar", n.sidebar.State()).
		Msg("Sidebar transition.")
	return true
}

// syncDismissListeners holds the mousedown and keydown listeners exactly while the sidebar is open.
func (n *Navbar) syncDismissListeners() {
	if n.mounted && n.sidebar.IsOpen() {
		if n.releaseDismiss != nil {
			return
		}
		for _, kind := range []ListenerKind{ListenMouseDown, ListenKeyDown} {
			release, err := n.listeners.Acquire(kind)
			if err != nil {
				n.logger.Warn().Err(err).Str("listener", string(kind)).Msg("Listener already held.")
				continue
			}
			n.releaseDismiss = append(n.releaseDismiss, release)
		}
		return
	}

	n.dropDismissListeners()
}

func (n *Navbar) dropDismissListeners() {
	for _, release := range n.releaseDismiss {
		release()
	}
	n.releaseDismiss = nil
}
