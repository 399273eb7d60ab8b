/*
Package navbar implements the site navigation bar.

This file defines the sidebar visibility state machine. Each way of closing the sidebar is a
separate named transition so the triggers can be audited and tested on their own.
*/
package navbar

// SidebarState is the visibility of the off-canvas sidebar.
type SidebarState uint8

const (
	SidebarClosed SidebarState = iota
	SidebarOpen
)

func (s SidebarState) String() string {
	if s == SidebarOpen {
		return "open"
	}
	return "closed"
}

// Reason identifies the trigger behind a sidebar transition.
type Reason string

const (
	ReasonToggle      Reason = "toggle"
	ReasonOverlay     Reason = "overlay"
	ReasonLink        Reason = "link"
	ReasonEscape      Reason = "escape"
	ReasonLogout      Reason = "logout"
	ReasonCloseButton Reason = "close_button"
)

// EscapeKey is the KeyboardEvent.key value that dismisses the sidebar.
const EscapeKey = "Escape"

// Sidebar is the two-state visibility controller. The zero value is closed.
type Sidebar struct {
	state SidebarState
}

// State returns the current state.
func (s *Sidebar) State() SidebarState {
	return s.state
}

// IsOpen reports whether the sidebar is open.
func (s *Sidebar) IsOpen() bool {
	return s.state == SidebarOpen
}

// Toggle flips the state. It always changes it.
func (s *Sidebar) Toggle() bool {
	if s.state == SidebarOpen {
		s.state = SidebarClosed
	} else {
		s.state = SidebarOpen
	}
	return true
}

// CloseFromOverlay closes after a click on the overlay region.
func (s *Sidebar) CloseFromOverlay() bool { return s.close() }

// CloseFromLink closes after a navigational link inside the sidebar was followed.
func (s *Sidebar) CloseFromLink() bool { return s.close() }

// CloseFromButton closes after the sidebar's own close control was used.
func (s *Sidebar) CloseFromButton() bool { return s.close() }

// CloseAfterLogout closes after a successful logout. Safe when already closed.
func (s *Sidebar) CloseAfterLogout() bool { return s.close() }

// CloseFromKey closes when key is Escape. Any other key is ignored.
func (s *Sidebar) CloseFromKey(key string) bool {
	if key != EscapeKey {
		return false
	}
	return s.close()
}

// close reports whether a transition happened.
func (s *Sidebar) close() bool {
	if s.state == SidebarClosed {
		return false
	}
	s.state = SidebarClosed
	return true
}
