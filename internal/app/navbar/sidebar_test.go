package navbar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSidebarToggleTwiceReturnsToClosed(t *testing.T) {
	var s Sidebar
	assert.Equal(t, SidebarClosed, s.State())

	assert.True(t, s.Toggle())
	assert.Equal(t, SidebarOpen, s.State())

	assert.True(t, s.Toggle())
	assert.Equal(t, SidebarClosed, s.State())
}

func TestSidebarCloseTransitions(t *testing.T) {
	closers := map[string]func(*Sidebar) bool{
		"overlay": (*Sidebar).CloseFromOverlay,
		"link":    (*Sidebar).CloseFromLink,
		"button":  (*Sidebar).CloseFromButton,
		"logout":  (*Sidebar).CloseAfterLogout,
		"escape":  func(s *Sidebar) bool { return s.CloseFromKey(EscapeKey) },
	}

	for name, closeFn := range closers {
		t.Run(name, func(t *testing.T) {
			var s Sidebar
			assert.False(t, closeFn(&s), "closing a closed sidebar is a no-op")
			assert.Equal(t, SidebarClosed, s.State())

			s.Toggle()
			assert.True(t, closeFn(&s))
			assert.Equal(t, SidebarClosed, s.State())
		})
	}
}

func TestSidebarIgnoresOtherKeys(t *testing.T) {
	var s Sidebar
	s.Toggle()

	for _, key := range []string{"Enter", "a", "Esc", "escape", ""} {
		assert.False(t, s.CloseFromKey(key), key)
	}
	assert.True(t, s.IsOpen())
}

func TestSidebarStateString(t *testing.T) {
	assert.Equal(t, "open", SidebarOpen.String())
	assert.Equal(t, "closed", SidebarClosed.String())
}

func TestScrollTracker(t *testing.T) {
	var tr ScrollTracker

	assert.False(t, tr.Observe(0))
	assert.False(t, tr.Scrolled())

	assert.False(t, tr.Observe(20), "the threshold itself is not scrolled")
	assert.False(t, tr.Scrolled())

	assert.True(t, tr.Observe(21))
	assert.True(t, tr.Scrolled())

	assert.False(t, tr.Observe(400), "already scrolled")

	assert.True(t, tr.Observe(20))
	assert.False(t, tr.Scrolled())
}

func TestListenersAcquireOncePerKind(t *testing.T) {
	l := NewListeners()

	release, err := l.Acquire(ListenKeyDown)
	require.NoError(t, err)
	assert.True(t, l.Has(ListenKeyDown))

	_, err = l.Acquire(ListenKeyDown)
	assert.ErrorIs(t, err, ErrListenerActive)
	assert.Equal(t, 1, l.Len())

	release()
	release()
	assert.False(t, l.Has(ListenKeyDown))
	assert.Zero(t, l.Len())
}

func TestListenersStaleReleaseKeepsNewerRegistration(t *testing.T) {
	l := NewListeners()

	first, err := l.Acquire(ListenScroll)
	require.NoError(t, err)
	first()

	_, err = l.Acquire(ListenScroll)
	require.NoError(t, err)

	first()
	assert.True(t, l.Has(ListenScroll))
}

func TestListenersActiveIsSorted(t *testing.T) {
	l := NewListeners()
	for _, k := range []ListenerKind{ListenScroll, ListenKeyDown, ListenMouseDown} {
		_, err := l.Acquire(k)
		require.NoError(t, err)
	}

	assert.Equal(t, []ListenerKind{ListenKeyDown, ListenMouseDown, ListenScroll}, l.Active())
}
