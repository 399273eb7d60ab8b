package navbar

// ScrollThreshold is the vertical offset, in CSS pixels, past which the bar counts as scrolled.
const ScrollThreshold = 20

// ScrollTracker derives the scrolled flag from the window's vertical offset.
type ScrollTracker struct {
	scrolled bool
}

// Observe records a scroll event and reports whether the flag changed.
func (t *ScrollTracker) Observe(offset float64) bool {
	next := offset > ScrollThreshold
	changed := next != t.scrolled
	t.scrolled = next
	return changed
}

// Scrolled reports the current flag.
func (t *ScrollTracker) Scrolled() bool {
	return t.scrolled
}
