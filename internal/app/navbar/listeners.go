/*
Package navbar implements the site navigation bar.

This file defines the registry of document-level listeners the navbar holds in the browser.
The browser shim attaches exactly the listeners in the registry after every render, so the
registry is the single source of truth for what is subscribed.
*/
package navbar

import (
	"errors"
	"sort"
)

// ListenerKind names a document-level event subscription.
type ListenerKind string

const (
	ListenScroll    ListenerKind = "scroll"
	ListenMouseDown ListenerKind = "mousedown"
	ListenKeyDown   ListenerKind = "keydown"
)

// ErrListenerActive is returned when a listener of the same kind is already held.
var ErrListenerActive = errors.New("navbar: listener already active")

// Listeners is the set of active document listeners for one navbar instance.
// Each kind is held at most once; the release func returned by Acquire is idempotent.
type Listeners struct {
	active map[ListenerKind]uint64
	seq    uint64
}

// NewListeners returns an empty registry.
func NewListeners() *Listeners {
	return &Listeners{active: make(map[ListenerKind]uint64)}
}

// Acquire registers a listener of kind and returns its release func.
func (l *Listeners) Acquire(kind ListenerKind) (func(), error) {
	if _, ok := l.active[kind]; ok {
		return nil, ErrListenerActive
	}

	l.seq++
	token := l.seq
	l.active[kind] = token

	return func() {
		// a stale release must not drop a newer registration of the same kind
		if l.active[kind] == token {
			delete(l.active, kind)
		}
	}, nil
}

// Has reports whether kind is active.
func (l *Listeners) Has(kind ListenerKind) bool {
	_, ok := l.active[kind]
	return ok
}

// Len returns the number of active listeners.
func (l *Listeners) Len() int {
	return len(l.active)
}

// Active returns the active kinds in a stable order.
func (l *Listeners) Active() []ListenerKind {
	kinds := make([]ListenerKind, 0, len(l.active))
	for k := range l.active {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
