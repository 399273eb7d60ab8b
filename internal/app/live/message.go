/*
Package live runs navbar instances for connected browsers.

Each WebSocket connection gets a Session: a read pump that accepts browser events, a single
event loop that owns the Navbar, and a write pump that owns the socket writer.

This file defines the JSON frames exchanged with the browser shim.
*/
package live

import (
	"time"

	"github.com/google/uuid"
)

// MessageType is the type field of a frame.
type MessageType string

// Browser to server.
const (
	TypeToggle       MessageType = "toggle"
	TypeClose        MessageType = "close"
	TypeOverlayClick MessageType = "overlay_click"
	TypeLinkClick    MessageType = "link_click"
	TypeKeyDown      MessageType = "keydown"
	TypeScroll       MessageType = "scroll"
	TypeLocation     MessageType = "location"
	TypeLogout       MessageType = "logout"
)

// eventLabelUnknown is the metrics label shared by every unrecognised inbound type.
const eventLabelUnknown = "unknown"

// eventLabel returns t for browser-to-server types and eventLabelUnknown for anything else,
// so the label set stays fixed whatever the browser sends.
func eventLabel(t MessageType) string {
	switch t {
	case TypeToggle, TypeClose, TypeOverlayClick, TypeLinkClick,
		TypeKeyDown, TypeScroll, TypeLocation, TypeLogout:
		return string(t)
	}
	return eventLabelUnknown
}

// Server to browser.
const (
	TypeRender   MessageType = "render"
	TypeNavigate MessageType = "navigate"
	TypeError    MessageType = "error"
)

// Message is an outbound frame.
type Message struct {
	ID        string      `json:"id"`
	Type      MessageType `json:"type"`
	Payload   any         `json:"payload,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// NewMessage stamps payload with an ID and the current time in milliseconds.
func NewMessage(msgType MessageType, payload any) Message {
	return Message{
		ID:        uuid.NewString(),
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now().UnixMilli(),
	}
}

// LinkPayload accompanies link_click.
type LinkPayload struct {
	Path    string `json:"path"`
	Surface string `json:"surface"`
}

// KeyPayload accompanies keydown. Key is KeyboardEvent.key.
type KeyPayload struct {
	Key string `json:"key"`
}

// ScrollPayload accompanies scroll. Offset is window.scrollY.
type ScrollPayload struct {
	Offset float64 `json:"offset"`
}

// LocationPayload accompanies location, sent on popstate.
type LocationPayload struct {
	Path string `json:"path"`
}

// LogoutPayload accompanies logout.
type LogoutPayload struct {
	Surface string `json:"surface"`
}

// RenderPayload carries fresh navbar markup and the document listeners the shim must hold.
type RenderPayload struct {
	HTML      string   `json:"html"`
	Path      string   `json:"path"`
	Listeners []string `json:"listeners"`
}

// NavigatePayload tells the shim to push a history entry and load path.
type NavigatePayload struct {
	Path string `json:"path"`
}

// ErrorPayload reports a non-fatal failure to the browser.
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
