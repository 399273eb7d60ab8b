/*
Package live runs navbar instances for connected browsers.

This file defines Session. Three goroutines cooperate per connection:
  - ReadPump reads frames and queues them for the event loop.
  - Run is the event loop. It is the only goroutine that touches the Navbar, so browser
    events are handled one at a time and each runs to completion.
  - WritePump drains the send queue into the socket and keeps the heartbeat.

Logout is the only operation that suspends. It runs on its own goroutine and its completion is
queued back to the event loop like any other event; if the loop has already exited the
completion is dropped.
*/
package live

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"cryptohub/internal/app/location"
	"cryptohub/internal/app/navbar"
	"cryptohub/internal/pkg/errs"
	"cryptohub/internal/pkg/logx"
	"cryptohub/internal/pkg/metrics"
)

const (
	// timeout for a single socket write.
	writeWait = 10 * time.Second

	// time allowed between pongs from the browser.
	pongWait = 60 * time.Second

	// ping interval, shorter than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// largest frame accepted from the browser.
	maxMessageSize = 4096

	// capacity of the outbound queue.
	sendBuffer = 64

	// capacity of the event loop queue.
	eventBuffer = 128

	// upper bound for one logout round trip to the session store.
	logoutTimeout = 10 * time.Second
)

// SessionConfig carries the collaborators for one connection.
type SessionConfig struct {
	// ID is optional; a random one is generated when empty.
	ID string

	// InitialPath is the pathname the page was loaded at.
	InitialPath string

	Auth    navbar.AuthProvider
	Theme   navbar.ThemeProvider
	Options navbar.Options
}

// logoutDone is the completion of an asynchronous logout.
type logoutDone struct {
	err error
}

// Session is one connected navbar.
type Session struct {
	ID string

	conn    *websocket.Conn
	navbar  *navbar.Navbar
	router  *location.Router
	manager *Manager

	// frames and completions for the event loop.
	events chan any

	// encoded frames for WritePump. Only Run sends on it and closes it.
	send chan []byte

	// closed to ask Run to stop.
	quit     chan struct{}
	quitOnce sync.Once

	// closed when Run has returned.
	done chan struct{}

	// owned by Run.
	logoutPending bool

	logger zerolog.Logger
}

// NewSession builds a Session around an upgraded connection. It does not start any goroutine.
func NewSession(conn *websocket.Conn, cfg SessionConfig) *Session {
	id := cfg.ID
	if id == "" {
		id = uuid.NewString()
	}

	logger := logx.Logger().With().Str("session_id", id).Logger()

	s := &Session{
		ID:     id,
		conn:   conn,
		events: make(chan any, eventBuffer),
		send:   make(chan []byte, sendBuffer),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
		logger: logger,
	}

	s.router = location.NewRouter(cfg.InitialPath, s.onNavigate)
	s.navbar = navbar.New(navbar.Deps{
		Auth:   cfg.Auth,
		Theme:  cfg.Theme,
		Router: s.router,
		Logger: &logger,
	}, cfg.Options)

	return s
}

// Done is closed once the event loop has exited and the navbar is unmounted.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Stop asks the session to shut down. It is safe to call more than once and from any goroutine.
func (s *Session) Stop() {
	s.quitOnce.Do(func() { close(s.quit) })
}

// Serve runs the session on the calling goroutine until the connection ends.
func (s *Session) Serve() {
	go s.WritePump()
	go s.Run()
	s.ReadPump()
}

// ReadPump reads frames until the socket fails, then stops the session.
func (s *Session) ReadPump() {
	defer s.Stop()

	s.conn.SetReadLimit(maxMessageSize)

	if err := s.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		s.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, frame, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Info().Err(err).Msg("Connection closed unexpectedly")
			}
			return
		}

		select {
		case s.events <- frame:
		case <-s.quit:
			return
		}
	}
}

// Run mounts the navbar, sends the first render and serves events until Stop.
func (s *Session) Run() {
	defer close(s.done)

	if s.manager != nil {
		defer s.manager.unregister(s)
	}

	if err := s.navbar.Mount(); err != nil {
		s.logger.Error().Err(err).Msg("Failed to mount navbar")
		close(s.send)
		return
	}

	defer func() {
		s.navbar.Unmount()
		close(s.send)
		s.logger.Info().Msg("Session event loop stopped.")
	}()

	s.render()

	for {
		select {
		case ev := <-s.events:
			s.dispatch(ev)
		case <-s.quit:
			return
		}
	}
}

func (s *Session) dispatch(ev any) {
	switch e := ev.(type) {
	case []byte:
		s.processInboundMessage(e)

	case logoutDone:
		s.logoutPending = false
		result := s.navbar.FinishLogout(e.err)
		if !result.OK() {
			s.sendError(errs.NewError(errs.ErrLogoutFailed))
			return
		}
		s.render()

	default:
		s.logger.Warn().Str("event", fmt.Sprintf("%T", ev)).Msg("Unknown event on session loop")
	}
}

// processInboundMessage decodes one browser frame and applies it to the navbar.
func (s *Session) processInboundMessage(frame []byte) {
	var inbound struct {
		Type    MessageType     `json:"type"`
		Payload json.RawMessage `json:"payload,omitempty"`
	}

	if err := json.Unmarshal(frame, &inbound); err != nil {
		s.logger.Warn().Err(err).Bytes("frame", frame).Msg("Browser sent invalid JSON")
		s.sendError(errs.NewError(errs.ErrInvalidFrame))
		return
	}

	metrics.Events.WithLabelValues(eventLabel(inbound.Type)).Inc()

	var (
		changed bool
		err     error
	)

	switch inbound.Type {
	case TypeToggle:
		changed = s.navbar.Toggle()

	case TypeClose:
		changed = s.navbar.CloseButton()

	case TypeOverlayClick:
		changed = s.navbar.OverlayClick()

	case TypeKeyDown:
		var p KeyPayload
		if err = decodePayload(inbound.Payload, &p); err == nil {
			changed = s.navbar.KeyDown(p.Key)
		}

	case TypeScroll:
		var p ScrollPayload
		if err = decodePayload(inbound.Payload, &p); err == nil {
			changed = s.navbar.Scroll(p.Offset)
		}

	case TypeLinkClick:
		var p LinkPayload
		if err = decodePayload(inbound.Payload, &p); err == nil {
			s.navbar.FollowLink(p.Path, navbar.Surface(p.Surface))
			// the active link moved even if the sidebar did not
			changed = true
		}

	case TypeLocation:
		var p LocationPayload
		if err = decodePayload(inbound.Payload, &p); err == nil {
			changed = s.router.Sync(p.Path)
		}

	case TypeLogout:
		// the payload is optional
		var p LogoutPayload
		if len(inbound.Payload) > 0 {
			err = json.Unmarshal(inbound.Payload, &p)
		}
		if err == nil {
			s.startLogout(p.Surface)
		}

	default:
		s.logger.Warn().Str("msg_type", string(inbound.Type)).Msg("Browser sent unsupported message type")
		s.sendError(errs.NewError(errs.ErrUnsupportedEvent, inbound.Type))
		return
	}

	if err != nil {
		s.logger.Warn().Err(err).Str("msg_type", string(inbound.Type)).Msg("Browser sent invalid payload")
		s.sendError(errs.NewError(errs.ErrInvalidFrame))
		return
	}

	if changed {
		s.render()
	}
}

func decodePayload(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return errors.New("missing payload")
	}
	return json.Unmarshal(raw, dst)
}

// startLogout calls the auth collaborator off the loop. A second request while one is in
// flight is ignored.
func (s *Session) startLogout(surface string) {
	if s.logoutPending {
		s.logger.Debug().Msg("Logout already in flight. Ignoring.")
		return
	}
	s.logoutPending = true
	s.logger.Info().Str("surface", surface).Msg("Logout requested.")

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), logoutTimeout)
		defer cancel()

		err := s.navbar.RequestLogout(ctx)

		select {
		case s.events <- logoutDone{err: err}:
		case <-s.done:
			s.logger.Debug().Err(err).Msg("Logout completed after session ended. Dropping completion.")
		}
	}()
}

// onNavigate is the router callback; it runs on the event loop.
func (s *Session) onNavigate(path string) {
	s.sendMessage(NewMessage(TypeNavigate, NavigatePayload{Path: path}))
}

// render sends the current view.
func (s *Session) render() {
	start := time.Now()
	view := s.navbar.View()

	html, err := navbar.RenderString(view)
	metrics.RenderDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to render navbar")
		s.sendError(errs.NewError(errs.ErrRenderFailed))
		return
	}

	listeners := make([]string, len(view.Listeners))
	for i, k := range view.Listeners {
		listeners[i] = string(k)
	}

	s.sendMessage(NewMessage(TypeRender, RenderPayload{
		HTML:      html,
		Path:      s.router.CurrentPath(),
		Listeners: listeners,
	}))
}

// sendError queues an error frame.
func (s *Session) sendError(customErr *errs.CustomError) {
	s.sendMessage(NewMessage(TypeError, ErrorPayload{
		Code:    customErr.Code,
		Message: customErr.Message,
	}))
}

// sendMessage encodes msg and queues it without blocking the loop; a full queue drops it.
func (s *Session) sendMessage(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error marshaling frame")
		return
	}

	select {
	case s.send <- data:
	default:
		s.logger.Warn().Int("queue_len", len(s.send)).Str("msg_type", string(msg.Type)).Msg("Send queue full, dropping frame")
	}
}

// WritePump writes queued frames and pings until the send queue is closed or a write fails.
func (s *Session) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		if err := s.conn.Close(); err != nil {
			s.logger.Debug().Err(err).Msg("Connection close error in WritePump")
		}
	}()

	for {
		select {
		case frame, ok := <-s.send:
			if !s.writeQueuedMessage(frame, ok) {
				return
			}

		case <-ticker.C:
			if !s.writePingMessage() {
				return
			}
		}
	}
}

// writeQueuedMessage returns false when WritePump should stop.
func (s *Session) writeQueuedMessage(frame []byte, ok bool) bool {
	if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		s.logger.Error().Err(err).Msg("Failed to set write deadline")
		return false
	}

	if !ok {
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		if err := s.conn.WriteMessage(websocket.CloseMessage, msg); err != nil {
			s.logger.Debug().Err(err).Msg("Error writing close message")
		}
		return false
	}

	if err := s.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		s.logger.Warn().Err(err).Msg("Error writing frame")
		s.Stop()
		return false
	}

	return true
}

func (s *Session) writePingMessage() bool {
	if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		s.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
		return false
	}

	if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		s.logger.Warn().Err(err).Msg("Error writing ping")
		s.Stop()
		return false
	}

	return true
}
