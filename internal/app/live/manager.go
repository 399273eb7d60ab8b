package live

import (
	"errors"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"cryptohub/internal/pkg/logx"
	"cryptohub/internal/pkg/metrics"
)

// ErrShuttingDown is returned by Open once Shutdown has begun.
var ErrShuttingDown = errors.New("live: manager is shutting down")

// Manager tracks every connected Session so they can be stopped together on shutdown.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	closed   bool

	// one count per session whose event loop has not returned yet.
	wg sync.WaitGroup

	logger zerolog.Logger
}

// NewManager returns an empty Manager.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		logger:   logx.Component("LiveManager"),
	}
}

// Open creates and registers a Session for conn. The caller runs it with Serve.
func (m *Manager) Open(conn *websocket.Conn, cfg SessionConfig) (*Session, error) {
	s := NewSession(conn, cfg)
	s.manager = m

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrShuttingDown
	}

	m.sessions[s.ID] = s
	m.wg.Add(1)
	metrics.LiveSessions.Inc()

	m.logger.Info().Str("session_id", s.ID).Int("sessions", len(m.sessions)).Msg("Live session registered.")
	return s, nil
}

// unregister is called by a Session when its event loop returns.
func (m *Manager) unregister(s *Session) {
	m.mu.Lock()
	if _, ok := m.sessions[s.ID]; ok {
		delete(m.sessions, s.ID)
		metrics.LiveSessions.Dec()
	}
	remaining := len(m.sessions)
	m.mu.Unlock()

	m.wg.Done()

	m.logger.Info().Str("session_id", s.ID).Int("sessions", remaining).Msg("Live session removed.")
}

// Get returns the session with id, or nil.
func (m *Manager) Get(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[id]
}

// Count returns the number of registered sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Shutdown refuses new sessions, stops every registered one and waits for their event loops
// to return, so every navbar has been unmounted when it returns.
func (m *Manager) Shutdown() {
	m.logger.Info().Msg("Shutting down live sessions...")

	m.mu.Lock()
	m.closed = true
	for _, s := range m.sessions {
		s.Stop()
	}
	m.mu.Unlock()

	m.wg.Wait()

	m.logger.Info().Msg("Live manager shutdown complete.")
}
