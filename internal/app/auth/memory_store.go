package auth

import (
	"context"
	"sync"
	"time"

	"cryptohub/internal/pkg/logx"
)

// MemoryStore keeps sessions in process memory. Sessions are lost on restart.
// Expired and revoked sessions stay until RemoveStale runs, usually from StartSweeper.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	now      func() time.Time
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
		now:      time.Now,
	}
}

func (m *MemoryStore) Create(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[s.ID] = *s
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return &s, nil
}

func (m *MemoryStore) Revoke(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	if s.RevokedAt != nil {
		return ErrSessionRevoked
	}

	now := m.now().UTC()
	s.RevokedAt = &now
	m.sessions[id] = s
	return nil
}

// Len returns the number of stored sessions.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// RemoveStale drops sessions that are expired or revoked at now and returns how many were
// dropped. A dropped session resolves as not found, which callers treat like a revoked one.
func (m *MemoryStore) RemoveStale(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for id, s := range m.sessions {
		if !s.Active(now) {
			delete(m.sessions, id)
			count++
		}
	}
	return count
}

// StartSweeper runs RemoveStale every interval until the returned stop func is called.
// Calling stop more than once is safe.
func (m *MemoryStore) StartSweeper(interval time.Duration) (stop func()) {
	done := make(chan struct{})
	var once sync.Once

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				removed := m.RemoveStale(m.now())
				logx.Debug("Session sweep finished.", "removed", removed, "remaining", m.Len())
			}
		}
	}()

	return func() { once.Do(func() { close(done) }) }
}
