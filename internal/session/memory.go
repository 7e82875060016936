package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryManager keeps sessions in a process-local map.  Sessions are lost on
// restart and are not shared between instances.
type MemoryManager struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryManager returns a manager whose sessions live for ttl.
func NewMemoryManager(ttl time.Duration) *MemoryManager {
	return &MemoryManager{ttl: ttl, now: time.Now, sessions: map[string]*Session{}}
}

func (m *MemoryManager) Create(_ context.Context, admin bool) (*Session, error) {
	now := m.now()
	s := &Session{ID: uuid.NewString(), Admin: admin, CreatedAt: now, ExpiresAt: now.Add(m.ttl)}

	m.mu.Lock()
	defer m.mu.Unlock()
	// expired entries are dropped here instead of by a background sweeper
	for id, old := range m.sessions {
		if old.Expired(now) {
			delete(m.sessions, id)
		}
	}
	m.sessions[s.ID] = s
	cp := *s
	return &cp, nil
}

func (m *MemoryManager) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if s.Expired(m.now()) {
		m.mu.Lock()
		delete(m.sessions, id)
		m.mu.Unlock()
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *MemoryManager) Destroy(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (m *MemoryManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
