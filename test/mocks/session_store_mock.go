package mocks

import (
	"context"
	"errors"
	"sync"

	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/domain"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/ports"
)

var ErrMockSessionNotFound = errors.New("session not found")

// MockSessionStore implements ports.SessionStore in memory with error injection.
type MockSessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session

	SaveError   error
	GetError    error
	DeleteError error
	PingError   error

	SaveCalls   []string
	DeleteCalls []string
}

var _ ports.SessionStore = (*MockSessionStore)(nil)

func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{sessions: make(map[string]domain.Session)}
}

func (m *MockSessionStore) Save(ctx context.Context, sess *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SaveCalls = append(m.SaveCalls, sess.ID)
	if m.SaveError != nil {
		return m.SaveError
	}
	m.sessions[sess.ID] = *sess
	return nil
}

func (m *MockSessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.GetError != nil {
		return nil, m.GetError
	}
	sess, ok := m.sessions[id]
	if !ok {
		return nil, ErrMockSessionNotFound
	}
	return &sess, nil
}

func (m *MockSessionStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DeleteCalls = append(m.DeleteCalls, id)
	if m.DeleteError != nil {
		return m.DeleteError
	}
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionStore) Ping(ctx context.Context) error {
	return m.PingError
}

// Put stores a session directly (for test setup).
func (m *MockSessionStore) Put(sess domain.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
}

// Has reports whether a session id is stored (for test assertions).
func (m *MockSessionStore) Has(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.sessions[id]
	return ok
}
