package session

import (
	"io"
	"log"
	"sort"
	"sync"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// Manager is a registry of sessions safe for concurrent use.
type Manager struct {
	sessions map[string]*Session
	mu       sync.RWMutex
	logger   *log.Logger
}

// NewManager creates an empty registry. A nil logger discards.
func NewManager(logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Manager{
		sessions: make(map[string]*Session),
		logger:   logger,
	}
}

// Create starts a session and registers it. Sessions without their own
// logger use the manager's.
func (m *Manager) Create(opts Options) (*Session, error) {
	if opts.Logger == nil {
		opts.Logger = m.logger
	}
	s, err := New(opts)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	m.logger.Printf("created %s (%s)", s.Name, s.ID)
	return s, nil
}

// Get returns a session by ID.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, errors.Wrapf(errors.ErrSessionNotFound, "session %q", id)
	}
	return s, nil
}

// Delete removes a session.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return errors.Wrapf(errors.ErrSessionNotFound, "session %q", id)
	}
	delete(m.sessions, id)
	m.logger.Printf("deleted %s (%s)", s.Name, s.ID)
	return nil
}

// List returns all sessions, oldest first.
func (m *Manager) List() []*Session {
	m.mu.RLock()
	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Created.Equal(out[j].Created) {
			return out[i].ID < out[j].ID
		}
		return out[i].Created.Before(out[j].Created)
	})
	return out
}

// Len returns the number of sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
