// Package builder owns the editing state of one CV: the record, the chosen
// template, the export status and the user-facing notifications.
package builder

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/cv-genie/internal/rendering"
	"github.com/jonathan/cv-genie/internal/types"
)

// Store keeps sessions in memory. Nothing survives a restart.
type Store struct {
	registry *rendering.Registry
	logger   *zap.Logger

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewStore creates an empty store whose sessions render with registry.
func NewStore(registry *rendering.Registry, logger *zap.Logger) *Store {
	if registry == nil {
		registry = rendering.DefaultRegistry()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		registry: registry,
		logger:   logger,
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Registry returns the template registry shared by all sessions.
func (st *Store) Registry() *rendering.Registry {
	return st.registry
}

// Create starts a session editing r.
func (st *Store) Create(r types.Record) *Session {
	s := NewSession(st.registry, r, st.logger)

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()

	st.logger.Debug("session created", zap.String("session", s.ID.String()))
	return s
}

// Get looks up a session.
func (st *Store) Get(id uuid.UUID) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Delete removes a session and closes its subscriptions.
func (st *Store) Delete(id uuid.UUID) bool {
	st.mu.Lock()
	s, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()

	if ok {
		s.Close()
		st.logger.Debug("session deleted", zap.String("session", id.String()))
	}
	return ok
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// CloseAll closes every session's subscriptions, for server shutdown.
func (st *Store) CloseAll() {
	st.mu.RLock()
	defer st.mu.RUnlock()
	for _, s := range st.sessions {
		s.Close()
	}
}
