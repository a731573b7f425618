// Package session holds the identity of the logged-in user as an explicit
// capability. Services receive a read-only view of it instead of reaching
// into ambient global state.
package session

import (
	"sync"

	"skybook/internal/models"
)

// Store keeps the current session. Set at login, cleared at logout.
type Store struct {
	mu      sync.RWMutex
	current *models.Session
}

func NewStore() *Store {
	return &Store{}
}

// Set installs the session after a successful login.
func (s *Store) Set(sess models.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &sess
}

// Clear drops the session at logout.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

// Current returns the active session, if any.
func (s *Store) Current() (models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return models.Session{}, false
	}
	return *s.current, true
}

// Email returns the logged-in user's email, or "" when logged out.
func (s *Store) Email() string {
	sess, ok := s.Current()
	if !ok {
		return ""
	}
	return sess.Email
}
