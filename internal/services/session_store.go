package services

import (
	"sync"

	"github.com/google/uuid"
)

// SessionStore maps login session tokens to customer IDs. It is safe for
// concurrent use.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]string
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]string)}
}

// Start opens a session for customerID and returns its token.
func (s *SessionStore) Start(customerID string) string {
	token := uuid.New().String()
	s.mu.Lock()
	s.sessions[token] = customerID
	s.mu.Unlock()
	return token
}

// Lookup returns the customer a token belongs to.
func (s *SessionStore) Lookup(token string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.sessions[token]
	return id, ok
}

// End forgets the token. Unknown tokens are ignored.
func (s *SessionStore) End(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}
