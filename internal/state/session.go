package state

import (
	"sync"

	"github.com/GTDGit/gtd_storefront/internal/sse"
)

// Session is the mock authentication state. It is never persisted.
type Session struct {
	IsLoggedIn bool   `json:"isLoggedIn"`
	Username   string `json:"username,omitempty"`
}

// SessionStore holds the logged-in flag gating the product mutation views.
// Login performs no credential verification.
type SessionStore struct {
	mu       sync.RWMutex
	session  Session
	notifier sse.Notifier
}

// NewSessionStore creates a logged-out store.
func NewSessionStore(notifier sse.Notifier) *SessionStore {
	if notifier == nil {
		notifier = sse.NopNotifier{}
	}
	return &SessionStore{notifier: notifier}
}

// Login marks the session as authenticated for username.
func (s *SessionStore) Login(username string) {
	s.set(Session{IsLoggedIn: true, Username: username})
}

// Logout resets the session to its initial state.
func (s *SessionStore) Logout() {
	s.set(Session{})
}

func (s *SessionStore) set(next Session) {
	s.mu.Lock()
	s.session = next
	s.mu.Unlock()
	s.notifier.Notify(sse.EventSessionChanged, next)
}

// IsAuthenticated reports whether the session is logged in.
func (s *SessionStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.IsLoggedIn
}

// Username returns the logged-in username, empty when logged out.
func (s *SessionStore) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Username
}

// Current returns a copy of the session.
func (s *SessionStore) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}
