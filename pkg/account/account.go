package account

import (
	"strings"
	"sync"
)

// Provider is the account/session manager consulted by the pipeline.
type Provider interface {
	UserID() string
	Cookie() string
}

// Static is a Provider with fixed values.
type Static struct {
	ID     string
	Header string
}

func (s Static) UserID() string { return s.ID }
func (s Static) Cookie() string { return s.Header }

// Anonymous is the Provider used when no account manager is configured.
var Anonymous Provider = Static{}

// Session is a mutable Provider safe for concurrent use.
type Session struct {
	mu     sync.RWMutex
	userID string
	cookie string
}

// NewSession returns a logged-out session.
func NewSession() *Session {
	return &Session{}
}

// Login replaces the active identity. Surrounding whitespace is trimmed.
func (s *Session) Login(userID, cookie string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ErrEmptyUserID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = userID
	s.cookie = strings.TrimSpace(cookie)
	return nil
}

// Logout forgets the active identity.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = ""
	s.cookie = ""
}

// LoggedIn reports whether a user is active.
func (s *Session) LoggedIn() bool {
	return s.UserID() != ""
}

func (s *Session) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

func (s *Session) Cookie() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cookie
}
