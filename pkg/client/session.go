package client

import "sync"

// Tokens is the credential pair returned by login
type Tokens struct {
	AccessToken  string
	RefreshToken string
}

// Session holds the signed-in user and tokens of one client. It starts empty,
// is filled by Init on login and emptied by Clear on logout or a 401.
type Session struct {
	mu     sync.RWMutex
	tokens Tokens
	user   *User
}

func NewSession() *Session {
	return &Session{}
}

func (s *Session) Init(tokens Tokens, user *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = tokens
	s.user = user
}

func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = Tokens{}
	s.user = nil
}

// Token is the access token, empty when signed out
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens.AccessToken
}

func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens.RefreshToken
}

func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) IsAuthenticated() bool {
	return s.Token() != ""
}
