package service

import (
	"sync"
)

// AuthService gates access to the deck behind an optional password.
// Authorized users are remembered for the lifetime of the process.
type AuthService struct {
	password string

	authorized map[int64]bool
	mu         sync.RWMutex
}

// NewAuthService creates a new auth service. An empty password lets everyone in.
func NewAuthService(password string) *AuthService {
	return &AuthService{
		password:   password,
		authorized: make(map[int64]bool),
	}
}

// PasswordRequired reports whether users must enter a password
func (s *AuthService) PasswordRequired() bool {
	return s.password != ""
}

// CheckPassword verifies if provided password matches
func (s *AuthService) CheckPassword(password string) bool {
	return s.PasswordRequired() && password == s.password
}

// IsAuthorized checks if user is authorized
func (s *AuthService) IsAuthorized(userID int64) bool {
	if !s.PasswordRequired() {
		return true
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authorized[userID]
}

// AuthorizeUser authorizes a user
func (s *AuthService) AuthorizeUser(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authorized[userID] = true
}
