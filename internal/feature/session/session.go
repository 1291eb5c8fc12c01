// Package session stores the admin's bearer credential. It is a thin
// wrapper: tokens are opaque strings persisted to a single file.
package session

import (
	"os"
	"strings"
	"sync"
)

// TokenStore holds the bearer token used by the live transport. An empty
// token means no credential is attached to requests.
type TokenStore struct {
	path  string // empty disables persistence
	token string
	mu    sync.RWMutex
}

// NewTokenStore creates a store backed by path. When path names an existing
// file its contents become the initial token.
func NewTokenStore(path string) (*TokenStore, error) {
	s := &TokenStore{path: path}
	if path == "" {
		return s, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	s.token = strings.TrimSpace(string(raw))
	return s, nil
}

// Token returns the current token, empty if none.
func (s *TokenStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Save replaces the stored token and persists it.
func (s *TokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	if s.path == "" {
		return nil
	}
	return os.WriteFile(s.path, []byte(token), 0o600)
}

// Clear wipes the stored token. Called on session expiry.
func (s *TokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	if s.path == "" {
		return nil
	}
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
