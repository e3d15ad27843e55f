// Package session keeps the backend bearer token and exposes it as an
// oauth2.TokenSource for the HTTP client.
package session

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/oauth2"
)

// ErrNoToken is returned by a TokenStore that holds no token.
var ErrNoToken = errors.New("session: no token")

// TokenStore persists the current bearer token.
type TokenStore interface {
	Load(ctx context.Context) (*oauth2.Token, error)
	Save(ctx context.Context, tok *oauth2.Token) error
	Delete(ctx context.Context) error
}

// MemoryStore keeps the token for the life of the process.
type MemoryStore struct {
	mu  sync.RWMutex
	tok *oauth2.Token
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns a copy of the stored token or ErrNoToken.
func (m *MemoryStore) Load(context.Context) (*oauth2.Token, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.tok == nil {
		return nil, ErrNoToken
	}
	cp := *m.tok
	return &cp, nil
}

// Save replaces the stored token.
func (m *MemoryStore) Save(_ context.Context, tok *oauth2.Token) error {
	if tok == nil || tok.AccessToken == "" {
		return errors.New("session: empty token")
	}
	cp := *tok
	m.mu.Lock()
	m.tok = &cp
	m.mu.Unlock()
	return nil
}

// Delete forgets the stored token.
func (m *MemoryStore) Delete(context.Context) error {
	m.mu.Lock()
	m.tok = nil
	m.mu.Unlock()
	return nil
}
