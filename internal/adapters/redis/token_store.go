// Package redis provides Redis-based adapters for the fleet console.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/onebus/fleet-console/internal/session"
	"github.com/redis/go-redis/v9"
	"golang.org/x/oauth2"
)

// TokenStore keeps the session token in Redis under prefix+key so separate CLI
// invocations share one login. The key expires with the token.
type TokenStore struct {
	client redis.UniversalClient
	key    string
	now    func() time.Time
}

var _ session.TokenStore = (*TokenStore)(nil)

// NewTokenStore creates a Redis token store for the given session key.
func NewTokenStore(client redis.UniversalClient, prefix, key string) *TokenStore {
	return &TokenStore{
		client: client,
		key:    prefix + key,
		now:    time.Now,
	}
}

type storedToken struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type,omitempty"`
	Expiry      time.Time `json:"expiry,omitzero"`
}

// Save stores tok with a TTL matching its expiry.
func (s *TokenStore) Save(ctx context.Context, tok *oauth2.Token) error {
	if tok == nil || tok.AccessToken == "" {
		return errors.New("token cannot be empty")
	}

	var ttl time.Duration
	if !tok.Expiry.IsZero() {
		ttl = tok.Expiry.Sub(s.now())
		if ttl <= 0 {
			return errors.New("token is expired")
		}
	}

	data, err := json.Marshal(storedToken{
		AccessToken: tok.AccessToken,
		TokenType:   tok.TokenType,
		Expiry:      tok.Expiry,
	})
	if err != nil {
		return fmt.Errorf("marshal token: %w", err)
	}
	return s.client.Set(ctx, s.key, data, ttl).Err()
}

// Load returns the stored token or session.ErrNoToken.
func (s *TokenStore) Load(ctx context.Context) (*oauth2.Token, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, session.ErrNoToken
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var st storedToken
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("unmarshal token: %w", err)
	}
	if st.AccessToken == "" {
		return nil, session.ErrNoToken
	}
	return &oauth2.Token{AccessToken: st.AccessToken, TokenType: st.TokenType, Expiry: st.Expiry}, nil
}

// Delete removes the stored token. Deleting a missing key is not an error.
func (s *TokenStore) Delete(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}
