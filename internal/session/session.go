package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	apperrors "github.com/onebus/fleet-console/internal/errors"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

const (
	defaultTTL = 12 * time.Hour
	// tokenLoadTimeout bounds the store read behind Token, which gets no
	// request context from oauth2.
	tokenLoadTimeout = 5 * time.Second
)

// Session owns the bearer token used by every backend request. It is passed to
// the HTTP client explicitly and notifies OnUnauthorized when the backend
// rejects the token.
type Session struct {
	store          TokenStore
	ttl            time.Duration
	now            func() time.Time
	logger         zerolog.Logger
	onUnauthorized func()

	mu sync.Mutex
}

// Option configures a Session.
type Option func(*Session)

// WithTTL sets the lifetime of tokens that carry no exp claim.
func WithTTL(ttl time.Duration) Option {
	return func(s *Session) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithOnUnauthorized registers the callback run after a 401 clears the token.
func WithOnUnauthorized(fn func()) Option {
	return func(s *Session) { s.onUnauthorized = fn }
}

// WithLogger sets the session logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) { s.logger = l.With().Str("component", "session").Logger() }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// New creates a Session backed by store.
func New(store TokenStore, opts ...Option) *Session {
	s := &Session{
		store:  store,
		ttl:    defaultTTL,
		now:    time.Now,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Set stores raw as the current token. The expiry comes from the token's exp
// claim when present, otherwise from the configured TTL.
func (s *Session) Set(ctx context.Context, raw string) error {
	raw = strings.Trim(strings.TrimSpace(raw), `"`)
	if raw == "" {
		return apperrors.Validation("token is empty")
	}
	exp, ok := ExpiryFromToken(raw)
	if !ok {
		exp = s.now().Add(s.ttl)
	}
	tok := &oauth2.Token{AccessToken: raw, TokenType: "Bearer", Expiry: exp}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Save(ctx, tok); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "save session token")
	}
	s.logger.Debug().Time("expiry", exp).Msg("session token stored")
	return nil
}

// Current returns the stored token. It fails with an Unauthorized error when
// there is none or it has expired.
func (s *Session) Current(ctx context.Context) (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tok, err := s.store.Load(ctx)
	if errors.Is(err, ErrNoToken) {
		return nil, apperrors.Unauthorized("not logged in")
	}
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "load session token")
	}
	if !tok.Expiry.IsZero() && !s.now().Before(tok.Expiry) {
		return nil, apperrors.Unauthorized("session expired")
	}
	return tok, nil
}

// Token implements oauth2.TokenSource. The store read is bounded by
// tokenLoadTimeout.
func (s *Session) Token() (*oauth2.Token, error) {
	ctx, cancel := context.WithTimeout(context.Background(), tokenLoadTimeout)
	defer cancel()
	return s.Current(ctx)
}

// Clear forgets the stored token.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Delete(ctx); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "delete session token")
	}
	return nil
}

// Unauthorized clears the token after the backend answered 401 and runs the
// OnUnauthorized callback. A failure to clear is logged, not returned.
func (s *Session) Unauthorized(ctx context.Context) {
	if err := s.Clear(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("clear session after 401")
	}
	s.logger.Info().Msg("session rejected by backend")
	if s.onUnauthorized != nil {
		s.onUnauthorized()
	}
}

var _ oauth2.TokenSource = (*Session)(nil)
