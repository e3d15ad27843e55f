// Package fleetapi is the HTTP client for the fleet backend REST API.
package fleetapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/onebus/fleet-console/config"
	apperrors "github.com/onebus/fleet-console/internal/errors"
	"github.com/onebus/fleet-console/internal/observability/metrics"
	"github.com/onebus/fleet-console/internal/observability/statsd"
	"github.com/onebus/fleet-console/internal/session"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	headerRequestID = "X-Request-ID"
	maxErrorBody    = 64 << 10
)

// envelope is the backend's domain wrapper around every payload.
type envelope[T any] struct {
	Value T `json:"value"`
}

// Client talks to the backend. Authenticated requests carry the session token
// as a bearer header; a 401 clears the session and is never retried.
type Client struct {
	baseURL *url.URL
	authed  *http.Client
	anon    *http.Client
	limiter *rate.Limiter
	session *session.Session
	metrics statsd.Sink
	logger  zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPTransport replaces the base round tripper (tests, proxies).
func WithHTTPTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.anon.Transport = &headerTransport{base: rt, userAgent: c.userAgent()}
		c.authed.Transport = &oauth2.Transport{Source: c.session, Base: c.anon.Transport}
	}
}

// WithLogger sets the client logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l.With().Str("component", "fleetapi").Logger() }
}

// WithMetrics sets the metrics sink.
func WithMetrics(sink statsd.Sink) Option {
	return func(c *Client) { c.metrics = sink }
}

// New builds a client for cfg.BaseURL using sess for authentication.
func New(cfg config.APIConfig, sess *session.Session, opts ...Option) (*Client, error) {
	if sess == nil {
		return nil, errors.New("fleetapi: session is required")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("fleetapi: invalid base url %q", cfg.BaseURL)
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}

	ua := cfg.UserAgent
	anonTransport := &headerTransport{base: http.DefaultTransport, userAgent: ua}
	c := &Client{
		baseURL: base,
		anon:    &http.Client{Timeout: cfg.Timeout, Transport: anonTransport},
		authed: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: &oauth2.Transport{Source: sess, Base: anonTransport},
		},
		limiter: rate.NewLimiter(limit, max(cfg.RateBurst, 1)),
		session: sess,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Session returns the session the client authenticates with.
func (c *Client) Session() *session.Session { return c.session }

func (c *Client) userAgent() string {
	if t, ok := c.anon.Transport.(*headerTransport); ok {
		return t.userAgent
	}
	return ""
}

// request describes one call to the backend.
type request struct {
	method string
	path   string
	query  url.Values
	body   any
	anon   bool
}

// do sends r and decodes a 2xx JSON answer into out (which may be nil).
func (c *Client) do(ctx context.Context, r request, out any) error {
	op := r.method + " " + r.path
	if err := c.limiter.Wait(ctx); err != nil {
		return apperrors.MapTransportError(err, op)
	}

	req, err := c.newRequest(ctx, r)
	if err != nil {
		return err
	}

	hc := c.authed
	if r.anon {
		hc = c.anon
	}

	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		if apperrors.IsUnauthorized(err) {
			// No usable token: same outcome as a 401 from the backend.
			c.unauthorized(ctx, r.path)
		}
		return apperrors.MapTransportError(err, op)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", r.method).
		Str("path", r.path).
		Int("status", resp.StatusCode).
		Str("request_id", req.Header.Get(headerRequestID)).
		Dur("elapsed", time.Since(start)).
		Msg("backend request")

	if resp.StatusCode == http.StatusUnauthorized && !r.anon {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		c.unauthorized(ctx, r.path)
		return apperrors.Unauthorized("session rejected by backend")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return newAPIError(resp.StatusCode, r.method, r.path, body)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperrors.Wrapf(err, apperrors.ErrCodeRemote, "decode %s", op)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, r request) (*http.Request, error) {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(r.path, "/")
	if len(r.query) > 0 {
		u.RawQuery = r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return nil, apperrors.Wrapf(err, apperrors.ErrCodeInternal, "encode %s %s", r.method, r.path)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u.String(), body)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrCodeInternal, "build %s %s", r.method, r.path)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) unauthorized(ctx context.Context, path string) {
	metrics.EmitUnauthorized(c.metrics, path)
	c.session.Unauthorized(ctx)
}

// headerTransport stamps every request with a request id and user agent.
type headerTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	if r.Header.Get(headerRequestID) == "" {
		r.Header.Set(headerRequestID, uuid.NewString())
	}
	if t.userAgent != "" {
		r.Header.Set("User-Agent", t.userAgent)
	}
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(r)
}
