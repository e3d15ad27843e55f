package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/onebus/fleet-console/config"
	redisadapter "github.com/onebus/fleet-console/internal/adapters/redis"
	"github.com/onebus/fleet-console/internal/console"
	"github.com/onebus/fleet-console/internal/fleetapi"
	"github.com/onebus/fleet-console/internal/observability/statsd"
	"github.com/onebus/fleet-console/internal/paged"
	"github.com/onebus/fleet-console/internal/session"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Console holds the wired client-side dependencies of one process.
type Console struct {
	Config  config.AppConfig
	Logger  zerolog.Logger
	Session *session.Session
	API     *fleetapi.Client
	Options *console.OptionLoader
	Metrics *statsd.Client

	closers []func() error
}

// ConsoleDeps groups the inputs of NewConsole.
type ConsoleDeps struct {
	Config config.AppConfig
	Logger zerolog.Logger
	// OnUnauthorized runs after a 401 cleared the session.
	OnUnauthorized func()
}

// NewConsole builds the token store, session, metrics client and API client.
func NewConsole(ctx context.Context, deps ConsoleDeps) (*Console, error) {
	cfg := deps.Config
	logger := deps.Logger
	c := &Console{Config: cfg, Logger: logger}

	store, err := c.tokenStore(ctx)
	if err != nil {
		return nil, err
	}

	sessOpts := []session.Option{session.WithTTL(cfg.Session.TTL), session.WithLogger(logger)}
	if deps.OnUnauthorized != nil {
		sessOpts = append(sessOpts, session.WithOnUnauthorized(deps.OnUnauthorized))
	}
	c.Session = session.New(store, sessOpts...)

	c.Metrics, err = statsd.NewClient(ctx, statsd.Config{
		Enabled:    cfg.Observability.IsEnabled(),
		Address:    cfg.Observability.StatsdAddress,
		Prefix:     cfg.Observability.Prefix,
		Logger:     logger,
		GlobalTags: map[string]string{"service": serviceName},
	})
	if err != nil {
		logger.Warn().Err(err).Msg("metrics disabled")
		c.Metrics, _ = statsd.NewClient(ctx, statsd.Config{Logger: logger})
	}
	c.closers = append(c.closers, c.Metrics.Close)

	c.API, err = fleetapi.New(cfg.API, c.Session,
		fleetapi.WithLogger(logger),
		fleetapi.WithMetrics(c.Metrics),
	)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.Options = console.NewOptionLoader(c.API, logger)
	return c, nil
}

// ListOptions returns the list screen options derived from configuration.
func (c *Console) ListOptions() []paged.Option {
	opts := []paged.Option{
		paged.WithPageSize(c.Config.Console.PageSize),
		paged.WithDebounce(c.Config.Console.SearchDebounce),
		paged.WithMetrics(c.Metrics),
		paged.WithLogger(c.Logger),
	}
	if c.Config.Console.StaleGuard {
		opts = append(opts, paged.WithStaleResponseGuard())
	}
	return opts
}

// Close releases the metrics socket and the Redis connection.
func (c *Console) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

func (c *Console) tokenStore(ctx context.Context) (session.TokenStore, error) {
	if c.Config.Session.Store != config.SessionStoreRedis {
		return session.NewMemoryStore(), nil
	}
	client, err := ConnectRedis(ctx, c.Config.Redis, c.Logger)
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, client.Close)
	return redisadapter.NewTokenStore(client, c.Config.Redis.KeyPrefix, c.Config.Session.Key), nil
}

// ConnectRedis opens and pings a Redis client. Addr may be host:port or a
// redis:// URL.
//
//nolint:ireturn // returning redis.UniversalClient keeps client selection flexible.
func ConnectRedis(ctx context.Context, cfg config.RedisConfig, logger zerolog.Logger) (redis.UniversalClient, error) {
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, errors.New("redis session store requires REDIS_ADDR")
	}

	var client *redis.Client
	if isRedisURL(addr) {
		opt, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Password, DB: cfg.DB})
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if pingErr := client.Ping(pingCtx).Err(); pingErr != nil {
		if closeErr := client.Close(); closeErr != nil {
			pingErr = errors.Join(pingErr, fmt.Errorf("close redis client: %w", closeErr))
		}
		return nil, fmt.Errorf("ping redis: %w", pingErr)
	}

	logger.Debug().Str("addr", redactAddr(addr)).Msg("redis connected")
	return client, nil
}

func isRedisURL(value string) bool {
	v := strings.ToLower(value)
	return strings.HasPrefix(v, "redis://") || strings.HasPrefix(v, "rediss://")
}

func redactAddr(addr string) string {
	if u, err := url.Parse(addr); err == nil && u.User != nil {
		return u.Redacted()
	}
	if i := strings.LastIndex(addr, "@"); i > -1 {
		return addr[i+1:]
	}
	return addr
}
