package config

import (
	"strings"
	"time"
)

// SessionStore names a token persistence backend.
type SessionStore string

const (
	// SessionStoreMemory keeps the token for the life of the process.
	SessionStoreMemory SessionStore = "memory"
	// SessionStoreRedis keeps the token in Redis so it survives across CLI invocations.
	SessionStoreRedis SessionStore = "redis"

	defaultSessionKey = "fleet-console"
	defaultSessionTTL = 12 * time.Hour
)

// SessionConfig controls where the bearer token is kept.
type SessionConfig struct {
	Store SessionStore `env:"SESSION_STORE" envDefault:"memory"`
	Key   string       `env:"SESSION_KEY"   envDefault:"fleet-console"`
	// TTL applies when the token carries no exp claim.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"12h"`
}

// Sanitize falls back to the memory store for unknown values.
func (c *SessionConfig) Sanitize() {
	switch SessionStore(strings.ToLower(strings.TrimSpace(string(c.Store)))) {
	case SessionStoreRedis:
		c.Store = SessionStoreRedis
	default:
		c.Store = SessionStoreMemory
	}
	if c.Key = strings.TrimSpace(c.Key); c.Key == "" {
		c.Key = defaultSessionKey
	}
	if c.TTL <= 0 {
		c.TTL = defaultSessionTTL
	}
}

// RedisConfig contains Redis configuration.
type RedisConfig struct {
	Addr      string `env:"ADDR"       envDefault:"localhost:6379"`
	Password  string `env:"PASSWORD"   envDefault:""`
	DB        int    `env:"DB"         envDefault:"0"`
	KeyPrefix string `env:"KEY_PREFIX" envDefault:"fleet:session:"`
}

// Sanitize trims connection settings.
func (c *RedisConfig) Sanitize() {
	c.Addr = strings.TrimSpace(c.Addr)
	if c.DB < 0 {
		c.DB = 0
	}
}
