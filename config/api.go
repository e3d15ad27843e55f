package config

import (
	"strings"
	"time"
)

const (
	// DefaultAPIBaseURL is the backend base URL used during local development.
	DefaultAPIBaseURL = "http://localhost:8080/api/v1"
	defaultAPITimeout = 15 * time.Second
)

// APIConfig controls the HTTP client talking to the fleet backend.
type APIConfig struct {
	BaseURL   string        `env:"BASE_URL"   envDefault:"http://localhost:8080/api/v1"`
	Timeout   time.Duration `env:"TIMEOUT"    envDefault:"15s"`
	RateLimit float64       `env:"RATE_LIMIT" envDefault:"10"` // requests per second; <= 0 disables pacing
	RateBurst int           `env:"RATE_BURST" envDefault:"5"`
	UserAgent string        `env:"USER_AGENT" envDefault:"fleetctl"`
}

// Sanitize normalises the base URL and enforces safe defaults.
func (c *APIConfig) Sanitize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = DefaultAPIBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultAPITimeout
	}
	if c.RateLimit < 0 {
		c.RateLimit = 0
	}
	if c.RateBurst < 1 {
		c.RateBurst = 1
	}
	if c.UserAgent = strings.TrimSpace(c.UserAgent); c.UserAgent == "" {
		c.UserAgent = "fleetctl"
	}
}
