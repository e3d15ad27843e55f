package config

import "time"

const (
	// MaxPageSize is the largest page the backend accepts; option lists use it.
	MaxPageSize     = 1000
	defaultPageSize = 10
	defaultDebounce = 500 * time.Millisecond
)

// ConsoleConfig holds list screen defaults.
type ConsoleConfig struct {
	PageSize       int           `env:"PAGE_SIZE"       envDefault:"10"`
	SearchDebounce time.Duration `env:"SEARCH_DEBOUNCE" envDefault:"500ms"`
	// StaleGuard drops list responses that arrive after a newer request was issued.
	StaleGuard bool `env:"STALE_GUARD" envDefault:"false"`
}

// Sanitize clamps the page size and restores the default debounce.
func (c *ConsoleConfig) Sanitize() {
	if c.PageSize < 1 {
		c.PageSize = defaultPageSize
	}
	if c.PageSize > MaxPageSize {
		c.PageSize = MaxPageSize
	}
	if c.SearchDebounce < 0 {
		c.SearchDebounce = defaultDebounce
	}
}
