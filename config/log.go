package config

import "strings"

const (
	// LogFormatJSON writes one JSON object per line.
	LogFormatJSON = "json"
	// LogFormatConsole writes human-readable lines.
	LogFormatConsole = "console"
)

// LogConfig controls the process logger.
type LogConfig struct {
	Level  string `env:"LEVEL"  envDefault:"info"`
	Format string `env:"FORMAT"`
	// File enables a size-rotated log file in addition to stderr.
	File       string `env:"FILE"`
	MaxSizeMB  int    `env:"MAX_SIZE_MB" envDefault:"10"`
	MaxBackups int    `env:"MAX_BACKUPS" envDefault:"3"`
}

// Sanitize lower-cases the level and format.
func (c *LogConfig) Sanitize() {
	c.Level = strings.ToLower(strings.TrimSpace(c.Level))
	if c.Level == "" {
		c.Level = "info"
	}
	switch f := strings.ToLower(strings.TrimSpace(c.Format)); f {
	case LogFormatJSON, LogFormatConsole:
		c.Format = f
	default:
		c.Format = ""
	}
	c.File = strings.TrimSpace(c.File)
	if c.MaxSizeMB <= 0 {
		c.MaxSizeMB = 10
	}
	if c.MaxBackups < 0 {
		c.MaxBackups = 0
	}
}
