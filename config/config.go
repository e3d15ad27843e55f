package config

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - api.go: backend API client configuration
//   - session.go: session token persistence and Redis
//   - console.go: list screen defaults
//   - log.go: logger configuration
//   - observability.go: metrics configuration
type AppConfig struct {
	// IsDev switches the logger to a human-readable console writer.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Backend API client configuration
	API APIConfig `envPrefix:"API_"`

	// Session persistence configuration
	Session SessionConfig
	Redis   RedisConfig `envPrefix:"REDIS_"`

	// List screen configuration
	Console ConsoleConfig `envPrefix:"CONSOLE_"`

	// Logging configuration
	Log LogConfig `envPrefix:"LOG_"`

	// Observability configuration
	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.API.Sanitize()
	c.Session.Sanitize()
	c.Redis.Sanitize()
	c.Console.Sanitize()
	c.Log.Sanitize()
	c.Observability.Sanitize()

	if c.IsDev && c.Log.Format == "" {
		c.Log.Format = LogFormatConsole
	}
}
