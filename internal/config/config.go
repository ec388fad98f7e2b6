// Package config defines service configuration and its loading layers.
package config

import (
	"github.com/valeko/scoreline/internal/domain/auth"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// RedisAddr points at the key-value store backend.
	RedisAddr string `koanf:"redis_addr"`

	// RedisPassword is the optional AUTH password.
	RedisPassword string `koanf:"redis_password"`

	// RedisDB selects the redis logical database.
	RedisDB int `koanf:"redis_db"`

	// RedisDialTimeoutMS bounds store connection establishment.
	RedisDialTimeoutMS int `koanf:"redis_dial_timeout_ms"`

	// RedisMaxRetries bounds the store client's transient-error retries.
	RedisMaxRetries int `koanf:"redis_max_retries"`

	// CacheTTLSeconds is how long computed scores stay cached.
	CacheTTLSeconds int `koanf:"cache_ttl_seconds"`

	// Salt is the shared secret for regular tokens.
	Salt string `koanf:"salt"`

	// AdminSalt is the secret for admin hour-window tokens.
	AdminSalt string `koanf:"admin_salt"`
}

// New returns a Config carrying the defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":8080",
		RedisAddr:          "localhost:6379",
		RedisDB:            0,
		RedisDialTimeoutMS: 10_000,
		RedisMaxRetries:    3,
		CacheTTLSeconds:    3600,
		Salt:               auth.DefaultSalt,
		AdminSalt:          auth.DefaultAdminSalt,
	}
}
