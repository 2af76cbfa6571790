// Package config loads the report-service configuration.
//
// Values are layered from built-in defaults, an optional YAML file named by
// REPORT_CONFIG and finally environment variables (AUTH_SECRET, SERVICE_PORT,
// API_BASE_URL, ...). The result is validated once and then treated as
// read-only for the life of the process.
package config

import (
	"time"
)

// Config contains process configuration.
type Config struct {
	// AuthSecret is the shared HMAC secret used to verify report-service bearers.
	AuthSecret string `koanf:"auth_secret" validate:"required"`

	// ServicePort is the TCP port the HTTP server binds to.
	ServicePort string `koanf:"service_port" validate:"required,numeric"`

	// APIBaseURL is the base URL of the upstream league API.
	APIBaseURL string `koanf:"api_base_url" validate:"required,url"`

	LogLevel  string `koanf:"log_level" validate:"oneof=trace debug info warn error"`
	LogFormat string `koanf:"log_format" validate:"oneof=json console"`
	GinMode   string `koanf:"gin_mode" validate:"oneof=debug release test"`

	// UpstreamTimeout bounds a single upstream GET.
	UpstreamTimeout time.Duration `koanf:"upstream_timeout" validate:"gt=0"`

	// UpstreamBreakerFailures trips the upstream circuit breaker after this many
	// consecutive failures. Zero disables the breaker.
	UpstreamBreakerFailures uint32        `koanf:"upstream_breaker_failures"`
	UpstreamBreakerCooldown time.Duration `koanf:"upstream_breaker_cooldown" validate:"gte=0"`
}

// New returns a Config populated with defaults. AuthSecret has no default.
func New() *Config {
	return &Config{
		ServicePort:             "8080",
		APIBaseURL:              "http://localhost:5000",
		LogLevel:                "info",
		LogFormat:               "json",
		GinMode:                 "release",
		UpstreamTimeout:         5 * time.Second,
		UpstreamBreakerFailures: 0,
		UpstreamBreakerCooldown: 30 * time.Second,
	}
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.ServicePort
}
