package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// PathEnvVar names the optional YAML config file.
const PathEnvVar = "REPORT_CONFIG"

// envKeys lists the environment variables read by Load, lower-cased.
var envKeys = map[string]struct{}{
	"auth_secret":               {},
	"service_port":              {},
	"api_base_url":              {},
	"log_level":                 {},
	"log_format":                {},
	"gin_mode":                  {},
	"upstream_timeout":          {},
	"upstream_breaker_failures": {},
	"upstream_breaker_cooldown": {},
}

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if REPORT_CONFIG is set
//  3. env (AUTH_SECRET, SERVICE_PORT, API_BASE_URL, ...)
func Load(_ context.Context) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(New(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("%w: defaults: %v", ErrLoadConfig, err)
	}

	if path := os.Getenv(PathEnvVar); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: file %s: %v", ErrLoadConfig, path, err)
		}
	}

	// Unknown variables are dropped so PATH, HOME, ... never reach the struct.
	envProvider := env.Provider("", ".", func(s string) string {
		key := strings.ToLower(s)
		if _, ok := envKeys[key]; !ok {
			return ""
		}
		return key
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrLoadConfig, err)
	}

	cfg := &Config{}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints declared in struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
