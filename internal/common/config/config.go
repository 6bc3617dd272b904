// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Model    ModelConfig    `mapstructure:"model"`
	Features FeaturesConfig `mapstructure:"features"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
}

// TracingConfig points at the span collector. Empty means tracing is off.
type TracingConfig struct {
	JaegerURL string `mapstructure:"jaeger_url"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Host  string `mapstructure:"host"`
	Port  int    `mapstructure:"port"`
	Debug bool   `mapstructure:"debug"`
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// ModelConfig holds the scoring endpoint parameters. The gateway depends on
// exactly these four values and nothing else.
type ModelConfig struct {
	EndpointURL    string `mapstructure:"endpoint_url"`
	AuthToken      string `mapstructure:"auth_token"`
	RequestTimeout int    `mapstructure:"request_timeout"` // seconds
}

// Timeout returns the scoring request timeout as a duration.
func (m ModelConfig) Timeout() time.Duration {
	return time.Duration(m.RequestTimeout) * time.Second
}

// FeaturesConfig describes the feature schema the model requires.
type FeaturesConfig struct {
	Names    []string           `mapstructure:"names"`
	Defaults map[string]float64 `mapstructure:"defaults"`

	// DefaultsSatisfyPresence exempts features with a configured default
	// from required-presence validation. Off it reproduces the original
	// behavior where defaulted features are still required in the input.
	DefaultsSatisfyPresence bool `mapstructure:"defaults_satisfy_presence"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Problems returns every configuration issue that makes the gateway unable to
// score. The same list backs the fail-fast startup check and /health.
func (c *Config) Problems() []string {
	var problems []string

	if c.Model.EndpointURL == "" {
		problems = append(problems, "MODEL_ENDPOINT_URL is not set")
	}
	if c.Model.AuthToken == "" {
		problems = append(problems, "MODEL_AUTH_TOKEN is not set")
	}
	if c.Model.RequestTimeout <= 0 {
		problems = append(problems, "model.request_timeout must be positive")
	}
	if len(c.Features.Names) == 0 {
		problems = append(problems, "features.names must list at least one feature")
	}

	seen := make(map[string]bool, len(c.Features.Names))
	for _, name := range c.Features.Names {
		if seen[name] {
			problems = append(problems, fmt.Sprintf("duplicate feature name: %s", name))
		}
		seen[name] = true
	}
	for name := range c.Features.Defaults {
		if !seen[name] {
			problems = append(problems, fmt.Sprintf("default configured for unknown feature: %s", name))
		}
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid server port: %d", c.Server.Port))
	}

	return problems
}
