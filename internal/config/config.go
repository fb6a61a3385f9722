// Package config reads process configuration from the environment. MCP hosts
// launch the server with credentials injected as environment variables, so
// there is no config file surface.
package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/caarlos0/env/v10"
)

// Config holds the server configuration.
type Config struct {
	APIKey    string `env:"ALPACA_API_KEY"`
	SecretKey string `env:"ALPACA_SECRET_KEY"`
	Paper     bool   `env:"ALPACA_PAPER" envDefault:"true"`
	Transport string `env:"MCP_TRANSPORT" envDefault:"stdio"`
	Host      string `env:"MCP_HOST" envDefault:"0.0.0.0"`
	Port      int    `env:"MCP_PORT" envDefault:"8001"`
}

// Load parses the environment and verifies the broker credentials are set.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse environment: %w", err)
	}
	if cfg.APIKey == "" || cfg.SecretKey == "" {
		return cfg, errors.New("ALPACA_API_KEY and ALPACA_SECRET_KEY must be set")
	}
	return cfg, nil
}

// Addr returns the bind address for the network transports.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
