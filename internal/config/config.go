// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/crypto/bcrypt"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ListenAddr string        `env:"INKWELL_LISTEN_ADDR" envDefault:"127.0.0.1:8080"`
	DBPath     string        `env:"INKWELL_DB_PATH" envDefault:"inkwell.db"`
	SessionTTL time.Duration `env:"INKWELL_SESSION_TTL" envDefault:"24h"`
	BcryptCost int           `env:"INKWELL_BCRYPT_COST" envDefault:"10"`
}

// Load reads configuration from environment variables and returns a validated
// Config. All variables are optional; defaults suit local development.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("INKWELL_SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("INKWELL_BCRYPT_COST must be between %d and %d, got %d",
			bcrypt.MinCost, bcrypt.MaxCost, cfg.BcryptCost)
	}
	return &cfg, nil
}
