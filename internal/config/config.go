// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the server configuration, populated from environment
// variables (a .env file is honored when present).
type Config struct {
	Addr          string        `env:"ADDR" envDefault:":8080"`
	DBPath        string        `env:"DB_PATH" envDefault:"./data/splitroom.db"`
	JWTSecret     string        `env:"JWT_SECRET,required"`
	TokenDuration time.Duration `env:"TOKEN_DURATION" envDefault:"24h"`
	OTPTTL        time.Duration `env:"OTP_TTL" envDefault:"5m"`
}

// Load reads configuration from the environment. Missing required values
// are an error, not a silent default.
func Load() (*Config, error) {
	// Best effort: absence of a .env file is fine.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
