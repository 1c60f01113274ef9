package config

import (
	"errors"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// ClientConfig configures launchpadctl.
type ClientConfig struct {
	BaseURL    string        `env:"LAUNCHPAD_API_URL" envDefault:"http://localhost:5000"`
	Timeout    time.Duration `env:"LAUNCHPAD_API_TIMEOUT" envDefault:"15s"`
	SessionDir string        `env:"LAUNCHPAD_SESSION_DIR"`
}

func LoadClient() (*ClientConfig, error) {
	_ = godotenv.Load()

	cfg := &ClientConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		return nil, errors.New("LAUNCHPAD_API_URL is empty")
	}
	if cfg.Timeout <= 0 {
		return nil, errors.New("LAUNCHPAD_API_TIMEOUT must be positive")
	}
	return cfg, nil
}
