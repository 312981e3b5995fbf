package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds process-level settings taken from the environment. The listen
// address, when set, overrides the one in the rules file.
type Env struct {
	ConfigPath string `env:"SATIRE_CONFIG" envDefault:"./satire_config.json"`
	DBPath     string `env:"SATIRE_DB" envDefault:"./data/satire.db"`
	Address    string `env:"SATIRE_ADDR"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv() (*Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &e, nil
}
