package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every variable, e.g. POTSIM_PLAYER_PLAYERS_COUNT.
const EnvPrefix = "POTSIM_"

// ApplyEnv overlays POTSIM_* environment variables onto cfg. Variables that
// are not set leave the field untouched.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
