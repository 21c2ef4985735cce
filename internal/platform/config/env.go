// Package config loads gomoku settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Prefix is prepended to every variable named in an env tag.
const Prefix = "GOMOKU_"

// ParseEnv fills target from GOMOKU_ variables, falling back to envDefault tags.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: Prefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
