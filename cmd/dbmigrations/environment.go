package main

import (
	"github.com/caarlos0/env/v11"
)

// Environment carries the values that may stand in for the store and
// database positional arguments.
type Environment struct {
	MigrationStore string `env:"DBM_MIGRATION_STORE"`
	Database       string `env:"DBM_DATABASE"`
}

func loadEnvironment() (Environment, error) {
	var environment Environment
	err := env.Parse(&environment)
	return environment, err
}
