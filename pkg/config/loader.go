// Package config loads configuration structs from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load fills cfg from the environment using its `env` struct tags.
//
//	type ServerConfig struct {
//	    Port     int    `env:"HTTP_PORT" envDefault:"8080"`
//	    AdminKey string `env:"ADMIN_API_KEY,required"`
//	}
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}
