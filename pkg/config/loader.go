package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load parses environment variables into the provided struct using `env`
// tags. Missing required variables (the upstream API URLs, the session
// secret) surface here, before the service binds its port.
//
// Example:
//
//	type Config struct {
//	    SalesAPIURL string `env:"SALES_API_URL,required"`
//	    HTTPPort    int    `env:"HTTP_PORT" envDefault:"8080"`
//	}
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("load environment config: %w", err)
	}
	return nil
}
