package server

import "github.com/gofiber/fiber/v2"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables the check.
	ApiKey string `mapstructure:"api_key" default:""`
	// BodyLimitMB caps upload request bodies.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"64"`
}

// FiberConfig returns the fiber settings derived from c.
func (c Config) FiberConfig() fiber.Config {
	limit := c.BodyLimitMB
	if limit <= 0 {
		limit = 64
	}
	return fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             limit * 1024 * 1024,
		Immutable:             true,
	}
}
