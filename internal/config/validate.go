package config

import (
	"errors"
	"fmt"
)

const minJWTSecretLen = 32

// Validate checks constraints that cleanenv tags cannot express.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < minJWTSecretLen {
		return fmt.Errorf("auth.jwt_secret must be at least %d characters", minJWTSecretLen)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return errors.New("database.min_conns must not exceed database.max_conns")
	}
	if c.Messages.PopularCategories < 1 {
		return errors.New("messages.popular_categories must be positive")
	}
	return nil
}
