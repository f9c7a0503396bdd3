package config

import "fmt"

// ServerConfig defines the HTTP API listener.
type ServerConfig struct {
	Addr string `json:"addr"`
	// ShutdownSeconds bounds graceful shutdown on SIGINT/SIGTERM.
	ShutdownSeconds int `json:"shutdown_seconds"`
}

func (c *ServerConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.ShutdownSeconds <= 0 {
		c.ShutdownSeconds = 10
	}
}

func (c ServerConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("server: addr is required")
	}
	return nil
}
