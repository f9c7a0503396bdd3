package config

import (
	"fmt"

	"github.com/wardplan/wardplan/infra/logger"
)

// LoggingConfig selects the log output format and threshold.
type LoggingConfig struct {
	Env   string `json:"env"`
	Level string `json:"level"`
}

func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
}

func (c LoggingConfig) Validate() error {
	switch c.Level {
	case "trace", "debug", "info", "warn", "error":
		return nil
	}
	return fmt.Errorf("logging: unknown level %q", c.Level)
}

// Options converts the section to logger options.
func (c LoggingConfig) Options() logger.Options {
	return logger.Options{Env: c.Env, Level: c.Level}
}
