// Package config loads the service configuration from a YAML or JSON file
// with optional environment overrides (W_SERVER__ADDR style).
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/wardplan/wardplan/infra/llm"
)

type Config struct {
	Server     ServerConfig  `json:"server"`
	Solver     SolverConfig  `json:"solver"`
	Metrics    MetricsConfig `json:"metrics"`
	Logging    LoggingConfig `json:"logging"`
	Translator llm.Config    `json:"translator"`
}

// Default returns a runnable configuration with no file loaded: local
// server, stock solver limits, no metrics backends, no translator.
func Default() *Config {
	var cfg Config
	cfg.SetDefaults()
	return &cfg
}

func (c *Config) SetDefaults() {
	c.Server.SetDefaults()
	c.Solver.SetDefaults()
	c.Metrics.SetDefaults()
	c.Logging.SetDefaults()
	c.Translator.SetDefaults()
}

func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Solver.Validate(); err != nil {
		return err
	}
	if err := c.Metrics.Validate(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if c.Translator.Enabled {
		if err := c.Translator.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("W_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "w_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
