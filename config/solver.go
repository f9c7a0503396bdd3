package config

import (
	"fmt"
	"time"

	"github.com/wardplan/wardplan/core/cp"
)

// SolverConfig bounds the search effort per request.
type SolverConfig struct {
	TimeLimitSeconds float64 `json:"time_limit_seconds"`
	Workers          int     `json:"workers"`
	GapLimit         float64 `json:"gap_limit"`
	Seed             int64   `json:"seed"`
	// TranslatorTimeoutSeconds bounds the rule translation call, not the solve.
	TranslatorTimeoutSeconds int `json:"translator_timeout_seconds"`
}

func (c *SolverConfig) SetDefaults() {
	d := cp.DefaultSolveParams()
	if c.TimeLimitSeconds <= 0 {
		c.TimeLimitSeconds = d.TimeLimit.Seconds()
	}
	if c.Workers <= 0 {
		c.Workers = d.Workers
	}
	if c.GapLimit <= 0 {
		c.GapLimit = d.GapLimit
	}
	if c.Seed == 0 {
		c.Seed = d.Seed
	}
	if c.TranslatorTimeoutSeconds <= 0 {
		c.TranslatorTimeoutSeconds = 30
	}
}

func (c SolverConfig) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("solver: workers must be positive")
	}
	return nil
}

// Params converts the section into solve parameters.
func (c SolverConfig) Params() cp.SolveParams {
	return cp.SolveParams{
		TimeLimit: time.Duration(c.TimeLimitSeconds * float64(time.Second)),
		Workers:   c.Workers,
		GapLimit:  c.GapLimit,
		Seed:      c.Seed,
	}
}
