package llm

import "fmt"

// Translation modes. Structured mode asks the model for a closed JSON rule
// grammar; fragment mode asks for a constraint fragment in the sandbox
// vocabulary.
const (
	ModeStructured = "structured"
	ModeFragment   = "fragment"
)

type Config struct {
	Enabled        bool   `json:"enabled"`
	BaseURL        string `json:"base_url"`
	APIKey         string `json:"api_key"`
	Model          string `json:"model"`
	Mode           string `json:"mode"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	MaxTokens      int    `json:"max_tokens"`
}

func (c *Config) SetDefaults() {
	if c.Model == "" {
		c.Model = "gpt-4o-mini"
	}
	if c.Mode == "" {
		c.Mode = ModeStructured
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = 2048
	}
}

func (c *Config) Validate() error {
	if c.APIKey == "" && c.BaseURL == "" {
		return fmt.Errorf("translator: api_key is required unless base_url points at a local endpoint")
	}
	if c.Mode != ModeStructured && c.Mode != ModeFragment {
		return fmt.Errorf("translator: unknown mode %q", c.Mode)
	}
	return nil
}
