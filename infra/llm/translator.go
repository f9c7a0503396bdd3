// Package llm translates free-form staffing rules into model constraints via
// an OpenAI-compatible chat endpoint. Local inference servers work through
// the base_url override.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/wardplan/wardplan/core/logger"
	"github.com/wardplan/wardplan/core/rules"
)

// Translator implements rules.Translator over a chat completion API.
type Translator struct {
	client *openai.Client
	cfg    Config
	log    logger.Logger
}

func NewTranslator(cfg Config, log logger.Logger) (*Translator, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		cc.BaseURL = cfg.BaseURL
	}
	if log == nil {
		log = nopLogger{}
	}
	return &Translator{client: openai.NewClientWithConfig(cc), cfg: cfg, log: log}, nil
}

func (t *Translator) Translate(ctx context.Context, rulesText string, days []rules.DayContext) (rules.Translation, error) {
	var system, user string
	if t.cfg.Mode == ModeFragment {
		system = fragmentSystem
		user = fragmentPrompt(rulesText, days)
	} else {
		system = structuredSystem
		user = structuredPrompt(rulesText, days)
	}

	t.log.Debugf("translating custom rules (%d chars, mode=%s)", len(rulesText), t.cfg.Mode)
	resp, err := t.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       t.cfg.Model,
		Temperature: 0,
		MaxTokens:   t.cfg.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return rules.Translation{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return rules.Translation{}, fmt.Errorf("chat completion returned no choices")
	}
	content := resp.Choices[0].Message.Content

	if t.cfg.Mode == ModeFragment {
		frag := rules.NormalizeFragment(content)
		if frag == "" {
			return rules.Translation{}, fmt.Errorf("empty fragment from model")
		}
		return rules.Translation{Fragment: frag}, nil
	}

	rs, err := parseRuleSet(content)
	if err != nil {
		return rules.Translation{}, err
	}
	t.log.Debugf("parsed %d structured rules", len(rs.Constraints))
	return rules.Translation{Rules: rs}, nil
}

// parseRuleSet pulls the rule set out of a chat response, tolerating code
// fences and prose around the JSON object.
func parseRuleSet(content string) (*rules.RuleSet, error) {
	s := rules.NormalizeFragment(content)
	if !strings.HasPrefix(s, "{") {
		start := strings.Index(s, "{")
		end := strings.LastIndex(s, "}")
		if start < 0 || end <= start {
			return nil, fmt.Errorf("no JSON object in model response")
		}
		s = s[start : end+1]
	}
	var rs rules.RuleSet
	if err := json.Unmarshal([]byte(s), &rs); err != nil {
		return nil, fmt.Errorf("decode rule set: %w", err)
	}
	return &rs, nil
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}
