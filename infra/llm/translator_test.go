package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wardplan/wardplan/core/rules"
)

func TestParseRuleSet(t *testing.T) {
	clean := `{"constraints":[{"kind":"max_count","shift":"Night","limit":5}]}`

	cases := []struct {
		name    string
		content string
	}{
		{"clean", clean},
		{"fenced", "```json\n" + clean + "\n```"},
		{"prose wrapped", "Here is the parsed rule set:\n" + clean + "\nLet me know if you need anything else."},
	}
	for _, c := range cases {
		rs, err := parseRuleSet(c.content)
		require.NoError(t, err, c.name)
		require.Len(t, rs.Constraints, 1, c.name)
		require.Equal(t, "max_count", rs.Constraints[0].Kind, c.name)
		require.Equal(t, 5, rs.Constraints[0].Limit, c.name)
	}
}

func TestParseRuleSetErrors(t *testing.T) {
	for _, content := range []string{"", "no json here", "{not json}"} {
		_, err := parseRuleSet(content)
		require.Error(t, err, "%q", content)
	}
}

func TestPromptsIncludeHorizon(t *testing.T) {
	days := []rules.DayContext{
		{Index: 0, Date: "2024-07-01", Weekday: "Monday"},
		{Index: 1, Date: "2024-07-02", Weekday: "Tuesday"},
	}

	s := structuredPrompt("no nights for juniors", days)
	require.Contains(t, s, "0: 2024-07-01 (Monday)")
	require.Contains(t, s, "1: 2024-07-02 (Tuesday)")
	require.Contains(t, s, "no nights for juniors")
	require.Contains(t, s, `"max_count"`)

	f := fragmentPrompt("no nights for juniors", days)
	require.Contains(t, f, "0: 2024-07-01 (Monday)")
	require.Contains(t, f, "Work(n, d, s)")
	require.Contains(t, f, "no nights for juniors")
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	require.Equal(t, "gpt-4o-mini", cfg.Model)
	require.Equal(t, ModeStructured, cfg.Mode)
	require.Equal(t, 30, cfg.TimeoutSeconds)
	require.Equal(t, 2048, cfg.MaxTokens)
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{Mode: ModeStructured}
	require.Error(t, cfg.Validate(), "missing credentials")

	cfg = Config{Mode: ModeStructured, BaseURL: "http://localhost:11434/v1"}
	require.NoError(t, cfg.Validate(), "local endpoint needs no key")

	cfg = Config{Mode: "interpretive-dance", APIKey: "k"}
	require.Error(t, cfg.Validate(), "unknown mode")
}

func TestNewTranslator(t *testing.T) {
	tr, err := NewTranslator(Config{APIKey: "test-key"}, nil)
	require.NoError(t, err)
	require.Equal(t, ModeStructured, tr.cfg.Mode)

	_, err = NewTranslator(Config{APIKey: "k", Mode: "bogus"}, nil)
	require.Error(t, err)
}

func TestFragmentModeNormalizes(t *testing.T) {
	// the fragment path shares NormalizeFragment with the vetting pipeline
	got := rules.NormalizeFragment("```go\nM.Add(Sum().AtLeast(0))\n```")
	require.False(t, strings.Contains(got, "```"))
}
