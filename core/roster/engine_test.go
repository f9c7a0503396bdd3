package roster

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wardplan/wardplan/core/cp"
	"github.com/wardplan/wardplan/core/metrics"
	"github.com/wardplan/wardplan/core/rules"
	"github.com/wardplan/wardplan/infra/solver"
)

type stubTranslator struct {
	tr  rules.Translation
	err error
}

func (s stubTranslator) Translate(context.Context, string, []rules.DayContext) (rules.Translation, error) {
	return s.tr, s.err
}

type stubExecutor struct {
	fragment string
}

func (s *stubExecutor) Execute(_ *cp.Model, _ rules.Scope, fragment string) error {
	s.fragment = fragment
	return nil
}

type captureSink struct {
	events []metrics.SolveEvent
}

func (c *captureSink) RecordSolve(ev metrics.SolveEvent) error {
	c.events = append(c.events, ev)
	return nil
}

func testParams() cp.SolveParams {
	return cp.SolveParams{TimeLimit: 10 * time.Second, Workers: 2, GapLimit: 0.05, Seed: 42}
}

func feasibleRequest() Request {
	return Request{
		StartDate: "2024-07-01",
		EndDate:   "2024-07-02",
		SeniorIDs: []string{"s1", "s2"},
		JuniorIDs: []string{"j1"},
	}
}

func TestScheduleFeasible(t *testing.T) {
	sink := &captureSink{}
	e := NewEngine(nil, nil, solver.New(nil), testParams(), sink, nil)

	result, err := e.Schedule(context.Background(), feasibleRequest())
	require.NoError(t, err)
	require.Equal(t, cp.StatusOptimal, result.Status)
	require.Len(t, result.Entries, 6) // 3 nurses x 2 days
	require.NotEmpty(t, result.RequestID)

	// every working shift covered every day
	covered := map[string]map[Shift]int{}
	for _, entry := range result.Entries {
		if covered[entry.Date] == nil {
			covered[entry.Date] = map[Shift]int{}
		}
		covered[entry.Date][entry.Shift]++
	}
	for _, date := range []string{"2024-07-01", "2024-07-02"} {
		for _, shift := range WorkingShifts {
			require.GreaterOrEqual(t, covered[date][shift], 1, "%s %s", date, shift)
		}
	}

	resp := result.Response()
	require.Empty(t, resp.Error)
	require.Len(t, resp.Schedule, 6)

	require.Len(t, sink.events, 1)
	ev := sink.events[0]
	require.Equal(t, "OPTIMAL", ev.Status)
	require.Equal(t, 3, ev.Nurses)
	require.Equal(t, 2, ev.Days)
	require.Equal(t, 30, ev.Variables)
	require.False(t, ev.CustomRules)
}

func TestScheduleFullWeek(t *testing.T) {
	req := Request{
		StartDate: "2024-07-01",
		EndDate:   "2024-07-07",
		SeniorIDs: []string{"s1", "s2"},
		JuniorIDs: []string{"j1", "j2"},
	}
	e := NewEngine(nil, nil, solver.New(nil), testParams(), nil, nil)
	result, err := e.Schedule(context.Background(), req)
	require.NoError(t, err)
	require.True(t, result.Status.HasSolution())
	require.Len(t, result.Entries, 28) // 4 nurses x 7 days

	// exactly one entry per nurse per day
	seen := map[string]map[string]int{}
	for _, entry := range result.Entries {
		if seen[entry.Nurse] == nil {
			seen[entry.Nurse] = map[string]int{}
		}
		seen[entry.Nurse][entry.Date]++
		require.Equal(t, 1, seen[entry.Nurse][entry.Date])
	}
}

func TestScheduleCoverageAboveHeadcount(t *testing.T) {
	req := feasibleRequest()
	req.MinNursesPerShift = intp(10) // more than the roster holds

	e := NewEngine(nil, nil, solver.New(nil), testParams(), nil, nil)
	result, err := e.Schedule(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, cp.StatusInfeasible, result.Status)
	require.Empty(t, result.Entries)
}

func TestScheduleDeterministic(t *testing.T) {
	e := NewEngine(nil, nil, solver.New(nil), testParams(), nil, nil)

	first, err := e.Schedule(context.Background(), feasibleRequest())
	require.NoError(t, err)
	second, err := e.Schedule(context.Background(), feasibleRequest())
	require.NoError(t, err)
	require.Equal(t, first.Entries, second.Entries)
}

func TestScheduleInfeasible(t *testing.T) {
	req := feasibleRequest()
	req.EndDate = "2024-07-01"
	// one nurse on leave leaves two nurses for three mandatory shifts
	req.MCPreferences = map[string][]string{"j1": {"2024-07-01"}}

	e := NewEngine(nil, nil, solver.New(nil), testParams(), nil, nil)
	result, err := e.Schedule(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, cp.StatusInfeasible, result.Status)
	require.Empty(t, result.Entries)
	require.Equal(t, "No feasible solution found.", result.Response().Error)
}

func TestScheduleLeaveHonored(t *testing.T) {
	req := feasibleRequest()
	req.SeniorIDs = []string{"s1", "s2", "s3"}
	req.MCPreferences = map[string][]string{"j1": {"2024-07-01"}}

	e := NewEngine(nil, nil, solver.New(nil), testParams(), nil, nil)
	result, err := e.Schedule(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, cp.StatusOptimal, result.Status)

	for _, entry := range result.Entries {
		if entry.Nurse == "j1" && entry.Date == "2024-07-01" {
			require.Equal(t, ShiftMC, entry.Shift)
		}
		if entry.Shift == ShiftMC {
			require.Equal(t, "j1", entry.Nurse)
			require.Equal(t, "2024-07-01", entry.Date)
		}
	}
}

func TestScheduleBadDateRange(t *testing.T) {
	req := feasibleRequest()
	req.EndDate = "2024-06-30"

	e := NewEngine(nil, nil, solver.New(nil), testParams(), nil, nil)
	_, err := e.Schedule(context.Background(), req)
	var rangeErr *InvalidRangeError
	require.ErrorAs(t, err, &rangeErr)
}

func TestScheduleRulesWithoutTranslator(t *testing.T) {
	req := feasibleRequest()
	req.RulesText = "no night shifts for juniors"

	e := NewEngine(nil, nil, solver.New(nil), testParams(), nil, nil)
	_, err := e.Schedule(context.Background(), req)
	var trErr *rules.TranslationError
	require.ErrorAs(t, err, &trErr)
}

func TestScheduleTranslatorFailure(t *testing.T) {
	req := feasibleRequest()
	req.RulesText = "some rule"

	tr := stubTranslator{err: errors.New("model unavailable")}
	e := NewEngine(tr, nil, solver.New(nil), testParams(), nil, nil)
	_, err := e.Schedule(context.Background(), req)
	var trErr *rules.TranslationError
	require.ErrorAs(t, err, &trErr)
}

func TestScheduleStructuredRules(t *testing.T) {
	req := Request{
		StartDate:         "2024-07-01",
		EndDate:           "2024-07-02",
		SeniorIDs:         []string{"s1"},
		JuniorIDs:         []string{"j1"},
		RulesText:         "nobody works nights",
		MinNursesPerShift: intp(0), // no coverage floor, the rule bans nights outright
	}
	tr := stubTranslator{tr: rules.Translation{Rules: &rules.RuleSet{Constraints: []rules.Rule{
		{Kind: rules.KindMaxCount, Shift: "Night", Limit: 0},
	}}}}

	sink := &captureSink{}
	e := NewEngine(tr, nil, solver.New(nil), testParams(), sink, nil)
	result, err := e.Schedule(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, cp.StatusOptimal, result.Status)
	for _, entry := range result.Entries {
		require.NotEqual(t, ShiftNight, entry.Shift)
	}
	require.True(t, sink.events[0].CustomRules)
}

func TestScheduleInvalidStructuredRules(t *testing.T) {
	req := feasibleRequest()
	req.RulesText = "gibberish"
	tr := stubTranslator{tr: rules.Translation{Rules: &rules.RuleSet{Constraints: []rules.Rule{
		{Kind: "maximize_happiness", Shift: "AM"},
	}}}}

	e := NewEngine(tr, nil, solver.New(nil), testParams(), nil, nil)
	_, err := e.Schedule(context.Background(), req)
	var trErr *rules.TranslationError
	require.ErrorAs(t, err, &trErr)
}

func TestScheduleFragmentVettedAndExecuted(t *testing.T) {
	req := feasibleRequest()
	req.RulesText = "s1 never works night on day one"

	fragment := "```go\nM.Add(Sum(Work(\"s1\", 0, \"Night\")).AtMost(0))\n```"
	tr := stubTranslator{tr: rules.Translation{Fragment: fragment}}
	ex := &stubExecutor{}

	e := NewEngine(tr, ex, solver.New(nil), testParams(), nil, nil)
	result, err := e.Schedule(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, cp.StatusOptimal, result.Status)
	require.Equal(t, `M.Add(Sum(Work("s1", 0, "Night")).AtMost(0))`, ex.fragment)
}

func TestScheduleUnsafeFragmentRejected(t *testing.T) {
	req := feasibleRequest()
	req.RulesText = "anything"

	tr := stubTranslator{tr: rules.Translation{Fragment: `os.Exit(1)`}}
	ex := &stubExecutor{}

	e := NewEngine(tr, ex, solver.New(nil), testParams(), nil, nil)
	_, err := e.Schedule(context.Background(), req)
	var unsafeErr *rules.UnsafeRuleError
	require.ErrorAs(t, err, &unsafeErr)
	require.Empty(t, ex.fragment, "executor must not see rejected fragments")
}

func TestScheduleEmptyTranslation(t *testing.T) {
	req := feasibleRequest()
	req.RulesText = "anything"

	tr := stubTranslator{}
	e := NewEngine(tr, nil, solver.New(nil), testParams(), nil, nil)
	_, err := e.Schedule(context.Background(), req)
	var trErr *rules.TranslationError
	require.ErrorAs(t, err, &trErr)
}
