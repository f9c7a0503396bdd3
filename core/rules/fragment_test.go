package rules

import (
	"errors"
	"strings"
	"testing"
)

const goodFragment = `for _, n := range Nurses {
	for d := 0; d < NumDays-1; d++ {
		M.AddImplication(Work(n, d, "Night"), Work(n, d+1, "AM").Not())
	}
}`

func TestNormalizeFragment(t *testing.T) {
	cases := []struct{ in, want string }{
		{"M.Add(x)", "M.Add(x)"},
		{"```go\nM.Add(x)\n```", "M.Add(x)"},
		{"```\nM.Add(x)\n```", "M.Add(x)"},
		{`for d := 0; d < NumDays; d++ {\n}`, "for d := 0; d < NumDays; d++ {\n}"},
		{"  M.Add(x)  ", "M.Add(x)"},
	}
	for _, c := range cases {
		if got := NormalizeFragment(c.in); got != c.want {
			t.Errorf("NormalizeFragment(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestVetFragmentAccepts(t *testing.T) {
	fragments := []string{
		goodFragment,
		`for _, n := range Seniors {
	lits := []Lit{}
	for d := 0; d < NumDays; d++ {
		lits = append(lits, Work(n, d, "Night"))
	}
	M.Add(Sum(lits...).AtMost(5))
}`,
		`for _, n := range Nurses {
	for d := 0; d < NumDays-1; d++ {
		if DayOfWeek[d] == "Saturday" && DayOfWeek[d+1] == "Sunday" {
			cond := M.NewBoolVar(n + "_sat")
			sat := Sum(Work(n, d, "AM"), Work(n, d, "PM"), Work(n, d, "Night"))
			M.Add(sat.AtLeast(1)).OnlyEnforceIf(cond)
			M.Add(sat.Equal(0)).OnlyEnforceIf(cond.Not())
			M.AddImplication(cond, Work(n, d+1, "REST"))
		}
	}
}`,
	}
	for _, f := range fragments {
		if err := VetFragment(f); err != nil {
			t.Errorf("expected fragment to pass vetting, got %v\nfragment:\n%s", err, f)
		}
	}
}

func TestVetFragmentRejects(t *testing.T) {
	cases := []struct {
		name     string
		fragment string
		reason   string
	}{
		{"foreign identifier", `os.Exit(1)`, "outside the sandbox vocabulary"},
		{"goroutine", `go M.Add(Sum().AtLeast(0))`, "forbidden construct"},
		{"defer", `defer M.Add(Sum().AtLeast(0))`, "forbidden construct"},
		{"function literal", `f := func() {}`, "forbidden construct"},
		{"return", `return`, "forbidden construct"},
		{"range over days", `for _, w := range DayOfWeek { M.Add(Sum().AtLeast(0)) }`, "range is only allowed over the nurse lists"},
		{"vocabulary reassignment", `NumDays = 0`, "read-only"},
		{"date string", `x := Work("s1", 0, "2024-07-01")`, "date-string comparisons are not allowed"},
		{"unknown method", `M.Remove(0)`, "outside the sandbox vocabulary"},
		{"not on sum", `x := Sum(Work("s1", 0, "AM")).Not()`, "cannot be negated"},
		{"sum in implication", `M.AddImplication(Work("s1", 0, "AM"), Sum(Work("s1", 1, "AM")))`, "implications must relate literals"},
		{"comparison in implication", `M.AddImplication(Work("s1", 0, "AM"), Sum(Work("s1", 1, "AM")).Equal(0))`, "implications must relate literals"},
		{"indexing foreign slice", `x := M[0]`, "indexing"},
	}
	for _, c := range cases {
		err := VetFragment(c.fragment)
		var unsafeErr *UnsafeRuleError
		if !errors.As(err, &unsafeErr) {
			t.Errorf("%s: expected UnsafeRuleError, got %v", c.name, err)
			continue
		}
		if !strings.Contains(unsafeErr.Reason, c.reason) {
			t.Errorf("%s: reason %q does not mention %q", c.name, unsafeErr.Reason, c.reason)
		}
	}
}

func TestVetFragmentUnparseable(t *testing.T) {
	err := VetFragment(`for n in nurses:`)
	var execErr *RuleExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("expected RuleExecutionError, got %v", err)
	}
}

func TestWrapFragment(t *testing.T) {
	src := WrapFragment("M.Add(Sum().AtLeast(0))")
	for _, want := range []string{"package main", `import . "ext"`, "func Apply() {"} {
		if !strings.Contains(src, want) {
			t.Errorf("wrapped source missing %q:\n%s", want, src)
		}
	}
}
