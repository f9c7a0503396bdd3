package cp

import "testing"

func TestSumBounds(t *testing.T) {
	m := NewModel()
	x := m.NewBoolVar("x").Lit()
	y := m.NewBoolVar("y").Lit()

	c := Sum(x, y).Between(1, 2)
	lo, hi, hasLo, hasHi := c.Bounds()
	if lo != 1 || hi != 2 || !hasLo || !hasHi {
		t.Fatalf("unexpected bounds: %d %d %v %v", lo, hi, hasLo, hasHi)
	}
	if len(c.Terms()) != 2 {
		t.Fatalf("expected 2 terms, got %d", len(c.Terms()))
	}

	if c := Sum(x).AtLeast(1); c.Terms()[0].Coef != 1 {
		t.Fatalf("Sum coefficient should be 1, got %d", c.Terms()[0].Coef)
	}
}

func TestWeightedSumMismatchPanics(t *testing.T) {
	m := NewModel()
	x := m.NewBoolVar("x").Lit()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on length mismatch")
		}
	}()
	WeightedSum([]Lit{x}, []int{1, 2})
}

func TestAddImplicationEncoding(t *testing.T) {
	m := NewModel()
	a := m.NewBoolVar("a").Lit()
	b := m.NewBoolVar("b").Lit()
	m.AddImplication(a, b)

	if m.NumConstraints() != 1 {
		t.Fatalf("expected 1 constraint, got %d", m.NumConstraints())
	}
	c := m.Constraints()[0]
	lo, _, hasLo, hasHi := c.Bounds()
	if lo != 0 || !hasLo || hasHi {
		t.Fatalf("implication should be lower-bounded at 0")
	}
	// b - a >= 0
	terms := c.Terms()
	if terms[0].Lit != b || terms[0].Coef != 1 || terms[1].Lit != a || terms[1].Coef != -1 {
		t.Fatalf("unexpected implication terms: %+v", terms)
	}
}

func TestFreezePanics(t *testing.T) {
	m := NewModel()
	x := m.NewBoolVar("x").Lit()
	m.Freeze()
	if !m.Frozen() {
		t.Fatal("model should be frozen")
	}
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic adding to frozen model")
		}
	}()
	m.Add(Sum(x).Equal(1))
}

func TestSolutionLitValue(t *testing.T) {
	m := NewModel()
	x := m.NewBoolVar("x")
	y := m.NewBoolVar("y")
	sol := NewSolution([]bool{true, false})

	if !sol.Value(x) || sol.Value(y) {
		t.Fatal("unexpected variable values")
	}
	if !sol.LitValue(x.Lit()) || sol.LitValue(x.Lit().Not()) {
		t.Fatal("unexpected literal values for x")
	}
	if sol.LitValue(y.Lit()) || !sol.LitValue(y.Lit().Not()) {
		t.Fatal("unexpected literal values for y")
	}
}

func TestStatusString(t *testing.T) {
	cases := map[Status]string{
		StatusUnknown:    "UNKNOWN",
		StatusOptimal:    "OPTIMAL",
		StatusFeasible:   "FEASIBLE",
		StatusInfeasible: "INFEASIBLE",
	}
	for s, want := range cases {
		if s.String() != want {
			t.Errorf("%d.String() = %q, want %q", s, s.String(), want)
		}
	}
	if StatusInfeasible.HasSolution() || !StatusOptimal.HasSolution() {
		t.Fatal("HasSolution misclassifies")
	}
}
