package cp

import "fmt"

// Constraint is a linear relation over literals, optionally gated by
// enforcement literals: it only binds when every enforcement literal is true.
type Constraint struct {
	terms   []Term
	lo, hi  int
	hasLo   bool
	hasHi   bool
	enforce []Lit
}

// OnlyEnforceIf gates the constraint on the given literals being true and
// returns the constraint for chaining.
func (c *Constraint) OnlyEnforceIf(lits ...Lit) *Constraint {
	c.enforce = append(c.enforce, lits...)
	return c
}

// Terms returns the constrained expression's terms.
func (c *Constraint) Terms() []Term { return c.terms }

// Bounds returns the lower and upper bound and whether each is set.
func (c *Constraint) Bounds() (lo, hi int, hasLo, hasHi bool) {
	return c.lo, c.hi, c.hasLo, c.hasHi
}

// EnforcedBy returns the enforcement literals, nil when unconditional.
func (c *Constraint) EnforcedBy() []Lit { return c.enforce }

// Model aggregates the variables and constraints of one scheduling request.
// It is the only mutable shared structure in a request and grows
// monotonically: variables and constraints are added, never removed. Freeze
// marks the end of construction; the solver only reads a frozen model.
//
// A Model is not safe for concurrent use. Each request builds its own.
type Model struct {
	vars   []*BoolVar
	cons   []*Constraint
	frozen bool
}

// NewModel returns an empty model.
func NewModel() *Model { return &Model{} }

// NewBoolVar allocates a fresh boolean variable with a diagnostic name.
func (m *Model) NewBoolVar(name string) *BoolVar {
	if m.frozen {
		panic(fmt.Sprintf("cp: NewBoolVar(%q) on frozen model", name))
	}
	v := &BoolVar{index: len(m.vars), name: name}
	m.vars = append(m.vars, v)
	return v
}

// Add appends the constraint to the model and returns it for chaining.
func (m *Model) Add(c *Constraint) *Constraint {
	if m.frozen {
		panic("cp: Add on frozen model")
	}
	m.cons = append(m.cons, c)
	return c
}

// AddImplication adds a => b, encoded as b - a >= 0.
func (m *Model) AddImplication(a, b Lit) {
	m.Add(&Constraint{
		terms: []Term{{Lit: b, Coef: 1}, {Lit: a, Coef: -1}},
		lo:    0,
		hasLo: true,
	})
}

// Freeze ends the construction phase. Further mutation panics.
func (m *Model) Freeze() { m.frozen = true }

// Frozen reports whether the model has been frozen.
func (m *Model) Frozen() bool { return m.frozen }

// Vars returns the variable arena in allocation order.
func (m *Model) Vars() []*BoolVar { return m.vars }

// Constraints returns the constraints in insertion order.
func (m *Model) Constraints() []*Constraint { return m.cons }

// NumVars returns the number of allocated variables.
func (m *Model) NumVars() int { return len(m.vars) }

// NumConstraints returns the number of added constraints.
func (m *Model) NumConstraints() int { return len(m.cons) }
