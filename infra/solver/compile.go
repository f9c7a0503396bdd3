package solver

import (
	"fmt"

	"github.com/wardplan/wardplan/core/cp"
)

// nlit is a compiled literal: variable arena index plus polarity.
type nlit struct {
	v   int
	neg bool
}

// nterm is a normalized term: a positive weight on a literal. Negative
// coefficients are folded into the constraint offset and a flipped literal,
// so min/max sums are monotone in the literal values.
type nterm struct {
	lit nlit
	w   int
}

// lincon is a compiled linear constraint: offset + Σ w·lit ∈ [lo, hi],
// active only while every enforcement literal is true.
type lincon struct {
	offset int
	terms  []nterm
	lo, hi int
	hasLo  bool
	hasHi  bool
	enf    []nlit
}

// compiled is the solver-internal form of a frozen model. It is immutable
// and shared read-only by all portfolio workers.
type compiled struct {
	nvars int
	cons  []lincon
	// watch maps a variable to the constraints mentioning it.
	watch [][]int
}

func compile(m *cp.Model) (*compiled, error) {
	if !m.Frozen() {
		return nil, fmt.Errorf("solver: model must be frozen before solving")
	}
	c := &compiled{
		nvars: m.NumVars(),
		cons:  make([]lincon, 0, m.NumConstraints()),
		watch: make([][]int, m.NumVars()),
	}
	for _, con := range m.Constraints() {
		lc := normalize(con)
		ci := len(c.cons)
		c.cons = append(c.cons, lc)
		seen := make(map[int]bool, len(lc.terms)+len(lc.enf))
		for _, t := range lc.terms {
			if !seen[t.lit.v] {
				seen[t.lit.v] = true
				c.watch[t.lit.v] = append(c.watch[t.lit.v], ci)
			}
		}
		for _, l := range lc.enf {
			if !seen[l.v] {
				seen[l.v] = true
				c.watch[l.v] = append(c.watch[l.v], ci)
			}
		}
	}
	return c, nil
}

func normalize(con *cp.Constraint) lincon {
	lo, hi, hasLo, hasHi := con.Bounds()
	lc := lincon{lo: lo, hi: hi, hasLo: hasLo, hasHi: hasHi}
	for _, t := range con.Terms() {
		v := t.Lit.Var().Index()
		neg := t.Lit.Negated()
		switch {
		case t.Coef > 0:
			lc.terms = append(lc.terms, nterm{lit: nlit{v: v, neg: neg}, w: t.Coef})
		case t.Coef < 0:
			// c·x = c + |c|·(1-x): fold the constant, flip the literal.
			lc.offset += t.Coef
			lc.terms = append(lc.terms, nterm{lit: nlit{v: v, neg: !neg}, w: -t.Coef})
		}
	}
	for _, l := range con.EnforcedBy() {
		lc.enf = append(lc.enf, nlit{v: l.Var().Index(), neg: l.Negated()})
	}
	return lc
}
