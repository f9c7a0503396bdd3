package cp

// Term is a literal scaled by an integer coefficient.
type Term struct {
	Lit  Lit
	Coef int
}

// LinearExpr is an integer-weighted sum of literals. Expressions are value
// types; comparing one against a bound produces a Constraint that can be
// added to a Model.
type LinearExpr struct {
	terms []Term
}

// Sum builds an expression where every literal counts with coefficient 1.
func Sum(lits ...Lit) LinearExpr {
	terms := make([]Term, len(lits))
	for i, l := range lits {
		terms[i] = Term{Lit: l, Coef: 1}
	}
	return LinearExpr{terms: terms}
}

// WeightedSum builds an expression pairing each literal with its coefficient.
// The slices must have equal length.
func WeightedSum(lits []Lit, coefs []int) LinearExpr {
	if len(lits) != len(coefs) {
		panic("cp: WeightedSum length mismatch")
	}
	terms := make([]Term, len(lits))
	for i, l := range lits {
		terms[i] = Term{Lit: l, Coef: coefs[i]}
	}
	return LinearExpr{terms: terms}
}

// AddTerm returns a copy of the expression with one more weighted literal.
func (e LinearExpr) AddTerm(l Lit, coef int) LinearExpr {
	terms := make([]Term, len(e.terms), len(e.terms)+1)
	copy(terms, e.terms)
	return LinearExpr{terms: append(terms, Term{Lit: l, Coef: coef})}
}

// Terms returns the expression's terms.
func (e LinearExpr) Terms() []Term { return e.terms }

// AtLeast constrains the expression to be >= bound.
func (e LinearExpr) AtLeast(bound int) *Constraint {
	return &Constraint{terms: e.terms, lo: bound, hasLo: true}
}

// AtMost constrains the expression to be <= bound.
func (e LinearExpr) AtMost(bound int) *Constraint {
	return &Constraint{terms: e.terms, hi: bound, hasHi: true}
}

// Equal constrains the expression to be == bound.
func (e LinearExpr) Equal(bound int) *Constraint {
	return &Constraint{terms: e.terms, lo: bound, hi: bound, hasLo: true, hasHi: true}
}

// Between constrains the expression to lie in [lo, hi].
func (e LinearExpr) Between(lo, hi int) *Constraint {
	return &Constraint{terms: e.terms, lo: lo, hi: hi, hasLo: true, hasHi: true}
}
