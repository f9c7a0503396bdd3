package cp

// BoolVar is a single boolean decision variable. Variables are created and
// owned by exactly one Model; later stages reference them, never copy them.
type BoolVar struct {
	index int
	name  string
}

// Index returns the position of the variable in its model's arena.
func (v *BoolVar) Index() int { return v.index }

// Name returns the diagnostic label given at creation time. The label plays
// no role in identity; lookups go through the arena index.
func (v *BoolVar) Name() string { return v.name }

// Lit returns the positive literal of the variable.
func (v *BoolVar) Lit() Lit { return Lit{v: v} }

// Lit is a variable or its negation.
type Lit struct {
	v   *BoolVar
	neg bool
}

// Not returns the negated literal.
func (l Lit) Not() Lit { return Lit{v: l.v, neg: !l.neg} }

// Var returns the underlying variable.
func (l Lit) Var() *BoolVar { return l.v }

// Negated reports whether the literal is the negation of its variable.
func (l Lit) Negated() bool { return l.neg }

// Valid reports whether the literal references a variable.
func (l Lit) Valid() bool { return l.v != nil }
