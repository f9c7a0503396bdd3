package rules

import (
	"context"

	"github.com/wardplan/wardplan/core/cp"
)

// DayContext gives the translator the indexed calendar it may refer to.
type DayContext struct {
	Index   int
	Date    string
	Weekday string
}

// Translation is the translator's output: exactly one of Rules (a structured
// constraint set, the preferred form) or Fragment (a vocabulary-constrained
// extension snippet) is populated.
type Translation struct {
	Rules    *RuleSet
	Fragment string
}

// Translator maps free-form rule text plus calendar context to a
// Translation. Implementations are network-bound and own their retry policy;
// callers bound the call with the context. Output is untrusted even when
// well-formed.
type Translator interface {
	Translate(ctx context.Context, rulesText string, days []DayContext) (Translation, error)
}

// Scope is the closed set of symbols a custom rule may reference. Lookup
// resolves a (nurse, day index, shift name) triple to its decision literal;
// date strings are deliberately absent so rules can only address days by
// integer index or weekday label.
type Scope struct {
	Nurses     []string
	Seniors    []string
	Juniors    []string
	DayOfWeek  []string
	ShiftNames []string
	Lookup     func(nurse string, day int, shift string) (cp.Lit, bool)
}

// NumDays returns the horizon length.
func (s Scope) NumDays() int { return len(s.DayOfWeek) }

// Executor applies a vetted fragment to the model within the scope. The
// fragment may add constraints and allocate auxiliary variables but cannot
// touch anything outside the scope's vocabulary.
type Executor interface {
	Execute(m *cp.Model, scope Scope, fragment string) error
}
