package cp

import (
	"context"
	"time"
)

// Status reports the outcome of a solve call.
type Status int

const (
	// StatusUnknown means no usable assignment was found within budget.
	StatusUnknown Status = iota
	// StatusOptimal is a proven solution. Pure satisfaction problems report
	// Optimal for any assignment that satisfies every constraint.
	StatusOptimal
	// StatusFeasible is a valid but not provably optimal assignment.
	StatusFeasible
	// StatusInfeasible means the constraints admit no assignment.
	StatusInfeasible
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "OPTIMAL"
	case StatusFeasible:
		return "FEASIBLE"
	case StatusInfeasible:
		return "INFEASIBLE"
	default:
		return "UNKNOWN"
	}
}

// HasSolution reports whether the status carries a usable assignment.
func (s Status) HasSolution() bool {
	return s == StatusOptimal || s == StatusFeasible
}

// SolveParams bounds and seeds the search. Identical params and model give
// identical assignments.
type SolveParams struct {
	// TimeLimit is the wall-clock budget for one solve call.
	TimeLimit time.Duration
	// Workers is the number of concurrent searches in the portfolio.
	Workers int
	// GapLimit is the relative optimality-gap tolerance. It only takes
	// effect when the model carries an objective.
	GapLimit float64
	// Seed fixes the search order for reproducibility.
	Seed int64
}

// DefaultSolveParams mirrors the service defaults: 60s budget, 8 workers,
// 5% gap, seed 42.
func DefaultSolveParams() SolveParams {
	return SolveParams{
		TimeLimit: 60 * time.Second,
		Workers:   8,
		GapLimit:  0.05,
		Seed:      42,
	}
}

// Solution is a read-only assignment of every model variable to 0 or 1.
type Solution struct {
	values []bool
}

// NewSolution wraps an assignment indexed by variable arena position.
func NewSolution(values []bool) *Solution { return &Solution{values: values} }

// Value returns the assigned value of the variable.
func (s *Solution) Value(v *BoolVar) bool { return s.values[v.Index()] }

// LitValue returns the truth value of the literal under the assignment.
func (s *Solution) LitValue(l Lit) bool {
	val := s.values[l.Var().Index()]
	if l.Negated() {
		return !val
	}
	return val
}

// Result pairs a status with the solution, which is non-nil only when the
// status carries one.
type Result struct {
	Status   Status
	Solution *Solution
}

// Solver searches a frozen model for an assignment. Implementations must
// honor the context and the TimeLimit in params; the call blocks until a
// result is available or the budget is exhausted.
type Solver interface {
	Solve(ctx context.Context, m *Model, params SolveParams) (Result, error)
}
