// Package solver implements the boolean constraint solver backend: a
// portfolio of seeded depth-first searches with bounds propagation, fronted
// by an LP-relaxation feasibility check.
package solver

import (
	"context"

	"github.com/wardplan/wardplan/core/cp"
	"github.com/wardplan/wardplan/core/logger"
)

// BranchAndBound implements cp.Solver. The zero value is not usable; use New.
type BranchAndBound struct {
	log logger.Logger
}

// New returns a solver backend. log may be nil.
func New(log logger.Logger) *BranchAndBound {
	if log == nil {
		log = nop{}
	}
	return &BranchAndBound{log: log}
}

// Solve searches the model for an assignment within the wall-clock budget.
// Workers run independent seeded searches; the lowest-indexed worker with a
// solution wins, which keeps identical inputs reproducible. A worker that
// exhausts its search space, or an infeasible LP relaxation, proves
// infeasibility for all.
func (s *BranchAndBound) Solve(ctx context.Context, m *cp.Model, params cp.SolveParams) (cp.Result, error) {
	c, err := compile(m)
	if err != nil {
		return cp.Result{}, err
	}

	if feasible, proven := relaxFeasible(c); !feasible && proven {
		s.log.Infof("lp relaxation infeasible, skipping search")
		return cp.Result{Status: cp.StatusInfeasible}, nil
	}

	if params.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, params.TimeLimit)
		defer cancel()
	}
	workers := params.Workers
	if workers < 1 {
		workers = 1
	}

	wctx, stop := context.WithCancel(ctx)
	defer stop()

	type verdict struct {
		outcome searchOutcome
		vals    []int8
	}
	results := make([]chan verdict, workers)
	for i := 0; i < workers; i++ {
		results[i] = make(chan verdict, 1)
		go func(i int) {
			w := newWorker(wctx, c, params.Seed+int64(i))
			out := w.solve()
			results[i] <- verdict{outcome: out, vals: w.vals}
		}(i)
	}

	// Collect in worker order so the winning solution is deterministic.
	status := cp.StatusUnknown
	var winner []int8
	for i := 0; i < workers; i++ {
		v := <-results[i]
		if v.outcome == outcomeSat && winner == nil {
			winner = v.vals
			status = cp.StatusOptimal
			stop()
		}
		if v.outcome == outcomeUnsat && winner == nil {
			status = cp.StatusInfeasible
			stop()
		}
	}

	if winner == nil {
		return cp.Result{Status: status}, nil
	}
	values := make([]bool, c.nvars)
	for i, val := range winner {
		values[i] = val == 1
	}
	return cp.Result{Status: status, Solution: cp.NewSolution(values)}, nil
}

type nop struct{}

func (nop) Debugf(string, ...any)         {}
func (nop) Debugw(string, map[string]any) {}
func (nop) Infof(string, ...any)          {}
func (nop) Warnf(string, ...any)          {}
func (nop) Errorf(string, ...any)         {}
