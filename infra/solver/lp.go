package solver

import (
	"errors"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// relaxFeasible runs a phase-1 simplex on the LP relaxation of the
// unconditional constraints (variables relaxed to [0,1], enforcement-gated
// constraints skipped). An infeasible relaxation proves the boolean problem
// infeasible; anything else is inconclusive and the search decides.
func relaxFeasible(c *compiled) (feasible bool, proven bool) {
	rows := 0
	for _, con := range c.cons {
		if len(con.enf) > 0 {
			continue
		}
		if con.hasLo {
			rows++
		}
		if con.hasHi {
			rows++
		}
	}
	if rows == 0 || c.nvars == 0 {
		return true, false
	}

	// Standard form: one slack column per inequality row plus one per
	// variable for the x <= 1 box, all columns nonnegative.
	ncols := c.nvars + rows + c.nvars
	a := mat.NewDense(rows+c.nvars, ncols, nil)
	b := make([]float64, rows+c.nvars)

	row := 0
	slack := c.nvars
	addRow := func(con *lincon, upper bool) {
		// offset + Σ w·lit <= hi  (or >= lo, negated into <=-form).
		rhs := 0.0
		sign := 1.0
		if upper {
			rhs = float64(con.hi - con.offset)
		} else {
			sign = -1
			rhs = float64(-(con.lo - con.offset))
		}
		for _, t := range con.terms {
			coef := sign * float64(t.w)
			if t.lit.neg {
				// w·(1-x) contributes a constant to the left side.
				rhs -= coef
				coef = -coef
			}
			a.Set(row, t.lit.v, a.At(row, t.lit.v)+coef)
		}
		a.Set(row, slack, 1)
		b[row] = rhs
		row++
		slack++
	}
	for i := range c.cons {
		con := &c.cons[i]
		if len(con.enf) > 0 {
			continue
		}
		if con.hasHi {
			addRow(con, true)
		}
		if con.hasLo {
			addRow(con, false)
		}
	}
	for v := 0; v < c.nvars; v++ {
		a.Set(row, v, 1)
		a.Set(row, slack, 1)
		b[row] = 1
		row++
		slack++
	}

	obj := make([]float64, ncols)
	_, _, err := lpSimplex(obj, a, b, 1e-7, nil)
	if err != nil {
		if errors.Is(err, lp.ErrInfeasible) {
			return false, true
		}
		return true, false
	}
	return true, false
}

// lpSimplex points at the simplex routine so tests can simulate solver
// failures.
var lpSimplex = lp.Simplex
