package roster

import (
	"fmt"

	"github.com/wardplan/wardplan/core/cp"
	"github.com/wardplan/wardplan/core/logger"
)

// Params are the numeric knobs for the fixed constraint set.
type Params struct {
	MinHoursPerWeek        int
	MaxHoursPerWeek        int
	MinNursesPerShift      int
	MinSeniorsPerShift     int
	MinAMCoveragePct       int
	MinSeniorAMCoveragePct int
}

// VarIndex resolves (nurse, day, shift) triples to their decision variables.
// The triples are structured keys into the variable arena; no string-formatted
// names are ever parsed back.
type VarIndex struct {
	nurses   []string
	nurseIdx map[string]int
	seniors  int
	days     []Day
	vars     [][][]*cp.BoolVar
}

// Nurses returns every nurse identifier, seniors first.
func (ix *VarIndex) Nurses() []string { return ix.nurses }

// Seniors returns the senior nurse identifiers.
func (ix *VarIndex) Seniors() []string { return ix.nurses[:ix.seniors] }

// Juniors returns the junior nurse identifiers.
func (ix *VarIndex) Juniors() []string { return ix.nurses[ix.seniors:] }

// Days returns the scheduling horizon.
func (ix *VarIndex) Days() []Day { return ix.days }

// Work returns the variable for the triple. The caller must pass a known
// nurse, a day index inside the horizon and a canonical shift.
func (ix *VarIndex) Work(nurse string, day int, shift Shift) *cp.BoolVar {
	v, ok := ix.Lookup(nurse, day, shift)
	if !ok {
		panic(fmt.Sprintf("roster: no variable for (%s, %d, %s)", nurse, day, shift))
	}
	return v
}

// Lookup resolves the triple, reporting whether it exists.
func (ix *VarIndex) Lookup(nurse string, day int, shift Shift) (*cp.BoolVar, bool) {
	n, ok := ix.nurseIdx[nurse]
	if !ok || day < 0 || day >= len(ix.days) {
		return nil, false
	}
	s := shiftIndex(shift)
	if s < 0 {
		return nil, false
	}
	return ix.vars[n][day][s], true
}

// Builder encodes one request's roster as variables and constraints on a
// single model. The builder never rejects a configuration; feasibility is
// discovered by the solver.
type Builder struct {
	model   *cp.Model
	seniors []string
	juniors []string
	days    []Day
	index   *VarIndex
	log     logger.Logger
}

// NewBuilder prepares a builder for the given nurses and horizon.
func NewBuilder(m *cp.Model, seniors, juniors []string, days []Day, log logger.Logger) *Builder {
	return &Builder{model: m, seniors: seniors, juniors: juniors, days: days, log: log}
}

// AllocateVariables creates one boolean variable per (nurse, day, shift)
// triple and returns the index over them. It is called once per request.
func (b *Builder) AllocateVariables() *VarIndex {
	nurses := make([]string, 0, len(b.seniors)+len(b.juniors))
	nurses = append(nurses, b.seniors...)
	nurses = append(nurses, b.juniors...)

	ix := &VarIndex{
		nurses:   nurses,
		nurseIdx: make(map[string]int, len(nurses)),
		seniors:  len(b.seniors),
		days:     b.days,
		vars:     make([][][]*cp.BoolVar, len(nurses)),
	}
	for n, nurse := range nurses {
		ix.nurseIdx[nurse] = n
		ix.vars[n] = make([][]*cp.BoolVar, len(b.days))
		for d := range b.days {
			ix.vars[n][d] = make([]*cp.BoolVar, len(Shifts))
			for s, shift := range Shifts {
				ix.vars[n][d][s] = b.model.NewBoolVar(fmt.Sprintf("work_%s_%d_%s", nurse, d, shift))
			}
		}
	}
	b.index = ix
	b.log.Debugf("allocated %d variables for %d nurses over %d days", b.model.NumVars(), len(nurses), len(b.days))
	return ix
}

// ApplyLeaveDeclarations fixes MC variables: forced to 1 on declared dates,
// to 0 everywhere else. It runs before any other constraint references MC.
func (b *Builder) ApplyLeaveDeclarations(leave map[string][]string) {
	declared := make(map[string]map[string]bool, len(leave))
	for nurse, dates := range leave {
		set := make(map[string]bool, len(dates))
		for _, d := range dates {
			set[d] = true
		}
		declared[nurse] = set
	}
	for _, nurse := range b.index.nurses {
		dates := declared[nurse]
		for d, day := range b.days {
			mc := b.index.Work(nurse, d, ShiftMC).Lit()
			if dates[day.Date] {
				b.model.Add(cp.Sum(mc).Equal(1))
			} else {
				b.model.Add(cp.Sum(mc).Equal(0))
			}
		}
	}
}

// ApplyCoreConstraints encodes the fixed domain rules in a deterministic
// order: single assignment, shift coverage, percentage coverage, weekly hours.
func (b *Builder) ApplyCoreConstraints(p Params) {
	ix := b.index

	// Exactly one shift per nurse per day.
	for _, nurse := range ix.nurses {
		for d := range b.days {
			lits := make([]cp.Lit, len(Shifts))
			for s, shift := range Shifts {
				lits[s] = ix.Work(nurse, d, shift).Lit()
			}
			b.model.Add(cp.Sum(lits...).Equal(1))
		}
	}

	// Minimum headcount per working shift, overall and senior.
	for d := range b.days {
		for _, shift := range WorkingShifts {
			all := make([]cp.Lit, 0, len(ix.nurses))
			for _, nurse := range ix.nurses {
				all = append(all, ix.Work(nurse, d, shift).Lit())
			}
			b.model.Add(cp.Sum(all...).AtLeast(p.MinNursesPerShift))

			srs := make([]cp.Lit, 0, ix.seniors)
			for _, nurse := range ix.Seniors() {
				srs = append(srs, ix.Work(nurse, d, shift).Lit())
			}
			b.model.Add(cp.Sum(srs...).AtLeast(p.MinSeniorsPerShift))
		}
	}

	// AM coverage as a percentage of all working nurses that day. The
	// comparison multiplies instead of dividing so everything stays in
	// integer arithmetic: 100*am >= pct*working becomes
	// (100-pct)*am - pct*(pm+night) >= 0. With no one working the sum is
	// empty and the inequality holds trivially.
	if p.MinAMCoveragePct > 0 {
		for d := range b.days {
			b.model.Add(b.coverageExpr(d, ix.nurses, p.MinAMCoveragePct).AtLeast(0))
		}
	}
	if p.MinSeniorAMCoveragePct > 0 {
		for d := range b.days {
			b.model.Add(b.coverageExpr(d, ix.Seniors(), p.MinSeniorAMCoveragePct).AtLeast(0))
		}
	}

	// Weekly hours over consecutive non-overlapping 7-day blocks from day 0.
	// A trailing partial week is not constrained.
	fullWeeks := len(b.days) / 7
	for _, nurse := range ix.nurses {
		for w := 0; w < fullWeeks; w++ {
			var lits []cp.Lit
			var hours []int
			for d := w * 7; d < (w+1)*7; d++ {
				for _, shift := range WorkingShifts {
					lits = append(lits, ix.Work(nurse, d, shift).Lit())
					hours = append(hours, shift.Hours())
				}
			}
			b.model.Add(cp.WeightedSum(lits, hours).Between(p.MinHoursPerWeek, p.MaxHoursPerWeek))
		}
	}
}

func (b *Builder) coverageExpr(day int, nurses []string, pct int) cp.LinearExpr {
	expr := cp.LinearExpr{}
	for _, nurse := range nurses {
		for _, shift := range WorkingShifts {
			coef := -pct
			if shift == ShiftAM {
				coef = 100 - pct
			}
			expr = expr.AddTerm(b.index.Work(nurse, day, shift).Lit(), coef)
		}
	}
	return expr
}
