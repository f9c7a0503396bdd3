package solver

import (
	"context"
	"math/rand"
)

// searchOutcome is one worker's verdict.
type searchOutcome int

const (
	outcomeAborted searchOutcome = iota // budget exhausted, nothing proven
	outcomeSat
	outcomeUnsat // search space exhausted without a solution
)

const deadlineCheckInterval = 2048

// worker runs one seeded depth-first search with bounds propagation over a
// shared compiled model. Workers never share mutable state.
type worker struct {
	c     *compiled
	vals  []int8 // -1 unassigned, else 0/1
	trail []int
	queue []int
	inQ   []bool
	pref  []int8 // seeded first value per variable
	nodes int
	ctx   context.Context
}

func newWorker(ctx context.Context, c *compiled, seed int64) *worker {
	w := &worker{
		c:     c,
		vals:  make([]int8, c.nvars),
		inQ:   make([]bool, len(c.cons)),
		pref:  make([]int8, c.nvars),
		ctx:   ctx,
	}
	for i := range w.vals {
		w.vals[i] = -1
	}
	rng := rand.New(rand.NewSource(seed))
	for i := range w.pref {
		w.pref[i] = int8(rng.Intn(2))
	}
	return w
}

func (w *worker) litVal(l nlit) int8 {
	v := w.vals[l.v]
	if v < 0 {
		return -1
	}
	if l.neg {
		return 1 - v
	}
	return v
}

// assign sets a variable and wakes its constraints. It reports false on an
// immediate contradiction with an earlier assignment.
func (w *worker) assign(v int, val int8) bool {
	if cur := w.vals[v]; cur >= 0 {
		return cur == val
	}
	w.vals[v] = val
	w.trail = append(w.trail, v)
	for _, ci := range w.c.watch[v] {
		if !w.inQ[ci] {
			w.inQ[ci] = true
			w.queue = append(w.queue, ci)
		}
	}
	return true
}

// setLit makes a literal true.
func (w *worker) setLit(l nlit, truth bool) bool {
	val := int8(1)
	if l.neg == truth {
		val = 0
	}
	return w.assign(l.v, val)
}

// propagate runs bounds propagation to a fixpoint. It reports false on
// conflict.
func (w *worker) propagate() bool {
	for len(w.queue) > 0 {
		ci := w.queue[0]
		w.queue = w.queue[1:]
		w.inQ[ci] = false
		if !w.propagateOne(ci) {
			w.queue = w.queue[:0]
			for i := range w.inQ {
				w.inQ[i] = false
			}
			return false
		}
	}
	return true
}

func (w *worker) propagateOne(ci int) bool {
	con := &w.c.cons[ci]

	enfFalse := false
	enfOpen := -1
	enfOpenCount := 0
	for i, l := range con.enf {
		switch w.litVal(l) {
		case 0:
			enfFalse = true
		case -1:
			enfOpenCount++
			enfOpen = i
		}
	}
	if enfFalse {
		return true
	}

	min := con.offset
	max := con.offset
	for _, t := range con.terms {
		switch w.litVal(t.lit) {
		case 1:
			min += t.w
			max += t.w
		case -1:
			max += t.w
		}
	}

	violated := (con.hasHi && min > con.hi) || (con.hasLo && max < con.lo)
	if enfOpenCount > 0 {
		// The constraint is not yet active. If it can no longer hold, the
		// last open enforcement literal must be false.
		if violated && enfOpenCount == 1 {
			return w.setLit(con.enf[enfOpen], false)
		}
		return true
	}
	if violated {
		return false
	}

	for _, t := range con.terms {
		if w.litVal(t.lit) != -1 {
			continue
		}
		if con.hasHi && min+t.w > con.hi {
			if !w.setLit(t.lit, false) {
				return false
			}
			max -= t.w
		} else if con.hasLo && max-t.w < con.lo {
			if !w.setLit(t.lit, true) {
				return false
			}
			min += t.w
		}
	}
	return true
}

// undo rewinds the trail to the given mark.
func (w *worker) undo(mark int) {
	for len(w.trail) > mark {
		v := w.trail[len(w.trail)-1]
		w.trail = w.trail[:len(w.trail)-1]
		w.vals[v] = -1
	}
	w.queue = w.queue[:0]
	for i := range w.inQ {
		w.inQ[i] = false
	}
}

// solve seeds the queue with every constraint and searches.
func (w *worker) solve() searchOutcome {
	for ci := range w.c.cons {
		w.inQ[ci] = true
		w.queue = append(w.queue, ci)
	}
	if !w.propagate() {
		return outcomeUnsat
	}
	return w.dfs()
}

func (w *worker) dfs() searchOutcome {
	w.nodes++
	if w.nodes%deadlineCheckInterval == 0 && w.ctx.Err() != nil {
		return outcomeAborted
	}

	v := -1
	for i, val := range w.vals {
		if val < 0 {
			v = i
			break
		}
	}
	if v < 0 {
		return outcomeSat
	}

	first := w.pref[v]
	for _, val := range [2]int8{first, 1 - first} {
		mark := len(w.trail)
		if w.assign(v, val) && w.propagate() {
			switch out := w.dfs(); out {
			case outcomeSat, outcomeAborted:
				return out
			}
		}
		w.undo(mark)
	}
	return outcomeUnsat
}
