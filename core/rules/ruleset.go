package rules

import (
	"fmt"

	"github.com/wardplan/wardplan/core/cp"
)

// Rule kinds understood by the structured grammar.
const (
	KindMaxCount      = "max_count"      // cap on a nurse's total shifts of a kind
	KindMinCount      = "min_count"      // floor on a nurse's total shifts of a kind
	KindForbidFollow  = "forbid_follow"  // shift on day d forbids a shift on day d+1
	KindRequireFollow = "require_follow" // shift on day d requires a shift on day d+1
)

// ShiftAnyWork selects any of the working shifts. Rules using it on the
// trigger side of a succession get an auxiliary condition variable, because
// an implication over a raw multi-term sum is not solver-representable.
const ShiftAnyWork = "WORK"

// Rule is one structured constraint description. Zero-valued optional fields
// mean "no filter".
type Rule struct {
	Kind      string `json:"kind"`
	Scope     string `json:"scope,omitempty"`   // all | seniors | juniors
	Shift     string `json:"shift"`             // shift name or WORK
	NextShift string `json:"next_shift,omitempty"`
	Weekday   string `json:"weekday,omitempty"` // gate on the trigger day's weekday
	Limit     int    `json:"limit,omitempty"`
}

// RuleSet is the structured form of a translated rule text.
type RuleSet struct {
	Constraints []Rule `json:"constraints"`
}

// ApplyRuleSet validates every rule against the grammar and encodes it onto
// the model. A validation error aborts with nothing applied.
func ApplyRuleSet(m *cp.Model, scope Scope, rs *RuleSet) error {
	for i, r := range rs.Constraints {
		if err := validateRule(scope, r); err != nil {
			return fmt.Errorf("constraint %d: %w", i, err)
		}
	}
	for _, r := range rs.Constraints {
		applyRule(m, scope, r)
	}
	return nil
}

func validateRule(scope Scope, r Rule) error {
	switch r.Kind {
	case KindMaxCount, KindMinCount:
		if r.Limit < 0 {
			return fmt.Errorf("negative limit %d", r.Limit)
		}
	case KindForbidFollow, KindRequireFollow:
		if !validShift(scope, r.NextShift) {
			return fmt.Errorf("unknown next_shift %q", r.NextShift)
		}
	default:
		return fmt.Errorf("unknown kind %q", r.Kind)
	}
	if !validShift(scope, r.Shift) && r.Shift != ShiftAnyWork {
		return fmt.Errorf("unknown shift %q", r.Shift)
	}
	switch r.Scope {
	case "", "all", "seniors", "juniors":
	default:
		return fmt.Errorf("unknown scope %q", r.Scope)
	}
	if r.Weekday != "" && !validWeekday(r.Weekday) {
		return fmt.Errorf("unknown weekday %q", r.Weekday)
	}
	return nil
}

func applyRule(m *cp.Model, scope Scope, r Rule) {
	for _, nurse := range scopeNurses(scope, r.Scope) {
		switch r.Kind {
		case KindMaxCount, KindMinCount:
			applyCount(m, scope, r, nurse)
		case KindForbidFollow, KindRequireFollow:
			applyFollow(m, scope, r, nurse)
		}
	}
}

func applyCount(m *cp.Model, scope Scope, r Rule, nurse string) {
	var lits []cp.Lit
	for d := 0; d < scope.NumDays(); d++ {
		if r.Weekday != "" && scope.DayOfWeek[d] != r.Weekday {
			continue
		}
		lits = append(lits, triggerLits(scope, nurse, d, r.Shift)...)
	}
	if r.Kind == KindMaxCount {
		m.Add(cp.Sum(lits...).AtMost(r.Limit))
	} else {
		m.Add(cp.Sum(lits...).AtLeast(r.Limit))
	}
}

func applyFollow(m *cp.Model, scope Scope, r Rule, nurse string) {
	for d := 0; d < scope.NumDays()-1; d++ {
		if r.Weekday != "" && scope.DayOfWeek[d] != r.Weekday {
			continue
		}
		next, _ := scope.Lookup(nurse, d+1, r.NextShift)
		if r.Kind == KindForbidFollow {
			next = next.Not()
		}
		m.AddImplication(triggerLit(m, scope, r, nurse, d), next)
	}
}

// triggerLit returns the literal that is true when the rule's trigger holds
// on day d. A single shift is its own literal; WORK introduces an auxiliary
// condition constrained in both directions.
func triggerLit(m *cp.Model, scope Scope, r Rule, nurse string, d int) cp.Lit {
	if r.Shift != ShiftAnyWork {
		l, _ := scope.Lookup(nurse, d, r.Shift)
		return l
	}
	working := cp.Sum(triggerLits(scope, nurse, d, ShiftAnyWork)...)
	cond := m.NewBoolVar(fmt.Sprintf("worked_%s_%d", nurse, d)).Lit()
	m.Add(working.AtLeast(1)).OnlyEnforceIf(cond)
	m.Add(working.Equal(0)).OnlyEnforceIf(cond.Not())
	return cond
}

func triggerLits(scope Scope, nurse string, d int, shift string) []cp.Lit {
	if shift != ShiftAnyWork {
		l, _ := scope.Lookup(nurse, d, shift)
		return []cp.Lit{l}
	}
	lits := make([]cp.Lit, 0, 3)
	for _, s := range []string{"AM", "PM", "Night"} {
		l, _ := scope.Lookup(nurse, d, s)
		lits = append(lits, l)
	}
	return lits
}

func scopeNurses(scope Scope, who string) []string {
	switch who {
	case "seniors":
		return scope.Seniors
	case "juniors":
		return scope.Juniors
	default:
		return scope.Nurses
	}
}

func validShift(scope Scope, name string) bool {
	for _, s := range scope.ShiftNames {
		if s == name {
			return true
		}
	}
	return false
}

func validWeekday(name string) bool {
	switch name {
	case "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday":
		return true
	}
	return false
}
