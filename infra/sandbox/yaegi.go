// Package sandbox executes vetted constraint-extension fragments in an
// isolated interpreter. The interpreter sees only the documented rule
// vocabulary: no standard library, no filesystem, no network, and no way to
// reach the host model beyond adding constraints and auxiliary variables.
package sandbox

import (
	"fmt"
	"reflect"

	"github.com/traefik/yaegi/interp"

	"github.com/wardplan/wardplan/core/cp"
	"github.com/wardplan/wardplan/core/logger"
	"github.com/wardplan/wardplan/core/rules"
)

// modelAPI is the narrow model surface a fragment can touch: it may add
// constraints and allocate auxiliary booleans, never remove or reassign
// anything the builder allocated.
type modelAPI struct {
	m *cp.Model
}

func (a *modelAPI) Add(c *cp.Constraint) *cp.Constraint { return a.m.Add(c) }

func (a *modelAPI) AddImplication(x, y cp.Lit) { a.m.AddImplication(x, y) }

func (a *modelAPI) NewBoolVar(name string) cp.Lit {
	return a.m.NewBoolVar("aux_" + name).Lit()
}

// YaegiExecutor implements rules.Executor with a fresh yaegi interpreter per
// fragment.
type YaegiExecutor struct {
	log logger.Logger
}

// New returns an executor. log may be nil.
func New(log logger.Logger) *YaegiExecutor {
	if log == nil {
		log = nopLogger{}
	}
	return &YaegiExecutor{log: log}
}

// Execute evaluates the fragment against the scope. The caller must have
// vetted the fragment first; Execute still contains any failure, converting
// interpreter errors and panics into RuleExecutionError.
func (x *YaegiExecutor) Execute(m *cp.Model, scope rules.Scope, fragment string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &rules.RuleExecutionError{Fragment: fragment, Cause: fmt.Errorf("%v", r)}
		}
	}()

	i := interp.New(interp.Options{})
	if uerr := i.Use(vocabulary(m, scope)); uerr != nil {
		return &rules.RuleExecutionError{Fragment: fragment, Cause: uerr}
	}
	if _, eerr := i.Eval(rules.WrapFragment(fragment)); eerr != nil {
		return &rules.RuleExecutionError{Fragment: fragment, Cause: eerr}
	}
	v, eerr := i.Eval("Apply")
	if eerr != nil {
		return &rules.RuleExecutionError{Fragment: fragment, Cause: eerr}
	}
	apply, ok := v.Interface().(func())
	if !ok {
		return &rules.RuleExecutionError{Fragment: fragment, Cause: fmt.Errorf("entry point has unexpected type %T", v.Interface())}
	}
	x.log.Debugf("applying custom rule fragment (%d constraints before)", m.NumConstraints())
	apply()
	x.log.Debugf("custom rule fragment applied (%d constraints after)", m.NumConstraints())
	return nil
}

// vocabulary builds the interpreter's only importable package.
func vocabulary(m *cp.Model, scope rules.Scope) interp.Exports {
	work := func(nurse string, day int, shift string) cp.Lit {
		l, ok := scope.Lookup(nurse, day, shift)
		if !ok {
			panic(fmt.Sprintf("no variable for (%s, %d, %s)", nurse, day, shift))
		}
		return l
	}
	return interp.Exports{
		"ext/ext": {
			"M":          reflect.ValueOf(&modelAPI{m: m}),
			"Work":       reflect.ValueOf(work),
			"Sum":        reflect.ValueOf(cp.Sum),
			"Nurses":     reflect.ValueOf(scope.Nurses),
			"Seniors":    reflect.ValueOf(scope.Seniors),
			"Juniors":    reflect.ValueOf(scope.Juniors),
			"NumDays":    reflect.ValueOf(scope.NumDays()),
			"DayOfWeek":  reflect.ValueOf(scope.DayOfWeek),
			"ShiftNames": reflect.ValueOf(scope.ShiftNames),
			"Lit":        reflect.ValueOf((*cp.Lit)(nil)),
		},
	}
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}
