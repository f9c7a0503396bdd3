package roster

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wardplan/wardplan/core/cp"
	"github.com/wardplan/wardplan/core/logger"
	"github.com/wardplan/wardplan/core/metrics"
	"github.com/wardplan/wardplan/core/rules"
)

// noFeasibleMsg is the caller-facing message for a solve without a usable
// assignment.
const noFeasibleMsg = "No feasible solution found."

// Result is the outcome of one scheduling request: a status and, when the
// status carries a solution, the full roster listing.
type Result struct {
	RequestID string
	Status    cp.Status
	Entries   []Entry
}

// Response converts the result to the wire shape.
func (r *Result) Response() Response {
	if !r.Status.HasSolution() {
		return Response{Error: noFeasibleMsg}
	}
	return Response{Schedule: r.Entries}
}

// Engine runs the full pipeline for one request: calendar expansion, model
// building, custom-rule extension, solving, projection. Engines are safe for
// concurrent use; every request gets its own model and variable index.
type Engine struct {
	translator        rules.Translator
	executor          rules.Executor
	solver            cp.Solver
	params            cp.SolveParams
	translatorTimeout time.Duration
	sink              metrics.SolveSink
	log               logger.Logger
}

// NewEngine wires an engine. translator and executor may be nil when custom
// rules are not served; sink and log may be nil.
func NewEngine(tr rules.Translator, ex rules.Executor, solver cp.Solver, params cp.SolveParams, sink metrics.SolveSink, log logger.Logger) *Engine {
	if sink == nil {
		sink = metrics.NopSink{}
	}
	if log == nil {
		log = nopLogger{}
	}
	return &Engine{
		translator:        tr,
		executor:          ex,
		solver:            solver,
		params:            params,
		translatorTimeout: 30 * time.Second,
		sink:              sink,
		log:               log,
	}
}

// SetTranslatorTimeout bounds the translator call for requests with rules.
func (e *Engine) SetTranslatorTimeout(d time.Duration) {
	if d > 0 {
		e.translatorTimeout = d
	}
}

// Schedule builds and solves the roster for one request. Errors cover the
// failure taxonomy up to and including rule application; a solve that ends
// without a usable assignment is not an error, it is a Result whose status
// says so.
func (e *Engine) Schedule(ctx context.Context, req Request) (*Result, error) {
	id := uuid.NewString()
	start := time.Now()

	days, err := ExpandCalendar(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	model := cp.NewModel()
	builder := NewBuilder(model, req.SeniorIDs, req.JuniorIDs, days, e.log)
	ix := builder.AllocateVariables()
	builder.ApplyLeaveDeclarations(req.MCPreferences)
	builder.ApplyCoreConstraints(req.Params())

	custom := strings.TrimSpace(req.RulesText) != ""
	if custom {
		if err := e.applyCustomRules(ctx, model, ix, req.RulesText, days); err != nil {
			return nil, err
		}
	}

	model.Freeze()
	e.log.Infof("request %s: solving %d vars, %d constraints", id, model.NumVars(), model.NumConstraints())

	res, err := e.solver.Solve(ctx, model, e.params)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}

	out := &Result{RequestID: id, Status: res.Status}
	if res.Status.HasSolution() {
		out.Entries = Project(ix, res.Solution)
	}
	e.record(id, req, days, model, res.Status, custom, time.Since(start))
	return out, nil
}

func (e *Engine) applyCustomRules(ctx context.Context, model *cp.Model, ix *VarIndex, rulesText string, days []Day) error {
	if e.translator == nil {
		return &rules.TranslationError{Cause: fmt.Errorf("no rule translator configured")}
	}
	tctx, cancel := context.WithTimeout(ctx, e.translatorTimeout)
	defer cancel()

	dayCtx := make([]rules.DayContext, len(days))
	for i, d := range days {
		dayCtx[i] = rules.DayContext{Index: d.Index, Date: d.Date, Weekday: d.Weekday}
	}
	tr, err := e.translator.Translate(tctx, rulesText, dayCtx)
	if err != nil {
		return &rules.TranslationError{Cause: err}
	}

	scope := e.scope(ix)
	switch {
	case tr.Rules != nil:
		if err := rules.ApplyRuleSet(model, scope, tr.Rules); err != nil {
			return &rules.TranslationError{Cause: err}
		}
	case tr.Fragment != "":
		fragment := rules.NormalizeFragment(tr.Fragment)
		if err := rules.VetFragment(fragment); err != nil {
			return err
		}
		if e.executor == nil {
			return &rules.TranslationError{Cause: fmt.Errorf("no fragment executor configured")}
		}
		if err := e.executor.Execute(model, scope, fragment); err != nil {
			return err
		}
	default:
		return &rules.TranslationError{Cause: fmt.Errorf("translator returned neither rules nor fragment")}
	}
	return nil
}

// scope exposes the sandbox vocabulary over the request's variable index.
func (e *Engine) scope(ix *VarIndex) rules.Scope {
	weekdays := make([]string, len(ix.days))
	for i, d := range ix.days {
		weekdays[i] = d.Weekday
	}
	return rules.Scope{
		Nurses:     ix.Nurses(),
		Seniors:    ix.Seniors(),
		Juniors:    ix.Juniors(),
		DayOfWeek:  weekdays,
		ShiftNames: ShiftNames(),
		Lookup: func(nurse string, day int, shift string) (cp.Lit, bool) {
			v, ok := ix.Lookup(nurse, day, Shift(shift))
			if !ok {
				return cp.Lit{}, false
			}
			return v.Lit(), true
		},
	}
}

func (e *Engine) record(id string, req Request, days []Day, model *cp.Model, status cp.Status, custom bool, dur time.Duration) {
	ev := metrics.SolveEvent{
		RequestID:   id,
		Status:      status.String(),
		Duration:    dur,
		Nurses:      len(req.SeniorIDs) + len(req.JuniorIDs),
		Days:        len(days),
		Variables:   model.NumVars(),
		Constraints: model.NumConstraints(),
		CustomRules: custom,
		Time:        time.Now(),
	}
	if err := e.sink.RecordSolve(ev); err != nil {
		e.log.Warnf("record solve event: %v", err)
	}
	e.log.Infof("request %s: %s in %s", id, status, dur)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}
