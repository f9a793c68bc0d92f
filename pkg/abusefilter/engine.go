// Package abusefilter is the embeddable façade spec.md §6.1 specifies over
// the internal lexer/parser/evaluator pipeline: a single Evaluator type an
// embedding host constructs once, configures with variables and functions,
// and repeatedly calls Evaluate against. Modeled on the teacher's
// pkg/dwscript Engine — New(opts...), RegisterFunction/AddVariable, Eval —
// simplified from a full scripting engine down to one expression at a time.
package abusefilter

import (
	"github.com/wikimedia/mediawiki-extensions-AbuseFilter/internal/builtins"
	"github.com/wikimedia/mediawiki-extensions-AbuseFilter/internal/environment"
	"github.com/wikimedia/mediawiki-extensions-AbuseFilter/internal/evaluator"
	"github.com/wikimedia/mediawiki-extensions-AbuseFilter/internal/value"
)

// Evaluator is the embeddable entry point. The zero value is not usable;
// construct one with New.
type Evaluator struct {
	env  *environment.Environment
	eval *evaluator.Evaluator
}

// Option configures a new Evaluator.
type Option func(*Evaluator)

// WithBuiltins registers the domain string/confusable functions from
// internal/builtins (ccnorm, rmspecials, specialratio, count, length,
// lcase, ...) in addition to the always-present true/false/int/string/float
// bindings. Spec.md §1 treats these as optional external collaborators, so
// New omits them unless this option is given.
func WithBuiltins() Option {
	return func(e *Evaluator) {
		builtins.Register(e.env)
	}
}

// New constructs an Evaluator with true/false and int/string/float
// pre-registered (§4.4), applying opts in order.
func New(opts ...Option) *Evaluator {
	env := environment.New()
	e := &Evaluator{env: env, eval: evaluator.New(env)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AddVariable binds name to v for all subsequent Evaluate calls.
func (e *Evaluator) AddVariable(name string, v value.Value) {
	e.env.AddVariable(name, v)
}

// AddFunction binds name to fn for all subsequent Evaluate calls.
func (e *Evaluator) AddFunction(name string, fn environment.Func) {
	e.env.AddFunction(name, fn)
}

// Evaluate parses (using the internal parse cache) and evaluates expr,
// returning its result Value.
func (e *Evaluator) Evaluate(expr string) (value.Value, error) {
	return e.eval.Evaluate(expr)
}

// EvaluateAsBool is a convenience wrapper for the common case of using an
// expression's truthiness as a filter match decision.
func (e *Evaluator) EvaluateAsBool(expr string) (bool, error) {
	v, err := e.eval.Evaluate(expr)
	if err != nil {
		return false, err
	}
	return v.ToBool(), nil
}

// Clear resets variables, functions, and the parse cache to a fresh state
// (the defaults only — builtins registered via WithBuiltins are not
// re-applied; construct a new Evaluator for that).
func (e *Evaluator) Clear() {
	e.env.Clear()
	e.eval.ClearCache()
}

// ClearVariables removes all variable bindings, restoring true/false.
func (e *Evaluator) ClearVariables() {
	e.env.ClearVariables()
}

// ClearFunctions removes all function bindings, restoring int/string/float.
func (e *Evaluator) ClearFunctions() {
	e.env.ClearFunctions()
}
