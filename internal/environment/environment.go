// Package environment holds the two name-keyed maps spec.md §4.4 describes:
// variables and callable functions. Lookups never error — an unset variable
// resolves to the empty string Value, mirroring the teacher's own
// graceful-fallback symbol table lookups in internal/interp.
package environment

import "github.com/wikimedia/mediawiki-extensions-AbuseFilter/internal/value"

// Func is a native callable bound into an Environment. args are the already
// evaluated argument Values, in source order. The evaluator never invokes a
// Func from inside a short-circuited branch (§4.5) — the untaken side of
// `&`/`|` and a ternary is never visited, so a Func only ever runs when its
// result actually matters.
type Func func(args []value.Value) (value.Value, error)

// Environment binds names to Values and Funcs for one evaluation session.
type Environment struct {
	vars  map[string]value.Value
	funcs map[string]Func
}

// New returns an Environment pre-populated with the two boolean constants
// and the three cast functions spec.md §4.4 names as always-present.
func New() *Environment {
	e := &Environment{
		vars:  make(map[string]value.Value),
		funcs: make(map[string]Func),
	}
	e.registerDefaults()
	return e
}

func (e *Environment) registerDefaults() {
	e.vars["true"] = value.Integer(1)
	e.vars["false"] = value.Integer(0)

	e.funcs["int"] = castFunc(value.CastInt)
	e.funcs["string"] = castFunc(value.CastString)
	e.funcs["float"] = castFunc(value.CastFloat)
}

func castFunc(cast func(value.Value) value.Value) Func {
	return func(args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.Empty, nil
		}
		return cast(args[0]), nil
	}
}

// AddVariable binds name to v, overwriting any prior binding (including the
// pre-registered true/false constants — callers may legitimately shadow
// them).
func (e *Environment) AddVariable(name string, v value.Value) {
	e.vars[name] = v
}

// AddFunction binds name to fn, overwriting any prior binding.
func (e *Environment) AddFunction(name string, fn Func) {
	e.funcs[name] = fn
}

// GetVariable looks up name, returning value.Empty and false if unbound.
func (e *Environment) GetVariable(name string) (value.Value, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// LookupVariable returns the bound Value, or value.Empty per §4.4's
// fallback-to-empty-string rule, for use directly inside expression
// evaluation where an unbound name is not itself an error.
func (e *Environment) LookupVariable(name string) value.Value {
	if v, ok := e.vars[name]; ok {
		return v
	}
	return value.Empty
}

// GetFunction looks up name, returning (nil, false) if unbound.
func (e *Environment) GetFunction(name string) (Func, bool) {
	fn, ok := e.funcs[name]
	return fn, ok
}

// ClearVariables removes all variable bindings, then restores true/false.
func (e *Environment) ClearVariables() {
	e.vars = make(map[string]value.Value)
	e.vars["true"] = value.Integer(1)
	e.vars["false"] = value.Integer(0)
}

// ClearFunctions removes all function bindings, then restores int/string/float.
func (e *Environment) ClearFunctions() {
	e.funcs = make(map[string]Func)
	e.funcs["int"] = castFunc(value.CastInt)
	e.funcs["string"] = castFunc(value.CastString)
	e.funcs["float"] = castFunc(value.CastFloat)
}

// Clear removes all bindings and re-registers the defaults.
func (e *Environment) Clear() {
	e.vars = make(map[string]value.Value)
	e.funcs = make(map[string]Func)
	e.registerDefaults()
}
