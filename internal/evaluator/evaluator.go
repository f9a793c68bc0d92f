// Package evaluator walks an ast.Node tree against an environment.Environment
// and produces a value.Value, implementing spec.md §4.5. Short-circuit
// branches (the untaken side of `&`/`|`, and the untaken side of a ternary)
// are never visited at all rather than walked in a "forced skip" mode —
// afeval.cpp's forceResult flag exists because its C++ evaluator interleaves
// parsing and evaluation in a single pass and cannot cheaply omit a subtree
// it hasn't fully separated from the rest of the expression yet. This
// implementation parses the whole tree up front, so the equivalent, and
// strictly stronger, way to guarantee the same contract (no function
// invocations, no arithmetic, no errors from a skipped branch) is simply to
// never recurse into it.
package evaluator

import (
	"github.com/wikimedia/mediawiki-extensions-AbuseFilter/internal/ast"
	"github.com/wikimedia/mediawiki-extensions-AbuseFilter/internal/environment"
	"github.com/wikimedia/mediawiki-extensions-AbuseFilter/internal/errors"
	"github.com/wikimedia/mediawiki-extensions-AbuseFilter/internal/value"
)

// Evaluator pairs an Environment with the expression parse cache (§4.5's
// size-capped cache, afeval.cpp's tokenCache).
type Evaluator struct {
	Env   *environment.Environment
	cache *parseCache
}

// New returns an Evaluator over env, with a fresh empty parse cache.
func New(env *environment.Environment) *Evaluator {
	return &Evaluator{Env: env, cache: newParseCache()}
}

// Evaluate parses (or retrieves from cache) expr and evaluates it to
// completion.
func (ev *Evaluator) Evaluate(expr string) (value.Value, error) {
	node, err := ev.cache.parse(expr)
	if err != nil {
		return value.Value{}, err
	}
	return ev.eval(node)
}

// ClearCache drops all cached parse trees.
func (ev *Evaluator) ClearCache() {
	ev.cache.clear()
}

var timeUnitSeconds = map[ast.TimeUnit]int64{
	ast.UnitSeconds: 1,
	ast.UnitMinutes: 60,
	ast.UnitHours:   3600,
	ast.UnitDays:    86400,
	ast.UnitWeeks:   604800,
	ast.UnitYears:   31536000,
}

func (ev *Evaluator) eval(node ast.Node) (value.Value, error) {
	switch n := node.(type) {
	case *ast.Literal:
		return n.Value, nil

	case *ast.Variable:
		return ev.Env.LookupVariable(n.Name), nil

	case *ast.Call:
		return ev.evalCall(n)

	case *ast.Unary:
		return ev.evalUnary(n)

	case *ast.Binary:
		return ev.evalBinary(n)

	case *ast.Ternary:
		return ev.evalTernary(n)

	case *ast.Keyword:
		return ev.evalKeyword(n)

	case *ast.TimeUnitExpr:
		child, err := ev.eval(n.Child)
		if err != nil {
			return value.Value{}, err
		}
		secs := timeUnitSeconds[n.Unit]
		return value.Mul(child, value.Integer(secs)), nil

	default:
		return value.Value{}, errors.Arithmetic("unknown AST node")
	}
}

func (ev *Evaluator) evalCall(n *ast.Call) (value.Value, error) {
	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := ev.eval(a)
		if err != nil {
			return value.Value{}, err
		}
		args[i] = v
	}

	fn, ok := ev.Env.GetFunction(n.Name)
	if !ok {
		// Unknown function calls degrade gracefully to the empty string
		// rather than aborting evaluation (§9 Open Question).
		return value.Empty, nil
	}

	v, err := fn(args)
	if err != nil {
		if ee, ok := err.(*errors.EvalError); ok {
			if ee.Tag == errors.TagFunction && ee.FuncName == "" {
				ee.FuncName = n.Name
			}
			return value.Value{}, ee
		}
		return value.Value{}, errors.Function(n.Name, err.Error())
	}
	return v, nil
}

func (ev *Evaluator) evalUnary(n *ast.Unary) (value.Value, error) {
	child, err := ev.eval(n.Child)
	if err != nil {
		return value.Value{}, err
	}
	switch n.Op {
	case ast.UnaryNot:
		return value.Bool(!child.ToBool()), nil
	case ast.UnaryPlus:
		return value.Pos(child), nil
	case ast.UnaryMinus:
		return value.Neg(child), nil
	default:
		return value.Value{}, errors.Arithmetic("unknown unary operator")
	}
}

func (ev *Evaluator) evalBinary(n *ast.Binary) (value.Value, error) {
	switch n.Op {
	case ast.BinAnd:
		return ev.evalShortCircuit(n, false)
	case ast.BinOr:
		return ev.evalShortCircuit(n, true)
	case ast.BinXor:
		l, err := ev.eval(n.Left)
		if err != nil {
			return value.Value{}, err
		}
		r, err := ev.eval(n.Right)
		if err != nil {
			return value.Value{}, err
		}
		return value.Bool(l.ToBool() != r.ToBool()), nil
	}

	l, err := ev.eval(n.Left)
	if err != nil {
		return value.Value{}, err
	}
	r, err := ev.eval(n.Right)
	if err != nil {
		return value.Value{}, err
	}

	switch n.Op {
	case ast.BinAdd:
		return value.Add(l, r), nil
	case ast.BinSub:
		return value.Sub(l, r), nil
	case ast.BinMul:
		return value.Mul(l, r), nil
	case ast.BinDiv:
		res, err := value.Div(l, r)
		if err != nil {
			return value.Value{}, errors.Arithmetic(err.Error())
		}
		return res, nil
	case ast.BinMod:
		res, err := value.Mod(l, r)
		if err != nil {
			return value.Value{}, errors.Arithmetic(err.Error())
		}
		return res, nil
	case ast.BinPow:
		return value.Pow(l, r), nil
	case ast.BinEq:
		return value.Bool(value.Eq(l, r)), nil
	case ast.BinNe:
		return value.Bool(value.Ne(l, r)), nil
	case ast.BinStrictEq:
		return value.Bool(value.StrictEq(l, r)), nil
	case ast.BinStrictNe:
		return value.Bool(value.StrictNe(l, r)), nil
	case ast.BinLt:
		return value.Bool(value.Less(l, r)), nil
	case ast.BinLe:
		return value.Bool(value.LessEq(l, r)), nil
	case ast.BinGt:
		return value.Bool(value.Greater(l, r)), nil
	case ast.BinGe:
		return value.Bool(value.GreaterEq(l, r)), nil
	default:
		return value.Value{}, errors.Arithmetic("unknown binary operator")
	}
}

// evalShortCircuit implements `&` (isOr=false) and `|` (isOr=true): once the
// left operand alone decides the result, the right operand is never
// evaluated (§4.5's hard contract: a skipped branch must not invoke
// functions, perform arithmetic, or raise errors — satisfied here simply by
// never visiting it).
func (ev *Evaluator) evalShortCircuit(n *ast.Binary, isOr bool) (value.Value, error) {
	l, err := ev.eval(n.Left)
	if err != nil {
		return value.Value{}, err
	}
	if l.ToBool() == isOr {
		return value.Bool(isOr), nil
	}
	r, err := ev.eval(n.Right)
	if err != nil {
		return value.Value{}, err
	}
	return value.Bool(r.ToBool()), nil
}

func (ev *Evaluator) evalTernary(n *ast.Ternary) (value.Value, error) {
	cond, err := ev.eval(n.Cond)
	if err != nil {
		return value.Value{}, err
	}
	if cond.ToBool() {
		return ev.eval(n.Then)
	}
	return ev.eval(n.Else)
}

func (ev *Evaluator) evalKeyword(n *ast.Keyword) (value.Value, error) {
	l, err := ev.eval(n.Left)
	if err != nil {
		return value.Value{}, err
	}
	r, err := ev.eval(n.Right)
	if err != nil {
		return value.Value{}, err
	}

	switch n.Op {
	case ast.KeywordIn:
		// "needle in haystack": Left is the needle, Right the haystack.
		return value.Bool(containsAny(r.ToString(), l.ToString())), nil
	case ast.KeywordContains:
		// "haystack contains needle": Left is the haystack, Right the needle.
		return value.Bool(containsAny(l.ToString(), r.ToString())), nil
	case ast.KeywordLike:
		return value.Bool(globMatch(r.ToString(), l.ToString())), nil
	case ast.KeywordMatches:
		return value.Bool(matchesWildcard(r.ToString(), l.ToString())), nil
	case ast.KeywordRLike, ast.KeywordRegex:
		pattern, insensitive := splitRegexLiteral(r.ToString())
		re, err := compileRegex(pattern, insensitive)
		if err != nil {
			return value.Value{}, err
		}
		matched, err := regexMatch(re, l.ToString())
		if err != nil {
			return value.Value{}, err
		}
		return value.Bool(matched), nil
	default:
		return value.Value{}, errors.Arithmetic("unknown keyword operator")
	}
}
