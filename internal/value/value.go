// Package value implements the dynamically typed variant datum that flows
// through the lexer, parser, and evaluator: a tagged union of string,
// integer, and float, with the coercion rules spec.md §4.1 assigns to it.
//
// Following the Design Notes' instruction to avoid pointer-to-base-class
// polymorphism, Value is a plain struct with a Kind tag rather than an
// interface with three concrete implementations (contrast the teacher's
// interp.Value interface, which is the shape a statically-typed AST walker
// wants but a variant datum does not).
package value

import (
	"math"
	"strconv"

	"github.com/spf13/cast"
)

// Kind tags which arm of the variant is populated.
type Kind uint8

const (
	KindString Kind = iota
	KindInteger
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	default:
		return "unknown"
	}
}

// Value is always exactly one arm; there is no null/unset state exposed to
// callers (an absent environment lookup returns String("")).
type Value struct {
	kind Kind
	str  string
	i    int64
	f    float64
}

// String constructs a String-tagged Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Integer constructs an Integer-tagged Value.
func Integer(i int64) Value { return Value{kind: KindInteger, i: i} }

// Float constructs a Float-tagged Value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Bool constructs the Integer 0/1 encoding of a boolean (§4.1).
func Bool(b bool) Value {
	if b {
		return Integer(1)
	}
	return Integer(0)
}

// Empty is the Value unknown-variable lookups resolve to.
var Empty = String("")

// Kind reports which arm is populated.
func (v Value) Kind() Kind { return v.kind }

// FromLexeme builds a Value the way the language's literal-construction rule
// does: attempt an integer parse, then a float parse, falling back to a
// plain string. Used when a raw piece of source or host-supplied text needs
// to become a Value without going through the lexer's own base-aware number
// scanning (e.g. a function result, or a host variable supplied as text).
func FromLexeme(s string) Value {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Integer(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Float(f)
	}
	return String(s)
}

// ToString converts to the string representation (§4.1).
func (v Value) ToString() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	default:
		return ""
	}
}

// ToInt converts to an integer: truncation for Float, decimal parse
// (0 on failure, no float fallback) for String (§4.1).
func (v Value) ToInt() int64 {
	switch v.kind {
	case KindInteger:
		return v.i
	case KindFloat:
		return int64(math.Trunc(v.f))
	case KindString:
		i, err := strconv.ParseInt(v.str, 10, 64)
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}

// ToFloat converts to a float: widening for Integer, decimal parse
// (0.0 on failure) for String (§4.1).
func (v Value) ToFloat() float64 {
	switch v.kind {
	case KindFloat:
		return v.f
	case KindInteger:
		return float64(v.i)
	case KindString:
		f, err := strconv.ParseFloat(v.str, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// ToBool is equivalent to ToInt() != 0 (§4.1).
func (v Value) ToBool() bool {
	return v.ToInt() != 0
}

// coerceNumeric resolves a Value to its numeric arm for arithmetic type
// promotion (§4.1's "after string-to-numeric coercion"): a String operand is
// reinterpreted via the same int-then-float attempt as FromLexeme, distinct
// from the plainer ToInt/ToFloat conversion rules used for direct casts.
func coerceNumeric(v Value) Value {
	if v.kind != KindString {
		return v
	}
	return FromLexeme(v.str)
}

// Add implements `+`: string concatenation if either operand is a String
// (the one type-poisoning rule), otherwise numeric addition (§4.1).
func Add(a, b Value) Value {
	if a.kind == KindString || b.kind == KindString {
		return String(a.ToString() + b.ToString())
	}
	return arith(a, b, addInt, addFloat)
}

// Sub implements binary `-`.
func Sub(a, b Value) Value { return arith(a, b, subInt, subFloat) }

// Mul implements `*`.
func Mul(a, b Value) Value { return arith(a, b, mulInt, mulFloat) }

// Div implements `/`. Integer division by zero returns an arithmetic error
// (see IsArithmeticError); float division by zero yields +/-Inf per
// IEEE-754 and is never an error.
func Div(a, b Value) (Value, error) {
	ca, cb := coerceNumeric(a), coerceNumeric(b)
	if ca.kind == KindFloat || cb.kind == KindFloat {
		return Float(ca.ToFloat() / cb.ToFloat()), nil
	}
	if cb.i == 0 {
		return Value{}, errArithmetic("division by zero")
	}
	return Integer(ca.i / cb.i), nil
}

// Mod implements `%`. Integer modulo by zero is an ArithmeticError; float
// modulo by zero yields NaN.
func Mod(a, b Value) (Value, error) {
	ca, cb := coerceNumeric(a), coerceNumeric(b)
	if ca.kind == KindFloat || cb.kind == KindFloat {
		return Float(math.Mod(ca.ToFloat(), cb.ToFloat())), nil
	}
	if cb.i == 0 {
		return Value{}, errArithmetic("modulo by zero")
	}
	return Integer(ca.i % cb.i), nil
}

// Pow implements `**`: always computed in Float space, always returns Float.
func Pow(a, b Value) Value {
	return Float(math.Pow(a.ToFloat(), b.ToFloat()))
}

// Neg implements unary `-`.
func Neg(a Value) Value {
	c := coerceNumeric(a)
	if c.kind == KindFloat {
		return Float(-c.f)
	}
	return Integer(-c.i)
}

// Pos implements unary `+`: identity.
func Pos(a Value) Value { return a }

const (
	maxInt64 = math.MaxInt64
	minInt64 = math.MinInt64
)

func addInt(a, b int64) (int64, bool) {
	r := a + b
	if (b > 0 && r < a) || (b < 0 && r > a) {
		return 0, false
	}
	return r, true
}

func subInt(a, b int64) (int64, bool) {
	r := a - b
	if (b < 0 && r < a) || (b > 0 && r > a) {
		return 0, false
	}
	return r, true
}

func mulInt(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == minInt64) || (b == -1 && a == minInt64) {
		return 0, false
	}
	r := a * b
	if r/b != a {
		return 0, false
	}
	return r, true
}

func addFloat(a, b float64) float64 { return a + b }
func subFloat(a, b float64) float64 { return a - b }
func mulFloat(a, b float64) float64 { return a * b }

// arith applies an arithmetic operator with the promote-to-float-on-overflow
// policy (an Open Question in spec.md §9, resolved in DESIGN.md): integer
// results that would overflow int64 are recomputed in float64 instead of
// wrapping or raising.
func arith(a, b Value, intOp func(int64, int64) (int64, bool), floatOp func(float64, float64) float64) Value {
	ca, cb := coerceNumeric(a), coerceNumeric(b)
	if ca.kind == KindFloat || cb.kind == KindFloat {
		return Float(floatOp(ca.ToFloat(), cb.ToFloat()))
	}
	if r, ok := intOp(ca.i, cb.i); ok {
		return Integer(r)
	}
	return Float(floatOp(float64(ca.i), float64(cb.i)))
}

// Eq implements type-blind `==`: lexicographic if both operands are String,
// otherwise compared in float space (§4.1).
func Eq(a, b Value) bool {
	if a.kind == KindString && b.kind == KindString {
		return a.str == b.str
	}
	return a.ToFloat() == b.ToFloat()
}

// Ne implements type-blind `!=`.
func Ne(a, b Value) bool { return !Eq(a, b) }

// StrictEq implements type-sensitive `===`: false whenever the tags differ,
// otherwise identical to Eq (§4.1).
func StrictEq(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	return Eq(a, b)
}

// StrictNe implements type-sensitive `!==`.
func StrictNe(a, b Value) bool { return !StrictEq(a, b) }

// Less implements `<`: always compared in float space (§4.1).
func Less(a, b Value) bool { return a.ToFloat() < b.ToFloat() }

// LessEq implements `<=`.
func LessEq(a, b Value) bool { return a.ToFloat() <= b.ToFloat() }

// Greater implements `>`.
func Greater(a, b Value) bool { return a.ToFloat() > b.ToFloat() }

// GreaterEq implements `>=`.
func GreaterEq(a, b Value) bool { return a.ToFloat() >= b.ToFloat() }

// arithmeticError is local to this package to keep the value<->error
// dependency one-directional and avoid an import cycle with internal/errors
// (which itself never needs to know about Value).
type arithmeticError struct{ msg string }

func (e *arithmeticError) Error() string { return e.msg }

func errArithmetic(msg string) error { return &arithmeticError{msg: msg} }

// IsArithmeticError reports whether err was produced by Div/Mod in this
// package, letting callers translate it into the shared errors.ArithmeticError
// taxonomy tag without this package importing internal/errors.
func IsArithmeticError(err error) bool {
	_, ok := err.(*arithmeticError)
	return ok
}

// CastInt backs the `int()` builtin cast (§4.4). For String operands it
// tries spf13/cast's broader numeric-string vocabulary (0x/0o/0b base
// prefixes) before falling back to ToInt's stricter decimal-only
// parse, so `int("0x2A")` behaves usefully instead of always yielding 0.
func CastInt(v Value) Value {
	if v.kind != KindString {
		return Integer(v.ToInt())
	}
	if i, err := cast.ToInt64E(v.str); err == nil {
		return Integer(i)
	}
	return Integer(v.ToInt())
}

// CastFloat backs the `float()` builtin cast.
func CastFloat(v Value) Value {
	if v.kind != KindString {
		return Float(v.ToFloat())
	}
	if f, err := cast.ToFloat64E(v.str); err == nil {
		return Float(f)
	}
	return Float(v.ToFloat())
}

// CastString backs the `string()` builtin cast.
func CastString(v Value) Value {
	return String(v.ToString())
}
