// Package builtins implements the string/domain functions spec.md §1 treats
// as optional external collaborators (registered via the evaluator's
// Environment rather than baked into the grammar). Semantics are ported
// directly from the reference implementation's affunctions.cpp
// (af_ccnorm, af_norm, af_rmdoubles, af_rmspecials, af_specialratio,
// af_count, af_length, af_lcase), generalized from byte-indexed C++ strings
// to Go's rune-based Unicode handling throughout.
package builtins

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/wikimedia/mediawiki-extensions-AbuseFilter/internal/confusable"
	"github.com/wikimedia/mediawiki-extensions-AbuseFilter/internal/environment"
	"github.com/wikimedia/mediawiki-extensions-AbuseFilter/internal/errors"
	"github.com/wikimedia/mediawiki-extensions-AbuseFilter/internal/value"
)

// Register binds every builtin in this package into env, keyed by the
// names affunctions.cpp exposes to the filter language.
func Register(env *environment.Environment) {
	env.AddFunction("ccnorm", fn1(ccnorm))
	env.AddFunction("norm", fn1(norm))
	env.AddFunction("rmdoubles", fn1(rmdoubles))
	env.AddFunction("rmspecials", fn1(rmspecials))
	env.AddFunction("specialratio", fnFloat1(specialratio))
	env.AddFunction("count", count)
	env.AddFunction("length", fnInt1(length))
	env.AddFunction("strlen", fnInt1(length)) // strlen is length's historical alias
	env.AddFunction("lcase", fn1(lcase))
	env.AddFunction("lower", fn1(lcase))
	env.AddFunction("ucase", fn1(ucase))
	env.AddFunction("upper", fn1(ucase))
}

func fn1(f func(string) string) environment.Func {
	return func(args []value.Value) (value.Value, error) {
		s, err := arg1(args)
		if err != nil {
			return value.Value{}, err
		}
		return value.String(f(s)), nil
	}
}

func fnInt1(f func(string) int64) environment.Func {
	return func(args []value.Value) (value.Value, error) {
		s, err := arg1(args)
		if err != nil {
			return value.Value{}, err
		}
		return value.Integer(f(s)), nil
	}
}

func fnFloat1(f func(string) float64) environment.Func {
	return func(args []value.Value) (value.Value, error) {
		s, err := arg1(args)
		if err != nil {
			return value.Value{}, err
		}
		return value.Float(f(s)), nil
	}
}

func arg1(args []value.Value) (string, error) {
	if len(args) == 0 {
		return "", errors.Function("", "expected 1 argument, got 0")
	}
	return args[0].ToString(), nil
}

// ccnorm confusable-normalizes s against the process default table, then
// strips combining marks — af_ccnorm in affunctions.cpp.
func ccnorm(s string) string {
	normalized := confusable.Default().Normalize(s)
	var sb strings.Builder
	sb.Grow(len(normalized))
	for _, r := range normalized {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// norm fuses confusable-normalization, consecutive-duplicate collapsing, and
// an alphanumeric-only filter into a single pass — af_norm. Unlike composing
// ccnorm, rmdoubles, and rmspecials separately, the duplicate check runs
// against the normalized codepoint before the alnum filter is applied, so a
// run of normalized non-alnum codepoints still suppresses a repeat even
// though none of them are written out.
func norm(s string) string {
	table := confusable.Default()
	var sb strings.Builder
	sb.Grow(len(s))
	var lastchr rune
	for _, r := range s {
		chr := table.NormalizeRune(r)
		if chr != lastchr && (unicode.IsLetter(chr) || unicode.IsDigit(chr)) {
			sb.WriteRune(chr)
		}
		lastchr = chr
	}
	return sb.String()
}

// rmdoubles collapses runs of the same rune down to a single instance —
// af_rmdoubles.
func rmdoubles(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	var prev rune = -1
	for _, r := range s {
		if r == prev {
			continue
		}
		sb.WriteRune(r)
		prev = r
	}
	return sb.String()
}

// isSpecialRune reports whether r counts as "special" for rmspecials:
// neither a letter, digit, nor space — af_rmspecials treats punctuation and
// symbols as the noise it strips.
func isSpecialRune(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r)
}

// rmspecials strips every special rune from s — af_rmspecials.
func rmspecials(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if isSpecialRune(r) {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// specialratio returns the fraction of s's runes that are neither a letter
// nor a digit (whitespace counts as special here), 0 for an empty string —
// af_specialratio.
func specialratio(s string) float64 {
	total := 0
	special := 0
	for _, r := range s {
		total++
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			special++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(special) / float64(total)
}

// count(needle, haystack) counts non-overlapping occurrences of needle in
// haystack; count(haystack) with a single argument defaults needle to ","
// — af_count's two call forms (affunctions.cpp defaults to counting commas
// when only a haystack is given, not codepoints).
func count(args []value.Value) (value.Value, error) {
	var needle, haystack string
	switch len(args) {
	case 1:
		needle = ","
		haystack = args[0].ToString()
	case 2:
		needle = args[0].ToString()
		haystack = args[1].ToString()
	default:
		return value.Value{}, errors.Function("count", "expected 1 or 2 arguments")
	}
	if needle == "" {
		return value.Integer(0), nil
	}
	return value.Integer(int64(strings.Count(haystack, needle))), nil
}

// length returns the codepoint length of s — af_length.
func length(s string) int64 {
	return int64(len([]rune(s)))
}

// lcase lowercases s Unicode-aware via golang.org/x/text/cases, rather than
// strings.ToLower's simple per-rune table, matching the locale-sensitive
// folding af_lcase relies on ICU for in the reference implementation.
func lcase(s string) string {
	return cases.Lower(language.Und).String(s)
}

// ucase uppercases s — the inverse of lcase, exposed for symmetry (the
// reference implementation pairs af_lcase with an equivalent uppercase
// helper used by several filters in production).
func ucase(s string) string {
	return cases.Upper(language.Und).String(s)
}
