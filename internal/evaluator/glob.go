package evaluator

import "strings"

// globMatch implements the `like`/`matches` wildcard grammar (spec.md
// §4.3/§4.5): `*` matches any run of characters (including none), `?`
// matches exactly one character, `[...]` matches any single character in
// the class (`[!...]`/`[^...]` negates it, `]` as the class's first
// character is a literal, and `-` denotes a range), and `\` escapes the
// following character as a literal — all operating on Unicode codepoints
// rather than bytes. No library in the retrieval pack offers this exact
// AbuseFilter glob syntax (path.Match and filepath.Match both treat `/`
// specially and use a different class/escape grammar, and regexp2/regexp
// are full regex engines, not globs); a small hand-rolled matcher is the
// narrowest correct option.
func globMatch(pattern, s string) bool {
	p := []rune(pattern)
	t := []rune(s)
	return globMatchRunes(p, t)
}

// classEnd returns the index just past the closing ']' of the character
// class starting at p[start] (p[start] == '['), or -1 if p has no closing
// ']' for it (in which case '[' is treated as a literal by the caller).
func classEnd(p []rune, start int) int {
	i := start + 1
	if i < len(p) && (p[i] == '!' || p[i] == '^') {
		i++
	}
	if i < len(p) && p[i] == ']' { // a ']' right after the opening is literal
		i++
	}
	for i < len(p) {
		if p[i] == ']' {
			return i + 1
		}
		i++
	}
	return -1
}

// matchClass reports whether r is matched by the class body p[start:end-1]
// (start is the index of '[', end-1 the index of the closing ']').
func matchClass(p []rune, start, end int, r rune) bool {
	i := start + 1
	negate := false
	if i < end-1 && (p[i] == '!' || p[i] == '^') {
		negate = true
		i++
	}
	matched := false
	for i < end-1 {
		if p[i+1] == '-' && i+2 < end-1 {
			lo, hi := p[i], p[i+2]
			if r >= lo && r <= hi {
				matched = true
			}
			i += 3
			continue
		}
		if p[i] == r {
			matched = true
		}
		i++
	}
	return matched != negate
}

func globMatchRunes(p, t []rune) bool {
	// Greedy-backtracking glob match, iterative with a star checkpoint (the
	// classic "two pointer" algorithm), avoiding the exponential blowup of
	// naive recursion. Once t is exhausted, only trailing '*'s may remain in
	// the pattern for a match.
	pi, ti := 0, 0
	starIdx, starT := -1, -1

	for ti < len(t) {
		switch {
		case pi < len(p) && p[pi] == '\\' && pi+1 < len(p):
			if p[pi+1] == t[ti] {
				pi += 2
				ti++
			} else if starIdx != -1 {
				pi = starIdx + 1
				starT++
				ti = starT
			} else {
				return false
			}
		case pi < len(p) && p[pi] == '[':
			end := classEnd(p, pi)
			if end == -1 {
				// No closing ']': '[' is a literal.
				if t[ti] == '[' {
					pi++
					ti++
				} else if starIdx != -1 {
					pi = starIdx + 1
					starT++
					ti = starT
				} else {
					return false
				}
				continue
			}
			if matchClass(p, pi, end, t[ti]) {
				pi = end
				ti++
			} else if starIdx != -1 {
				pi = starIdx + 1
				starT++
				ti = starT
			} else {
				return false
			}
		case pi < len(p) && (p[pi] == '?' || p[pi] == t[ti]):
			pi++
			ti++
		case pi < len(p) && p[pi] == '*':
			starIdx = pi
			starT = ti
			pi++
		case starIdx != -1:
			pi = starIdx + 1
			starT++
			ti = starT
		default:
			return false
		}
	}

	for pi < len(p) && p[pi] == '*' {
		pi++
	}

	return pi == len(p)
}

// matchesWildcard implements `matches`, an alias-equivalent wildcard
// operator in the corpus grammar (spec.md §4.3 groups `like`/`matches` as
// the same family; the original C++ af_checkstring-backed operators treat
// them identically). Kept as a distinct entry point so evaluator.go reads
// one name per grammar keyword, even though the behavior is shared.
func matchesWildcard(pattern, s string) bool {
	return globMatch(pattern, s)
}

// containsAny reports whether needle occurs anywhere in haystack, used by
// the `contains` keyword operator. Wraps strings.Contains purely so the
// evaluator's keyword dispatch reads symmetrically with globMatch/regexMatch.
func containsAny(haystack, needle string) bool {
	return strings.Contains(haystack, needle)
}
