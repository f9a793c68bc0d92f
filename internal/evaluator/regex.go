package evaluator

import (
	"github.com/dlclark/regexp2"

	"github.com/wikimedia/mediawiki-extensions-AbuseFilter/internal/errors"
)

// compileRegex compiles pattern with dlclark/regexp2, the PCRE-flavored
// engine the retrieval pack carries for this purpose (Go's stdlib regexp is
// RE2-only and rejects the backreferences/lookaround the original PHP/C++
// AbuseFilter regex operators accept). insensitive sets the case-insensitive
// flag, matching the trailing "i" modifier spec.md §4.3 allows on `regex`
// patterns written as `/pattern/i`.
//
// pattern is wrapped in `\A(?:...)\z` so that a match, if any, always spans
// the whole input: spec.md §4.5's `rlike`/`regex` are a full match, the same
// as the original af_keyword's boost::u32regex_match (whole-string match)
// rather than u32regex_search (search anywhere) — without the anchors,
// regexp2's search would report a match for any substring.
func compileRegex(pattern string, insensitive bool) (*regexp2.Regexp, error) {
	opts := regexp2.None
	if insensitive {
		opts |= regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(`\A(?:`+pattern+`)\z`, opts)
	if err != nil {
		return nil, errors.Regex(err.Error())
	}
	return re, nil
}

// regexMatch reports whether re (already full-match-anchored by
// compileRegex) matches s.
func regexMatch(re *regexp2.Regexp, s string) (bool, error) {
	m, err := re.MatchString(s)
	if err != nil {
		return false, errors.Regex(err.Error())
	}
	return m, nil
}

// splitRegexLiteral splits a `/pattern/flags`-style literal into its pattern
// and case-insensitivity flag. If pattern does not use slash-delimited
// form, it is used as-is with no flags (bare strings are valid patterns
// too, per spec.md §4.3's "right operand ... is compiled as a pattern").
func splitRegexLiteral(lit string) (pattern string, insensitive bool) {
	if len(lit) < 2 || lit[0] != '/' {
		return lit, false
	}
	end := -1
	for i := len(lit) - 1; i > 0; i-- {
		if lit[i] == '/' {
			end = i
			break
		}
	}
	if end <= 0 {
		return lit, false
	}
	flags := lit[end+1:]
	for _, f := range flags {
		if f == 'i' {
			insensitive = true
		}
	}
	return lit[1:end], insensitive
}
