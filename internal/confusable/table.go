// Package confusable loads and applies the confusable-character table
// spec.md §6.3 describes: a line-oriented `actual:canonical` mapping that the
// ccnorm and norm builtins use to normalize homoglyphs, the same job Unicode TR39 skeleton tables do for other
// anti-spoofing tooling in the ecosystem.
package confusable

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"sync"
)

// Table is an immutable rune->rune normalization map. The zero value is a
// valid, empty Table (every rune maps to itself).
type Table struct {
	m map[rune]rune
}

// Parse reads a confusables file: one `actual_codepoint:canonical_codepoint`
// mapping per line, each side a decimal codepoint number (spec.md §6.3),
// e.g. "65:97" maps U+0041 to U+0061. Blank lines and lines starting with
// '#' are ignored; malformed lines are skipped rather than rejected, since a
// single corrupt entry in an otherwise-large table should not make the
// whole table unusable.
func Parse(r io.Reader) (*Table, error) {
	t := &Table{m: make(map[rune]rune)}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.IndexByte(line, ':')
		if idx < 0 {
			continue
		}
		actual, err := strconv.Atoi(strings.TrimSpace(line[:idx]))
		if err != nil {
			continue
		}
		canonical, err := strconv.Atoi(strings.TrimSpace(line[idx+1:]))
		if err != nil {
			continue
		}
		t.m[rune(actual)] = rune(canonical)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// NormalizeRune returns r's canonical form, or r itself if it has no entry
// in the table.
func (t *Table) NormalizeRune(r rune) rune {
	if t == nil {
		return r
	}
	if c, ok := t.m[r]; ok {
		return c
	}
	return r
}

// Normalize replaces every confusable rune in s with its canonical form.
func (t *Table) Normalize(s string) string {
	if t == nil || len(t.m) == 0 {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if c, ok := t.m[r]; ok {
			sb.WriteRune(c)
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

var (
	defaultMu    sync.RWMutex
	defaultTable = &Table{m: map[rune]rune{}}
)

// Default returns the process-wide default Table, empty until SetDefault is
// called by a host embedding this package with its own confusables data
// (spec.md §6.3 leaves the actual table contents to the embedder).
func Default() *Table {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultTable
}

// SetDefault replaces the process-wide default Table.
func SetDefault(t *Table) {
	defaultMu.Lock()
	defaultTable = t
	defaultMu.Unlock()
}
