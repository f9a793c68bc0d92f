// Package config loads the resource limits spec.md §6.2 and §4.5 describe
// (filter/variable size caps, parse-cache capacity) from a YAML file, using
// goccy/go-yaml the way the teacher's own tooling config is parsed.
package config

import (
	"os"

	"github.com/goccy/go-yaml"
)

// Limits bounds the sizes the framing protocol (§6.2) and the evaluator's
// parse cache (§4.5) enforce.
type Limits struct {
	// MaxFilterBytes caps a single filter expression's source length.
	MaxFilterBytes int `yaml:"max_filter_bytes"`
	// MaxVariableNameBytes caps a framed request's variable name length.
	MaxVariableNameBytes int `yaml:"max_variable_name_bytes"`
	// MaxVariableValueBytes caps a framed request's variable value length.
	MaxVariableValueBytes int `yaml:"max_variable_value_bytes"`
	// ParseCacheCapacity is loaded and defaulted here only; the evaluator's
	// parse cache uses its own fixed limit and does not read this field.
	ParseCacheCapacity int `yaml:"parse_cache_capacity"`
	// MaxEvalSteps is loaded and defaulted here only (0 means unbounded);
	// the evaluator does not read it and enforces no step budget.
	MaxEvalSteps int `yaml:"max_eval_steps"`
}

// DefaultLimits matches the framing protocol's documented defaults (§6.2):
// 10KiB filters, 255-byte variable names, 256KiB variable values.
func DefaultLimits() Limits {
	return Limits{
		MaxFilterBytes:        10 * 1024,
		MaxVariableNameBytes:  255,
		MaxVariableValueBytes: 256 * 1024,
		ParseCacheCapacity:    100,
		MaxEvalSteps:          0,
	}
}

// Load reads and parses a YAML Limits file at path, applying DefaultLimits
// for any field the file does not set.
func Load(path string) (Limits, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Limits{}, err
	}
	l := DefaultLimits()
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Limits{}, err
	}
	return l, nil
}
