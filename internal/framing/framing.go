// Package framing implements the NUL-delimited request/response protocol
// spec.md §6.2 defines for driving an Evaluator over a pipe: a request is a
// filter expression followed by zero or more `name\x00value` variable
// assignments, each field NUL-terminated; a response is one line, either
// "MATCH\n", "NOMATCH\n", or "EXCEPTION: <message>\n".
package framing

import (
	"bufio"
	"fmt"
	"io"

	"github.com/wikimedia/mediawiki-extensions-AbuseFilter/internal/config"
	"github.com/wikimedia/mediawiki-extensions-AbuseFilter/internal/environment"
	"github.com/wikimedia/mediawiki-extensions-AbuseFilter/internal/errors"
	"github.com/wikimedia/mediawiki-extensions-AbuseFilter/internal/evaluator"
	"github.com/wikimedia/mediawiki-extensions-AbuseFilter/internal/value"
)

// Request is one decoded framed request: a filter expression plus the
// variable assignments to install into the Environment before evaluating
// it.
type Request struct {
	Filter    string
	Variables map[string]string
}

// ReadRequest decodes one Request from r: the filter field, then
// alternating name/value fields until an empty name field (a bare NUL)
// terminates the variable list. Enforces limits.MaxFilterBytes,
// MaxVariableNameBytes, and MaxVariableValueBytes, returning a
// ResourceExhausted EvalError if any field exceeds its cap.
func ReadRequest(r *bufio.Reader, limits config.Limits) (Request, error) {
	filter, err := readField(r)
	if err != nil {
		return Request{}, err
	}
	if limits.MaxFilterBytes > 0 && len(filter) > limits.MaxFilterBytes {
		return Request{}, errors.ResourceExhausted(fmt.Sprintf("filter exceeds %d bytes", limits.MaxFilterBytes))
	}

	vars := make(map[string]string)
	for {
		name, err := readField(r)
		if err != nil {
			return Request{}, err
		}
		if name == "" {
			break
		}
		if limits.MaxVariableNameBytes > 0 && len(name) > limits.MaxVariableNameBytes {
			return Request{}, errors.ResourceExhausted(fmt.Sprintf("variable name exceeds %d bytes", limits.MaxVariableNameBytes))
		}
		val, err := readField(r)
		if err != nil {
			return Request{}, err
		}
		if limits.MaxVariableValueBytes > 0 && len(val) > limits.MaxVariableValueBytes {
			return Request{}, errors.ResourceExhausted(fmt.Sprintf("variable value exceeds %d bytes", limits.MaxVariableValueBytes))
		}
		vars[name] = val
	}

	return Request{Filter: filter, Variables: vars}, nil
}

// readField reads bytes up to and including the next NUL, returning the
// bytes before it as a string.
func readField(r *bufio.Reader) (string, error) {
	b, err := r.ReadBytes(0)
	if err != nil {
		if err == io.EOF && len(b) == 0 {
			return "", io.EOF
		}
		return "", err
	}
	return string(b[:len(b)-1]), nil
}

// WriteResult encodes an evaluation outcome as one response line.
func WriteResult(w io.Writer, matched bool, err error) error {
	if err != nil {
		_, werr := fmt.Fprintf(w, "EXCEPTION: %s\n", err.Error())
		return werr
	}
	if matched {
		_, werr := fmt.Fprint(w, "MATCH\n")
		return werr
	}
	_, werr := fmt.Fprint(w, "NOMATCH\n")
	return werr
}

// Serve decodes one Request from r, installs its variables into env (each
// value typed by value.FromLexeme: Integer if it parses as a decimal
// integer, else Float if it parses as a float, else String), evaluates its
// filter with ev, and writes the outcome to w. It loops until r is
// exhausted or a read fails; a field over its size limit is answered with
// an EXCEPTION line and the loop continues.
func Serve(r io.Reader, w io.Writer, ev *evaluator.Evaluator, env *environment.Environment, limits config.Limits) error {
	br := bufio.NewReader(r)
	for {
		req, err := ReadRequest(br, limits)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			if _, ok := err.(*errors.EvalError); !ok {
				return err
			}
			if werr := WriteResult(w, false, err); werr != nil {
				return werr
			}
			continue
		}

		for name, val := range req.Variables {
			env.AddVariable(name, value.FromLexeme(val))
		}

		result, evalErr := ev.Evaluate(req.Filter)
		if evalErr != nil {
			if werr := WriteResult(w, false, evalErr); werr != nil {
				return werr
			}
			continue
		}
		if werr := WriteResult(w, result.ToBool(), nil); werr != nil {
			return werr
		}
	}
}
