package value

import (
	"strconv"
	"strings"
)

// ParseNumericLiteral interprets the text a lexer.Lexer recognized as a
// NUMBER token (spec.md §4.2 point 4) into an Integer or Float Value.
// Suffix letter determines base: 'o'/'O' octal, 'x'/'X' hex, 'b'/'B' binary;
// a literal containing '.' or an exponent is a Float; anything else is a
// plain decimal Integer.
func ParseNumericLiteral(lit string) (Value, error) {
	if lit == "" {
		return Integer(0), nil
	}

	last := lit[len(lit)-1]
	switch last {
	case 'o', 'O':
		i, err := strconv.ParseInt(lit[:len(lit)-1], 8, 64)
		if err != nil {
			return Value{}, err
		}
		return Integer(i), nil
	case 'x', 'X':
		i, err := strconv.ParseInt(lit[:len(lit)-1], 16, 64)
		if err != nil {
			return Value{}, err
		}
		return Integer(i), nil
	case 'b', 'B':
		i, err := strconv.ParseInt(lit[:len(lit)-1], 2, 64)
		if err != nil {
			return Value{}, err
		}
		return Integer(i), nil
	}

	if strings.ContainsAny(lit, ".eE") {
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return Value{}, err
		}
		return Float(f), nil
	}

	i, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		return Value{}, err
	}
	return Integer(i), nil
}
