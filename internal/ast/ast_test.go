package ast

import (
	"testing"

	"github.com/wikimedia/mediawiki-extensions-AbuseFilter/internal/value"
)

// TestNodeMarker exercises every node kind's nodeMarker to guard against a
// kind silently losing its Node-ness during a refactor (nodeMarker is
// unexported, so this is the only compile-time check from outside the
// package; this file lives inside the package to reach it).
func TestNodeMarker(t *testing.T) {
	nodes := []Node{
		&Literal{Value: value.Integer(1)},
		&Variable{Name: "x"},
		&Call{Name: "f", Args: nil},
		&Unary{Op: UnaryNot, Child: &Literal{Value: value.Integer(1)}},
		&Binary{Op: BinAdd, Left: &Literal{Value: value.Integer(1)}, Right: &Literal{Value: value.Integer(2)}},
		&Ternary{Cond: &Literal{Value: value.Integer(1)}, Then: &Literal{Value: value.Integer(2)}, Else: &Literal{Value: value.Integer(3)}},
		&Keyword{Op: KeywordIn, Left: &Literal{Value: value.String("a")}, Right: &Literal{Value: value.String("ab")}},
		&TimeUnitExpr{Unit: UnitSeconds, Child: &Literal{Value: value.Integer(5)}},
	}
	for i, n := range nodes {
		if n == nil {
			t.Errorf("nodes[%d] is nil", i)
		}
	}
}
