package parser

import (
	"testing"

	"github.com/wikimedia/mediawiki-extensions-AbuseFilter/internal/ast"
)

func TestParsePrecedence(t *testing.T) {
	node, err := Parse("1 + 2 * 3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bin, ok := node.(*ast.Binary)
	if !ok || bin.Op != ast.BinAdd {
		t.Fatalf("expected top-level Add, got %#v", node)
	}
	rhs, ok := bin.Right.(*ast.Binary)
	if !ok || rhs.Op != ast.BinMul {
		t.Fatalf("expected right side Mul, got %#v", bin.Right)
	}
}

func TestParsePowerRightAssociative(t *testing.T) {
	node, err := Parse("2 ** 3 ** 2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bin, ok := node.(*ast.Binary)
	if !ok || bin.Op != ast.BinPow {
		t.Fatalf("expected top-level Pow, got %#v", node)
	}
	if _, ok := bin.Left.(*ast.Literal); !ok {
		t.Fatalf("expected left operand to be the literal 2, got %#v", bin.Left)
	}
	if _, ok := bin.Right.(*ast.Binary); !ok {
		t.Fatalf("expected right operand to itself be Pow(3,2), got %#v", bin.Right)
	}
}

func TestParseTernary(t *testing.T) {
	node, err := Parse(`1 ? "a" : "b"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := node.(*ast.Ternary); !ok {
		t.Fatalf("expected Ternary, got %#v", node)
	}
}

func TestParseFunctionCall(t *testing.T) {
	node, err := Parse(`length("hi")`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	call, ok := node.(*ast.Call)
	if !ok || call.Name != "length" || len(call.Args) != 1 {
		t.Fatalf("expected Call(length, 1 arg), got %#v", node)
	}
}

func TestParseKeywordOperator(t *testing.T) {
	node, err := Parse(`"foo" in "foobar"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	kw, ok := node.(*ast.Keyword)
	if !ok || kw.Op != ast.KeywordIn {
		t.Fatalf("expected Keyword(in), got %#v", node)
	}
}

func TestParseTimeUnit(t *testing.T) {
	node, err := Parse("5 minutes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tu, ok := node.(*ast.TimeUnitExpr)
	if !ok || tu.Unit != ast.UnitMinutes {
		t.Fatalf("expected TimeUnitExpr(minutes), got %#v", node)
	}
}

func TestParseCastKeywordAsFunction(t *testing.T) {
	node, err := Parse(`int("42")`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	call, ok := node.(*ast.Call)
	if !ok || call.Name != "int" {
		t.Fatalf("expected Call(int), got %#v", node)
	}
}

func TestParseUnbalancedParens(t *testing.T) {
	if _, err := Parse("(1 + 2"); err == nil {
		t.Error("expected ParseError for unbalanced parens")
	}
}

func TestParseTrailingTokens(t *testing.T) {
	if _, err := Parse("1 + 2 3"); err == nil {
		t.Error("expected ParseError for trailing tokens")
	}
}

func TestParseEmptyExpression(t *testing.T) {
	if _, err := Parse(""); err == nil {
		t.Error("expected ParseError for empty expression")
	}
}
