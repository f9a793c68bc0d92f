package errors

import (
	"strings"
	"testing"

	"github.com/wikimedia/mediawiki-extensions-AbuseFilter/internal/token"
)

func TestTagString(t *testing.T) {
	tests := map[Tag]string{
		TagLex:               "LexError",
		TagParse:             "ParseError",
		TagArithmetic:        "ArithmeticError",
		TagRegex:             "RegexError",
		TagFunction:          "FunctionError",
		TagResourceExhausted: "ResourceExhausted",
	}
	for tag, want := range tests {
		if got := tag.String(); got != want {
			t.Errorf("Tag(%d).String() = %q, want %q", tag, got, want)
		}
	}
}

func TestFormatWithPosition(t *testing.T) {
	err := Lex("unexpected character @", token.Position{Line: 1, Column: 5}, "1 + @ 2")
	out := err.Format(false)
	if !strings.Contains(out, "LexError") {
		t.Errorf("Format output missing tag: %q", out)
	}
	if !strings.Contains(out, "1 + @ 2") {
		t.Errorf("Format output missing source line: %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("Format output missing caret: %q", out)
	}
}

func TestFormatWithoutPosition(t *testing.T) {
	err := Arithmetic("division by zero")
	out := err.Format(false)
	if strings.Contains(out, "at ") {
		t.Errorf("Format output should not include position: %q", out)
	}
	if !strings.Contains(out, "division by zero") {
		t.Errorf("Format output missing message: %q", out)
	}
}

func TestErrorImplementsError(t *testing.T) {
	var err error = Regex("bad pattern")
	if err.Error() == "" {
		t.Error("Error() returned empty string")
	}
}

func TestFunctionErrorCarriesName(t *testing.T) {
	err := Function("count", "bad argument")
	if err.FuncName != "count" {
		t.Errorf("FuncName = %q, want count", err.FuncName)
	}
}
