package confusable

import (
	"strings"
	"testing"
)

func TestParseAndNormalize(t *testing.T) {
	// 1072:97 maps Cyrillic а (U+0430) to Latin a (U+0061);
	// 1077:101 maps Cyrillic е (U+0435) to Latin e (U+0065).
	data := "# comment\n1072:97\n1077:101\n\n"
	table, err := Parse(strings.NewReader(data))
	if err != nil {
		t.Fatalf("Parse unexpected error: %v", err)
	}
	got := table.Normalize("p\u0430ypal") // the second letter is Cyrillic а
	want := "paypal"
	if got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
}

func TestParseSkipsMalformedLines(t *testing.T) {
	data := "notacolon\nab:cd\n:\n65:\n:97\n"
	table, err := Parse(strings.NewReader(data))
	if err != nil {
		t.Fatalf("Parse unexpected error: %v", err)
	}
	if len(table.m) != 0 {
		t.Errorf("expected no entries from malformed lines, got %d", len(table.m))
	}
}

func TestNilTableNormalizeIsIdentity(t *testing.T) {
	var table *Table
	if got := table.Normalize("hello"); got != "hello" {
		t.Errorf("nil Table Normalize = %q, want identity", got)
	}
}

func TestSetDefaultAndDefault(t *testing.T) {
	table, err := Parse(strings.NewReader("1072:97\n"))
	if err != nil {
		t.Fatalf("Parse unexpected error: %v", err)
	}
	SetDefault(table)
	if got := Default().Normalize("\u0430"); got != "a" {
		t.Errorf("Default().Normalize after SetDefault = %q, want a", got)
	}
}
