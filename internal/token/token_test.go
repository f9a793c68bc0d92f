package token

import "testing"

func TestKeywordsTable(t *testing.T) {
	tests := map[string]Type{
		"true":     TRUE,
		"false":    FALSE,
		"null":     NULLKW,
		"in":       KW_IN,
		"contains": KW_CONTAINS,
		"like":     KW_LIKE,
		"matches":  KW_MATCHES,
		"rlike":    KW_RLIKE,
		"regex":    KW_REGEX,
		"seconds":  KW_SECONDS,
		"minutes":  KW_MINUTES,
		"hours":    KW_HOURS,
		"days":     KW_DAYS,
		"weeks":    KW_WEEKS,
		"years":    KW_YEARS,
		"int":      KW_INT,
		"string":   KW_STRING,
		"float":    KW_FLOAT,
	}
	for word, want := range tests {
		got, ok := Keywords[word]
		if !ok {
			t.Errorf("Keywords[%q] missing", word)
			continue
		}
		if got != want {
			t.Errorf("Keywords[%q] = %v, want %v", word, got, want)
		}
	}
}

func TestTimeUnitSeconds(t *testing.T) {
	tests := map[Type]int64{
		KW_SECONDS: 1,
		KW_MINUTES: 60,
		KW_HOURS:   3600,
		KW_DAYS:    86400,
		KW_WEEKS:   604800,
		KW_YEARS:   31536000,
	}
	for typ, want := range tests {
		if got := TimeUnitSeconds[typ]; got != want {
			t.Errorf("TimeUnitSeconds[%v] = %d, want %d", typ, got, want)
		}
	}
}

func TestTokenString(t *testing.T) {
	tok := New(PLUS, "+", Position{Line: 1, Column: 3, Offset: 2})
	if tok.String() == "" {
		t.Error("Token.String() returned empty string")
	}
}
