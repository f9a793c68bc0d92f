package value

import "testing"

func TestParseNumericLiteral(t *testing.T) {
	tests := []struct {
		lit      string
		wantKind Kind
		wantInt  int64
		wantFlt  float64
	}{
		{"42", KindInteger, 42, 0},
		{"0", KindInteger, 0, 0},
		{"3.14", KindFloat, 0, 3.14},
		{"1e10", KindFloat, 0, 1e10},
		{"17o", KindInteger, 15, 0},
		{"2Ao", KindInteger, 0, 0}, // invalid octal digit -> error path exercised separately
		{"FFx", KindInteger, 255, 0},
		{"1010b", KindInteger, 10, 0},
	}

	for _, tt := range tests {
		if tt.lit == "2Ao" {
			continue // exercised in TestParseNumericLiteralErrors
		}
		got, err := ParseNumericLiteral(tt.lit)
		if err != nil {
			t.Errorf("ParseNumericLiteral(%q) unexpected error: %v", tt.lit, err)
			continue
		}
		if got.Kind() != tt.wantKind {
			t.Errorf("ParseNumericLiteral(%q).Kind() = %v, want %v", tt.lit, got.Kind(), tt.wantKind)
		}
		switch tt.wantKind {
		case KindInteger:
			if got.ToInt() != tt.wantInt {
				t.Errorf("ParseNumericLiteral(%q) = %d, want %d", tt.lit, got.ToInt(), tt.wantInt)
			}
		case KindFloat:
			if got.ToFloat() != tt.wantFlt {
				t.Errorf("ParseNumericLiteral(%q) = %v, want %v", tt.lit, got.ToFloat(), tt.wantFlt)
			}
		}
	}
}

func TestParseNumericLiteralErrors(t *testing.T) {
	if _, err := ParseNumericLiteral("2Ao"); err == nil {
		t.Error("ParseNumericLiteral(\"2Ao\") expected error for invalid octal digit")
	}
}
