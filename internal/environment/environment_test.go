package environment

import (
	"testing"

	"github.com/wikimedia/mediawiki-extensions-AbuseFilter/internal/value"
)

func TestDefaults(t *testing.T) {
	e := New()
	if v, ok := e.GetVariable("true"); !ok || v.ToInt() != 1 {
		t.Errorf("true = %v, ok=%v, want 1, true", v, ok)
	}
	if v, ok := e.GetVariable("false"); !ok || v.ToInt() != 0 {
		t.Errorf("false = %v, ok=%v, want 0, true", v, ok)
	}
	for _, name := range []string{"int", "string", "float"} {
		if _, ok := e.GetFunction(name); !ok {
			t.Errorf("missing pre-registered function %q", name)
		}
	}
}

func TestLookupVariableFallsBackToEmpty(t *testing.T) {
	e := New()
	v := e.LookupVariable("undefined_name")
	if v.Kind() != value.KindString || v.ToString() != "" {
		t.Errorf("LookupVariable(undefined) = %v, want empty string", v)
	}
}

func TestAddAndClearVariables(t *testing.T) {
	e := New()
	e.AddVariable("x", value.Integer(5))
	if v, ok := e.GetVariable("x"); !ok || v.ToInt() != 5 {
		t.Fatalf("x = %v, want 5", v)
	}
	e.ClearVariables()
	if _, ok := e.GetVariable("x"); ok {
		t.Error("x still bound after ClearVariables")
	}
	if v, ok := e.GetVariable("true"); !ok || v.ToInt() != 1 {
		t.Error("true should survive ClearVariables")
	}
}

func TestAddAndClearFunctions(t *testing.T) {
	e := New()
	e.AddFunction("double", func(args []value.Value) (value.Value, error) {
		return value.Integer(args[0].ToInt() * 2), nil
	})
	fn, ok := e.GetFunction("double")
	if !ok {
		t.Fatal("double not registered")
	}
	v, err := fn([]value.Value{value.Integer(21)})
	if err != nil || v.ToInt() != 42 {
		t.Errorf("double(21) = %v, err=%v, want 42", v, err)
	}

	e.ClearFunctions()
	if _, ok := e.GetFunction("double"); ok {
		t.Error("double still bound after ClearFunctions")
	}
	if _, ok := e.GetFunction("int"); !ok {
		t.Error("int should survive ClearFunctions")
	}
}
