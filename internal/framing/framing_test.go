package framing

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/wikimedia/mediawiki-extensions-AbuseFilter/internal/config"
	"github.com/wikimedia/mediawiki-extensions-AbuseFilter/internal/environment"
	"github.com/wikimedia/mediawiki-extensions-AbuseFilter/internal/evaluator"
)

func field(s string) string { return s + "\x00" }

func TestReadRequestNoVariables(t *testing.T) {
	raw := field("1 + 1") + field("")
	br := bufio.NewReader(strings.NewReader(raw))
	req, err := ReadRequest(br, config.DefaultLimits())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Filter != "1 + 1" {
		t.Errorf("Filter = %q, want %q", req.Filter, "1 + 1")
	}
	if len(req.Variables) != 0 {
		t.Errorf("expected no variables, got %v", req.Variables)
	}
}

func TestReadRequestWithVariables(t *testing.T) {
	raw := field("user_name like \"*bot*\"") + field("user_name") + field("Examplebot99") + field("")
	br := bufio.NewReader(strings.NewReader(raw))
	req, err := ReadRequest(br, config.DefaultLimits())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Variables["user_name"] != "Examplebot99" {
		t.Errorf("user_name = %q, want Examplebot99", req.Variables["user_name"])
	}
}

func TestReadRequestFilterTooLarge(t *testing.T) {
	limits := config.DefaultLimits()
	limits.MaxFilterBytes = 4
	raw := field("12345") + field("")
	br := bufio.NewReader(strings.NewReader(raw))
	if _, err := ReadRequest(br, limits); err == nil {
		t.Error("expected ResourceExhausted error for oversized filter")
	}
}

func TestWriteResult(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteResult(&buf, true, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "MATCH\n" {
		t.Errorf("got %q, want MATCH\\n", buf.String())
	}

	buf.Reset()
	if err := WriteResult(&buf, false, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "NOMATCH\n" {
		t.Errorf("got %q, want NOMATCH\\n", buf.String())
	}
}

func TestServeProcessesMultipleRequests(t *testing.T) {
	raw := field(`user_name like "*bot*"`) + field("user_name") + field("Examplebot99") + field("") +
		field("1 / 0") + field("") +
		field("1 + 1") + field("")

	env := environment.New()
	ev := evaluator.New(env)

	var out bytes.Buffer
	if err := Serve(strings.NewReader(raw), &out, ev, env, config.DefaultLimits()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d response lines, want 3: %q", len(lines), out.String())
	}
	if lines[0] != "MATCH" {
		t.Errorf("response 1 = %q, want MATCH", lines[0])
	}
	if !strings.HasPrefix(lines[1], "EXCEPTION:") {
		t.Errorf("response 2 = %q, want an EXCEPTION line", lines[1])
	}
	if lines[2] != "MATCH" {
		t.Errorf("response 3 = %q, want MATCH (1+1=2 is a nonzero, truthy Integer)", lines[2])
	}
}
