package langserver

import (
	"reflect"
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/typedant/antls/ant/types"
)

const testURI = "file:///tmp/main.ant"

func TestAnalyzeSuccess(t *testing.T) {
	table := types.NewTable().Init()
	if diag := Analyze("x = 1\ny = x + 2", testURI, table); diag != nil {
		t.Fatalf("Analyze() = %+v, want nil", diag)
	}
	for _, name := range []string{"x", "y"} {
		if _, ok := table.Lookup(name); !ok {
			t.Errorf("%s not bound after successful analysis", name)
		}
	}
}

func TestAnalyzeDiagnostics(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		rng     protocol.Range
		message string
	}{
		{
			name:    "dangling operator",
			text:    "x = 1\ny = x +",
			rng:     lineRange(1, 6, 7),
			message: "expected expression, found end of input",
		},
		{
			name:    "lexer error covers document start",
			text:    "x = 1\ny = @",
			rng:     protocol.Range{},
			message: "lexer error",
		},
		{
			name:    "type error after wide identifier",
			text:    "变量 = 1\ny = 变量 + \"s\"",
			rng:     lineRange(1, 7, 8),
			message: "mismatched types int and str for +",
		},
		{
			name:    "type error after astral characters",
			text:    "s = \"😀😀\" + 1",
			rng:     lineRange(0, 11, 12),
			message: "mismatched types str and int for +",
		},
		{
			name:    "undefined identifier",
			text:    "total = count + 1",
			rng:     lineRange(0, 8, 13),
			message: "undefined: count",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diag := Analyze(tt.text, testURI, types.NewTable().Init())
			if diag == nil {
				t.Fatal("Analyze() = nil, want a diagnostic")
			}
			if diag.Range != tt.rng {
				t.Errorf("Range = %+v, want %+v", diag.Range, tt.rng)
			}
			if diag.Message != tt.message {
				t.Errorf("Message = %q, want %q", diag.Message, tt.message)
			}
			if diag.Severity == nil || *diag.Severity != protocol.DiagnosticSeverityError {
				t.Errorf("Severity = %v, want error", diag.Severity)
			}
			if diag.Source == nil || *diag.Source != "/tmp/main.ant" {
				t.Errorf("Source = %v, want /tmp/main.ant", diag.Source)
			}
		})
	}
}

func lineRange(line, start, end uint32) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: line, Character: start},
		End:   protocol.Position{Line: line, Character: end},
	}
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	texts := []string{
		"x = 1\ny = x +",
		"a = 1\nb = a + \"s\"",
		"q = #",
		"func f(n: int) -> int { return n }",
	}
	for _, text := range texts {
		first := Analyze(text, testURI, types.NewTable().Init())
		second := Analyze(text, testURI, types.NewTable().Init())
		if !reflect.DeepEqual(first, second) {
			t.Errorf("Analyze(%q) differs between runs: %+v vs %+v", text, first, second)
		}
	}
}

func TestAnalyzeStopsAtParseError(t *testing.T) {
	table := types.NewTable().Init()
	Analyze("x = 1\ny = x +", testURI, table)
	if _, ok := table.Lookup("x"); ok {
		t.Error("type checker ran after a parse failure")
	}
}

func TestAnalyzeWithPartialCheck(t *testing.T) {
	table := types.NewTable().Init()
	diag := Analyze("x = 1\ny = x +", testURI, table, WithPartialCheck())
	if diag == nil || diag.Message != "expected expression, found end of input" {
		t.Fatalf("Analyze() = %+v, want the parse error", diag)
	}
	if _, ok := table.Lookup("x"); !ok {
		t.Error("x should be bound by the partial check")
	}
	if _, ok := table.Lookup("y"); ok {
		t.Error("y should not be bound")
	}
}

func TestDocumentLabel(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"file:///home/ant/main.ant", "/home/ant/main.ant"},
		{"file:///tmp/with%20space.ant", "/tmp/with space.ant"},
		{"untitled:Untitled-1", "untitled:Untitled-1"},
		{"inmemory://model/1", "inmemory://model/1"},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			if got := DocumentLabel(tt.uri); got != tt.want {
				t.Errorf("DocumentLabel(%q) = %q, want %q", tt.uri, got, tt.want)
			}
		})
	}
}
