package types

import (
	"errors"
	"slices"
	"testing"

	"github.com/typedant/antls/ant/parser"
)

func check(t *testing.T, src string) (*Table, error) {
	t.Helper()
	prog, err := parser.Parse(src, "test.ant")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	table := NewTable().Init()
	return table, NewChecker(table).CheckNode(prog)
}

func TestCheckBindings(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want map[string]string
	}{
		{"int assignment", "x = 1", map[string]string{"x": "int"}},
		{"inferred from expression", "x = 1\ny = x * 2", map[string]string{"x": "int", "y": "int"}},
		{"typed let", "let s: str = \"a\" + \"b\"", map[string]string{"s": "str"}},
		{"comparison", "b = 1.5 < 2.0", map[string]string{"b": "bool"}},
		{"builtin call", "n = len(\"abc\")", map[string]string{"n": "int"}},
		{"function", "func add(a: int, b: int) -> int { return a + b }\nz = add(1, 2)",
			map[string]string{"add": "func(int, int) -> int", "z": "int"}},
		{"recursion", "func fact(n: int) -> int {\n if n < 2 { return 1 }\n return n * fact(n - 1)\n}",
			map[string]string{"fact": "func(int) -> int"}},
		{"unit function", "func greet(name: str) { print(name) }", map[string]string{"greet": "func(str) -> unit"}},
		{"reassignment keeps type", "x = 1\nx = 2", map[string]string{"x": "int"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := check(t, tt.src)
			if err != nil {
				t.Fatalf("CheckNode() error = %v", err)
			}
			for name, want := range tt.want {
				typ, ok := table.Lookup(name)
				if !ok {
					t.Errorf("%s not bound", name)
					continue
				}
				if typ.String() != want {
					t.Errorf("%s: %s, want %s", name, typ, want)
				}
			}
		})
	}
}

func TestCheckLocalsStayOutOfTable(t *testing.T) {
	table, err := check(t, "func f(p: int) -> int {\n let local = p\n return local\n}\nif true { inner = 1 }")
	if err != nil {
		t.Fatalf("CheckNode() error = %v", err)
	}
	for _, name := range []string{"p", "local", "inner"} {
		if _, ok := table.Lookup(name); ok {
			t.Errorf("%s leaked into the table", name)
		}
	}
}

func TestCheckErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		kind    ErrorKind
		literal string
		line    int
		column  int
	}{
		{"undefined", "x = y", ErrUndefined, "y", 1, 5},
		{"operand mismatch", "x = 1 + \"a\"", ErrMismatch, "+", 1, 7},
		{"reassign other type", "x = 1\nx = \"s\"", ErrMismatch, `"s"`, 2, 5},
		{"let redeclared", "let x = 1\nlet x = 2", ErrRedeclared, "x", 2, 5},
		{"let annotation", "let x: int = true", ErrMismatch, "true", 1, 14},
		{"unknown type", "let x: num = 1", ErrUnknownType, "num", 1, 8},
		{"not callable", "x = 1\nx(2)", ErrNotCallable, "x", 2, 1},
		{"arity", "abs(1, 2)", ErrArgCount, "(", 1, 4},
		{"argument type", "len(1)", ErrMismatch, "1", 1, 5},
		{"condition", "if 1 { }", ErrCondition, "1", 1, 4},
		{"return outside function", "return 1", ErrReturn, "return", 1, 1},
		{"return type", "func f() -> int { return \"s\" }", ErrReturn, `"s"`, 1, 26},
		{"missing return value", "func f() -> int { return }", ErrReturn, "return", 1, 19},
		{"unary", "x = -true", ErrMismatch, "-", 1, 5},
		{"modulo on float", "x = 1.0 % 2.0", ErrMismatch, "%", 1, 9},
		{"duplicate parameter", "func f(a: int, a: int) { }", ErrRedeclared, "a", 1, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := check(t, tt.src)
			var terr *Error
			if !errors.As(err, &terr) {
				t.Fatalf("CheckNode() error = %v, want *Error", err)
			}
			if terr.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v (%s)", terr.Kind, tt.kind, terr)
			}
			tok := terr.Token
			if tok.Literal != tt.literal || tok.Line != tt.line || tok.Column != tt.column {
				t.Errorf("Token = %v, want %q at %d:%d", tok, tt.literal, tt.line, tt.column)
			}
			if terr.Text() == "" {
				t.Error("Text() is empty")
			}
		})
	}
}

func TestCheckKeepsBindingsBeforeFailure(t *testing.T) {
	table, err := check(t, "a = 1\nb = a + 1\nc = missing\nd = 4")
	if err == nil {
		t.Fatal("CheckNode() error = nil, want failure")
	}
	for _, name := range []string{"a", "b"} {
		if _, ok := table.Lookup(name); !ok {
			t.Errorf("%s should be bound before the failure", name)
		}
	}
	for _, name := range []string{"c", "d"} {
		if _, ok := table.Lookup(name); ok {
			t.Errorf("%s should not be bound", name)
		}
	}
}

func TestTableInitSeedsBuiltins(t *testing.T) {
	table := NewTable().Init()
	names := table.Names()
	for _, name := range []string{"abs", "itos", "len", "print"} {
		if !slices.Contains(names, name) {
			t.Errorf("builtin %s missing", name)
		}
		if !IsBuiltin(name) {
			t.Errorf("IsBuiltin(%q) = false", name)
		}
	}
	if !slices.IsSorted(names) {
		t.Errorf("Names() not sorted: %v", names)
	}
	if table.Len() != len(names) {
		t.Errorf("Len() = %d, want %d", table.Len(), len(names))
	}
}
