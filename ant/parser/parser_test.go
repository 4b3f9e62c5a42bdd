package parser

import (
	"errors"
	"testing"
)

func parse(t *testing.T, src string) (*Program, error) {
	t.Helper()
	lexer := NewLexer(src, "test.ant")
	tokens := lexer.Tokens()
	if lexer.HasErrors() {
		t.Fatalf("lexer errors: %v", lexer.Errors())
	}
	return NewParser(tokens).ParseProgram()
}

func TestParseStatements(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"assignment", "x = 1", []string{"*parser.AssignStmt"}},
		{"let", "let x = 1", []string{"*parser.LetStmt"}},
		{"typed let", "let x: int = 1", []string{"*parser.LetStmt"}},
		{"newline separated", "x = 1\ny = x + 2", []string{"*parser.AssignStmt", "*parser.AssignStmt"}},
		{"semicolon separated", "x = 1; y = 2;", []string{"*parser.AssignStmt", "*parser.AssignStmt"}},
		{"func", "func add(a: int, b: int) -> int {\n  return a + b\n}", []string{"*parser.FuncDecl"}},
		{"if else chain", "if x < 1 { y = 1 } else if x < 2 { y = 2 } else { y = 3 }", []string{"*parser.IfStmt"}},
		{"while", "while i < 10 { i = i + 1 }", []string{"*parser.WhileStmt"}},
		{"call statement", "print(\"hi\")", []string{"*parser.ExprStmt"}},
		{"block", "{ let x = 1 }", []string{"*parser.Block"}},
		{"paren on next line starts statement", "f = g\n(1)", []string{"*parser.AssignStmt", "*parser.ExprStmt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := parse(t, tt.src)
			if err != nil {
				t.Fatalf("ParseProgram() error = %v", err)
			}
			if len(prog.Statements) != len(tt.want) {
				t.Fatalf("len(Statements) = %d, want %d", len(prog.Statements), len(tt.want))
			}
			for i, stmt := range prog.Statements {
				if got := typeName(stmt); got != tt.want[i] {
					t.Errorf("Statements[%d] = %s, want %s", i, got, tt.want[i])
				}
			}
		})
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *AssignStmt:
		return "*parser.AssignStmt"
	case *LetStmt:
		return "*parser.LetStmt"
	case *FuncDecl:
		return "*parser.FuncDecl"
	case *IfStmt:
		return "*parser.IfStmt"
	case *WhileStmt:
		return "*parser.WhileStmt"
	case *ExprStmt:
		return "*parser.ExprStmt"
	case *Block:
		return "*parser.Block"
	case *ReturnStmt:
		return "*parser.ReturnStmt"
	}
	return "unknown"
}

func TestParsePrecedence(t *testing.T) {
	prog, err := parse(t, "x = 1 + 2 * 3 == 7 && !done")
	if err != nil {
		t.Fatalf("ParseProgram() error = %v", err)
	}
	assign := prog.Statements[0].(*AssignStmt)
	and, ok := assign.Value.(*BinaryExpr)
	if !ok || and.Op.Kind != TokenAndAnd {
		t.Fatalf("top operator = %v, want &&", assign.Value)
	}
	eq, ok := and.Left.(*BinaryExpr)
	if !ok || eq.Op.Kind != TokenEq {
		t.Fatalf("left of && = %v, want ==", and.Left)
	}
	sum, ok := eq.Left.(*BinaryExpr)
	if !ok || sum.Op.Kind != TokenPlus {
		t.Fatalf("left of == = %v, want +", eq.Left)
	}
	if mul, ok := sum.Right.(*BinaryExpr); !ok || mul.Op.Kind != TokenStar {
		t.Errorf("right of + = %v, want *", sum.Right)
	}
	if _, ok := and.Right.(*UnaryExpr); !ok {
		t.Errorf("right of && = %T, want *UnaryExpr", and.Right)
	}
}

func TestParseReturnOnOwnLine(t *testing.T) {
	prog, err := parse(t, "func f() {\n  return\n  x = 1\n}")
	if err != nil {
		t.Fatalf("ParseProgram() error = %v", err)
	}
	body := prog.Statements[0].(*FuncDecl).Body
	if len(body.Statements) != 2 {
		t.Fatalf("len(body) = %d, want 2", len(body.Statements))
	}
	if ret := body.Statements[0].(*ReturnStmt); ret.Value != nil {
		t.Errorf("return value = %v, want none", ret.Value)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		kind    ErrorKind
		literal string
		line    int
		column  int
		message string
		partial int
	}{
		{
			name: "dangling operator", src: "x = 1\ny = x +",
			kind: ErrUnexpectedEOF, literal: "+", line: 2, column: 7,
			message: "expected expression, found end of input", partial: 1,
		},
		{
			name: "missing expression", src: "x = )",
			kind: ErrExpectedExpression, literal: ")", line: 1, column: 5,
			message: `expected expression, found ")"`,
		},
		{
			name: "let without name", src: "let = 1",
			kind: ErrExpectedIdent, literal: "=", line: 1, column: 5,
			message: `expected identifier, found "="`,
		},
		{
			name: "unclosed block", src: "a = 1\nb = 2\nif a < b {\n  c = 1",
			kind: ErrUnexpectedEOF, literal: "1", line: 4, column: 7,
			message: `expected "}" to close block, found end of input`, partial: 2,
		},
		{
			name: "missing type", src: "let x: = 1",
			kind: ErrExpectedType, literal: "=", line: 1, column: 8,
			message: `expected type name, found "="`,
		},
		{
			name: "missing paren", src: "print(1",
			kind: ErrUnexpectedEOF, literal: "1", line: 1, column: 7,
			message: `expected ",", found end of input`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := parse(t, tt.src)
			var perr *Error
			if !errors.As(err, &perr) {
				t.Fatalf("ParseProgram() error = %v, want *Error", err)
			}
			if perr.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", perr.Kind, tt.kind)
			}
			if perr.Token.Literal != tt.literal || perr.Token.Line != tt.line || perr.Token.Column != tt.column {
				t.Errorf("Token = %v, want %q at %d:%d", perr.Token, tt.literal, tt.line, tt.column)
			}
			if perr.Text() != tt.message {
				t.Errorf("Text() = %q, want %q", perr.Text(), tt.message)
			}
			if prog == nil {
				t.Fatal("program is nil")
			}
			if len(prog.Statements) != tt.partial {
				t.Errorf("partial statements = %d, want %d", len(prog.Statements), tt.partial)
			}
		})
	}
}

func TestErrorTextFallsBackToKind(t *testing.T) {
	err := &Error{Kind: ErrExpectedType}
	if got := err.Text(); got != "expected type name" {
		t.Errorf("Text() = %q, want %q", got, "expected type name")
	}
}

func TestParseReportsLexErrors(t *testing.T) {
	_, err := Parse("x = $", "test.ant")
	var lerr *LexError
	if !errors.As(err, &lerr) {
		t.Fatalf("Parse() error = %v, want *LexError", err)
	}
}
