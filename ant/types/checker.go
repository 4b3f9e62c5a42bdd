package types

import (
	"fmt"

	"github.com/typedant/antls/ant/parser"
)

type ErrorKind int

const (
	ErrUndefined ErrorKind = iota
	ErrMismatch
	ErrRedeclared
	ErrNotCallable
	ErrArgCount
	ErrCondition
	ErrReturn
	ErrUnknownType
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUndefined:
		return "undefined identifier"
	case ErrMismatch:
		return "type mismatch"
	case ErrRedeclared:
		return "identifier redeclared"
	case ErrNotCallable:
		return "value is not callable"
	case ErrArgCount:
		return "wrong number of arguments"
	case ErrCondition:
		return "condition is not bool"
	case ErrReturn:
		return "invalid return"
	case ErrUnknownType:
		return "unknown type"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is a type-checking failure, shaped like parser.Error.
type Error struct {
	Token   parser.Token
	Kind    ErrorKind
	Message string
}

func (e *Error) Text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.String()
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Token.Line, e.Token.Column, e.Text())
}

func errorf(tok parser.Token, kind ErrorKind, format string, args ...any) *Error {
	return &Error{Token: tok, Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Checker type-checks a syntax tree. Top-level bindings are written to the
// table as soon as their statement is checked, so after a failure the table
// holds everything bound before the failing statement.
type Checker struct {
	table   *Table
	scopes  []map[string]Type
	results []Type
}

func NewChecker(table *Table) *Checker {
	return &Checker{table: table}
}

func (c *Checker) CheckNode(node parser.Node) error {
	switch n := node.(type) {
	case *parser.Program:
		for _, stmt := range n.Statements {
			if err := c.checkStmt(stmt); err != nil {
				return err
			}
		}
		return nil
	case parser.Statement:
		return c.checkStmt(n)
	case parser.Expression:
		_, err := c.checkExpr(n)
		return err
	}
	return fmt.Errorf("unsupported node %T", node)
}

func (c *Checker) lookup(name string) (Type, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if typ, ok := c.scopes[i][name]; ok {
			return typ, true
		}
	}
	return c.table.Lookup(name)
}

func (c *Checker) declaredHere(name string) bool {
	if len(c.scopes) == 0 {
		_, ok := c.table.Lookup(name)
		return ok
	}
	_, ok := c.scopes[len(c.scopes)-1][name]
	return ok
}

func (c *Checker) define(name string, typ Type) {
	if len(c.scopes) == 0 {
		c.table.Define(name, typ)
		return
	}
	c.scopes[len(c.scopes)-1][name] = typ
}

func (c *Checker) push() {
	c.scopes = append(c.scopes, make(map[string]Type))
}

func (c *Checker) pop() {
	c.scopes = c.scopes[:len(c.scopes)-1]
}

func (c *Checker) resolveType(expr *parser.TypeExpr) (Type, error) {
	typ, ok := LookupBasic(expr.Name.Literal)
	if !ok {
		return nil, errorf(expr.Name, ErrUnknownType, "unknown type %s", expr.Name.Literal)
	}
	return typ, nil
}

func (c *Checker) checkStmt(stmt parser.Statement) error {
	switch s := stmt.(type) {
	case *parser.LetStmt:
		return c.checkLet(s)
	case *parser.AssignStmt:
		return c.checkAssign(s)
	case *parser.FuncDecl:
		return c.checkFunc(s)
	case *parser.Block:
		return c.checkBlock(s)
	case *parser.IfStmt:
		return c.checkIf(s)
	case *parser.WhileStmt:
		if err := c.checkCondition(s.Cond); err != nil {
			return err
		}
		return c.checkBlock(s.Body)
	case *parser.ReturnStmt:
		return c.checkReturn(s)
	case *parser.ExprStmt:
		_, err := c.checkExpr(s.Expr)
		return err
	}
	return fmt.Errorf("unsupported statement %T", stmt)
}

func (c *Checker) checkLet(s *parser.LetStmt) error {
	name := s.Name.Literal
	if c.declaredHere(name) {
		return errorf(s.Name, ErrRedeclared, "%s redeclared in this scope", name)
	}
	value, err := c.checkExpr(s.Value)
	if err != nil {
		return err
	}
	if s.Type != nil {
		declared, err := c.resolveType(s.Type)
		if err != nil {
			return err
		}
		if !Identical(value, declared) {
			return errorf(s.Value.Pos(), ErrMismatch, "cannot use %s as %s in declaration of %s", value, declared, name)
		}
	}
	c.define(name, value)
	return nil
}

func (c *Checker) checkAssign(s *parser.AssignStmt) error {
	value, err := c.checkExpr(s.Value)
	if err != nil {
		return err
	}
	name := s.Name.Literal
	existing, ok := c.lookup(name)
	if !ok {
		c.define(name, value)
		return nil
	}
	if !Identical(value, existing) {
		return errorf(s.Value.Pos(), ErrMismatch, "cannot assign %s to %s of type %s", value, name, existing)
	}
	return nil
}

func (c *Checker) checkFunc(s *parser.FuncDecl) error {
	name := s.Name.Literal
	if c.declaredHere(name) {
		return errorf(s.Name, ErrRedeclared, "%s redeclared in this scope", name)
	}
	fn := &Func{Result: Unit}
	for _, p := range s.Params {
		typ, err := c.resolveType(p.Type)
		if err != nil {
			return err
		}
		fn.Params = append(fn.Params, typ)
	}
	if s.Result != nil {
		typ, err := c.resolveType(s.Result)
		if err != nil {
			return err
		}
		fn.Result = typ
	}
	c.define(name, fn)

	c.push()
	defer c.pop()
	for i, p := range s.Params {
		if _, dup := c.scopes[len(c.scopes)-1][p.Name.Literal]; dup {
			return errorf(p.Name, ErrRedeclared, "duplicate parameter %s", p.Name.Literal)
		}
		c.define(p.Name.Literal, fn.Params[i])
	}
	c.results = append(c.results, fn.Result)
	defer func() { c.results = c.results[:len(c.results)-1] }()
	for _, stmt := range s.Body.Statements {
		if err := c.checkStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (c *Checker) checkBlock(b *parser.Block) error {
	c.push()
	defer c.pop()
	for _, stmt := range b.Statements {
		if err := c.checkStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (c *Checker) checkIf(s *parser.IfStmt) error {
	if err := c.checkCondition(s.Cond); err != nil {
		return err
	}
	if err := c.checkBlock(s.Then); err != nil {
		return err
	}
	if s.Else != nil {
		return c.checkStmt(s.Else)
	}
	return nil
}

func (c *Checker) checkCondition(cond parser.Expression) error {
	typ, err := c.checkExpr(cond)
	if err != nil {
		return err
	}
	if typ != Bool {
		return errorf(cond.Pos(), ErrCondition, "condition must be bool, found %s", typ)
	}
	return nil
}

func (c *Checker) checkReturn(s *parser.ReturnStmt) error {
	if len(c.results) == 0 {
		return errorf(s.Return, ErrReturn, "return outside function")
	}
	want := c.results[len(c.results)-1]
	if s.Value == nil {
		if want != Unit {
			return errorf(s.Return, ErrReturn, "missing return value of type %s", want)
		}
		return nil
	}
	got, err := c.checkExpr(s.Value)
	if err != nil {
		return err
	}
	if !Identical(got, want) {
		return errorf(s.Value.Pos(), ErrReturn, "cannot return %s from function returning %s", got, want)
	}
	return nil
}

func (c *Checker) checkExpr(expr parser.Expression) (Type, error) {
	switch e := expr.(type) {
	case *parser.Ident:
		typ, ok := c.lookup(e.Name.Literal)
		if !ok {
			return nil, errorf(e.Name, ErrUndefined, "undefined: %s", e.Name.Literal)
		}
		return typ, nil
	case *parser.Literal:
		switch e.Value.Kind {
		case parser.TokenInt:
			return Int, nil
		case parser.TokenFloat:
			return Float, nil
		case parser.TokenString:
			return Str, nil
		case parser.TokenTrue, parser.TokenFalse:
			return Bool, nil
		}
		return nil, fmt.Errorf("unsupported literal %s", e.Value.Kind)
	case *parser.ParenExpr:
		return c.checkExpr(e.Inner)
	case *parser.UnaryExpr:
		return c.checkUnary(e)
	case *parser.BinaryExpr:
		return c.checkBinary(e)
	case *parser.CallExpr:
		return c.checkCall(e)
	}
	return nil, fmt.Errorf("unsupported expression %T", expr)
}

func (c *Checker) checkUnary(e *parser.UnaryExpr) (Type, error) {
	operand, err := c.checkExpr(e.Operand)
	if err != nil {
		return nil, err
	}
	switch e.Op.Kind {
	case parser.TokenMinus:
		if operand == Int || operand == Float {
			return operand, nil
		}
	case parser.TokenBang:
		if operand == Bool {
			return Bool, nil
		}
	}
	return nil, errorf(e.Op, ErrMismatch, "operator %s not defined on %s", e.Op.Literal, operand)
}

func (c *Checker) checkBinary(e *parser.BinaryExpr) (Type, error) {
	left, err := c.checkExpr(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := c.checkExpr(e.Right)
	if err != nil {
		return nil, err
	}
	if !Identical(left, right) {
		return nil, errorf(e.Op, ErrMismatch, "mismatched types %s and %s for %s", left, right, e.Op.Literal)
	}

	ok := false
	result := left
	switch e.Op.Kind {
	case parser.TokenPlus:
		ok = left == Int || left == Float || left == Str
	case parser.TokenMinus, parser.TokenStar, parser.TokenSlash:
		ok = left == Int || left == Float
	case parser.TokenPercent:
		ok = left == Int
	case parser.TokenLt, parser.TokenLtEq, parser.TokenGt, parser.TokenGtEq:
		ok = left == Int || left == Float || left == Str
		result = Bool
	case parser.TokenEq, parser.TokenNotEq:
		_, isFunc := left.(*Func)
		ok = !isFunc
		result = Bool
	case parser.TokenAndAnd, parser.TokenOrOr:
		ok = left == Bool
	}
	if !ok {
		return nil, errorf(e.Op, ErrMismatch, "operator %s not defined on %s", e.Op.Literal, left)
	}
	return result, nil
}

func (c *Checker) checkCall(e *parser.CallExpr) (Type, error) {
	callee, err := c.checkExpr(e.Callee)
	if err != nil {
		return nil, err
	}
	fn, ok := callee.(*Func)
	if !ok {
		return nil, errorf(e.Callee.Pos(), ErrNotCallable, "cannot call non-function of type %s", callee)
	}
	if len(e.Args) != len(fn.Params) {
		return nil, errorf(e.LParen, ErrArgCount, "expected %d arguments, found %d", len(fn.Params), len(e.Args))
	}
	for i, arg := range e.Args {
		typ, err := c.checkExpr(arg)
		if err != nil {
			return nil, err
		}
		if !assignable(typ, fn.Params[i]) {
			return nil, errorf(arg.Pos(), ErrMismatch, "cannot use %s as argument of type %s", typ, fn.Params[i])
		}
	}
	return fn.Result, nil
}
