package parser

// Node is implemented by every syntax tree node. Pos returns the token that
// introduces the node and is used for error reporting.
type Node interface {
	Pos() Token
}

type Statement interface {
	Node
	statementNode()
}

type Expression interface {
	Node
	expressionNode()
}

// Program is the root of a parsed document.
type Program struct {
	Statements []Statement
}

func (p *Program) Pos() Token {
	if len(p.Statements) == 0 {
		return Token{Kind: TokenEOF, Line: 1, Column: 1}
	}
	return p.Statements[0].Pos()
}

// TypeExpr names a type in a declaration, e.g. the `int` in `let x: int = 1`.
type TypeExpr struct {
	Name Token
}

type LetStmt struct {
	Let   Token
	Name  Token
	Type  *TypeExpr
	Value Expression
}

type AssignStmt struct {
	Name   Token
	Assign Token
	Value  Expression
}

type Param struct {
	Name Token
	Type *TypeExpr
}

type FuncDecl struct {
	Func   Token
	Name   Token
	Params []*Param
	Result *TypeExpr
	Body   *Block
}

type Block struct {
	LBrace     Token
	Statements []Statement
}

type IfStmt struct {
	If   Token
	Cond Expression
	Then *Block
	// Else is nil, a *Block or an *IfStmt.
	Else Statement
}

type WhileStmt struct {
	While Token
	Cond  Expression
	Body  *Block
}

type ReturnStmt struct {
	Return Token
	Value  Expression
}

type ExprStmt struct {
	Expr Expression
}

func (s *LetStmt) Pos() Token    { return s.Let }
func (s *AssignStmt) Pos() Token { return s.Name }
func (s *FuncDecl) Pos() Token   { return s.Func }
func (s *Block) Pos() Token      { return s.LBrace }
func (s *IfStmt) Pos() Token     { return s.If }
func (s *WhileStmt) Pos() Token  { return s.While }
func (s *ReturnStmt) Pos() Token { return s.Return }
func (s *ExprStmt) Pos() Token   { return s.Expr.Pos() }

func (*LetStmt) statementNode()    {}
func (*AssignStmt) statementNode() {}
func (*FuncDecl) statementNode()   {}
func (*Block) statementNode()      {}
func (*IfStmt) statementNode()     {}
func (*WhileStmt) statementNode()  {}
func (*ReturnStmt) statementNode() {}
func (*ExprStmt) statementNode()   {}

type Ident struct {
	Name Token
}

// Literal is an int, float, string or bool literal; Value.Kind tells which.
type Literal struct {
	Value Token
}

type UnaryExpr struct {
	Op      Token
	Operand Expression
}

type BinaryExpr struct {
	Left  Expression
	Op    Token
	Right Expression
}

type CallExpr struct {
	Callee Expression
	LParen Token
	Args   []Expression
}

type ParenExpr struct {
	LParen Token
	Inner  Expression
}

func (e *Ident) Pos() Token      { return e.Name }
func (e *Literal) Pos() Token    { return e.Value }
func (e *UnaryExpr) Pos() Token  { return e.Op }
func (e *BinaryExpr) Pos() Token { return e.Left.Pos() }
func (e *CallExpr) Pos() Token   { return e.Callee.Pos() }
func (e *ParenExpr) Pos() Token  { return e.LParen }

func (*Ident) expressionNode()      {}
func (*Literal) expressionNode()    {}
func (*UnaryExpr) expressionNode()  {}
func (*BinaryExpr) expressionNode() {}
func (*CallExpr) expressionNode()   {}
func (*ParenExpr) expressionNode()  {}
