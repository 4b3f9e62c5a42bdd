package parser

import "fmt"

type ErrorKind int

const (
	ErrUnexpectedToken ErrorKind = iota
	ErrUnexpectedEOF
	ErrExpectedExpression
	ErrExpectedIdent
	ErrExpectedType
	ErrIllegalToken
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnexpectedToken:
		return "unexpected token"
	case ErrUnexpectedEOF:
		return "unexpected end of input"
	case ErrExpectedExpression:
		return "expected expression"
	case ErrExpectedIdent:
		return "expected identifier"
	case ErrExpectedType:
		return "expected type name"
	case ErrIllegalToken:
		return "illegal token"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is a parse failure. Token is the offending token; Message is
// optional and falls back to the kind's text.
type Error struct {
	Token   Token
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

type Parser struct {
	tokens []Token
	pos    int
}

func NewParser(tokens []Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != TokenEOF {
		eof := Token{Kind: TokenEOF, Line: 1, Column: 1}
		if n := len(tokens); n > 0 {
			last := tokens[n-1]
			eof.Line = last.Line
			eof.Column = last.Column + len([]rune(last.Literal))
		}
		tokens = append(tokens, eof)
	}
	return &Parser{tokens: tokens}
}

// Parse lexes and parses text in one step. Lexical errors are returned
// before any parsing happens.
func Parse(text, file string) (*Program, error) {
	lexer := NewLexer(text, file)
	tokens := lexer.Tokens()
	if lexer.HasErrors() {
		return &Program{}, lexer.Errors()[0]
	}
	return NewParser(tokens).ParseProgram()
}

// ParseProgram parses the whole token stream. On failure the returned
// program still holds the top-level statements completed before the error.
func (p *Parser) ParseProgram() (*Program, error) {
	prog := &Program{}
	for {
		p.skipSemicolons()
		if p.current().Kind == TokenEOF {
			return prog, nil
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return prog, err
		}
		prog.Statements = append(prog.Statements, stmt)
	}
}

func (p *Parser) current() Token {
	return p.tokens[p.pos]
}

func (p *Parser) peek() Token {
	if p.pos+1 >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+1]
}

func (p *Parser) previous() (Token, bool) {
	if p.pos == 0 {
		return Token{}, false
	}
	return p.tokens[p.pos-1], true
}

func (p *Parser) advance() Token {
	tok := p.tokens[p.pos]
	if tok.Kind != TokenEOF {
		p.pos++
	}
	return tok
}

func (p *Parser) skipSemicolons() {
	for p.current().Kind == TokenSemicolon {
		p.advance()
	}
}

// fail builds an error at the current token. Running out of input is
// reported against the last real token so the range covers visible text.
func (p *Parser) fail(kind ErrorKind, format string, args ...any) *Error {
	tok := p.current()
	msg := fmt.Sprintf(format, args...)
	if tok.Kind == TokenEOF {
		if prev, ok := p.previous(); ok {
			tok = prev
		}
		kind = ErrUnexpectedEOF
		msg += ", found end of input"
	} else if tok.Kind == TokenIllegal {
		kind = ErrIllegalToken
	}
	return &Error{Token: tok, Kind: kind, Message: msg}
}

func (p *Parser) expect(kind TokenKind) (Token, error) {
	tok := p.current()
	if tok.Kind != kind {
		if tok.Kind == TokenEOF {
			return tok, p.fail(ErrUnexpectedToken, "expected %q", kind.String())
		}
		return tok, p.fail(ErrUnexpectedToken, "expected %q, found %s", kind.String(), tok.Describe())
	}
	return p.advance(), nil
}

func (p *Parser) expectIdent() (Token, error) {
	tok := p.current()
	if tok.Kind != TokenIdent {
		if tok.Kind == TokenEOF {
			return tok, p.fail(ErrExpectedIdent, "expected identifier")
		}
		return tok, p.fail(ErrExpectedIdent, "expected identifier, found %s", tok.Describe())
	}
	return p.advance(), nil
}

func (p *Parser) parseStatement() (Statement, error) {
	switch p.current().Kind {
	case TokenLet:
		return p.parseLet()
	case TokenFunc:
		return p.parseFunc()
	case TokenIf:
		return p.parseIf()
	case TokenWhile:
		return p.parseWhile()
	case TokenReturn:
		return p.parseReturn()
	case TokenLBrace:
		return p.parseBlock()
	case TokenIdent:
		if p.peek().Kind == TokenAssign {
			return p.parseAssign()
		}
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ExprStmt{Expr: expr}, nil
}

func (p *Parser) parseLet() (Statement, error) {
	stmt := &LetStmt{Let: p.advance()}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	stmt.Name = name
	if p.current().Kind == TokenColon {
		p.advance()
		if stmt.Type, err = p.parseType(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(TokenAssign); err != nil {
		return nil, err
	}
	if stmt.Value, err = p.parseExpression(); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseAssign() (Statement, error) {
	stmt := &AssignStmt{Name: p.advance(), Assign: p.advance()}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	stmt.Value = value
	return stmt, nil
}

func (p *Parser) parseType() (*TypeExpr, error) {
	tok := p.current()
	if tok.Kind != TokenIdent {
		if tok.Kind == TokenEOF {
			return nil, p.fail(ErrExpectedType, "expected type name")
		}
		return nil, p.fail(ErrExpectedType, "expected type name, found %s", tok.Describe())
	}
	return &TypeExpr{Name: p.advance()}, nil
}

func (p *Parser) parseFunc() (Statement, error) {
	decl := &FuncDecl{Func: p.advance()}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	decl.Name = name
	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	for p.current().Kind != TokenRParen {
		if len(decl.Params) > 0 {
			if _, err := p.expect(TokenComma); err != nil {
				return nil, err
			}
		}
		param := &Param{}
		if param.Name, err = p.expectIdent(); err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenColon); err != nil {
			return nil, err
		}
		if param.Type, err = p.parseType(); err != nil {
			return nil, err
		}
		decl.Params = append(decl.Params, param)
	}
	p.advance()
	if p.current().Kind == TokenArrow {
		p.advance()
		if decl.Result, err = p.parseType(); err != nil {
			return nil, err
		}
	}
	if decl.Body, err = p.parseBlock(); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *Parser) parseBlock() (*Block, error) {
	lbrace, err := p.expect(TokenLBrace)
	if err != nil {
		return nil, err
	}
	block := &Block{LBrace: lbrace}
	for {
		p.skipSemicolons()
		switch p.current().Kind {
		case TokenRBrace:
			p.advance()
			return block, nil
		case TokenEOF:
			return nil, p.fail(ErrUnexpectedEOF, "expected \"}\" to close block")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
	}
}

func (p *Parser) parseIf() (*IfStmt, error) {
	stmt := &IfStmt{If: p.advance()}
	var err error
	if stmt.Cond, err = p.parseExpression(); err != nil {
		return nil, err
	}
	if stmt.Then, err = p.parseBlock(); err != nil {
		return nil, err
	}
	if p.current().Kind != TokenElse {
		return stmt, nil
	}
	p.advance()
	if p.current().Kind == TokenIf {
		stmt.Else, err = p.parseIf()
	} else {
		stmt.Else, err = p.parseBlock()
	}
	if err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseWhile() (Statement, error) {
	stmt := &WhileStmt{While: p.advance()}
	var err error
	if stmt.Cond, err = p.parseExpression(); err != nil {
		return nil, err
	}
	if stmt.Body, err = p.parseBlock(); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseReturn() (Statement, error) {
	stmt := &ReturnStmt{Return: p.advance()}
	next := p.current()
	if next.Line != stmt.Return.Line || !startsExpression(next.Kind) {
		return stmt, nil
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	stmt.Value = value
	return stmt, nil
}

func startsExpression(kind TokenKind) bool {
	switch kind {
	case TokenIdent, TokenInt, TokenFloat, TokenString, TokenTrue, TokenFalse,
		TokenLParen, TokenMinus, TokenBang:
		return true
	}
	return false
}

// binaryLevels lists binary operators from loosest to tightest binding.
var binaryLevels = [][]TokenKind{
	{TokenOrOr},
	{TokenAndAnd},
	{TokenEq, TokenNotEq},
	{TokenLt, TokenLtEq, TokenGt, TokenGtEq},
	{TokenPlus, TokenMinus},
	{TokenStar, TokenSlash, TokenPercent},
}

func (p *Parser) parseExpression() (Expression, error) {
	return p.parseBinary(0)
}

func (p *Parser) parseBinary(level int) (Expression, error) {
	if level == len(binaryLevels) {
		return p.parseUnary()
	}
	left, err := p.parseBinary(level + 1)
	if err != nil {
		return nil, err
	}
	for containsKind(binaryLevels[level], p.current().Kind) {
		op := p.advance()
		right, err := p.parseBinary(level + 1)
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Left: left, Op: op, Right: right}
	}
	return left, nil
}

func containsKind(kinds []TokenKind, kind TokenKind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

func (p *Parser) parseUnary() (Expression, error) {
	switch p.current().Kind {
	case TokenMinus, TokenBang:
		op := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: op, Operand: operand}, nil
	}
	return p.parseCall()
}

func (p *Parser) parseCall() (Expression, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	// A call's parenthesis must start on the line the callee ends on;
	// otherwise it begins a new statement.
	for p.current().Kind == TokenLParen {
		prev, _ := p.previous()
		if p.current().Line != prev.Line {
			break
		}
		call := &CallExpr{Callee: expr, LParen: p.advance()}
		for p.current().Kind != TokenRParen {
			if len(call.Args) > 0 {
				if _, err := p.expect(TokenComma); err != nil {
					return nil, err
				}
			}
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, arg)
		}
		p.advance()
		expr = call
	}
	return expr, nil
}

func (p *Parser) parsePrimary() (Expression, error) {
	tok := p.current()
	switch tok.Kind {
	case TokenIdent:
		p.advance()
		return &Ident{Name: tok}, nil
	case TokenInt, TokenFloat, TokenString, TokenTrue, TokenFalse:
		p.advance()
		return &Literal{Value: tok}, nil
	case TokenLParen:
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return &ParenExpr{LParen: tok, Inner: inner}, nil
	case TokenEOF:
		return nil, p.fail(ErrExpectedExpression, "expected expression")
	}
	return nil, p.fail(ErrExpectedExpression, "expected expression, found %s", tok.Describe())
}
