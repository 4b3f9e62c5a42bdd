package parser

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// LexError is a lexical error recorded while scanning.
type LexError struct {
	Pos     Position
	Message string
}

func (e *LexError) Error() string {
	if e.Pos.File != "" {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.File, e.Pos.Line, e.Pos.Column, e.Message)
	}
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

type Lexer struct {
	input  string
	file   string
	pos    int
	line   int
	column int
	errors []*LexError
}

func NewLexer(input, file string) *Lexer {
	return &Lexer{
		input:  input,
		file:   file,
		line:   1,
		column: 1,
	}
}

func (l *Lexer) Position() Position {
	return Position{
		File:   l.file,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

// HasErrors reports whether any lexical error has been recorded so far.
func (l *Lexer) HasErrors() bool {
	return len(l.errors) > 0
}

func (l *Lexer) Errors() []*LexError {
	return l.errors
}

// Tokens scans the remaining input and returns every significant token,
// terminated by a single EOF token.
func (l *Lexer) Tokens() []Token {
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens
		}
	}
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return r
}

func (l *Lexer) peekN(n int) rune {
	pos := l.pos
	for i := 0; i < n; i++ {
		if pos >= len(l.input) {
			return 0
		}
		_, size := utf8.DecodeRuneInString(l.input[pos:])
		pos += size
	}
	if pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[pos:])
	return r
}

func (l *Lexer) advance() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += size
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return r
}

func (l *Lexer) errorf(at Position, format string, args ...any) {
	l.errors = append(l.errors, &LexError{Pos: at, Message: fmt.Sprintf(format, args...)})
}

func (l *Lexer) skipWhitespaceAndComments() {
	for l.pos < len(l.input) {
		ch := l.peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			l.advance()
		case ch == '#':
			for l.pos < len(l.input) && l.peek() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *Lexer) NextToken() Token {
	l.skipWhitespaceAndComments()
	start := l.Position()

	if l.pos >= len(l.input) {
		return Token{Kind: TokenEOF, Line: start.Line, Column: start.Column}
	}

	ch := l.peek()
	switch {
	case isLetter(ch):
		return l.scanIdentOrKeyword(start)
	case isDigit(ch):
		return l.scanNumber(start)
	case ch == '"':
		return l.scanString(start)
	}
	return l.scanOperator(start)
}

func (l *Lexer) token(kind TokenKind, start Position) Token {
	return Token{
		Kind:    kind,
		Literal: l.input[start.Offset:l.pos],
		Line:    start.Line,
		Column:  start.Column,
	}
}

func (l *Lexer) scanIdentOrKeyword(start Position) Token {
	for isLetter(l.peek()) || isDigit(l.peek()) {
		l.advance()
	}
	tok := l.token(TokenIdent, start)
	if kind, ok := keywords[tok.Literal]; ok {
		tok.Kind = kind
	}
	return tok
}

func (l *Lexer) scanNumber(start Position) Token {
	for isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekN(1)) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
		return l.token(TokenFloat, start)
	}
	return l.token(TokenInt, start)
}

func (l *Lexer) scanString(start Position) Token {
	l.advance()
	for {
		ch := l.peek()
		switch {
		case l.pos >= len(l.input) || ch == '\n':
			l.errorf(start, "unterminated string literal")
			return l.token(TokenIllegal, start)
		case ch == '\\':
			l.advance()
			if l.pos < len(l.input) && l.peek() != '\n' {
				l.advance()
			}
		case ch == '"':
			l.advance()
			return l.token(TokenString, start)
		default:
			l.advance()
		}
	}
}

var twoCharOperators = map[string]TokenKind{
	"==": TokenEq,
	"!=": TokenNotEq,
	"<=": TokenLtEq,
	">=": TokenGtEq,
	"&&": TokenAndAnd,
	"||": TokenOrOr,
	"->": TokenArrow,
}

var oneCharOperators = map[rune]TokenKind{
	'=': TokenAssign,
	'<': TokenLt,
	'>': TokenGt,
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenStar,
	'/': TokenSlash,
	'%': TokenPercent,
	'!': TokenBang,
	'(': TokenLParen,
	')': TokenRParen,
	'{': TokenLBrace,
	'}': TokenRBrace,
	',': TokenComma,
	':': TokenColon,
	';': TokenSemicolon,
}

func (l *Lexer) scanOperator(start Position) Token {
	ch := l.advance()
	if next := l.peek(); next != 0 {
		if kind, ok := twoCharOperators[string([]rune{ch, next})]; ok {
			l.advance()
			return l.token(kind, start)
		}
	}
	if kind, ok := oneCharOperators[ch]; ok {
		return l.token(kind, start)
	}
	l.errorf(start, "unexpected character %q", ch)
	return l.token(TokenIllegal, start)
}

func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
