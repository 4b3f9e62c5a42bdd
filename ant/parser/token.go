package parser

import "fmt"

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenIllegal

	// Literals
	TokenIdent
	TokenInt
	TokenFloat
	TokenString

	// Keywords
	TokenLet
	TokenFunc
	TokenIf
	TokenElse
	TokenWhile
	TokenReturn
	TokenTrue
	TokenFalse

	// Operators and punctuation
	TokenAssign
	TokenEq
	TokenNotEq
	TokenLt
	TokenLtEq
	TokenGt
	TokenGtEq
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
	TokenBang
	TokenAndAnd
	TokenOrOr
	TokenArrow
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenComma
	TokenColon
	TokenSemicolon
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:       "EOF",
	TokenIllegal:   "Illegal",
	TokenIdent:     "Ident",
	TokenInt:       "Int",
	TokenFloat:     "Float",
	TokenString:    "String",
	TokenLet:       "let",
	TokenFunc:      "func",
	TokenIf:        "if",
	TokenElse:      "else",
	TokenWhile:     "while",
	TokenReturn:    "return",
	TokenTrue:      "true",
	TokenFalse:     "false",
	TokenAssign:    "=",
	TokenEq:        "==",
	TokenNotEq:     "!=",
	TokenLt:        "<",
	TokenLtEq:      "<=",
	TokenGt:        ">",
	TokenGtEq:      ">=",
	TokenPlus:      "+",
	TokenMinus:     "-",
	TokenStar:      "*",
	TokenSlash:     "/",
	TokenPercent:   "%",
	TokenBang:      "!",
	TokenAndAnd:    "&&",
	TokenOrOr:      "||",
	TokenArrow:     "->",
	TokenLParen:    "(",
	TokenRParen:    ")",
	TokenLBrace:    "{",
	TokenRBrace:    "}",
	TokenComma:     ",",
	TokenColon:     ":",
	TokenSemicolon: ";",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

var keywords = map[string]TokenKind{
	"let":    TokenLet,
	"func":   TokenFunc,
	"if":     TokenIf,
	"else":   TokenElse,
	"while":  TokenWhile,
	"return": TokenReturn,
	"true":   TokenTrue,
	"false":  TokenFalse,
}

// Token is a lexical token. Line and Column are 1-based; Column counts
// characters, not bytes.
type Token struct {
	Kind    TokenKind
	Literal string
	Line    int
	Column  int
}

func (t Token) String() string {
	if t.Kind == TokenEOF {
		return fmt.Sprintf("%d:%d EOF", t.Line, t.Column)
	}
	return fmt.Sprintf("%d:%d %s %q", t.Line, t.Column, t.Kind, t.Literal)
}

// Describe renders the token the way error messages refer to it.
func (t Token) Describe() string {
	switch t.Kind {
	case TokenEOF:
		return "end of input"
	case TokenIdent, TokenInt, TokenFloat, TokenString, TokenIllegal:
		return fmt.Sprintf("%s %q", t.Kind, t.Literal)
	default:
		return fmt.Sprintf("%q", t.Literal)
	}
}

// Keywords returns the reserved words of the language.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for kw := range keywords {
		out = append(out, kw)
	}
	return out
}
