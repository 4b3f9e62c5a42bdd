// Package grammar holds the reference EBNF grammar of TypedAnt.
//
// The grammar documents what ant/parser accepts; it is not used to drive
// parsing. Lexical productions are written for ASCII, while the lexer also
// accepts Unicode letters in identifiers.
package grammar

import (
	_ "embed"
	"strings"

	"golang.org/x/exp/ebnf"
)

// Start is the production every TypedAnt document derives from.
const Start = "Program"

//go:embed ant.ebnf
var Source string

func Parse() (ebnf.Grammar, error) {
	return ebnf.Parse("ant.ebnf", strings.NewReader(Source))
}

// Verify parses the grammar and checks that every production is defined
// and reachable from Start.
func Verify() error {
	g, err := Parse()
	if err != nil {
		return err
	}
	return ebnf.Verify(g, Start)
}

// Terminals returns the literal tokens used by the syntactic productions,
// i.e. keywords, operators and punctuation.
func Terminals() ([]string, error) {
	g, err := Parse()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var out []string
	for name, prod := range g {
		if isLexical(name) {
			continue
		}
		collectTokens(prod.Expr, func(tok string) {
			if !seen[tok] {
				seen[tok] = true
				out = append(out, tok)
			}
		})
	}
	return out, nil
}

func isLexical(name string) bool {
	return name != "" && strings.ToLower(name[:1]) == name[:1]
}

func collectTokens(expr ebnf.Expression, visit func(string)) {
	switch e := expr.(type) {
	case ebnf.Alternative:
		for _, x := range e {
			collectTokens(x, visit)
		}
	case ebnf.Sequence:
		for _, x := range e {
			collectTokens(x, visit)
		}
	case *ebnf.Group:
		collectTokens(e.Body, visit)
	case *ebnf.Option:
		collectTokens(e.Body, visit)
	case *ebnf.Repetition:
		collectTokens(e.Body, visit)
	case *ebnf.Token:
		visit(e.String)
	}
}
