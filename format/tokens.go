package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/typedant/antls/ant/parser"
)

// TokenTextEncoder writes one token per line as line:column, kind and
// literal in aligned columns.
type TokenTextEncoder struct {
	w      io.Writer
	tokens []parser.Token
}

func NewTokenTextEncoder(w io.Writer) *TokenTextEncoder {
	return &TokenTextEncoder{w: w}
}

func (e *TokenTextEncoder) Encode(tokens []parser.Token) error {
	e.tokens = tokens
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TokenTextEncoder) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	for _, tok := range e.tokens {
		literal := fmt.Sprintf("%q", tok.Literal)
		if tok.Kind == parser.TokenEOF {
			literal = ""
		}
		fmt.Fprintf(tw, "%d:%d\t%s\t%s\n", tok.Line, tok.Column, tok.Kind, literal)
	}
	if err := tw.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type TokenJSONEncoder struct {
	w      io.Writer
	tokens []parser.Token
}

func NewTokenJSONEncoder(w io.Writer) *TokenJSONEncoder {
	return &TokenJSONEncoder{w: w}
}

func (e *TokenJSONEncoder) Encode(tokens []parser.Token) error {
	e.tokens = tokens
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

type jsonToken struct {
	Kind    string `json:"kind"`
	Literal string `json:"literal,omitempty"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
}

func (e *TokenJSONEncoder) MarshalText() ([]byte, error) {
	out := make([]jsonToken, len(e.tokens))
	for i, tok := range e.tokens {
		out[i] = jsonToken{
			Kind:    tok.Kind.String(),
			Literal: tok.Literal,
			Line:    tok.Line,
			Column:  tok.Column,
		}
	}
	return json.MarshalIndent(out, "", "  ")
}
