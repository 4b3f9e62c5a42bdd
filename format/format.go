// Package format renders TypedAnt tokens and syntax trees for the antls
// command line tools.
package format

import (
	"encoding"
	"io"

	"github.com/typedant/antls/ant/parser"
)

// TokenEncoder writes a token stream in some output format.
type TokenEncoder interface {
	encoding.TextMarshaler
	Encode(tokens []parser.Token) error
}

// NewTokenEncoder returns the encoder registered for name: "text" or "json".
func NewTokenEncoder(name string, w io.Writer) (TokenEncoder, bool) {
	switch name {
	case "text", "":
		return NewTokenTextEncoder(w), true
	case "json":
		return NewTokenJSONEncoder(w), true
	}
	return nil, false
}
