package langserver

import (
	"errors"
	"net/url"
	"path/filepath"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/typedant/antls/ant/parser"
	"github.com/typedant/antls/ant/types"
)

type analyzeOptions struct {
	partialCheck bool
}

type AnalyzeOption func(*analyzeOptions)

// WithPartialCheck type-checks the statements completed before a parse
// failure so the table holds their bindings. The returned diagnostic is
// still the parse error.
func WithPartialCheck() AnalyzeOption {
	return func(o *analyzeOptions) {
		o.partialCheck = true
	}
}

// Analyze lexes, parses and type-checks text, filling table with the
// bindings it resolves. It returns nil on success, or a diagnostic for the
// first error found; later stages do not run once one fails.
func Analyze(text, uri string, table *types.Table, opts ...AnalyzeOption) *protocol.Diagnostic {
	var o analyzeOptions
	for _, opt := range opts {
		opt(&o)
	}

	label := DocumentLabel(uri)

	lexer := parser.NewLexer(text, label)
	tokens := lexer.Tokens()
	if lexer.HasErrors() {
		log.Debugf("%s: %s", uri, lexer.Errors()[0])
		return &protocol.Diagnostic{
			Severity: ptrTo(protocol.DiagnosticSeverityError),
			Message:  "lexer error",
			Source:   &label,
		}
	}

	prog, err := parser.NewParser(tokens).ParseProgram()
	if err != nil {
		if o.partialCheck {
			// Errors here are expected; only the bindings matter.
			_ = types.NewChecker(table).CheckNode(prog)
		}
		return diagnosticFor(text, label, err)
	}

	if err := types.NewChecker(table).CheckNode(prog); err != nil {
		return diagnosticFor(text, label, err)
	}
	return nil
}

func diagnosticFor(text, label string, err error) *protocol.Diagnostic {
	var tok parser.Token
	var message string

	var parseErr *parser.Error
	var typeErr *types.Error
	switch {
	case errors.As(err, &parseErr):
		tok, message = parseErr.Token, parseErr.Text()
	case errors.As(err, &typeErr):
		tok, message = typeErr.Token, typeErr.Text()
	default:
		message = err.Error()
	}

	var line uint32
	if tok.Line > 0 {
		line = uint32(tok.Line - 1)
	}
	start, end := TokenRange(text, tok)

	return &protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: start},
			End:   protocol.Position{Line: line, Character: end},
		},
		Severity: ptrTo(protocol.DiagnosticSeverityError),
		Message:  message,
		Source:   &label,
	}
}

// DocumentLabel names a document in diagnostics: its filesystem path for
// file URIs, otherwise the URI itself.
func DocumentLabel(uri string) string {
	if !strings.HasPrefix(uri, "file://") {
		return uri
	}
	parsed, err := url.Parse(uri)
	if err != nil || parsed.Path == "" {
		return uri
	}
	return filepath.Clean(filepath.FromSlash(parsed.Path))
}

func ptrTo[T any](v T) *T {
	return &v
}
