package langserver

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/typedant/antls/ant/types"
)

const CandidateKindVariable = "variable"

type Candidate struct {
	Label      string
	Kind       string
	InsertText string
	// Detail is the inferred type of the binding.
	Detail string
}

// Completer suggests identifiers from the symbol table built for a
// document.
type Completer struct {
	IncludeBuiltins bool
}

// Complete analyzes text and returns every table entry that starts with the
// identifier prefix at pos. Analysis errors are ignored: a broken document
// still offers the bindings resolved before the break.
func (c Completer) Complete(text, uri string, pos protocol.Position) []Candidate {
	table := types.NewTable().Init()
	if diag := Analyze(text, uri, table, WithPartialCheck()); diag != nil {
		log.Debugf("completing %s despite: %s", uri, diag.Message)
	}

	prefix := IdentPrefix(text, pos)
	var candidates []Candidate
	for _, name := range table.Names() {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if !c.IncludeBuiltins && types.IsBuiltin(name) {
			continue
		}
		candidate := Candidate{
			Label:      name,
			Kind:       CandidateKindVariable,
			InsertText: name,
		}
		if typ, ok := table.Lookup(name); ok {
			candidate.Detail = typ.String()
		}
		candidates = append(candidates, candidate)
	}
	return candidates
}

func toCompletionItems(candidates []Candidate) []protocol.CompletionItem {
	items := make([]protocol.CompletionItem, 0, len(candidates))
	for _, c := range candidates {
		kind := protocol.CompletionItemKindVariable
		insertText := c.InsertText
		item := protocol.CompletionItem{
			Label:      c.Label,
			Kind:       &kind,
			InsertText: &insertText,
		}
		if c.Detail != "" {
			detail := c.Detail
			item.Detail = &detail
		}
		items = append(items, item)
	}
	return items
}
