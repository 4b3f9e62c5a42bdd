package langserver

import (
	"fmt"

	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/typedant/antls/ant/types"
)

// HoverInfo describes the type of the identifier under pos, using the same
// best-effort table as completion. It returns false when the cursor is not
// on a known identifier.
func HoverInfo(text, uri string, pos protocol.Position) (*protocol.Hover, bool) {
	name, rng, ok := identAt(text, pos)
	if !ok {
		return nil, false
	}
	table := types.NewTable().Init()
	Analyze(text, uri, table, WithPartialCheck())
	typ, ok := table.Lookup(name)
	if !ok {
		return nil, false
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: fmt.Sprintf("```ant\n%s: %s\n```", name, typ),
		},
		Range: &rng,
	}, true
}
