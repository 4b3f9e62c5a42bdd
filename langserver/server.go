package langserver

import (
	"fmt"
	"time"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
	"github.com/typedant/antls/ant/types"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "TypedAnt LSP"

var log = commonlog.GetLogger("antls.server")

type Options struct {
	Version           string
	TriggerCharacters []string
	IncludeBuiltins   bool
}

type Server struct {
	documents *DocumentStore
	completer Completer
	options   Options
	handler   protocol.Handler
	server    *server.Server
}

func NewServer(opts Options) *Server {
	if opts.Version == "" {
		opts.Version = "0.1.0"
	}
	if opts.TriggerCharacters == nil {
		opts.TriggerCharacters = []string{"_"}
	}

	s := &Server{
		documents: NewDocumentStore(),
		completer: Completer{IncludeBuiltins: opts.IncludeBuiltins},
		options:   opts,
	}

	s.handler = protocol.Handler{
		Initialize:             s.initialize,
		Initialized:            s.initialized,
		Shutdown:               s.shutdown,
		SetTrace:               s.setTrace,
		TextDocumentDidOpen:    s.textDocumentDidOpen,
		TextDocumentDidChange:  s.textDocumentDidChange,
		TextDocumentDidClose:   s.textDocumentDidClose,
		TextDocumentCompletion: s.textDocumentCompletion,
		TextDocumentHover:      s.textDocumentHover,
	}

	s.server = server.NewServer(&s.handler, lsName, false)

	return s
}

// Documents exposes the store backing the server.
func (s *Server) Documents() *DocumentStore {
	return s.documents
}

// Run serves the protocol over the named transport: stdio, tcp, websocket
// or nodejs. Network transports listen on address.
func (s *Server) Run(transport, address string) error {
	log.Infof("starting %s %s on %s", lsName, s.options.Version, transport)
	switch transport {
	case "", "stdio":
		return s.server.RunStdio()
	case "tcp":
		return s.server.RunTCP(address)
	case "websocket":
		return s.server.RunWebSocket(address)
	case "nodejs":
		return s.server.RunNodeJs()
	}
	return fmt.Errorf("unknown transport %q", transport)
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	if params.ClientInfo != nil {
		log.Infof("initialize from %s", params.ClientInfo.Name)
	}

	capabilities := s.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    ptrTo(protocol.TextDocumentSyncKindFull),
	}

	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: s.options.TriggerCharacters,
		ResolveProvider:   boolPtr(false),
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &s.options.Version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	log.Infof("shutdown with %d open documents", len(s.documents.URIs()))
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	doc := s.documents.Open(params.TextDocument.URI, params.TextDocument.Version, params.TextDocument.Text)
	s.analyzeAndPublish(ctx, doc)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	// Full sync: the last change carries the whole document.
	var text string
	switch change := params.ContentChanges[len(params.ContentChanges)-1].(type) {
	case protocol.TextDocumentContentChangeEventWhole:
		text = change.Text
	case protocol.TextDocumentContentChangeEvent:
		if change.Range != nil {
			log.Warningf("ignoring incremental change for %s", params.TextDocument.URI)
			return nil
		}
		text = change.Text
	default:
		return nil
	}
	doc := s.documents.Update(params.TextDocument.URI, params.TextDocument.Version, text)
	s.analyzeAndPublish(ctx, doc)
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.documents.Close(params.TextDocument.URI)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (s *Server) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	doc, ok := s.documents.Get(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	candidates := s.completer.Complete(doc.Text, doc.URI, params.Position)
	return toCompletionItems(candidates), nil
}

func (s *Server) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc, ok := s.documents.Get(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	hover, _ := HoverInfo(doc.Text, doc.URI, params.Position)
	return hover, nil
}

// analyzeAndPublish publishes the diagnostics for doc unless a newer
// version of the document arrived while the analysis ran.
func (s *Server) analyzeAndPublish(ctx *glsp.Context, doc Document) {
	start := time.Now()
	diagnostics := []protocol.Diagnostic{}
	if diag := Analyze(doc.Text, doc.URI, types.NewTable().Init()); diag != nil {
		diagnostics = append(diagnostics, *diag)
	}
	log.Debugf("analyzed %s (generation %d) in %s: %d diagnostics", doc.URI, doc.Generation, time.Since(start), len(diagnostics))

	params := protocol.PublishDiagnosticsParams{
		URI:         doc.URI,
		Diagnostics: diagnostics,
	}
	if doc.Version >= 0 {
		params.Version = ptrTo(protocol.UInteger(doc.Version))
	}
	published := s.documents.PublishIfCurrent(doc.URI, doc.Generation, func() {
		ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, params)
	})
	if !published {
		log.Debugf("dropped stale diagnostics for %s (generation %d)", doc.URI, doc.Generation)
	}
}

func boolPtr(b bool) *bool {
	return &b
}
