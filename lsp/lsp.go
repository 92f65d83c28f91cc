// Package lsp serves diagnostics and a record outline for Endless Sky data
// files over the Language Server Protocol.
package lsp

import (
	"errors"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/dhamidi/esdata/model"
	"github.com/dhamidi/esdata/parser"
	"github.com/tliron/commonlog"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

const lsName = "esdata"

var log = commonlog.GetLogger("esdata.lsp")

type LSPServer struct {
	handler protocol.Handler
	server  *server.Server
	version string
	options []parser.Option

	mu        sync.Mutex
	documents map[protocol.DocumentUri]string
}

// NewLSPServer returns a server that parses documents with opts.
func NewLSPServer(version string, opts ...parser.Option) *LSPServer {
	ls := &LSPServer{
		version:   version,
		options:   opts,
		documents: make(map[protocol.DocumentUri]string),
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.update(ctx, params.TextDocument.URI, textChange.Text)
		}
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ls.mu.Lock()
	delete(ls.documents, params.TextDocument.URI)
	ls.mu.Unlock()

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		ls.update(ctx, params.TextDocument.URI, *params.Text)
	}
	return nil
}

func (ls *LSPServer) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	text, ok := ls.document(params.TextDocument.URI)
	if !ok {
		return []protocol.DocumentSymbol{}, nil
	}
	return symbols(text, ls.parseOptions(params.TextDocument.URI)...), nil
}

// update stores the new text of a document and publishes its diagnostics.
func (ls *LSPServer) update(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	ls.mu.Lock()
	ls.documents[uri] = text
	ls.mu.Unlock()

	diags := diagnostics(text, ls.parseOptions(uri)...)
	log.Debugf("%s: %d diagnostics", uri, len(diags))
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diags,
	})
}

func (ls *LSPServer) document(uri protocol.DocumentUri) (string, bool) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	text, ok := ls.documents[uri]
	return text, ok
}

func (ls *LSPServer) parseOptions(uri protocol.DocumentUri) []parser.Option {
	opts := append([]parser.Option(nil), ls.options...)
	if path, err := uriToPath(uri); err == nil {
		opts = append(opts, parser.WithFile(path))
	}
	return opts
}

// diagnostics parses text strictly and reports the error, if any, as a
// single diagnostic running to the end of the offending line.
func diagnostics(text string, opts ...parser.Option) []protocol.Diagnostic {
	_, err := parser.ParseDocument([]byte(text), opts...)
	if err == nil {
		return []protocol.Diagnostic{}
	}
	var perr *parser.Error
	if !errors.As(err, &perr) {
		return []protocol.Diagnostic{{
			Severity: severityPtr(protocol.DiagnosticSeverityError),
			Source:   strPtr(lsName),
			Message:  err.Error(),
		}}
	}
	start := toPosition(text, perr.Pos.Offset)
	return []protocol.Diagnostic{{
		Range: protocol.Range{
			Start: start,
			End:   toPosition(text, lineEnd(text, perr.Pos.Offset)),
		},
		Severity: severityPtr(protocol.DiagnosticSeverityError),
		Source:   strPtr(lsName),
		Message:  perr.Message(),
	}}
}

// symbols lists one symbol per record that parses, in source order.
func symbols(text string, opts ...parser.Option) []protocol.DocumentSymbol {
	doc, _ := parser.ParseDocument([]byte(text), opts...)
	result := []protocol.DocumentSymbol{}
	if doc == nil {
		return result
	}
	for _, entry := range doc.Entries {
		start := entry.Span.Start.Offset
		kind := entry.Object.Kind().String()
		result = append(result, protocol.DocumentSymbol{
			Name:   model.NameOf(entry.Object),
			Detail: &kind,
			Kind:   symbolKind(entry.Object.Kind()),
			Range: protocol.Range{
				Start: toPosition(text, start),
				End:   toPosition(text, entry.Span.End.Offset),
			},
			SelectionRange: protocol.Range{
				Start: toPosition(text, start),
				End:   toPosition(text, lineEnd(text, start)),
			},
		})
	}
	return result
}

func symbolKind(kind model.Kind) protocol.SymbolKind {
	switch kind {
	case model.KindGalaxy:
		return protocol.SymbolKindNamespace
	case model.KindSystem:
		return protocol.SymbolKindModule
	case model.KindPlanet:
		return protocol.SymbolKindObject
	case model.KindShip:
		return protocol.SymbolKindClass
	case model.KindStart:
		return protocol.SymbolKindEvent
	default:
		return protocol.SymbolKindNull
	}
}

// toPosition converts a byte offset into a zero-based line and UTF-16
// character position.
func toPosition(text string, offset int) protocol.Position {
	if offset > len(text) {
		offset = len(text)
	}
	lineStart := strings.LastIndexByte(text[:offset], '\n') + 1
	line := strings.Count(text[:lineStart], "\n")
	character := 0
	for _, r := range text[lineStart:offset] {
		if r == utf8.RuneError {
			character++
			continue
		}
		character += len(utf16.Encode([]rune{r}))
	}
	return protocol.Position{
		Line:      protocol.UInteger(line),
		Character: protocol.UInteger(character),
	}
}

// lineEnd returns the offset of the line terminator of the line holding
// offset, or the end of text.
func lineEnd(text string, offset int) int {
	if offset > len(text) {
		return len(text)
	}
	end := strings.IndexByte(text[offset:], '\n')
	if end < 0 {
		return len(text)
	}
	end += offset
	if end > offset && text[end-1] == '\r' {
		end--
	}
	return end
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func strPtr(s string) *string {
	return &s
}

func severityPtr(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
