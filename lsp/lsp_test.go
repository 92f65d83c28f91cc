package lsp

import (
	"testing"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestToPosition(t *testing.T) {
	text := "ab\ncdé𝄞x\r\nz"
	tests := []struct {
		offset    int
		line      uint32
		character uint32
	}{
		{0, 0, 0},
		{2, 0, 2},
		{3, 1, 0},
		{5, 1, 2},
		{7, 1, 3},
		{11, 1, 5},
		{14, 2, 0},
		{100, 2, 1},
	}

	for _, tt := range tests {
		got := toPosition(text, tt.offset)
		if got.Line != tt.line || got.Character != tt.character {
			t.Errorf("toPosition(%d) = %d:%d, want %d:%d", tt.offset, got.Line, got.Character, tt.line, tt.character)
		}
	}
}

func TestLineEnd(t *testing.T) {
	tests := []struct {
		text   string
		offset int
		want   int
	}{
		{"abc\ndef", 1, 3},
		{"abc\r\ndef", 0, 3},
		{"abc\ndef", 5, 7},
		{"abc", 10, 3},
	}
	for _, tt := range tests {
		if got := lineEnd(tt.text, tt.offset); got != tt.want {
			t.Errorf("lineEnd(%q, %d) = %d, want %d", tt.text, tt.offset, got, tt.want)
		}
	}
}

func TestDiagnostics(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    int
		line    uint32
		message string
	}{
		{"valid", "galaxy A\n\tpos 0 0\n", 0, 0, ""},
		{"missing field", "galaxy A\n\tsprite x\n", 1, 0, "galaxy is missing required field pos"},
		{"bad number", "galaxy A\n\tpos zero 0\n", 1, 1, `expected float64 in galaxy "A" > pos`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := diagnostics(tt.text)
			if len(diags) != tt.want {
				t.Fatalf("got %d diagnostics, want %d", len(diags), tt.want)
			}
			if tt.want == 0 {
				return
			}
			d := diags[0]
			if d.Range.Start.Line != tt.line {
				t.Errorf("line = %d, want %d", d.Range.Start.Line, tt.line)
			}
			if d.Message != tt.message {
				t.Errorf("message = %q, want %q", d.Message, tt.message)
			}
			if d.Severity == nil || *d.Severity != protocol.DiagnosticSeverityError {
				t.Errorf("severity = %v, want error", d.Severity)
			}
		})
	}
}

func TestSymbols(t *testing.T) {
	text := "galaxy \"Milky Way\"\n\tpos 0 0\n\n" +
		"ship Shuttle \"Mark II\"\n\tplural Shuttles\n" +
		"broken\n"

	syms := symbols(text)
	if len(syms) != 1 {
		t.Fatalf("got %d symbols, want 1 for the records before the error", len(syms))
	}
	sym := syms[0]
	if sym.Name != "Milky Way" || sym.Kind != protocol.SymbolKindNamespace {
		t.Errorf("got %q kind %v", sym.Name, sym.Kind)
	}
	if sym.Range.Start.Line != 0 || sym.Range.End.Line != 3 {
		t.Errorf("range = %+v, want lines 0 to 3", sym.Range)
	}
	if sym.SelectionRange.End.Character != 18 {
		t.Errorf("selection ends at %d, want 18", sym.SelectionRange.End.Character)
	}
}

func TestDocumentLifecycle(t *testing.T) {
	ls := NewLSPServer("test")

	var published []protocol.PublishDiagnosticsParams
	ctx := &glsp.Context{
		Notify: func(method string, params any) {
			if method == protocol.ServerTextDocumentPublishDiagnostics {
				published = append(published, params.(protocol.PublishDiagnosticsParams))
			}
		},
	}
	uri := "file:///data/map.txt"

	err := ls.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Text: "galaxy A\n\tsprite x\n"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(published) != 1 || len(published[0].Diagnostics) != 1 {
		t.Fatalf("after open: published %+v, want one diagnostic", published)
	}

	err = ls.textDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "galaxy A\n\tpos 1 1\n"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(published) != 2 || len(published[1].Diagnostics) != 0 {
		t.Fatalf("after change: published %+v, want no diagnostics", published)
	}

	result, err := ls.textDocumentDocumentSymbol(ctx, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	if err != nil {
		t.Fatal(err)
	}
	if syms := result.([]protocol.DocumentSymbol); len(syms) != 1 || syms[0].Name != "A" {
		t.Errorf("symbols = %+v, want galaxy A", syms)
	}

	if err := ls.textDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}); err != nil {
		t.Fatal(err)
	}
	if _, ok := ls.document(uri); ok {
		t.Errorf("document still stored after close")
	}
}
