package lsp

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"

	"src.treesh.dev/pkg/boltfile"
	"src.treesh.dev/pkg/cmds"
	"src.treesh.dev/pkg/must"
	"src.treesh.dev/pkg/parse"
	"src.treesh.dev/pkg/testutil"
	"src.treesh.dev/pkg/treepath"
	. "src.treesh.dev/pkg/tt"
)

var testTree = boltfile.Tree{
	"base": boltfile.Tree{
		"bb":   boltfile.Tree{"dd": "dd value"},
		"stem": "hello",
	},
	"other": boltfile.Tree{},
}

const testURI = lsp.DocumentURI("file:///test.tsh")

type client struct {
	t     *testing.T
	conn  *jsonrpc2.Conn
	diags chan lsp.PublishDiagnosticsParams
}

func setup(t *testing.T) *client {
	t.Helper()
	name := filepath.Join(testutil.TempDir(t), "test.db")
	must.OK(boltfile.Create(name, testTree))
	file := must.OK1(boltfile.Open(name))

	ctx, cancel := context.WithCancel(context.Background())
	serverSide, clientSide := net.Pipe()
	serverConn := jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(serverSide, jsonrpc2.VSCodeObjectCodec{}),
		handler(newServer(cmds.Default(), file)))

	c := &client{t: t, diags: make(chan lsp.PublishDiagnosticsParams, 10)}
	c.conn = jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(clientSide, jsonrpc2.VSCodeObjectCodec{}),
		jsonrpc2.HandlerWithError(func(_ context.Context, _ *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
			if req.Method == "textDocument/publishDiagnostics" && req.Params != nil {
				var params lsp.PublishDiagnosticsParams
				if err := json.Unmarshal(*req.Params, &params); err != nil {
					t.Errorf("unmarshal diagnostics: %v", err)
				}
				c.diags <- params
			}
			return nil, nil
		}))

	t.Cleanup(func() {
		c.conn.Close()
		serverConn.Close()
		cancel()
		file.Close()
	})
	return c
}

func (c *client) call(method string, params, result any) error {
	c.t.Helper()
	return c.conn.Call(context.Background(), method, params, result)
}

func (c *client) notify(method string, params any) {
	c.t.Helper()
	if err := c.conn.Notify(context.Background(), method, params); err != nil {
		c.t.Fatalf("notify %s: %v", method, err)
	}
}

func (c *client) open(text string) {
	c.t.Helper()
	c.notify("textDocument/didOpen", lsp.DidOpenTextDocumentParams{
		TextDocument: lsp.TextDocumentItem{URI: testURI, Text: text}})
}

func (c *client) nextDiagnostics() lsp.PublishDiagnosticsParams {
	c.t.Helper()
	select {
	case params := <-c.diags:
		return params
	case <-time.After(time.Second):
		c.t.Fatalf("timed out waiting for diagnostics")
		return lsp.PublishDiagnosticsParams{}
	}
}

func (c *client) complete(line, character int) []lsp.CompletionItem {
	c.t.Helper()
	var items []lsp.CompletionItem
	err := c.call("textDocument/completion", lsp.CompletionParams{
		TextDocumentPositionParams: lsp.TextDocumentPositionParams{
			TextDocument: lsp.TextDocumentIdentifier{URI: testURI},
			Position:     lsp.Position{Line: line, Character: character},
		}}, &items)
	if err != nil {
		c.t.Fatalf("completion: %v", err)
	}
	return items
}

func TestInitialize(t *testing.T) {
	c := setup(t)
	var result lsp.InitializeResult
	if err := c.call("initialize", lsp.InitializeParams{}, &result); err != nil {
		t.Fatal(err)
	}
	sync := result.Capabilities.TextDocumentSync
	if sync == nil || sync.Options == nil || sync.Options.Change != lsp.TDSKFull || !sync.Options.OpenClose {
		t.Errorf("got sync capabilities %+v, want full sync with open and close", sync)
	}
	if result.Capabilities.CompletionProvider == nil {
		t.Errorf("completion provider not advertised")
	}
	c.notify("initialized", struct{}{})
}

func TestDiagnostics(t *testing.T) {
	c := setup(t)
	c.open("ls\n  frob x\n\ncd base\n")
	want := lsp.PublishDiagnosticsParams{
		URI: testURI,
		Diagnostics: []lsp.Diagnostic{{
			Range: lsp.Range{
				Start: lsp.Position{Line: 1, Character: 2},
				End:   lsp.Position{Line: 1, Character: 6}},
			Severity: lsp.Error,
			Source:   "treesh",
			Message:  "unknown command: frob",
		}},
	}
	if diff := cmp.Diff(want, c.nextDiagnostics()); diff != "" {
		t.Errorf("diagnostics (-want +got):\n%s", diff)
	}

	c.notify("textDocument/didChange", lsp.DidChangeTextDocumentParams{
		TextDocument:   lsp.VersionedTextDocumentIdentifier{TextDocumentIdentifier: lsp.TextDocumentIdentifier{URI: testURI}},
		ContentChanges: []lsp.TextDocumentContentChangeEvent{{Text: "ls\n"}},
	})
	if got := c.nextDiagnostics(); len(got.Diagnostics) != 0 {
		t.Errorf("got diagnostics %v after fixing the document", got.Diagnostics)
	}
}

func insertAt(line, character int, text string) *lsp.TextEdit {
	pos := lsp.Position{Line: line, Character: character}
	return &lsp.TextEdit{Range: lsp.Range{Start: pos, End: pos}, NewText: text}
}

func TestCompletion(t *testing.T) {
	c := setup(t)
	c.open("c\ncat base/st\ncd base\nls b\nls -l\n")

	tests := []struct {
		name            string
		line, character int
		want            []lsp.CompletionItem
	}{
		{"command", 0, 1, []lsp.CompletionItem{
			{Label: "cat", Kind: lsp.CIKFunction, TextEdit: insertAt(0, 1, "at")},
			{Label: "cd", Kind: lsp.CIKFunction, TextEdit: insertAt(0, 1, "d")},
		}},
		{"leaf", 1, 11, []lsp.CompletionItem{
			{Label: "/base/stem", Kind: lsp.CIKFile, TextEdit: insertAt(1, 11, "em")},
		}},
		{"group after cd", 3, 4, []lsp.CompletionItem{
			{Label: "/base/bb", Kind: lsp.CIKFolder, TextEdit: insertAt(3, 4, "b")},
		}},
		{"flag", 4, 5, []lsp.CompletionItem{}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if diff := cmp.Diff(test.want, c.complete(test.line, test.character)); diff != "" {
				t.Errorf("completion (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompletion_ClosedDocument(t *testing.T) {
	c := setup(t)
	c.open("c")
	c.notify("textDocument/didClose", lsp.DidCloseTextDocumentParams{
		TextDocument: lsp.TextDocumentIdentifier{URI: testURI}})
	if items := c.complete(0, 1); len(items) != 0 {
		t.Errorf("got completion items %v for a closed document", items)
	}
}

func TestHover(t *testing.T) {
	c := setup(t)
	var hover lsp.Hover
	if err := c.call("textDocument/hover", lsp.TextDocumentPositionParams{}, &hover); err != nil {
		t.Fatal(err)
	}
	if len(hover.Contents) != 0 {
		t.Errorf("got hover %v, want empty", hover)
	}
}

func TestUnknownMethod(t *testing.T) {
	c := setup(t)
	err := c.call("textDocument/rename", struct{}{}, nil)
	var rpcErr *jsonrpc2.Error
	if !errors.As(err, &rpcErr) || rpcErr.Code != jsonrpc2.CodeMethodNotFound {
		t.Errorf("got error %v, want method not found", err)
	}
}

func TestInvalidParams(t *testing.T) {
	c := setup(t)
	err := c.call("textDocument/completion", "not an object", nil)
	var rpcErr *jsonrpc2.Error
	if !errors.As(err, &rpcErr) || rpcErr.Code != jsonrpc2.CodeInvalidParams {
		t.Errorf("got error %v, want invalid params", err)
	}
}

func TestWorkingAt(t *testing.T) {
	Test(t, Fn("workingAt", func(script string) treepath.Path {
		return workingAt(parse.SplitLines(script))
	}), Table{
		Args("").Rets(treepath.Root()),
		Args("ls\ncd base").Rets(treepath.Path("/base")),
		Args("cd base\ncd bb/..\ncd bb").Rets(treepath.Path("/base/bb")),
		Args("cd base\ncd").Rets(treepath.Root()),
		Args("cd /other\ncd ../base").Rets(treepath.Path("/base")),
	})
}

func TestLineAt(t *testing.T) {
	lines := parse.SplitLines("ab\ncd\n")
	Test(t, Fn("lineAt", func(idx int) int { return lineAt(lines, idx) }), Table{
		Args(0).Rets(0),
		Args(2).Rets(0),
		Args(3).Rets(1),
		Args(5).Rets(1),
		Args(6).Rets(2),
	})
}

var positionTests = []struct {
	s   string
	idx int
	pos lsp.Position
}{
	{"foo", 0, lsp.Position{Line: 0, Character: 0}},
	{"foo", 3, lsp.Position{Line: 0, Character: 3}},
	{"a\nb", 2, lsp.Position{Line: 1, Character: 0}},
	{"a\r\nb", 2, lsp.Position{Line: 1, Character: 0}},
	{"ä\nü", 5, lsp.Position{Line: 1, Character: 1}},
	{"😀x", 4, lsp.Position{Line: 0, Character: 2}},
}

func TestPositions(t *testing.T) {
	for _, test := range positionTests {
		if got := lspPositionFromIdx(test.s, test.idx); got != test.pos {
			t.Errorf("lspPositionFromIdx(%q, %d) = %v, want %v", test.s, test.idx, got, test.pos)
		}
		if got := lspPositionToIdx(test.s, test.pos); got != test.idx {
			t.Errorf("lspPositionToIdx(%q, %v) = %d, want %d", test.s, test.pos, got, test.idx)
		}
	}
}
