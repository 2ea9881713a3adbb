package lsp

import (
	"context"
	"encoding/json"
	"fmt"

	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"

	"src.treesh.dev/pkg/boltfile"
	"src.treesh.dev/pkg/cmds"
	"src.treesh.dev/pkg/diag"
	"src.treesh.dev/pkg/edit/complete"
	"src.treesh.dev/pkg/parse"
	"src.treesh.dev/pkg/treecache"
	"src.treesh.dev/pkg/treepath"
)

var (
	errMethodNotFound = &jsonrpc2.Error{
		Code: jsonrpc2.CodeMethodNotFound, Message: "method not found"}
	errInvalidParams = &jsonrpc2.Error{
		Code: jsonrpc2.CodeInvalidParams, Message: "invalid params"}
)

type server struct {
	registry *cmds.Registry
	loader   complete.Loader[boltfile.Object]
	// Shared by all documents, since they are all about the same store file.
	cache   *treecache.Cache[boltfile.Object]
	content map[lsp.DocumentURI]string
}

func newServer(registry *cmds.Registry, loader complete.Loader[boltfile.Object]) *server {
	cache := treecache.New[boltfile.Object]()
	cache.InsertGroup(treepath.Root(), boltfile.Object{Path: treepath.Root(), Kind: boltfile.Group})
	return &server{registry, loader, cache, make(map[lsp.DocumentURI]string)}
}

func handler(s *server) jsonrpc2.Handler {
	return routingHandler(map[string]method{
		"initialize":              s.initialize,
		"textDocument/didOpen":    s.didOpen,
		"textDocument/didChange":  s.didChange,
		"textDocument/didClose":   s.didClose,
		"textDocument/hover":      s.hover,
		"textDocument/completion": s.completion,

		// Sent by clients after initialize.
		"initialized": noop,
		// Sent by some clients even when the server doesn't advertise support.
		"workspace/didChangeWatchedFiles": noop,
	})
}

type method func(context.Context, jsonrpc2.JSONRPC2, json.RawMessage) (any, error)

func noop(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return nil, nil
}

func routingHandler(methods map[string]method) jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		fn, ok := methods[req.Method]
		if !ok {
			logger.Debug("unsupported method", "method", req.Method)
			return nil, errMethodNotFound
		}
		var params json.RawMessage
		if req.Params != nil {
			params = *req.Params
		}
		return fn(ctx, conn, params)
	})
}

// Handler implementations. These are all called synchronously.

func (s *server) initialize(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return &lsp.InitializeResult{
		Capabilities: lsp.ServerCapabilities{
			TextDocumentSync: &lsp.TextDocumentSyncOptionsOrKind{
				Options: &lsp.TextDocumentSyncOptions{
					OpenClose: true,
					Change:    lsp.TDSKFull,
				},
			},
			CompletionProvider: &lsp.CompletionOptions{TriggerCharacters: []string{"/"}},
			HoverProvider:      true,
		},
	}, nil
}

func (s *server) didOpen(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidOpenTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	uri, content := params.TextDocument.URI, params.TextDocument.Text
	s.content[uri] = content
	go publishDiagnostics(ctx, conn, uri, s.diagnostics(content))
	return nil, nil
}

func (s *server) didChange(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidChangeTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil || len(params.ContentChanges) == 0 {
		return nil, errInvalidParams
	}

	// ContentChanges includes full text since the server is only advertised to
	// support that; see the initialize method.
	uri, content := params.TextDocument.URI, params.ContentChanges[0].Text
	s.content[uri] = content
	go publishDiagnostics(ctx, conn, uri, s.diagnostics(content))
	return nil, nil
}

func (s *server) didClose(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidCloseTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	delete(s.content, params.TextDocument.URI)
	return nil, nil
}

func (s *server) hover(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return lsp.Hover{}, nil
}

func (s *server) completion(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.CompletionParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	content := s.content[params.TextDocument.URI]
	idx := lspPositionToIdx(content, params.Position)
	lines := parse.SplitLines(content)
	n := lineAt(lines, idx)
	line := lines[n]
	// The position may be on a stripped "\r".
	dot := min(idx-line.Offset, len(line.Text))
	result, err := complete.Complete(
		complete.CodeBuffer{Content: line.Text, Dot: dot},
		complete.Config[boltfile.Object]{
			Commands:    s.registry.Names(),
			Cache:       s.cache,
			WorkingPath: workingAt(lines[:n]),
			Loader:      s.loader,
		})
	if err != nil {
		return []lsp.CompletionItem{}, nil
	}

	insertion := lspPositionFromIdx(content, idx)
	lspItems := make([]lsp.CompletionItem, len(result.Items))
	for i, item := range result.Items {
		lspItems[i] = lsp.CompletionItem{
			Label: item.Display,
			Kind:  s.itemKind(result.Type, item),
			TextEdit: &lsp.TextEdit{
				Range:   lsp.Range{Start: insertion, End: insertion},
				NewText: item.Replacement,
			},
		}
	}
	return lspItems, nil
}

func (s *server) itemKind(typ complete.LocationType, item complete.Candidate) lsp.CompletionItemKind {
	if typ == complete.Command {
		return lsp.CIKFunction
	}
	if entry, ok := s.cache.Get(treepath.Path(item.Display)); ok && !entry.IsGroup() {
		return lsp.CIKFile
	}
	return lsp.CIKFolder
}

// Returns the index of the line containing the byte offset idx.
func lineAt(lines []parse.Line, idx int) int {
	for i := len(lines) - 1; i > 0; i-- {
		if lines[i].Offset <= idx {
			return i
		}
	}
	return 0
}

// Returns the working group after running the cd commands among lines. The
// targets are not checked.
func workingAt(lines []parse.Line) treepath.Path {
	working := treepath.Root()
	for _, line := range lines {
		call, ok := parse.Parse(line.Text).(*parse.Call)
		if !ok || call.Function.Text != "cd" {
			continue
		}
		if args := call.Args(); len(args) == 0 {
			working = treepath.Root()
		} else {
			working = working.Join(treepath.Path(args[0])).Resolve()
		}
	}
	return working
}

func publishDiagnostics(ctx context.Context, conn jsonrpc2.JSONRPC2, uri lsp.DocumentURI, diags []lsp.Diagnostic) {
	err := conn.Notify(ctx, "textDocument/publishDiagnostics",
		lsp.PublishDiagnosticsParams{URI: uri, Diagnostics: diags})
	if err != nil {
		logger.Warn("cannot publish diagnostics", "uri", uri, "err", err)
	}
}

func (s *server) diagnostics(content string) []lsp.Diagnostic {
	diags := []lsp.Diagnostic{}
	for _, line := range parse.SplitLines(content) {
		call, ok := parse.Parse(line.Text).(*parse.Call)
		if !ok || s.registry.Has(call.Function.Text) {
			continue
		}
		r := call.Function.Range()
		diags = append(diags, lsp.Diagnostic{
			Range: lspRangeFromRange(content,
				diag.Ranging{From: line.Offset + r.From, To: line.Offset + r.To}),
			Severity: lsp.Error,
			Source:   "treesh",
			Message:  fmt.Sprintf("unknown command: %s", call.Function.Text),
		})
	}
	return diags
}

func lspRangeFromRange(s string, r diag.Ranger) lsp.Range {
	rg := r.Range()
	return lsp.Range{
		Start: lspPositionFromIdx(s, rg.From),
		End:   lspPositionFromIdx(s, rg.To),
	}
}

func lspPositionToIdx(s string, pos lsp.Position) int {
	var idx int
	walkString(s, func(i int, p lsp.Position) bool {
		idx = i
		return p.Line < pos.Line || (p.Line == pos.Line && p.Character < pos.Character)
	})
	return idx
}

func lspPositionFromIdx(s string, idx int) lsp.Position {
	var pos lsp.Position
	walkString(s, func(i int, p lsp.Position) bool {
		pos = p
		return i < idx
	})
	return pos
}

// Generates (index, lspPosition) pairs in s, stopping if f returns false.
func walkString(s string, f func(i int, p lsp.Position) bool) {
	var p lsp.Position
	lastCR := false

	for i, r := range s {
		if !f(i, p) {
			return
		}
		switch {
		case r == '\r':
			p.Line++
			p.Character = 0
		case r == '\n':
			if lastCR {
				// Ignore \n if it's part of a \r\n sequence
			} else {
				p.Line++
				p.Character = 0
			}
		case r <= 0xFFFF:
			// Encoded in UTF-16 with one unit
			p.Character++
		default:
			// Encoded in UTF-16 with two units
			p.Character += 2
		}
		lastCR = r == '\r'
	}
	f(len(s), p)
}
