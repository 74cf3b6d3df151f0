package codebase

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/hi345slim/c99scan/parser"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "c99scan"

// LSPServer exposes a Codebase over the Language Server Protocol: it
// indexes files as they are opened, changed, or saved, and publishes each
// file's single syntax diagnostic (if any) back to the client.
type LSPServer struct {
	codebase *Codebase
	handler  protocol.Handler
	server   *server.Server
	version  string
	ctx      *glsp.Context
	watcher  *FileWatcher
}

// NewLSPServer returns an LSPServer reporting the given version string to
// clients during initialize.
func NewLSPServer(version string) *LSPServer {
	ls := &LSPServer{version: version}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentDidSave:   ls.textDocumentDidSave,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)
	return ls
}

// RunStdio serves the protocol over stdin/stdout until the client
// disconnects.
func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	ls.codebase = New(rootDir)

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
	ls.ctx = ctx
	ls.codebase.ScanAll()
	for _, f := range ls.codebase.AllFiles() {
		ls.publishDiagnostics(ctx, f)
	}

	ls.watcher = NewFileWatcher(ls.codebase)
	ls.watcher.OnChange(ls.handleWatcherChange)
	ls.watcher.Start()
	return nil
}

// handleWatcherChange republishes diagnostics for a file the FileWatcher
// re-indexed or removed outside the editor. A removed file has no
// FileInfo left to publish, so publishDiagnostics' nil check handles it.
func (ls *LSPServer) handleWatcherChange(path string) {
	ls.publishDiagnostics(ls.ctx, ls.codebase.GetFile(path))
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	if ls.watcher != nil {
		ls.watcher.Stop()
	}
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.codebase.UpdateFile(path, []byte(params.TextDocument.Text))
	ls.publishDiagnostics(ctx, ls.codebase.GetFile(path))
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		ls.codebase.UpdateFile(path, []byte(whole.Text))
		ls.publishDiagnostics(ctx, ls.codebase.GetFile(path))
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if params.Text != nil {
		ls.codebase.UpdateFile(path, []byte(*params.Text))
	} else {
		ls.codebase.ScanFile(path)
	}
	ls.publishDiagnostics(ctx, ls.codebase.GetFile(path))
	return nil
}

// publishDiagnostics reports at most one diagnostic per file: the
// scanner's fatal status, or the parser's single syntax error. A clean
// file publishes an empty diagnostic list, clearing any prior error in the
// client.
func (ls *LSPServer) publishDiagnostics(ctx *glsp.Context, f *FileInfo) {
	if f == nil {
		return
	}

	diagnostics := []protocol.Diagnostic{}
	severity := protocol.DiagnosticSeverityError

	switch {
	case f.ScanErr != "":
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    lineRange(1),
			Severity: &severity,
			Source:   strPtr(lsName),
			Message:  f.ScanErr,
		})
	case f.ParseErr != nil:
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    lineRange(diagnosticLine(f.ParseErr)),
			Severity: &severity,
			Source:   strPtr(lsName),
			Message:  f.ParseErr.Error(),
		})
	}

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         pathToURI(f.Path),
		Diagnostics: diagnostics,
	})
}

func diagnosticLine(err error) int {
	if se, ok := err.(*parser.SyntaxError); ok && se.Line > 0 {
		return se.Line
	}
	return 1
}

func lineRange(line int) protocol.Range {
	l := protocol.UInteger(0)
	if line > 0 {
		l = protocol.UInteger(line - 1)
	}
	return protocol.Range{
		Start: protocol.Position{Line: l, Character: 0},
		End:   protocol.Position{Line: l, Character: 1000},
	}
}

func pathToURI(path string) string {
	return "file://" + filepath.ToSlash(path)
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

func boolPtr(b bool) *bool { return &b }
func strPtr(s string) *string { return &s }

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
