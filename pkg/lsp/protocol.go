package lsp

import "go.lsp.dev/protocol"

// Methods handled by [Server].
const (
	methodInitialize  = "initialize"
	methodInitialized = "initialized"
	methodShutdown    = "shutdown"
	methodExit        = "exit"
	methodDidOpen     = "textDocument/didOpen"
	methodDidChange   = "textDocument/didChange"
	methodDidSave     = "textDocument/didSave"
	methodDidClose    = "textDocument/didClose"
	methodInlayHint   = "textDocument/inlayHint"
	methodCancel      = "$/cancelRequest"
	methodSetTrace    = "$/setTrace"
)

// go.lsp.dev/protocol v0.12.0 predates LSP 3.17, so the inlay hint types
// are declared here.

// InlayHintKind mirrors the LSP InlayHintKind enumeration.
type InlayHintKind int

const (
	InlayHintKindType      InlayHintKind = 1
	InlayHintKindParameter InlayHintKind = 2
)

// InlayHintParams is the payload of textDocument/inlayHint.
type InlayHintParams struct {
	TextDocument protocol.TextDocumentIdentifier `json:"textDocument"`
	Range        protocol.Range                  `json:"range"`
}

// InlayHint is one annotation returned to the editor.
type InlayHint struct {
	Position     protocol.Position `json:"position"`
	Label        string            `json:"label"`
	Kind         InlayHintKind     `json:"kind,omitempty"`
	PaddingLeft  bool              `json:"paddingLeft,omitempty"`
	PaddingRight bool              `json:"paddingRight,omitempty"`
}

// InlayHintOptions advertises inlay hint support.
type InlayHintOptions struct {
	ResolveProvider bool `json:"resolveProvider"`
}

// ServerCapabilities extends the protocol capabilities with inlayHintProvider.
type ServerCapabilities struct {
	protocol.ServerCapabilities
	InlayHintProvider *InlayHintOptions `json:"inlayHintProvider,omitempty"`
}

// InitializeResult is the reply to initialize.
type InitializeResult struct {
	Capabilities ServerCapabilities   `json:"capabilities"`
	ServerInfo   *protocol.ServerInfo `json:"serverInfo,omitempty"`
}

// initializeParams keeps only the fields the server logs. Decoding the full
// protocol.InitializeParams would reject clients whose capabilities the
// library does not model.
type initializeParams struct {
	ProcessID  int32                `json:"processId"`
	RootURI    protocol.DocumentURI `json:"rootUri"`
	ClientInfo *protocol.ClientInfo `json:"clientInfo,omitempty"`
}

// textDocumentParams covers every document lifecycle notification; only the
// URI is read.
type textDocumentParams struct {
	TextDocument protocol.TextDocumentIdentifier `json:"textDocument"`
}
