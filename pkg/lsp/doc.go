// Package lsp serves crates.io version hints to editors over the Language
// Server Protocol.
//
// The server speaks JSON-RPC 2.0 using go.lsp.dev/jsonrpc2 framing and
// handles the lifecycle requests (initialize, shutdown, exit), the document
// synchronization notifications, and textDocument/inlayHint. Hint requests
// are answered asynchronously so a slow registry lookup never blocks other
// traffic on the connection.
//
// Usage:
//
//	srv := lsp.NewServer(reconciler, logger)
//	err := srv.Serve(ctx, lsp.Stdio())
package lsp
