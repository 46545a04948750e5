// Package pkg provides the libraries behind crates-lsp, a language server
// that shows the latest crates.io version of every dependency declared in a
// Cargo.toml.
//
// # Overview
//
// The pkg directory is organized into four areas:
//
//  1. [manifest] - Cargo.toml parsing and position lookup
//  2. [hints] - Reconciliation of declared versions against the registry
//  3. [cache] and [integrations/crates] - Version cache and registry client
//  4. [lsp] - JSON-RPC server exposing hints to editors
//
// Supporting packages: [config] (YAML settings), [errors] (coded errors),
// [observability] (hook registry and Prometheus metrics) and [buildinfo].
//
// # Architecture
//
// The data flow for one textDocument/inlayHint request:
//
//	Editor request (document URI)
//	         ↓
//	    [lsp] server (decode, run asynchronously)
//	         ↓
//	    [hints] reconciler (parse → locate → refresh stale → label)
//	         ↓                         ↓
//	    [manifest] positions      [cache] ←→ [integrations/crates]
//	         ↓
//	    Inlay hints ("latest: 1.0.210", "available: 1.42.0", "error")
//
// # Quick Start
//
// Compute hints for a manifest without an editor:
//
//	client := crates.NewClient(crates.Options{})
//	r := hints.New(cache.NewMemory(), client)
//	for _, h := range r.ForFile(ctx, "Cargo.toml") {
//	    fmt.Printf("%d:%d %s\n", h.Line, h.Character, h.Label)
//	}
//
// [manifest]: https://pkg.go.dev/github.com/matzehuels/crates-lsp/pkg/manifest
// [hints]: https://pkg.go.dev/github.com/matzehuels/crates-lsp/pkg/hints
// [cache]: https://pkg.go.dev/github.com/matzehuels/crates-lsp/pkg/cache
// [integrations/crates]: https://pkg.go.dev/github.com/matzehuels/crates-lsp/pkg/integrations/crates
// [lsp]: https://pkg.go.dev/github.com/matzehuels/crates-lsp/pkg/lsp
// [config]: https://pkg.go.dev/github.com/matzehuels/crates-lsp/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/crates-lsp/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/crates-lsp/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/crates-lsp/pkg/buildinfo
package pkg
