// Package hints turns a Cargo.toml into inlay hints showing whether each
// dependency is on the latest published version.
//
// # Pipeline
//
// A [Reconciler] serves every hint request of the process:
//
//  1. Read the manifest from disk (always; in-memory editor state is not tracked).
//  2. Parse the [dependencies] table and locate each declaration
//     ([manifest.ParseRequirements], [manifest.Locate]).
//  3. Check each distinct crate against the shared [cache.Store]. Fresh
//     entries are used as is; missing or stale ones are fetched from the
//     registry concurrently, one goroutine per crate, and written back on
//     success.
//  4. Label every declaration with [Label].
//
// # Failure Containment
//
// Nothing in the pipeline returns an error to the caller. An unreadable or
// unparsable manifest yields no hints; a failed fetch only turns that
// crate's label into [ErrorLabel]. Every failure is logged.
//
// # Concurrency
//
// The cache is locked only for individual reads and writes, never across a
// registry call. Concurrent requests for the same crate are collapsed with
// singleflight; there is no retry beyond the next hint request.
//
// [manifest.ParseRequirements]: github.com/matzehuels/crates-lsp/pkg/manifest.ParseRequirements
// [manifest.Locate]: github.com/matzehuels/crates-lsp/pkg/manifest.Locate
// [cache.Store]: github.com/matzehuels/crates-lsp/pkg/cache.Store
package hints
