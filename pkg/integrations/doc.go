// Package integrations provides the HTTP plumbing shared by registry clients.
//
// # Overview
//
// [Client] wraps an [net/http.Client] with default headers (crates.io requires
// a User-Agent) and translates response statuses into sentinel errors:
//
//   - [ErrNotFound]: 404 from the registry
//   - [ErrNetwork]: transport failures, timeouts and any other non-2xx status
//
// Every request reports to the HTTP hooks in [observability].
//
// The registry-specific client lives in the [crates] subpackage.
//
// [crates]: github.com/matzehuels/crates-lsp/pkg/integrations/crates
// [observability]: github.com/matzehuels/crates-lsp/pkg/observability
package integrations
