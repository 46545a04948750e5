// Package crates provides an HTTP client for the crates.io version listing.
//
// # Usage
//
//	client := crates.NewClient(crates.Options{})
//	latest, err := client.LatestVersion(ctx, "serde")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("serde", latest)
//
// # Latest Version
//
// [Client.LatestVersion] takes the first entry of
// GET /crates/{name}/versions. The registry returns versions newest first;
// this package does no semver ordering of its own and does not filter
// yanked releases.
//
// # Registry Errors
//
// crates.io may answer 200 with an "errors" array next to (or instead of)
// the versions. Each error is logged as a warning; any versions that came
// back are still used.
//
// # User-Agent
//
// crates.io rejects anonymous clients, so every request carries the
// configured User-Agent (by default "crates-lsp/<version>").
package crates
