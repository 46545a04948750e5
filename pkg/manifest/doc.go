// Package manifest finds where dependency annotations go in a Cargo.toml.
//
// # Overview
//
// Locating a dependency is a two step process:
//
//  1. [ParseRequirements] decodes the manifest with BurntSushi/toml and
//     reads the name and version requirement of every entry in the
//     [dependencies] table.
//  2. [Locate] scans the raw text line by line for lines that start with
//     each name and returns an anchor at the end of every such line.
//
// The TOML grammar is left to the decoder. Position lookup is purely
// textual: a line matches when, after leading whitespace, it starts with the
// crate name and the next character is not '-' or '_' (so "foo" never
// matches a "foo-bar" line).
//
// # Example
//
//	reqs, err := manifest.ParseRequirements(data, logger)
//	if err != nil {
//	    return nil // not TOML: no hints
//	}
//	for _, d := range manifest.Locate(string(data), reqs) {
//	    fmt.Printf("%d:%d %s %s\n", d.Line, d.Character, d.Name, d.Version)
//	}
package manifest
