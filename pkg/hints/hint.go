package hints

import (
	"github.com/matzehuels/crates-lsp/pkg/cache"
	"github.com/matzehuels/crates-lsp/pkg/manifest"
)

// Kind categorizes a hint for editor styling. Values match the LSP
// InlayHintKind enumeration.
type Kind int

const (
	KindType      Kind = 1
	KindParameter Kind = 2
)

// ErrorLabel marks a dependency whose latest version is unknown.
const ErrorLabel = "error"

// Hint is an annotation anchored at a zero-based line and UTF-16 character
// offset.
type Hint struct {
	Line         uint32 `json:"line"`
	Character    uint32 `json:"character"`
	Label        string `json:"label"`
	PaddingLeft  bool   `json:"padding_left"`
	PaddingRight bool   `json:"padding_right"`
	Kind         Kind   `json:"kind"`
}

// Label decides the text for a declaration with the given requirement.
// ok reports whether the cache holds an entry for the crate.
func Label(declared string, e cache.Entry, ok bool) string {
	switch {
	case !ok:
		return ErrorLabel
	case declared == manifest.Wildcard || declared == e.Latest:
		return "latest: " + e.Latest
	default:
		return "available: " + e.Latest
	}
}

func newHint(d manifest.Declaration, label string) Hint {
	return Hint{
		Line:         d.Line,
		Character:    d.Character,
		Label:        label,
		PaddingLeft:  true,
		PaddingRight: true,
		Kind:         KindType,
	}
}
