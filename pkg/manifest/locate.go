package manifest

import (
	"strings"
	"unicode"
)

// Declaration is a dependency located in the manifest text. Line and
// Character are zero-based; Character is measured in UTF-16 code units, as
// editors expect, and points at the end of the line.
type Declaration struct {
	Name      string
	Version   string
	Line      uint32
	Character uint32
}

// Locate returns one Declaration per line of text that starts a declaration
// of a requirement. Results are grouped by requirement in input order, and by
// line within each requirement. A requirement that appears on no line yields
// nothing.
func Locate(text string, reqs []Requirement) []Declaration {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}

	var out []Declaration
	for _, r := range reqs {
		for i, l := range lines {
			if !MatchesName(l, r.Name) {
				continue
			}
			out = append(out, Declaration{
				Name:      r.Name,
				Version:   r.Version,
				Line:      uint32(i),
				Character: utf16Len(l),
			})
		}
	}
	return out
}

// MatchesName reports whether line, ignoring leading whitespace, starts with
// name and is not the start of a longer name joined by '-' or '_'.
func MatchesName(line, name string) bool {
	if name == "" {
		return false
	}
	rest, ok := strings.CutPrefix(strings.TrimLeftFunc(line, unicode.IsSpace), name)
	if !ok {
		return false
	}
	return !strings.HasPrefix(rest, "-") && !strings.HasPrefix(rest, "_")
}

func utf16Len(s string) uint32 {
	var n uint32
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}
