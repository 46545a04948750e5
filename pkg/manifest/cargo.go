package manifest

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/crates-lsp/pkg/errors"
)

// Wildcard is the version requirement that accepts any release.
const Wildcard = "*"

// dependenciesTable is the only table whose entries are annotated.
const dependenciesTable = "dependencies"

// Requirement is one entry of the [dependencies] table.
type Requirement struct {
	Name    string // Crate name as written in the manifest key
	Version string // Declared requirement; empty when a table entry has no version
}

// ParseRequirements decodes data as TOML and returns the entries of its
// [dependencies] table sorted by name.
//
// String values are taken as the version requirement; table values
// contribute their "version" field. Any other value kind is skipped with a
// warning on logger. A manifest without a dependencies table, or where it is
// not a table, yields no requirements and no error. Only a TOML syntax error
// is returned, coded INVALID_MANIFEST.
func ParseRequirements(data []byte, logger *log.Logger) ([]Requirement, error) {
	if logger == nil {
		logger = log.Default()
	}

	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidManifest, err, "decode Cargo.toml")
	}

	table, ok := doc[dependenciesTable].(map[string]any)
	if !ok {
		if _, present := doc[dependenciesTable]; present {
			logger.Warn("dependencies is not a table")
		}
		return nil, nil
	}

	reqs := make([]Requirement, 0, len(table))
	for name, value := range table {
		switch v := value.(type) {
		case string:
			reqs = append(reqs, Requirement{Name: name, Version: v})
		case map[string]any:
			version, _ := v["version"].(string)
			reqs = append(reqs, Requirement{Name: name, Version: version})
		default:
			logger.Warn("failed to parse crate", "crate", name, "type", tomlKind(value))
		}
	}

	sort.Slice(reqs, func(i, j int) bool { return reqs[i].Name < reqs[j].Name })
	return reqs, nil
}

func tomlKind(v any) string {
	switch v.(type) {
	case []any, []map[string]any:
		return "array"
	case bool:
		return "bool"
	case int64, float64:
		return "number"
	default:
		return "other"
	}
}

// Supports reports whether path names a Cargo manifest.
func Supports(path string) bool {
	return strings.EqualFold(filepath.Base(path), "Cargo.toml")
}
