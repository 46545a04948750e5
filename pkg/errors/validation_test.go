package errors

import (
	"strings"
	"testing"
)

func TestValidateCrateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "serde", false},
		{"valid with dash", "serde-json", false},
		{"valid with underscore", "serde_json", false},
		{"valid with digits", "base64", false},
		{"valid mixed case", "Inflector", false},

		{"empty", "", true},
		{"too long", "a" + strings.Repeat("b", 64), true},
		{"leading digit", "1password", true},
		{"leading dash", "-serde", true},
		{"path traversal", "../etc", true},
		{"slash", "foo/bar", true},
		{"query", "foo?bar", true},
		{"space", "foo bar", true},
		{"null byte", "foo\x00bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCrateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCrateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidManifest) {
				t.Errorf("ValidateCrateName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidManifest)
			}
		})
	}
}

func TestValidateRegistryURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"crates.io", "https://crates.io/api/v1", false},
		{"local mirror", "http://localhost:8080/api/v1", false},

		{"empty", "", true},
		{"no scheme", "crates.io/api/v1", true},
		{"ftp", "ftp://crates.io/api/v1", true},
		{"no host", "https:///api/v1", true},
		{"bad escape", "https://crates.io/%zz", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegistryURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRegistryURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
