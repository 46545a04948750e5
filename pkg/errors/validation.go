package errors

import (
	"net/url"
	"regexp"
)

// maxCrateNameLength is the crates.io limit on crate names.
const maxCrateNameLength = 64

// crateNameRegex matches names crates.io accepts for publishing.
var crateNameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

// ValidateCrateName reports whether name can be interpolated into a registry
// URL path. Names come straight from user-edited manifests, so anything that
// could escape the path segment is rejected.
func ValidateCrateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidManifest, "crate name cannot be empty")
	}
	if len(name) > maxCrateNameLength {
		return New(ErrCodeInvalidManifest, "crate name too long (max %d characters)", maxCrateNameLength)
	}
	if !crateNameRegex.MatchString(name) {
		return New(ErrCodeInvalidManifest, "invalid crate name: %q", name)
	}
	return nil
}

// ValidateRegistryURL checks that rawURL is an absolute http(s) URL.
func ValidateRegistryURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidConfig, "registry URL cannot be empty")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidConfig, err, "parse registry URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidConfig, "registry URL must use http or https scheme")
	}
	if u.Host == "" {
		return New(ErrCodeInvalidConfig, "registry URL must include a host")
	}
	return nil
}
