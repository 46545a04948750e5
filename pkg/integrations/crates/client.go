package crates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/crates-lsp/pkg/buildinfo"
	errs "github.com/matzehuels/crates-lsp/pkg/errors"
	"github.com/matzehuels/crates-lsp/pkg/integrations"
)

// DefaultBaseURL is the crates.io API root.
const DefaultBaseURL = "https://crates.io/api/v1"

// ErrNoVersions is returned when the registry lists no versions for a crate.
var ErrNoVersions = errors.New("no versions published")

// Version is one entry of the crates.io version listing.
type Version struct {
	Num    string `json:"num"`
	Yanked bool   `json:"yanked"`
}

// Versions is the decoded body of GET /crates/{name}/versions.
//
// Errors holds whatever the registry reported in its "errors" array; the
// shape is not fixed, so entries are kept raw.
type Versions struct {
	Versions []Version         `json:"versions"`
	Errors   []json.RawMessage `json:"errors"`
}

// Options configures a [Client]. Zero values select defaults.
type Options struct {
	BaseURL    string       // Registry API root (default [DefaultBaseURL])
	UserAgent  string       // Client identity (default [buildinfo.UserAgent])
	HTTPClient *http.Client // Transport (default [integrations.NewHTTPClient])
	Logger     *log.Logger  // Receives registry-reported errors (default log.Default())
}

// Client provides access to the crates.io version listing.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
	logger  *log.Logger
}

// NewClient creates a crates.io client.
//
// The client always sends a User-Agent header, as required by crates.io
// API policy.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = buildinfo.UserAgent()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	headers := map[string]string{
		"User-Agent": opts.UserAgent,
		"Accept":     "application/json",
	}
	return &Client{
		Client:  integrations.NewClient(opts.HTTPClient, headers),
		baseURL: strings.TrimSuffix(opts.BaseURL, "/"),
		logger:  opts.Logger,
	}
}

// FetchVersions retrieves the version listing for crate with one request.
//
// Returns:
//   - the decoded listing on success, including any registry-reported errors
//   - a CRATE_NOT_FOUND coded error wrapping [integrations.ErrNotFound] on 404
//   - a NETWORK_ERROR coded error wrapping [integrations.ErrNetwork] for
//     transport failures and other non-2xx statuses
//   - an INVALID_MANIFEST coded error when the name cannot be a crate name
//   - the decode error for malformed JSON
func (c *Client) FetchVersions(ctx context.Context, crate string) (*Versions, error) {
	if err := errs.ValidateCrateName(crate); err != nil {
		return nil, err
	}

	var data Versions
	url := fmt.Sprintf("%s/crates/%s/versions", c.baseURL, crate)
	if err := c.Get(ctx, url, &data); err != nil {
		switch {
		case errors.Is(err, integrations.ErrNotFound):
			return nil, errs.Wrap(errs.ErrCodeCrateNotFound, err, "crate %s", crate)
		case errors.Is(err, integrations.ErrNetwork):
			return nil, errs.Wrap(errs.ErrCodeNetwork, err, "crate %s", crate)
		default:
			return nil, err
		}
	}
	return &data, nil
}

// LatestVersion returns the first version in the registry listing for crate.
//
// crates.io lists versions newest first, so no sorting or semver comparison
// is done here and yanked versions are not skipped. Registry-reported errors
// are logged and do not prevent using the versions that were returned.
func (c *Client) LatestVersion(ctx context.Context, crate string) (string, error) {
	data, err := c.FetchVersions(ctx, crate)
	if err != nil {
		return "", err
	}
	for _, e := range data.Errors {
		c.logger.Warn("registry reported error", "crate", crate, "error", string(e))
	}
	if len(data.Versions) == 0 {
		return "", errs.Wrap(errs.ErrCodeNoVersions, ErrNoVersions, "crate %s", crate)
	}
	return data.Versions[0].Num, nil
}
