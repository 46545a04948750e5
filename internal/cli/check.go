package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/crates-lsp/pkg/cache"
	errs "github.com/matzehuels/crates-lsp/pkg/errors"
	"github.com/matzehuels/crates-lsp/pkg/hints"
	"github.com/matzehuels/crates-lsp/pkg/manifest"
)

// checkCommand creates the check command for printing hints in a terminal.
func (c *CLI) checkCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "check [Cargo.toml...]",
		Short: "Print version hints for Cargo manifests",
		Long: `Print version hints for one or more Cargo manifests.

Each dependency is annotated the same way the language server annotates it
in an editor. Without arguments, ./Cargo.toml is checked. Crates shared by
several manifests are fetched once unless --no-cache is given.`,
		Example: `  crates-lsp check
  crates-lsp check Cargo.toml crates/*/Cargo.toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"Cargo.toml"}
			}
			return c.runCheck(cmd, args, noCache)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "refetch every crate for every manifest")
	return cmd
}

// checkStats tallies hint outcomes across manifests.
type checkStats struct {
	manifests int
	latest    int
	available int
	failed    int
}

func (s *checkStats) add(hs []hints.Hint) {
	s.manifests++
	for _, h := range hs {
		switch {
		case strings.HasPrefix(h.Label, "latest: "):
			s.latest++
		case strings.HasPrefix(h.Label, "available: "):
			s.available++
		default:
			s.failed++
		}
	}
}

func (c *CLI) runCheck(cmd *cobra.Command, paths []string, noCache bool) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return err
	}

	var store cache.Store = cache.NewMemory()
	if noCache {
		store = cache.NewNull()
	}
	rec := newReconciler(cfg, store, logger)

	var stats checkStats
	out := cmd.OutOrStdout()

	for _, path := range paths {
		if !manifest.Supports(path) {
			return errs.New(errs.ErrCodeInvalidManifest, "%s is not a Cargo.toml", path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return errs.Wrap(errs.ErrCodeFileNotFound, err, "read %s", path)
		}

		prog := newProgress(logger)
		hs := rec.ForText(ctx, string(data))
		if err := ctx.Err(); err != nil {
			return err
		}
		prog.done(fmt.Sprintf("Checked %s", path))

		printManifest(out, path, string(data), hs)
		stats.add(hs)
	}

	printSummary(out, stats)
	return nil
}
