package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/crates-lsp/pkg/buildinfo"
	"github.com/matzehuels/crates-lsp/pkg/cache"
	"github.com/matzehuels/crates-lsp/pkg/lsp"
)

// serveCommand creates the serve command, an explicit alias for the root.
func (c *CLI) serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the language server on stdin/stdout",
		Long: `Run the language server on stdin/stdout.

This is the default when crates-lsp is invoked without a subcommand. Editors
should launch the binary and connect to its standard streams.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd)
		},
	}
}

func (c *CLI) runServe(cmd *cobra.Command) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return err
	}

	store := cache.NewMemory()
	if cfg.Metrics.Addr != "" {
		stop, err := startMetrics(ctx, cfg.Metrics.Addr, store, logger)
		if err != nil {
			return err
		}
		defer stop()
	}

	logger.Info("starting language server",
		"version", buildinfo.Version,
		"registry", cfg.Registry.URL,
		"freshness", cfg.Cache.Freshness)

	srv := lsp.NewServer(newReconciler(cfg, store, logger), logger)
	return srv.Serve(ctx, lsp.NewReadWriteCloser(c.stdin, c.stdout))
}
