// Package cli implements the crates-lsp command-line interface.
//
// Invoked without a subcommand, crates-lsp runs the language server on
// stdin/stdout, which is what editors expect. The check subcommand prints
// the same hints to the terminal for one or more manifests.
//
// # Configuration
//
// Settings come from the YAML file named by --config, or from
// $XDG_CONFIG_HOME/crates-lsp/config.yaml when it exists. The --registry,
// --freshness and --metrics-addr flags override the file.
//
// # Logging
//
// Logs always go to stderr because stdout carries the protocol. --verbose
// (-v) enables debug output.
package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/crates-lsp/pkg/buildinfo"
	"github.com/matzehuels/crates-lsp/pkg/cache"
	"github.com/matzehuels/crates-lsp/pkg/config"
	"github.com/matzehuels/crates-lsp/pkg/hints"
	"github.com/matzehuels/crates-lsp/pkg/integrations"
	"github.com/matzehuels/crates-lsp/pkg/integrations/crates"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = buildinfo.Name

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	stdin  io.Reader
	stdout io.Writer

	configPath  string
	registryURL string
	freshness   time.Duration
	metricsAddr string
}

// New creates a new CLI instance logging to w. The language server talks
// over the process's stdin and stdout.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		stdin:  os.Stdin,
		stdout: os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// Running it without a subcommand starts the language server.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "crates-lsp shows the latest crates.io versions inside Cargo.toml",
		Long: `crates-lsp is a language server that annotates each dependency in a Cargo.toml
with the newest version published on crates.io. Point your editor at the
crates-lsp binary; it speaks LSP over stdin/stdout.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(withLogger(ctx, c.Logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/crates-lsp/config.yaml)")
	flags.StringVar(&c.registryURL, "registry", "", "registry API base URL (default "+crates.DefaultBaseURL+")")
	flags.DurationVar(&c.freshness, "freshness", 0, "how long a fetched version stays fresh (default "+cache.DefaultFreshness.String()+")")
	flags.StringVar(&c.metricsAddr, "metrics-addr", "", "serve /metrics, /healthz and /debug/cache on this address")

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config & Wiring
// =============================================================================

// loadConfig reads the config file and applies flag overrides.
func (c *CLI) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.Load(c.configPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("registry") {
		cfg.Registry.URL = c.registryURL
	}
	if flags.Changed("freshness") {
		cfg.Cache.Freshness = c.freshness
	}
	if flags.Changed("metrics-addr") {
		cfg.Metrics.Addr = c.metricsAddr
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// The file may ask for more detail than the flags did, never less.
	if lvl, _ := cfg.LogLevel(); lvl < c.Logger.GetLevel() {
		c.Logger.SetLevel(lvl)
	}
	return cfg, nil
}

// newReconciler wires the registry client and store into a hint reconciler.
func newReconciler(cfg *config.Config, store cache.Store, logger *log.Logger) *hints.Reconciler {
	client := crates.NewClient(crates.Options{
		BaseURL:    cfg.Registry.URL,
		UserAgent:  cfg.Registry.UserAgent,
		HTTPClient: integrations.NewHTTPClient(cfg.Registry.Timeout),
		Logger:     logger,
	})
	return hints.New(store, client,
		hints.WithFreshness(cfg.Cache.Freshness),
		hints.WithLogger(logger),
	)
}
