// Package cli wires the resolution pipeline behind a cobra command tree:
// configuration loading, logger initialisation, input handling, and
// terminal output.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/turtacn/chem2smiles/internal/config"
	"github.com/turtacn/chem2smiles/internal/infrastructure/monitoring/logging"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// rootOptions holds every flag of the root command.
type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
	noColor    bool

	batch         bool
	output        string
	format        string
	workers       int
	timeout       time.Duration
	minInterval   time.Duration
	image         string
	imageDir      string
	metricsListen string
}

// NewRootCommand creates the root command.  The root itself performs the
// conversion — the tool has exactly one job.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "chem2smiles [name | file | -]",
		Short: "Convert chemical names to SMILES notation via PubChem",
		Long: "chem2smiles resolves chemical names to canonical SMILES notation by\n" +
			"querying the PubChem PUG REST service.  A single literal name is printed\n" +
			"directly; with --batch the argument is a file of names (one per line) and\n" +
			"the results form an ordered two-column table.  With no argument, or with\n" +
			"\"-\", names are read from standard input.",
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, opts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "config file path (default: ./chem2smiles.yaml)")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&opts.logFormat, "log-format", "", "log format (console, json)")
	pf.BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	f := cmd.Flags()
	f.BoolVarP(&opts.batch, "batch", "b", false, "treat the argument as a file with one name per line")
	f.StringVarP(&opts.output, "output", "o", "", "destination file for results")
	f.StringVar(&opts.format, "format", "", "output table format (csv, tsv; default: by extension)")
	f.IntVarP(&opts.workers, "workers", "w", 0, "concurrent lookups (default 1)")
	f.DurationVar(&opts.timeout, "timeout", 0, "per-lookup deadline")
	f.DurationVar(&opts.minInterval, "min-interval", 0, "minimum spacing between lookups (0 disables)")
	f.StringVarP(&opts.image, "image", "i", "", "save a 2D structure image to this file (single-name mode)")
	f.StringVar(&opts.imageDir, "image-dir", "", "save one structure image per resolved name to this directory")
	f.StringVar(&opts.metricsListen, "metrics-listen", "", "expose prometheus metrics on this address during the run")

	return cmd
}

// Execute runs the root command with signal-aware cancellation: on
// interrupt, in-flight lookups finish or time out and no result file is
// written.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCommand().ExecuteContext(ctx)
}

// loadConfig resolves configuration with priority: flags > env > file >
// defaults.  Without an explicit --config, well-known paths are searched
// and absence of all of them is not an error.
func loadConfig(opts *rootOptions) (*config.Config, error) {
	if opts.configPath != "" {
		return config.Load(opts.configPath)
	}

	searchPaths := []string{"./chem2smiles.yaml"}
	if homeDir, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths, filepath.Join(homeDir, ".chem2smiles", "config.yaml"))
	}
	searchPaths = append(searchPaths, "/etc/chem2smiles/config.yaml")

	for _, p := range searchPaths {
		if _, err := os.Stat(p); err == nil {
			return config.Load(p)
		}
	}

	return config.LoadFromEnv()
}

// applyFlagOverrides copies explicitly-set flags over the loaded config.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config, opts *rootOptions) {
	if cmd.Flags().Changed("workers") {
		cfg.Batch.Workers = opts.workers
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Resolver.Timeout = opts.timeout
	}
	if cmd.Flags().Changed("min-interval") {
		cfg.Batch.MinInterval = opts.minInterval
	}
	if cmd.Flags().Changed("format") {
		cfg.Output.Format = opts.format
	}
	if cmd.Flags().Changed("metrics-listen") {
		cfg.Metrics.Listen = opts.metricsListen
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.logFormat != "" {
		cfg.Log.Format = opts.logFormat
	}
}

// initLogger builds the run logger writing to stderr, keeping stdout clean
// for resolved SMILES.
func initLogger(cfg *config.Config) (logging.Logger, error) {
	log, err := logging.New(logging.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		return nil, err
	}
	logging.SetDefault(log)
	return log, nil
}
