// =============================================================================
// Quota Data Transformer - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Every other command
// is attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (qdt)
//   ├── transformCmd (qdt transform)
//   ├── sheetsCmd    (qdt sheets)
//   ├── serveCmd     (qdt serve)
//   └── versionCmd   (qdt version)
//
// The root command owns the global flags (--config, --verbose), loads the
// configuration and builds the logger before any subcommand runs.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/quota-data-transformer/internal/config"
)

// app carries the state shared by all commands of one invocation.
type app struct {
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
}

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "qdt",
		Short: "Quota Data Transformer - normalize quota request exports",
		Long: `Quota Data Transformer reads tabular exports of cloud quota requests
(pasted text, CSV/TSV files, Excel workbooks, Word documents or HTML pages),
finds the header row, normalizes every row into a canonical record and
groups the records by request type.

Example Usage:
  qdt transform export.tsv                       # Print the unified table as TSV
  qdt transform tickets.xlsx --sheet Open        # Read one sheet of a workbook
  qdt transform export.csv --view category --format xlsx --out ./output
  pbpaste | qdt transform - --format json        # Read from stdin
  qdt serve                                      # Start the HTTP API`,

		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	// ==========================================================================
	// PERSISTENT FLAGS
	// ==========================================================================

	rootCmd.PersistentFlags().StringVar(
		&a.cfgFile,
		"config",
		config.DefaultConfigPath,
		"Path to the configuration file",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&a.verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)

	rootCmd.AddCommand(
		newTransformCommand(a),
		newSheetsCommand(a),
		newServeCommand(a),
		newVersionCommand(),
	)
	return rootCmd
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the CLI. It is called by main.main().
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// setup loads the configuration and builds the logger. Logs go to stderr;
// stdout carries exported data.
func (a *app) setup() error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if a.verbose {
		level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = level
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := zcfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	a.logger = logger
	return nil
}
