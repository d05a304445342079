// =============================================================================
// NIBRS Flat File Ingest - Root Command
// =============================================================================
//
// This file defines the root command and the setup shared by every
// subcommand: configuration loading, environment and flag overrides, and the
// logger.
//
// CONFIGURATION PRECEDENCE (highest first):
//   1. Command-line flags (--log-level, --input-dir, --output-dir)
//   2. NIBRS_* environment variables, including those from a .env file
//   3. The YAML configuration file
//   4. Built-in defaults
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/nibrs-flatfile/internal/codetable"
	"github.com/ginjaninja78/nibrs-flatfile/internal/config"
	"github.com/ginjaninja78/nibrs-flatfile/internal/logging"
)

// =============================================================================
// GLOBAL STATE
// =============================================================================

// cfgFile is the path to the main configuration file.
var cfgFile string

// verbose forces debug logging.
var verbose bool

// appConfig and logger are set by setup before a subcommand runs.
var (
	appConfig *config.MainConfig
	logger    zerolog.Logger
)

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

var rootCmd = &cobra.Command{
	Use:   "nibrs-flatfile",
	Short: "NIBRS flat file ingest - read, check and report on NIBRS submissions",
	Long: `nibrs-flatfile reads NIBRS fixed-width flat files, assembles their segments
into incident, zero and arrest reports, and writes the errors it finds in the
FBI error report format and as an XLSX workbook.

Example Usage:
  nibrs-flatfile process                     # Process every file in the input directory
  nibrs-flatfile process --file agency.txt   # Process one file
  nibrs-flatfile check agency.txt --fbi      # Print the FBI error report for a file`,

	SilenceUsage: true,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)

	rootCmd.PersistentFlags().String("log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().String("input-dir", "", "Directory scanned for submissions")
	rootCmd.PersistentFlags().String("output-dir", "", "Directory for generated reports")
}

// setup loads the configuration and builds the logger. Subcommands call it
// from their RunE.
func setup(cmd *cobra.Command) error {
	// A missing .env is fine.
	_ = godotenv.Load()

	explicit := cmd.Flags().Changed("config")
	cfg, err := config.LoadMainConfig(cfgFile, explicit)
	if err != nil {
		return fmt.Errorf("failed to load main config: %w", err)
	}

	v := config.NewViper()
	for key, flag := range map[string]string{
		"log_level":  "log-level",
		"input_dir":  "input-dir",
		"output_dir": "output-dir",
	} {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", flag, err)
		}
	}
	config.ApplyOverrides(cfg, v)

	if verbose {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	l, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		return err
	}

	appConfig = cfg
	logger = l
	logger.Debug().
		Str("config", cfgFile).
		Bool("config_found", fileExists(cfgFile)).
		Str("input_dir", cfg.InputDir).
		Str("output_dir", cfg.OutputDir).
		Msg("configuration loaded")
	return nil
}

// loadCodeTables returns the built-in tables, overlaid with the configured
// workbook if there is one.
func loadCodeTables() (*codetable.Set, error) {
	codes, err := codetable.Load(appConfig.CodeTableWorkbook)
	if err != nil {
		return nil, err
	}
	if appConfig.CodeTableWorkbook != "" {
		logger.Debug().
			Str("workbook", appConfig.CodeTableWorkbook).
			Strs("tables", codes.Names()).
			Msg("loaded code tables")
	}
	return codes, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
