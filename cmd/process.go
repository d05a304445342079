// =============================================================================
// NIBRS Flat File Ingest - Process Command
// =============================================================================
//
// This file defines the 'process' command, which ingests every submission in
// the input directory.
//
// COMMAND USAGE:
//   nibrs-flatfile process [flags]
//
// FLAGS:
//   --dry-run : Read and check files without writing or archiving anything
//   --file    : Process only this file (absolute, or relative to input_dir)
//   --pattern : Glob pattern replacing the configured file_patterns
//
// PROCESSING PIPELINE:
//   1. Load configuration and code tables
//   2. Discover submissions in the input directory
//   3. Ingest files concurrently, bounded by max_concurrency
//   4. Print per-file results and write the run summary log
//
// Interrupting the command (Ctrl-C) stops files in flight between lines;
// files not yet started are reported as failed and stay in the input
// directory.
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/nibrs-flatfile/internal/converter"
	"github.com/ginjaninja78/nibrs-flatfile/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// dryRun reads and checks files without writing output files.
var dryRun bool

// filePath is a specific file to process.
var filePath string

// pattern replaces the configured file patterns.
var pattern string

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Ingest NIBRS flat files from the input directory",
	Long: `The process command scans the input directory for NIBRS flat files and
ingests each one: its segments are assembled into reports, and every error
found is written to an FBI-format error report, an XLSX workbook and a
summary XML in the output directory.

Files are processed concurrently. A file that cannot be read does not stop the
others.

On successful processing:
  - The reports are placed in the output directory
  - The submission is moved to the input archive
  - The reports are copied to the output archive

On error:
  - The submission remains in the input directory
  - The failure is listed in the run summary log`,

	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setup(cmd); err != nil {
			return err
		}
		return runProcess(cmd.Context())
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Read and check files without writing or archiving anything",
	)

	processCmd.Flags().StringVar(
		&filePath,
		"file",
		"",
		"Process only this file",
	)

	processCmd.Flags().StringVar(
		&pattern,
		"pattern",
		"",
		"Glob pattern replacing the configured file_patterns",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

func runProcess(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	startTime := time.Now()
	runID := uuid.New().String()
	log := logger.With().Str("run_id", runID).Logger()

	codes, err := loadCodeTables()
	if err != nil {
		return err
	}

	// =========================================================================
	// STEP 1: DISCOVER INPUT FILES
	// =========================================================================

	inputFiles, err := discoverInputFiles()
	if err != nil {
		return fmt.Errorf("failed to discover input files: %w", err)
	}

	if len(inputFiles) == 0 {
		log.Info().Str("input_dir", appConfig.InputDir).Msg("no files to process")
		return nil
	}

	log.Info().Int("files", len(inputFiles)).Bool("dry_run", dryRun).Msg("processing files")

	// =========================================================================
	// STEP 2: PROCESS FILES CONCURRENTLY
	// =========================================================================

	results := converter.RunBatch(ctx, inputFiles, appConfig,
		converter.WithLogger(logger),
		converter.WithCodeTables(codes),
		converter.WithRunID(runID),
		converter.WithDryRun(dryRun),
	)

	// =========================================================================
	// STEP 3: PRINT RESULTS AND WRITE SUMMARY
	// =========================================================================

	for _, result := range results {
		name := filepath.Base(result.FilePath)
		if result.Success {
			fmt.Printf("  ✓ %s: %d report(s), %d error(s), %d warning(s)\n",
				name, result.Stats.Reports(), result.Stats.Errors, result.Stats.Warnings)
			for _, out := range result.OutputFiles {
				fmt.Printf("      -> %s\n", out)
			}
		} else {
			fmt.Printf("  ✗ %s: %v\n", name, result.Error)
		}
	}

	summary := converter.Summarize(runID, startTime, time.Now(), results)

	fmt.Println("\n=== Processing Complete ===")
	fmt.Printf("Total files:     %d\n", summary.TotalFiles)
	fmt.Printf("Successful:      %d\n", summary.SuccessfulFiles)
	fmt.Printf("Failed:          %d\n", summary.FailedFiles)
	fmt.Printf("Reports:         %d\n", summary.TotalReports)
	fmt.Printf("Report errors:   %d\n", summary.ReportErrors)
	fmt.Printf("Time elapsed:    %s\n", summary.EndTime.Sub(summary.StartTime))

	if dryRun {
		return nil
	}

	summaryPath, err := utils.WriteSummaryLog(summary, appConfig.OutputDir)
	if err != nil {
		return err
	}
	log.Info().Str("summary", summaryPath).Msg("wrote run summary")

	if summary.FailedFiles > 0 {
		return fmt.Errorf("%d of %d file(s) failed", summary.FailedFiles, summary.TotalFiles)
	}
	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// discoverInputFiles returns --file, or the input directory files matching
// --pattern or the configured patterns.
func discoverInputFiles() ([]string, error) {
	if filePath != "" {
		path := filePath
		if !utils.FileExists(path) && !filepath.IsAbs(path) {
			path = filepath.Join(appConfig.InputDir, path)
		}
		if !utils.FileExists(path) {
			return nil, fmt.Errorf("file not found: %s", filePath)
		}
		return []string{path}, nil
	}

	fm := utils.NewFileManager(appConfig.InputDir, appConfig.OutputDir, appConfig.InputArchiveDir, appConfig.OutputArchiveDir)
	patterns := appConfig.FilePatterns
	if pattern != "" {
		patterns = []string{pattern}
	}
	return fm.DiscoverInputFiles(patterns...)
}
