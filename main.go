// =============================================================================
// NIBRS Flat File Ingest - Main Entry Point
// =============================================================================
//
// This is the main entry point for the nibrs-flatfile CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   nibrs-flatfile process       - Ingest every submission in the input directory
//   nibrs-flatfile check <file>  - Print the reports and errors of one file
//   nibrs-flatfile version       - Display the application version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains the ingest driver, exporters and configuration
//   - pkg/nibrs      : Contains the report and error model
//   - pkg/flatfile   : Contains the fixed-width reader and report assembler
//   - pkg/utils      : Contains file management utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/nibrs-flatfile/cmd"
)

// main is the entry point of the application.
// It simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
