// =============================================================================
// NIBRS Flat File Ingest - Converter Module
// =============================================================================
//
// This module orchestrates the ingest pipeline for a single submission file,
// from reading its lines to writing the error reports and archiving it.
//
// PIPELINE:
//   1. Open the file and stream its lines into a report assembler
//   2. Collect the assembled reports and the ordered error list
//   3. Optionally check coded values against the code tables
//   4. Write the FBI error report, the XLSX error workbook and the summary XML
//   5. Archive the input and copy the outputs to the output archive
//
// CONCURRENCY:
//   A Converter processes one file and owns its assembler. Several converters
//   may run at once; see RunBatch.
//
// =============================================================================

package converter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ginjaninja78/nibrs-flatfile/internal/codetable"
	"github.com/ginjaninja78/nibrs-flatfile/internal/config"
	"github.com/ginjaninja78/nibrs-flatfile/internal/errorexport"
	"github.com/ginjaninja78/nibrs-flatfile/internal/validation"
	"github.com/ginjaninja78/nibrs-flatfile/internal/xmlwriter"
	"github.com/ginjaninja78/nibrs-flatfile/pkg/flatfile"
	"github.com/ginjaninja78/nibrs-flatfile/pkg/nibrs"
	"github.com/ginjaninja78/nibrs-flatfile/pkg/utils"
)

// Output file extensions.
const (
	ExtFBIReport  = ".err"
	ExtXLSXReport = ".xlsx"
	ExtSummaryXML = ".xml"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of processing a single file.
type Result struct {
	// FilePath is the path to the input file that was processed.
	FilePath string

	// OutputFiles are the generated reports, in the order they were written.
	// This is empty if processing failed or was a dry run.
	OutputFiles []string

	// ArchivePath is where the input was moved, if it was archived.
	ArchivePath string

	// Success indicates whether the processing was successful. A file with
	// data errors still succeeds; only operational failures fail it.
	Success bool

	// Error contains the error if processing failed.
	Error error

	// Reports are the assembled reports in file order.
	Reports []nibrs.Report

	// Errors are every data error of the file in order.
	Errors []nibrs.Error

	// Warnings are the code-table findings, when validation ran.
	Warnings []*validation.Warning

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// Bytes is the size of the input file.
	Bytes int64

	// Lines is the number of lines read.
	Lines int

	// ZeroReports, GroupAReports and GroupBReports count reports by kind.
	ZeroReports   int
	GroupAReports int
	GroupBReports int

	// ReportsWithErrors is the number of reports with HasUpstreamErrors set.
	ReportsWithErrors int

	// Errors is the number of data errors.
	Errors int

	// Warnings is the number of code-table warnings.
	Warnings int

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// Reports returns the total number of reports.
func (s ProcessingStats) Reports() int {
	return s.ZeroReports + s.GroupAReports + s.GroupBReports
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter ingests a single submission file.
type Converter struct {
	path   string
	cfg    *config.MainConfig
	codes  *codetable.Set
	files  *utils.FileManager
	fbi    *errorexport.FBIWriter
	logger zerolog.Logger
	runID  string
	dryRun bool
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Converter) { c.logger = logger }
}

// WithCodeTables sets the code tables used for validation and labels.
func WithCodeTables(codes *codetable.Set) Option {
	return func(c *Converter) { c.codes = codes }
}

// WithRunID tags log events and the summary XML with a batch run id.
func WithRunID(id string) Option {
	return func(c *Converter) { c.runID = id }
}

// WithDryRun reads and validates without writing or archiving anything.
func WithDryRun(dryRun bool) Option {
	return func(c *Converter) { c.dryRun = dryRun }
}

// WithFBIWriter replaces the FBI error report writer.
func WithFBIWriter(w *errorexport.FBIWriter) Option {
	return func(c *Converter) { c.fbi = w }
}

// =============================================================================
// CONSTRUCTOR
// =============================================================================

// New creates a new Converter instance.
//
// PARAMETERS:
//   - path: The path to the submission file.
//   - cfg: The main application configuration.
//   - opts: Logger, code tables, run id and dry-run options.
//
// RETURNS:
//   - A new Converter instance.
func New(path string, cfg *config.MainConfig, opts ...Option) *Converter {
	c := &Converter{
		path:   path,
		cfg:    cfg,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.codes == nil {
		c.codes = codetable.Default()
	}
	if c.fbi == nil {
		c.fbi = errorexport.NewFBIWriter()
	}
	if c.runID == "" {
		c.runID = uuid.New().String()
	}

	c.files = utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.InputArchiveDir, cfg.OutputArchiveDir)
	c.files.ArchiveOnSuccess = cfg.ArchiveInputs()

	c.logger = c.logger.With().
		Str("file", filepath.Base(path)).
		Str("run_id", c.runID).
		Logger()
	return c
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the ingest pipeline for the file.
//
// RETURNS:
//   - A Result struct containing the outcome of the processing.
//
// A cancelled ctx stops reading between lines; the file is then reported as
// failed and nothing is written.
func (c *Converter) Run(ctx context.Context) (result Result) {
	startTime := time.Now()
	result = Result{FilePath: c.path}
	defer func() { result.Stats.ProcessingTime = time.Since(startTime) }()

	c.logger.Info().Msg("processing file")

	// =========================================================================
	// STEP 1: READ AND ASSEMBLE
	// =========================================================================

	if size, err := utils.GetFileSize(c.path); err == nil {
		result.Stats.Bytes = size
	}

	collector := flatfile.NewCollector()
	errs, lines, err := c.assemble(ctx, collector)
	if err != nil {
		result.Error = err
		c.logger.Error().Err(err).Msg("failed to read file")
		return result
	}

	result.Reports = collector.Reports()
	result.Errors = errs
	result.Stats.Lines = lines
	countReports(&result)

	c.logger.Debug().
		Int("lines", result.Stats.Lines).
		Int("reports", result.Stats.Reports()).
		Int("errors", result.Stats.Errors).
		Msg("assembled file")

	// =========================================================================
	// STEP 2: VALIDATE CODES
	// =========================================================================

	if c.cfg.ValidateCodes {
		vr := validation.NewValidator(c.codes).ValidateAll(result.Reports)
		result.Warnings = vr.Warnings
		result.Stats.Warnings = vr.WarningCount()
		for _, w := range vr.Warnings {
			c.logger.Warn().
				Str("report", w.ReportID).
				Int("line", w.Source.Line).
				Str("field", w.Field).
				Str("value", w.Value).
				Msg(w.Message)
		}
	}

	if c.dryRun {
		result.Success = true
		c.logger.Info().Msg("dry run: no output written")
		return result
	}

	// =========================================================================
	// STEP 3: WRITE OUTPUT FILES
	// =========================================================================

	outputs, err := c.writeOutputs(&result, collector)
	result.OutputFiles = outputs
	if err != nil {
		result.Error = fmt.Errorf("failed to write output: %w", err)
		c.logger.Error().Err(err).Msg("failed to write output")
		return result
	}

	// =========================================================================
	// STEP 4: ARCHIVE FILES
	// =========================================================================

	archived, err := c.archiveFiles(outputs)
	if err != nil {
		// Archival problems do not fail the file.
		c.logger.Warn().Err(err).Msg("failed to archive files")
	}
	result.ArchivePath = archived

	result.Success = true
	c.logger.Info().
		Int("reports", result.Stats.Reports()).
		Int("errors", result.Stats.Errors).
		Int("warnings", result.Stats.Warnings).
		Msg("file processed")

	return result
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// assemble streams the file through an assembler feeding collector and
// returns the error list and the number of lines read.
func (c *Converter) assemble(ctx context.Context, collector *flatfile.Collector) ([]nibrs.Error, int, error) {
	lines, err := flatfile.OpenLineReader(c.path)
	if err != nil {
		return nil, 0, err
	}
	defer lines.Close()

	asm := flatfile.NewAssembler(filepath.Base(c.path),
		flatfile.WithListener(collector),
		flatfile.WithListener(flatfile.NewLogListener(c.logger)),
		flatfile.WithLogger(c.logger),
	)

	if err := asm.Consume(ctx, lines); err != nil {
		return nil, 0, err
	}

	return asm.Errors(), asm.Lines(), nil
}

func countReports(result *Result) {
	result.Stats.Errors = len(result.Errors)

	for _, r := range result.Reports {
		switch r.(type) {
		case *nibrs.ZeroReport:
			result.Stats.ZeroReports++
		case *nibrs.GroupAReport:
			result.Stats.GroupAReports++
		case *nibrs.GroupBArrestReport:
			result.Stats.GroupBReports++
		}
		if r.Header().HasUpstreamErrors {
			result.Stats.ReportsWithErrors++
		}
	}
}

// writeOutputs writes each enabled report to the output directory.
//
// FILE NAMING:
//   One base name is generated from output_name_format per input file, so
//   the reports of one submission share {uuid} and {timestamp}:
//     agency_20240115_143022.err
//     agency_20240115_143022.xlsx
//     agency_20240115_143022.xml
func (c *Converter) writeOutputs(result *Result, collector *flatfile.Collector) ([]string, error) {
	base := utils.GenerateOutputFileName(c.cfg.OutputNameFormat,
		map[string]string{"original": utils.OriginalName(c.path)}, "")
	basePath := filepath.Join(c.cfg.OutputDir, base)

	var outputs []string

	if c.cfg.WriteFBIReport() {
		path := basePath + ExtFBIReport
		if err := c.writeFBIReport(path, result.Errors); err != nil {
			return outputs, err
		}
		outputs = append(outputs, path)
	}

	if c.cfg.WriteXLSXReport() {
		path := basePath + ExtXLSXReport
		if err := errorexport.SaveXLSX(path, result.Errors); err != nil {
			return outputs, err
		}
		outputs = append(outputs, path)
	}

	if c.cfg.WriteSummaryXML() {
		path := basePath + ExtSummaryXML
		doc, err := xmlwriter.Generate(&xmlwriter.Summary{
			SourceName: filepath.Base(c.path),
			RunID:      c.runID,
			Lines:      result.Stats.Lines,
			Warnings:   result.Stats.Warnings,
			Reports:    result.Reports,
			Errors:     result.Errors,
			ErrorsFor:  collector.ErrorsFor,
		}, c.codes)
		if err != nil {
			return outputs, err
		}
		if err := os.WriteFile(path, doc, 0644); err != nil {
			return outputs, fmt.Errorf("failed to write file: %w", err)
		}
		outputs = append(outputs, path)
	}

	for _, out := range outputs {
		c.logger.Debug().Str("output", out).Msg("wrote output")
	}
	return outputs, nil
}

func (c *Converter) writeFBIReport(path string, errs []nibrs.Error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := c.fbi.Write(f, errs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// archiveFiles moves the input to the input archive and copies the outputs
// to the output archive.
//
// RETURNS:
//   - The archived input path, or "" if archival is off or failed.
//   - The first archival error.
func (c *Converter) archiveFiles(outputs []string) (string, error) {
	if !c.files.ArchiveOnSuccess {
		return "", nil
	}

	archivePath, err := c.files.ArchiveInputFile(c.path)
	if err != nil {
		return "", fmt.Errorf("failed to archive input file: %w", err)
	}

	for _, out := range outputs {
		if _, err := c.files.ArchiveOutputFile(out); err != nil {
			return archivePath, fmt.Errorf("failed to archive output file: %w", err)
		}
	}

	return archivePath, nil
}
